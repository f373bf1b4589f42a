package telemetry

import (
	"log/slog"
	"time"
)

// Phase is one stage of a simulation tick.
type Phase int

// Phases in execution order.
const (
	PhaseCollisions Phase = iota
	PhaseBrain
	PhaseMovement
	PhaseEvolution
	numPhases

	noPhase Phase = -1
)

var phaseNames = [numPhases]string{"collisions", "brain", "movement", "evolution"}

func (p Phase) String() string {
	if p < 0 || p >= numPhases {
		return "unknown"
	}
	return phaseNames[p]
}

// tickTiming is the wall time of one tick, split by phase.
type tickTiming struct {
	total  time.Duration
	phases [numPhases]time.Duration
}

// PerfCollector times ticks and their phases over a ring of the most recent
// ticks. A nil *PerfCollector is valid and records nothing.
type PerfCollector struct {
	now func() time.Time

	ring   []tickTiming
	next   int
	filled int

	cur        tickTiming
	tickStart  time.Time
	phase      Phase
	phaseStart time.Time

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over window ticks.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{
		now:   time.Now,
		ring:  make([]tickTiming, window),
		phase: noPhase,
	}
}

// StartTick begins timing a tick.
func (p *PerfCollector) StartTick() {
	if p == nil {
		return
	}
	p.tickStart = p.now()
	p.cur = tickTiming{}
	p.phase = noPhase
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	if p == nil {
		return
	}
	now := p.now()
	p.closePhase(now)
	p.phase = phase
	p.phaseStart = now
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase >= 0 && p.phase < numPhases {
		p.cur.phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.phase = noPhase
}

// EndTick stores the tick in the ring, evicting the oldest once full.
func (p *PerfCollector) EndTick() {
	if p == nil {
		return
	}
	now := p.now()
	p.closePhase(now)
	p.cur.total = now.Sub(p.tickStart)

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	p.filled = min(p.filled+1, len(p.ring))
}

// RecordFrame marks the start of a rendered frame.
func (p *PerfCollector) RecordFrame() {
	if p == nil {
		return
	}
	now := p.now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarizes the ticks in the window.
type PerfStats struct {
	Ticks int // ticks in the window

	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	TicksPerSecond  float64

	// Indexed by Phase.
	PhaseAvg [numPhases]time.Duration
	PhasePct [numPhases]float64 // share of the average tick, 0-100

	FrameDuration time.Duration
	FPS           float64
}

// Stats summarizes the current window.
func (p *PerfCollector) Stats() PerfStats {
	var s PerfStats
	if p == nil {
		return s
	}
	s.FrameDuration = p.frame
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.filled == 0 {
		return s
	}

	var total time.Duration
	var phaseTotal [numPhases]time.Duration
	for i, tt := range p.ring[:p.filled] {
		total += tt.total
		if i == 0 || tt.total < s.MinTickDuration {
			s.MinTickDuration = tt.total
		}
		s.MaxTickDuration = max(s.MaxTickDuration, tt.total)
		for ph, d := range tt.phases {
			phaseTotal[ph] += d
		}
	}

	n := time.Duration(p.filled)
	s.Ticks = p.filled
	s.AvgTickDuration = total / n
	for ph := range phaseTotal {
		s.PhaseAvg[ph] = phaseTotal[ph] / n
		if total > 0 {
			s.PhasePct[ph] = float64(phaseTotal[ph]) * 100 / float64(total)
		}
	}
	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
	}
	return s
}

// LogStats logs the summary at info level.
func (s PerfStats) LogStats() {
	slog.Info("perf", "perf", s)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int("ticks_per_sec", int(s.TicksPerSecond)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for ph := range numPhases {
		if pct := s.PhasePct[ph]; pct >= 0.1 {
			attrs = append(attrs, slog.Float64(ph.String()+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	WindowEnd     int64   `csv:"window_end"`
	AvgTickUS     int64   `csv:"avg_tick_us"`
	MinTickUS     int64   `csv:"min_tick_us"`
	MaxTickUS     int64   `csv:"max_tick_us"`
	TicksPerSec   float64 `csv:"ticks_per_sec"`
	FPS           float64 `csv:"fps"`
	CollisionsPct float64 `csv:"collisions_pct"`
	BrainPct      float64 `csv:"brain_pct"`
	MovementPct   float64 `csv:"movement_pct"`
	EvolutionPct  float64 `csv:"evolution_pct"`
}

// ToCSV flattens the summary for the window ending at tick windowEnd.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:     windowEnd,
		AvgTickUS:     s.AvgTickDuration.Microseconds(),
		MinTickUS:     s.MinTickDuration.Microseconds(),
		MaxTickUS:     s.MaxTickDuration.Microseconds(),
		TicksPerSec:   s.TicksPerSecond,
		FPS:           s.FPS,
		CollisionsPct: s.PhasePct[PhaseCollisions],
		BrainPct:      s.PhasePct[PhaseBrain],
		MovementPct:   s.PhasePct[PhaseMovement],
		EvolutionPct:  s.PhasePct[PhaseEvolution],
	}
}
