package telemetry

import (
	"testing"
	"time"
)

// fakeClock advances only when told to.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time         { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCollector(window int) (*PerfCollector, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	pc := NewPerfCollector(window)
	pc.now = clock.now
	return pc, clock
}

func TestPerfCollectorPhases(t *testing.T) {
	pc, clock := newTestCollector(10)

	for range 4 {
		pc.StartTick()
		pc.StartPhase(PhaseCollisions)
		clock.advance(100 * time.Microsecond)
		pc.StartPhase(PhaseBrain)
		clock.advance(300 * time.Microsecond)
		pc.StartPhase(PhaseMovement)
		clock.advance(100 * time.Microsecond)
		pc.EndTick()
	}

	s := pc.Stats()
	if s.Ticks != 4 {
		t.Errorf("Ticks = %d, want 4", s.Ticks)
	}
	if s.AvgTickDuration != 500*time.Microsecond {
		t.Errorf("AvgTickDuration = %v, want 500µs", s.AvgTickDuration)
	}
	if s.TicksPerSecond != 2000 {
		t.Errorf("TicksPerSecond = %v, want 2000", s.TicksPerSecond)
	}
	if s.PhaseAvg[PhaseBrain] != 300*time.Microsecond {
		t.Errorf("brain avg = %v, want 300µs", s.PhaseAvg[PhaseBrain])
	}
	wantPct := [numPhases]float64{20, 60, 20, 0}
	if s.PhasePct != wantPct {
		t.Errorf("PhasePct = %v, want %v", s.PhasePct, wantPct)
	}
}

func TestPerfCollectorRollingWindow(t *testing.T) {
	pc, clock := newTestCollector(3)

	// Five ticks of 1..5ms; only the last three remain.
	for i := 1; i <= 5; i++ {
		pc.StartTick()
		clock.advance(time.Duration(i) * time.Millisecond)
		pc.EndTick()
	}

	s := pc.Stats()
	if s.Ticks != 3 {
		t.Fatalf("Ticks = %d, want 3", s.Ticks)
	}
	if s.MinTickDuration != 3*time.Millisecond || s.MaxTickDuration != 5*time.Millisecond {
		t.Errorf("min/max = %v/%v, want 3ms/5ms", s.MinTickDuration, s.MaxTickDuration)
	}
	if s.AvgTickDuration != 4*time.Millisecond {
		t.Errorf("avg = %v, want 4ms", s.AvgTickDuration)
	}
}

func TestPerfCollectorEmpty(t *testing.T) {
	pc, _ := newTestCollector(10)
	s := pc.Stats()
	if s.Ticks != 0 || s.AvgTickDuration != 0 || s.TicksPerSecond != 0 {
		t.Errorf("empty stats = %+v", s)
	}
}

func TestPerfCollectorFrameTiming(t *testing.T) {
	pc, clock := newTestCollector(10)

	pc.RecordFrame()
	if s := pc.Stats(); s.FPS != 0 {
		t.Errorf("FPS after one frame = %v, want 0", s.FPS)
	}
	clock.advance(20 * time.Millisecond)
	pc.RecordFrame()

	s := pc.Stats()
	if s.FrameDuration != 20*time.Millisecond {
		t.Errorf("FrameDuration = %v, want 20ms", s.FrameDuration)
	}
	if s.FPS != 50 {
		t.Errorf("FPS = %v, want 50", s.FPS)
	}
}

func TestPerfCollectorNilIsNoop(t *testing.T) {
	var pc *PerfCollector

	pc.StartTick()
	pc.StartPhase(PhaseBrain)
	pc.EndTick()
	pc.RecordFrame()

	if s := pc.Stats(); s != (PerfStats{}) {
		t.Errorf("nil collector stats = %+v", s)
	}
}

func TestPhaseString(t *testing.T) {
	if got := PhaseEvolution.String(); got != "evolution" {
		t.Errorf("PhaseEvolution = %q", got)
	}
	if got := Phase(42).String(); got != "unknown" {
		t.Errorf("Phase(42) = %q", got)
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	s := PerfStats{AvgTickDuration: 250 * time.Microsecond}
	s.PhasePct[PhaseCollisions] = 10
	s.PhasePct[PhaseBrain] = 80
	s.PhasePct[PhaseMovement] = 10

	row := s.ToCSV(5000)
	if row.WindowEnd != 5000 || row.AvgTickUS != 250 {
		t.Errorf("row = %+v", row)
	}
	if row.BrainPct != 80 || row.CollisionsPct != 10 || row.EvolutionPct != 0 {
		t.Errorf("phase columns = %+v", row)
	}
}
