package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exports training progress to Prometheus.
type Metrics struct {
	generations prometheus.Counter
	ticks       prometheus.Counter
	collisions  prometheus.Counter
	fitness     *prometheus.GaugeVec
	tickSeconds prometheus.Gauge
	phaseSecs   *prometheus.GaugeVec
}

// NewMetrics creates the training metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		generations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "forage",
			Name:      "generations_total",
			Help:      "Completed generations.",
		}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "forage",
			Name:      "ticks_total",
			Help:      "Simulated ticks.",
		}),
		collisions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "forage",
			Name:      "collisions_total",
			Help:      "Food items collected across all generations.",
		}),
		fitness: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "forage",
			Name:      "generation_fitness",
			Help:      "Fitness of the last completed generation.",
		}, []string{"stat"}),
		tickSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "forage",
			Name:      "tick_seconds",
			Help:      "Average wall time per tick over the perf window.",
		}),
		phaseSecs: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "forage",
			Name:      "phase_seconds",
			Help:      "Average wall time per tick spent in each phase.",
		}, []string{"phase"}),
	}
	reg.MustRegister(m.generations, m.ticks, m.collisions, m.fitness, m.tickSeconds, m.phaseSecs)
	return m
}

// ObserveGeneration records a completed generation.
// A nil *Metrics ignores the call.
func (m *Metrics) ObserveGeneration(s GenerationStats, ticks int) {
	if m == nil {
		return
	}
	m.generations.Inc()
	m.ticks.Add(float64(ticks))
	m.collisions.Add(float64(s.TotalCollisions))
	m.fitness.WithLabelValues("min").Set(s.MinFitness)
	m.fitness.WithLabelValues("max").Set(s.MaxFitness)
	m.fitness.WithLabelValues("avg").Set(s.AvgFitness)
	m.fitness.WithLabelValues("median").Set(s.MedianFitness)
}

// ObservePerf records tick timing.
func (m *Metrics) ObservePerf(s PerfStats) {
	if m == nil {
		return
	}
	m.tickSeconds.Set(s.AvgTickDuration.Seconds())
	for ph, d := range s.PhaseAvg {
		m.phaseSecs.WithLabelValues(Phase(ph).String()).Set(d.Seconds())
	}
}
