package telemetry

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsObserveGeneration(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveGeneration(GenerationStats{MinFitness: 1, MaxFitness: 9, AvgFitness: 4.5, TotalCollisions: 45}, 3001)
	m.ObserveGeneration(GenerationStats{MinFitness: 2, MaxFitness: 12, AvgFitness: 6, TotalCollisions: 60}, 3001)

	if got := testutil.ToFloat64(m.generations); got != 2 {
		t.Errorf("generations = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.ticks); got != 6002 {
		t.Errorf("ticks = %v, want 6002", got)
	}
	if got := testutil.ToFloat64(m.collisions); got != 105 {
		t.Errorf("collisions = %v, want 105", got)
	}
	if got := testutil.ToFloat64(m.fitness.WithLabelValues("max")); got != 12 {
		t.Errorf("max fitness = %v, want 12", got)
	}

	perf := PerfStats{AvgTickDuration: 2 * time.Millisecond}
	perf.PhaseAvg[PhaseBrain] = 1500 * time.Microsecond
	m.ObservePerf(perf)
	if got := testutil.ToFloat64(m.tickSeconds); got != 0.002 {
		t.Errorf("tick seconds = %v, want 0.002", got)
	}
	if got := testutil.ToFloat64(m.phaseSecs.WithLabelValues("brain")); got != 0.0015 {
		t.Errorf("brain seconds = %v, want 0.0015", got)
	}
}

func TestMetricsNil(t *testing.T) {
	var m *Metrics
	m.ObserveGeneration(GenerationStats{}, 1)
	m.ObservePerf(PerfStats{})
}
