package telemetry

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/forage/config"
)

func TestOpenStoreDisabled(t *testing.T) {
	ctx := context.Background()
	s, err := OpenStore(ctx, "")
	if err != nil || s != nil {
		t.Fatalf("OpenStore(\"\") = %v, %v; want nil, nil", s, err)
	}

	id, err := s.BeginRun(ctx, 1, config.Default())
	if err != nil || id != 0 {
		t.Errorf("BeginRun on nil store = %d, %v", id, err)
	}
	if err := s.SaveGeneration(ctx, id, GenerationStats{Generation: 1}); err != nil {
		t.Error(err)
	}
	if _, err := s.Generations(ctx, id); err == nil {
		t.Error("Generations on nil store should fail")
	}
	if err := s.Close(); err != nil {
		t.Error(err)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "runs.db")
	s, err := OpenStore(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	cfg := config.Default()
	runA, err := s.BeginRun(ctx, 42, cfg)
	if err != nil {
		t.Fatal(err)
	}
	runB, err := s.BeginRun(ctx, 43, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if runA == runB {
		t.Fatalf("runs share id %d", runA)
	}

	// Inserted out of order; read back sorted by generation.
	for _, gen := range []int{2, 1, 3} {
		g := GenerationStats{
			Generation:      gen,
			Tick:            int64(gen * 100),
			Animals:         20,
			MaxFitness:      float64(gen),
			AvgFitness:      float64(gen) / 2,
			TotalCollisions: gen * 10,
		}
		if err := s.SaveGeneration(ctx, runA, g); err != nil {
			t.Fatalf("SaveGeneration(%d): %v", gen, err)
		}
	}
	if err := s.SaveGeneration(ctx, runB, GenerationStats{Generation: 1}); err != nil {
		t.Fatal(err)
	}

	got, err := s.Generations(ctx, runA)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d generations, want 3", len(got))
	}
	for i, g := range got {
		want := i + 1
		if g.Generation != want || g.Tick != int64(want*100) || g.TotalCollisions != want*10 {
			t.Errorf("row %d = %+v", i, g)
		}
		if g.AvgFitness != float64(want)/2 {
			t.Errorf("row %d AvgFitness = %v, want %v", i, g.AvgFitness, float64(want)/2)
		}
	}

	other, err := s.Generations(ctx, runB)
	if err != nil {
		t.Fatal(err)
	}
	if len(other) != 1 {
		t.Errorf("run B has %d generations, want 1", len(other))
	}
}

func TestStoreRejectsDuplicateGeneration(t *testing.T) {
	ctx := context.Background()
	s, err := OpenStore(ctx, filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	run, err := s.BeginRun(ctx, 1, config.Default())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SaveGeneration(ctx, run, GenerationStats{Generation: 5}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveGeneration(ctx, run, GenerationStats{Generation: 5}); err == nil {
		t.Error("second save of the same generation should fail")
	}
}
