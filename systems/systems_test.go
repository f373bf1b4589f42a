package systems

import (
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/neural"
)

func TestWrapUnit(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.5, 0.5},
		{1, 0},
		{1.25, 0.25},
		{-0.25, 0.75},
		{-1e-18, 0},
	}
	for _, tt := range tests {
		got := wrapUnit(tt.in)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("wrapUnit(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if got < 0 || got >= 1 {
			t.Errorf("wrapUnit(%v) = %v outside [0, 1)", tt.in, got)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := clamp(5, -1, 1); got != 1 {
		t.Errorf("clamp(5) = %v", got)
	}
	if got := clamp(-5, -1, 1); got != -1 {
		t.Errorf("clamp(-5) = %v", got)
	}
	if got := clamp(0.5, -1, 1); got != 0.5 {
		t.Errorf("clamp(0.5) = %v", got)
	}
}

func TestCollisionSystemCountsEveryFood(t *testing.T) {
	w := ecs.NewWorld()
	animalMap := ecs.NewMap2[components.Position, components.Fitness](w)
	foodMap := ecs.NewMap2[components.Position, components.Edible](w)

	animal := animalMap.NewEntity(&components.Position{X: 0.5, Y: 0.5}, &components.Fitness{})
	var food []ecs.Entity
	for _, p := range []components.Position{{X: 0.5, Y: 0.5}, {X: 0.51, Y: 0.5}, {X: 0.5, Y: 0.52}, {X: 0.9, Y: 0.9}} {
		food = append(food, foodMap.NewEntity(&p, &components.Edible{}))
	}

	sys := NewCollisionSystem(w, 0.02)
	hits := sys.Update(rand.New(rand.NewSource(42)), []ecs.Entity{animal}, food)

	if hits != 3 {
		t.Errorf("got %d hits, want 3", hits)
	}
	fit := ecs.NewMap1[components.Fitness](w).Get(animal)
	if fit.Collisions != 3 {
		t.Errorf("animal has %d collisions, want 3", fit.Collisions)
	}

	posMap := ecs.NewMap1[components.Position](w)
	if p := posMap.Get(food[3]); p.X != 0.9 || p.Y != 0.9 {
		t.Errorf("untouched food moved to %+v", *p)
	}
	if p := posMap.Get(food[0]); p.X == 0.5 && p.Y == 0.5 {
		t.Error("eaten food was not relocated")
	}
}

func TestCollisionSystemRelocatesBeforeNextAnimal(t *testing.T) {
	w := ecs.NewWorld()
	animalMap := ecs.NewMap2[components.Position, components.Fitness](w)
	foodMap := ecs.NewMap2[components.Position, components.Edible](w)

	first := animalMap.NewEntity(&components.Position{X: 0.5, Y: 0.5}, &components.Fitness{})
	second := animalMap.NewEntity(&components.Position{X: 0.5, Y: 0.5}, &components.Fitness{})
	food := foodMap.NewEntity(&components.Position{X: 0.5, Y: 0.5}, &components.Edible{})

	rng := rand.New(rand.NewSource(42))
	NewCollisionSystem(w, 0.02).Update(rng, []ecs.Entity{first, second}, []ecs.Entity{food})

	// The food is relocated to the first two draws of the same seed.
	check := rand.New(rand.NewSource(42))
	wantX, wantY := check.Float64(), check.Float64()

	fitMap := ecs.NewMap1[components.Fitness](w)
	if got := fitMap.Get(first).Collisions; got != 1 {
		t.Errorf("first animal has %d collisions, want 1", got)
	}
	wantSecond := 0
	if math.Hypot(wantX-0.5, wantY-0.5) <= 0.02 {
		wantSecond = 1
	}
	if got := fitMap.Get(second).Collisions; got != wantSecond {
		t.Errorf("second animal has %d collisions, want %d", got, wantSecond)
	}
}

func TestMovementSystemWraps(t *testing.T) {
	tests := []struct {
		name         string
		start        components.Position
		heading      float64
		speed        float64
		wantX, wantY float64
	}{
		{"east across edge", components.Position{X: 0.99, Y: 0.5}, 0, 0.02, 0.01, 0.5},
		{"north across edge", components.Position{X: 0.5, Y: 0.99}, math.Pi / 2, 0.02, 0.5, 0.01},
		{"west across edge", components.Position{X: 0.005, Y: 0.5}, math.Pi, 0.01, 0.995, 0.5},
		{"stationary", components.Position{X: 0.3, Y: 0.7}, 1, 0, 0.3, 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			mapper := ecs.NewMap2[components.Position, components.Motion](w)
			pos := tt.start
			e := mapper.NewEntity(&pos, &components.Motion{Heading: tt.heading, Speed: tt.speed})

			NewMovementSystem(w).Update()

			got := ecs.NewMap1[components.Position](w).Get(e)
			if math.Abs(got.X-tt.wantX) > 1e-9 || math.Abs(got.Y-tt.wantY) > 1e-9 {
				t.Errorf("moved to (%v, %v), want (%v, %v)", got.X, got.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestMovementSystemIgnoresFood(t *testing.T) {
	w := ecs.NewWorld()
	foodMap := ecs.NewMap2[components.Position, components.Edible](w)
	f := foodMap.NewEntity(&components.Position{X: 0.2, Y: 0.2}, &components.Edible{})

	NewMovementSystem(w).Update()

	if got := ecs.NewMap1[components.Position](w).Get(f); got.X != 0.2 || got.Y != 0.2 {
		t.Errorf("food moved to %+v", *got)
	}
}

// fixedMind returns a one-cell mind whose brain always outputs (speed, rot).
func fixedMind(speed, rot float64) components.Mind {
	weights := []float64{
		1, 0, // hidden bias, hidden weight: hidden is always 1
		0, 0, // output biases
		speed, rot, // output weights
	}
	return components.Mind{
		Eye:   neural.NewEye(0.25, math.Pi, 1),
		Brain: neural.BrainFromWeights(1, 1, slices.Values(weights)),
	}
}

func TestSteer(t *testing.T) {
	limits := MotionLimits{SpeedMin: 0.002, SpeedMax: 0.6, SpeedAccel: 0.2, RotAccel: math.Pi / 2}

	tests := []struct {
		name        string
		speedOut    float64
		rotOut      float64
		start       components.Motion
		wantSpeed   float64
		wantHeading float64
	}{
		{"within limits", 0.1, 0.3, components.Motion{Heading: 0, Speed: 0.1}, 0.2, 0.3},
		{"accel clamped", 5, 10, components.Motion{Heading: 0, Speed: 0.1}, 0.3, math.Pi / 2},
		{"speed capped", 0.2, 0, components.Motion{Heading: 1, Speed: 0.5}, 0.6, 1},
		{"heading wraps", 0, 1, components.Motion{Heading: math.Pi - 0.5, Speed: 0.002}, 0.002, -math.Pi + 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Steer(fixedMind(tt.speedOut, tt.rotOut), components.Position{X: 0.5, Y: 0.5}, tt.start, nil, limits)
			if math.Abs(got.Speed-tt.wantSpeed) > 1e-12 {
				t.Errorf("speed = %v, want %v", got.Speed, tt.wantSpeed)
			}
			if math.Abs(got.Heading-tt.wantHeading) > 1e-12 {
				t.Errorf("heading = %v, want %v", got.Heading, tt.wantHeading)
			}
		})
	}
}

func TestSteerSeesFood(t *testing.T) {
	// Hidden neuron copies the single eye cell; speed output copies hidden.
	weights := []float64{0, 1, 0, 0, 1, 0}
	mind := components.Mind{
		Eye:   neural.NewEye(0.25, math.Pi, 1),
		Brain: neural.BrainFromWeights(1, 1, slices.Values(weights)),
	}
	limits := MotionLimits{SpeedMin: 0, SpeedMax: 1, SpeedAccel: 1, RotAccel: 1}
	start := components.Motion{Heading: 0, Speed: 0}

	blind := Steer(mind, components.Position{X: 0.5, Y: 0.5}, start, nil, limits)
	seeing := Steer(mind, components.Position{X: 0.5, Y: 0.5}, start, []r2.Vec{{X: 0.6, Y: 0.5}}, limits)

	if blind.Speed != 0 {
		t.Errorf("blind speed = %v, want 0", blind.Speed)
	}
	if math.Abs(seeing.Speed-0.6) > 1e-12 {
		t.Errorf("speed with food ahead = %v, want 0.6", seeing.Speed)
	}
}
