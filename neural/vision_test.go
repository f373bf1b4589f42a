package neural

import (
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

const testCells = 13

// render maps readings to characters so expectations stay readable.
func render(vision []float64) string {
	var sb strings.Builder
	for _, e := range vision {
		switch {
		case e >= 0.7:
			sb.WriteByte('#')
		case e >= 0.3:
			sb.WriteByte('+')
		case e > 0:
			sb.WriteByte('.')
		default:
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

func TestEyeRanges(t *testing.T) {
	tests := []struct {
		fovRange float64
		want     string
	}{
		{1.0, "      +      "},
		{0.9, "      +      "},
		{0.8, "      +      "},
		{0.7, "      .      "},
		{0.6, "      .      "},
		{0.5, "             "},
		{0.4, "             "},
		{0.3, "             "},
		{0.1, "             "},
	}

	for _, tt := range tests {
		eye := NewEye(tt.fovRange, math.Pi/2, testCells)
		got := render(eye.ProcessVision(r2.Vec{X: 0.5, Y: 0.5}, 0, []r2.Vec{{X: 1.0, Y: 0.5}}))
		if got != tt.want {
			t.Errorf("range %v: got %q, want %q", tt.fovRange, got, tt.want)
		}
	}
}

func TestEyeRotations(t *testing.T) {
	tests := []struct {
		turns float64 // multiples of π
		want  string
	}{
		{0.00, "         +   "},
		{0.25, "        +    "},
		{0.50, "      +      "},
		{0.75, "    +        "},
		{1.00, "   +         "},
		{1.25, " +           "},
		{1.50, "            +"},
		{1.75, "           + "},
		{2.00, "         +   "},
		{2.25, "        +    "},
		{2.50, "      +      "},
	}

	eye := NewEye(1.0, 2*math.Pi, testCells)
	for _, tt := range tests {
		heading := tt.turns * math.Pi
		got := render(eye.ProcessVision(r2.Vec{X: 0.5, Y: 0.5}, heading, []r2.Vec{{X: 0.5, Y: 1.0}}))
		if got != tt.want {
			t.Errorf("heading %vπ: got %q, want %q", tt.turns, got, tt.want)
		}
	}
}

func TestEyePositions(t *testing.T) {
	tests := []struct {
		x, y float64
		want string
	}{
		{0.9, 0.5, "#           #"},
		{0.8, 0.5, "  #       #  "},
		{0.7, 0.5, "   +     +   "},
		{0.6, 0.5, "    +   +    "},
		{0.5, 0.5, "    +   +    "},
		{0.4, 0.5, "     + +     "},
		{0.3, 0.5, "     . .     "},
		{0.2, 0.5, "     . .     "},
		{0.1, 0.5, "     . .     "},
		{0.0, 0.5, "             "},
		{0.5, 0.0, "            +"},
		{0.5, 0.1, "          + ."},
		{0.5, 0.2, "         +  +"},
		{0.5, 0.3, "        + +  "},
		{0.5, 0.4, "      +  +   "},
		{0.5, 0.6, "   +  +      "},
		{0.5, 0.7, "  + +        "},
		{0.5, 0.8, "+  +         "},
		{0.5, 0.9, ". +          "},
		{0.5, 1.0, "+            "},
	}

	eye := NewEye(1.0, math.Pi/2, testCells)
	food := []r2.Vec{{X: 1.0, Y: 0.4}, {X: 1.0, Y: 0.6}}
	for _, tt := range tests {
		got := render(eye.ProcessVision(r2.Vec{X: tt.x, Y: tt.y}, 0, food))
		if got != tt.want {
			t.Errorf("position (%v, %v): got %q, want %q", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestEyeFieldsOfView(t *testing.T) {
	tests := []struct {
		turns float64 // fov as multiples of π
		want  string
	}{
		{0.25, " +         + "},
		{0.50, ".  +     +  ."},
		{0.75, "  . +   + .  "},
		{1.00, "   . + + .   "},
		{1.25, "   . + + .   "},
		{1.50, ".   .+ +.   ."},
		{1.75, ".   .+ +.   ."},
		{2.00, "+.  .+ +.  .+"},
	}

	food := []r2.Vec{
		{X: 0.0, Y: 0.0}, {X: 0.0, Y: 0.33}, {X: 0.0, Y: 0.66}, {X: 0.0, Y: 1.0},
		{X: 1.0, Y: 0.0}, {X: 1.0, Y: 0.33}, {X: 1.0, Y: 0.66}, {X: 1.0, Y: 1.0},
	}
	for _, tt := range tests {
		eye := NewEye(1.0, tt.turns*math.Pi, testCells)
		got := render(eye.ProcessVision(r2.Vec{X: 0.5, Y: 0.5}, 0, food))
		if got != tt.want {
			t.Errorf("fov %vπ: got %q, want %q", tt.turns, got, tt.want)
		}
	}
}

func TestEyeOutputLength(t *testing.T) {
	eye := NewEye(0.25, 1.5*math.Pi, 9)
	for _, n := range []int{0, 1, 100} {
		food := make([]r2.Vec, n)
		if got := len(eye.ProcessVision(r2.Vec{}, 0, food)); got != 9 {
			t.Errorf("%d food items gave %d cells, want 9", n, got)
		}
	}
}

func TestEyeRangeBoundary(t *testing.T) {
	eye := NewEye(0.5, 2*math.Pi, 4)

	at := eye.ProcessVision(r2.Vec{X: 0.5, Y: 0.5}, 0, []r2.Vec{{X: 1.0, Y: 0.5}})
	for i, e := range at {
		if e != 0 {
			t.Errorf("food at exactly fov range lit cell %d with %v", i, e)
		}
	}

	on := eye.ProcessVision(r2.Vec{X: 0.5, Y: 0.5}, 0, []r2.Vec{{X: 0.5, Y: 0.5}})
	total := 0.0
	for _, e := range on {
		total += e
	}
	if total != 1 {
		t.Errorf("food on top of the eye contributed %v, want 1", total)
	}
}

func TestEyeAccumulates(t *testing.T) {
	eye := NewEye(1.0, math.Pi/2, 1)
	food := []r2.Vec{{X: 0.75, Y: 0.5}, {X: 0.75, Y: 0.5}, {X: 0.75, Y: 0.5}}
	got := eye.ProcessVision(r2.Vec{X: 0.5, Y: 0.5}, 0, food)
	if math.Abs(got[0]-2.25) > 1e-12 {
		t.Errorf("three items at distance 0.25 gave %v, want 2.25", got[0])
	}
}

func TestNewEyePanics(t *testing.T) {
	tests := []struct {
		name            string
		fovRange, angle float64
		cells           int
	}{
		{"zero range", 0, 1, 1},
		{"negative angle", 1, -1, 1},
		{"zero cells", 1, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			NewEye(tt.fovRange, tt.angle, tt.cells)
		})
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
	}
	for _, tt := range tests {
		if got := WrapAngle(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("WrapAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
