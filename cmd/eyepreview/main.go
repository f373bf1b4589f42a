// Eye preview tool - interactive visualization of the vision sensor with sliders.
//
// Usage: go run ./cmd/eyepreview
package main

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/forage/camera"
	"github.com/pthm-cable/forage/config"
	"github.com/pthm-cable/forage/neural"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	previewX     = 10
	previewY     = 10
	panelWidth   = windowWidth - previewSize - 30
)

// EyeParams holds the sensor parameters under edit.
type EyeParams struct {
	FOV     float32 // radians
	Range   float32
	Cells   int
	Heading float32
	Food    int
	Seed    int64
}

func defaultParams() EyeParams {
	cfg := config.Default()
	return EyeParams{
		FOV:     float32(cfg.Eye.FOV),
		Range:   float32(cfg.Eye.Range),
		Cells:   cfg.Eye.Cells,
		Heading: 0,
		Food:    cfg.World.Food,
		Seed:    12345,
	}
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Eye Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultParams()
	cam := camera.New(previewSize, previewSize)
	center := r2.Vec{X: 0.5, Y: 0.5}
	food := scatterFood(params.Seed, params.Food)

	for !rl.WindowShouldClose() {
		eye := neural.NewEye(float64(params.Range), float64(params.FOV), params.Cells)
		vision := eye.ProcessVision(center, float64(params.Heading), food)

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// World preview
		rl.DrawRectangle(previewX, previewY, previewSize, previewSize, rl.Color{R: 18, G: 22, B: 28, A: 255})
		for _, f := range food {
			s := cam.WorldToScreen(f)
			col := rl.Color{R: 90, G: 120, B: 70, A: 255}
			if r2.Norm(r2.Sub(f, center)) < float64(params.Range) {
				col = rl.Color{R: 120, G: 220, B: 90, A: 255}
			}
			rl.DrawCircleV(rl.Vector2{X: previewX + s.X, Y: previewY + s.Y}, 3, col)
		}
		c := cam.WorldToScreen(center)
		origin := rl.Vector2{X: previewX + c.X, Y: previewY + c.Y}
		const rad2deg = 180 / math.Pi
		rl.DrawCircleSectorLines(origin, cam.Scale(float64(params.Range)),
			(params.Heading-params.FOV/2)*rad2deg, (params.Heading+params.FOV/2)*rad2deg,
			32, rl.Color{R: 200, G: 200, B: 255, A: 160})
		rl.DrawCircleV(origin, 5, rl.Orange)
		rl.DrawRectangleLines(previewX, previewY, previewSize, previewSize, rl.DarkGray)

		// Vision bars
		barsY := int32(previewY + previewSize + 15)
		rl.DrawText("Vision cells", previewX, barsY, 16, rl.DarkGray)
		drawBars(previewX, barsY+22, previewSize, windowHeight-barsY-40, vision)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Eye Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		slider := func(label, format string, value, lo, hi float32) float32 {
			rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			v := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				fmt.Sprintf("%v", lo), fmt.Sprintf("%v", hi),
				value, lo, hi,
			)
			rl.DrawText(fmt.Sprintf(format, v), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			panelY += 35
			return v
		}

		params.FOV = slider("Field of view (radians)", "%.2f", params.FOV, 0.1, 2*math.Pi)
		params.Range = slider("Range (world units)", "%.3f", params.Range, 0.01, 0.5)
		params.Cells = int(slider("Cells (angular resolution)", "%.0f", float32(params.Cells), 1, 32))
		params.Heading = slider("Heading (radians)", "%.2f", params.Heading, -math.Pi, math.Pi)
		if n := int(slider("Food items", "%.0f", float32(params.Food), 0, 500)); n != params.Food {
			params.Food = n
			food = scatterFood(params.Seed, params.Food)
		}
		panelY += 10

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = rand.Int63n(99999)
			food = scatterFood(params.Seed, params.Food)
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
			food = scatterFood(params.Seed, params.Food)
		}
		panelY += 55

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		yamlLines := []string{
			"eye:",
			fmt.Sprintf("  fov: %.4f", params.FOV),
			fmt.Sprintf("  range: %.3f", params.Range),
			fmt.Sprintf("  cells: %d", params.Cells),
		}
		for _, line := range yamlLines {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(strings.Join(yamlLines, "\n"))
		}

		rl.EndDrawing()
	}
}

// scatterFood places n food items uniformly on the unit square.
func scatterFood(seed int64, n int) []r2.Vec {
	rng := rand.New(rand.NewSource(seed))
	food := make([]r2.Vec, n)
	for i := range food {
		food[i] = r2.Vec{X: rng.Float64(), Y: rng.Float64()}
	}
	return food
}

// drawBars draws one bar per vision cell, scaled to the largest reading.
func drawBars(x, y, width, height int32, vision []float64) {
	rl.DrawRectangleLines(x, y, width, height, rl.LightGray)
	peak := 1.0
	for _, v := range vision {
		peak = max(peak, v)
	}
	barW := width / int32(len(vision))
	for i, v := range vision {
		h := int32(v / peak * float64(height-4))
		rl.DrawRectangle(x+int32(i)*barW+2, y+height-2-h, barW-4, h, rl.Color{R: 100, G: 170, B: 80, A: 255})
		rl.DrawText(fmt.Sprintf("%.1f", v), x+int32(i)*barW+2, y+height+2, 10, rl.Gray)
	}
}
