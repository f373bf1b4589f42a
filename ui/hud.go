package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds everything the HUD displays.
type HUDData struct {
	Generation       int
	Age              int
	GenerationLength int
	Tick             int64
	Animals          int
	Food             int
	TicksPerFrame    int
	FPS              int32
	Paused           bool
	ShowVision       bool
	History          *History
}

// Actions reports the controls the user activated this frame.
type Actions struct {
	Train         bool // finish the current generation at once
	TogglePause   bool
	ToggleVision  bool
	TicksPerFrame int
}

// HUD renders the heads-up display and its buttons.
type HUD struct {
	Theme Theme
}

// NewHUD creates a HUD with the default theme.
func NewHUD() *HUD {
	return &HUD{Theme: DefaultTheme()}
}

// Draw renders the HUD and returns the actions triggered by its buttons
// and keyboard shortcuts.
func (h *HUD) Draw(data HUDData) Actions {
	t := h.Theme
	x, y := t.Padding, t.Padding
	act := Actions{TicksPerFrame: data.TicksPerFrame}

	rl.DrawText("forage", x, y, t.HeaderFontSize, t.Title)
	y += t.HeaderFontSize + 6

	rl.DrawText(
		fmt.Sprintf("Generation: %d | Age: %d/%d | Tick: %d", data.Generation, data.Age, data.GenerationLength, data.Tick),
		x, y, t.FontSize, t.Text,
	)
	y += t.LineHeight
	rl.DrawText(
		fmt.Sprintf("Animals: %d | Food: %d | Speed: %dx | FPS: %d", data.Animals, data.Food, data.TicksPerFrame, data.FPS),
		x, y, t.FontSize, t.Text,
	)
	y += t.LineHeight
	if data.History != nil {
		if last, ok := data.History.Last(); ok {
			rl.DrawText("Last generation: "+last.String(), x, y, t.FontSize, t.Highlight)
		}
	}
	y += t.LineHeight

	if data.Paused {
		rl.DrawText("PAUSED", x, y, t.FontSize, t.Highlight)
	}
	y += t.LineHeight + 4

	bx := float32(x)
	by := float32(y)
	button := func(width float32, label string) bool {
		pressed := gui.Button(rl.Rectangle{X: bx, Y: by, Width: width, Height: t.ButtonHeight}, label)
		bx += width + 6
		return pressed
	}

	act.Train = button(70, "Train") || rl.IsKeyPressed(rl.KeyT)
	act.TogglePause = button(70, toggleText(data.Paused, "Resume", "Pause")) || rl.IsKeyPressed(rl.KeySpace)
	act.ToggleVision = button(90, toggleText(data.ShowVision, "Hide FOV", "Show FOV")) || rl.IsKeyPressed(rl.KeyV)
	if button(30, "-") || rl.IsKeyPressed(rl.KeyComma) {
		act.TicksPerFrame = max(1, act.TicksPerFrame/2)
	}
	if button(30, "+") || rl.IsKeyPressed(rl.KeyPeriod) {
		act.TicksPerFrame = min(1024, act.TicksPerFrame*2)
	}
	y += int32(t.ButtonHeight) + t.Padding

	if data.History != nil {
		data.History.Draw(t, x, y, 320, 100)
	}

	return act
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32) {
	rl.DrawText(
		"T: train | Space: pause | V: vision | </>: speed | drag: pan | wheel: zoom | R: reset view",
		h.Theme.Padding, screenHeight-25, 12, rl.Gray,
	)
}

func toggleText(on bool, ifOn, ifOff string) string {
	if on {
		return ifOn
	}
	return ifOff
}
