// Package ui draws the viewer's heads-up display and controls.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	Title          rl.Color
	Text           rl.Color
	Highlight      rl.Color
	PlotMax        rl.Color
	PlotAvg        rl.Color
	Padding        int32
	LineHeight     int32
	FontSize       int32
	HeaderFontSize int32
	ButtonHeight   float32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 220},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		Title:          rl.White,
		Text:           rl.LightGray,
		Highlight:      rl.Yellow,
		PlotMax:        rl.Color{R: 240, G: 90, B: 80, A: 255},
		PlotAvg:        rl.Color{R: 100, G: 150, B: 200, A: 255},
		Padding:        10,
		LineHeight:     18,
		FontSize:       14,
		HeaderFontSize: 20,
		ButtonHeight:   24,
	}
}

// drawPanel draws a panel background with border.
func (t Theme) drawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, t.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, t.PanelBorder)
}
