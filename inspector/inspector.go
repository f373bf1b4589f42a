// Package inspector draws a panel describing the selected animal: its eye
// readings and its brain's activations.
package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/forage/simulation"
)

// Panel dimensions
const (
	PanelWidth   = 300
	PanelPadding = 10
	HeaderHeight = 30
	visionHeight = 60
	brainHeight  = 220
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
	ColorVisionBar   = rl.Color{R: 120, G: 200, B: 90, A: 255}
)

// Inspector renders the selected-animal panel at the right screen edge.
type Inspector struct {
	panelX int32
	panelY int32
}

// NewInspector creates an inspector for a screen of the given width.
func NewInspector(screenWidth int32) *Inspector {
	return &Inspector{
		panelX: screenWidth - PanelWidth - 10,
		panelY: 10,
	}
}

// Resize moves the panel to the right edge of a resized screen.
func (ins *Inspector) Resize(screenWidth int32) {
	ins.panelX = screenWidth - PanelWidth - 10
}

// Draw renders the panel for animal index i.
func (ins *Inspector) Draw(i int, a simulation.Animal, vision []float64) {
	x, y := ins.panelX, ins.panelY
	height := int32(HeaderHeight + 3*16 + visionHeight + brainHeight + 4*PanelPadding)

	rl.DrawRectangle(x, y, PanelWidth, height, ColorPanelBg)
	rl.DrawRectangleLines(x, y, PanelWidth, height, ColorPanelBorder)
	rl.DrawRectangle(x, y, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText(fmt.Sprintf("Animal #%d", i), x+PanelPadding, y+8, 16, ColorHeaderText)
	y += HeaderHeight + PanelPadding

	lines := []string{
		fmt.Sprintf("Food eaten: %d", a.Collisions),
		fmt.Sprintf("Speed: %.4f", a.Motion.Speed),
		fmt.Sprintf("Heading: %.2f rad", a.Motion.Heading),
	}
	for _, line := range lines {
		rl.DrawText(line, x+PanelPadding, y, 12, ColorSectionText)
		y += 16
	}
	y += PanelPadding

	drawVision(x+PanelPadding, y, PanelWidth-2*PanelPadding, visionHeight, vision)
	y += visionHeight + PanelPadding

	nn := a.Brain.Network()
	DrawNetworkDiagram(x+PanelPadding, y, PanelWidth-2*PanelPadding, brainHeight, nn, nn.Activations(vision))
}

// drawVision draws one bar per eye cell, scaled to the largest reading.
func drawVision(x, y, width, height int32, vision []float64) {
	rl.DrawText("vision", x, y, 10, ColorSectionText)
	if len(vision) == 0 {
		return
	}
	peak := 1.0
	for _, v := range vision {
		peak = max(peak, v)
	}
	barW := width / int32(len(vision))
	top := y + 12
	span := float64(height - 12)
	for c, v := range vision {
		h := int32(v / peak * span)
		rl.DrawRectangle(x+int32(c)*barW+1, top+int32(span)-h, barW-2, h, ColorVisionBar)
	}
}
