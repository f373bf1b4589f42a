package inspector

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/forage/neural"
)

// Output labels for the brain diagram.
var OutputLabels = []string{"Speed", "Turn"}

// NetworkColors for activation visualization.
var (
	ColorNodeInactive = rl.Color{R: 60, G: 60, B: 60, A: 255}
	ColorEdgePositive = rl.Color{R: 200, G: 80, B: 80, A: 100}
	ColorEdgeNegative = rl.Color{R: 80, G: 80, B: 200, A: 100}
	ColorLabelDim     = rl.Color{R: 120, G: 120, B: 120, A: 255}
)

// DrawNetworkDiagram renders a layered network, one column per layer, with
// node colors taken from acts (input first, as from Network.Activations).
func DrawNetworkDiagram(x, y, width, height int32, nn *neural.Network, acts [][]float64) {
	if nn == nil || len(acts) == 0 {
		rl.DrawText("No network data", x+10, y+10, 14, ColorLabelDim)
		return
	}

	topology := nn.Topology()
	colWidth := float32(width) / float32(len(topology))
	nodeRadius := float32(5)

	// Node positions per column, vertically centered
	nodes := make([][]rl.Vector2, len(topology))
	for c, layer := range topology {
		spacing := float32(height-20) / float32(layer.Neurons)
		colX := float32(x) + colWidth*float32(c) + colWidth/2
		nodes[c] = make([]rl.Vector2, layer.Neurons)
		for i := range layer.Neurons {
			nodes[c][i] = rl.Vector2{
				X: colX,
				Y: float32(y) + 10 + spacing*(float32(i)+0.5),
			}
		}
	}

	// Edges, weakest skipped
	for l, layer := range nn.Layers() {
		for o := range layer.Outputs() {
			for i := range layer.Inputs() {
				weight := layer.Weights.At(o, i)
				if math.Abs(weight) < 0.1 {
					continue
				}
				drawEdge(nodes[l][i], nodes[l+1][o], weight)
			}
		}
	}

	for c := range nodes {
		for i, pos := range nodes[c] {
			var activation float64
			if c < len(acts) && i < len(acts[c]) {
				activation = acts[c][i]
			}
			drawNode(pos, nodeRadius, activation)
		}
	}

	// Output labels on the right
	out := nodes[len(nodes)-1]
	for i, pos := range out {
		if i < len(OutputLabels) {
			rl.DrawText(OutputLabels[i], int32(pos.X+nodeRadius+6), int32(pos.Y)-5, 10, ColorLabelDim)
		}
	}
}

// drawNode renders a single neuron node.
func drawNode(pos rl.Vector2, radius float32, activation float64) {
	rl.DrawCircleV(pos, radius, activationColor(activation))
	rl.DrawCircleLinesV(pos, radius, rl.Color{R: 100, G: 100, B: 100, A: 255})
}

// drawEdge renders a connection between nodes.
func drawEdge(from, to rl.Vector2, weight float64) {
	mag := math.Abs(weight)
	thickness := float32(max(0.5, min(mag*1.5, 3)))

	color := ColorEdgePositive
	if weight < 0 {
		color = ColorEdgeNegative
	}
	// Alpha follows weight magnitude
	color.A = uint8(min(40+mag*40, 150))

	rl.DrawLineEx(from, to, thickness, color)
}

// activationColor shades a node from gray toward red as its activation
// grows. ReLU activations are never negative.
func activationColor(activation float64) rl.Color {
	if activation <= 0 {
		return ColorNodeInactive
	}
	t := min(activation, 1)
	return rl.Color{
		R: uint8(60 + t*195),
		G: uint8(60 - t*30),
		B: uint8(60 - t*30),
		A: 255,
	}
}
