package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/forage/genetic"
)

// History keeps the statistics of the most recent generations for the
// fitness plot.
type History struct {
	stats []genetic.Statistics
	limit int
}

// NewHistory creates a history holding at most limit generations.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Push records a completed generation, dropping the oldest when full.
func (h *History) Push(s genetic.Statistics) {
	if len(h.stats) == h.limit {
		copy(h.stats, h.stats[1:])
		h.stats = h.stats[:len(h.stats)-1]
	}
	h.stats = append(h.stats, s)
}

// Len returns the number of recorded generations.
func (h *History) Len() int { return len(h.stats) }

// Last returns the most recent statistics.
func (h *History) Last() (genetic.Statistics, bool) {
	if len(h.stats) == 0 {
		return genetic.Statistics{}, false
	}
	return h.stats[len(h.stats)-1], true
}

// peak returns the largest max fitness recorded, at least 1.
func (h *History) peak() float64 {
	peak := 1.0
	for _, s := range h.stats {
		peak = max(peak, s.MaxFitness)
	}
	return peak
}

// Draw plots max and average fitness inside the given rectangle.
func (h *History) Draw(t Theme, x, y, width, height int32) {
	t.drawPanel(x, y, width, height)
	rl.DrawText("fitness (max / avg)", x+4, y+4, 10, t.Text)
	if len(h.stats) < 2 {
		return
	}

	peak := h.peak()
	step := float32(width-2) / float32(h.limit-1)
	point := func(i int, v float64) rl.Vector2 {
		return rl.Vector2{
			X: float32(x+1) + float32(i)*step,
			Y: float32(y+height-2) - float32(v/peak)*float32(height-18),
		}
	}
	for i := 1; i < len(h.stats); i++ {
		prev, cur := h.stats[i-1], h.stats[i]
		rl.DrawLineV(point(i-1, prev.MaxFitness), point(i, cur.MaxFitness), t.PlotMax)
		rl.DrawLineV(point(i-1, prev.AvgFitness), point(i, cur.AvgFitness), t.PlotAvg)
	}
}
