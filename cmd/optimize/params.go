package main

import (
	"github.com/pthm-cable/forage/config"
)

// param is one searched config value. CMA-ES works on [0,1] per axis; lo and
// hi map that back to the config's units.
type param struct {
	path   string
	lo, hi float64
	field  func(*config.Config) *float64
}

// mutationParams are the values a search tunes by default.
var mutationParams = []param{
	{
		path:  "evolution.mutation.chance",
		lo:    0.001,
		hi:    0.2,
		field: func(c *config.Config) *float64 { return &c.Evolution.Mutation.Chance },
	},
	{
		path:  "evolution.mutation.coefficient",
		lo:    0.01,
		hi:    2.0,
		field: func(c *config.Config) *float64 { return &c.Evolution.Mutation.Coefficient },
	},
}

// ParamVector maps between optimizer coordinates and config values.
type ParamVector struct {
	params []param
	start  []float64
}

// NewParamVector starts the search from cfg's current values, so a tuned
// config can seed the next search.
func NewParamVector(cfg *config.Config) *ParamVector {
	pv := &ParamVector{params: mutationParams}
	for _, p := range pv.params {
		pv.start = append(pv.start, *p.field(cfg))
	}
	return pv
}

// Dim returns the number of searched values.
func (pv *ParamVector) Dim() int { return len(pv.params) }

// Paths returns the config path of every searched value.
func (pv *ParamVector) Paths() []string {
	paths := make([]string, len(pv.params))
	for i, p := range pv.params {
		paths[i] = p.path
	}
	return paths
}

// DefaultVector returns the starting values, clamped to bounds.
func (pv *ParamVector) DefaultVector() []float64 {
	return pv.Clamp(pv.start)
}

// Normalize maps config values onto [0,1].
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	out := make([]float64, len(pv.params))
	for i, p := range pv.params {
		out[i] = (raw[i] - p.lo) / (p.hi - p.lo)
	}
	return out
}

// Denormalize maps optimizer coordinates back to config values.
func (pv *ParamVector) Denormalize(x []float64) []float64 {
	out := make([]float64, len(pv.params))
	for i, p := range pv.params {
		out[i] = p.lo + x[i]*(p.hi-p.lo)
	}
	return out
}

// Clamp bounds every value to its range.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	out := make([]float64, len(pv.params))
	for i, p := range pv.params {
		out[i] = max(p.lo, min(v[i], p.hi))
	}
	return out
}

// ApplyToConfig writes the clamped values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	for i, v := range pv.Clamp(values) {
		*pv.params[i].field(cfg) = v
	}
}
