package genetic

import (
	"fmt"
	"math/rand"
)

// Selection picks a parent from a population using only member fitness.
type Selection uint8

const (
	// Roulette picks members with probability proportional to fitness.
	Roulette Selection = iota
	// Rank picks members with probability proportional to their fitness rank.
	Rank
	// Tournament keeps the best of a randomly sized series of random draws.
	Tournament
)

var selectionNames = []string{"roulette", "rank", "tournament"}

// SelectionMethods lists the names accepted by ParseSelection.
func SelectionMethods() []string {
	return append([]string(nil), selectionNames...)
}

// ParseSelection returns the selection method with the given name.
func ParseSelection(name string) (Selection, error) {
	for i, n := range selectionNames {
		if n == name {
			return Selection(i), nil
		}
	}
	return 0, fmt.Errorf("unknown selection method %q", name)
}

func (s Selection) String() string {
	if int(s) < len(selectionNames) {
		return selectionNames[s]
	}
	return fmt.Sprintf("Selection(%d)", uint8(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Selection) MarshalText() ([]byte, error) {
	if int(s) >= len(selectionNames) {
		return nil, fmt.Errorf("invalid selection method %d", uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Selection) UnmarshalText(text []byte) error {
	v, err := ParseSelection(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Select returns one member of population. Members are returned as stored,
// so pointer individuals are shared rather than copied.
func Select[I Individual](s Selection, rng *rand.Rand, population []I) I {
	return population[s.Pick(rng, fitnesses(population))]
}

// Pick returns the index of the selected member given each member's fitness.
// It panics on an empty population.
func (s Selection) Pick(rng *rand.Rand, fitness []float64) int {
	if len(fitness) == 0 {
		panic("genetic: selection from an empty population")
	}
	switch s {
	case Roulette:
		return pickRoulette(rng, fitness)
	case Rank:
		return pickRank(rng, fitness)
	case Tournament:
		return pickTournament(rng, fitness)
	default:
		panic(fmt.Sprintf("genetic: unknown selection method %d", uint8(s)))
	}
}

func pickRoulette(rng *rand.Rand, fitness []float64) int {
	for _, f := range fitness {
		if f < 0 {
			panic(fmt.Sprintf("genetic: roulette selection with negative fitness %v", f))
		}
	}
	return pickWeighted(rng, fitness)
}

// pickRank weights each member by 1 + the number of members it strictly
// outperforms, so tied members share a rank.
func pickRank(rng *rand.Rand, fitness []float64) int {
	n := len(fitness)
	total := float64(n*(n+1)) / 2
	weights := make([]float64, n)
	for i, fi := range fitness {
		rank := 1
		for _, fj := range fitness {
			if fi > fj {
				rank++
			}
		}
		weights[i] = float64(rank) / total
	}
	return pickWeighted(rng, weights)
}

func pickTournament(rng *rand.Rand, fitness []float64) int {
	n := len(fitness)
	size := rng.Intn(n)
	selected := rng.Intn(n)
	best := 0.0
	for range size {
		p := rng.Intn(n)
		if fitness[p] >= best {
			best = fitness[p]
			selected = p
		}
	}
	return selected
}

// pickWeighted samples an index with probability proportional to its weight.
// A zero total falls back to a uniform pick.
func pickWeighted(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return rng.Intn(len(weights))
	}

	r := rng.Float64() * total
	cum := 0.0
	for i, w := range weights {
		cum += w
		if r < cum {
			return i
		}
	}

	// Rounding can leave r just above the final cumulative sum.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return len(weights) - 1
}
