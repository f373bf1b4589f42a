package genetic

import (
	"fmt"
	"math/rand"
)

// Crossover combines two parent chromosomes into a child.
type Crossover uint8

const (
	// Uniform takes each gene from either parent with equal probability.
	Uniform Crossover = iota
)

var crossoverNames = []string{"uniform"}

// CrossoverMethods lists the names accepted by ParseCrossover.
func CrossoverMethods() []string {
	return append([]string(nil), crossoverNames...)
}

// ParseCrossover returns the crossover method with the given name.
func ParseCrossover(name string) (Crossover, error) {
	for i, n := range crossoverNames {
		if n == name {
			return Crossover(i), nil
		}
	}
	return 0, fmt.Errorf("unknown crossover method %q", name)
}

func (c Crossover) String() string {
	if int(c) < len(crossoverNames) {
		return crossoverNames[c]
	}
	return fmt.Sprintf("Crossover(%d)", uint8(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c Crossover) MarshalText() ([]byte, error) {
	if int(c) >= len(crossoverNames) {
		return nil, fmt.Errorf("invalid crossover method %d", uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Crossover) UnmarshalText(text []byte) error {
	v, err := ParseCrossover(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Apply produces a new child from a and b. Parents must have equal length.
func (c Crossover) Apply(rng *rand.Rand, a, b Chromosome) Chromosome {
	if len(a) != len(b) {
		panic(fmt.Sprintf("genetic: crossover of chromosomes with %d and %d genes", len(a), len(b)))
	}
	switch c {
	case Uniform:
		child := make(Chromosome, len(a))
		for i := range a {
			if rng.Float64() < 0.5 {
				child[i] = a[i]
			} else {
				child[i] = b[i]
			}
		}
		return child
	default:
		panic(fmt.Sprintf("genetic: unknown crossover method %d", uint8(c)))
	}
}
