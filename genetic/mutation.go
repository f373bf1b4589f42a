package genetic

import (
	"fmt"
	"math/rand"
)

// MutationMethod identifies a mutation operator.
type MutationMethod uint8

const (
	// Gaussian nudges genes by a random signed fraction of a coefficient.
	Gaussian MutationMethod = iota
)

var mutationNames = []string{"gaussian"}

// MutationMethods lists the names accepted by ParseMutationMethod.
func MutationMethods() []string {
	return append([]string(nil), mutationNames...)
}

// ParseMutationMethod returns the mutation method with the given name.
func ParseMutationMethod(name string) (MutationMethod, error) {
	for i, n := range mutationNames {
		if n == name {
			return MutationMethod(i), nil
		}
	}
	return 0, fmt.Errorf("unknown mutation method %q", name)
}

func (m MutationMethod) String() string {
	if int(m) < len(mutationNames) {
		return mutationNames[m]
	}
	return fmt.Sprintf("MutationMethod(%d)", uint8(m))
}

// MarshalText implements encoding.TextMarshaler.
func (m MutationMethod) MarshalText() ([]byte, error) {
	if int(m) >= len(mutationNames) {
		return nil, fmt.Errorf("invalid mutation method %d", uint8(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *MutationMethod) UnmarshalText(text []byte) error {
	v, err := ParseMutationMethod(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Mutation perturbs a chromosome in place.
type Mutation struct {
	Method      MutationMethod `yaml:"method"`
	Chance      float64        `yaml:"chance"`      // Per-gene mutation probability, in [0, 1]
	Coefficient float64        `yaml:"coefficient"` // Maximum magnitude of a single change
}

// NewGaussian returns a Gaussian mutation. It panics if chance is outside [0, 1].
func NewGaussian(chance, coefficient float64) Mutation {
	m := Mutation{Method: Gaussian, Chance: chance, Coefficient: coefficient}
	if err := m.Validate(); err != nil {
		panic("genetic: " + err.Error())
	}
	return m
}

// Validate reports whether the mutation parameters are usable.
func (m Mutation) Validate() error {
	if int(m.Method) >= len(mutationNames) {
		return fmt.Errorf("invalid mutation method %d", uint8(m.Method))
	}
	if !(m.Chance >= 0 && m.Chance <= 1) {
		return fmt.Errorf("mutation chance %v outside [0, 1]", m.Chance)
	}
	return nil
}

// Apply mutates child in place.
func (m Mutation) Apply(rng *rand.Rand, child Chromosome) {
	switch m.Method {
	case Gaussian:
		for i := range child {
			sign := 1.0
			if rng.Float64() < 0.5 {
				sign = -1.0
			}
			if rng.Float64() < m.Chance {
				child[i] += sign * m.Coefficient * rng.Float64()
			}
		}
	default:
		panic(fmt.Sprintf("genetic: unknown mutation method %d", uint8(m.Method)))
	}
}

func (m Mutation) String() string {
	return fmt.Sprintf("%s(chance=%g, coefficient=%g)", m.Method, m.Chance, m.Coefficient)
}
