package genetic

// Individual is a member of a population as seen by the genetic algorithm.
type Individual interface {
	Fitness() float64
	Chromosome() Chromosome
}

// fitnesses extracts the fitness of every member in population order.
func fitnesses[I Individual](population []I) []float64 {
	out := make([]float64, len(population))
	for i, ind := range population {
		out[i] = ind.Fitness()
	}
	return out
}
