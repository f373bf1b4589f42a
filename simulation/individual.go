package simulation

import "github.com/pthm-cable/forage/genetic"

// AnimalIndividual is an animal as seen by the genetic algorithm: its brain
// weights scored by the food it collected.
type AnimalIndividual struct {
	fitness    float64
	chromosome genetic.Chromosome
}

// NewAnimalIndividual wraps an offspring chromosome. Offspring have not been
// scored yet, so their fitness is zero.
func NewAnimalIndividual(c genetic.Chromosome) *AnimalIndividual {
	return &AnimalIndividual{chromosome: c}
}

func individualFromAnimal(a Animal) *AnimalIndividual {
	return &AnimalIndividual{
		fitness:    float64(a.Collisions),
		chromosome: genetic.Collect(a.Brain.Weights()),
	}
}

// Fitness returns the number of collisions the animal scored.
func (a *AnimalIndividual) Fitness() float64 { return a.fitness }

// Chromosome returns the flattened brain weights.
func (a *AnimalIndividual) Chromosome() genetic.Chromosome { return a.chromosome }
