package simulation

import (
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/forage/genetic"
)

// evolve replaces every animal with offspring bred from the current
// generation and scatters the food again.
func (s *Simulation) evolve(rng *rand.Rand) genetic.Statistics {
	s.age = 0

	animals := s.world.Animals()
	population := make([]*AnimalIndividual, len(animals))
	fitness := make([]float64, len(animals))
	for i, a := range animals {
		population[i] = individualFromAnimal(a)
		fitness[i] = population[i].Fitness()
	}

	offspring, stats := s.ga.Evolve(rng, population)

	chromosomes := make([]genetic.Chromosome, len(offspring))
	for i, o := range offspring {
		chromosomes[i] = o.Chromosome()
	}
	s.world.replaceAnimals(rng, chromosomes)
	s.world.relocateFood(rng)

	s.generation++
	s.lastFitness = fitness

	slog.Debug("generation complete",
		"generation", s.generation,
		"tick", s.tick,
		"stats", stats,
	)
	return stats
}
