package genetic

import (
	"fmt"
	"math/rand"
)

// GeneticAlgorithm replaces a whole population per generation using a fixed
// selection, crossover and mutation.
type GeneticAlgorithm[I Individual] struct {
	selection Selection
	crossover Crossover
	mutation  Mutation
	create    func(Chromosome) I
}

// New returns a GeneticAlgorithm that builds offspring with create.
// It panics if the mutation parameters are invalid.
func New[I Individual](selection Selection, crossover Crossover, mutation Mutation, create func(Chromosome) I) *GeneticAlgorithm[I] {
	if err := mutation.Validate(); err != nil {
		panic("genetic: " + err.Error())
	}
	if create == nil {
		panic("genetic: nil individual constructor")
	}
	return &GeneticAlgorithm[I]{
		selection: selection,
		crossover: crossover,
		mutation:  mutation,
		create:    create,
	}
}

// Selection returns the configured selection method.
func (ga *GeneticAlgorithm[I]) Selection() Selection { return ga.selection }

// Crossover returns the configured crossover method.
func (ga *GeneticAlgorithm[I]) Crossover() Crossover { return ga.crossover }

// Mutation returns the configured mutation.
func (ga *GeneticAlgorithm[I]) Mutation() Mutation { return ga.mutation }

// Evolve returns a new population of the same size bred from population,
// together with statistics of the input population.
func (ga *GeneticAlgorithm[I]) Evolve(rng *rand.Rand, population []I) ([]I, Statistics) {
	if len(population) == 0 {
		panic("genetic: evolve of an empty population")
	}

	fitness := fitnesses(population)
	next := make([]I, len(population))
	for i := range next {
		a := population[ga.selection.Pick(rng, fitness)].Chromosome()
		b := population[ga.selection.Pick(rng, fitness)].Chromosome()
		if len(a) != len(b) {
			panic(fmt.Sprintf("genetic: parents with %d and %d genes", len(a), len(b)))
		}

		child := ga.crossover.Apply(rng, a, b)
		ga.mutation.Apply(rng, child)
		next[i] = ga.create(child)
	}

	return next, NewStatistics(population)
}
