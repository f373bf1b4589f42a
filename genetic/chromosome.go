// Package genetic implements a generational genetic algorithm over
// real-valued chromosomes.
package genetic

import "iter"

// Chromosome is an ordered, fixed-length sequence of genes.
type Chromosome []float64

// Collect gathers a gene sequence into a new Chromosome.
func Collect(genes iter.Seq[float64]) Chromosome {
	var c Chromosome
	for g := range genes {
		c = append(c, g)
	}
	return c
}

// Len returns the number of genes.
func (c Chromosome) Len() int {
	return len(c)
}

// Genes returns a lazy sequence over the genes in order.
func (c Chromosome) Genes() iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for _, g := range c {
			if !yield(g) {
				return
			}
		}
	}
}

// Clone returns an independent copy.
func (c Chromosome) Clone() Chromosome {
	out := make(Chromosome, len(c))
	copy(out, c)
	return out
}
