package pricing

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// splitmix64 increment, used to decorrelate per-option sample streams.
const streamStep = 0x9E3779B97F4A7C15

// PathGenerator produces standard-normal deviates for one option's path
// simulation. Generators for different options within the same run are
// seeded on disjoint streams so their samples are independent.
type PathGenerator struct {
	normal distuv.Normal
}

// NewPathGenerator returns a generator seeded with the given stream seed.
func NewPathGenerator(seed uint64) *PathGenerator {
	return &PathGenerator{
		normal: distuv.Normal{
			Mu:    0,
			Sigma: 1,
			Src:   rand.NewSource(seed),
		},
	}
}

// ForOption derives the per-option generator for option index idx from the
// run seed. The derivation depends only on (seed, idx), so the two
// execution strategies price identical samples for the same option.
func ForOption(seed uint64, idx int) *PathGenerator {
	return NewPathGenerator(seed + uint64(idx+1)*streamStep)
}

// Normal returns the next standard-normal sample.
func (g *PathGenerator) Normal() float64 {
	return g.normal.Rand()
}
