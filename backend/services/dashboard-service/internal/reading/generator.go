package reading

import "math/rand/v2"

// Source yields uniformly distributed values in [0, 1].
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
}

// Generator draws Reading Sets from its own random source.
type Generator struct {
	src Source
}

// NewGenerator builds a generator. A nil source selects a freshly seeded PCG.
func NewGenerator(src Source) *Generator {
	if src == nil {
		src = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{src: src}
}

// Generate samples every field once, independently.
func (g *Generator) Generate() Set {
	var set Set
	for i, spec := range specs {
		set[i] = sample(spec, g.src.Float64())
	}
	return set
}

func sample(spec Spec, u float64) float64 {
	return spec.Min + u*(spec.Max-spec.Min)
}
