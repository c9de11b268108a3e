package tables

import (
	"fmt"
	"math/rand"
)

// Sampler draws per-sample genotype classes for a variant under
// Hardy-Weinberg equilibrium. Given the alternate allele frequency q and
// p = 1-q, each sample independently lands in {hom-ref, het, hom-alt}
// with probabilities {p², 2pq, q²}.
//
// The random source is explicit so a fixed seed reproduces a run exactly.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler creates a sampler backed by a source seeded with seed.
func NewSampler(seed int64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(seed))}
}

// NewSamplerFromRand creates a sampler sharing an existing source.
func NewSamplerFromRand(rng *rand.Rand) *Sampler {
	return &Sampler{rng: rng}
}

// Draw samples genotype class codes for n samples at alternate allele
// frequency q. q outside [0,1] is rejected before any sampling occurs.
func (s *Sampler) Draw(q float64, n int) ([]uint8, error) {
	if q < 0 || q > 1 {
		return nil, fmt.Errorf("allele frequency %v outside [0,1]", q)
	}
	if n < 0 {
		return nil, fmt.Errorf("negative sample count %d", n)
	}

	p := 1 - q
	homRef := p * p
	het := 2 * p * q

	codes := make([]uint8, n)
	for i := range codes {
		r := s.rng.Float64()
		switch {
		case r < homRef:
			codes[i] = CodeHomRef
		case r < homRef+het:
			codes[i] = CodeHet
		default:
			codes[i] = CodeHomAlt
		}
	}
	return codes, nil
}
