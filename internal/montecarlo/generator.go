package montecarlo

import "math/rand/v2"

// pcgStream is the increment selector of the PCG source. Chunks differ by
// state seed, not by stream.
const pcgStream = 0xda3e39cb94b95bdb

// SampleGenerator produces independent uniform points in [0,1)². It is not
// safe for concurrent use; each chunk owns one.
type SampleGenerator struct {
	rng *rand.Rand
}

// NewSampleGenerator returns a generator seeded with seed.
func NewSampleGenerator(seed uint64) *SampleGenerator {
	return &SampleGenerator{rng: rand.New(rand.NewPCG(seed, pcgStream))}
}

// Point draws the next point of the unit square.
func (g *SampleGenerator) Point() (x, y float64) {
	return g.rng.Float64(), g.rng.Float64()
}

// ChunkSeed derives the seed of chunk index from the root seed with the
// splitmix64 finalizer, so neighbouring chunks start from uncorrelated states.
func ChunkSeed(root, index uint64) uint64 {
	z := root + (index+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
