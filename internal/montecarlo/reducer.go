package montecarlo

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Trial is a Bernoulli experiment evaluated once per sample. It draws what it
// needs from g and reports success.
type Trial func(g *SampleGenerator) bool

// Plan describes how a sampling workload is partitioned.
type Plan struct {
	// FullChunks is the number of chunks of exactly ChunkSize samples.
	FullChunks uint64
	// ChunkSize is the number of samples of a full chunk.
	ChunkSize uint64
	// Remainder is the size of the trailing partial chunk, 0 if none.
	Remainder uint64
}

// Chunks returns the total number of chunk tasks, remainder included.
func (p Plan) Chunks() uint64 {
	if p.Remainder > 0 {
		return p.FullChunks + 1
	}
	return p.FullChunks
}

// size returns the number of samples of chunk i.
func (p Plan) size(i uint64) uint64 {
	if i < p.FullChunks {
		return p.ChunkSize
	}
	return p.Remainder
}

// PlanChunks partitions total samples into full chunks of chunkSize plus a
// remainder. A zero chunkSize selects DefaultChunkSize.
func PlanChunks(total, chunkSize uint64) Plan {
	if chunkSize == 0 {
		chunkSize = DefaultChunkSize
	}
	return Plan{
		FullChunks: total / chunkSize,
		ChunkSize:  chunkSize,
		Remainder:  total % chunkSize,
	}
}

// Reducer runs a trial over a chunked workload on a bounded worker pool and
// sums the successes.
type Reducer struct {
	// ChunkSize is the number of samples per chunk; 0 means DefaultChunkSize.
	ChunkSize uint64
	// Workers bounds the number of chunks processed concurrently.
	Workers int
}

// Run evaluates trial total times and returns the number of successes. Chunk
// i draws from a generator seeded with ChunkSeed(seed, i). Run blocks until
// every scheduled chunk has finished; if ctx is cancelled no further chunks
// are started and ctx.Err() is returned.
func (r Reducer) Run(ctx context.Context, total, seed uint64, trial Trial) (uint64, error) {
	plan := PlanChunks(total, r.ChunkSize)

	g, gctx := errgroup.WithContext(ctx)
	if r.Workers > 0 {
		g.SetLimit(r.Workers)
	}

	var hits atomic.Uint64
	for i := uint64(0); i < plan.Chunks(); i++ {
		if gctx.Err() != nil {
			break
		}
		idx := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			hits.Add(runChunk(NewSampleGenerator(ChunkSeed(seed, idx)), plan.size(idx), trial))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return hits.Load(), nil
}

// runChunk evaluates trial n times with a chunk-local counter.
func runChunk(gen *SampleGenerator, n uint64, trial Trial) uint64 {
	var count uint64
	for j := uint64(0); j < n; j++ {
		if trial(gen) {
			count++
		}
	}
	return count
}
