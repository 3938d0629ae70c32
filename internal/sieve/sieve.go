// Package sieve counts primes with the Sieve of Eratosthenes.
package sieve

import (
	"math"
	"time"
)

// Result is the outcome of one prime count.
type Result struct {
	// Count is the number of primes p with p <= Limit.
	Count uint64 `json:"count"`
	// ElapsedMs is the wall time of the sieve in milliseconds.
	ElapsedMs float64 `json:"elapsed_ms"`
	// Limit echoes the requested bound.
	Limit uint32 `json:"limit"`
}

// Count returns the number of primes up to and including limit. It allocates
// limit+1 bytes; limits below 2 return immediately without allocating.
func Count(limit uint32) Result {
	start := time.Now()

	if limit < 2 {
		return Result{Count: 0, ElapsedMs: millis(time.Since(start)), Limit: limit}
	}

	composite := Mark(limit)
	var count uint64
	for _, c := range composite {
		if !c {
			count++
		}
	}
	elapsed := time.Since(start)

	return Result{Count: count, ElapsedMs: millis(elapsed), Limit: limit}
}

// Mark returns a table of limit+1 entries where entry i is true when i is not
// prime. Entries 0 and 1 are always marked.
func Mark(limit uint32) []bool {
	n := uint64(limit)
	composite := make([]bool, n+1)
	for i := uint64(0); i <= min(n, 1); i++ {
		composite[i] = true
	}

	sqrtLimit := uint64(math.Sqrt(float64(limit)))
	for i := uint64(2); i <= sqrtLimit; i++ {
		if composite[i] {
			continue
		}
		for j := i * i; j <= n; j += i {
			composite[j] = true
		}
	}
	return composite
}

// Primes returns the primes up to and including limit in increasing order.
func Primes(limit uint32) []uint32 {
	if limit < 2 {
		return nil
	}
	var primes []uint32
	for i, c := range Mark(limit) {
		if !c {
			primes = append(primes, uint32(i))
		}
	}
	return primes
}

func millis(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}
