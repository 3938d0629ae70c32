// Package montecarlo implements a chunked, data-parallel Monte Carlo sampling
// framework over the unit square and the π estimator built on top of it.
//
// Work is split into fixed-size chunks. Each chunk owns an independently
// seeded generator and a local counter; chunks run on a bounded worker pool
// and their counts are combined with a commutative sum, so for a fixed root
// seed the result does not depend on the number of workers or on scheduling.
package montecarlo
