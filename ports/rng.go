package ports

import "math/rand"

// RNGPort provides seeded random number generation for deterministic simulation
type RNGPort interface {
	// SeededStream creates the single deterministic generator used by a
	// sequential run. Streams with the same (name, seed) produce identical
	// draw sequences.
	SeededStream(name string, seed int64) *rand.Rand

	// IterationStream derives an independent deterministic generator for one
	// (endpoint, iteration) pair so parallel execution order cannot affect
	// the numeric outcome.
	IterationStream(endpoint string, baseSeed int64, iteration int) *rand.Rand

	// ValidateSeed ensures the seed produces expected deterministic results
	ValidateSeed(name string, seed int64, expected []float64) error
}
