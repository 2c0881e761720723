package algorithms

import "math/rand"

// Partitioner splits an integer budget into random shares.
//
// Implementations are private and built by NewPartitioner; taskset selects
// one through its PartitionType option.
type Partitioner interface {
	// Partition splits total into n non-negative integer shares that sum to total.
	// It returns an empty slice when n <= 0. All randomness comes from rng.
	Partition(rng *rand.Rand, total, n int) []int
}
