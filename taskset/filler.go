package taskset

import "math/rand"

// Fill greedily packs fragments from catalog into budget microseconds.
//
// On every step it draws uniformly among the fragments that still fit
// (cost <= remaining + Epsilon) and stops when none does, so the result is
// greedy-maximal rather than budget-exact. For a fragment with a parallel
// variant, the contended name is emitted with probability contention and the
// parallel name otherwise.
//
// The catalog must satisfy Catalog.Validate; a catalog with a non-positive
// cost would never terminate, so Fill returns an empty sequence for it.
func Fill(rng *rand.Rand, budget int, catalog Catalog, contention float64) []string {
	filled := []string{}
	if budget <= 0 || len(catalog) == 0 || !(catalog.MinCost() > 0) {
		return filled
	}

	remaining := float64(budget)
	feasible := make([]FragmentSpec, 0, len(catalog))
	for {
		feasible = feasible[:0]
		for _, f := range catalog {
			if f.Cost <= remaining+Epsilon {
				feasible = append(feasible, f)
			}
		}
		if len(feasible) == 0 {
			return filled
		}

		f := feasible[rng.Intn(len(feasible))]
		if f.HasParallel() {
			if rng.Float64() < contention {
				filled = append(filled, f.Name)
			} else {
				filled = append(filled, f.ParallelName)
			}
		} else {
			filled = append(filled, f.Name)
		}

		remaining -= f.Cost
	}
}
