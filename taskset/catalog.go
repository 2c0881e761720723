package taskset

import (
	"fmt"
	"math"
)

// FragmentSpec describes a timed unit of work that can be placed in a segment.
// Fragments with a ParallelName offer a contention-free variant of the same cost.
type FragmentSpec struct {
	Name         string  `json:"name" yaml:"name"`
	ParallelName string  `json:"para_name,omitempty" yaml:"para_name,omitempty"`
	Cost         float64 `json:"cost" yaml:"cost"`
}

// HasParallel reports whether the fragment offers a parallel variant.
func (f FragmentSpec) HasParallel() bool {
	return f.ParallelName != ""
}

// Catalog is an immutable list of fragments the filler draws from.
type Catalog []FragmentSpec

var sharedCatalog = Catalog{
	{Name: "API_fragment0", ParallelName: "API_para_fragment0", Cost: 6.4},
	{Name: "API_fragment1", ParallelName: "API_para_fragment1", Cost: 3.8},
	{Name: "API_fragment2", ParallelName: "API_para_fragment2", Cost: 8},
	{Name: "API_fragment3", ParallelName: "API_para_fragment3", Cost: 5.2},
	{Name: "API_fragment4", ParallelName: "API_para_fragment4", Cost: 6},
	{Name: "API_fragment5", ParallelName: "API_para_fragment5", Cost: 20},
}

var plainCatalog = Catalog{
	{Name: "benchmark_fragment0", Cost: 0.04},
	{Name: "benchmark_fragment1", Cost: 0.4},
	{Name: "benchmark_fragment2", Cost: 0.04},
	{Name: "benchmark_fragment3", Cost: 0.2},
	{Name: "benchmark_fragment4", Cost: 3.64},
	{Name: "benchmark_fragment5", Cost: 21.64},
	{Name: "benchmark_fragment6", Cost: 6.56},
	{Name: "benchmark_fragment7", Cost: 0.56},
	{Name: "benchmark_fragment8", Cost: 3.4},
}

// SharedCatalog returns a copy of the shared-resource catalog used for
// contended access segments.
func SharedCatalog() Catalog {
	return append(Catalog(nil), sharedCatalog...)
}

// PlainCatalog returns a copy of the plain catalog used for uncontended segments.
func PlainCatalog() Catalog {
	return append(Catalog(nil), plainCatalog...)
}

// MinCost returns the smallest fragment cost, or +Inf for an empty catalog.
func (c Catalog) MinCost() float64 {
	minCost := math.Inf(1)
	for _, f := range c {
		minCost = min(minCost, f.Cost)
	}
	return minCost
}

// Validate checks that the catalog can drive the filler to termination:
// it must be non-empty, every cost must be positive and finite, and names
// (including parallel names) must be unique.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("catalog is empty")
	}

	seen := make(map[string]struct{}, len(c)*2)
	for _, f := range c {
		if f.Name == "" {
			return fmt.Errorf("fragment with empty name")
		}
		if !(f.Cost > 0) || math.IsInf(f.Cost, 0) {
			return fmt.Errorf("fragment %s has non-positive cost %v", f.Name, f.Cost)
		}
		for _, name := range []string{f.Name, f.ParallelName} {
			if name == "" {
				continue
			}
			if _, dup := seen[name]; dup {
				return fmt.Errorf("duplicate fragment name %s", name)
			}
			seen[name] = struct{}{}
		}
	}
	return nil
}

// Names returns every name a filler can emit from this catalog, including
// parallel variants, in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c)*2)
	for _, f := range c {
		names = append(names, f.Name)
		if f.HasParallel() {
			names = append(names, f.ParallelName)
		}
	}
	return names
}

// Cost returns the cost of a fragment by either of its names.
func (c Catalog) Cost(name string) (float64, bool) {
	for _, f := range c {
		if f.Name == name || (f.HasParallel() && f.ParallelName == name) {
			return f.Cost, true
		}
	}
	return 0, false
}

// LookupCost resolves a fragment cost across the built-in shared and plain catalogs.
func LookupCost(name string) (float64, bool) {
	if cost, ok := sharedCatalog.Cost(name); ok {
		return cost, true
	}
	return plainCatalog.Cost(name)
}
