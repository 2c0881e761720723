package taskset

import "testing"

// baseParams returns a valid parameter set tests tweak per case.
func baseParams() Params {
	return Params{
		Cores:      4,
		Tasks:      8,
		WCETMin:    200,
		WCETMax:    500,
		Cr:         0.6,
		RaFMax:     200,
		FN:         10,
		Contention: 0.7,
	}
}

// assertGreedyMaximal checks a segment's fragments fit its budget and that
// nothing else from the catalog would still fit.
func assertGreedyMaximal(t *testing.T, seg Segment, catalog Catalog) {
	t.Helper()

	const slack = 1e-6

	used := seg.Cost(catalog)
	if used > float64(seg.Budget)+slack {
		t.Fatalf("%s segment uses %.4f of budget %d", seg.Kind, used, seg.Budget)
	}

	remaining := float64(seg.Budget) - used
	if remaining >= catalog.MinCost()+slack {
		t.Fatalf("%s segment left %.4f unused, fragment of cost %.4f still fits",
			seg.Kind, remaining, catalog.MinCost())
	}
}
