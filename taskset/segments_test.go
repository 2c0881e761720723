package taskset

import (
	"errors"
	"testing"
)

func TestGenerateSegments_AlternatesKinds(t *testing.T) {
	for _, fn := range []int{1, 2, 3, 10, 11} {
		segs, err := GenerateSegments(NewRand(int64(fn)), fn, 400, 0.5, 200, 0.5)
		if err != nil {
			t.Fatalf("fn=%d: unexpected error: %v", fn, err)
		}
		if len(segs) != fn {
			t.Fatalf("fn=%d: expected %d segments, got %d", fn, fn, len(segs))
		}
		for i, s := range segs {
			want := ContendedAccess
			if i%2 == 1 {
				want = Uncontended
			}
			if s.Kind != want {
				t.Errorf("fn=%d: segment %d expected %s, got %s", fn, i, want, s.Kind)
			}
		}
	}
}

func TestGenerateSegments_Budgets(t *testing.T) {
	tests := []struct {
		name   string
		wcet   int
		cr     float64
		rafMax int
		fn     int
	}{
		{name: "balanced", wcet: 400, cr: 0.5, rafMax: 1000, fn: 10},
		{name: "all contended", wcet: 333, cr: 1, rafMax: 1000, fn: 6},
		{name: "all uncontended", wcet: 333, cr: 0, rafMax: 1000, fn: 6},
		{name: "odd count", wcet: 250, cr: 0.3, rafMax: 1000, fn: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs, err := GenerateSegments(NewRand(3), tt.fn, tt.wcet, tt.cr, tt.rafMax, 0.5)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var contended, uncontended int
			for _, s := range segs {
				if s.Kind == ContendedAccess {
					contended += s.Budget
					assertGreedyMaximal(t, s, SharedCatalog())
				} else {
					uncontended += s.Budget
					assertGreedyMaximal(t, s, PlainCatalog())
				}
			}

			wantContended := int(float64(tt.wcet) * tt.cr)
			if contended != wantContended {
				t.Errorf("expected contended budgets to sum to %d, got %d", wantContended, contended)
			}
			if uncontended != tt.wcet-wantContended {
				t.Errorf("expected uncontended budgets to sum to %d, got %d", tt.wcet-wantContended, uncontended)
			}
		})
	}
}

func TestGenerateSegments_CapsContendedBudget(t *testing.T) {
	const rafMax = 30

	for seed := range int64(20) {
		segs, err := GenerateSegments(NewRand(seed), 4, 500, 1, rafMax, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i, s := range segs {
			if s.Kind == ContendedAccess && s.Budget > rafMax {
				t.Fatalf("seed %d: segment %d budget %d exceeds cap %d", seed, i, s.Budget, rafMax)
			}
		}
	}
}

func TestGenerateSegments_ZeroBudgetSegmentIsEmpty(t *testing.T) {
	segs, err := GenerateSegments(NewRand(1), 2, 300, 1, 1000, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	nf := segs[1]
	if nf.Budget != 0 {
		t.Fatalf("expected zero uncontended budget, got %d", nf.Budget)
	}
	if len(nf.Fragments) != 0 {
		t.Fatalf("expected empty fragment sequence, got %v", nf.Fragments)
	}
}

func TestGenerateSegments_RejectsInvalidInput(t *testing.T) {
	if _, err := GenerateSegments(NewRand(1), 0, 300, 0.5, 100, 0.5); !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected configuration error for fn=0, got %v", err)
	}
	if _, err := GenerateSegments(NewRand(1), 4, 300, 1.5, 100, 0.5); !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected configuration error for cr=1.5, got %v", err)
	}
}

func TestGenerateSegments_PartitionStrategies(t *testing.T) {
	for _, pt := range []PartitionType{PartitionDirichlet, PartitionUUniFast, PartitionEqual} {
		t.Run(pt.String(), func(t *testing.T) {
			segs, err := GenerateSegments(NewRand(8), 8, 480, 0.5, 1000, 0.5, WithPartition(pt))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			total := 0
			for _, s := range segs {
				total += s.Budget
			}
			if total != 480 {
				t.Errorf("expected budgets to sum to 480, got %d", total)
			}
		})
	}
}
