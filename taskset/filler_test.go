package taskset

import (
	"math/rand"
	"strings"
	"testing"
)

func TestFill_RespectsBudget(t *testing.T) {
	tests := []struct {
		name    string
		budget  int
		catalog Catalog
	}{
		{name: "shared small budget", budget: 7, catalog: SharedCatalog()},
		{name: "shared large budget", budget: 500, catalog: SharedCatalog()},
		{name: "plain budget", budget: 120, catalog: PlainCatalog()},
		{name: "below min cost", budget: 3, catalog: SharedCatalog()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(11))
			for range 100 {
				seg := Segment{
					Budget:    tt.budget,
					Fragments: Fill(rng, tt.budget, tt.catalog, 0.5),
				}
				assertGreedyMaximal(t, seg, tt.catalog)
			}
		})
	}
}

func TestFill_ZeroBudget(t *testing.T) {
	got := Fill(rand.New(rand.NewSource(1)), 0, SharedCatalog(), 1)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil sequence, got %#v", got)
	}
}

func TestFill_ContentionChoosesVariant(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	contended := Fill(rng, 400, SharedCatalog(), 1)
	for _, name := range contended {
		if strings.Contains(name, "para") {
			t.Fatalf("contention 1 must never pick a parallel variant, got %s", name)
		}
	}

	parallel := Fill(rng, 400, SharedCatalog(), 0)
	for _, name := range parallel {
		if !strings.Contains(name, "para") {
			t.Fatalf("contention 0 must always pick a parallel variant, got %s", name)
		}
	}
}

func TestFill_InvalidCatalogTerminates(t *testing.T) {
	bad := Catalog{{Name: "free", Cost: 0}}
	if got := Fill(rand.New(rand.NewSource(1)), 100, bad, 0.5); len(got) != 0 {
		t.Fatalf("expected no fragments from a zero-cost catalog, got %d", len(got))
	}
}

func TestCatalog_Validate(t *testing.T) {
	tests := []struct {
		name    string
		catalog Catalog
		wantErr bool
	}{
		{name: "shared", catalog: SharedCatalog()},
		{name: "plain", catalog: PlainCatalog()},
		{name: "empty", catalog: Catalog{}, wantErr: true},
		{name: "zero cost", catalog: Catalog{{Name: "a", Cost: 0}}, wantErr: true},
		{name: "negative cost", catalog: Catalog{{Name: "a", Cost: -1}}, wantErr: true},
		{name: "unnamed", catalog: Catalog{{Cost: 1}}, wantErr: true},
		{
			name:    "duplicate parallel name",
			catalog: Catalog{{Name: "a", ParallelName: "p", Cost: 1}, {Name: "b", ParallelName: "p", Cost: 2}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.catalog.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLookupCost(t *testing.T) {
	tests := map[string]float64{
		"API_fragment5":       20,
		"API_para_fragment1":  3.8,
		"benchmark_fragment5": 21.64,
	}
	for name, want := range tests {
		got, ok := LookupCost(name)
		if !ok || got != want {
			t.Errorf("%s: expected cost %v, got %v (found=%v)", name, want, got, ok)
		}
	}

	if _, ok := LookupCost("nope"); ok {
		t.Error("expected unknown fragment to be missing")
	}
}

func TestCatalog_CopiesAreIndependent(t *testing.T) {
	c := SharedCatalog()
	c[0].Cost = 999

	if SharedCatalog()[0].Cost == 999 {
		t.Fatal("mutating a returned catalog must not affect the built-in one")
	}
}
