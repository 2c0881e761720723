package algorithms

import (
	"math/rand"
	"testing"
)

func TestPartitioners_SumToTotal(t *testing.T) {
	types := []PartitionType{PartitionDirichlet, PartitionUUniFast, PartitionEqual}
	tests := []struct {
		name  string
		total int
		n     int
	}{
		{name: "single share", total: 317, n: 1},
		{name: "five shares", total: 500, n: 5},
		{name: "more shares than units", total: 3, n: 10},
		{name: "zero total", total: 0, n: 4},
		{name: "large split", total: 100000, n: 37},
	}

	for _, pt := range types {
		for _, tt := range tests {
			t.Run(pt.String()+"/"+tt.name, func(t *testing.T) {
				rng := rand.New(rand.NewSource(42))
				p := NewPartitioner(pt, 0)

				for range 50 {
					shares := p.Partition(rng, tt.total, tt.n)
					if len(shares) != tt.n {
						t.Fatalf("expected %d shares, got %d", tt.n, len(shares))
					}

					sum := 0
					for _, s := range shares {
						if s < 0 {
							t.Fatalf("negative share in %v", shares)
						}
						sum += s
					}
					if sum != tt.total {
						t.Fatalf("expected shares to sum to %d, got %d (%v)", tt.total, sum, shares)
					}
				}
			})
		}
	}
}

func TestPartitioners_NonPositiveCount(t *testing.T) {
	for _, pt := range []PartitionType{PartitionDirichlet, PartitionUUniFast, PartitionEqual} {
		p := NewPartitioner(pt, 0)
		if got := p.Partition(rand.New(rand.NewSource(1)), 100, 0); len(got) != 0 {
			t.Errorf("%s: expected empty partition, got %v", pt, got)
		}
		if got := p.Partition(rand.New(rand.NewSource(1)), 100, -2); len(got) != 0 {
			t.Errorf("%s: expected empty partition, got %v", pt, got)
		}
	}
}

func TestDirichlet_Deterministic(t *testing.T) {
	p := NewPartitioner(PartitionDirichlet, 0)

	a := p.Partition(rand.New(rand.NewSource(7)), 1000, 6)
	b := p.Partition(rand.New(rand.NewSource(7)), 1000, 6)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("expected identical partitions for the same seed, got %v and %v", a, b)
		}
	}
}

func TestDirichlet_NotDegenerate(t *testing.T) {
	p := NewPartitioner(PartitionDirichlet, 0)
	rng := rand.New(rand.NewSource(99))

	distinct := false
	for range 20 {
		shares := p.Partition(rng, 1000, 4)
		for _, s := range shares[1:] {
			if s != shares[0] {
				distinct = true
			}
		}
	}
	if !distinct {
		t.Error("expected Dirichlet shares to vary, every split was uniform")
	}
}

func TestDirichlet_AlphaShapes(t *testing.T) {
	for _, alpha := range []float64{0.3, 1, 2.5, 10} {
		p := NewPartitioner(PartitionDirichlet, alpha)
		rng := rand.New(rand.NewSource(3))
		shares := p.Partition(rng, 999, 7)

		sum := 0
		for _, s := range shares {
			sum += s
		}
		if sum != 999 {
			t.Errorf("alpha %.1f: expected sum 999, got %d", alpha, sum)
		}
	}
}

func TestEqualPartitioner(t *testing.T) {
	got := NewPartitioner(PartitionEqual, 0).Partition(nil, 10, 3)
	want := []int{4, 3, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestApportion_ZeroWeights(t *testing.T) {
	got := apportion([]float64{0, 0, 0}, 7)
	sum := 0
	for _, s := range got {
		sum += s
	}
	if sum != 7 {
		t.Errorf("expected zero weights to fall back to an even split of 7, got %v", got)
	}
}

func TestParsePartitionType(t *testing.T) {
	tests := []struct {
		in      string
		want    PartitionType
		wantErr bool
	}{
		{in: "", want: PartitionDirichlet},
		{in: "Dirichlet", want: PartitionDirichlet},
		{in: "uunifast", want: PartitionUUniFast},
		{in: " equal ", want: PartitionEqual},
		{in: "gaussian", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePartitionType(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			if back, err := ParsePartitionType(got.String()); err != nil || back != got {
				t.Errorf("expected %v to round-trip through its name, got %v (%v)", got, back, err)
			}
		})
	}
}
