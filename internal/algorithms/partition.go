package algorithms

import (
	"math"
	"math/rand"
	"sort"
)

// dirichletPartitioner draws the share fractions from Dir(alpha, ..., alpha).
//
// A Dirichlet sample is a vector of independent Gamma(alpha, 1) draws divided
// by their sum. For alpha = 1 the Gamma draws are plain exponentials.
type dirichletPartitioner struct {
	alpha float64
}

func (d dirichletPartitioner) Partition(rng *rand.Rand, total, n int) []int {
	if n <= 0 {
		return []int{}
	}

	weights := make([]float64, n)
	for i := range weights {
		weights[i] = sampleGamma(rng, d.alpha)
	}
	return apportion(weights, total)
}

// uunifastPartitioner implements the UUniFast algorithm (Bini & Buttazzo).
// Each step keeps sum * U^(1/(n-i)) for the remaining shares and hands the
// difference to the current one.
type uunifastPartitioner struct{}

func (uunifastPartitioner) Partition(rng *rand.Rand, total, n int) []int {
	if n <= 0 {
		return []int{}
	}

	weights := make([]float64, n)
	sum := 1.0
	for i := 0; i < n-1; i++ {
		next := sum * math.Pow(rng.Float64(), 1/float64(n-i-1))
		weights[i] = sum - next
		sum = next
	}
	weights[n-1] = sum
	return apportion(weights, total)
}

// equalPartitioner splits the total evenly; the remainder goes to the leading shares.
type equalPartitioner struct{}

func (equalPartitioner) Partition(_ *rand.Rand, total, n int) []int {
	if n <= 0 {
		return []int{}
	}

	shares := make([]int, n)
	base, rem := total/n, total%n
	for i := range shares {
		shares[i] = base
		if i < rem {
			shares[i]++
		}
	}
	return shares
}

// apportion converts non-negative weights into integer shares of total using
// the largest remainder method, so the shares always sum to total exactly.
// Ties are broken by index to keep the result a pure function of the weights.
func apportion(weights []float64, total int) []int {
	shares := make([]int, len(weights))
	if total <= 0 || len(weights) == 0 {
		return shares
	}

	var sum float64
	for _, w := range weights {
		sum += w
	}
	if sum <= 0 || math.IsInf(sum, 0) || math.IsNaN(sum) {
		return equalPartitioner{}.Partition(nil, total, len(weights))
	}

	type remainder struct {
		idx  int
		frac float64
	}
	rems := make([]remainder, len(weights))
	assigned := 0
	for i, w := range weights {
		exact := w / sum * float64(total)
		whole := math.Floor(exact)
		shares[i] = int(whole)
		assigned += shares[i]
		rems[i] = remainder{idx: i, frac: exact - whole}
	}

	sort.SliceStable(rems, func(i, j int) bool {
		return rems[i].frac > rems[j].frac
	})
	for i := 0; assigned < total; i++ {
		shares[rems[i%len(rems)].idx]++
		assigned++
	}
	return shares
}

// sampleGamma draws from Gamma(shape, 1) using Marsaglia and Tsang's method.
// Shapes below one are boosted with the usual U^(1/shape) correction.
func sampleGamma(rng *rand.Rand, shape float64) float64 {
	if shape == 1 {
		return rng.ExpFloat64()
	}
	if shape < 1 {
		u := rng.Float64()
		return sampleGamma(rng, shape+1) * math.Pow(u, 1/shape)
	}

	d := shape - 1.0/3.0
	c := 1 / math.Sqrt(9*d)
	for {
		x := rng.NormFloat64()
		v := 1 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := rng.Float64()
		if u < 1-0.0331*x*x*x*x {
			return d * v
		}
		if math.Log(u) < 0.5*x*x+d*(1-v+math.Log(v)) {
			return d * v
		}
	}
}
