package taskset

import (
	"math"
	"math/rand"
)

// GenerateSegments builds the fn alternating segments of a task with the given WCET.
//
// floor(wcet*cr) microseconds go to the ceil(fn/2) contended segments at even
// positions and the rest to the floor(fn/2) uncontended segments at odd
// positions. Each kind's total is split by the configured partitioner, and
// every contended budget is then capped at rafMax. Contended segments are
// filled from the shared catalog with the given contention probability,
// uncontended ones from the plain catalog.
func GenerateSegments(
	rng *rand.Rand,
	fn, wcet int,
	cr float64,
	rafMax int,
	contention float64,
	opts ...Option,
) ([]Segment, error) {
	cfg := createConfig(opts...)
	p := Params{
		Cores:      1,
		Tasks:      1,
		WCETMin:    wcet,
		WCETMax:    wcet,
		Cr:         cr,
		RaFMax:     rafMax,
		FN:         fn,
		Contention: contention,
	}
	if err := validate(rng, p, cfg); err != nil {
		return nil, err
	}
	return generateSegments(rng, cfg, fn, wcet, cr, rafMax, contention), nil
}

func generateSegments(
	rng *rand.Rand,
	cfg *config,
	fn, wcet int,
	cr float64,
	rafMax int,
	contention float64,
) []Segment {
	totalContended := int(math.Floor(float64(wcet) * cr))
	totalUncontended := wcet - totalContended

	contended := cfg.partitioner.Partition(rng, totalContended, (fn+1)/2)
	uncontended := cfg.partitioner.Partition(rng, totalUncontended, fn/2)
	for i, b := range contended {
		contended[i] = min(b, rafMax)
	}

	segments := make([]Segment, fn)
	for i := range segments {
		if i%2 == 0 {
			var budget int
			budget, contended = next(contended)
			segments[i] = Segment{
				Kind:      ContendedAccess,
				Budget:    budget,
				Fragments: Fill(rng, budget, cfg.shared, contention),
			}
			continue
		}

		var budget int
		budget, uncontended = next(uncontended)
		segments[i] = Segment{
			Kind:      Uncontended,
			Budget:    budget,
			Fragments: Fill(rng, budget, cfg.plain, DefaultContention),
		}
	}
	return segments
}

// next pops the head of budgets; an exhausted list yields a zero budget.
func next(budgets []int) (int, []int) {
	if len(budgets) == 0 {
		return 0, budgets
	}
	return budgets[0], budgets[1:]
}
