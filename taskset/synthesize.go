package taskset

import (
	"math/rand"
)

// Params are the synthesis inputs. Times are in microseconds.
type Params struct {
	Cores      int     `json:"M" yaml:"M"`
	Tasks      int     `json:"N" yaml:"N"`
	WCETMin    int     `json:"wcet_min" yaml:"wcet_min"`
	WCETMax    int     `json:"wcet_max" yaml:"wcet_max"`
	Cr         float64 `json:"cr" yaml:"cr"`
	RaFMax     int     `json:"raf_max" yaml:"raf_max"`
	FN         int     `json:"fn" yaml:"fn"`
	Contention float64 `json:"contention" yaml:"contention"`
}

// DefaultParams mirrors the reference experiment: 16 tasks on 16 cores,
// WCETs in [200, 500], fully contended segments of at most 200us.
func DefaultParams() Params {
	return Params{
		Cores:      16,
		Tasks:      16,
		WCETMin:    200,
		WCETMax:    500,
		Cr:         1,
		RaFMax:     200,
		FN:         10,
		Contention: 1,
	}
}

// Synthesize builds a TaskSet from p, drawing every random value from rng.
//
// It draws N uniform WCETs in [WCETMin, WCETMax], derives periods with the
// period factor, draws a random permutation of 1..N as priorities, assigns
// task i to core i mod M and finally generates the segments of each task.
// Invalid parameters yield a *ConfigurationError before anything is drawn.
//
// Example:
//
//	ts, err := Synthesize(NewRand(7), DefaultParams(), WithPartition(PartitionUUniFast))
//	if err != nil {
//	    return err
//	}
func Synthesize(rng *rand.Rand, p Params, opts ...Option) (*TaskSet, error) {
	cfg := createConfig(opts...)
	if err := validate(rng, p, cfg); err != nil {
		return nil, err
	}

	wcets := make([]int, p.Tasks)
	for i := range wcets {
		wcets[i] = p.WCETMin + rng.Intn(p.WCETMax-p.WCETMin+1)
	}

	priorities := rng.Perm(p.Tasks)

	params := p
	ts := &TaskSet{
		Meta: Meta{
			Cores:        p.Cores,
			Tasks:        p.Tasks,
			Seed:         cfg.seed,
			PeriodFactor: cfg.periodFactor,
			Partition:    cfg.partitionType.String(),
			Params:       &params,
		},
		Tasks: make([]Task, p.Tasks),
	}

	for i := range ts.Tasks {
		ts.Tasks[i] = Task{
			ID:       i,
			Core:     i % p.Cores,
			Priority: priorities[i] + 1,
			Period:   wcets[i] * cfg.periodFactor,
			WCET:     wcets[i],
			Segments: generateSegments(rng, cfg, p.FN, wcets[i], p.Cr, p.RaFMax, p.Contention),
		}
	}

	return ts, nil
}

func validate(rng *rand.Rand, p Params, cfg *config) error {
	switch {
	case rng == nil:
		return configErr("rng", "a random source is required")
	case p.Cores <= 0:
		return configErr("M", "core count must be positive, got %d", p.Cores)
	case p.Tasks <= 0:
		return configErr("N", "task count must be positive, got %d", p.Tasks)
	case p.WCETMin < 0:
		return configErr("wcet_min", "must be non-negative, got %d", p.WCETMin)
	case p.WCETMin > p.WCETMax:
		return configErr("wcet_min", "%d exceeds wcet_max %d", p.WCETMin, p.WCETMax)
	case p.FN <= 0:
		return configErr("fn", "segment count must be positive, got %d", p.FN)
	case !(p.Cr >= 0 && p.Cr <= 1):
		return configErr("cr", "must lie in [0, 1], got %v", p.Cr)
	case !(p.Contention >= 0 && p.Contention <= 1):
		return configErr("contention", "must lie in [0, 1], got %v", p.Contention)
	case p.RaFMax < 0:
		return configErr("raf_max", "must be non-negative, got %d", p.RaFMax)
	case cfg.periodFactor <= 0:
		return configErr("period_factor", "must be positive, got %d", cfg.periodFactor)
	}

	if err := cfg.shared.Validate(); err != nil {
		return configErr("shared_catalog", "%v", err)
	}
	if err := cfg.plain.Validate(); err != nil {
		return configErr("plain_catalog", "%v", err)
	}
	return nil
}
