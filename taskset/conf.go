package taskset

import (
	"math/rand"

	"github.com/utkarsh5026/rtbench/internal/algorithms"
)

// PartitionType selects how a segment kind's total budget is split.
type PartitionType = algorithms.PartitionType

const (
	PartitionDirichlet = algorithms.PartitionDirichlet
	PartitionUUniFast  = algorithms.PartitionUUniFast
	PartitionEqual     = algorithms.PartitionEqual
)

// ParsePartitionType maps "dirichlet", "uunifast" or "equal" to a PartitionType.
func ParsePartitionType(s string) (PartitionType, error) {
	return algorithms.ParsePartitionType(s)
}

const (
	// DefaultPeriodFactor is the period/WCET multiplier.
	DefaultPeriodFactor = 10
	// DefaultContention is used when filling uncontended segments. Plain
	// fragments have no parallel variant, so its value never matters there.
	DefaultContention = 0.5
	// Epsilon is the floating tolerance used when checking a fragment fits.
	Epsilon = 1e-9
)

// Option is a functional option for configuring synthesis.
type Option func(*config)

type config struct {
	periodFactor   int
	partitionType  PartitionType
	dirichletAlpha float64
	shared         Catalog
	plain          Catalog
	seed           int64
	partitioner    algorithms.Partitioner
}

// WithPeriodFactor sets the multiplier that derives each period from its WCET.
// Non-positive values are rejected by Synthesize.
func WithPeriodFactor(factor int) Option {
	return func(cfg *config) {
		cfg.periodFactor = factor
	}
}

// WithPartition sets the algorithm used to split the contended and
// uncontended totals into per-segment budgets.
func WithPartition(t PartitionType) Option {
	return func(cfg *config) {
		cfg.partitionType = t
	}
}

// WithDirichletAlpha sets the concentration of the Dirichlet partition.
// Larger values give more even budgets. Ignored by the other partitioners.
func WithDirichletAlpha(alpha float64) Option {
	return func(cfg *config) {
		if alpha > 0 {
			cfg.dirichletAlpha = alpha
		}
	}
}

// WithCatalogs replaces the shared and plain fragment catalogs.
// Both are validated by Synthesize.
func WithCatalogs(shared, plain Catalog) Option {
	return func(cfg *config) {
		cfg.shared = shared
		cfg.plain = plain
	}
}

// WithSeed records the seed of the caller's generator in the TaskSet
// metadata. It does not seed anything.
func WithSeed(seed int64) Option {
	return func(cfg *config) {
		cfg.seed = seed
	}
}

func createConfig(opts ...Option) *config {
	cfg := &config{
		periodFactor:   DefaultPeriodFactor,
		partitionType:  PartitionDirichlet,
		dirichletAlpha: algorithms.DefaultDirichletAlpha,
		shared:         sharedCatalog,
		plain:          plainCatalog,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	cfg.partitioner = algorithms.NewPartitioner(cfg.partitionType, cfg.dirichletAlpha)
	return cfg
}

// NewRand returns a generator seeded with seed, for callers that do not
// manage their own source.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed)) // #nosec G404 -- workload synthesis, not crypto
}
