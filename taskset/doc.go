// Package taskset synthesizes periodic real-time task sets.
//
// A TaskSet is a batch of N periodic tasks spread round-robin over M cores.
// Every task has a worst-case execution time (WCET), a period derived from it,
// and an ordered list of segments. Segments alternate between contended
// access (RaF) segments, filled from the shared-resource fragment catalog,
// and uncontended (NF) segments, filled from the plain catalog. All times are
// in microseconds.
//
// # Basic Usage
//
//	rng := taskset.NewRand(42)
//	ts, err := taskset.Synthesize(rng, taskset.Params{
//	    Cores:      4,
//	    Tasks:      8,
//	    WCETMin:    200,
//	    WCETMax:    500,
//	    Cr:         0.6,
//	    RaFMax:     200,
//	    FN:         10,
//	    Contention: 0.7,
//	})
//
// Synthesis reads randomness only from the *rand.Rand handed in, so the same
// seed and parameters always produce the same TaskSet, and concurrent
// synthesis calls with separate generators never interfere.
//
// # Configuration Options
//
//   - WithPeriodFactor(n): period = WCET * n (default: 10)
//   - WithPartition(t): budget partitioning algorithm (default: Dirichlet)
//   - WithDirichletAlpha(a): Dirichlet concentration (default: 1)
//   - WithCatalogs(shared, plain): replace the fragment catalogs
//   - WithSeed(seed): record the generator seed in the TaskSet metadata
//
// Invalid parameters are rejected with a *ConfigurationError before anything is
// generated; nothing is clamped.
//
// A TaskSet round-trips through JSON and YAML (see Encode and Decode) with the
// field names of the generated artifact: meta, tasks, segments, apis.
package taskset
