package harness

import (
	"time"

	"go.uber.org/zap"
)

const (
	DefaultStartupMargin    = 100 * time.Millisecond
	DefaultRunDuration      = 5 * time.Second
	DefaultRealtimePriority = 10
	DefaultLogCapacity      = 4096
	DefaultProgressInterval = 100 * time.Millisecond
)

// ProgressFunc receives the elapsed measurement time and the running job and
// miss totals. It is called from the coordinator, never from a task thread.
type ProgressFunc func(elapsed, total time.Duration, jobs, misses int64)

// Option is a functional option for configuring a Harness.
type Option func(*config)

type config struct {
	startupMargin    time.Duration
	runDuration      time.Duration
	rtPriority       int
	pin              bool
	logCapacity      int
	missedColumn     bool
	progress         ProgressFunc
	progressInterval time.Duration
	logger           *zap.Logger
}

// WithStartupMargin sets the delay between barrier release and the first
// release of every task. Defaults to 100ms.
func WithStartupMargin(d time.Duration) Option {
	return func(cfg *config) {
		if d > 0 {
			cfg.startupMargin = d
		}
	}
}

// WithRunDuration sets how long tasks keep releasing jobs. Defaults to 5s.
func WithRunDuration(d time.Duration) Option {
	return func(cfg *config) {
		if d > 0 {
			cfg.runDuration = d
		}
	}
}

// WithRealtimePriority sets the SCHED_FIFO priority of every task thread.
// Zero leaves the threads in the default scheduling class.
func WithRealtimePriority(prio int) Option {
	return func(cfg *config) {
		if prio >= 0 {
			cfg.rtPriority = prio
		}
	}
}

// WithPinning controls whether task threads are pinned to their core.
// Enabled by default.
func WithPinning(enabled bool) Option {
	return func(cfg *config) {
		cfg.pin = enabled
	}
}

// WithLogCapacity sets the initial per-task log capacity. Logs grow past it.
func WithLogCapacity(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.logCapacity = n
		}
	}
}

// WithMissedColumn controls whether WriteLogs emits the missed column.
// Enabled by default.
func WithMissedColumn(enabled bool) Option {
	return func(cfg *config) {
		cfg.missedColumn = enabled
	}
}

// WithProgress installs a callback invoked periodically while tasks run.
func WithProgress(fn ProgressFunc) Option {
	return func(cfg *config) {
		cfg.progress = fn
	}
}

// WithProgressInterval sets how often the progress callback fires.
func WithProgressInterval(d time.Duration) Option {
	return func(cfg *config) {
		if d > 0 {
			cfg.progressInterval = d
		}
	}
}

// WithLogger sets the logger for lifecycle events and setup warnings.
// Task threads never log while measuring.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

func createConfig(opts ...Option) *config {
	cfg := &config{
		startupMargin:    DefaultStartupMargin,
		runDuration:      DefaultRunDuration,
		rtPriority:       DefaultRealtimePriority,
		pin:              true,
		logCapacity:      DefaultLogCapacity,
		missedColumn:     true,
		progressInterval: DefaultProgressInterval,
		logger:           zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
