package harness

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/utkarsh5026/rtbench/internal/cpu"
	"github.com/utkarsh5026/rtbench/taskset"
)

// Harness runs one task set once.
type Harness struct {
	cfg   *config
	plans []*plan
	logs  []*TaskLog
	cores []*coreAggregate

	state atomic.Int32
	ran   atomic.Bool

	jobs   atomic.Int64
	misses atomic.Int64

	mu       sync.Mutex
	warnings []error
	report   *Report
}

// window is the measurement interval shared by every task thread.
type window struct {
	start time.Time
	end   time.Time
}

// New validates the task set and compiles every task into its closure table.
//
// Parameters:
//   - ts: The task set to execute. It is read, never modified.
//   - reg: Resolves fragment names. If it also implements CoreRegistry,
//     names are resolved per task core.
//   - opts: Functional options (run duration, priority, logger, ...)
//
// Returns an *UnresolvedFragmentError when any referenced name is unknown to
// reg. No thread is created in that case.
//
// Default configuration:
//   - startup margin: 100ms
//   - run duration: 5s
//   - real-time priority: SCHED_FIFO 10
//   - pinning: enabled
//   - log capacity: 4096 entries per task
func New(ts *taskset.TaskSet, reg Registry, opts ...Option) (*Harness, error) {
	if ts == nil {
		return nil, ErrNilTaskSet
	}
	if reg == nil {
		return nil, ErrNilRegistry
	}
	if err := ts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid task set: %w", err)
	}

	plans, err := compile(ts, reg)
	if err != nil {
		return nil, err
	}

	cfg := createConfig(opts...)
	h := &Harness{
		cfg:   cfg,
		plans: plans,
		logs:  make([]*TaskLog, len(plans)),
		cores: make([]*coreAggregate, ts.Cores()),
	}
	for i, p := range plans {
		h.logs[i] = newTaskLog(p.id, cfg.logCapacity)
	}
	for i := range h.cores {
		h.cores[i] = newCoreAggregate()
	}

	h.setState(Initialized)
	return h, nil
}

// State returns the current lifecycle stage.
func (h *Harness) State() State {
	return State(h.state.Load())
}

func (h *Harness) setState(s State) {
	h.state.Store(int32(s))
	h.cfg.logger.Debug("harness state", zap.Stringer("state", s))
}

// Run arms one locked OS thread per task, releases them together and blocks
// until every task has passed the end of the measurement window.
//
// ctx bounds arming only: once the threads are released the run always
// lasts the configured duration.
//
// Returns:
//   - report: Per-core, per-task and global statistics
//   - error: ctx.Err() when cancelled before release, *ThreadCreationError
//     when not every thread armed, or an error wrapping ErrJoin when a task
//     thread panicked. No report is produced in these cases.
//
// Run may be called once; later calls return ErrAlreadyRun.
func (h *Harness) Run(ctx context.Context) (*Report, error) {
	if !h.ran.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRun
	}

	logger := h.cfg.logger
	n := len(h.plans)

	var (
		g          errgroup.Group
		armed      sync.WaitGroup
		armedCount atomic.Int64
		release    = make(chan struct{})
		abort      = make(chan struct{})
		win        window
	)

	h.setState(Armed)
	armed.Add(n)
	for i, p := range h.plans {
		g.Go(func() (err error) {
			defer recoverTask(p.id, &err)

			signalled := false
			defer func() {
				if !signalled {
					armed.Done()
				}
			}()

			// Never unlocked: the thread exits with the goroutine and takes
			// its affinity and scheduling class with it.
			cpu.LockThread()

			h.setup(p)
			armedCount.Add(1)
			signalled = true
			armed.Done()

			select {
			case <-release:
			case <-abort:
				return nil
			}

			h.runTask(p, h.logs[i], win)
			return nil
		})
	}

	armedCh := make(chan struct{})
	go func() {
		armed.Wait()
		close(armedCh)
	}()

	select {
	case <-armedCh:
	case <-ctx.Done():
	}
	if ctx.Err() != nil {
		close(abort)
		_ = g.Wait()
		<-armedCh
		h.setState(Terminal)
		return nil, fmt.Errorf("run aborted before release: %w", ctx.Err())
	}

	if got := int(armedCount.Load()); got != n {
		close(abort)
		err := g.Wait()
		h.setState(Terminal)
		return nil, &ThreadCreationError{Armed: got, Want: n, Err: err}
	}

	now := time.Now()
	win = window{
		start: now.Add(h.cfg.startupMargin),
		end:   now.Add(h.cfg.startupMargin + h.cfg.runDuration),
	}

	h.setState(Running)
	logger.Info("releasing task threads",
		zap.Int("tasks", n),
		zap.Int("cores", len(h.cores)),
		zap.Time("start", win.start),
		zap.Duration("duration", h.cfg.runDuration),
	)
	close(release)

	h.monitor(win)

	h.setState(Draining)
	if err := g.Wait(); err != nil {
		h.setState(Terminal)
		logger.Error("task thread failed", zap.Error(err))
		return nil, err
	}

	total := win.end.Sub(win.start)
	if h.cfg.progress != nil {
		h.cfg.progress(total, total, h.jobs.Load(), h.misses.Load())
	}

	h.mu.Lock()
	warnings := append([]error(nil), h.warnings...)
	h.mu.Unlock()

	report := h.buildReport(win, warnings)
	h.report = report
	h.setState(Reported)

	logger.Info("run complete",
		zap.Int64("jobs", report.Jobs),
		zap.Int64("misses", report.Misses),
		zap.Float64("miss_rate", report.MissRate),
		zap.Int("warnings", len(warnings)),
	)
	return report, nil
}

// setup applies pinning and real-time priority to the calling thread.
// Failures are recorded as warnings.
func (h *Harness) setup(p *plan) {
	if h.cfg.rtPriority > 0 {
		if err := cpu.SetRealtimePriority(h.cfg.rtPriority); err != nil {
			h.warn(&SchedulingSetupError{TaskID: p.id, Core: p.core, Op: "priority", Err: err})
		}
	}
	if h.cfg.pin {
		if err := cpu.PinToCore(p.core); err != nil {
			h.warn(&SchedulingSetupError{TaskID: p.id, Core: p.core, Op: "affinity", Err: err})
		}
	}
}

func (h *Harness) warn(err *SchedulingSetupError) {
	h.cfg.logger.Warn("scheduling setup failed",
		zap.Int("task", err.TaskID),
		zap.Int("core", err.Core),
		zap.String("op", err.Op),
		zap.Error(err.Err),
	)

	h.mu.Lock()
	h.warnings = append(h.warnings, err)
	h.mu.Unlock()
}

// monitor blocks until the end of the window, feeding the progress callback.
func (h *Harness) monitor(w window) {
	timer := time.NewTimer(time.Until(w.end))
	defer timer.Stop()

	ticker := time.NewTicker(h.cfg.progressInterval)
	defer ticker.Stop()

	total := w.end.Sub(w.start)
	debug := rate.Sometimes{Interval: time.Second}

	for {
		select {
		case <-timer.C:
			return
		case now := <-ticker.C:
			elapsed := min(max(now.Sub(w.start), 0), total)
			jobs, misses := h.jobs.Load(), h.misses.Load()

			if h.cfg.progress != nil {
				h.cfg.progress(elapsed, total, jobs, misses)
			}
			debug.Do(func() {
				h.cfg.logger.Debug("progress",
					zap.Duration("elapsed", elapsed),
					zap.Int64("jobs", jobs),
					zap.Int64("misses", misses),
				)
			})
		}
	}
}

func recoverTask(id int, err *error) {
	if r := recover(); r != nil {
		buf := make([]byte, 4096)
		n := runtime.Stack(buf, false)
		*err = &TaskPanicError{TaskID: id, Value: r, Stack: buf[:n]}
	}
}

// Report returns the report of a completed run, or nil.
func (h *Harness) Report() *Report {
	if h.State() != Reported {
		return nil
	}
	return h.report
}

// Logs returns copies of every task log after a completed run, in task order.
func (h *Harness) Logs() []TaskLog {
	if h.State() != Reported {
		return nil
	}

	out := make([]TaskLog, len(h.logs))
	for i, l := range h.logs {
		out[i] = l.clone()
	}
	return out
}

// Release drops the logs of a reported harness and moves it to Terminal.
func (h *Harness) Release() {
	if h.State() != Reported {
		return
	}
	h.logs = nil
	h.report = nil
	h.setState(Terminal)
}
