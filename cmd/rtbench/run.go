package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/utkarsh5026/rtbench/fragments"
	"github.com/utkarsh5026/rtbench/harness"
	"github.com/utkarsh5026/rtbench/internal/metrics"
	"github.com/utkarsh5026/rtbench/internal/render"
	"github.com/utkarsh5026/rtbench/taskset"
)

var runFlags Experiment

// runCmd executes a task set and reports its timing
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute a task set as pinned periodic threads and report delays",
	Long: `Runs every task as its own OS thread, pinned to its core at SCHED_FIFO
priority, releasing one job per period until the measurement window closes.

The task set is read from --taskset, or synthesized from the generation flags.
One task_<id>_delays.csv per task is written to --out-dir.

Real-time priority usually requires CAP_SYS_NICE; without it the run
continues and the failures are listed as warnings.`,
	Args: cobra.NoArgs,
	RunE: runExperiment,
}

func init() {
	bindSynthesisFlags(runCmd.Flags(), &runFlags)
	bindRunFlags(runCmd.Flags(), &runFlags)
}

func runExperiment(cmd *cobra.Command, args []string) error {
	exp, err := resolveExperiment(cmd, &runFlags)
	if err != nil {
		return err
	}

	ts, err := loadTaskSet(exp)
	if err != nil {
		return err
	}

	lib, err := fragments.New(ts.Cores())
	if err != nil {
		return fmt.Errorf("failed to create fragment library: %w", err)
	}
	defer func() {
		if err := lib.Close(); err != nil {
			logger.Warn("failed to close fragment library", zap.Error(err))
		}
	}()

	opts := []harness.Option{
		harness.WithLogger(logger),
		harness.WithRunDuration(exp.Run.Duration),
		harness.WithStartupMargin(exp.Run.StartupMargin),
		harness.WithRealtimePriority(exp.Run.Priority),
		harness.WithPinning(!exp.Run.NoPin),
		harness.WithMissedColumn(!exp.Run.NoMissed),
	}

	var bar *progressbar.ProgressBar
	if !exp.Run.NoProgress {
		bar = makeProgressBar(exp.Run.Duration)
		opts = append(opts, harness.WithProgress(func(elapsed, total time.Duration, jobs, misses int64) {
			bar.Describe(fmt.Sprintf("Running (jobs=%s misses=%s)",
				render.FormatNumber(jobs), render.FormatNumber(misses)))
			_ = bar.Set64(elapsed.Milliseconds())
		}))
	}

	h, err := harness.New(ts, lib, opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := h.Run(ctx)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return err
	}
	defer h.Release()

	if err := render.Report(cmd.OutOrStdout(), report); err != nil {
		return err
	}

	if err := h.WriteLogs(exp.Run.OutDir); err != nil {
		return err
	}
	logger.Info("delay logs written", zap.String("dir", exp.Run.OutDir), zap.Int("tasks", len(report.Tasks)))

	if exp.Run.MetricsFile != "" {
		m := metrics.New()
		m.Observe(report)
		if err := m.WriteTextfile(exp.Run.MetricsFile); err != nil {
			return err
		}
		logger.Info("metrics written", zap.String("path", exp.Run.MetricsFile))
	}
	return nil
}

func loadTaskSet(exp Experiment) (*taskset.TaskSet, error) {
	if exp.Run.TaskSet == "" {
		ts, err := exp.synthesize()
		if err != nil {
			return nil, err
		}
		logger.Info("synthesized task set", zap.Int64("seed", exp.Seed), zap.Int("tasks", ts.Meta.Tasks))
		return ts, nil
	}

	if !fileExists(exp.Run.TaskSet) {
		return nil, fmt.Errorf("task set %s does not exist", exp.Run.TaskSet)
	}
	ts, err := taskset.ReadFile(exp.Run.TaskSet)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded task set", zap.String("path", exp.Run.TaskSet), zap.Int("tasks", ts.Meta.Tasks))
	return ts, nil
}

func makeProgressBar(total time.Duration) *progressbar.ProgressBar {
	return progressbar.NewOptions64(total.Milliseconds(),
		progressbar.OptionSetDescription("Running"),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
