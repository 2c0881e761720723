package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/utkarsh5026/rtbench/harness"
	"github.com/utkarsh5026/rtbench/taskset"
)

// Experiment is everything one invocation needs. It can be loaded from a
// YAML file; command-line flags that were set explicitly win.
type Experiment struct {
	Seed           int64          `yaml:"seed"`
	Params         taskset.Params `yaml:"params"`
	PeriodFactor   int            `yaml:"period_factor"`
	Partition      string         `yaml:"partition"`
	DirichletAlpha float64        `yaml:"dirichlet_alpha"`
	Run            RunConfig      `yaml:"run"`
}

// RunConfig holds the execution settings of an experiment.
type RunConfig struct {
	TaskSet       string        `yaml:"taskset"`
	Duration      time.Duration `yaml:"duration"`
	StartupMargin time.Duration `yaml:"startup_margin"`
	Priority      int           `yaml:"priority"`
	NoPin         bool          `yaml:"no_pin"`
	OutDir        string        `yaml:"out_dir"`
	NoMissed      bool          `yaml:"no_missed_column"`
	MetricsFile   string        `yaml:"metrics_file"`
	NoProgress    bool          `yaml:"no_progress"`
}

func defaultExperiment() Experiment {
	return Experiment{
		Params:         taskset.DefaultParams(),
		PeriodFactor:   taskset.DefaultPeriodFactor,
		Partition:      taskset.PartitionDirichlet.String(),
		DirichletAlpha: 1,
		Run: RunConfig{
			Duration:      harness.DefaultRunDuration,
			StartupMargin: harness.DefaultStartupMargin,
			Priority:      harness.DefaultRealtimePriority,
			OutDir:        ".",
		},
	}
}

func loadExperiment(path string, exp *Experiment) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(exp); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// bindSynthesisFlags registers the generation flags on fs, storing into exp.
func bindSynthesisFlags(fs *pflag.FlagSet, exp *Experiment) {
	d := defaultExperiment()
	fs.IntVarP(&exp.Params.Cores, "cores", "m", d.Params.Cores, "Number of cores M")
	fs.IntVarP(&exp.Params.Tasks, "tasks", "n", d.Params.Tasks, "Number of tasks N")
	fs.IntVar(&exp.Params.WCETMin, "wcet-min", d.Params.WCETMin, "Minimum WCET (µs)")
	fs.IntVar(&exp.Params.WCETMax, "wcet-max", d.Params.WCETMax, "Maximum WCET (µs)")
	fs.Float64Var(&exp.Params.Cr, "cr", d.Params.Cr, "Contended fraction of each WCET, in [0,1]")
	fs.IntVar(&exp.Params.RaFMax, "raf-max", d.Params.RaFMax, "Cap on a contended segment budget (µs)")
	fs.IntVar(&exp.Params.FN, "fn", d.Params.FN, "Segments per task")
	fs.Float64Var(&exp.Params.Contention, "contention", d.Params.Contention, "Probability of the shared fragment variant, in [0,1]")
	fs.Int64Var(&exp.Seed, "seed", 0, "Random seed (0 = time based)")
	fs.IntVar(&exp.PeriodFactor, "period-factor", d.PeriodFactor, "Period = WCET x factor")
	fs.StringVar(&exp.Partition, "partition", d.Partition, "Budget partition: dirichlet, uunifast or equal")
	fs.Float64Var(&exp.DirichletAlpha, "alpha", d.DirichletAlpha, "Dirichlet concentration")
}

// bindRunFlags registers the execution flags on fs, storing into exp.
func bindRunFlags(fs *pflag.FlagSet, exp *Experiment) {
	d := defaultExperiment()
	fs.StringVarP(&exp.Run.TaskSet, "taskset", "t", "", "Run this task set file instead of synthesizing one")
	fs.DurationVarP(&exp.Run.Duration, "duration", "d", d.Run.Duration, "Measurement window")
	fs.DurationVar(&exp.Run.StartupMargin, "margin", d.Run.StartupMargin, "Delay between release and first job")
	fs.IntVar(&exp.Run.Priority, "priority", d.Run.Priority, "SCHED_FIFO priority of task threads (0 = leave default)")
	fs.BoolVar(&exp.Run.NoPin, "no-pin", false, "Do not pin task threads to cores")
	fs.StringVarP(&exp.Run.OutDir, "out-dir", "o", d.Run.OutDir, "Directory for task_<id>_delays.csv files")
	fs.BoolVar(&exp.Run.NoMissed, "no-missed-column", false, "Omit the missed column from delay logs")
	fs.StringVar(&exp.Run.MetricsFile, "metrics-file", "", "Write prometheus textfile metrics here")
	fs.BoolVar(&exp.Run.NoProgress, "no-progress", false, "Disable the progress bar")
}

// resolveExperiment layers defaults, the --config file and explicitly set
// flags, in that order.
func resolveExperiment(cmd *cobra.Command, flags *Experiment) (Experiment, error) {
	exp := defaultExperiment()
	if configPath != "" {
		if err := loadExperiment(configPath, &exp); err != nil {
			return exp, err
		}
	}

	fs := cmd.Flags()
	override := func(name string, apply func()) {
		if f := fs.Lookup(name); f != nil && f.Changed {
			apply()
		}
	}

	override("cores", func() { exp.Params.Cores = flags.Params.Cores })
	override("tasks", func() { exp.Params.Tasks = flags.Params.Tasks })
	override("wcet-min", func() { exp.Params.WCETMin = flags.Params.WCETMin })
	override("wcet-max", func() { exp.Params.WCETMax = flags.Params.WCETMax })
	override("cr", func() { exp.Params.Cr = flags.Params.Cr })
	override("raf-max", func() { exp.Params.RaFMax = flags.Params.RaFMax })
	override("fn", func() { exp.Params.FN = flags.Params.FN })
	override("contention", func() { exp.Params.Contention = flags.Params.Contention })
	override("seed", func() { exp.Seed = flags.Seed })
	override("period-factor", func() { exp.PeriodFactor = flags.PeriodFactor })
	override("partition", func() { exp.Partition = flags.Partition })
	override("alpha", func() { exp.DirichletAlpha = flags.DirichletAlpha })

	override("taskset", func() { exp.Run.TaskSet = flags.Run.TaskSet })
	override("duration", func() { exp.Run.Duration = flags.Run.Duration })
	override("margin", func() { exp.Run.StartupMargin = flags.Run.StartupMargin })
	override("priority", func() { exp.Run.Priority = flags.Run.Priority })
	override("no-pin", func() { exp.Run.NoPin = flags.Run.NoPin })
	override("out-dir", func() { exp.Run.OutDir = flags.Run.OutDir })
	override("no-missed-column", func() { exp.Run.NoMissed = flags.Run.NoMissed })
	override("metrics-file", func() { exp.Run.MetricsFile = flags.Run.MetricsFile })
	override("no-progress", func() { exp.Run.NoProgress = flags.Run.NoProgress })

	if exp.Seed == 0 {
		exp.Seed = time.Now().UnixNano()
	}
	return exp, nil
}

// synthesize builds the task set an experiment describes.
func (e Experiment) synthesize() (*taskset.TaskSet, error) {
	partition, err := taskset.ParsePartitionType(e.Partition)
	if err != nil {
		return nil, err
	}

	return taskset.Synthesize(taskset.NewRand(e.Seed), e.Params,
		taskset.WithSeed(e.Seed),
		taskset.WithPeriodFactor(e.PeriodFactor),
		taskset.WithPartition(partition),
		taskset.WithDirichletAlpha(e.DirichletAlpha),
	)
}
