// Package metrics exports run reports as prometheus metrics.
package metrics

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/utkarsh5026/rtbench/harness"
)

// Metrics holds the collectors of one run on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	// CoreJobs counts jobs executed per core
	CoreJobs *prometheus.CounterVec
	// CoreMisses counts deadline misses per core
	CoreMisses *prometheus.CounterVec
	// CoreDelay tracks mean/min/max delay ratio per core
	CoreDelay *prometheus.GaugeVec

	TaskJobs      *prometheus.CounterVec
	TaskMisses    *prometheus.CounterVec
	TaskMeanDelay *prometheus.GaugeVec

	MissRate      prometheus.Gauge
	RunSeconds    prometheus.Gauge
	SetupWarnings prometheus.Counter
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		CoreJobs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rtbench_core_jobs_total",
				Help: "Jobs executed on a core",
			},
			[]string{"core"},
		),
		CoreMisses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rtbench_core_misses_total",
				Help: "Jobs on a core that exceeded their period",
			},
			[]string{"core"},
		),
		CoreDelay: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "rtbench_core_delay_ratio",
				Help: "Job execution time over WCET on a core",
			},
			[]string{"core", "stat"},
		),
		TaskJobs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rtbench_task_jobs_total",
				Help: "Jobs executed by a task",
			},
			[]string{"task", "core"},
		),
		TaskMisses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rtbench_task_misses_total",
				Help: "Jobs of a task that exceeded their period",
			},
			[]string{"task", "core"},
		),
		TaskMeanDelay: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "rtbench_task_mean_delay_ratio",
				Help: "Mean job execution time over WCET of a task",
			},
			[]string{"task", "core"},
		),
		MissRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rtbench_miss_rate",
			Help: "Fraction of all jobs that missed their deadline",
		}),
		RunSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rtbench_run_duration_seconds",
			Help: "Length of the measurement window",
		}),
		SetupWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rtbench_setup_warnings_total",
			Help: "Task threads that could not be pinned or prioritized",
		}),
	}

	m.registry.MustRegister(
		m.CoreJobs, m.CoreMisses, m.CoreDelay,
		m.TaskJobs, m.TaskMisses, m.TaskMeanDelay,
		m.MissRate, m.RunSeconds, m.SetupWarnings,
	)
	return m
}

// Registry exposes the private registry, e.g. for promhttp.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe records a completed run.
func (m *Metrics) Observe(r *harness.Report) {
	for _, c := range r.Cores {
		core := strconv.Itoa(c.Core)
		m.CoreJobs.WithLabelValues(core).Add(float64(c.Jobs))
		m.CoreMisses.WithLabelValues(core).Add(float64(c.Misses))
		m.CoreDelay.WithLabelValues(core, "mean").Set(c.MeanDelay)
		m.CoreDelay.WithLabelValues(core, "min").Set(c.MinDelay)
		m.CoreDelay.WithLabelValues(core, "max").Set(c.MaxDelay)
	}

	for _, t := range r.Tasks {
		task, core := strconv.Itoa(t.TaskID), strconv.Itoa(t.Core)
		m.TaskJobs.WithLabelValues(task, core).Add(float64(t.Jobs))
		m.TaskMisses.WithLabelValues(task, core).Add(float64(t.Misses))
		m.TaskMeanDelay.WithLabelValues(task, core).Set(t.MeanDelay)
	}

	m.MissRate.Set(r.MissRate)
	m.RunSeconds.Set(r.Duration().Seconds())
	m.SetupWarnings.Add(float64(len(r.Warnings)))
}

// WriteTextfile writes the registry in the node-exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
