package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "experiment.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newFlagCommand() (*cobra.Command, *Experiment) {
	cmd := &cobra.Command{Use: "test"}
	flags := &Experiment{}
	bindSynthesisFlags(cmd.Flags(), flags)
	bindRunFlags(cmd.Flags(), flags)
	return cmd, flags
}

func TestResolveExperiment_Layers(t *testing.T) {
	configPath = writeConfig(t, `
seed: 9
params:
  M: 2
  N: 3
  wcet_min: 100
  wcet_max: 150
  cr: 0.4
  raf_max: 50
  fn: 6
  contention: 0.25
partition: uunifast
run:
  duration: 50ms
  no_pin: true
`)
	t.Cleanup(func() { configPath = "" })

	cmd, flags := newFlagCommand()
	if err := cmd.Flags().Set("tasks", "5"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("priority", "0"); err != nil {
		t.Fatal(err)
	}

	exp, err := resolveExperiment(cmd, flags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if exp.Params.Cores != 2 || exp.Params.FN != 6 || exp.Params.Contention != 0.25 {
		t.Errorf("file values not applied: %+v", exp.Params)
	}
	if exp.Params.Tasks != 5 {
		t.Errorf("expected flag to override tasks, got %d", exp.Params.Tasks)
	}
	if exp.Seed != 9 || exp.Partition != "uunifast" {
		t.Errorf("unexpected seed/partition %d/%s", exp.Seed, exp.Partition)
	}
	if exp.Run.Duration != 50*time.Millisecond || !exp.Run.NoPin || exp.Run.Priority != 0 {
		t.Errorf("unexpected run config %+v", exp.Run)
	}
	if exp.PeriodFactor != 10 || exp.Run.OutDir != "." {
		t.Errorf("expected defaults to survive, got %d / %q", exp.PeriodFactor, exp.Run.OutDir)
	}

	ts, err := exp.synthesize()
	if err != nil {
		t.Fatalf("synthesis failed: %v", err)
	}
	if len(ts.Tasks) != 5 || ts.Meta.Partition != "uunifast" {
		t.Errorf("unexpected task set meta %+v", ts.Meta)
	}
}

func TestResolveExperiment_DefaultsAndTimeSeed(t *testing.T) {
	configPath = ""
	cmd, flags := newFlagCommand()

	exp, err := resolveExperiment(cmd, flags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exp.Seed == 0 {
		t.Error("expected a time based seed")
	}
	if exp.Params != defaultExperiment().Params {
		t.Errorf("expected default params, got %+v", exp.Params)
	}
}

func TestLoadExperiment_Errors(t *testing.T) {
	exp := defaultExperiment()

	if err := loadExperiment(filepath.Join(t.TempDir(), "missing.yaml"), &exp); err == nil {
		t.Error("expected error for missing file")
	}
	if err := loadExperiment(writeConfig(t, "sed: 1\n"), &exp); err == nil {
		t.Error("expected error for unknown field")
	}
	if err := loadExperiment(writeConfig(t, ""), &exp); err != nil {
		t.Errorf("expected empty file to be accepted, got %v", err)
	}
}

func TestExperiment_BadPartition(t *testing.T) {
	exp := defaultExperiment()
	exp.Partition = "zipf"
	if _, err := exp.synthesize(); err == nil {
		t.Error("expected error for unknown partition")
	}
}
