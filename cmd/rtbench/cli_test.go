package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/utkarsh5026/rtbench/harness"
	"github.com/utkarsh5026/rtbench/taskset"
)

// execute runs the root command with fresh flag state.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	reset(rootCmd.PersistentFlags())
	for _, c := range []*cobra.Command{generateCmd, runCmd, fragmentsCmd} {
		reset(c.Flags())
	}

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestGenerateCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "set.yaml")

	out, err := execute(t, "generate", "-m", "2", "-n", "4", "--seed", "5", "--cr", "0.5", "-o", path)
	if err != nil {
		t.Fatalf("generate failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "TASK SET (M=2, N=4)") {
		t.Errorf("expected task table, got:\n%s", out)
	}

	ts, err := taskset.ReadFile(path)
	if err != nil {
		t.Fatalf("generated file invalid: %v", err)
	}
	if ts.Meta.Seed != 5 || len(ts.Tasks) != 4 {
		t.Errorf("unexpected meta %+v", ts.Meta)
	}

	again := filepath.Join(t.TempDir(), "again.yaml")
	if _, err := execute(t, "generate", "-m", "2", "-n", "4", "--seed", "5", "--cr", "0.5", "-q", "-o", again); err != nil {
		t.Fatal(err)
	}
	a, _ := os.ReadFile(path)
	b, _ := os.ReadFile(again)
	if !bytes.Equal(a, b) {
		t.Error("expected the same seed to produce the same file")
	}
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	setPath := filepath.Join(dir, "set.json")
	if _, err := execute(t, "generate", "-m", "2", "-n", "2", "--seed", "3", "-q", "-o", setPath); err != nil {
		t.Fatal(err)
	}

	logs := filepath.Join(dir, "logs")
	promPath := filepath.Join(dir, "rtbench.prom")
	out, err := execute(t, "run",
		"-t", setPath,
		"-d", "20ms",
		"--margin", "5ms",
		"--priority", "0",
		"--no-pin",
		"--no-progress",
		"-o", logs,
		"--metrics-file", promPath,
	)
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, out)
	}

	if !strings.Contains(out, "Global miss rate:") || !strings.Contains(out, "PER-CORE DELAY") {
		t.Errorf("expected report output, got:\n%s", out)
	}
	for _, id := range []int{0, 1} {
		if _, err := os.Stat(filepath.Join(logs, harness.LogFileName(id))); err != nil {
			t.Errorf("missing log for task %d: %v", id, err)
		}
	}
	if _, err := os.Stat(promPath); err != nil {
		t.Errorf("missing metrics file: %v", err)
	}
}

func TestRunCommand_MissingTaskSet(t *testing.T) {
	_, err := execute(t, "run", "-t", filepath.Join(t.TempDir(), "nope.json"), "--no-progress")
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("expected missing file error, got %v", err)
	}
}

func TestFragmentsCommand(t *testing.T) {
	out, err := execute(t, "fragments")
	if err != nil {
		t.Fatalf("fragments failed: %v", err)
	}
	for _, want := range []string{"API_fragment0", "API_para_fragment3", "benchmark_fragment5", "runtime bodies available"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
