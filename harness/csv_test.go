package harness

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"
)

func runForLogs(t *testing.T, opts ...Option) (*Harness, string) {
	t.Helper()

	ts := buildTaskSet(2, task(3, 0, 200, 100, "work"), task(7, 1, 400, 100, "work"))
	h, err := New(ts, Funcs{"work": noop}, testOptions(opts...)...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := h.WriteLogs(t.TempDir()); !errors.Is(err, ErrNotReported) {
		t.Fatalf("expected ErrNotReported before run, got %v", err)
	}
	if _, err := h.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	dir := filepath.Join(t.TempDir(), "logs")
	if err := h.WriteLogs(dir); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	return h, dir
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv %s: %v", path, err)
	}
	return records
}

func TestWriteLogs(t *testing.T) {
	h, dir := runForLogs(t)
	row := regexp.MustCompile(`^\d+,\d+\.\d{6},[01]$`)

	for _, l := range h.Logs() {
		path := filepath.Join(dir, LogFileName(l.TaskID))
		records := readCSV(t, path)

		if got := records[0]; len(got) != 3 || got[0] != "period_idx" || got[1] != "delay_ratio" || got[2] != "missed" {
			t.Fatalf("unexpected header %v", got)
		}
		if len(records)-1 != len(l.Entries) {
			t.Fatalf("task %d: expected %d rows, got %d", l.TaskID, len(l.Entries), len(records)-1)
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		lines := regexp.MustCompile(`\r?\n`).Split(string(raw), -1)
		for _, line := range lines[1 : len(lines)-1] {
			if !row.MatchString(line) {
				t.Fatalf("malformed row %q", line)
			}
		}
	}

	if _, err := os.Stat(filepath.Join(dir, "task_3_delays.csv")); err != nil {
		t.Errorf("expected task_3_delays.csv: %v", err)
	}
}

func TestWriteLogs_WithoutMissedColumn(t *testing.T) {
	_, dir := runForLogs(t, WithMissedColumn(false))

	records := readCSV(t, filepath.Join(dir, LogFileName(7)))
	for i, r := range records {
		if len(r) != 2 {
			t.Fatalf("row %d: expected 2 columns, got %v", i, r)
		}
	}
	if records[0][0] != "period_idx" || records[0][1] != "delay_ratio" {
		t.Errorf("unexpected header %v", records[0])
	}
}
