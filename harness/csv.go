package harness

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// LogFileName is the per-task CSV file name written by WriteLogs.
func LogFileName(taskID int) string {
	return fmt.Sprintf("task_%d_delays.csv", taskID)
}

// WriteLogs writes one CSV per task into dir, creating it if needed.
// Rows are "period_idx,delay_ratio,missed" with the ratio at six decimals;
// the missed column is omitted when disabled with WithMissedColumn(false).
func (h *Harness) WriteLogs(dir string) error {
	if h.State() != Reported {
		return ErrNotReported
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	for _, l := range h.logs {
		path := filepath.Join(dir, LogFileName(l.TaskID))
		if err := writeLog(path, l, h.cfg.missedColumn); err != nil {
			return fmt.Errorf("task %d: %w", l.TaskID, err)
		}
	}

	h.cfg.logger.Sugar().Debugf("wrote %d task logs to %s", len(h.logs), dir)
	return nil
}

func writeLog(path string, l *TaskLog, missedColumn bool) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create log: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	header := []string{"period_idx", "delay_ratio"}
	if missedColumn {
		header = append(header, "missed")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for _, e := range l.Entries {
		row[0] = strconv.Itoa(e.PeriodIndex)
		row[1] = strconv.FormatFloat(e.DelayRatio, 'f', 6, 64)
		if missedColumn {
			row[2] = "0"
			if e.Missed {
				row[2] = "1"
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
