package taskset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the serialization of a TaskSet.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat accepts "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("unknown task set format %q", s)
	}
}

// FormatFromPath infers the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	if f, err := ParseFormat(filepath.Ext(path)); err == nil {
		return f
	}
	return FormatJSON
}

// Encode writes the task set to w in the given format.
func (ts *TaskSet) Encode(w io.Writer, f Format) error {
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ts); err != nil {
			return fmt.Errorf("failed to encode task set as yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(ts); err != nil {
			return fmt.Errorf("failed to encode task set as json: %w", err)
		}
		return nil
	}
}

// Decode reads a task set in the given format and validates it.
func Decode(r io.Reader, f Format) (*TaskSet, error) {
	ts := &TaskSet{}
	switch f {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(ts); err != nil {
			return nil, fmt.Errorf("failed to decode yaml task set: %w", err)
		}
	default:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(ts); err != nil {
			return nil, fmt.Errorf("failed to decode json task set: %w", err)
		}
	}

	if err := ts.Validate(); err != nil {
		return nil, err
	}
	return ts, nil
}

// WriteFile encodes the task set to path, picking the format from the extension.
func (ts *TaskSet) WriteFile(path string) error {
	var buf bytes.Buffer
	if err := ts.Encode(&buf, FormatFromPath(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write task set: %w", err)
	}
	return nil
}

// ReadFile decodes and validates the task set stored at path.
func ReadFile(path string) (*TaskSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open task set: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	return Decode(f, FormatFromPath(path))
}
