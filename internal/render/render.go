// Package render prints task sets, run reports and fragment catalogs as
// console tables.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Color helpers shared by every table.
var (
	Bold   = color.New(color.Bold)
	Green  = color.New(color.FgGreen)
	Red    = color.New(color.FgRed)
	Yellow = color.New(color.FgYellow)
)

const rule = "═══════════════════════════════════════════════════════════"

// FormatNumber formats an integer with comma separators.
func FormatNumber(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var result strings.Builder
	if neg {
		_, _ = result.WriteString("-")
	}
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			_, _ = result.WriteString(",")
		}
		_, _ = result.WriteRune(c)
	}
	return result.String()
}

// FormatPercent renders a fraction in [0, 1] as a percentage.
func FormatPercent(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate*100)
}

func colorPrintLn(w io.Writer, c *color.Color, a ...any) {
	_, _ = c.Fprintln(w, a...)
}

func colorPrintf(w io.Writer, c *color.Color, format string, a ...any) {
	_, _ = c.Fprintf(w, format, a...)
}

func printSectionHeader(w io.Writer, title string, descriptions ...string) {
	_, _ = fmt.Fprintln(w)
	colorPrintLn(w, Bold, rule)
	colorPrintLn(w, Bold, title)
	colorPrintLn(w, Bold, rule)
	for _, desc := range descriptions {
		_, _ = fmt.Fprintln(w, desc)
	}
	_, _ = fmt.Fprintln(w)
}
