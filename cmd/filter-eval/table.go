package main

import (
	"fmt"
	"math"
	"strings"
)

// missingValue is the placeholder for unavailable measurements.
const missingValue = "-"

// metricRow is one row of a metric table. Values are pre-formatted.
type metricRow struct {
	Label  string
	Values []string
	Note   string
}

// metricTable formats aligned columns: a left-aligned label, right-aligned
// values (one per header) and an optional trailing note.
type metricTable struct {
	Headers []string
	Rows    []metricRow
}

// Lines renders the header and data rows without trailing newlines.
func (t *metricTable) Lines() []string {
	if len(t.Rows) == 0 {
		return nil
	}

	labelWidth := 0
	hasNote := false
	for _, row := range t.Rows {
		labelWidth = max(labelWidth, len(row.Label))
		hasNote = hasNote || row.Note != ""
	}

	valueWidths := make([]int, len(t.Headers))
	for i, header := range t.Headers {
		valueWidths[i] = len(header)
	}
	for _, row := range t.Rows {
		for i, val := range row.Values {
			if i < len(valueWidths) {
				valueWidths[i] = max(valueWidths[i], len(val))
			}
		}
	}

	lines := make([]string, 0, len(t.Rows)+1)

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", labelWidth+2))
	for i, header := range t.Headers {
		fmt.Fprintf(&sb, "%*s  ", valueWidths[i], header)
	}
	if hasNote {
		sb.WriteString("Note")
	}
	lines = append(lines, strings.TrimRight(sb.String(), " "))

	for _, row := range t.Rows {
		sb.Reset()
		fmt.Fprintf(&sb, "%-*s  ", labelWidth, row.Label)
		for i := range t.Headers {
			val := missingValue
			if i < len(row.Values) && row.Values[i] != "" {
				val = row.Values[i]
			}
			fmt.Fprintf(&sb, "%*s  ", valueWidths[i], val)
		}
		if hasNote {
			sb.WriteString(row.Note)
		}
		lines = append(lines, strings.TrimRight(sb.String(), " "))
	}
	return lines
}

// String renders the table with one line per row.
func (t *metricTable) String() string {
	lines := t.Lines()
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// formatMetric formats a value with the given decimals. Very small non-zero
// values use scientific notation; infinities are spelled out and NaN is
// missing.
func formatMetric(value float64, decimals int) string {
	switch {
	case math.IsNaN(value):
		return missingValue
	case math.IsInf(value, 1):
		return "inf"
	case math.IsInf(value, -1):
		return "-inf"
	case value != 0 && math.Abs(value) < 0.0001:
		return fmt.Sprintf("%.2e", value)
	}
	return fmt.Sprintf("%.*f", decimals, value)
}
