package analysis

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/KaramelBytes/chartloom-cli/internal/chart"
	"github.com/KaramelBytes/chartloom-cli/internal/classify"
	"github.com/KaramelBytes/chartloom-cli/internal/pipeline"
	"github.com/KaramelBytes/chartloom-cli/internal/table"
)

// DefaultSampleRows is how many rows a summary shows by default.
const DefaultSampleRows = 5

// topValues is how many frequent values are listed per categorical column.
const topValues = 3

// Summary is a markdown-friendly description of a processed upload.
type Summary struct {
	Name           string                  `json:"name" yaml:"name"`
	Session        string                  `json:"session" yaml:"session"`
	RawRows        int                     `json:"raw_rows" yaml:"raw_rows"`
	RawColumns     int                     `json:"raw_columns" yaml:"raw_columns"`
	Rows           int                     `json:"rows" yaml:"rows"`
	Columns        []ColumnSummary         `json:"columns" yaml:"columns"`
	Classification classify.Classification `json:"classification" yaml:"classification"`
	Charts         []chart.Spec            `json:"charts" yaml:"charts"`
	Samples        [][]string              `json:"samples,omitempty" yaml:"samples,omitempty"`
	Notes          []string                `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// ColumnSummary captures the type and basic statistics of one column.
type ColumnSummary struct {
	Name    string `json:"name" yaml:"name"`
	Type    string `json:"type" yaml:"type"`
	Class   string `json:"class" yaml:"class"`
	NonNull int    `json:"non_null" yaml:"non_null"`
	Missing int    `json:"missing" yaml:"missing"`
	Unique  int    `json:"unique" yaml:"unique"`
	// Numeric is set for numerical columns, First and Last for datetime ones
	// and Top for categorical ones.
	Numeric *NumSummary   `json:"numeric,omitempty" yaml:"numeric,omitempty"`
	Top     []chart.Point `json:"top,omitempty" yaml:"top,omitempty"`
	First   string        `json:"first,omitempty" yaml:"first,omitempty"`
	Last    string        `json:"last,omitempty" yaml:"last,omitempty"`
}

// NumSummary holds numeric column statistics.
type NumSummary struct {
	Min  float64 `json:"min" yaml:"min"`
	Max  float64 `json:"max" yaml:"max"`
	Mean float64 `json:"mean" yaml:"mean"`
	Std  float64 `json:"std" yaml:"std"`
}

// Summarize describes a loaded session. sampleRows <= 0 leaves samples out.
func Summarize(s *pipeline.Session, sampleRows int) *Summary {
	t := s.Table
	sum := &Summary{
		Name:           t.Name,
		Session:        s.ID,
		Rows:           t.Rows(),
		Classification: s.Classification,
		Charts:         s.Overview,
		Notes:          s.Report.Lines(),
	}
	if s.Raw != nil {
		sum.RawRows = s.Raw.Rows()
		sum.RawColumns = len(s.Raw.Columns)
	}
	for _, c := range t.Columns {
		var before *table.Column
		if s.Cleaned != nil {
			before, _ = s.Cleaned.Column(c.Name)
		}
		sum.Columns = append(sum.Columns, summarizeColumn(c, before))
	}
	n := min(sampleRows, t.Rows())
	for i := 0; i < n; i++ {
		row := t.Row(i)
		vals := make([]string, len(row))
		for j, v := range row {
			vals[j] = table.Key(v)
		}
		sum.Samples = append(sum.Samples, vals)
	}
	return sum
}

// summarizeColumn describes c. Missing values are counted in before, the
// same column ahead of sanitizing, since sanitizing fills most nulls.
func summarizeColumn(c, before *table.Column) ColumnSummary {
	cs := ColumnSummary{
		Name:   c.Name,
		Type:   c.Type.String(),
		Class:  string(classify.Of(c.Type)),
		Unique: c.Distinct(),
	}
	cs.Missing = c.Missing()
	if before != nil && before.Len() == c.Len() {
		cs.Missing = before.Missing()
	}
	cs.NonNull = c.Len() - cs.Missing

	switch classify.Of(c.Type) {
	case classify.Numerical:
		cs.Numeric = numSummary(c)
	case classify.Datetime:
		var first, last time.Time
		for _, v := range c.Cells {
			d, ok := v.(time.Time)
			if !ok {
				continue
			}
			if first.IsZero() || d.Before(first) {
				first = d
			}
			if last.IsZero() || d.After(last) {
				last = d
			}
		}
		if !first.IsZero() {
			cs.First, cs.Last = table.Key(first), table.Key(last)
		}
	default:
		top := chart.ValueCounts(c)
		cs.Top = top[:min(topValues, len(top))]
	}
	return cs
}

func numSummary(c *table.Column) *NumSummary {
	var vals []float64
	for _, v := range c.Cells {
		if f, ok := table.AsFloat(v); ok {
			vals = append(vals, f)
		}
	}
	if len(vals) == 0 {
		return nil
	}
	ns := &NumSummary{Min: vals[0], Max: vals[0]}
	var total float64
	for _, v := range vals {
		ns.Min = math.Min(ns.Min, v)
		ns.Max = math.Max(ns.Max, v)
		total += v
	}
	ns.Mean = total / float64(len(vals))
	var sq float64
	for _, v := range vals {
		sq += (v - ns.Mean) * (v - ns.Mean)
	}
	if len(vals) > 1 {
		ns.Std = math.Sqrt(sq / float64(len(vals)-1))
	}
	return ns
}

// Markdown renders a compact report suitable for terminals or standalone docs.
func (r *Summary) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	if r.RawRows > 0 && r.RawRows != r.Rows {
		b.WriteString(fmt.Sprintf("Rows: %d (from %d uploaded)\n", r.Rows, r.RawRows))
	} else {
		b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	}
	if r.RawColumns > 0 && r.RawColumns != len(r.Columns) {
		b.WriteString(fmt.Sprintf("Columns: %d (from %d uploaded)\n\n", len(r.Columns), r.RawColumns))
	} else {
		b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(r.Columns)))
	}

	b.WriteString("[SCHEMA]\n")
	for _, c := range r.Columns {
		total := c.NonNull + c.Missing
		missPct := 0.0
		if total > 0 {
			missPct = float64(c.Missing) * 100.0 / float64(total)
		}
		b.WriteString(fmt.Sprintf("- %s: %s (non-null %d, missing %.1f%%)", safeName(c.Name), c.Type, c.NonNull, missPct))
		switch {
		case c.Numeric != nil:
			b.WriteString(fmt.Sprintf("; min %.4g, max %.4g, mean %.4g, std %.4g", c.Numeric.Min, c.Numeric.Max, c.Numeric.Mean, c.Numeric.Std))
		case c.First != "":
			b.WriteString(fmt.Sprintf("; from %s to %s", c.First, c.Last))
		case len(c.Top) > 0:
			b.WriteString("; top: ")
			for i, kv := range c.Top {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(fmt.Sprintf("%s(%d)", safeVal(kv.X), int(kv.Y)))
			}
			if c.Unique > len(c.Top) {
				b.WriteString(fmt.Sprintf("; unique=%d", c.Unique))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\n[COLUMN TYPES]\n")
	b.WriteString(fmt.Sprintf("- categorical: %s\n", nameList(r.Classification.Categorical)))
	b.WriteString(fmt.Sprintf("- numerical: %s\n", nameList(r.Classification.Numerical)))
	b.WriteString(fmt.Sprintf("- datetime: %s\n", nameList(r.Classification.Datetime)))

	if len(r.Charts) > 0 {
		b.WriteString("\n[SUGGESTED CHARTS]\n")
		for i, s := range r.Charts {
			b.WriteString(fmt.Sprintf("%d. %s: %s\n", i+1, s.Kind, s.Title))
		}
	}

	if len(r.Samples) > 0 {
		b.WriteString("\n[HEAD AND SAMPLE ROWS]\n")
		b.WriteString("| ")
		for i, c := range r.Columns {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(safeName(c.Name))
		}
		b.WriteString(" |\n| ")
		for i := range r.Columns {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString("---")
		}
		b.WriteString(" |\n")
		for _, row := range r.Samples {
			b.WriteString("| ")
			for i := range r.Columns {
				if i > 0 {
					b.WriteString(" | ")
				}
				val := ""
				if i < len(row) {
					val = row[i]
				}
				if rs := []rune(val); len(rs) > 80 {
					val = string(rs[:77]) + "..."
				}
				b.WriteString(safeVal(val))
			}
			b.WriteString(" |\n")
		}
	}
	if len(r.Notes) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Notes {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func nameList(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = safeName(n)
	}
	return strings.Join(out, ", ")
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
