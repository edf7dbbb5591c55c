// Package cleaning normalizes raw uploads and coerces them into the
// serialization-safe column types the rest of the pipeline relies on.
package cleaning

import (
	"fmt"
	"strings"
	"time"

	"github.com/KaramelBytes/chartloom-cli/internal/report"
	"github.com/KaramelBytes/chartloom-cli/internal/table"
)

// DefaultDateHints are the name fragments that mark a column as holding dates.
var DefaultDateHints = []string{"date", "joined", "start", "end"}

// NormalizeOptions tunes the normalizer.
type NormalizeOptions struct {
	// DateHints are matched case-insensitively against column names.
	DateHints []string
}

// DefaultNormalizeOptions returns the stock hint list.
func DefaultNormalizeOptions() NormalizeOptions {
	return NormalizeOptions{DateHints: DefaultDateHints}
}

// Normalize trims names and text, coerces date-like columns and removes
// duplicate rows. It never fails: a column that cannot be read as dates keeps
// its original values. The input table is not modified.
func Normalize(in *table.Table, opt NormalizeOptions, rep *report.Report) *table.Table {
	t := in.Clone()
	trimNames(t, rep)
	for _, c := range t.Columns {
		if c.Type.Textual() {
			trimCells(c)
		}
	}
	for _, c := range t.Columns {
		if c.Type == table.DateTime || !matchesHint(c.Name, opt.DateHints) {
			continue
		}
		if n := coerceDates(c); n > 0 {
			rep.Add(report.StageClean, c.Name, "parsed as dates; %d unreadable values set to null", n)
		}
	}
	return dropDuplicates(t, rep)
}

// trimNames strips surrounding whitespace from names. A trimmed name that
// collides with an earlier one gets a numeric suffix so names stay unique.
func trimNames(t *table.Table, rep *report.Report) {
	used := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		name := strings.TrimSpace(c.Name)
		base := name
		for k := 1; used[name]; k++ {
			name = fmt.Sprintf("%s.%d", base, k)
		}
		if name != base {
			rep.Add(report.StageClean, c.Name, "renamed to %q: name collides after trimming", name)
		}
		used[name] = true
		c.Name = name
	}
}

func trimCells(c *table.Column) {
	for i, v := range c.Cells {
		if s, ok := v.(string); ok {
			c.Cells[i] = strings.TrimSpace(s)
		}
	}
}

func matchesHint(name string, hints []string) bool {
	lower := strings.ToLower(name)
	for _, h := range hints {
		if h != "" && strings.Contains(lower, strings.ToLower(h)) {
			return true
		}
	}
	return false
}

// coerceDates converts c to DateTime when at least one value parses. Values
// that do not parse become null and are counted in the result. When nothing
// parses, c is left untouched.
func coerceDates(c *table.Column) int {
	parsed := make([]any, len(c.Cells))
	ok, lost := 0, 0
	for i, v := range c.Cells {
		if v == nil {
			continue
		}
		if d, good := parseDateCell(v); good {
			parsed[i] = d
			ok++
			continue
		}
		lost++
	}
	if ok == 0 {
		return 0
	}
	c.Type = table.DateTime
	c.Cells = parsed
	return lost
}

func parseDateCell(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case string:
		return table.ParseTime(x)
	default:
		return table.ParseTime(table.Key(v))
	}
}

// dropDuplicates keeps the first occurrence of every distinct row.
func dropDuplicates(t *table.Table, rep *report.Report) *table.Table {
	n := t.Rows()
	seen := make(map[string]struct{}, n)
	keep := make([]int, 0, n)
	for i := 0; i < n; i++ {
		k := table.RowKey(t.Row(i))
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keep = append(keep, i)
	}
	if len(keep) == n {
		return t
	}
	rep.Add(report.StageClean, "", "removed %d duplicate rows", n-len(keep))
	return t.SelectRows(keep)
}
