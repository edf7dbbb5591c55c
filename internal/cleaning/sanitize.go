package cleaning

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/KaramelBytes/chartloom-cli/internal/report"
	"github.com/KaramelBytes/chartloom-cli/internal/table"
	"github.com/spf13/cast"
)

// DefaultExcluded holds column names that are always removed.
var DefaultExcluded = []string{"Type"}

// Sanitizer coerces every column to a canonical type or drops it.
type Sanitizer struct {
	// Excluded names are compared against the trimmed column name.
	Excluded []string
	Logger   *slog.Logger
}

// NewSanitizer returns a sanitizer with the given excluded names. A nil slice
// selects DefaultExcluded.
func NewSanitizer(excluded []string) *Sanitizer {
	if excluded == nil {
		excluded = DefaultExcluded
	}
	return &Sanitizer{Excluded: excluded}
}

// outcome is the tagged result of sanitizing one column: exactly one of
// column or failure is set.
type outcome struct {
	column  *table.Column
	failure *ColumnCoercionFailure
}

func kept(c *table.Column) outcome { return outcome{column: c} }

func dropped(c *table.Column, err error) outcome {
	return outcome{failure: &ColumnCoercionFailure{Column: c.Name, Type: c.Type, Err: err}}
}

// rule pairs a predicate with the coercion applied when it matches.
type rule struct {
	name  string
	match func(s *Sanitizer, c *table.Column) bool
	apply func(c *table.Column) outcome
}

// rules are evaluated top-down; the first match wins.
var rules = []rule{
	{
		name:  "excluded",
		match: func(s *Sanitizer, c *table.Column) bool { return s.excluded(c.Name) },
		apply: func(c *table.Column) outcome { return dropped(c, ErrReservedName) },
	},
	{
		name:  "integer",
		match: ofType(table.Integer),
		apply: func(c *table.Column) outcome { return kept(mapCells(c, table.Integer, toInt64)) },
	},
	{
		name:  "float",
		match: ofType(table.Float),
		apply: func(c *table.Column) outcome { return kept(mapCells(c, table.Float, toFloat64)) },
	},
	{
		name:  "boolean",
		match: ofType(table.Boolean),
		apply: coerceBool,
	},
	{
		name:  "datetime",
		match: ofType(table.DateTime),
		apply: func(c *table.Column) outcome { return kept(mapCells(c, table.DateTime, toTime)) },
	},
	{
		name:  "text",
		match: func(_ *Sanitizer, c *table.Column) bool { return c.Type.Textual() },
		apply: func(c *table.Column) outcome { return kept(mapCells(c, table.Text, toText)) },
	},
}

func ofType(t table.Type) func(*Sanitizer, *table.Column) bool {
	return func(_ *Sanitizer, c *table.Column) bool { return c.Type == t }
}

func (s *Sanitizer) excluded(name string) bool {
	name = strings.TrimSpace(name)
	for _, x := range s.Excluded {
		if name == x {
			return true
		}
	}
	return false
}

func (s *Sanitizer) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Sanitize returns a table whose columns are a subset of the input's, each of
// a canonical type and accepted by the columnar check. Every dropped column
// gets a report entry. The input table is not modified.
func (s *Sanitizer) Sanitize(in *table.Table, rep *report.Report) *table.Table {
	out := &table.Table{Name: in.Name}
	for _, c := range in.Columns {
		res := s.column(c)
		if res.failure != nil {
			rep.Add(report.StageSanitize, c.Name, "dropped: %v", res.failure.Err)
			continue
		}
		out.Columns = append(out.Columns, res.column)
	}
	return out
}

func (s *Sanitizer) column(c *table.Column) outcome {
	for _, r := range rules {
		if !r.match(s, c) {
			continue
		}
		res := r.apply(c)
		if res.failure == nil {
			if err := checkArrow(res.column); err != nil {
				res = dropped(c, fmt.Errorf("%w: %v", ErrNotSerializable, err))
			}
		}
		s.logger().Debug("sanitize column", "column", c.Name, "rule", r.name, "kept", res.failure == nil)
		return res
	}
	return dropped(c, fmt.Errorf("unsupported type %s", c.Type))
}

// mapCells copies c with every cell passed through f.
func mapCells(c *table.Column, typ table.Type, f func(any) any) *table.Column {
	cells := make([]any, len(c.Cells))
	for i, v := range c.Cells {
		cells[i] = f(v)
	}
	return &table.Column{Name: c.Name, Type: typ, Cells: cells}
}

func toInt64(v any) any {
	if v == nil {
		return int64(0)
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		return int64(0)
	}
	return n
}

func toFloat64(v any) any {
	if v == nil {
		return 0.0
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0.0
	}
	return f
}

func coerceBool(c *table.Column) outcome {
	cells := make([]any, len(c.Cells))
	for i, v := range c.Cells {
		if v == nil {
			cells[i] = false
			continue
		}
		b, err := cast.ToBoolE(v)
		if err != nil {
			return dropped(c, fmt.Errorf("row %d: %w", i, err))
		}
		cells[i] = b
	}
	return kept(&table.Column{Name: c.Name, Type: table.Boolean, Cells: cells})
}

func toTime(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case time.Time:
		return x
	}
	if d, ok := table.ParseTime(table.Key(v)); ok {
		return d
	}
	return nil
}

func toText(v any) any {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		return table.Key(x)
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}
