// Package table holds the in-memory column store shared by every pipeline stage.
package table

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Type is the value type held by a column.
type Type uint8

const (
	// Mixed marks a raw column whose cells are not uniformly typed. Sanitized
	// tables never contain Mixed columns.
	Mixed Type = iota
	Integer
	Float
	Boolean
	DateTime
	Text
)

func (t Type) String() string {
	switch t {
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Boolean:
		return "boolean"
	case DateTime:
		return "datetime"
	case Text:
		return "text"
	default:
		return "mixed"
	}
}

// Canonical reports whether t belongs to the serialization-safe set.
func (t Type) Canonical() bool { return t >= Integer && t <= Text }

// Numeric reports whether t is Integer or Float.
func (t Type) Numeric() bool { return t == Integer || t == Float }

// Textual reports whether t holds free-form values (Text or raw Mixed).
func (t Type) Textual() bool { return t == Text || t == Mixed }

// ErrColumnNotFound is returned when a lookup names a column the table lacks.
var ErrColumnNotFound = errors.New("column not found")

// Column is a named sequence of cells. A nil cell is null; any other cell is
// int64, float64, bool, time.Time or string according to Type. Mixed columns
// may hold any of those.
type Column struct {
	Name  string
	Type  Type
	Cells []any
}

// Len returns the number of cells.
func (c *Column) Len() int { return len(c.Cells) }

// Missing counts null cells.
func (c *Column) Missing() int {
	n := 0
	for _, v := range c.Cells {
		if v == nil {
			n++
		}
	}
	return n
}

// Distinct counts distinct non-null values.
func (c *Column) Distinct() int {
	seen := make(map[string]struct{}, len(c.Cells))
	for _, v := range c.Cells {
		if v == nil {
			continue
		}
		seen[Key(v)] = struct{}{}
	}
	return len(seen)
}

// Clone returns a deep copy of the cell slice.
func (c *Column) Clone() *Column {
	cells := make([]any, len(c.Cells))
	copy(cells, c.Cells)
	return &Column{Name: c.Name, Type: c.Type, Cells: cells}
}

// Table is an ordered set of equal-length columns.
type Table struct {
	Name    string
	Columns []*Column
}

// New builds a table and checks the shape invariants: unique names and a
// constant row count.
func New(name string, cols ...*Column) (*Table, error) {
	t := &Table{Name: name}
	seen := make(map[string]struct{}, len(cols))
	for i, c := range cols {
		if c == nil {
			return nil, fmt.Errorf("column %d is nil", i)
		}
		if _, dup := seen[c.Name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", c.Name)
		}
		seen[c.Name] = struct{}{}
		if i > 0 && c.Len() != cols[0].Len() {
			return nil, fmt.Errorf("column %q has %d rows, want %d", c.Name, c.Len(), cols[0].Len())
		}
		t.Columns = append(t.Columns, c)
	}
	return t, nil
}

// Rows returns the row count.
func (t *Table) Rows() int {
	if t == nil || len(t.Columns) == 0 {
		return 0
	}
	return t.Columns[0].Len()
}

// Names returns the column names in table order.
func (t *Table) Names() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// Column looks a column up by exact name.
func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Lookup is Column with an ErrColumnNotFound error instead of a flag.
func (t *Table) Lookup(name string) (*Column, error) {
	c, ok := t.Column(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return c, nil
}

// Clone deep-copies the table.
func (t *Table) Clone() *Table {
	out := &Table{Name: t.Name, Columns: make([]*Column, len(t.Columns))}
	for i, c := range t.Columns {
		out.Columns[i] = c.Clone()
	}
	return out
}

// Row returns the cells of row i in column order.
func (t *Table) Row(i int) []any {
	row := make([]any, len(t.Columns))
	for j, c := range t.Columns {
		row[j] = c.Cells[i]
	}
	return row
}

// SelectRows returns a new table holding only the given row indexes, in order.
func (t *Table) SelectRows(idx []int) *Table {
	out := &Table{Name: t.Name, Columns: make([]*Column, len(t.Columns))}
	for j, c := range t.Columns {
		cells := make([]any, len(idx))
		for k, i := range idx {
			cells[k] = c.Cells[i]
		}
		out.Columns[j] = &Column{Name: c.Name, Type: c.Type, Cells: cells}
	}
	return out
}

// Filter keeps the rows whose value in column equals value, compared by Key.
func (t *Table) Filter(column, value string) (*Table, error) {
	c, err := t.Lookup(column)
	if err != nil {
		return nil, err
	}
	var idx []int
	for i, v := range c.Cells {
		if v != nil && Key(v) == value {
			idx = append(idx, i)
		}
	}
	return t.SelectRows(idx), nil
}

// Key renders a cell as a stable string, used for distinct counts, grouping
// and filtering. Null renders as the empty string.
func Key(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return fmt.Sprintf("%d", x)
	case float64:
		return fmt.Sprintf("%g", x)
	case bool:
		if x {
			return "true"
		}
		return "false"
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.RFC3339)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// RowKey renders a whole row so that two rows share a key only when every
// cell is equal. Cells are tagged with their Go type so that null, "" and 0
// stay distinct.
func RowKey(row []any) string {
	var b strings.Builder
	for i, v := range row {
		if i > 0 {
			b.WriteByte(0x1f)
		}
		switch v.(type) {
		case nil:
			b.WriteString("n:")
		case string:
			b.WriteString("s:")
		case int64:
			b.WriteString("i:")
		case float64:
			b.WriteString("f:")
		case bool:
			b.WriteString("b:")
		case time.Time:
			b.WriteString("t:")
			b.WriteString(v.(time.Time).UTC().Format(time.RFC3339Nano))
			continue
		default:
			b.WriteString("x:")
		}
		b.WriteString(Key(v))
	}
	return b.String()
}

// AsFloat reads a numeric cell as float64.
func AsFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}
