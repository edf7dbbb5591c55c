// Package classify sorts sanitized columns into the three classes the chart
// planner works with.
package classify

import "github.com/KaramelBytes/chartloom-cli/internal/table"

// Class is a column class label.
type Class string

const (
	Categorical Class = "categorical"
	Numerical   Class = "numerical"
	Datetime    Class = "datetime"
)

// Classification lists column names per class in table order.
type Classification struct {
	Categorical []string `json:"categorical" yaml:"categorical"`
	Numerical   []string `json:"numerical" yaml:"numerical"`
	Datetime    []string `json:"datetime" yaml:"datetime"`
}

// Of returns the class of a column type.
func Of(t table.Type) Class {
	switch t {
	case table.Integer, table.Float:
		return Numerical
	case table.DateTime:
		return Datetime
	default:
		return Categorical
	}
}

// Classify partitions the columns of t. Every column lands in exactly one class.
func Classify(t *table.Table) Classification {
	var c Classification
	for _, col := range t.Columns {
		switch Of(col.Type) {
		case Numerical:
			c.Numerical = append(c.Numerical, col.Name)
		case Datetime:
			c.Datetime = append(c.Datetime, col.Name)
		default:
			c.Categorical = append(c.Categorical, col.Name)
		}
	}
	return c
}

// Len is the number of classified columns.
func (c Classification) Len() int {
	return len(c.Categorical) + len(c.Numerical) + len(c.Datetime)
}

// ClassOf looks up the class of a named column.
func (c Classification) ClassOf(name string) (Class, bool) {
	for _, group := range []struct {
		class Class
		names []string
	}{{Categorical, c.Categorical}, {Numerical, c.Numerical}, {Datetime, c.Datetime}} {
		for _, n := range group.names {
			if n == name {
				return group.class, true
			}
		}
	}
	return "", false
}
