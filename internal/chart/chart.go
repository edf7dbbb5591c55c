// Package chart recommends, plans and builds chart specs for a
// sanitized table. Specs are plain values; drawing them is up to the caller.
package chart

import (
	"fmt"
	"strings"
)

// Kind is a chart type.
type Kind string

const (
	Bar       Kind = "Bar"
	Histogram Kind = "Histogram"
	Scatter   Kind = "Scatter"
	Line      Kind = "Line"
	Pie       Kind = "Pie"
	Area      Kind = "Area"
	Bubble    Kind = "Bubble"
	Waterfall Kind = "Waterfall"
)

// Kinds lists every kind a user may pick, in menu order.
var Kinds = []Kind{Bar, Histogram, Scatter, Line, Pie, Area, Bubble, Waterfall}

// ParseKind resolves a kind name case-insensitively.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if strings.EqualFold(string(k), strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q (choose one of %s)", ErrUnknownKind, s, kindList())
}

func kindList() string {
	names := make([]string, len(Kinds))
	for i, k := range Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// Aggregation names how Points were derived from the rows.
type Aggregation string

const (
	AggNone  Aggregation = ""
	AggSum   Aggregation = "sum"
	AggCount Aggregation = "count"
)

// Measure is a waterfall step type.
type Measure string

const (
	Relative Measure = "relative"
	Total    Measure = "total"
)

// Point is one aggregated value. X is the display form of the group key.
type Point struct {
	X string  `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Series is a named run of points.
type Series struct {
	Name   string  `json:"name" yaml:"name"`
	Points []Point `json:"points" yaml:"points"`
}

// Step is one bar of a waterfall.
type Step struct {
	Label   string  `json:"label" yaml:"label"`
	Measure Measure `json:"measure" yaml:"measure"`
	Value   float64 `json:"value" yaml:"value"`
}

// Spec describes one chart. Series and Steps are filled when the data was
// aggregated here; otherwise the renderer plots the raw X and Y columns.
type Spec struct {
	Kind   Kind        `json:"kind" yaml:"kind"`
	Title  string      `json:"title" yaml:"title"`
	X      string      `json:"x,omitempty" yaml:"x,omitempty"`
	Y      []string    `json:"y,omitempty" yaml:"y,omitempty"`
	Color  string      `json:"color,omitempty" yaml:"color,omitempty"`
	Size   string      `json:"size,omitempty" yaml:"size,omitempty"`
	Agg    Aggregation `json:"aggregation,omitempty" yaml:"aggregation,omitempty"`
	Bins   int         `json:"bins,omitempty" yaml:"bins,omitempty"`
	Series []Series    `json:"series,omitempty" yaml:"series,omitempty"`
	Steps  []Step      `json:"steps,omitempty" yaml:"steps,omitempty"`
}
