package chart

import (
	"fmt"

	"github.com/KaramelBytes/chartloom-cli/internal/table"
)

// DefaultDistinctThreshold is the distinct-value count below which a column
// without a dependent axis is shown as a bar chart.
const DefaultDistinctThreshold = 20

// Decision is a recommendation together with the rule that produced it.
type Decision struct {
	Kind Kind   `json:"kind" yaml:"kind"`
	Rule string `json:"rule" yaml:"rule"`
	// Fallback is set when no specific rule applied and the kind is a guess.
	Fallback bool `json:"fallback,omitempty" yaml:"fallback,omitempty"`
}

// axes is what the recommendation rules look at. y is nil when there is no
// usable dependent axis.
type axes struct {
	x         *table.Column
	y         *table.Column
	threshold int
}

type recommendRule struct {
	name string
	when func(a axes) bool
	kind Kind
}

// fallbackRule is the last rule; it always matches.
const fallbackRule = "fallback"

var recommendRules = []recommendRule{
	{"single: textual or few distinct values", func(a axes) bool {
		return a.y == nil && (a.x.Type.Textual() || a.x.Distinct() < a.threshold)
	}, Bar},
	{"single: numeric", func(a axes) bool { return a.y == nil && a.x.Type.Numeric() }, Histogram},
	{"single: other", func(a axes) bool { return a.y == nil }, Pie},
	{"pair: datetime by numeric", func(a axes) bool {
		return a.x.Type == table.DateTime && a.y.Type.Numeric()
	}, Line},
	{"pair: numeric by numeric", func(a axes) bool { return a.x.Type.Numeric() && a.y.Type.Numeric() }, Scatter},
	{"pair: textual by numeric", func(a axes) bool { return a.x.Type.Textual() && a.y.Type.Numeric() }, Bar},
	{fallbackRule, func(axes) bool { return true }, Bar},
}

// Recommender picks a chart kind for an axis selection.
type Recommender struct {
	DistinctThreshold int
}

// Recommend uses the default distinct threshold.
func Recommend(t *table.Table, x string, ys []string) (Kind, error) {
	d, err := Recommender{DistinctThreshold: DefaultDistinctThreshold}.Decide(t, x, ys)
	return d.Kind, err
}

// Recommend returns the recommended kind only.
func (r Recommender) Recommend(t *table.Table, x string, ys []string) (Kind, error) {
	d, err := r.Decide(t, x, ys)
	return d.Kind, err
}

// Decide evaluates the rules top-down for x and the first element of ys. A
// dependent axis that is not a column of t counts as no dependent axis. The
// only error is an x that is not a column of t.
func (r Recommender) Decide(t *table.Table, x string, ys []string) (Decision, error) {
	xc, err := t.Lookup(x)
	if err != nil {
		return Decision{}, fmt.Errorf("independent axis: %w", err)
	}
	a := axes{x: xc, threshold: r.DistinctThreshold}
	if a.threshold <= 0 {
		a.threshold = DefaultDistinctThreshold
	}
	if len(ys) > 0 {
		if yc, ok := t.Column(ys[0]); ok {
			a.y = yc
		}
	}
	for _, rule := range recommendRules {
		if rule.when(a) {
			return Decision{Kind: rule.kind, Rule: rule.name, Fallback: rule.name == fallbackRule}, nil
		}
	}
	return Decision{}, fmt.Errorf("no recommendation rule matched")
}
