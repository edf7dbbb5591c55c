package chart

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/chartloom-cli/internal/classify"
	"github.com/KaramelBytes/chartloom-cli/internal/table"
)

// Request is a user's axis selection for the chart builder.
type Request struct {
	Kind  Kind
	X     string
	Y     []string
	Color string
}

// Build validates req against t and returns the chart spec. Bar, Pie and
// Waterfall charts carry their aggregated data; the rest reference raw columns.
func Build(t *table.Table, req Request) (Spec, error) {
	x, err := t.Lookup(req.X)
	if err != nil {
		return Spec{}, fmt.Errorf("x axis: %w", err)
	}
	ys := make([]*table.Column, 0, len(req.Y))
	for _, name := range req.Y {
		c, err := t.Lookup(name)
		if err != nil {
			return Spec{}, fmt.Errorf("y axis: %w", err)
		}
		ys = append(ys, c)
	}
	if req.Color != "" {
		c, err := t.Lookup(req.Color)
		if err != nil {
			return Spec{}, fmt.Errorf("color: %w", err)
		}
		if classify.Of(c.Type) != classify.Categorical {
			return Spec{}, mismatch(req.Kind, "color column %q must be categorical", req.Color)
		}
	}

	spec := Spec{Kind: req.Kind, X: req.X, Y: req.Y, Color: req.Color}
	yNames := strings.Join(req.Y, ", ")

	switch req.Kind {
	case Bar:
		if len(ys) == 0 {
			spec.Title = fmt.Sprintf("Bar Chart of %s", req.X)
			spec.Agg = AggCount
			spec.Series = []Series{{Name: "Count", Points: ValueCounts(x)}}
			return spec, nil
		}
		if err := requireNumeric(req.Kind, ys); err != nil {
			return Spec{}, err
		}
		spec.Title = fmt.Sprintf("Bar Chart: %s by %s", yNames, req.X)
		spec.Agg = AggSum
		for _, y := range ys {
			spec.Series = append(spec.Series, Series{Name: y.Name, Points: sumBy(x, y)})
		}
	case Histogram:
		spec.Title = fmt.Sprintf("Histogram of %s", req.X)
		spec.Bins = DefaultBins
		spec.Agg = AggCount
		if x.Type.Numeric() {
			spec.Series = []Series{{Name: "Count", Points: histogram(x, DefaultBins)}}
		} else {
			spec.Series = []Series{{Name: "Count", Points: ValueCounts(x)}}
		}
	case Scatter:
		if len(ys) == 0 {
			return Spec{}, mismatch(req.Kind, "select at least one y axis")
		}
		spec.Title = fmt.Sprintf("Scatter Plot: %s vs %s", yNames, req.X)
	case Line:
		if len(ys) == 0 {
			return Spec{}, mismatch(req.Kind, "select at least one y axis")
		}
		spec.Title = fmt.Sprintf("Line Chart: %s over %s", yNames, req.X)
	case Area:
		if len(ys) == 0 {
			return Spec{}, mismatch(req.Kind, "select at least one y axis")
		}
		spec.Title = fmt.Sprintf("Area Chart: %s over %s", yNames, req.X)
	case Pie:
		spec.Title = fmt.Sprintf("Pie Chart of %s", req.X)
		spec.Agg = AggCount
		spec.Series = []Series{{Name: "Count", Points: ValueCounts(x)}}
	case Bubble:
		if len(ys) != 1 {
			return Spec{}, mismatch(req.Kind, "bubble charts require a single numeric y axis")
		}
		if !ys[0].Type.Numeric() {
			return Spec{}, mismatch(req.Kind, "y axis %q must be numeric for bubble sizing", ys[0].Name)
		}
		spec.Title = fmt.Sprintf("Bubble Chart: %s vs %s", ys[0].Name, req.X)
		spec.Size = ys[0].Name
	case Waterfall:
		if len(ys) != 1 {
			return Spec{}, mismatch(req.Kind, "waterfall charts require a single numeric y axis")
		}
		if err := requireNumeric(req.Kind, ys); err != nil {
			return Spec{}, err
		}
		spec.Title = fmt.Sprintf("Waterfall Chart: %s by %s", ys[0].Name, req.X)
		spec.Agg = AggSum
		for _, p := range sumBy(x, ys[0]) {
			spec.Steps = append(spec.Steps, Step{Label: p.X, Measure: Relative, Value: p.Y})
		}
	default:
		return Spec{}, fmt.Errorf("%w: %q", ErrUnknownKind, req.Kind)
	}
	return spec, nil
}

func requireNumeric(k Kind, ys []*table.Column) error {
	for _, y := range ys {
		if !y.Type.Numeric() {
			return mismatch(k, "y axis %q must be numeric", y.Name)
		}
	}
	return nil
}

// WaterfallRequest selects the steps of a waterfall analysis.
type WaterfallRequest struct {
	// GroupColumn, when set, restricts the rows to those whose value in it
	// equals GroupValue.
	GroupColumn string
	GroupValue  string
	// Columns are the numeric columns whose sums become the steps, in order.
	Columns []string
	// Labels and Measures default to the column names and all relative.
	Labels   []string
	Measures []Measure
}

// BuildWaterfall sums each selected column over the (optionally filtered)
// rows and returns one step per column.
func BuildWaterfall(t *table.Table, req WaterfallRequest) (Spec, error) {
	rows := t
	title := "Waterfall Chart"
	if req.GroupColumn != "" {
		filtered, err := t.Filter(req.GroupColumn, req.GroupValue)
		if err != nil {
			return Spec{}, fmt.Errorf("group: %w", err)
		}
		rows = filtered
		title = fmt.Sprintf("Waterfall Chart for %s", req.GroupValue)
	}
	if len(req.Columns) == 0 {
		return Spec{}, mismatch(Waterfall, "select at least one numeric column")
	}
	labels := req.Labels
	if labels == nil {
		labels = req.Columns
	}
	measures := req.Measures
	if measures == nil {
		measures = make([]Measure, len(req.Columns))
		for i := range measures {
			measures[i] = Relative
		}
	}
	if len(labels) != len(req.Columns) || len(measures) != len(req.Columns) {
		return Spec{}, mismatch(Waterfall, "labels and measures must match the number of selected columns (%d)", len(req.Columns))
	}

	spec := Spec{Kind: Waterfall, Title: title, Y: req.Columns, Agg: AggSum}
	for i, name := range req.Columns {
		c, err := rows.Lookup(name)
		if err != nil {
			return Spec{}, fmt.Errorf("step: %w", err)
		}
		if !c.Type.Numeric() {
			return Spec{}, mismatch(Waterfall, "column %q must be numeric", name)
		}
		if measures[i] != Relative && measures[i] != Total {
			return Spec{}, mismatch(Waterfall, "unknown measure %q (use relative or total)", measures[i])
		}
		spec.Steps = append(spec.Steps, Step{Label: labels[i], Measure: measures[i], Value: sumColumn(c)})
	}
	return spec, nil
}
