package chart

import (
	"fmt"
	"log/slog"

	"github.com/KaramelBytes/chartloom-cli/internal/classify"
	"github.com/KaramelBytes/chartloom-cli/internal/table"
)

const (
	DefaultTopN = 10
	DefaultBins = 20
)

// Planner produces the overview charts for a classified table.
type Planner struct {
	TopN   int
	Bins   int
	Logger *slog.Logger
}

// NewPlanner returns a planner with the default top-N and bin count.
func NewPlanner() *Planner {
	return &Planner{TopN: DefaultTopN, Bins: DefaultBins}
}

func (p *Planner) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// Plan returns, in order: one bar chart per categorical column, one histogram
// per numerical column, and one time series per (datetime, numerical) pair
// with the datetime column as the outer loop. Time series that have no rows
// with both values are left out.
func (p *Planner) Plan(t *table.Table, c classify.Classification) []Spec {
	topN, bins := p.TopN, p.Bins
	if topN <= 0 {
		topN = DefaultTopN
	}
	if bins <= 0 {
		bins = DefaultBins
	}
	specs := make([]Spec, 0, len(c.Categorical)+len(c.Numerical)*(1+len(c.Datetime)))

	for _, name := range c.Categorical {
		col, ok := t.Column(name)
		if !ok {
			p.logger().Debug("plan: unknown categorical column", "column", name)
			continue
		}
		counts := ValueCounts(col)
		if len(counts) > topN {
			counts = counts[:topN]
		}
		specs = append(specs, Spec{
			Kind:   Bar,
			Title:  fmt.Sprintf("Top %d Values in %s", topN, name),
			X:      name,
			Y:      []string{"Count"},
			Color:  name,
			Agg:    AggCount,
			Series: []Series{{Name: "Count", Points: counts}},
		})
	}

	for _, name := range c.Numerical {
		col, ok := t.Column(name)
		if !ok {
			p.logger().Debug("plan: unknown numerical column", "column", name)
			continue
		}
		specs = append(specs, Spec{
			Kind:   Histogram,
			Title:  fmt.Sprintf("Distribution of %s", name),
			X:      name,
			Bins:   bins,
			Agg:    AggCount,
			Series: []Series{{Name: "Count", Points: histogram(col, bins)}},
		})
	}

	for _, dateName := range c.Datetime {
		for _, numName := range c.Numerical {
			spec, err := p.timeSeries(t, dateName, numName)
			if err != nil {
				p.logger().Debug("plan: time series omitted", "date", dateName, "value", numName, "err", err)
				continue
			}
			specs = append(specs, spec)
		}
	}
	return specs
}

func (p *Planner) timeSeries(t *table.Table, dateName, numName string) (Spec, error) {
	date, err := t.Lookup(dateName)
	if err != nil {
		return Spec{}, err
	}
	num, err := t.Lookup(numName)
	if err != nil {
		return Spec{}, err
	}
	pts, err := timeSeries(date, num)
	if err != nil {
		return Spec{}, err
	}
	return Spec{
		Kind:   Line,
		Title:  fmt.Sprintf("%s Over Time (%s)", numName, dateName),
		X:      dateName,
		Y:      []string{numName},
		Agg:    AggSum,
		Series: []Series{{Name: numName, Points: pts}},
	}, nil
}
