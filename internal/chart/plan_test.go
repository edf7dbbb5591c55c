package chart

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/KaramelBytes/chartloom-cli/internal/classify"
	"github.com/KaramelBytes/chartloom-cli/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }

func planFixture(t *testing.T) *table.Table {
	t.Helper()
	tb, err := table.New("plan",
		&table.Column{Name: "dept", Type: table.Text, Cells: []any{"HR", "IT", "IT", "Ops", nil}},
		&table.Column{Name: "remote", Type: table.Boolean, Cells: []any{true, false, true, true, false}},
		&table.Column{Name: "salary", Type: table.Integer, Cells: []any{int64(10), int64(20), int64(30), nil, int64(5)}},
		&table.Column{Name: "bonus", Type: table.Float, Cells: []any{1.0, 2.0, 3.0, 4.0, 5.0}},
		&table.Column{Name: "joined", Type: table.DateTime, Cells: []any{day(2), day(1), day(2), day(3), nil}},
		&table.Column{Name: "left", Type: table.DateTime, Cells: []any{nil, nil, nil, nil, nil}},
	)
	require.NoError(t, err)
	return tb
}

func TestPlan_OrderAndCount(t *testing.T) {
	tb := planFixture(t)
	cls := classify.Classify(tb)
	specs := NewPlanner().Plan(tb, cls)

	// c + n + d*n = 2 + 2 + 2*2, minus the two series of the all-null "left".
	require.Len(t, specs, 6)
	kinds := make([]Kind, len(specs))
	titles := make([]string, len(specs))
	for i, s := range specs {
		kinds[i] = s.Kind
		titles[i] = s.Title
	}
	assert.Equal(t, []Kind{Bar, Bar, Histogram, Histogram, Line, Line}, kinds)
	assert.Equal(t, []string{
		"Top 10 Values in dept",
		"Top 10 Values in remote",
		"Distribution of salary",
		"Distribution of bonus",
		"salary Over Time (joined)",
		"bonus Over Time (joined)",
	}, titles)
	assert.Equal(t, specs, NewPlanner().Plan(tb, cls), "plan is deterministic")
}

func TestPlan_BarCountsAreStable(t *testing.T) {
	tb := planFixture(t)
	specs := NewPlanner().Plan(tb, classify.Classify(tb))
	assert.Equal(t, []Point{{"IT", 2}, {"HR", 1}, {"Ops", 1}}, specs[0].Series[0].Points)
	assert.Equal(t, []Point{{"true", 3}, {"false", 2}}, specs[1].Series[0].Points)
}

func TestPlan_TopN(t *testing.T) {
	cells := make([]any, 30)
	for i := range cells {
		cells[i] = fmt.Sprintf("v%02d", i)
	}
	tb, err := table.New("many", &table.Column{Name: "code", Type: table.Text, Cells: cells})
	require.NoError(t, err)
	specs := NewPlanner().Plan(tb, classify.Classify(tb))
	require.Len(t, specs, 1)
	pts := specs[0].Series[0].Points
	require.Len(t, pts, 10)
	assert.Equal(t, "v00", pts[0].X)
	assert.Equal(t, "v09", pts[9].X)
}

func TestPlan_HistogramBins(t *testing.T) {
	tb := planFixture(t)
	specs := NewPlanner().Plan(tb, classify.Classify(tb))
	hist := specs[3]
	assert.Equal(t, 20, hist.Bins)
	require.Len(t, hist.Series[0].Points, 20)
	var total float64
	for _, p := range hist.Series[0].Points {
		total += p.Y
	}
	assert.Equal(t, 5.0, total)
}

func TestPlan_TimeSeriesSumsByDate(t *testing.T) {
	tb := planFixture(t)
	specs := NewPlanner().Plan(tb, classify.Classify(tb))
	salary := specs[4]
	assert.Equal(t, AggSum, salary.Agg)
	// day(3) has a null salary and the last row a null date.
	assert.Equal(t, []Point{{"2024-01-01", 20}, {"2024-01-02", 40}}, salary.Series[0].Points)
	bonus := specs[5]
	assert.Equal(t, []Point{{"2024-01-01", 2}, {"2024-01-02", 4}, {"2024-01-03", 4}}, bonus.Series[0].Points)
}

func TestPlan_UnknownColumnsSkipped(t *testing.T) {
	tb := planFixture(t)
	cls := classify.Classification{Categorical: []string{"ghost"}, Numerical: []string{"bonus"}, Datetime: []string{"phantom"}}
	specs := NewPlanner().Plan(tb, cls)
	require.Len(t, specs, 1)
	assert.Equal(t, Histogram, specs[0].Kind)
}

func TestPlan_HistogramExtremeRanges(t *testing.T) {
	for _, vals := range [][]any{
		{0.0, 5e-324},
		{1e308, -1e308},
		{-math.MaxFloat64, math.MaxFloat64, 0.0},
	} {
		tb, err := table.New("extreme", &table.Column{Name: "v", Type: table.Float, Cells: vals})
		require.NoError(t, err)
		var specs []Spec
		require.NotPanics(t, func() {
			specs = NewPlanner().Plan(tb, classify.Classification{Numerical: []string{"v"}})
		}, "%v", vals)
		require.Len(t, specs, 1)
		pts := specs[0].Series[0].Points
		require.Len(t, pts, 1, "%v", vals)
		assert.Equal(t, float64(len(vals)), pts[0].Y)
	}
}

func TestHistogram_LastBinClosed(t *testing.T) {
	col := &table.Column{Name: "v", Type: table.Float, Cells: []any{0.0, 1.0, 2.0, 3.0, 4.0}}
	pts := histogram(col, 4)
	require.Len(t, pts, 4)
	assert.Equal(t, []float64{1, 1, 1, 2}, []float64{pts[0].Y, pts[1].Y, pts[2].Y, pts[3].Y})
	assert.Equal(t, "[3, 4]", pts[3].X)
}
