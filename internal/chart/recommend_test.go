package chart

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/KaramelBytes/chartloom-cli/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recommendFixture has 1000 rows.
func recommendFixture(t *testing.T) *table.Table {
	t.Helper()
	const n = 1000
	text := make([]any, n)
	nums := make([]any, n)
	ints := make([]any, n)
	dates := make([]any, n)
	flags := make([]any, n)
	few := make([]any, n)
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		text[i] = fmt.Sprintf("team-%d", i%5)
		nums[i] = float64(i) / 2
		ints[i] = int64(i)
		dates[i] = start.AddDate(0, 0, i)
		flags[i] = i%2 == 0
		few[i] = float64(i % 3)
	}
	tb, err := table.New("rec",
		&table.Column{Name: "team", Type: table.Text, Cells: text},
		&table.Column{Name: "amount", Type: table.Float, Cells: nums},
		&table.Column{Name: "id", Type: table.Integer, Cells: ints},
		&table.Column{Name: "day", Type: table.DateTime, Cells: dates},
		&table.Column{Name: "remote", Type: table.Boolean, Cells: flags},
		&table.Column{Name: "rating", Type: table.Float, Cells: few},
	)
	require.NoError(t, err)
	return tb
}

func TestRecommend_DecisionTable(t *testing.T) {
	tb := recommendFixture(t)
	cases := []struct {
		name string
		x    string
		ys   []string
		want Kind
	}{
		{"text with five values, no y", "team", nil, Bar},
		{"numeric with 1000 values, no y", "amount", nil, Histogram},
		{"numeric with few values, no y", "rating", nil, Bar},
		{"datetime with many values, no y", "day", nil, Pie},
		{"unknown y counts as none", "amount", []string{"nope"}, Histogram},
		{"empty y list", "team", []string{}, Bar},
		{"datetime by numeric", "day", []string{"amount"}, Line},
		{"numeric by numeric", "id", []string{"amount"}, Scatter},
		{"text by numeric", "team", []string{"amount"}, Bar},
		{"only the first y counts", "id", []string{"amount", "team"}, Scatter},
		{"boolean by text falls back", "remote", []string{"team"}, Bar},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Recommend(tb, tc.x, tc.ys)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecide_ReportsFallback(t *testing.T) {
	tb := recommendFixture(t)
	d, err := Recommender{DistinctThreshold: 20}.Decide(tb, "remote", []string{"team"})
	require.NoError(t, err)
	assert.True(t, d.Fallback)
	assert.Equal(t, fallbackRule, d.Rule)

	d, err = Recommender{}.Decide(tb, "day", []string{"amount"})
	require.NoError(t, err)
	assert.False(t, d.Fallback)
	assert.Equal(t, Line, d.Kind)
}

func TestRecommend_Threshold(t *testing.T) {
	tb := recommendFixture(t)
	got, err := Recommender{DistinctThreshold: 2000}.Recommend(tb, "amount", nil)
	require.NoError(t, err)
	assert.Equal(t, Bar, got)
}

func TestRecommend_Deterministic(t *testing.T) {
	tb := recommendFixture(t)
	first, err := Recommend(tb, "id", []string{"amount"})
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Recommend(tb, "id", []string{"amount"})
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRecommend_UnknownX(t *testing.T) {
	_, err := Recommend(recommendFixture(t), "missing", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, table.ErrColumnNotFound))
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" waterfall ")
	require.NoError(t, err)
	assert.Equal(t, Waterfall, k)

	_, err = ParseKind("donut")
	assert.True(t, errors.Is(err, ErrUnknownKind))
	assert.Len(t, Kinds, 8)
}
