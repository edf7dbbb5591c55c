package table

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadShapes(t *testing.T) {
	_, err := New("x",
		&Column{Name: "a", Type: Integer, Cells: []any{int64(1)}},
		&Column{Name: "a", Type: Integer, Cells: []any{int64(2)}},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate column")

	_, err = New("x",
		&Column{Name: "a", Type: Integer, Cells: []any{int64(1)}},
		&Column{Name: "b", Type: Integer, Cells: []any{int64(2), int64(3)}},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has 2 rows")
}

func TestDistinctAndMissing(t *testing.T) {
	c := &Column{Name: "dept", Type: Text, Cells: []any{"HR", "IT", nil, "HR", ""}}
	assert.Equal(t, 3, c.Distinct())
	assert.Equal(t, 1, c.Missing())
}

func TestFilterAndLookup(t *testing.T) {
	tb, err := New("staff",
		&Column{Name: "dept", Type: Text, Cells: []any{"HR", "IT", "HR"}},
		&Column{Name: "salary", Type: Integer, Cells: []any{int64(10), int64(20), int64(30)}},
	)
	require.NoError(t, err)

	hr, err := tb.Filter("dept", "HR")
	require.NoError(t, err)
	assert.Equal(t, 2, hr.Rows())
	sal, _ := hr.Column("salary")
	assert.Equal(t, []any{int64(10), int64(30)}, sal.Cells)

	_, err = tb.Lookup("nope")
	assert.True(t, errors.Is(err, ErrColumnNotFound))
}

func TestRowKeyDistinguishesTypes(t *testing.T) {
	assert.NotEqual(t, RowKey([]any{nil}), RowKey([]any{""}))
	assert.NotEqual(t, RowKey([]any{int64(1)}), RowKey([]any{"1"}))
	assert.Equal(t, RowKey([]any{int64(1), "a"}), RowKey([]any{int64(1), "a"}))

	d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-01", Key(d))
}

func TestTypePredicates(t *testing.T) {
	assert.True(t, Integer.Numeric())
	assert.True(t, Float.Numeric())
	assert.False(t, Boolean.Numeric())
	assert.True(t, Mixed.Textual())
	assert.False(t, Mixed.Canonical())
	assert.True(t, Text.Canonical())
	assert.Equal(t, "datetime", DateTime.String())
}

func TestParseTime_SlashDatesAreMonthFirst(t *testing.T) {
	cases := map[string]time.Time{
		"01/02/2024":      time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		"1/2/2024":        time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		"03/04/2024":      time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		"3/4/24":          time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		"13/01/2024":      time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC),
		"25/12/2023 8:30": time.Date(2023, 12, 25, 8, 30, 0, 0, time.UTC),
		"01-05-24":        time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		"5-Jan-24":        time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
	}
	for in, want := range cases {
		got, ok := ParseTime(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseTime("13/13/2024")
	assert.False(t, ok)
}

func TestAsFloat(t *testing.T) {
	f, ok := AsFloat(int64(3))
	assert.True(t, ok)
	assert.Equal(t, 3.0, f)
	f, ok = AsFloat(2.5)
	assert.True(t, ok)
	assert.Equal(t, 2.5, f)
	_, ok = AsFloat("2.5")
	assert.False(t, ok)
	_, ok = AsFloat(nil)
	assert.False(t, ok)
}
