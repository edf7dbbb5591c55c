package cleaning

import (
	"errors"
	"testing"
	"time"

	"github.com/KaramelBytes/chartloom-cli/internal/report"
	"github.com/KaramelBytes/chartloom-cli/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize_TypeClosure(t *testing.T) {
	when := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	tb := mustTable(t,
		&table.Column{Name: "n", Type: table.Integer, Cells: []any{int64(4), nil, int64(-1)}},
		&table.Column{Name: "f", Type: table.Float, Cells: []any{nil, 2.5, 1.0}},
		&table.Column{Name: "b", Type: table.Boolean, Cells: []any{true, nil, false}},
		&table.Column{Name: "d", Type: table.DateTime, Cells: []any{when, nil, "2024-05-02"}},
		&table.Column{Name: "s", Type: table.Text, Cells: []any{"x", nil, "z"}},
		&table.Column{Name: "m", Type: table.Mixed, Cells: []any{int64(1), "a", nil}},
	)
	rep := report.New(nil)
	out := NewSanitizer(nil).Sanitize(tb, rep)

	assert.Equal(t, 0, rep.Len())
	require.Equal(t, tb.Names(), out.Names())
	for _, c := range out.Columns {
		assert.True(t, c.Type.Canonical(), c.Name)
	}

	want := map[string][]any{
		"n": {int64(4), int64(0), int64(-1)},
		"f": {0.0, 2.5, 1.0},
		"b": {true, false, false},
		"d": {when, nil, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)},
		"s": {"x", "", "z"},
		"m": {"1", "a", ""},
	}
	for name, cells := range want {
		c, _ := out.Column(name)
		assert.Equal(t, cells, c.Cells, name)
	}
	m, _ := out.Column("m")
	assert.Equal(t, table.Text, m.Type)
}

func TestSanitize_ReservedNameDropped(t *testing.T) {
	tb := mustTable(t,
		&table.Column{Name: " Type ", Type: table.Text, Cells: []any{"a"}},
		&table.Column{Name: "Kind", Type: table.Text, Cells: []any{"b"}},
	)
	rep := report.New(nil)
	out := NewSanitizer(nil).Sanitize(tb, rep)

	assert.Equal(t, []string{"Kind"}, out.Names())
	assert.Equal(t, []string{" Type "}, rep.Columns(report.StageSanitize))
	assert.Contains(t, rep.Lines()[0], "reserved column name")
}

func TestSanitize_ConfiguredExclusions(t *testing.T) {
	tb := mustTable(t,
		&table.Column{Name: "Type", Type: table.Text, Cells: []any{"a"}},
		&table.Column{Name: "index", Type: table.Integer, Cells: []any{int64(0)}},
	)
	out := NewSanitizer([]string{"index"}).Sanitize(tb, nil)
	assert.Equal(t, []string{"Type"}, out.Names())
}

func TestSanitize_DropsUnserializableColumns(t *testing.T) {
	tb := mustTable(t,
		&table.Column{Name: "ok", Type: table.Text, Cells: []any{"fine", "also fine"}},
		&table.Column{Name: "bytes", Type: table.Text, Cells: []any{"ok", "\xff\xfe"}},
		&table.Column{Name: "ancient", Type: table.DateTime, Cells: []any{time.Date(1500, 1, 1, 0, 0, 0, 0, time.UTC), nil}},
		&table.Column{Name: "flag", Type: table.Boolean, Cells: []any{"maybe", true}},
	)
	rep := report.New(nil)
	out := NewSanitizer(nil).Sanitize(tb, rep)

	assert.Equal(t, []string{"ok"}, out.Names())
	assert.ElementsMatch(t, []string{"bytes", "ancient", "flag"}, rep.Columns(report.StageSanitize))
}

func TestSanitizerColumn_TaggedFailure(t *testing.T) {
	c := &table.Column{Name: "bytes", Type: table.Text, Cells: []any{"\xff"}}
	res := NewSanitizer(nil).column(c)
	require.NotNil(t, res.failure)
	assert.Nil(t, res.column)
	assert.True(t, errors.Is(res.failure, ErrNotSerializable))
	assert.Equal(t, "bytes", res.failure.Column)

	res = NewSanitizer(nil).column(&table.Column{Name: "Type", Type: table.Integer, Cells: []any{int64(1)}})
	require.NotNil(t, res.failure)
	assert.True(t, errors.Is(res.failure, ErrReservedName))
}

func TestCheckArrow_AcceptsCanonicalColumns(t *testing.T) {
	cols := []*table.Column{
		{Name: "i", Type: table.Integer, Cells: []any{int64(1), nil}},
		{Name: "f", Type: table.Float, Cells: []any{1.5, nil}},
		{Name: "b", Type: table.Boolean, Cells: []any{true, nil}},
		{Name: "d", Type: table.DateTime, Cells: []any{time.Now().UTC(), nil}},
		{Name: "s", Type: table.Text, Cells: []any{"héllo", nil}},
	}
	for _, c := range cols {
		assert.NoError(t, checkArrow(c), c.Name)
	}
	assert.Error(t, checkArrow(&table.Column{Name: "x", Type: table.Mixed, Cells: []any{"a"}}))
	assert.Error(t, checkArrow(&table.Column{Name: "y", Type: table.Integer, Cells: []any{"1"}}))
}
