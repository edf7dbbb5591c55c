package classify

import (
	"testing"

	"github.com/KaramelBytes/chartloom-cli/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_PartitionPreservesOrder(t *testing.T) {
	tb, err := table.New("t",
		&table.Column{Name: "when", Type: table.DateTime, Cells: []any{nil}},
		&table.Column{Name: "dept", Type: table.Text, Cells: []any{"a"}},
		&table.Column{Name: "salary", Type: table.Float, Cells: []any{1.0}},
		&table.Column{Name: "remote", Type: table.Boolean, Cells: []any{true}},
		&table.Column{Name: "age", Type: table.Integer, Cells: []any{int64(3)}},
		&table.Column{Name: "raw", Type: table.Mixed, Cells: []any{"x"}},
	)
	require.NoError(t, err)

	got := Classify(tb)
	assert.Equal(t, []string{"dept", "remote", "raw"}, got.Categorical)
	assert.Equal(t, []string{"salary", "age"}, got.Numerical)
	assert.Equal(t, []string{"when"}, got.Datetime)
	assert.Equal(t, len(tb.Columns), got.Len())
	assert.Equal(t, got, Classify(tb), "classification is deterministic")

	cls, ok := got.ClassOf("remote")
	assert.True(t, ok)
	assert.Equal(t, Categorical, cls)
	_, ok = got.ClassOf("missing")
	assert.False(t, ok)
}

func TestClassify_Empty(t *testing.T) {
	got := Classify(&table.Table{})
	assert.Zero(t, got.Len())
}
