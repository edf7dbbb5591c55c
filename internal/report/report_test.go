package report

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportAppendsAndResets(t *testing.T) {
	var buf bytes.Buffer
	r := New(slog.New(slog.NewTextHandler(&buf, nil)))

	r.Add(StageSanitize, "Type", "dropped column: reserved name")
	r.Add(StageSanitize, "notes", "dropped column: could not coerce (%s)", "invalid utf-8")
	r.Add(StageClean, "", "removed %d duplicate rows", 3)

	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []string{"Type", "notes"}, r.Columns(StageSanitize))
	assert.Equal(t, "[clean] removed 3 duplicate rows", r.Lines()[2])
	assert.Contains(t, buf.String(), "column=Type")

	entries := r.Entries()
	entries[0].Column = "mutated"
	assert.Equal(t, "Type", r.Entries()[0].Column)

	r.Reset()
	assert.Zero(t, r.Len())
}

func TestZeroValueReport(t *testing.T) {
	var r Report
	r.Add(StagePlan, "amount", "omitted")
	assert.Equal(t, 1, r.Len())

	var nilReport *Report
	assert.Zero(t, nilReport.Len())
	assert.Nil(t, nilReport.Entries())
	assert.Nil(t, nilReport.Columns(StageSanitize))
	assert.Empty(t, nilReport.Lines())
	assert.NotPanics(t, func() {
		nilReport.Add(StageClean, "", "ignored")
		nilReport.Reset()
	})
}
