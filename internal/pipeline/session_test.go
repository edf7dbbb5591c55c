package pipeline

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/chartloom-cli/internal/chart"
	"github.com/KaramelBytes/chartloom-cli/internal/parser"
	"github.com/KaramelBytes/chartloom-cli/internal/report"
	"github.com/KaramelBytes/chartloom-cli/internal/table"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const staffCSV = "Department, Salary ,Start Date,Type,Remote\n" +
	"HR,5000,2023-01-15,a,true\n" +
	"IT,6200,2023-03-01,b,false\n" +
	"IT,6200,2023-03-01,b,false\n" +
	" Ops ,4100,later,c,true\n"

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "staff.csv")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestRun_EndToEnd(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s, err := Run(writeCSV(t, staffCSV), DefaultOptions(), logger)
	require.NoError(t, err)

	_, err = uuid.Parse(s.ID)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Department", "Salary", "Start Date", "Remote"}, s.Table.Names())
	assert.Equal(t, 3, s.Table.Rows())

	start, _ := s.Table.Column("Start Date")
	assert.Equal(t, table.DateTime, start.Type)
	for _, c := range s.Table.Columns {
		assert.True(t, c.Type.Canonical(), c.Name)
	}

	assert.Equal(t, []string{"Department", "Remote"}, s.Classification.Categorical)
	assert.Equal(t, []string{"Salary"}, s.Classification.Numerical)
	assert.Equal(t, []string{"Start Date"}, s.Classification.Datetime)
	// 2 bars, 1 histogram, 1 time series
	require.Len(t, s.Overview, 4)

	assert.Equal(t, []string{"Type"}, s.Report.Columns(report.StageSanitize))
	assert.Contains(t, logs.String(), "session="+s.ID)
}

func TestSession_ChartRequests(t *testing.T) {
	s, err := Run(writeCSV(t, staffCSV), DefaultOptions(), nil)
	require.NoError(t, err)

	d, err := s.Recommend("Department", []string{"Salary"})
	require.NoError(t, err)
	assert.Equal(t, chart.Bar, d.Kind)

	spec, err := s.Build(chart.Request{X: "Start Date", Y: []string{"Salary"}})
	require.NoError(t, err)
	assert.Equal(t, chart.Line, spec.Kind, "empty kind takes the recommendation")

	wf, err := s.Waterfall(chart.WaterfallRequest{GroupColumn: "Department", GroupValue: "IT", Columns: []string{"Salary"}})
	require.NoError(t, err)
	assert.Equal(t, 6200.0, wf.Steps[0].Value)
}

func TestLoad_ParseErrorKeepsState(t *testing.T) {
	s, err := Run(writeCSV(t, staffCSV), DefaultOptions(), nil)
	require.NoError(t, err)
	before := s.Table

	bad := filepath.Join(t.TempDir(), "slides.pptx")
	require.NoError(t, os.WriteFile(bad, []byte("x"), 0o644))
	err = s.Load(bad)
	assert.True(t, errors.Is(err, parser.ErrParse))
	assert.Same(t, before, s.Table)
}

func TestSession_NotLoaded(t *testing.T) {
	s := New(DefaultOptions(), nil)
	_, err := s.Recommend("x", nil)
	assert.Error(t, err)
	_, err = s.Build(chart.Request{Kind: chart.Bar, X: "x"})
	assert.Error(t, err)
}

func TestProcess_ResetsReport(t *testing.T) {
	s := New(DefaultOptions(), nil)
	raw, err := table.New("t", &table.Column{Name: "Type", Type: table.Text, Cells: []any{"a"}})
	require.NoError(t, err)
	s.Process(raw)
	s.Process(raw)
	assert.Equal(t, 1, s.Report.Len())
	assert.Empty(t, s.Table.Columns)
}
