// Package pipeline runs one upload through parsing, cleaning, sanitizing,
// classification and chart planning, and keeps the result for follow-up
// chart requests.
package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/KaramelBytes/chartloom-cli/internal/chart"
	"github.com/KaramelBytes/chartloom-cli/internal/classify"
	"github.com/KaramelBytes/chartloom-cli/internal/cleaning"
	"github.com/KaramelBytes/chartloom-cli/internal/parser"
	"github.com/KaramelBytes/chartloom-cli/internal/report"
	"github.com/KaramelBytes/chartloom-cli/internal/table"
	"github.com/google/uuid"
)

// Options configures every stage of a session.
type Options struct {
	Parse             parser.Options
	Normalize         cleaning.NormalizeOptions
	Excluded          []string
	DistinctThreshold int
	TopN              int
	Bins              int
}

// DefaultOptions returns the stock settings of every stage.
func DefaultOptions() Options {
	return Options{
		Parse:             parser.DefaultOptions(),
		Normalize:         cleaning.DefaultNormalizeOptions(),
		Excluded:          cleaning.DefaultExcluded,
		DistinctThreshold: chart.DefaultDistinctThreshold,
		TopN:              chart.DefaultTopN,
		Bins:              chart.DefaultBins,
	}
}

// Session owns the table and cleaning report of one upload. It is not safe
// for concurrent use; each upload gets its own session.
type Session struct {
	ID     string
	Source string

	// Raw is the parsed table, Cleaned the normalized one before sanitizing.
	Raw            *table.Table
	Cleaned        *table.Table
	Table          *table.Table
	Report         *report.Report
	Classification classify.Classification
	Overview       []chart.Spec

	opts   Options
	logger *slog.Logger
}

// New returns an empty session. A nil logger uses slog.Default.
func New(opts Options, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	logger = logger.With("session", id)
	return &Session{ID: id, opts: opts, logger: logger, Report: report.New(logger)}
}

// Run opens path and processes it in a fresh session.
func Run(path string, opts Options, logger *slog.Logger) (*Session, error) {
	s := New(opts, logger)
	if err := s.Load(path); err != nil {
		return nil, err
	}
	return s, nil
}

// Load parses path and processes the result. A parse failure leaves the
// session's previous state untouched.
func (s *Session) Load(path string) error {
	s.logger.Debug("parse", "path", path)
	rep := report.New(s.logger)
	raw, err := parser.ReadFile(path, s.opts.Parse, rep)
	if err != nil {
		return err
	}
	s.Source = path
	s.Report = rep
	s.process(raw)
	return nil
}

// Process runs cleaning, sanitizing, classification and planning on an
// already parsed table. The report is cleared first.
func (s *Session) Process(raw *table.Table) {
	s.Report.Reset()
	s.process(raw)
}

func (s *Session) process(raw *table.Table) {
	s.Raw = raw
	s.logger.Debug("normalize", "columns", len(raw.Columns), "rows", raw.Rows())
	s.Cleaned = cleaning.Normalize(raw, s.opts.Normalize, s.Report)

	san := cleaning.NewSanitizer(s.opts.Excluded)
	san.Logger = s.logger
	s.Table = san.Sanitize(s.Cleaned, s.Report)
	s.logger.Debug("sanitized", "columns", len(s.Table.Columns), "rows", s.Table.Rows())

	s.Classification = classify.Classify(s.Table)
	planner := &chart.Planner{TopN: s.opts.TopN, Bins: s.opts.Bins, Logger: s.logger}
	s.Overview = planner.Plan(s.Table, s.Classification)
	s.logger.Debug("planned", "charts", len(s.Overview))
}

func (s *Session) ready() error {
	if s.Table == nil {
		return fmt.Errorf("session %s: no table loaded", s.ID)
	}
	return nil
}

// Recommend suggests a chart kind for the selected axes.
func (s *Session) Recommend(x string, ys []string) (chart.Decision, error) {
	if err := s.ready(); err != nil {
		return chart.Decision{}, err
	}
	return chart.Recommender{DistinctThreshold: s.opts.DistinctThreshold}.Decide(s.Table, x, ys)
}

// Build builds a user-selected chart. An empty kind takes the recommendation.
func (s *Session) Build(req chart.Request) (chart.Spec, error) {
	if err := s.ready(); err != nil {
		return chart.Spec{}, err
	}
	if req.Kind == "" {
		d, err := s.Recommend(req.X, req.Y)
		if err != nil {
			return chart.Spec{}, err
		}
		req.Kind = d.Kind
	}
	return chart.Build(s.Table, req)
}

// Waterfall builds a waterfall analysis over the session table.
func (s *Session) Waterfall(req chart.WaterfallRequest) (chart.Spec, error) {
	if err := s.ready(); err != nil {
		return chart.Spec{}, err
	}
	return chart.BuildWaterfall(s.Table, req)
}
