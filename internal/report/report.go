// Package report collects the non-fatal diagnostics produced while cleaning
// one uploaded table. A Report is created per session and handed to every
// stage that may need to record a warning.
package report

import (
	"fmt"
	"log/slog"
)

// Stage names the pipeline step that produced an entry.
type Stage string

const (
	StageParse    Stage = "parse"
	StageClean    Stage = "clean"
	StageSanitize Stage = "sanitize"
	StagePlan     Stage = "plan"
)

// Entry is one column-level warning.
type Entry struct {
	Stage   Stage  `json:"stage" yaml:"stage"`
	Column  string `json:"column,omitempty" yaml:"column,omitempty"`
	Message string `json:"message" yaml:"message"`
}

func (e Entry) String() string {
	if e.Column == "" {
		return fmt.Sprintf("[%s] %s", e.Stage, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Stage, e.Column, e.Message)
}

// Report is an append-only warning log. The zero value is ready to use.
type Report struct {
	entries []Entry
	logger  *slog.Logger
}

// New returns a Report that mirrors every entry to logger at warn level.
// A nil logger disables mirroring.
func New(logger *slog.Logger) *Report {
	return &Report{logger: logger}
}

// Add appends an entry. Adding to a nil Report is a no-op.
func (r *Report) Add(stage Stage, column, format string, args ...any) {
	if r == nil {
		return
	}
	e := Entry{Stage: stage, Column: column, Message: fmt.Sprintf(format, args...)}
	r.entries = append(r.entries, e)
	if r.logger != nil {
		r.logger.Warn(e.Message, "stage", string(stage), "column", column)
	}
}

// Entries returns a copy of the log.
func (r *Report) Entries() []Entry {
	if r == nil {
		return nil
	}
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Columns lists the columns mentioned by entries of the given stage, in order.
func (r *Report) Columns(stage Stage) []string {
	if r == nil {
		return nil
	}
	var out []string
	for _, e := range r.entries {
		if e.Stage == stage && e.Column != "" {
			out = append(out, e.Column)
		}
	}
	return out
}

// Len returns the number of entries.
func (r *Report) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// Reset clears the log for a new upload.
func (r *Report) Reset() {
	if r != nil {
		r.entries = nil
	}
}

// Lines renders each entry on its own line.
func (r *Report) Lines() []string {
	out := make([]string, 0, r.Len())
	for _, e := range r.Entries() {
		out = append(out, e.String())
	}
	return out
}
