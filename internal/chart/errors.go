package chart

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownKind = errors.New("unknown chart kind")
	// ErrNoRows means an aggregation found no row with every required value.
	ErrNoRows = errors.New("no rows with values")
)

// AxisSelectionMismatch reports a chart request whose axes do not fit the
// chosen kind. It is meant to be shown to the user as is.
type AxisSelectionMismatch struct {
	Kind   Kind
	Reason string
}

func (e *AxisSelectionMismatch) Error() string {
	if e.Kind == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s chart: %s", e.Kind, e.Reason)
}

func mismatch(k Kind, format string, args ...any) error {
	return &AxisSelectionMismatch{Kind: k, Reason: fmt.Sprintf(format, args...)}
}

// AggregationFailure reports a planned chart whose data could not be
// aggregated. The planner omits such charts.
type AggregationFailure struct {
	X, Y string
	Err  error
}

func (e *AggregationFailure) Error() string {
	return fmt.Sprintf("aggregate %s by %s: %v", e.Y, e.X, e.Err)
}

func (e *AggregationFailure) Unwrap() error { return e.Err }
