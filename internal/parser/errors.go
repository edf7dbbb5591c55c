package parser

import (
	"errors"
	"fmt"
)

// ErrParse matches every ParseError through errors.Is.
var ErrParse = errors.New("cannot read tabular data")

// ErrSheetNotFound indicates a workbook lacks the requested sheet.
var ErrSheetNotFound = errors.New("sheet not found")

// ParseError reports an upload that cannot be read as a table. Processing
// stops before cleaning when one is returned.
type ParseError struct {
	Source string
	Line   int
	Err    error
}

func (e *ParseError) Error() string {
	if e == nil {
		return ErrParse.Error()
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse %s (line %d): %v", e.Source, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrParse) match any ParseError.
func (e *ParseError) Is(target error) bool { return target == ErrParse }
