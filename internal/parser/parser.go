package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/chartloom-cli/internal/report"
	"github.com/KaramelBytes/chartloom-cli/internal/table"
)

// Reader turns one uploaded file format into a raw table.
type Reader interface {
	CanRead(filename string) bool
	Read(path string, opt Options, rep *report.Report) (*table.Table, error)
}

// Options controls how uploads are read.
type Options struct {
	// MaxRows limits data rows read; 0 means unlimited.
	MaxRows int
	// Delimiter for delimited text. If 0, sniffed from the header line.
	Delimiter rune
	// DecimalSeparator and ThousandsSeparator describe the numeric locale.
	// Zero values mean plain Go number syntax.
	DecimalSeparator   rune
	ThousandsSeparator rune
	// SheetName selects a workbook sheet. If empty, SheetIndex is used.
	SheetName string
	// SheetIndex is 1-based; values <= 0 select the first sheet.
	SheetIndex int
}

// DefaultOptions returns reasonable defaults for uploads.
func DefaultOptions() Options {
	return Options{MaxRows: 100000, SheetIndex: 1}
}

var registry []Reader

// Register adds a reader implementation to the registry.
func Register(r Reader) {
	registry = append(registry, r)
}

// ReadFile selects a reader based on filename and returns the raw table.
func ReadFile(path string, opt Options, rep *report.Report) (*table.Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &ParseError{Source: filepath.Base(path), Err: fmt.Errorf("stat: %w", err)}
	}
	for _, r := range registry {
		if r.CanRead(path) {
			return r.Read(path, opt, rep)
		}
	}
	return nil, &ParseError{Source: filepath.Base(path), Err: ErrUnsupported}
}

// Supported reports whether some registered reader accepts filename.
func Supported(filename string) bool {
	for _, r := range registry {
		if r.CanRead(filename) {
			return true
		}
	}
	return false
}

func init() {
	// Register default readers
	Register(csvReader{})
	Register(txtReader{})
	Register(xlsxReader{})
}

// ErrUnsupported indicates a format is not supported yet.
var ErrUnsupported = errors.New("unsupported file format")
