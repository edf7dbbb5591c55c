package cleaning

import (
	"errors"
	"fmt"

	"github.com/KaramelBytes/chartloom-cli/internal/table"
)

var (
	// ErrReservedName marks a column removed because its name is excluded.
	ErrReservedName = errors.New("reserved column name")
	// ErrNotSerializable marks a column the columnar check rejected.
	ErrNotSerializable = errors.New("not serializable")
)

// ColumnCoercionFailure describes a column the sanitizer had to drop. It never
// escapes Sanitize; it is folded into the cleaning report.
type ColumnCoercionFailure struct {
	Column string
	Type   table.Type
	Err    error
}

func (e *ColumnCoercionFailure) Error() string {
	return fmt.Sprintf("column %q (%s): %v", e.Column, e.Type, e.Err)
}

func (e *ColumnCoercionFailure) Unwrap() error { return e.Err }
