package cleaning

import (
	"fmt"
	"io"
	"math"
	"time"
	"unicode/utf8"

	"github.com/KaramelBytes/chartloom-cli/internal/table"
	"github.com/apache/arrow/go/v7/arrow"
	"github.com/apache/arrow/go/v7/arrow/array"
	"github.com/apache/arrow/go/v7/arrow/ipc"
	"github.com/apache/arrow/go/v7/arrow/memory"
)

// Nanosecond timestamps cover roughly 1677 through 2262.
var (
	minTimestamp = time.Unix(0, math.MinInt64)
	maxTimestamp = time.Unix(0, math.MaxInt64)
)

var timestampType = &arrow.TimestampType{Unit: arrow.Nanosecond, TimeZone: "UTC"}

// checkArrow writes c as a one-column record through an Arrow IPC stream and
// reports the first problem found. Panics from the Arrow library are turned
// into errors.
func checkArrow(c *table.Column) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("arrow: %v", r)
		}
	}()

	mem := memory.NewGoAllocator()
	arr, dt, err := buildArray(mem, c)
	if err != nil {
		return err
	}
	defer arr.Release()

	schema := arrow.NewSchema([]arrow.Field{{Name: c.Name, Type: dt, Nullable: true}}, nil)
	rec := array.NewRecord(schema, []arrow.Array{arr}, int64(arr.Len()))
	defer rec.Release()

	w := ipc.NewWriter(io.Discard, ipc.WithSchema(schema), ipc.WithAllocator(mem))
	if err := w.Write(rec); err != nil {
		_ = w.Close()
		return fmt.Errorf("ipc write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("ipc close: %w", err)
	}
	return nil
}

func buildArray(mem memory.Allocator, c *table.Column) (arrow.Array, arrow.DataType, error) {
	switch c.Type {
	case table.Integer:
		b := array.NewInt64Builder(mem)
		defer b.Release()
		if err := fill(c, b.AppendNull, func(v int64) error { b.Append(v); return nil }); err != nil {
			return nil, nil, err
		}
		return b.NewArray(), arrow.PrimitiveTypes.Int64, nil
	case table.Float:
		b := array.NewFloat64Builder(mem)
		defer b.Release()
		if err := fill(c, b.AppendNull, func(v float64) error { b.Append(v); return nil }); err != nil {
			return nil, nil, err
		}
		return b.NewArray(), arrow.PrimitiveTypes.Float64, nil
	case table.Boolean:
		b := array.NewBooleanBuilder(mem)
		defer b.Release()
		if err := fill(c, b.AppendNull, func(v bool) error { b.Append(v); return nil }); err != nil {
			return nil, nil, err
		}
		return b.NewArray(), arrow.FixedWidthTypes.Boolean, nil
	case table.DateTime:
		b := array.NewTimestampBuilder(mem, timestampType)
		defer b.Release()
		err := fill(c, b.AppendNull, func(v time.Time) error {
			if v.Before(minTimestamp) || v.After(maxTimestamp) {
				return fmt.Errorf("timestamp %s out of range", v.Format(time.RFC3339))
			}
			b.Append(arrow.Timestamp(v.UnixNano()))
			return nil
		})
		if err != nil {
			return nil, nil, err
		}
		return b.NewArray(), timestampType, nil
	case table.Text:
		b := array.NewStringBuilder(mem)
		defer b.Release()
		err := fill(c, b.AppendNull, func(v string) error {
			if !utf8.ValidString(v) {
				return fmt.Errorf("invalid UTF-8 %q", v)
			}
			b.Append(v)
			return nil
		})
		if err != nil {
			return nil, nil, err
		}
		return b.NewArray(), arrow.BinaryTypes.String, nil
	}
	return nil, nil, fmt.Errorf("no columnar type for %s", c.Type)
}

// fill feeds every cell of c to add, or to null for nil cells. A cell of the
// wrong Go type is an error.
func fill[T any](c *table.Column, null func(), add func(T) error) error {
	for i, v := range c.Cells {
		if v == nil {
			null()
			continue
		}
		x, ok := v.(T)
		if !ok {
			return fmt.Errorf("row %d: unexpected %T in %s column", i, v, c.Type)
		}
		if err := add(x); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	return nil
}
