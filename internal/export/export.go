// Package export writes a sanitized table back out as CSV or as an XLSX
// workbook.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/chartloom-cli/internal/table"
	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the sheet name used when none is given.
const DefaultSheet = "Cleaned"

// Formats lists the supported export formats.
var Formats = []string{"csv", "xlsx"}

// CSV writes t with a header row. Nulls become empty fields.
func CSV(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Names()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	rec := make([]string, len(t.Columns))
	for i := 0; i < t.Rows(); i++ {
		for j, c := range t.Columns {
			rec[j] = table.Key(c.Cells[i])
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// XLSX writes t to a single-sheet workbook. Cells keep their types, so
// numbers stay numeric and datetimes get a date format.
func XLSX(w io.Writer, t *table.Table, sheet string) error {
	if strings.TrimSpace(sheet) == "" {
		sheet = DefaultSheet
	}
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	header := make([]any, len(t.Columns))
	for j, c := range t.Columns {
		header[j] = c.Name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := 0; i < t.Rows(); i++ {
		row := t.Row(i)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Write dispatches on format ("csv" or "xlsx").
func Write(w io.Writer, t *table.Table, format, sheet string) error {
	switch strings.ToLower(format) {
	case "csv":
		return CSV(w, t)
	case "xlsx":
		return XLSX(w, t, sheet)
	}
	return fmt.Errorf("unsupported export format: %s (use %s)", format, strings.Join(Formats, " or "))
}
