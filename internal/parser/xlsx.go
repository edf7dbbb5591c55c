package parser

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/chartloom-cli/internal/report"
	"github.com/KaramelBytes/chartloom-cli/internal/table"
	"github.com/xuri/excelize/v2"
)

type xlsxReader struct{}

func (xlsxReader) CanRead(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".xlsx")
}

func (xlsxReader) Read(path string, opt Options, rep *report.Report) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Source: filepath.Base(path), Err: fmt.Errorf("open: %w", err)}
	}
	defer f.Close()
	return ReadXLSX(f, filepath.Base(path), opt, rep)
}

// SheetNames lists the sheets of a workbook in workbook order.
func SheetNames(src io.Reader, name string) ([]string, error) {
	wb, err := excelize.OpenReader(src)
	if err != nil {
		return nil, &ParseError{Source: name, Err: fmt.Errorf("open xlsx: %w", err)}
	}
	defer wb.Close()
	return wb.GetSheetList(), nil
}

// SheetNamesFile is SheetNames for an on-disk workbook.
func SheetNamesFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Source: filepath.Base(path), Err: fmt.Errorf("open: %w", err)}
	}
	defer f.Close()
	return SheetNames(f, filepath.Base(path))
}

// ReadXLSX extracts the selected sheet of a workbook into a raw table. The
// first row is the header. If opt.SheetName is empty and opt.SheetIndex <= 0,
// the first sheet is used. Date-formatted cells are read from their serial
// value rather than their display text.
func ReadXLSX(src io.Reader, name string, opt Options, rep *report.Report) (*table.Table, error) {
	wb, err := excelize.OpenReader(src)
	if err != nil {
		return nil, &ParseError{Source: name, Err: fmt.Errorf("open xlsx: %w", err)}
	}
	defer wb.Close()

	sheet, err := resolveSheet(wb.GetSheetList(), name, opt)
	if err != nil {
		return nil, err
	}
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, &ParseError{Source: name, Err: fmt.Errorf("read sheet %q: %w", sheet, err)}
	}
	if raw, err := wb.GetRows(sheet, excelize.Options{RawCellValue: true}); err == nil {
		restoreDates(wb, sheet, rows, raw)
	}
	tblName := fmt.Sprintf("%s (sheet: %s)", name, sheet)
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, &ParseError{Source: tblName, Err: fmt.Errorf("no header row")}
	}
	header := rows[0]
	ncol := len(header)
	var data [][]string
	total := 0
	for _, rec := range rows[1:] {
		if isBlankRecord(rec) {
			continue
		}
		total++
		if opt.MaxRows > 0 && len(data) >= opt.MaxRows {
			continue
		}
		row := make([]string, ncol)
		copy(row, rec)
		data = append(data, row)
	}
	if len(data) < total {
		rep.Add(report.StageParse, "", "read only %d/%d rows due to max rows", len(data), total)
	}
	return buildTable(tblName, header, data, opt, true), nil
}

func resolveSheet(sheets []string, book string, opt Options) (string, error) {
	if len(sheets) == 0 {
		return "", &ParseError{Source: book, Err: fmt.Errorf("workbook has no sheets")}
	}
	if opt.SheetName != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, opt.SheetName) {
				return s, nil
			}
		}
		return "", &ParseError{Source: book, Err: fmt.Errorf("%w: '%s'.\nAvailable sheets: %s",
			ErrSheetNotFound, opt.SheetName, strings.Join(sheets, ", "))}
	}
	idx := opt.SheetIndex
	if idx <= 0 {
		idx = 1
	}
	if idx > len(sheets) {
		return "", &ParseError{Source: book, Err: fmt.Errorf("%w: index %d (workbook has %d sheets)",
			ErrSheetNotFound, idx, len(sheets))}
	}
	return sheets[idx-1], nil
}
