package parser

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// dateNumFmts are the built-in number formats that show a calendar date.
// Time-only formats (18-21, 45-47) are left as formatted text.
var dateNumFmts = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// dateStyles caches, per style index, whether a style formats a date.
type dateStyles struct {
	wb    *excelize.File
	known map[int]bool
}

func (d *dateStyles) isDate(style int) bool {
	if v, ok := d.known[style]; ok {
		return v
	}
	v := false
	if s, err := d.wb.GetStyle(style); err == nil && s != nil {
		v = dateNumFmts[s.NumFmt] || (s.CustomNumFmt != nil && customIsDate(*s.CustomNumFmt))
	}
	d.known[style] = v
	return v
}

// customIsDate reports whether a custom format code has date tokens outside
// quoted literals and bracketed sections such as [Red] or [$-409].
func customIsDate(code string) bool {
	var b strings.Builder
	quoted, bracket := false, false
	for _, r := range strings.ToLower(code) {
		switch {
		case r == '"':
			quoted = !quoted
		case quoted:
		case r == '[':
			bracket = true
		case r == ']':
			bracket = false
		case bracket:
		default:
			b.WriteRune(r)
		}
	}
	s := b.String()
	return strings.ContainsAny(s, "yd") || (strings.Contains(s, "m") && !strings.ContainsAny(s, "hs"))
}

// restoreDates replaces the display text of date-formatted cells with an ISO
// rendering of the underlying serial, so inference sees one date syntax
// whatever number format the workbook used.
func restoreDates(wb *excelize.File, sheet string, rows, raw [][]string) {
	date1904 := false
	if props, err := wb.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}
	styles := &dateStyles{wb: wb, known: map[int]bool{}}
	for r := 1; r < len(rows) && r < len(raw); r++ {
		for c := 0; c < len(rows[r]) && c < len(raw[r]); c++ {
			serial, err := strconv.ParseFloat(raw[r][c], 64)
			if err != nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				continue
			}
			style, err := wb.GetCellStyle(sheet, cell)
			if err != nil || !styles.isDate(style) {
				continue
			}
			t, err := excelize.ExcelDateToTime(serial, date1904)
			if err != nil {
				slog.Debug("unreadable date serial", "sheet", sheet, "cell", cell, "error", err)
				continue
			}
			rows[r][c] = isoDate(t)
		}
	}
}

func isoDate(t time.Time) string {
	t = t.Round(time.Second)
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.DateTime)
}
