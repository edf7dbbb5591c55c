package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KaramelBytes/chartloom-cli/internal/table"
)

// naValues are read as null, mirroring what spreadsheet users type for "no value".
var naValues = map[string]struct{}{
	"": {}, "NA": {}, "N/A": {}, "n/a": {}, "NaN": {}, "nan": {}, "NULL": {}, "null": {},
	"None": {}, "#N/A": {}, "<NA>": {},
}

func isNA(s string) bool {
	_, ok := naValues[strings.TrimSpace(s)]
	return ok
}

// buildTable converts a header and string records into a typed raw table.
// Names are made unique the way spreadsheet tools do it ("a", "a.1", ...),
// and blank names become "Unnamed: i".
func buildTable(name string, header []string, rows [][]string, opt Options, inferDates bool) *table.Table {
	names := uniqueNames(header)
	t := &table.Table{Name: name, Columns: make([]*table.Column, len(names))}
	for j, n := range names {
		raw := make([]string, len(rows))
		for i, r := range rows {
			if j < len(r) {
				raw[i] = r[j]
			}
		}
		t.Columns[j] = inferColumn(n, raw, opt, inferDates)
	}
	return t
}

func uniqueNames(header []string) []string {
	out := make([]string, len(header))
	used := make(map[string]bool, len(header))
	suffix := make(map[string]int)
	for i, h := range header {
		n := h
		if strings.TrimSpace(n) == "" {
			n = fmt.Sprintf("Unnamed: %d", i)
		}
		base := n
		for used[n] {
			suffix[base]++
			n = fmt.Sprintf("%s.%d", base, suffix[base])
		}
		used[n] = true
		out[i] = n
	}
	return out
}

// inferColumn picks the most specific type every non-null value accepts,
// preferring integer, then boolean, then datetime (workbooks only), then float.
func inferColumn(name string, raw []string, opt Options, inferDates bool) *table.Column {
	var seen bool
	allInt, allBool, allFloat, allDate := true, true, true, inferDates
	for _, v := range raw {
		if isNA(v) {
			continue
		}
		seen = true
		if allInt {
			if _, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err != nil {
				allInt = false
			}
		}
		if allBool {
			if _, ok := parseBool(v); !ok {
				allBool = false
			}
		}
		if allFloat {
			if _, ok := parseNumeric(v, opt); !ok {
				allFloat = false
			}
		}
		if allDate {
			if _, ok := table.ParseTime(v); !ok {
				allDate = false
			}
		}
	}

	typ := table.Text
	if seen {
		switch {
		case allInt:
			typ = table.Integer
		case allBool:
			typ = table.Boolean
		case allDate:
			typ = table.DateTime
		case allFloat:
			typ = table.Float
		}
	}

	cells := make([]any, len(raw))
	for i, v := range raw {
		if isNA(v) {
			continue
		}
		switch typ {
		case table.Integer:
			n, _ := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			cells[i] = n
		case table.Boolean:
			b, _ := parseBool(v)
			cells[i] = b
		case table.DateTime:
			d, _ := table.ParseTime(v)
			cells[i] = d
		case table.Float:
			f, _ := parseNumeric(v, opt)
			cells[i] = f
		default:
			cells[i] = v
		}
	}
	return &table.Column{Name: name, Type: typ, Cells: cells}
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// parseNumeric reads a float honoring the configured separators.
func parseNumeric(s string, opt Options) (float64, bool) {
	raw := strings.ReplaceAll(s, "\u00A0", " ")
	raw = strings.TrimSpace(raw)
	if opt.ThousandsSeparator != 0 && opt.ThousandsSeparator != opt.DecimalSeparator {
		raw = strings.ReplaceAll(raw, string(opt.ThousandsSeparator), "")
	}
	if opt.DecimalSeparator != 0 && opt.DecimalSeparator != '.' {
		raw = strings.ReplaceAll(raw, string(opt.DecimalSeparator), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
