package parser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/chartloom-cli/internal/report"
	"github.com/KaramelBytes/chartloom-cli/internal/table"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

type csvReader struct{}

func (csvReader) CanRead(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv")
}

func (csvReader) Read(path string, opt Options, rep *report.Report) (*table.Table, error) {
	return readDelimitedFile(path, opt, rep)
}

// txtReader treats .txt uploads as delimited text with a sniffed delimiter.
type txtReader struct{}

func (txtReader) CanRead(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".txt")
}

func (txtReader) Read(path string, opt Options, rep *report.Report) (*table.Table, error) {
	return readDelimitedFile(path, opt, rep)
}

func readDelimitedFile(path string, opt Options, rep *report.Report) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Source: filepath.Base(path), Err: fmt.Errorf("open: %w", err)}
	}
	defer f.Close()
	if opt.Delimiter == 0 && strings.HasSuffix(strings.ToLower(path), ".tsv") {
		opt.Delimiter = '\t'
	}
	return ReadCSV(f, filepath.Base(path), opt, rep)
}

// ReadCSV reads delimited text with a header row into a raw table. A leading
// byte-order mark is stripped; UTF-16 input with a BOM is decoded.
func ReadCSV(src io.Reader, name string, opt Options, rep *report.Report) (*table.Table, error) {
	br := bufio.NewReader(transform.NewReader(src, unicode.BOMOverride(transform.Nop)))
	delim := opt.Delimiter
	if delim == 0 {
		head, _ := br.Peek(4096)
		delim = sniffDelimiter(string(head))
	}
	r := csv.NewReader(br)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.Comma = delim

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Source: name, Err: errors.New("no header row")}
		}
		return nil, &ParseError{Source: name, Line: 1, Err: fmt.Errorf("read header: %w", err)}
	}
	ncol := len(header)
	header = append([]string(nil), header...)

	maxRows := opt.MaxRows
	var rows [][]string
	total := 0
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &ParseError{Source: name, Line: total + 2, Err: fmt.Errorf("read row: %w", err)}
		}
		if isBlankRecord(rec) {
			continue
		}
		total++
		if maxRows > 0 && len(rows) >= maxRows {
			continue
		}
		// Normalize length
		row := make([]string, ncol)
		copy(row, rec)
		rows = append(rows, row)
	}
	if len(rows) < total {
		rep.Add(report.StageParse, "", "read only %d/%d rows due to max rows", len(rows), total)
	}
	return buildTable(name, header, rows, opt, false), nil
}

// sniffDelimiter picks the candidate that splits the first line most often.
func sniffDelimiter(head string) rune {
	line := head
	if i := strings.IndexAny(head, "\r\n"); i >= 0 {
		line = head[:i]
	}
	best, bestN := ',', 0
	for _, c := range []rune{',', ';', '\t', '|'} {
		if n := strings.Count(line, string(c)); n > bestN {
			best, bestN = c, n
		}
	}
	return best
}

func isBlankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
