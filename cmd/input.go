package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/KaramelBytes/chartloom-cli/internal/pipeline"
	"github.com/KaramelBytes/chartloom-cli/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// inputFlags are the upload options shared by every command that reads a dataset.
type inputFlags struct {
	delimiter  string
	decimal    string
	thousands  string
	sheetName  string
	sheetIndex int
	maxRows    int
}

func (f *inputFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (sniffed if omitted)")
	fs.StringVar(&f.decimal, "decimal", "", "decimal separator for numbers: '.'|'comma'")
	fs.StringVar(&f.thousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space'")
	fs.StringVar(&f.sheetName, "sheet-name", "", "XLSX: sheet name to read")
	fs.IntVar(&f.sheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	fs.IntVar(&f.maxRows, "max-rows", 0, "maximum rows to process (default from config; 0 = unlimited)")
}

// options merges configuration with the flags set on cmd.
func (f *inputFlags) options(cmd *cobra.Command) (pipeline.Options, error) {
	c := settings()
	opt := pipeline.DefaultOptions()
	if c.MaxRows >= 0 {
		opt.Parse.MaxRows = c.MaxRows
	}
	if len(c.DateNameHints) > 0 {
		opt.Normalize.DateHints = c.DateNameHints
	}
	if c.ExcludedColumns != nil {
		opt.Excluded = c.ExcludedColumns
	}
	if c.DistinctThreshold > 0 {
		opt.DistinctThreshold = c.DistinctThreshold
	}
	if c.TopCategories > 0 {
		opt.TopN = c.TopCategories
	}
	if c.HistogramBins > 0 {
		opt.Bins = c.HistogramBins
	}

	if cmd.Flags().Changed("max-rows") {
		if f.maxRows < 0 {
			return opt, fmt.Errorf("invalid --max-rows: %d", f.maxRows)
		}
		opt.Parse.MaxRows = f.maxRows
	}
	switch f.delimiter {
	case "":
	case ",":
		opt.Parse.Delimiter = ','
	case "\t", "tab":
		opt.Parse.Delimiter = '\t'
	case ";":
		opt.Parse.Delimiter = ';'
	case "|", "pipe":
		opt.Parse.Delimiter = '|'
	default:
		return opt, fmt.Errorf("unsupported --delimiter: %s", f.delimiter)
	}
	switch strings.ToLower(strings.TrimSpace(f.decimal)) {
	case ",", "comma":
		opt.Parse.DecimalSeparator = ','
	case ".", "dot":
		opt.Parse.DecimalSeparator = '.'
	case "":
	default:
		return opt, fmt.Errorf("unsupported --decimal: %s (use '.'|'comma')", f.decimal)
	}
	switch strings.ToLower(f.thousands) {
	case ",":
		opt.Parse.ThousandsSeparator = ','
	case ".":
		opt.Parse.ThousandsSeparator = '.'
	case "space", " ":
		opt.Parse.ThousandsSeparator = ' '
	case "":
	default:
		return opt, fmt.Errorf("unsupported --thousands: %s (use ','|'.'|'space')", f.thousands)
	}
	if opt.Parse.DecimalSeparator != 0 && opt.Parse.DecimalSeparator == opt.Parse.ThousandsSeparator {
		return opt, fmt.Errorf("--decimal and --thousands must differ")
	}
	opt.Parse.SheetName = strings.TrimSpace(f.sheetName)
	opt.Parse.SheetIndex = f.sheetIndex
	return opt, nil
}

// open loads path into a new session.
func (f *inputFlags) open(cmd *cobra.Command, path string) (*pipeline.Session, error) {
	opt, err := f.options(cmd)
	if err != nil {
		return nil, err
	}
	return pipeline.Run(path, opt, slog.Default())
}

// sampleRows resolves --sample-rows against the configured default.
func sampleRows(cmd *cobra.Command, flag int) (int, error) {
	rows := settings().SampleRows
	if cmd.Flags().Changed("sample-rows") {
		rows = flag
	}
	if rows < 0 {
		return 0, fmt.Errorf("invalid --sample-rows: %d", rows)
	}
	return rows, nil
}

// outputFormat resolves --format against the configured default.
func outputFormat(cmd *cobra.Command, flag string) (string, error) {
	f := settings().OutputFormat
	if cmd.Flags().Changed("format") || f == "" {
		f = flag
	}
	switch strings.ToLower(strings.TrimSpace(f)) {
	case "md", "markdown", "":
		return "markdown", nil
	case "json":
		return "json", nil
	case "yml", "yaml":
		return "yaml", nil
	}
	return "", fmt.Errorf("unsupported --format: %s (use markdown, json or yaml)", f)
}

// render encodes v as json or yaml, or calls markdown for the markdown format.
func render(v any, format string, markdown func() string) ([]byte, error) {
	if format == "markdown" {
		return []byte(markdown()), nil
	}
	return utils.Encode(v, format)
}

// emit writes data to path, or to the command's stdout when path is empty.
func emit(cmd *cobra.Command, data []byte, path, what string) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := utils.SafeWriteFile(path, data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	printSuccess(cmd.OutOrStdout(), "Wrote %s to %s", what, path)
	return nil
}

// reportLines prints the cleaning report as warnings.
func reportLines(w io.Writer, s *pipeline.Session) {
	for _, line := range s.Report.Lines() {
		printWarning(w, "%s", line)
	}
}
