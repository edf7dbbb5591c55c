package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KaramelBytes/chartloom-cli/internal/analysis"
	"github.com/KaramelBytes/chartloom-cli/internal/parser"
	"github.com/KaramelBytes/chartloom-cli/internal/utils"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	abInput      inputFlags
	abOutDir     string
	abSampleRows int
	abFormat     string
	abQuiet      bool
)

var analyzeBatchCmd = &cobra.Command{
	Use:   "analyze-batch <files...>",
	Short: "Analyze multiple CSV/TSV/XLSX files with progress, one summary per file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := expandInputs(args)
		if err != nil {
			return err
		}
		format, err := outputFormat(cmd, abFormat)
		if err != nil {
			return err
		}
		rows, err := sampleRows(cmd, abSampleRows)
		if err != nil {
			return err
		}

		var bar *progressbar.ProgressBar
		if !abQuiet {
			bar = newProgressBar(cmd, len(files))
		}
		var failed []error
		for _, path := range files {
			if err := analyzeOne(cmd, path, format, rows); err != nil {
				slog.Warn("analysis failed", "file", path, "error", err)
				failed = append(failed, fmt.Errorf("%s: %w", filepath.Base(path), err))
			}
			if bar != nil {
				if err := bar.Add(1); err != nil {
					slog.Warn("Failed to update progress bar", "error", err)
				}
			}
		}
		if len(failed) > 0 {
			return fmt.Errorf("%d of %d files failed: %w", len(failed), len(files), errors.Join(failed...))
		}
		return nil
	},
}

func analyzeOne(cmd *cobra.Command, path, format string, rows int) error {
	s, err := abInput.open(cmd, path)
	if err != nil {
		return err
	}
	sum := analysis.Summarize(s, rows)
	out, err := render(sum, format, sum.Markdown)
	if err != nil {
		return err
	}
	if abOutDir == "" {
		if abQuiet {
			return nil
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", TitleStyle.Render("# "+filepath.Base(path)), out)
		return err
	}
	outFile := summaryPath(abOutDir, path, abInput.sheetName, format)
	if err := utils.SafeWriteFile(outFile, out); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	if !abQuiet {
		printSuccess(cmd.ErrOrStderr(), "Wrote %s", filepath.Base(outFile))
	}
	return nil
}

// expandInputs resolves globs and literal paths, dropping duplicates and
// files no reader accepts.
func expandInputs(args []string) ([]string, error) {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			// treat as literal path if exists
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			if !parser.Supported(m) {
				slog.Debug("skipping unsupported file", "file", m)
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no input files matched")
	}
	sort.Strings(files)
	return files, nil
}

// summaryPath names the summary for src inside dir. Files sharing a base name
// get a "__N" suffix instead of overwriting each other.
func summaryPath(dir, src, sheet, format string) string {
	ext := map[string]string{"markdown": ".md", "json": ".json", "yaml": ".yaml"}[format]
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	if sheet != "" {
		base += "__sheet-" + slug(sheet)
	}
	out := filepath.Join(dir, base+".summary"+ext)
	for i := 2; ; i++ {
		if _, err := os.Stat(out); os.IsNotExist(err) {
			return out
		}
		out = filepath.Join(dir, fmt.Sprintf("%s__%d.summary%s", base, i, ext))
	}
}

func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else if r == ' ' || r == '-' || r == '_' {
			b.WriteRune('-')
		}
	}
	if out := strings.Trim(b.String(), "-"); out != "" {
		return out
	}
	return "sheet"
}

func newProgressBar(cmd *cobra.Command, n int) *progressbar.ProgressBar {
	w := cmd.ErrOrStderr()
	return progressbar.NewOptions(n,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Analyzing datasets...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}

func init() {
	rootCmd.AddCommand(analyzeBatchCmd)
	abInput.register(analyzeBatchCmd.Flags())
	analyzeBatchCmd.Flags().StringVar(&abOutDir, "out-dir", "", "directory for the summaries (prints to stdout if omitted)")
	analyzeBatchCmd.Flags().IntVar(&abSampleRows, "sample-rows", analysis.DefaultSampleRows, "number of sample rows to include (0 disables samples)")
	analyzeBatchCmd.Flags().StringVarP(&abFormat, "format", "f", "markdown", "output format: markdown, json or yaml")
	analyzeBatchCmd.Flags().BoolVarP(&abQuiet, "quiet", "q", false, "suppress progress and per-file messages")
}
