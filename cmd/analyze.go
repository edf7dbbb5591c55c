package cmd

import (
	"github.com/KaramelBytes/chartloom-cli/internal/analysis"
	"github.com/spf13/cobra"
)

var (
	anaInput      inputFlags
	anaOutputPath string
	anaSampleRows int
	anaFormat     string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Clean a CSV/TSV/XLSX file, classify its columns and suggest charts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat(cmd, anaFormat)
		if err != nil {
			return err
		}
		s, err := anaInput.open(cmd, args[0])
		if err != nil {
			return err
		}
		rows, err := sampleRows(cmd, anaSampleRows)
		if err != nil {
			return err
		}
		sum := analysis.Summarize(s, rows)
		out, err := render(sum, format, sum.Markdown)
		if err != nil {
			return err
		}
		return emit(cmd, out, anaOutputPath, "analysis")
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	anaInput.register(analyzeCmd.Flags())
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the analysis")
	analyzeCmd.Flags().IntVar(&anaSampleRows, "sample-rows", analysis.DefaultSampleRows, "number of sample rows to include (0 disables samples)")
	analyzeCmd.Flags().StringVarP(&anaFormat, "format", "f", "markdown", "output format: markdown, json or yaml")
}
