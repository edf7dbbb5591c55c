package cmd

import (
	"github.com/KaramelBytes/chartloom-cli/internal/analysis"
	"github.com/KaramelBytes/chartloom-cli/internal/chart"
	"github.com/spf13/cobra"
)

var (
	wfInput       inputFlags
	wfGroupColumn string
	wfGroupValue  string
	wfColumns     []string
	wfLabels      []string
	wfMeasures    []string
	wfFormat      string
	wfOutput      string
)

var waterfallCmd = &cobra.Command{
	Use:   "waterfall <file>",
	Short: "Build a waterfall chart from column totals",
	Long: `Waterfall sums each selected numeric column, optionally over the rows where
--group-column equals --group-value, and emits one step per column.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat(cmd, wfFormat)
		if err != nil {
			return err
		}
		req := chart.WaterfallRequest{
			GroupColumn: wfGroupColumn,
			GroupValue:  wfGroupValue,
			Columns:     wfColumns,
			Labels:      wfLabels,
		}
		for _, m := range wfMeasures {
			req.Measures = append(req.Measures, chart.Measure(m))
		}
		s, err := wfInput.open(cmd, args[0])
		if err != nil {
			return err
		}
		spec, err := s.Waterfall(req)
		if err != nil {
			return err
		}
		out, err := render(spec, format, func() string { return analysis.SpecMarkdown(spec) })
		if err != nil {
			return err
		}
		return emit(cmd, out, wfOutput, "waterfall spec")
	},
}

func init() {
	rootCmd.AddCommand(waterfallCmd)
	wfInput.register(waterfallCmd.Flags())
	waterfallCmd.Flags().StringVar(&wfGroupColumn, "group-column", "", "optional column to filter rows by")
	waterfallCmd.Flags().StringVar(&wfGroupValue, "group-value", "", "value of --group-column to keep")
	waterfallCmd.Flags().StringSliceVar(&wfColumns, "columns", nil, "numeric columns to sum, in step order")
	waterfallCmd.Flags().StringSliceVar(&wfLabels, "labels", nil, "step labels (default: column names)")
	waterfallCmd.Flags().StringSliceVar(&wfMeasures, "measures", nil, "step measures: relative or total (default: all relative)")
	waterfallCmd.Flags().StringVarP(&wfFormat, "format", "f", "markdown", "output format: markdown, json or yaml")
	waterfallCmd.Flags().StringVarP(&wfOutput, "output", "o", "", "optional path to write the waterfall spec")
}
