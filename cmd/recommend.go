package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	recInput inputFlags
	recX     string
	recY     []string
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <file>",
	Short: "Suggest a chart type for the selected axes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if recX == "" {
			return fmt.Errorf("--x is required")
		}
		s, err := recInput.open(cmd, args[0])
		if err != nil {
			return err
		}
		d, err := s.Recommend(recX, recY)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", BoldStyle.Render(string(d.Kind)), SubtleStyle.Render("("+d.Rule+")"))
		if d.Fallback {
			printWarning(out, "no rule matched these axes; %s is the default suggestion", d.Kind)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)
	recInput.register(recommendCmd.Flags())
	recommendCmd.Flags().StringVar(&recX, "x", "", "independent axis column")
	recommendCmd.Flags().StringSliceVar(&recY, "y", nil, "dependent axis column(s), comma-separated")
}
