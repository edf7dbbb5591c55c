package cmd

import (
	"fmt"

	"github.com/KaramelBytes/chartloom-cli/internal/parser"
	"github.com/spf13/cobra"
)

var sheetsCmd = &cobra.Command{
	Use:   "sheets <file.xlsx>",
	Short: "List the sheets of an XLSX workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := parser.SheetNamesFile(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for i, n := range names {
			fmt.Fprintf(out, "%d. %s\n", i+1, n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sheetsCmd)
}
