package cmd

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/KaramelBytes/chartloom-cli/internal/export"
	"github.com/KaramelBytes/chartloom-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	expInput  inputFlags
	expFormat string
	expSheet  string
	expOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the cleaned dataset to CSV or XLSX",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(strings.TrimSpace(expFormat))
		s, err := expInput.open(cmd, args[0])
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := export.Write(&buf, s.Table, format, expSheet); err != nil {
			return err
		}
		path := expOutput
		if path == "" {
			path = utils.OutputName(args[0], ".clean."+format)
		}
		if path == args[0] {
			return fmt.Errorf("refusing to overwrite the input file %s", path)
		}
		if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		reportLines(cmd.ErrOrStderr(), s)
		printSuccess(cmd.OutOrStdout(), "Wrote %d rows x %d columns to %s", s.Table.Rows(), len(s.Table.Columns), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	expInput.register(exportCmd.Flags())
	exportCmd.Flags().StringVarP(&expFormat, "format", "f", "csv", "export format: csv or xlsx")
	exportCmd.Flags().StringVar(&expSheet, "sheet", export.DefaultSheet, "XLSX: sheet name of the export")
	exportCmd.Flags().StringVarP(&expOutput, "output", "o", "", "output path (default: <input>.clean.<format>)")
}
