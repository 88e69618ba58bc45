package cmd

import (
	"strings"

	"github.com/MeKo-Tech/upca/internal/batch"
	"github.com/spf13/cobra"
)

// decodeCmd turns module patterns back into digits.
var decodeCmd = &cobra.Command{
	Use:   "decode [tokens...|-]",
	Short: "Decode UPC-A module patterns into their 12 digits",
	Long: `Decode a grouped pattern (17 tokens) or, with --flat, a 115 module pattern
back into the 12 digits it carries. The check digit is read, not verified.

Grouped tokens may be given as separate arguments or as one quoted string.
With --flat every argument is its own pattern. Without arguments, or with
"-", one pattern per line is read from stdin.

Examples:
  upca decode 0000000000 101 0001101 ... 101 0000000000
  upca decode --flat 000000000010100011010111101...
  upca encode 03600029145 | upca decode`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		flat, _ := cmd.Flags().GetBool("flat")

		var items []batch.Item
		switch {
		case len(args) == 0 || (len(args) == 1 && args[0] == batch.StdinSource):
			return runDecodeStdin(cmd)
		case flat:
			items = batch.ItemsFromArgs(args)
		default:
			items = batch.ItemsFromArgs([]string{strings.Join(args, " ")})
		}
		return runItems(cmd, batch.ModeDecode, items)
	},
}

func runDecodeStdin(cmd *cobra.Command) error {
	bc, err := configToBatchConfig(GetConfig(), cmd, batch.ModeDecode)
	if err != nil {
		return err
	}
	bc.ContinueOnError = true

	result, err := batch.ProcessBatch(cmd.Context(), []string{batch.StdinSource}, cmd.InOrStdin(), bc)
	if err != nil {
		return err
	}
	return reportResult(cmd, bc, result)
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	addOutputFlags(decodeCmd)
	decodeCmd.Flags().Bool("flat", false, "arguments are flat 115 module patterns")
}
