package cmd

import (
	"github.com/MeKo-Tech/upca/internal/batch"
	"github.com/spf13/cobra"
)

// encodeCmd turns digit payloads into module patterns.
var encodeCmd = &cobra.Command{
	Use:   "encode <digits>...",
	Short: "Encode 11 or 12 digit payloads into UPC-A module patterns",
	Long: `Encode each argument into a UPC-A symbol. An 11 digit payload gets its check
digit computed; a 12 digit payload must carry the correct one.

The default output is the grouped pattern: 17 space separated tokens covering
quiet zones, guards and the twelve digit patterns. --flat prints the 115
module pattern instead.

Examples:
  upca encode 03600029145
  upca encode 036000291452 --flat
  upca encode 012345678905 12345678901 --format json
  upca encode "0 36000 29145" --normalize`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runItems(cmd, batch.ModeEncode, batch.ItemsFromArgs(args))
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	addOutputFlags(encodeCmd)
	encodeCmd.Flags().Bool("flat", false, "print the flat 115 module pattern")
	encodeCmd.Flags().Bool("normalize", false, "strip separators and fold Unicode digits before encoding")
}
