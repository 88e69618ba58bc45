package cmd

import (
	"fmt"

	"github.com/MeKo-Tech/upca/internal/batch"
	"github.com/MeKo-Tech/upca/internal/input"
	"github.com/spf13/cobra"
)

// checksumCmd prints the check digit of 11 digit payloads.
var checksumCmd = &cobra.Command{
	Use:   "checksum <11 digits>...",
	Short: "Compute the UPC-A check digit",
	Long: `Compute the check digit of each 11 digit payload and print it, one per line.
With --full the complete 12 digit code is printed instead.

Examples:
  upca checksum 03600029145
  upca checksum 03600029145 --full
  upca checksum 00000000000 --checksum-mode legacy`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if err := cfg.Validate(); err != nil {
			return err
		}
		codec := cfg.NewCodec()
		full, _ := cmd.Flags().GetBool("full")
		normalize, _ := cmd.Flags().GetBool("normalize")

		out := cmd.OutOrStdout()
		for _, arg := range args {
			digits := arg
			if normalize {
				digits = input.Clean(digits, input.DefaultCleanOptions())
			}
			check, err := codec.CheckDigit(digits)
			if err != nil {
				return err
			}
			if full {
				_, _ = fmt.Fprintf(out, "%s%d\n", digits, check)
			} else {
				_, _ = fmt.Fprintf(out, "%d\n", check)
			}
		}
		return nil
	},
}

// validateCmd verifies 12 digit codes.
var validateCmd = &cobra.Command{
	Use:   "validate <12 digits>...",
	Short: "Verify the check digit of 12 digit UPC-A codes",
	Long: `Verify that each 12 digit code carries the check digit computed from its
first 11 digits. Every code is reported; the command fails if any is invalid.

Examples:
  upca validate 036000291452
  upca validate 036000291452 036000291453 --format json`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runItems(cmd, batch.ModeValidate, batch.ItemsFromArgs(args))
	},
}

func init() {
	rootCmd.AddCommand(checksumCmd)
	checksumCmd.Flags().Bool("full", false, "print the 12 digit code instead of the check digit")
	checksumCmd.Flags().Bool("normalize", false, "strip separators and fold Unicode digits first")

	rootCmd.AddCommand(validateCmd)
	addOutputFlags(validateCmd)
	validateCmd.Flags().Bool("normalize", false, "strip separators and fold Unicode digits first")
}
