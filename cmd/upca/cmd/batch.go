package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/MeKo-Tech/upca/internal/batch"
	"github.com/spf13/cobra"
)

// batchCmd represents the batch command for parallel line processing.
var batchCmd = &cobra.Command{
	Use:   "batch [files...|-]",
	Short: "Encode, decode or validate many payloads in parallel",
	Long: `Process every non-empty line of the given files (or stdin for "-") with a
pool of workers. Lines starting with "#" are skipped. Results keep the input
order.

Examples:
  upca batch codes.txt
  upca batch codes.txt more.txt --format csv --output results.csv
  upca batch - --mode decode < patterns.txt
  upca batch codes.txt --mode validate --continue-on-error --stats`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runBatchCommand,
}

func runBatchCommand(cmd *cobra.Command, args []string) error {
	modeName, _ := cmd.Flags().GetString("mode")
	mode, err := batch.ParseMode(modeName)
	if err != nil {
		return err
	}

	config, err := configToBatchConfig(GetConfig(), cmd, mode)
	if err != nil {
		return err
	}
	config.ProgressInterval, _ = cmd.Flags().GetDuration("progress-interval")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if !config.Quiet {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Processing %d inputs...\n", len(args))
	}

	result, err := batch.ProcessBatch(ctx, args, cmd.InOrStdin(), config)
	if err != nil {
		return err
	}

	if err := result.SaveResults(cmd.OutOrStdout(), config.Format, config.OutputFile, config.Quiet); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	if config.ShowStats {
		result.PrintStats(cmd.ErrOrStderr(), config.Quiet)
	}

	if n := result.Failed(); n > 0 {
		return fmt.Errorf("%d of %d lines failed", n, len(result.Items))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringP("mode", "m", "encode", "operation: encode, decode or validate")
	batchCmd.Flags().Bool("flat", false, "use the flat 115 module pattern")
	batchCmd.Flags().Bool("normalize", false, "strip separators and fold Unicode digits before encoding or validating")

	// Output flags
	batchCmd.Flags().StringP("format", "f", "text", "output format: text, json, csv")
	batchCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")

	// Parallel processing flags
	batchCmd.Flags().IntP("workers", "w", 0, fmt.Sprintf("number of parallel workers (default: %d)", runtime.NumCPU()))
	batchCmd.Flags().Bool("continue-on-error", false, "report failing lines instead of stopping at the first one")

	// Progress and monitoring flags
	batchCmd.Flags().Bool("progress", false, "show progress bar")
	batchCmd.Flags().Bool("quiet", false, "suppress progress output")
	batchCmd.Flags().Bool("stats", false, "show processing statistics")
	batchCmd.Flags().Duration("progress-interval", 500*time.Millisecond, "progress update interval")
}
