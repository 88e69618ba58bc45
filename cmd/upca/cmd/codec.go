package cmd

import (
	"fmt"

	"github.com/MeKo-Tech/upca/internal/batch"
	"github.com/MeKo-Tech/upca/internal/config"
	"github.com/spf13/cobra"
)

// configToBatchConfig maps the resolved configuration and the command's own
// flags onto batch.Config. Flags only win when they were set explicitly.
func configToBatchConfig(cfg *config.Config, cmd *cobra.Command, mode batch.Mode) (*batch.Config, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bc := cfg.ToBatchConfig()
	bc.Mode = mode
	bc.ProgressWriter = cmd.ErrOrStderr()

	flags := cmd.Flags()
	if flags.Changed("format") {
		bc.Format, _ = flags.GetString("format")
	}
	if flags.Changed("output") {
		bc.OutputFile, _ = flags.GetString("output")
	}
	if flags.Changed("workers") {
		bc.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("continue-on-error") {
		bc.ContinueOnError, _ = flags.GetBool("continue-on-error")
	}
	if flags.Lookup("flat") != nil {
		bc.Flat, _ = flags.GetBool("flat")
	}
	if flags.Lookup("normalize") != nil {
		bc.Normalize, _ = flags.GetBool("normalize")
	}
	if flags.Lookup("progress") != nil {
		bc.ShowProgress, _ = flags.GetBool("progress")
		bc.Quiet, _ = flags.GetBool("quiet")
		bc.ShowStats, _ = flags.GetBool("stats")
	}

	if err := bc.Validate(); err != nil {
		return nil, err
	}
	return bc, nil
}

// runItems processes command-line payloads and prints every result. It
// fails when at least one payload was rejected.
func runItems(cmd *cobra.Command, mode batch.Mode, items []batch.Item) error {
	bc, err := configToBatchConfig(GetConfig(), cmd, mode)
	if err != nil {
		return err
	}
	// report every argument, then fail once
	bc.ContinueOnError = true

	result, err := batch.ProcessItems(cmd.Context(), items, bc)
	if err != nil {
		return err
	}
	return reportResult(cmd, bc, result)
}

// reportResult prints result to stdout and turns rejected payloads into a
// command error.
func reportResult(cmd *cobra.Command, bc *batch.Config, result *batch.Result) error {
	if err := result.SaveResults(cmd.OutOrStdout(), bc.Format, "", true); err != nil {
		return err
	}
	if n := result.Failed(); n > 0 {
		return fmt.Errorf("%s failed for %d of %d inputs", bc.Mode, n, len(result.Items))
	}
	return nil
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "text", "output format: text, json, csv")
}
