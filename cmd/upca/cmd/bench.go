package cmd

import (
	"fmt"

	"github.com/MeKo-Tech/upca/internal/barcode"
	"github.com/MeKo-Tech/upca/internal/benchmark"
	"github.com/spf13/cobra"
)

// benchCmd measures codec throughput on this machine.
var benchCmd = &cobra.Command{
	Use:   "bench [digits...]",
	Short: "Measure encode, decode, render and scan throughput",
	Long: `Run each codec operation over the given payloads (or a built-in sample set)
for a number of iterations and report time and allocations per iteration.

Examples:
  upca bench
  upca bench --iterations 10000
  upca bench 03600029145 --images=false`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if err := cfg.Validate(); err != nil {
			return err
		}
		payloads := args
		if len(payloads) == 0 {
			payloads = defaultSelftestCodes
		}
		iterations, _ := cmd.Flags().GetInt("iterations")
		if iterations <= 0 {
			return fmt.Errorf("iterations must be positive, got %d", iterations)
		}

		cb, err := benchmark.NewCodecBenchmark(cfg.NewCodec(), payloads)
		if err != nil {
			return err
		}
		cb.AddCodecBenchmarks()

		if images, _ := cmd.Flags().GetBool("images"); images {
			var backend barcode.Backend
			if scan, _ := cmd.Flags().GetBool("scan"); scan {
				if backend, err = barcode.NewBackend(); err != nil {
					return fmt.Errorf("failed to create scanner: %w", err)
				}
			}
			cb.AddImageBenchmarks(cfg.ToRenderOptions(), backend)
		}

		for _, r := range cb.RunAll(iterations) {
			if r.Error != nil {
				cb.PrintResults(cmd.OutOrStdout())
				return fmt.Errorf("benchmark %s failed: %w", r.Name, r.Error)
			}
		}
		cb.PrintResults(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.Flags().IntP("iterations", "n", 1000, "iterations per benchmark")
	benchCmd.Flags().Bool("images", true, "include the render benchmark")
	benchCmd.Flags().Bool("scan", false, "include the render and scan round trip")
}
