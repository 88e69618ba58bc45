// Package batch runs codec operations over line-oriented input files with a
// worker pool.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Result holds the result of batch processing.
type Result struct {
	Mode        Mode
	Items       []ItemResult
	Duration    time.Duration
	WorkerCount int
}

// ProcessBatch reads payloads from args ("-" for stdin) and applies the
// configured operation to each of them.
func ProcessBatch(ctx context.Context, args []string, stdin io.Reader, config *Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	items, err := discoverItems(args, stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read inputs: %w", err)
	}
	if len(items) == 0 {
		return nil, errors.New("no input lines found")
	}
	return ProcessItems(ctx, items, config)
}

// ProcessItems applies the configured operation to items already in memory.
// Results keep the order of items.
func ProcessItems(ctx context.Context, items []Item, config *Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	cfg := *config
	if cfg.Mode == "" {
		cfg.Mode = ModeEncode
	}

	startTime := time.Now()
	results, workers, err := processItemsParallel(ctx, &cfg, items, cfg.progressCallback())
	duration := time.Since(startTime)
	if err != nil {
		return nil, fmt.Errorf("batch processing failed: %w", err)
	}

	return &Result{
		Mode:        cfg.Mode,
		Items:       results,
		Duration:    duration,
		WorkerCount: workers,
	}, nil
}

// ItemsFromArgs wraps command-line payloads as items with source "arg".
func ItemsFromArgs(args []string) []Item {
	items := make([]Item, len(args))
	for i, a := range args {
		items[i] = Item{Source: "arg", Line: i + 1, Payload: a}
	}
	return items
}

// Failed returns the number of items that did not succeed.
func (r *Result) Failed() int {
	n := 0
	for _, it := range r.Items {
		if !it.Valid {
			n++
		}
	}
	return n
}

// FormatResults formats the batch results in the specified format.
func (r *Result) FormatResults(format string) (string, error) {
	return formatBatchResults(r.Items, r.Mode, format)
}

// SaveResults writes the formatted results to outputFile, or to w when
// outputFile is empty.
func (r *Result) SaveResults(w io.Writer, format, outputFile string, quiet bool) error {
	output, err := r.FormatResults(format)
	if err != nil {
		return fmt.Errorf("failed to format results: %w", err)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(output), 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if !quiet {
			_, _ = fmt.Fprintf(w, "Results written to %s\n", outputFile)
		}
		return nil
	}
	_, err = fmt.Fprint(w, output)
	return err
}

// PrintStats prints processing statistics with locale-aware number grouping.
func (r *Result) PrintStats(w io.Writer, quiet bool) {
	if quiet {
		return
	}
	p := message.NewPrinter(language.English)
	total := len(r.Items)
	failed := r.Failed()
	_, _ = p.Fprintf(w, "\nProcessing Statistics:\n")
	_, _ = p.Fprintf(w, "  Mode: %s\n", r.Mode)
	_, _ = p.Fprintf(w, "  Total lines: %d\n", total)
	_, _ = p.Fprintf(w, "  Succeeded: %d\n", total-failed)
	_, _ = p.Fprintf(w, "  Failed: %d\n", failed)
	_, _ = p.Fprintf(w, "  Workers: %d\n", r.WorkerCount)
	_, _ = p.Fprintf(w, "  Duration: %v\n", r.Duration.Round(time.Millisecond))
	if secs := r.Duration.Seconds(); secs > 0 {
		_, _ = p.Fprintf(w, "  Throughput: %.1f lines/sec\n", float64(total)/secs)
	}
}
