package batch

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/MeKo-Tech/upca/internal/input"
	"github.com/MeKo-Tech/upca/internal/upca"
)

// ItemResult is the outcome of one input line.
type ItemResult struct {
	Source    string `json:"source"`
	Line      int    `json:"line"`
	Input     string `json:"input"`
	Digits    string `json:"digits,omitempty"`
	Output    string `json:"output,omitempty"`
	Valid     bool   `json:"valid"`
	Error     string `json:"error,omitempty"`
	ErrorType string `json:"error_type,omitempty"`

	err error
}

// Err returns the codec error for a failed item.
func (r ItemResult) Err() error { return r.err }

type itemJob struct {
	index   int
	item    Item
	payload string
}

// processItem applies the configured operation to payload, the possibly
// normalized form of it.Payload.
func processItem(codec upca.Codec, cfg *Config, it Item, payload string) ItemResult {
	res := ItemResult{Source: it.Source, Line: it.Line, Input: it.Payload}

	var err error
	switch cfg.Mode {
	case ModeDecode:
		if cfg.Flat {
			res.Digits, err = codec.DecodeFlat(payload)
		} else {
			res.Digits, err = codec.DecodeString(payload)
		}
		res.Output = res.Digits
	case ModeValidate:
		err = codec.Verify(payload)
		if err == nil {
			res.Digits = payload
			res.Output = "valid"
		}
	default:
		if cfg.Flat {
			var sym *upca.Symbol
			if sym, err = codec.EncodeFlat(payload); err == nil {
				res.Digits, res.Output = sym.Record.String(), sym.Pattern
			}
		} else {
			var rec upca.Record
			if rec, err = codec.Record(payload); err == nil {
				res.Digits = rec.String()
				res.Output, err = codec.Encode(payload)
			}
		}
	}

	if err != nil {
		res.err = err
		res.Error = err.Error()
		res.ErrorType = upca.Kind(err)
		return res
	}
	res.Valid = true
	return res
}

// itemPayloads returns the payloads of items, normalized when the config asks
// for it. Decode patterns are never normalized.
func itemPayloads(cfg *Config, items []Item) []string {
	payloads := make([]string, len(items))
	for i, it := range items {
		payloads[i] = it.Payload
	}
	if cfg.Normalize && cfg.Mode != ModeDecode {
		payloads = input.CleanLines(payloads, input.DefaultCleanOptions())
	}
	return payloads
}

// processItemsParallel runs processItem over items with a worker pool and
// returns results in input order along with the number of workers used.
// Unless ContinueOnError is set, the first failing item in input order is
// returned as an error.
func processItemsParallel(ctx context.Context, cfg *Config, items []Item, progress ProgressCallback) ([]ItemResult, int, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, max(len(items), 1))
	codec := cfg.codec()
	payloads := itemPayloads(cfg, items)

	if progress != nil {
		progress.OnStart(len(items))
		defer progress.OnComplete()
	}

	jobs := make(chan itemJob)
	results := make([]ItemResult, len(items))
	done := make(chan int, len(items))

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				results[job.index] = processItem(codec, cfg, job.item, job.payload)
				done <- job.index
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i, it := range items {
			select {
			case jobs <- itemJob{index: i, item: it, payload: payloads[i]}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(done)
	}()

	processed := 0
	for idx := range done {
		processed++
		if progress != nil {
			if err := results[idx].err; err != nil {
				progress.OnError(processed, err)
			}
			progress.OnProgress(processed, len(items))
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, workers, err
	}

	if !cfg.ContinueOnError {
		for _, r := range results {
			if r.err != nil {
				return results, workers, fmt.Errorf("%s line %d: %w", r.Source, r.Line, r.err)
			}
		}
	}
	return results, workers, nil
}
