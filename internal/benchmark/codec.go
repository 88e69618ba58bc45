package benchmark

import (
	"context"
	"fmt"

	"github.com/MeKo-Tech/upca/internal/barcode"
	"github.com/MeKo-Tech/upca/internal/render"
	"github.com/MeKo-Tech/upca/internal/upca"
)

// CodecBenchmark registers the codec, render and scan operations for a
// fixed set of payloads. Each iteration processes every payload once.
type CodecBenchmark struct {
	*BenchmarkSuite

	codec    upca.Codec
	payloads []string
}

// NewCodecBenchmark prepares a suite over payloads, which must be valid 11
// or 12 digit inputs for codec.
func NewCodecBenchmark(codec upca.Codec, payloads []string) (*CodecBenchmark, error) {
	if len(payloads) == 0 {
		return nil, fmt.Errorf("no payloads to benchmark")
	}
	for _, p := range payloads {
		if _, err := codec.Record(p); err != nil {
			return nil, err
		}
	}
	return &CodecBenchmark{
		BenchmarkSuite: NewBenchmarkSuite(),
		codec:          codec,
		payloads:       payloads,
	}, nil
}

// AddCodecBenchmarks registers encode, decode and checksum benchmarks.
func (cb *CodecBenchmark) AddCodecBenchmarks() {
	grouped := make([]string, len(cb.payloads))
	flat := make([]string, len(cb.payloads))
	for i, p := range cb.payloads {
		grouped[i], _ = cb.codec.Encode(p)
		sym, _ := cb.codec.EncodeFlat(p)
		flat[i] = sym.Pattern
	}

	cb.Add("encode", func() error {
		for _, p := range cb.payloads {
			if _, err := cb.codec.Encode(p); err != nil {
				return err
			}
		}
		return nil
	})
	cb.Add("encode_flat", func() error {
		for _, p := range cb.payloads {
			if _, err := cb.codec.EncodeFlat(p); err != nil {
				return err
			}
		}
		return nil
	})
	cb.Add("decode", func() error {
		for _, g := range grouped {
			if _, err := cb.codec.DecodeString(g); err != nil {
				return err
			}
		}
		return nil
	})
	cb.Add("decode_flat", func() error {
		for _, f := range flat {
			if _, err := cb.codec.DecodeFlat(f); err != nil {
				return err
			}
		}
		return nil
	})
	cb.Add("checksum", func() error {
		for _, p := range cb.payloads {
			if _, err := cb.codec.CheckDigit(p[:11]); err != nil {
				return err
			}
		}
		return nil
	})
}

// AddImageBenchmarks registers rasterization and, when backend is not nil,
// the render-then-scan round trip.
func (cb *CodecBenchmark) AddImageBenchmarks(opts render.Options, backend barcode.Backend) {
	symbols := make([]*upca.Symbol, len(cb.payloads))
	for i, p := range cb.payloads {
		symbols[i], _ = cb.codec.EncodeFlat(p)
	}

	cb.Add("render", func() error {
		for _, sym := range symbols {
			if _, err := render.Render(sym, opts); err != nil {
				return err
			}
		}
		return nil
	})

	if backend == nil {
		return
	}
	cb.Add("render_scan", func() error {
		for _, sym := range symbols {
			img, err := render.Render(sym, opts)
			if err != nil {
				return err
			}
			results, err := backend.Decode(context.Background(), img, barcode.Options{})
			if err != nil {
				return err
			}
			if len(results) == 0 || results[0].Value != sym.Record.String() {
				return fmt.Errorf("scan mismatch for %s", sym.Record.String())
			}
		}
		return nil
	})
}
