package cmd

import (
	"fmt"

	"github.com/MeKo-Tech/upca/internal/barcode"
	"github.com/MeKo-Tech/upca/internal/render"
	"github.com/spf13/cobra"
)

// defaultSelftestCodes are encoded when selftest gets no arguments.
var defaultSelftestCodes = []string{"03600029145", "01234567890", "12345678901"}

// selftestCmd renders symbols and reads them back with a barcode scanner.
var selftestCmd = &cobra.Command{
	Use:   "selftest [digits...]",
	Short: "Render UPC-A symbols and verify them with an independent scanner",
	Long: `Encode each payload, rasterize the symbol and scan the image with an
independent UPC-A reader. The scanned digits must equal the encoded ones.

Examples:
  upca selftest
  upca selftest 03600029145 --scale 3
  upca selftest 012345678905 --try-harder=false`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if err := cfg.Validate(); err != nil {
			return err
		}
		codes := args
		if len(codes) == 0 {
			codes = defaultSelftestCodes
		}

		scale, _ := cmd.Flags().GetInt("scale")
		tryHarder, _ := cmd.Flags().GetBool("try-harder")
		symbology, _ := cmd.Flags().GetString("symbology")
		want, ok := barcode.ParseFormat(symbology)
		if !ok {
			return fmt.Errorf("unsupported symbology %q", symbology)
		}

		backend, err := barcode.NewBackend()
		if err != nil {
			return fmt.Errorf("failed to create scanner: %w", err)
		}
		codec := cfg.NewCodec()
		opts := cfg.ToRenderOptions()

		out := cmd.OutOrStdout()
		failed := 0
		for _, code := range codes {
			sym, err := codec.EncodeFlat(code)
			if err != nil {
				return err
			}
			img, err := render.Render(sym, opts)
			if err != nil {
				return err
			}
			if scale > 1 {
				img = render.Scale(img, scale)
			}
			digits := sym.Record.String()

			results, err := backend.Decode(cmd.Context(), img, barcode.Options{TryHarder: tryHarder})
			switch {
			case err != nil:
				failed++
				_, _ = fmt.Fprintf(out, "FAIL %s: %v\n", digits, err)
			case len(results) == 0 || results[0].Value != digits:
				failed++
				got := ""
				if len(results) > 0 {
					got = results[0].Value
				}
				_, _ = fmt.Fprintf(out, "FAIL %s: scanned %q\n", digits, got)
			case results[0].Type != want:
				failed++
				_, _ = fmt.Fprintf(out, "FAIL %s: scanned as %s\n", digits, results[0].Type)
			default:
				_, _ = fmt.Fprintf(out, "PASS %s\n", digits)
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d symbols failed the scan", failed, len(codes))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(selftestCmd)
	selftestCmd.Flags().Int("scale", 1, "integer upscale factor applied before scanning")
	selftestCmd.Flags().String("symbology", "upca", "symbology the scanner must report")
	selftestCmd.Flags().Bool("try-harder", true, "let the scanner search more exhaustively")
}
