// Package render rasterizes encoded UPC-A symbols into in-memory images.
//
// It consumes upca.Symbol (flat module pattern plus digit groups) and never
// re-derives digits from the pattern. Encoding the image into a file format
// is left to callers.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/MeKo-Tech/upca/internal/upca"
	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ErrInvalidOptions reports geometry that cannot hold the symbol.
var ErrInvalidOptions = errors.New("render: invalid options")

// Options controls the geometry and colors of a rendered symbol.
type Options struct {
	ModuleWidth int // pixels per module
	BarHeight   int // height of guard bars in pixels
	Margin      int // blank border around the symbol
	Foreground  color.Color
	Background  color.Color
	FontFace    font.Face // nil disables the digit text
}

// DefaultOptions returns options suited to on-screen previews and scanning.
func DefaultOptions() Options {
	return Options{
		ModuleWidth: 2,
		BarHeight:   80,
		Margin:      4,
		Foreground:  color.Black,
		Background:  color.White,
		FontFace:    basicfont.Face7x13,
	}
}

// textHeight returns the room reserved under digit bars for the text.
func (o Options) textHeight() int {
	if o.FontFace == nil {
		return 0
	}
	return o.FontFace.Metrics().Height.Ceil() + 2
}

// Validate checks the options against the symbol layout.
func (o Options) Validate() error {
	if o.ModuleWidth < 1 {
		return fmt.Errorf("%w: module width %d must be positive", ErrInvalidOptions, o.ModuleWidth)
	}
	if o.Margin < 0 {
		return fmt.Errorf("%w: margin %d must not be negative", ErrInvalidOptions, o.Margin)
	}
	if th := o.textHeight(); o.BarHeight <= 2*th {
		return fmt.Errorf("%w: bar height %d must exceed twice the text height %d", ErrInvalidOptions, o.BarHeight, th)
	}
	if o.Foreground == nil || o.Background == nil {
		return fmt.Errorf("%w: colors must be set", ErrInvalidOptions)
	}
	return nil
}

// Size returns the pixel dimensions Render produces for these options.
func (o Options) Size() (int, int) {
	return upca.SymbolWidth*o.ModuleWidth + 2*o.Margin, o.BarHeight + 2*o.Margin
}

// Render draws sym: one bar per '1' module, shortened bars over the
// manufacturer and product groups, and the four digit groups as text under
// their module regions.
func Render(sym *upca.Symbol, opts Options) (*image.NRGBA, error) {
	if sym == nil {
		return nil, errors.New("render: nil symbol")
	}
	if len(sym.Pattern) != upca.SymbolWidth {
		return nil, fmt.Errorf("render: pattern has %d modules, want %d", len(sym.Pattern), upca.SymbolWidth)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	w, h := opts.Size()
	img := imaging.New(w, h, opts.Background)
	fg := image.NewUniform(opts.Foreground)

	top := opts.Margin
	fullBottom := opts.Margin + opts.BarHeight
	shortBottom := fullBottom - opts.textHeight()

	for i := 0; i < len(sym.Pattern); i++ {
		if sym.Pattern[i] != '1' {
			continue
		}
		bottom := fullBottom
		if upca.InDigitArea(i) {
			bottom = shortBottom
		}
		x := opts.Margin + i*opts.ModuleWidth
		draw.Draw(img, image.Rect(x, top, x+opts.ModuleWidth, bottom), fg, image.Point{}, draw.Src)
	}

	if opts.FontFace != nil {
		drawGroups(img, sym, opts, fg)
	}
	return img, nil
}

// drawGroups centers each digit group under its module region. The number
// system and check digits sit in the quiet zones beside the outer guards.
func drawGroups(img draw.Image, sym *upca.Symbol, opts Options, fg image.Image) {
	d := &font.Drawer{Dst: img, Src: fg, Face: opts.FontFace}
	baseline := opts.Margin + opts.BarHeight - opts.FontFace.Metrics().Descent.Ceil()

	regions := upca.GroupRegions()
	// outer digits move into the quiet zones
	regions[0] = upca.Region{Start: 0, End: len(upca.QuietZone)}
	regions[3] = upca.Region{Start: upca.SymbolWidth - len(upca.QuietZone), End: upca.SymbolWidth}

	for i, text := range sym.Groups() {
		reg := regions[i]
		center := opts.Margin + (reg.Start+reg.End)*opts.ModuleWidth/2
		width := font.MeasureString(opts.FontFace, text).Ceil()
		d.Dot = fixed.P(center-width/2, baseline)
		d.DrawString(text)
	}
}

// Scale enlarges img by an integer factor with nearest-neighbour sampling so
// bar edges stay sharp.
func Scale(img image.Image, factor int) *image.NRGBA {
	if factor <= 1 {
		return imaging.Clone(img)
	}
	b := img.Bounds()
	return imaging.Resize(img, b.Dx()*factor, b.Dy()*factor, imaging.NearestNeighbor)
}
