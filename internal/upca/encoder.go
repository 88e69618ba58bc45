package upca

import (
	"strconv"
	"strings"
)

// Codec encodes and decodes UPC-A values. The zero value uses the standard
// checksum rule. A Codec holds no mutable state and may be shared freely.
type Codec struct {
	mode ChecksumMode
}

// Option configures a Codec.
type Option func(*Codec)

// WithChecksumMode selects the checksum rule.
func WithChecksumMode(m ChecksumMode) Option {
	return func(c *Codec) { c.mode = m }
}

// New returns a Codec configured by opts.
func New(opts ...Option) Codec {
	var c Codec
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// ChecksumMode returns the checksum rule in use.
func (c Codec) ChecksumMode() ChecksumMode { return c.mode }

var defaultCodec = New()

// Encode returns the grouped module pattern of digits using the standard
// checksum rule. See Codec.Encode.
func Encode(digits string) (string, error) { return defaultCodec.Encode(digits) }

// EncodeFlat returns the flat symbol of digits using the standard checksum
// rule. See Codec.EncodeFlat.
func EncodeFlat(digits string) (*Symbol, error) { return defaultCodec.EncodeFlat(digits) }

// NewRecord parses and validates digits using the standard checksum rule.
func NewRecord(digits string) (Record, error) { return defaultCodec.Record(digits) }

// Record validates an 11 or 12 digit payload and splits it into a Record.
// An 11 digit payload gets the computed check digit appended; a 12 digit
// payload must carry the correct one.
func (c Codec) Record(digits string) (Record, error) {
	return c.record("encode", digits)
}

func (c Codec) record(op, digits string) (Record, error) {
	if !isDigits(digits) {
		return Record{}, newError(op, ErrInvalidCharacters, "%q", digits)
	}
	if len(digits) < 11 || len(digits) > 12 {
		return Record{}, newError(op, ErrLengthOutOfRange, "got %d digits, want 11 or 12", len(digits))
	}

	check := c.mode.Compute(toDigits(digits[:11]))
	if check > 9 {
		return Record{}, newError(op, ErrInvalidChecksum, "computed check value %d is not a single digit", check)
	}
	if len(digits) == 12 {
		if supplied := int(digits[11] - '0'); supplied != check {
			return Record{}, newError(op, ErrInvalidChecksum, "got %d, want %d", supplied, check)
		}
	}

	return Record{
		NumberSystem:     digits[0:1],
		ManufacturerCode: digits[1:6],
		ProductCode:      digits[6:11],
		CheckDigit:       strconv.Itoa(check),
	}, nil
}

// CheckDigit returns the check digit of an 11 digit payload.
func (c Codec) CheckDigit(digits string) (Digit, error) {
	if !isDigits(digits) {
		return 0, newError("checksum", ErrInvalidCharacters, "%q", digits)
	}
	if len(digits) != 11 {
		return 0, newError("checksum", ErrLengthOutOfRange, "got %d digits, want 11", len(digits))
	}
	check := c.mode.Compute(toDigits(digits))
	if check > 9 {
		return 0, newError("checksum", ErrInvalidChecksum, "computed check value %d is not a single digit", check)
	}
	return Digit(check), nil
}

// Encode returns the grouped, space-separated module pattern:
//
//	quiet guard NS M1 M2 M3 M4 M5 middle P1 P2 P3 P4 P5 CD guard quiet
//
// which tokenizes on whitespace into exactly TokenCount tokens.
func (c Codec) Encode(digits string) (string, error) {
	rec, err := c.Record(digits)
	if err != nil {
		return "", err
	}
	return groupedPattern(rec), nil
}

// EncodeFlat returns the 115-module flat pattern together with its digit
// groups and grouped form.
func (c Codec) EncodeFlat(digits string) (*Symbol, error) {
	rec, err := c.Record(digits)
	if err != nil {
		return nil, err
	}
	return &Symbol{
		Record:  rec,
		Pattern: flatPattern(rec),
		Grouped: groupedPattern(rec),
	}, nil
}

func flatPattern(r Record) string {
	var b strings.Builder
	b.Grow(SymbolWidth)
	b.WriteString(QuietZone)
	b.WriteString(Guard)
	b.WriteString(patternsFor(r.NumberSystem, Left))
	b.WriteString(patternsFor(r.ManufacturerCode, Left))
	b.WriteString(MiddleGuard)
	b.WriteString(patternsFor(r.ProductCode, Right))
	b.WriteString(patternsFor(r.CheckDigit, Right))
	b.WriteString(Guard)
	b.WriteString(QuietZone)
	return b.String()
}

func groupedPattern(r Record) string {
	tokens := make([]string, 0, TokenCount)
	tokens = append(tokens, QuietZone, Guard, PatternFor(Digit(r.NumberSystem[0]-'0'), Left))
	for i := 0; i < len(r.ManufacturerCode); i++ {
		tokens = append(tokens, PatternFor(Digit(r.ManufacturerCode[i]-'0'), Left))
	}
	tokens = append(tokens, MiddleGuard)
	for i := 0; i < len(r.ProductCode); i++ {
		tokens = append(tokens, PatternFor(Digit(r.ProductCode[i]-'0'), Right))
	}
	tokens = append(tokens, PatternFor(Digit(r.CheckDigit[0]-'0'), Right), Guard, QuietZone)
	return strings.Join(tokens, " ")
}
