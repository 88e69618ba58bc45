package upca

import "strings"

// Token positions of the grouped form produced by Encode.
const (
	TokenCount = 17

	tokNumberSystem = 2
	tokManufacturer = 3  // 5 tokens
	tokMiddleGuard  = 8  // skipped
	tokProduct      = 9  // 5 tokens
	tokCheckDigit   = 14 // after the product group
)

// Decode recovers the 12 digits from the tokens of a grouped pattern. See
// Codec.Decode.
func Decode(tokens []string) (string, error) { return defaultCodec.Decode(tokens) }

// DecodeString splits s on whitespace and decodes the tokens.
func DecodeString(s string) (string, error) { return defaultCodec.DecodeString(s) }

// DecodeFlat recovers the 12 digits from a 115-module flat pattern.
func DecodeFlat(pattern string) (string, error) { return defaultCodec.DecodeFlat(pattern) }

// Verify checks that digits is a 12 digit payload with a correct check digit.
func Verify(digits string) error { return defaultCodec.Verify(digits) }

// Decode recovers the 12 digits from exactly TokenCount tokens. Only the
// digit tokens are looked up; the quiet zone and guard tokens are not
// inspected. The check digit is decoded but not validated; use Verify for
// that.
func (c Codec) Decode(tokens []string) (string, error) {
	if len(tokens) != TokenCount {
		return "", newError("decode", ErrMalformedInput, "got %d tokens, want %d", len(tokens), TokenCount)
	}

	var b strings.Builder
	b.Grow(12)
	lookup := func(pos int, side Side) error {
		d, ok := DigitFor(tokens[pos], side)
		if !ok {
			return newError("decode", ErrUnrecognizedPattern, "token %d %q (%s table)", pos, tokens[pos], side)
		}
		b.WriteByte(byte('0' + d))
		return nil
	}

	if err := lookup(tokNumberSystem, Left); err != nil {
		return "", err
	}
	for i := tokManufacturer; i < tokMiddleGuard; i++ {
		if err := lookup(i, Left); err != nil {
			return "", err
		}
	}
	for i := tokProduct; i < tokCheckDigit; i++ {
		if err := lookup(i, Right); err != nil {
			return "", err
		}
	}
	if err := lookup(tokCheckDigit, Right); err != nil {
		return "", err
	}
	return b.String(), nil
}

// DecodeString splits s on any whitespace and decodes the tokens.
func (c Codec) DecodeString(s string) (string, error) {
	return c.Decode(strings.Fields(s))
}

// DecodeFlat recovers the 12 digits from a flat pattern of SymbolWidth
// modules. Like Decode, it does not validate the check digit.
func (c Codec) DecodeFlat(pattern string) (string, error) {
	if len(pattern) != SymbolWidth {
		return "", newError("decode", ErrMalformedInput, "got %d modules, want %d", len(pattern), SymbolWidth)
	}

	tokens := make([]string, 0, TokenCount)
	tokens = append(tokens, pattern[:10], pattern[10:13])
	for off := numberSystemRegion.Start; off < manufacturerRegion.End; off += DigitWidth {
		tokens = append(tokens, pattern[off:off+DigitWidth])
	}
	tokens = append(tokens, pattern[manufacturerRegion.End:productRegion.Start])
	for off := productRegion.Start; off < checkDigitRegion.End; off += DigitWidth {
		tokens = append(tokens, pattern[off:off+DigitWidth])
	}
	tokens = append(tokens, pattern[102:105], pattern[105:])
	return c.Decode(tokens)
}

// Verify checks that digits is exactly 12 digits whose check digit matches
// the codec's checksum rule.
func (c Codec) Verify(digits string) error {
	if isDigits(digits) && len(digits) != 12 {
		return newError("validate", ErrLengthOutOfRange, "got %d digits, want 12", len(digits))
	}
	_, err := c.record("validate", digits)
	return err
}
