package upca

import (
	"fmt"
	"strings"
)

// ChecksumMode selects how the check digit is derived from the weighted sum.
type ChecksumMode int

const (
	// ChecksumStandard computes (10 - sum%10) % 10, always a single digit.
	ChecksumStandard ChecksumMode = iota

	// ChecksumLegacy computes 10 - sum%10 without the final modulo, as the
	// historical generator did. The result is 10 when sum%10 == 0; such
	// values are rejected by the encoder as ErrInvalidChecksum.
	ChecksumLegacy
)

func (m ChecksumMode) String() string {
	if m == ChecksumLegacy {
		return "legacy"
	}
	return "standard"
}

// ParseChecksumMode maps "standard" or "legacy" (case-insensitive) to a mode.
func ParseChecksumMode(s string) (ChecksumMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard":
		return ChecksumStandard, nil
	case "legacy":
		return ChecksumLegacy, nil
	default:
		return ChecksumStandard, fmt.Errorf("unknown checksum mode %q (must be standard or legacy)", s)
	}
}

// weightedSum returns 3 × (digits at even 0-based positions) + (digits at odd positions).
func weightedSum(first11 []Digit) int {
	even, odd := 0, 0
	for i, d := range first11 {
		if i%2 == 0 {
			even += int(d)
		} else {
			odd += int(d)
		}
	}
	return even*3 + odd
}

// ComputeCheckDigit returns the UPC-A check digit of the first 11 digits
// using the standard rule.
func ComputeCheckDigit(first11 []Digit) Digit {
	return Digit(ChecksumStandard.Compute(first11))
}

// ValidateCheckDigit reports whether supplied is the standard check digit
// of the first 11 digits.
func ValidateCheckDigit(first11 []Digit, supplied Digit) bool {
	return ChecksumStandard.Validate(first11, supplied)
}

// Compute returns the check value of the first 11 digits. In legacy mode
// the value may be 10.
func (m ChecksumMode) Compute(first11 []Digit) int {
	c := 10 - weightedSum(first11)%10
	if m == ChecksumStandard {
		c %= 10
	}
	return c
}

// Validate reports whether supplied equals Compute(first11).
func (m ChecksumMode) Validate(first11 []Digit, supplied Digit) bool {
	return m.Compute(first11) == int(supplied)
}

// CheckDigitOf parses an 11-digit string and returns its standard check digit.
func CheckDigitOf(digits string) (Digit, error) {
	return defaultCodec.CheckDigit(digits)
}
