package upca

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCharacters reports input that is not made of ASCII digits only.
	ErrInvalidCharacters = errors.New("upca: numeric values only")

	// ErrLengthOutOfRange reports a digit count outside [11,12].
	ErrLengthOutOfRange = errors.New("upca: length out of range")

	// ErrInvalidChecksum reports a supplied check digit that does not match
	// the computed one, or a computed value that is not a single digit.
	ErrInvalidChecksum = errors.New("upca: invalid check digit")

	// ErrMalformedInput reports decode input with the wrong token count or length.
	ErrMalformedInput = errors.New("upca: malformed input")

	// ErrUnrecognizedPattern reports a decode token matching no digit table entry.
	ErrUnrecognizedPattern = errors.New("upca: unrecognized pattern")
)

// CodecError records the operation and detail of a failed encode or decode.
// Use errors.Is against the Err* sentinels to branch on the failure kind.
type CodecError struct {
	Op     string // "encode", "decode", "validate", ...
	Detail string
	Err    error
}

func (e *CodecError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Detail)
}

func (e *CodecError) Unwrap() error { return e.Err }

func newError(op string, err error, format string, args ...any) *CodecError {
	return &CodecError{Op: op, Err: err, Detail: fmt.Sprintf(format, args...)}
}

// Kind returns a stable snake_case name for the sentinel wrapped by err,
// or "unknown" for errors not produced by this package.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidCharacters):
		return "invalid_characters"
	case errors.Is(err, ErrLengthOutOfRange):
		return "length_out_of_range"
	case errors.Is(err, ErrInvalidChecksum):
		return "invalid_checksum"
	case errors.Is(err, ErrMalformedInput):
		return "malformed_input"
	case errors.Is(err, ErrUnrecognizedPattern):
		return "unrecognized_pattern"
	default:
		return "unknown"
	}
}
