// Package upca encodes and decodes UPC-A retail barcode values.
//
// A UPC-A value is 12 decimal digits: one number-system digit, a five digit
// manufacturer code, a five digit product code and a check digit. The
// symbol is a fixed sequence of 115 modules ('1' = bar, '0' = space):
//
//	quiet(10) guard(3) NS(7) MFR(35) middle(5) PROD(35) CHECK(7) guard(3) quiet(10)
//
// Digits left of the middle guard use the odd-parity (left) table, digits
// right of it use the even-parity (right) table.
//
// All functions are pure and safe for concurrent use; the digit tables are
// immutable package-level values.
//
// Example:
//
//	sym, err := upca.EncodeFlat("03600029145")
//	// sym.Record.String() == "036000291452"
//	// len(sym.Pattern) == 115
package upca
