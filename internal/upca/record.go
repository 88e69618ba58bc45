package upca

import "strings"

// Record is the logical payload of a UPC-A symbol.
type Record struct {
	NumberSystem     string `json:"number_system"`
	ManufacturerCode string `json:"manufacturer_code"`
	ProductCode      string `json:"product_code"`
	CheckDigit       string `json:"check_digit"`
}

// String returns the 12 digits of the record.
func (r Record) String() string {
	return r.NumberSystem + r.ManufacturerCode + r.ProductCode + r.CheckDigit
}

// Groups returns the four human-readable digit groups in symbol order.
func (r Record) Groups() [4]string {
	return [4]string{r.NumberSystem, r.ManufacturerCode, r.ProductCode, r.CheckDigit}
}

// Symbol is an encoded record: the flat module pattern a renderer draws and
// the grouped, space-separated form meant for people.
type Symbol struct {
	Record  Record `json:"record"`
	Pattern string `json:"pattern"`
	Grouped string `json:"grouped"`
}

// Groups returns the digit groups of the record.
func (s *Symbol) Groups() [4]string { return s.Record.Groups() }

// Region is a half-open module range [Start, End) within the flat pattern.
type Region struct {
	Start int
	End   int
}

// Module offsets inside the 115-module flat pattern.
var (
	numberSystemRegion = Region{Start: 13, End: 20}
	manufacturerRegion = Region{Start: 20, End: 55}
	productRegion      = Region{Start: 60, End: 95}
	checkDigitRegion   = Region{Start: 95, End: 102}
)

// GroupRegions returns the module ranges of the number system, manufacturer,
// product and check digit groups, for placing text under each group.
func GroupRegions() [4]Region {
	return [4]Region{numberSystemRegion, manufacturerRegion, productRegion, checkDigitRegion}
}

// InDigitArea reports whether module index i belongs to the manufacturer or
// product groups, where bars are shortened to leave room for text.
func InDigitArea(i int) bool {
	return (i >= manufacturerRegion.Start && i < manufacturerRegion.End) ||
		(i >= productRegion.Start && i < productRegion.End)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) < 0
}

func toDigits(s string) []Digit {
	out := make([]Digit, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = Digit(s[i] - '0')
	}
	return out
}
