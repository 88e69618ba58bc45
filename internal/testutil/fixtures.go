package testutil

import "strings"

// CodeFixture is a UPC-A payload with its expected encoding.
type CodeFixture struct {
	Name    string
	Payload string // 11 digits
	Digits  string // 12 digits including the check digit
	Check   int
	Grouped string // 17 space separated tokens
}

// Flat returns the grouped pattern with the separators removed.
func (f CodeFixture) Flat() string {
	return strings.ReplaceAll(f.Grouped, " ", "")
}

// Tokens splits the grouped pattern into its 17 tokens.
func (f CodeFixture) Tokens() []string {
	return strings.Fields(f.Grouped)
}

// KnownCodes returns published UPC-A codes with their module patterns.
func KnownCodes() []CodeFixture {
	return []CodeFixture{
		{
			Name:    "retail",
			Payload: "03600029145",
			Digits:  "036000291452",
			Check:   2,
			Grouped: "0000000000 101 0001101 0111101 0101111 0001101 0001101 0001101 01010 " +
				"1101100 1110100 1100110 1011100 1001110 1101100 101 0000000000",
		},
		{
			Name:    "ascending",
			Payload: "01234567890",
			Digits:  "012345678905",
			Check:   5,
			Grouped: "0000000000 101 0001101 0011001 0010011 0111101 0100011 0110001 01010 " +
				"1010000 1000100 1001000 1110100 1110010 1001110 101 0000000000",
		},
		{
			Name:    "zeros",
			Payload: "00000000000",
			Digits:  "000000000000",
			Check:   0,
			Grouped: "0000000000 101 0001101 0001101 0001101 0001101 0001101 0001101 01010 " +
				"1110010 1110010 1110010 1110010 1110010 1110010 101 0000000000",
		},
		{
			Name:    "shifted",
			Payload: "12345678901",
			Digits:  "123456789012",
			Check:   2,
			Grouped: "0000000000 101 0011001 0010011 0111101 0100011 0110001 0101111 01010 " +
				"1000100 1001000 1110100 1110010 1100110 1101100 101 0000000000",
		},
	}
}

// FixtureByName returns the known code with the given name.
func FixtureByName(name string) (CodeFixture, bool) {
	for _, f := range KnownCodes() {
		if f.Name == name {
			return f, true
		}
	}
	return CodeFixture{}, false
}
