package upca

// Digit is a decimal digit in [0,9].
type Digit int

// Side selects the parity table used for a digit.
type Side int

const (
	// Left is the odd-parity table (number system and manufacturer code).
	Left Side = iota
	// Right is the even-parity table (product code and check digit).
	Right
)

func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

// ModulePattern is a run of modules over {'0','1'}.
type ModulePattern = string

// Structural patterns and sizes of a UPC-A symbol.
const (
	QuietZone   ModulePattern = "0000000000"
	Guard       ModulePattern = "101"
	MiddleGuard ModulePattern = "01010"

	// DigitWidth is the number of modules per encoded digit.
	DigitWidth = 7
	// SymbolWidth is the module count of the full flat pattern.
	SymbolWidth = 2*len(QuietZone) + 2*len(Guard) + len(MiddleGuard) + 12*DigitWidth
)

var leftPatterns = [10]ModulePattern{
	"0001101", // 0
	"0011001", // 1
	"0010011", // 2
	"0111101", // 3
	"0100011", // 4
	"0110001", // 5
	"0101111", // 6
	"0111011", // 7
	"0110111", // 8
	"0001011", // 9
}

var rightPatterns = [10]ModulePattern{
	"1110010", // 0
	"1100110", // 1
	"1101100", // 2
	"1000010", // 3
	"1011100", // 4
	"1001110", // 5
	"1010000", // 6
	"1000100", // 7
	"1001000", // 8
	"1110100", // 9
}

// reverse indexes, built once from the forward tables
var (
	leftIndex  = indexOf(leftPatterns)
	rightIndex = indexOf(rightPatterns)
)

func indexOf(table [10]ModulePattern) map[ModulePattern]Digit {
	m := make(map[ModulePattern]Digit, len(table))
	for d, p := range table {
		m[p] = Digit(d)
	}
	return m
}

// PatternFor returns the 7-module pattern of d on the given side.
// d must be in [0,9].
func PatternFor(d Digit, side Side) ModulePattern {
	if side == Right {
		return rightPatterns[d]
	}
	return leftPatterns[d]
}

// DigitFor is the reverse of PatternFor. It reports false when p matches
// no entry of the side's table.
func DigitFor(p ModulePattern, side Side) (Digit, bool) {
	idx := leftIndex
	if side == Right {
		idx = rightIndex
	}
	d, ok := idx[p]
	return d, ok
}

// patternsFor concatenates the patterns of every digit in s, which must
// contain only ASCII digits.
func patternsFor(s string, side Side) string {
	buf := make([]byte, 0, len(s)*DigitWidth)
	for i := 0; i < len(s); i++ {
		buf = append(buf, PatternFor(Digit(s[i]-'0'), side)...)
	}
	return string(buf)
}
