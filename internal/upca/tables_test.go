package upca

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternFor_KnownEntries(t *testing.T) {
	tests := []struct {
		digit Digit
		side  Side
		want  string
	}{
		{0, Left, "0001101"},
		{3, Left, "0111101"},
		{9, Left, "0001011"},
		{0, Right, "1110010"},
		{2, Right, "1101100"},
		{9, Right, "1110100"},
	}
	for _, tt := range tests {
		t.Run(tt.side.String()+"_"+string(rune('0'+tt.digit)), func(t *testing.T) {
			assert.Equal(t, tt.want, PatternFor(tt.digit, tt.side))
		})
	}
}

func TestTables_Shape(t *testing.T) {
	for _, side := range []Side{Left, Right} {
		seen := map[string]bool{}
		for d := Digit(0); d <= 9; d++ {
			p := PatternFor(d, side)
			require.Len(t, p, DigitWidth)
			assert.Empty(t, strings.Trim(p, "01"), "pattern %q has non-binary modules", p)
			assert.False(t, seen[p], "duplicate pattern %q on %s side", p, side)
			seen[p] = true
		}
	}
}

func TestTables_RightIsComplementOfLeft(t *testing.T) {
	for d := Digit(0); d <= 9; d++ {
		l, r := PatternFor(d, Left), PatternFor(d, Right)
		for i := 0; i < DigitWidth; i++ {
			assert.NotEqual(t, l[i], r[i], "digit %d module %d", d, i)
		}
	}
}

func TestDigitFor_InverseOfPatternFor(t *testing.T) {
	for _, side := range []Side{Left, Right} {
		for d := Digit(0); d <= 9; d++ {
			got, ok := DigitFor(PatternFor(d, side), side)
			require.True(t, ok)
			assert.Equal(t, d, got)
		}
	}
}

func TestDigitFor_NotFound(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		side    Side
	}{
		{"left pattern on right side", "0001101", Right},
		{"right pattern on left side", "1110010", Left},
		{"too short", "000110", Left},
		{"empty", "", Right},
		{"non-binary", "000110x", Left},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := DigitFor(tt.pattern, tt.side)
			assert.False(t, ok)
		})
	}
}

func TestSymbolWidth(t *testing.T) {
	assert.Equal(t, 115, SymbolWidth)
}
