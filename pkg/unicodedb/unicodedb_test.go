package unicodedb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhitespace(t *testing.T) {
	for _, r := range []rune{' ', '\t', '\n', '\x1c', 0x85, 0xA0, 0x2028, 0x3000} {
		assert.True(t, IsSpace(r), "%U", r)
	}
	for _, r := range []rune{'a', 0x200B, 0xFEFF, 0} {
		assert.False(t, IsSpace(r), "%U", r)
	}
	assert.True(t, IsLinebreak('\r'))
	assert.False(t, IsLinebreak(' '))
}

func TestNumericClasses(t *testing.T) {
	cases := []struct {
		r                       rune
		decimal, digit, numeric bool
	}{
		{'7', true, true, true},
		{0x0663, true, true, true},  // ARABIC-INDIC DIGIT THREE
		{0x00B2, false, true, true}, // SUPERSCRIPT TWO
		{0x2460, false, true, true}, // CIRCLED DIGIT ONE
		{0x00BD, false, false, true},
		{0x4E09, false, false, true}, // han three
		{'x', false, false, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.decimal, IsDecimal(c.r), "decimal %U", c.r)
		assert.Equal(t, c.digit, IsDigit(c.r), "digit %U", c.r)
		assert.Equal(t, c.numeric, IsNumeric(c.r), "numeric %U", c.r)
	}
}

func TestDecimalValue(t *testing.T) {
	for r, want := range map[rune]int{'0': 0, '9': 9, 0x0669: 9, 0x0966: 0, 0x1D7D9: 1} {
		d, ok := Decimal(r)
		assert.True(t, ok, "%U", r)
		assert.Equal(t, want, d, "%U", r)
	}
	_, ok := Decimal(0x00B2)
	assert.False(t, ok)
}

func TestCase(t *testing.T) {
	assert.True(t, IsLower('a'))
	assert.True(t, IsUpper('Ä'))
	assert.True(t, IsTitle(0x01C5))
	assert.True(t, IsCased(0x01C5))
	assert.False(t, IsCased('1'))
	assert.Equal(t, 'ä', ToLower('Ä'))
	assert.Equal(t, rune(0x01C5), ToTitle(0x01C6))
}

func TestIdentifierClasses(t *testing.T) {
	assert.True(t, IsXIDStart('é'))
	assert.False(t, IsXIDStart('1'))
	assert.True(t, IsXIDContinue('1'))
	assert.True(t, IsXIDContinue('_'))
}

func TestPrintable(t *testing.T) {
	assert.True(t, IsPrintable(' '))
	assert.True(t, IsPrintable('€'))
	assert.False(t, IsPrintable('\t'))
	assert.False(t, IsPrintable(0xA0))
	assert.False(t, IsPrintable(0xDC80))
	assert.False(t, IsPrintable(0xE000))
}

func TestLookup(t *testing.T) {
	rec := Lookup('5')
	assert.True(t, rec.Has(FlagDecimal|FlagDigit|FlagNumeric|FlagPrintable))
	assert.False(t, rec.Has(FlagAlpha))
	assert.Equal(t, 5, rec.Decimal)

	rec = Lookup('A')
	assert.True(t, rec.Has(FlagUpper|FlagAlpha|FlagXIDStart))
	assert.Equal(t, 'a', rec.Lower)
	assert.Equal(t, -1, rec.Decimal)
}
