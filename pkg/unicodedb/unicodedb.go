// Package unicodedb provides the read-only codepoint classification table used
// by the string engine. All tables are built once at package initialization
// and never modified afterwards, so lookups need no synchronization.
package unicodedb

import (
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// Version is the Unicode version the tables are generated from
const Version = unicode.Version

// Flag is a bit set of codepoint properties
type Flag uint16

const (
	FlagSpace Flag = 1 << iota
	FlagLinebreak
	FlagAlpha
	FlagDecimal
	FlagDigit
	FlagNumeric
	FlagLower
	FlagUpper
	FlagTitle
	FlagXIDStart
	FlagXIDContinue
	FlagPrintable
)

// Record aggregates everything the table knows about one codepoint
type Record struct {
	Flags   Flag
	Lower   rune
	Upper   rune
	Title   rune
	Decimal int // -1 when the codepoint has no decimal value
}

// Has reports whether all bits in f are set
func (r Record) Has(f Flag) bool {
	return r.Flags&f == f
}

// whitespace: category Zs plus bidirectional classes WS, B and S
var spaceTable = rangetable.New(
	0x09, 0x0A, 0x0B, 0x0C, 0x0D,
	0x1C, 0x1D, 0x1E, 0x1F, 0x20,
	0x85, 0xA0, 0x1680,
	0x2000, 0x2001, 0x2002, 0x2003, 0x2004, 0x2005,
	0x2006, 0x2007, 0x2008, 0x2009, 0x200A,
	0x2028, 0x2029, 0x202F, 0x205F, 0x3000,
)

var linebreakTable = rangetable.New(
	0x0A, 0x0B, 0x0C, 0x0D, 0x1C, 0x1D, 0x1E, 0x85, 0x2028, 0x2029,
)

// Numeric_Type=Digit codepoints outside Nd (superscripts, circled digits, ...)
var extraDigitTable = rangetable.Merge(
	rangetable.New(0xB2, 0xB3, 0xB9, 0x2070, 0x24EA, 0x24FF, 0x19DA),
	&unicode.RangeTable{
		R16: []unicode.Range16{
			{Lo: 0x1369, Hi: 0x1371, Stride: 1},
			{Lo: 0x2074, Hi: 0x2079, Stride: 1},
			{Lo: 0x2080, Hi: 0x2089, Stride: 1},
			{Lo: 0x2460, Hi: 0x2468, Stride: 1},
			{Lo: 0x2474, Hi: 0x247C, Stride: 1},
			{Lo: 0x2488, Hi: 0x2490, Stride: 1},
			{Lo: 0x24F5, Hi: 0x24FD, Stride: 1},
			{Lo: 0x2776, Hi: 0x277E, Stride: 1},
			{Lo: 0x2780, Hi: 0x2788, Stride: 1},
			{Lo: 0x278A, Hi: 0x2792, Stride: 1},
		},
		R32: []unicode.Range32{
			{Lo: 0x10A40, Hi: 0x10A43, Stride: 1},
			{Lo: 0x1F100, Hi: 0x1F10A, Stride: 1},
		},
	},
)

// Han numerals carry Numeric_Type=Numeric without being in category N
var hanNumericTable = rangetable.New(
	0x3007, 0x4E00, 0x4E03, 0x4E07, 0x4E09, 0x4E5D, 0x4E8C, 0x4E94,
	0x5104, 0x5146, 0x516B, 0x516D, 0x5341, 0x5343, 0x56DB,
	0x767E, 0x96F6,
)

var xidStartTable = rangetable.Merge(
	unicode.L, unicode.Nl, unicode.Other_ID_Start,
)

var xidContinueTable = rangetable.Merge(
	xidStartTable, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc,
	unicode.Other_ID_Continue,
)

// IsSpace reports whether r is whitespace
func IsSpace(r rune) bool {
	if r < 0x80 {
		return r == ' ' || (r >= 0x09 && r <= 0x0D) || (r >= 0x1C && r <= 0x1F)
	}
	return unicode.Is(spaceTable, r)
}

// IsLinebreak reports whether r terminates a line for splitlines
func IsLinebreak(r rune) bool {
	return unicode.Is(linebreakTable, r)
}

// IsAlpha reports whether r is a letter (categories Lu, Ll, Lt, Lm, Lo)
func IsAlpha(r rune) bool {
	return unicode.IsLetter(r)
}

// IsDecimal reports whether r has a decimal digit value (category Nd)
func IsDecimal(r rune) bool {
	return unicode.Is(unicode.Nd, r)
}

// IsDigit reports whether r is a decimal or digit codepoint
func IsDigit(r rune) bool {
	return IsDecimal(r) || unicode.Is(extraDigitTable, r)
}

// IsNumeric reports whether r has any numeric value
func IsNumeric(r rune) bool {
	return unicode.IsNumber(r) || unicode.Is(hanNumericTable, r)
}

func IsLower(r rune) bool {
	return unicode.IsLower(r) || unicode.Is(unicode.Other_Lowercase, r)
}

func IsUpper(r rune) bool {
	return unicode.IsUpper(r) || unicode.Is(unicode.Other_Uppercase, r)
}

func IsTitle(r rune) bool {
	return unicode.IsTitle(r)
}

// IsCased reports whether r is lower, upper or title case
func IsCased(r rune) bool {
	return IsLower(r) || IsUpper(r) || IsTitle(r)
}

func IsXIDStart(r rune) bool {
	return unicode.Is(xidStartTable, r)
}

func IsXIDContinue(r rune) bool {
	return unicode.Is(xidContinueTable, r)
}

// IsPrintable reports whether r renders as itself in a repr. Separators and
// other/unassigned codepoints are not printable, except the ASCII space.
func IsPrintable(r rune) bool {
	if r == ' ' {
		return true
	}
	if r < 0x20 || r == 0x7F {
		return false
	}
	return unicode.In(r, unicode.L, unicode.M, unicode.N, unicode.P, unicode.S)
}

// ToLower returns the simple lowercase mapping of r
func ToLower(r rune) rune {
	return unicode.ToLower(r)
}

// ToUpper returns the simple uppercase mapping of r
func ToUpper(r rune) rune {
	return unicode.ToUpper(r)
}

// ToTitle returns the simple titlecase mapping of r
func ToTitle(r rune) rune {
	return unicode.ToTitle(r)
}

// Decimal returns the decimal digit value of r
func Decimal(r rune) (int, bool) {
	if r >= '0' && r <= '9' {
		return int(r - '0'), true
	}
	if r < 0x80 {
		return 0, false
	}
	// Nd ranges are made of contiguous blocks of ten starting at a zero
	for _, rng := range unicode.Nd.R16 {
		if r < rune(rng.Lo) {
			return 0, false
		}
		if r <= rune(rng.Hi) {
			return int(r-rune(rng.Lo)) % 10, true
		}
	}
	for _, rng := range unicode.Nd.R32 {
		if r < rune(rng.Lo) {
			return 0, false
		}
		if r <= rune(rng.Hi) {
			return int(r-rune(rng.Lo)) % 10, true
		}
	}
	return 0, false
}

// Lookup returns the full classification record for r
func Lookup(r rune) Record {
	rec := Record{
		Lower:   ToLower(r),
		Upper:   ToUpper(r),
		Title:   ToTitle(r),
		Decimal: -1,
	}
	checks := []struct {
		flag Flag
		fn   func(rune) bool
	}{
		{FlagSpace, IsSpace},
		{FlagLinebreak, IsLinebreak},
		{FlagAlpha, IsAlpha},
		{FlagDecimal, IsDecimal},
		{FlagDigit, IsDigit},
		{FlagNumeric, IsNumeric},
		{FlagLower, IsLower},
		{FlagUpper, IsUpper},
		{FlagTitle, IsTitle},
		{FlagXIDStart, IsXIDStart},
		{FlagXIDContinue, IsXIDContinue},
		{FlagPrintable, IsPrintable},
	}
	for _, c := range checks {
		if c.fn(r) {
			rec.Flags |= c.flag
		}
	}
	if d, ok := Decimal(r); ok {
		rec.Decimal = d
	}
	return rec
}
