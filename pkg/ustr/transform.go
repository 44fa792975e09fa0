package ustr

import "github.com/phroun/objspace/pkg/unicodedb"

// Strip removes code points from either end of s. With a nil chars set the
// whitespace class is used. left and right select the ends to scan.
func Strip(s, chars []rune, left, right bool) []rune {
	in := func(r rune) bool {
		for _, c := range chars {
			if c == r {
				return true
			}
		}
		return false
	}
	if chars == nil {
		in = unicodedb.IsSpace
	}

	lpos, rpos := 0, len(s)
	if left {
		for lpos < rpos && in(s[lpos]) {
			lpos++
		}
	}
	if right {
		for rpos > lpos && in(s[rpos-1]) {
			rpos--
		}
	}
	return s[lpos:rpos]
}

func mapRunes(s []rune, fn func(rune) rune) []rune {
	b := NewBuilder(len(s))
	for _, r := range s {
		b.Append(fn(r))
	}
	return b.Build()
}

func Lower(s []rune) []rune {
	return mapRunes(s, unicodedb.ToLower)
}

func Upper(s []rune) []rune {
	return mapRunes(s, unicodedb.ToUpper)
}

// SwapCase exchanges lower and upper case; other code points pass through
func SwapCase(s []rune) []rune {
	return mapRunes(s, func(r rune) rune {
		switch {
		case unicodedb.IsLower(r):
			return unicodedb.ToUpper(r)
		case unicodedb.IsUpper(r):
			return unicodedb.ToLower(r)
		}
		return r
	})
}

// Capitalize uppercases the first code point and lowercases the rest
func Capitalize(s []rune) []rune {
	if len(s) == 0 {
		return s
	}
	b := NewBuilder(len(s))
	b.Append(unicodedb.ToUpper(s[0]))
	for _, r := range s[1:] {
		b.Append(unicodedb.ToLower(r))
	}
	return b.Build()
}

// Title titlecases every code point that follows an uncased one and
// lowercases the others
func Title(s []rune) []rune {
	b := NewBuilder(len(s))
	previousIsCased := false
	for _, r := range s {
		if previousIsCased {
			b.Append(unicodedb.ToLower(r))
		} else {
			b.Append(unicodedb.ToTitle(r))
		}
		previousIsCased = unicodedb.IsCased(r)
	}
	return b.Build()
}

// ToDecimal rewrites non-ASCII whitespace to ' ' and non-ASCII decimal
// digits to their ASCII equivalent, leaving everything else untouched
func ToDecimal(s []rune) []rune {
	return mapRunes(s, func(r rune) rune {
		if r <= 127 {
			return r
		}
		if unicodedb.IsSpace(r) {
			return ' '
		}
		if d, ok := unicodedb.Decimal(r); ok {
			return '0' + rune(d)
		}
		return r
	})
}
