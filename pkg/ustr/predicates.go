package ustr

import "github.com/phroun/objspace/pkg/unicodedb"

// Every predicate here is false for an empty sequence.

func all(s []rune, fn func(rune) bool) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if !fn(r) {
			return false
		}
	}
	return true
}

func IsSpace(s []rune) bool   { return all(s, unicodedb.IsSpace) }
func IsAlpha(s []rune) bool   { return all(s, unicodedb.IsAlpha) }
func IsDecimal(s []rune) bool { return all(s, unicodedb.IsDecimal) }
func IsDigit(s []rune) bool   { return all(s, unicodedb.IsDigit) }
func IsNumeric(s []rune) bool { return all(s, unicodedb.IsNumeric) }

func IsPrintable(s []rune) bool { return all(s, unicodedb.IsPrintable) }

func IsAlnum(s []rune) bool {
	return all(s, func(r rune) bool {
		return unicodedb.IsAlpha(r) || unicodedb.IsDecimal(r) ||
			unicodedb.IsDigit(r) || unicodedb.IsNumeric(r)
	})
}

// IsLower requires at least one lowercase code point and no upper or
// titlecase ones
func IsLower(s []rune) bool {
	cased := false
	for _, r := range s {
		if unicodedb.IsUpper(r) || unicodedb.IsTitle(r) {
			return false
		}
		if !cased && unicodedb.IsLower(r) {
			cased = true
		}
	}
	return cased
}

// IsUpper requires at least one uppercase code point and no lower or
// titlecase ones
func IsUpper(s []rune) bool {
	cased := false
	for _, r := range s {
		if unicodedb.IsLower(r) || unicodedb.IsTitle(r) {
			return false
		}
		if !cased && unicodedb.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// IsTitle requires every cased run to start with exactly one upper or
// titlecase code point followed only by lowercase ones
func IsTitle(s []rune) bool {
	cased := false
	previousIsCased := false
	for _, r := range s {
		switch {
		case unicodedb.IsUpper(r) || unicodedb.IsTitle(r):
			if previousIsCased {
				return false
			}
			previousIsCased, cased = true, true
		case unicodedb.IsLower(r):
			if !previousIsCased {
				return false
			}
			previousIsCased, cased = true, true
		default:
			previousIsCased = false
		}
	}
	return cased
}

// IsIdentifier: first code point XID_Start or '_', the rest XID_Continue
func IsIdentifier(s []rune) bool {
	if len(s) == 0 {
		return false
	}
	if !unicodedb.IsXIDStart(s[0]) && s[0] != '_' {
		return false
	}
	for _, r := range s[1:] {
		if !unicodedb.IsXIDContinue(r) {
			return false
		}
	}
	return true
}
