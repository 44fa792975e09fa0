package ustr

import "unicode"

// Join concatenates items with sep between them. The result is allocated
// once using len(sep)*(n-1) + the sum of item lengths, checked for overflow.
func Join(sep []rune, items [][]rune) ([]rune, error) {
	if len(items) == 0 {
		return []rune{}, nil
	}
	size, err := CheckedMul("join", len(sep), len(items)-1)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if size, err = CheckedAdd("join", size, len(item)); err != nil {
			return nil, err
		}
	}
	b := NewBuilder(size)
	for i, item := range items {
		if i != 0 && len(sep) > 0 {
			b.AppendSlice(sep)
		}
		b.AppendSlice(item)
	}
	return b.Build(), nil
}

// Replace substitutes repl for old, at most count times when count is
// non-negative. It splits s on old and joins the pieces with repl; an empty
// old inserts repl between every code point.
func Replace(s, old, repl []rune, count int) ([]rune, error) {
	var parts [][]rune
	if len(old) > 0 {
		parts = splitWith(s, old, count)
	} else {
		parts = splitChars(s, count)
	}

	one, err := CheckedMul("replace", len(parts), len(repl))
	if err != nil {
		return nil, err
	}
	if _, err := CheckedAdd("replace", one, len(s)); err != nil {
		return nil, err
	}
	return Join(repl, parts)
}

// ExpandTabs replaces each tab with enough spaces to reach the next multiple
// of tabsize. Columns restart after '\n' and '\r'.
func ExpandTabs(s []rune, tabsize int) ([]rune, error) {
	parts := splitWith(s, []rune{'\t'}, -1)
	column := func(part []rune, from int) int {
		for _, r := range part {
			from++
			if r == '\n' || r == '\r' {
				from = 0
			}
		}
		return from
	}

	prevsize := column(parts[0], 0)
	totalsize := len(parts[0])
	b := NewBuilder(len(s))
	b.AppendSlice(parts[0])
	for _, part := range parts[1:] {
		pad := 0
		if tabsize > 0 {
			pad = tabsize - prevsize%tabsize
		}
		var err error
		if totalsize, err = CheckedAdd("expandtabs", totalsize, pad); err != nil {
			return nil, err
		}
		if totalsize, err = CheckedAdd("expandtabs", totalsize, len(part)); err != nil {
			return nil, err
		}
		b.AppendRepeat(' ', pad)
		b.AppendSlice(part)
		prevsize = column(part, 0)
	}
	return b.Build(), nil
}

// MapAction tells Translate what to do with one code point
type MapAction int

const (
	MapKeep   MapAction = iota // no entry: copy the code point
	MapDelete                  // entry maps to None
	MapRune                    // entry maps to an ordinal
	MapText                    // entry maps to a string
)

// Mapping is the result of a translate lookup
type Mapping struct {
	Action MapAction
	Rune   rune
	Text   []rune
}

// Translate rewrites every code point through lookup
func Translate(s []rune, lookup func(r rune) (Mapping, error)) ([]rune, error) {
	b := NewBuilder(len(s))
	for _, r := range s {
		m, err := lookup(r)
		if err != nil {
			return nil, err
		}
		switch m.Action {
		case MapKeep:
			b.Append(r)
		case MapDelete:
		case MapRune:
			if m.Rune < 0 || m.Rune > unicode.MaxRune {
				return nil, &MappingError{Codepoint: r, Reason: "must be in range(0x110000)"}
			}
			b.Append(m.Rune)
		case MapText:
			b.AppendSlice(m.Text)
		default:
			return nil, &MappingError{Codepoint: r, Reason: "must return integer, None or str"}
		}
	}
	return b.Build(), nil
}
