package ustr

import "github.com/phroun/objspace/pkg/unicodedb"

// splitLimit maps a caller maxsplit onto an internal countdown where a
// negative value never reaches zero
func splitLimit(maxsplit int) int {
	if maxsplit <= 0 {
		return -1
	}
	return maxsplit
}

// SplitWhitespace splits s on runs of whitespace. Leading and trailing
// whitespace produce no empty fields. A positive maxsplit stops after that
// many splits and keeps the rest of s (trailing whitespace included) as the
// final field; zero or negative means no limit.
func SplitWhitespace(s []rune, maxsplit int) [][]rune {
	limit := splitLimit(maxsplit)
	var res [][]rune
	length := len(s)
	i := 0
	for {
		for i < length && unicodedb.IsSpace(s[i]) {
			i++
		}
		if i >= length {
			break
		}

		var j int
		if limit == 0 {
			j = length
		} else {
			j = i + 1
			for j < length && !unicodedb.IsSpace(s[j]) {
				j++
			}
			limit--
		}
		res = append(res, s[i:j])
		i = j + 1
	}
	return res
}

// RSplitWhitespace is SplitWhitespace working from the end of s
func RSplitWhitespace(s []rune, maxsplit int) [][]rune {
	limit := splitLimit(maxsplit)
	var res [][]rune
	i := len(s) - 1
	for {
		for i >= 0 && unicodedb.IsSpace(s[i]) {
			i--
		}
		if i < 0 {
			break
		}

		// j ends up on the separator before the word
		var j int
		if limit == 0 {
			j = -1
		} else {
			j = i - 1
			for j >= 0 && !unicodedb.IsSpace(s[j]) {
				j--
			}
			limit--
		}
		res = append(res, s[j+1:i+1])
		i = j - 1
	}
	reverse(res)
	return res
}

// Split splits s on every occurrence of sep
func Split(s, sep []rune, maxsplit int) ([][]rune, error) {
	if len(sep) == 0 {
		return nil, ErrEmptySeparator
	}
	return splitWith(s, sep, splitLimit(maxsplit)), nil
}

// RSplit splits s on sep working from the end
func RSplit(s, sep []rune, maxsplit int) ([][]rune, error) {
	if len(sep) == 0 {
		return nil, ErrEmptySeparator
	}
	limit := splitLimit(maxsplit)
	var res [][]rune
	end := len(s)
	for limit != 0 {
		idx := RFind(s, sep, 0, end)
		if idx < 0 {
			break
		}
		res = append(res, s[idx+len(sep):end])
		end = idx
		limit--
	}
	res = append(res, s[:end])
	reverse(res)
	return res, nil
}

// splitWith is the separator splitter shared by Split and Replace. A negative
// limit splits everywhere, zero does not split at all.
func splitWith(s, sep []rune, limit int) [][]rune {
	var parts [][]rune
	start := 0
	for limit != 0 {
		idx := Find(s, sep, start, len(s))
		if idx < 0 {
			break
		}
		parts = append(parts, s[start:idx])
		start = idx + len(sep)
		limit--
	}
	return append(parts, s[start:])
}

// splitChars splits s between every code point, starting with an empty
// field; it is what replace uses for an empty old substring
func splitChars(s []rune, limit int) [][]rune {
	if limit == 0 {
		return [][]rune{s}
	}
	parts := [][]rune{{}}
	index := 0
	limit--
	for limit != 0 && index < len(s) {
		parts = append(parts, s[index:index+1])
		index++
		limit--
	}
	return append(parts, s[index:])
}

// Splitlines splits s at line boundaries. CRLF counts as one break.
func Splitlines(s []rune, keepends bool) [][]rune {
	var lines [][]rune
	if len(s) == 0 {
		return lines
	}
	keep := 0
	if keepends {
		keep = 1
	}
	start, pos, end := 0, 0, len(s)
	for pos < end {
		if !unicodedb.IsLinebreak(s[pos]) {
			pos++
			continue
		}
		if s[pos] == '\r' && pos+1 < end && s[pos+1] == '\n' {
			lines = append(lines, s[start:pos+keep*2])
			pos++
		} else {
			lines = append(lines, s[start:pos+keep])
		}
		pos++
		start = pos
	}
	if !unicodedb.IsLinebreak(s[end-1]) {
		lines = append(lines, s[start:])
	}
	return lines
}

// Partition splits s around the first occurrence of sep. found is false
// when sep does not occur, in which case head is s.
func Partition(s, sep []rune) (head, tail []rune, found bool, err error) {
	if len(sep) == 0 {
		return nil, nil, false, ErrEmptySeparator
	}
	pos := Find(s, sep, 0, len(s))
	if pos < 0 {
		return s, nil, false, nil
	}
	return s[:pos], s[pos+len(sep):], true, nil
}

// RPartition splits s around the last occurrence of sep. found is false
// when sep does not occur, in which case tail is s.
func RPartition(s, sep []rune) (head, tail []rune, found bool, err error) {
	if len(sep) == 0 {
		return nil, nil, false, ErrEmptySeparator
	}
	pos := RFind(s, sep, 0, len(s))
	if pos < 0 {
		return nil, s, false, nil
	}
	return s[:pos], s[pos+len(sep):], true, nil
}

func reverse(parts [][]rune) {
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
}
