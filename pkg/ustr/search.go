package ustr

// NormalizeIndex applies the shared clamp rule: negative indices count from
// the end, then the result is clamped to [0, length].
func NormalizeIndex(length, index int) int {
	if index < 0 {
		index += length
		if index < 0 {
			index = 0
		}
	} else if index > length {
		index = length
	}
	return index
}

// Window normalizes a [start, end) pair against length
func Window(length, start, end int) (int, int) {
	return NormalizeIndex(length, start), NormalizeIndex(length, end)
}

func matchAt(s, sub []rune, i int) bool {
	for j, r := range sub {
		if s[i+j] != r {
			return false
		}
	}
	return true
}

// Find returns the lowest index of sub within s[start:end], or -1
func Find(s, sub []rune, start, end int) int {
	start, end = Window(len(s), start, end)
	last := end - len(sub)
	for i := start; i <= last; i++ {
		if matchAt(s, sub, i) {
			return i
		}
	}
	return -1
}

// RFind returns the highest index of sub within s[start:end], or -1
func RFind(s, sub []rune, start, end int) int {
	start, end = Window(len(s), start, end)
	for i := end - len(sub); i >= start; i-- {
		if matchAt(s, sub, i) {
			return i
		}
	}
	return -1
}

// Index is Find that reports absence as ErrSubstringNotFound
func Index(s, sub []rune, start, end int) (int, error) {
	if i := Find(s, sub, start, end); i >= 0 {
		return i, nil
	}
	return -1, ErrSubstringNotFound
}

// RIndex is RFind that reports absence as ErrSubstringNotFound
func RIndex(s, sub []rune, start, end int) (int, error) {
	if i := RFind(s, sub, start, end); i >= 0 {
		return i, nil
	}
	return -1, ErrSubstringNotFound
}

// Count returns the number of non-overlapping occurrences of sub in s[start:end]
func Count(s, sub []rune, start, end int) int {
	start, end = Window(len(s), start, end)
	if end < start {
		return 0
	}
	if len(sub) == 0 {
		return end - start + 1
	}
	n := 0
	for i := start; i <= end-len(sub); {
		if matchAt(s, sub, i) {
			n++
			i += len(sub)
		} else {
			i++
		}
	}
	return n
}

// StartsWith reports whether s[start:end] begins with prefix
func StartsWith(s, prefix []rune, start, end int) bool {
	start, end = Window(len(s), start, end)
	if end-start < len(prefix) {
		return false
	}
	return matchAt(s, prefix, start)
}

// EndsWith reports whether s[start:end] ends with suffix
func EndsWith(s, suffix []rune, start, end int) bool {
	start, end = Window(len(s), start, end)
	if end-start < len(suffix) {
		return false
	}
	return matchAt(s, suffix, end-len(suffix))
}

// Contains reports whether sub occurs anywhere in s
func Contains(s, sub []rune) bool {
	return Find(s, sub, 0, len(s)) >= 0
}

// Equal reports whether a and b hold the same code points
func Equal(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Compare orders a and b by code point value
func Compare(a, b []rune) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}
