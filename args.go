package objspace

import "math"

// indexValue reads an integer operand; bools count as 0 and 1
func indexValue(v Value) (int64, bool) {
	switch x := v.(type) {
	case *Int:
		return x.v, true
	case *Bool:
		return x.Int(), true
	}
	return 0, false
}

// intArg reads a required integer operand
func intArg(v Value, what string) (int, error) {
	n, ok := indexValue(v)
	if !ok {
		return 0, newError(TypeError, "%s must be int, not %s", what, v.TypeName())
	}
	return clampInt(n), nil
}

// optIndex reads an optional slice index at args[i]; missing or None gives def
func optIndex(args []Value, i int, def int) (int, error) {
	if i >= len(args) || args[i] == None {
		return def, nil
	}
	n, ok := indexValue(args[i])
	if !ok {
		return 0, newError(TypeError, "slice indices must be integers or None or have an __index__ method")
	}
	return clampInt(n), nil
}

// window reads optional start and end operands beginning at args[i]
func window(args []Value, i int) (int, int, error) {
	start, err := optIndex(args, i, 0)
	if err != nil {
		return 0, 0, err
	}
	end, err := optIndex(args, i+1, math.MaxInt)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func clampInt(n int64) int {
	if n > math.MaxInt {
		return math.MaxInt
	}
	if n < math.MinInt {
		return math.MinInt
	}
	return int(n)
}

// sequenceItems returns the items of a list or tuple
func sequenceItems(v Value) ([]Value, bool) {
	switch x := v.(type) {
	case *List:
		return x.items, true
	case *Tuple:
		return x.items, true
	}
	return nil, false
}

// seqIndex normalizes a possibly negative sequence index, reporting
// whether it is in range
func seqIndex(length int, v Value, what string) (int, error) {
	n, ok := indexValue(v)
	if !ok {
		return 0, newError(TypeError, "%s indices must be integers, not %s", what, v.TypeName())
	}
	if n < 0 {
		n += int64(length)
	}
	if n < 0 || n >= int64(length) {
		return 0, newError(IndexError, "%s index out of range", what)
	}
	return int(n), nil
}

func unicodeOf(args []Value, i int) *Unicode { return args[i].(*Unicode) }
func bytesOf(args []Value, i int) *Bytes     { return args[i].(*Bytes) }

// sliceIndices resolves optional start, stop and step operands beginning at
// args[i] against length the way slice.indices does, returning the first
// index, the step and the number of selected items
func sliceIndices(length int, args []Value, i int) (start, step, n int, err error) {
	step64 := int64(1)
	if i+2 < len(args) && args[i+2] != None {
		v, ok := indexValue(args[i+2])
		if !ok {
			return 0, 0, 0, newError(TypeError, "slice indices must be integers or None or have an __index__ method")
		}
		if v == 0 {
			return 0, 0, 0, newError(ValueError, "slice step cannot be zero")
		}
		if v < -math.MaxInt64 {
			v = -math.MaxInt64
		}
		step64 = v
	}

	lower, upper := int64(0), int64(length)
	if step64 < 0 {
		lower, upper = -1, int64(length)-1
	}
	bound := func(j int, def int64) (int64, error) {
		if j >= len(args) || args[j] == None {
			return def, nil
		}
		v, ok := indexValue(args[j])
		if !ok {
			return 0, newError(TypeError, "slice indices must be integers or None or have an __index__ method")
		}
		if v < 0 {
			v += int64(length)
			if v < lower {
				v = lower
			}
		} else if v > upper {
			v = upper
		}
		return v, nil
	}

	first, last := lower, upper
	if step64 < 0 {
		first, last = upper, lower
	}
	lo, err := bound(i, first)
	if err != nil {
		return 0, 0, 0, err
	}
	hi, err := bound(i+1, last)
	if err != nil {
		return 0, 0, 0, err
	}

	var count int64
	switch {
	case step64 > 0 && lo < hi:
		count = (hi-lo-1)/step64 + 1
	case step64 < 0 && hi < lo:
		count = (lo-hi-1)/(-step64) + 1
	}
	return int(lo), clampInt(step64), int(count), nil
}
