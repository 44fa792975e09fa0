package objspace

import (
	"math"
	"strconv"
	"strings"

	"github.com/phroun/objspace/pkg/unicodedb"
)

func intOverflow(op string) error {
	return newError(OverflowError, "integer result of %s is too large", op)
}

func addInt(a, b int64) (int64, bool) {
	r := a + b
	if (a > 0 && b > 0 && r < 0) || (a < 0 && b < 0 && r >= 0) {
		return 0, false
	}
	return r, true
}

func subInt(a, b int64) (int64, bool) {
	r := a - b
	if (a >= 0 && b < 0 && r < 0) || (a < 0 && b > 0 && r >= 0) {
		return 0, false
	}
	return r, true
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	r := a * b
	if r/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	return r, true
}

// floorDivInt rounds towards negative infinity
func floorDivInt(a, b int64) (int64, bool) {
	if a == math.MinInt64 && b == -1 {
		return 0, false
	}
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q, true
}

// modInt takes the sign of the divisor
func modInt(a, b int64) int64 {
	if b == -1 {
		return 0
	}
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}

func powInt(base, exp int64) (int64, bool) {
	result := int64(1)
	for exp > 0 {
		var ok bool
		if exp&1 == 1 {
			if result, ok = mulInt(result, base); !ok {
				return 0, false
			}
		}
		exp >>= 1
		if exp > 0 {
			if base, ok = mulInt(base, base); !ok {
				return 0, false
			}
		}
	}
	return result, true
}

func intsOf(args []Value) (int64, int64) {
	return args[0].(*Int).v, args[1].(*Int).v
}

func floatsOf(args []Value) (float64, float64) {
	return args[0].(*Float).v, args[1].(*Float).v
}

func registerNumeric(t *DispatchTable) {
	kI, kF, kB := KindInt, KindFloat, KindBool

	checked := map[string]func(a, b int64) (int64, bool){
		"add": addInt,
		"sub": subInt,
		"mul": mulInt,
	}
	for op, fn := range checked {
		op, fn := op, fn
		t.Register(op, func(s *Space, args []Value) (Value, error) {
			r, ok := fn(intsOf(args))
			if !ok {
				return nil, intOverflow(op)
			}
			return NewInt(r), nil
		}, kI, kI)
	}
	t.Register("floordiv", func(s *Space, args []Value) (Value, error) {
		a, b := intsOf(args)
		if b == 0 {
			return nil, newError(ZeroDivisionError, "integer division or modulo by zero")
		}
		q, ok := floorDivInt(a, b)
		if !ok {
			return nil, intOverflow("floordiv")
		}
		return NewInt(q), nil
	}, kI, kI)
	t.Register("mod", func(s *Space, args []Value) (Value, error) {
		a, b := intsOf(args)
		if b == 0 {
			return nil, newError(ZeroDivisionError, "integer division or modulo by zero")
		}
		return NewInt(modInt(a, b)), nil
	}, kI, kI)
	t.Register("truediv", func(s *Space, args []Value) (Value, error) {
		a, b := intsOf(args)
		if b == 0 {
			return nil, newError(ZeroDivisionError, "division by zero")
		}
		return NewFloat(float64(a) / float64(b)), nil
	}, kI, kI)
	t.Register("pow", func(s *Space, args []Value) (Value, error) {
		a, b := intsOf(args)
		if b < 0 {
			if a == 0 {
				return nil, newError(ZeroDivisionError, "0.0 cannot be raised to a negative power")
			}
			return NewFloat(math.Pow(float64(a), float64(b))), nil
		}
		r, ok := powInt(a, b)
		if !ok {
			return nil, intOverflow("pow")
		}
		return NewInt(r), nil
	}, kI, kI)

	bitwise := map[string]func(a, b int64) int64{
		"and": func(a, b int64) int64 { return a & b },
		"or":  func(a, b int64) int64 { return a | b },
		"xor": func(a, b int64) int64 { return a ^ b },
	}
	for op, fn := range bitwise {
		fn := fn
		t.Register(op, func(s *Space, args []Value) (Value, error) {
			return NewInt(fn(intsOf(args))), nil
		}, kI, kI)
		t.Register(op, func(s *Space, args []Value) (Value, error) {
			return NewBool(fn(args[0].(*Bool).Int(), args[1].(*Bool).Int()) != 0), nil
		}, kB, kB)
	}

	registerFloatArith(t)
	registerCompare(t, kI, func(args []Value) int {
		a, b := intsOf(args)
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	})
	registerCompare(t, kF, func(args []Value) int {
		a, b := floatsOf(args)
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		case a == b:
			return 0
		}
		return unordered
	})

	registerUnaryNumeric(t)
	registerConversions(t)
}

// unordered is the comparison result for NaN operands; every ordering
// predicate and eq are false for it
const unordered = 2

func registerCompare(t *DispatchTable, k Kind, cmp func([]Value) int) {
	preds := map[string]func(int) bool{
		"eq": func(c int) bool { return c == 0 },
		"ne": func(c int) bool { return c != 0 },
		"lt": func(c int) bool { return c == -1 },
		"le": func(c int) bool { return c == -1 || c == 0 },
		"gt": func(c int) bool { return c == 1 },
		"ge": func(c int) bool { return c == 1 || c == 0 },
	}
	for op, pred := range preds {
		pred := pred
		t.Register(op, func(s *Space, args []Value) (Value, error) {
			return NewBool(pred(cmp(args))), nil
		}, k, k)
	}
}

func registerFloatArith(t *DispatchTable) {
	kF := KindFloat
	simple := map[string]func(a, b float64) float64{
		"add": func(a, b float64) float64 { return a + b },
		"sub": func(a, b float64) float64 { return a - b },
		"mul": func(a, b float64) float64 { return a * b },
	}
	for op, fn := range simple {
		fn := fn
		t.Register(op, func(s *Space, args []Value) (Value, error) {
			return NewFloat(fn(floatsOf(args))), nil
		}, kF, kF)
	}
	t.Register("truediv", func(s *Space, args []Value) (Value, error) {
		a, b := floatsOf(args)
		if b == 0 {
			return nil, newError(ZeroDivisionError, "float division by zero")
		}
		return NewFloat(a / b), nil
	}, kF, kF)
	t.Register("floordiv", func(s *Space, args []Value) (Value, error) {
		a, b := floatsOf(args)
		if b == 0 {
			return nil, newError(ZeroDivisionError, "float floor division by zero")
		}
		div, _ := floatDivmod(a, b)
		return NewFloat(div), nil
	}, kF, kF)
	t.Register("mod", func(s *Space, args []Value) (Value, error) {
		a, b := floatsOf(args)
		if b == 0 {
			return nil, newError(ZeroDivisionError, "float modulo")
		}
		_, mod := floatDivmod(a, b)
		return NewFloat(mod), nil
	}, kF, kF)
	t.Register("pow", func(s *Space, args []Value) (Value, error) {
		a, b := floatsOf(args)
		if a == 0 && b < 0 {
			return nil, newError(ZeroDivisionError, "0.0 cannot be raised to a negative power")
		}
		if a < 0 && b != math.Trunc(b) && !math.IsInf(b, 0) {
			return nil, newError(ValueError, "negative number cannot be raised to a fractional power")
		}
		r := math.Pow(a, b)
		if math.IsInf(r, 0) && !math.IsInf(a, 0) && !math.IsInf(b, 0) {
			return nil, newError(OverflowError, "(34, 'Numerical result out of range')")
		}
		return NewFloat(r), nil
	}, kF, kF)
}

// floatDivmod returns the floor quotient and a remainder with the sign of b
func floatDivmod(a, b float64) (float64, float64) {
	mod := math.Mod(a, b)
	div := (a - mod) / b
	if mod != 0 {
		if (b < 0) != (mod < 0) {
			mod += b
			div -= 1
		}
	} else {
		mod = math.Copysign(0, b)
	}
	if div != 0 {
		floor := math.Floor(div)
		if div-floor > 0.5 {
			floor += 1
		}
		div = floor
	} else {
		div = math.Copysign(0, a/b)
	}
	return div, mod
}

func registerUnaryNumeric(t *DispatchTable) {
	t.Register("neg", func(s *Space, args []Value) (Value, error) {
		v := args[0].(*Int).v
		if v == math.MinInt64 {
			return nil, intOverflow("neg")
		}
		return NewInt(-v), nil
	}, KindInt)
	t.Register("neg", func(s *Space, args []Value) (Value, error) {
		return NewFloat(-args[0].(*Float).v), nil
	}, KindFloat)
	t.Register("neg", func(s *Space, args []Value) (Value, error) {
		return NewInt(-args[0].(*Bool).Int()), nil
	}, KindBool)

	t.Register("abs", func(s *Space, args []Value) (Value, error) {
		v := args[0].(*Int).v
		if v == math.MinInt64 {
			return nil, intOverflow("abs")
		}
		if v < 0 {
			v = -v
		}
		return NewInt(v), nil
	}, KindInt)
	t.Register("abs", func(s *Space, args []Value) (Value, error) {
		return NewFloat(math.Abs(args[0].(*Float).v)), nil
	}, KindFloat)
	t.Register("abs", func(s *Space, args []Value) (Value, error) {
		return NewInt(args[0].(*Bool).Int()), nil
	}, KindBool)

	t.Register("pos", func(s *Space, args []Value) (Value, error) {
		return CreateIfSubclassed(args[0]), nil
	}, KindInt)
	t.Register("pos", func(s *Space, args []Value) (Value, error) {
		return CreateIfSubclassed(args[0]), nil
	}, KindFloat)
	t.Register("pos", func(s *Space, args []Value) (Value, error) {
		return NewInt(args[0].(*Bool).Int()), nil
	}, KindBool)

	t.Register("invert", func(s *Space, args []Value) (Value, error) {
		return NewInt(^args[0].(*Int).v), nil
	}, KindInt)
	t.Register("invert", func(s *Space, args []Value) (Value, error) {
		return NewInt(^args[0].(*Bool).Int()), nil
	}, KindBool)
}

// parseIntLiteral accepts an optionally signed decimal literal with
// surrounding whitespace, single underscores between digits and any
// Unicode decimal digits
func parseIntLiteral(rs []rune) (int64, error) {
	var b strings.Builder
	trimmed := trimSpaceRunes(rs)
	for i, r := range trimmed {
		switch {
		case r == '_':
			if i == 0 || i == len(trimmed)-1 || !unicodedb.IsDecimal(trimmed[i-1]) || !unicodedb.IsDecimal(trimmed[i+1]) {
				return 0, strconv.ErrSyntax
			}
			continue
		case unicodedb.IsDecimal(r):
			d, _ := unicodedb.Decimal(r)
			b.WriteByte(byte('0' + d))
			continue
		case (r == '+' || r == '-') && i == 0:
			b.WriteRune(r)
			continue
		}
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseInt(b.String(), 10, 64)
}

func trimSpaceRunes(rs []rune) []rune {
	start, end := 0, len(rs)
	for start < end && unicodedb.IsSpace(rs[start]) {
		start++
	}
	for end > start && unicodedb.IsSpace(rs[end-1]) {
		end--
	}
	return rs[start:end]
}

func parseFloatLiteral(rs []rune) (float64, error) {
	s := strings.ToLower(string(trimSpaceRunes(rs)))
	switch strings.TrimLeft(s, "+-") {
	case "inf", "infinity", "nan":
	default:
		if strings.ContainsAny(s, "xp") || strings.Contains(s, "__") {
			return 0, strconv.ErrSyntax
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !isRangeErr(err) {
		return 0, err
	}
	return f, nil
}

func isRangeErr(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}

func registerConversions(t *DispatchTable) {
	t.Register("int", func(s *Space, args []Value) (Value, error) {
		return CreateIfSubclassed(args[0]), nil
	}, KindInt)
	t.Register("int", func(s *Space, args []Value) (Value, error) {
		return NewInt(args[0].(*Bool).Int()), nil
	}, KindBool)
	t.Register("int", func(s *Space, args []Value) (Value, error) {
		f := args[0].(*Float).v
		switch {
		case math.IsNaN(f):
			return nil, newError(ValueError, "cannot convert float NaN to integer")
		case math.IsInf(f, 0):
			return nil, newError(OverflowError, "cannot convert float infinity to integer")
		case math.Abs(f) >= 1<<63:
			return nil, intOverflow("int")
		}
		return NewInt(int64(f)), nil
	}, KindFloat)
	t.Register("int", func(s *Space, args []Value) (Value, error) {
		u := args[0].(*Unicode)
		n, err := parseIntLiteral(u.runes)
		if err != nil {
			if isRangeErr(err) {
				return nil, intOverflow("int")
			}
			return nil, newError(ValueError, "invalid literal for int() with base 10: %s", quoteRunes(u.runes))
		}
		return NewInt(n), nil
	}, KindUnicode)

	t.Register("float", func(s *Space, args []Value) (Value, error) {
		return CreateIfSubclassed(args[0]), nil
	}, KindFloat)
	t.Register("float", func(s *Space, args []Value) (Value, error) {
		return NewFloat(float64(args[0].(*Int).v)), nil
	}, KindInt)
	t.Register("float", func(s *Space, args []Value) (Value, error) {
		return NewFloat(float64(args[0].(*Bool).Int())), nil
	}, KindBool)
	t.Register("float", func(s *Space, args []Value) (Value, error) {
		u := args[0].(*Unicode)
		f, err := parseFloatLiteral(u.runes)
		if err != nil {
			return nil, newError(ValueError, "could not convert string to float: %s", quoteRunes(u.runes))
		}
		return NewFloat(f), nil
	}, KindUnicode)

	t.Register("bool", func(s *Space, args []Value) (Value, error) {
		return NewBool(s.IsTrue(args[0])), nil
	}, KindAny)

	t.Register("index", func(s *Space, args []Value) (Value, error) {
		n, ok := indexValue(args[0])
		if !ok {
			return nil, newError(TypeError, "'%s' object cannot be interpreted as an integer", args[0].TypeName())
		}
		return NewInt(n), nil
	}, KindAny)
}
