package objspace

import (
	"hash/fnv"
	"math"
	"strconv"
	"strings"

	"github.com/phroun/objspace/pkg/ustr"
)

func registerRepr(t *DispatchTable) {
	t.Register("repr", func(s *Space, args []Value) (Value, error) {
		r, err := s.repr(args[0], nil)
		if err != nil {
			return nil, err
		}
		return NewUnicodeString(r), nil
	}, KindAny)
	t.Register("str", func(s *Space, args []Value) (Value, error) {
		r, err := s.repr(args[0], nil)
		if err != nil {
			return nil, err
		}
		return NewUnicodeString(r), nil
	}, KindAny)
	t.Register("str", func(s *Space, args []Value) (Value, error) {
		return CreateIfSubclassed(args[0]), nil
	}, KindUnicode)
	t.Register("hash", func(s *Space, args []Value) (Value, error) {
		h, err := hashOf(args[0])
		if err != nil {
			return nil, err
		}
		return NewInt(h), nil
	}, KindAny)
}

// Repr returns the source-like rendering of v
func (s *Space) Repr(v Value) (string, error) {
	return s.text("repr", v)
}

// Str returns the user-facing rendering of v
func (s *Space) Str(v Value) (string, error) {
	return s.text("str", v)
}

func (s *Space) text(op string, v Value) (string, error) {
	res, err := s.Call(op, v)
	if err != nil {
		return "", err
	}
	u, ok := res.(*Unicode)
	if !ok {
		return "", newError(TypeError, "%s returned non-string (type %s)", op, res.TypeName())
	}
	return string(u.runes), nil
}

// quoteRunes renders rs as a quoted string literal
func quoteRunes(rs []rune) string {
	return ustr.Escape(rs, ustr.EscapeOptions{PassPrintable: true, Quotes: true})
}

// repr renders v. seen tracks the containers on the current path so that
// self-referencing structures print as an ellipsis.
func (s *Space) repr(v Value, seen map[Value]bool) (string, error) {
	switch x := v.(type) {
	case *NoneValue:
		return "None", nil
	case *Bool:
		return x.String(), nil
	case *Int:
		return strconv.FormatInt(x.v, 10), nil
	case *Float:
		return formatFloat(x.v), nil
	case *Unicode:
		return quoteRunes(x.runes), nil
	case *Bytes:
		rs := make([]rune, len(x.b))
		for i, c := range x.b {
			rs[i] = rune(c)
		}
		return ustr.Escape(rs, ustr.EscapeOptions{Quotes: true, Prefix: "b"}), nil
	}

	if seen[v] {
		switch v.Kind() {
		case KindList:
			return "[...]", nil
		case KindDict:
			return "{...}", nil
		}
		return "(...)", nil
	}
	if seen == nil {
		seen = make(map[Value]bool)
	}
	seen[v] = true
	defer delete(seen, v)

	var b strings.Builder
	items := func(open, close string, vs []Value) error {
		b.WriteString(open)
		for i, item := range vs {
			if i > 0 {
				b.WriteString(", ")
			}
			r, err := s.repr(item, seen)
			if err != nil {
				return err
			}
			b.WriteString(r)
		}
		if len(vs) == 1 && open == "(" {
			b.WriteByte(',')
		}
		b.WriteString(close)
		return nil
	}

	switch x := v.(type) {
	case *Tuple:
		if err := items("(", ")", x.items); err != nil {
			return "", err
		}
	case *List:
		if err := items("[", "]", x.items); err != nil {
			return "", err
		}
	case *Dict:
		b.WriteByte('{')
		for i, k := range x.keys {
			if i > 0 {
				b.WriteString(", ")
			}
			kr, err := s.repr(k, seen)
			if err != nil {
				return "", err
			}
			vr, err := s.repr(x.values[i], seen)
			if err != nil {
				return "", err
			}
			b.WriteString(kr)
			b.WriteString(": ")
			b.WriteString(vr)
		}
		b.WriteByte('}')
	default:
		return "", newError(SystemError, "repr of invalid value")
	}
	return b.String(), nil
}

// formatFloat renders the shortest decimal that reads back as f, switching
// to exponent notation below 1e-4 and from 1e16
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	e := strconv.FormatFloat(f, 'e', -1, 64)
	mant, expPart, _ := strings.Cut(e, "e")
	exp, _ := strconv.Atoi(expPart)
	if f != 0 && (exp < -4 || exp >= 16) {
		sign := "+"
		if exp < 0 {
			sign, exp = "-", -exp
		}
		return mant + "e" + sign + leftPad(strconv.Itoa(exp), 2)
	}
	out := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(out, ".") {
		out += ".0"
	}
	return out
}

func leftPad(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return strings.Repeat("0", n-len(s)) + s
}

// hashOf returns the hash of a hashable value. Integral numbers hash to
// their value so that equal numbers hash alike.
func hashOf(v Value) (int64, error) {
	switch x := v.(type) {
	case *Bool:
		return x.Int(), nil
	case *Int:
		return x.v, nil
	case *Float:
		if x.v == math.Trunc(x.v) && math.Abs(x.v) < 1<<63 {
			return int64(x.v), nil
		}
	}
	key, err := hashKey(v)
	if err != nil {
		return 0, err
	}
	h := fnv.New64a()
	h.Write([]byte(key))
	return int64(h.Sum64() >> 1), nil
}
