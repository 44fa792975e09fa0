package objspace

import (
	"bytes"

	"github.com/phroun/objspace/pkg/ustr"
)

func registerBytes(t *DispatchTable) {
	kB := KindBytes

	t.Register("add", func(s *Space, args []Value) (Value, error) {
		a, b := bytesOf(args, 0), bytesOf(args, 1)
		n, err := ustr.CheckedAdd("concat", len(a.b), len(b.b))
		if err != nil {
			return nil, err
		}
		out := make([]byte, 0, n)
		return NewBytes(append(append(out, a.b...), b.b...)), nil
	}, kB, kB)
	t.Register("mul", bytesRepeat, kB, KindAny)
	t.Register("mul", func(s *Space, args []Value) (Value, error) {
		return bytesRepeat(s, []Value{args[1], args[0]})
	}, KindAny, kB)

	for op, want := range map[string]func(int) bool{
		"eq": func(c int) bool { return c == 0 },
		"ne": func(c int) bool { return c != 0 },
		"lt": func(c int) bool { return c < 0 },
		"le": func(c int) bool { return c <= 0 },
		"gt": func(c int) bool { return c > 0 },
		"ge": func(c int) bool { return c >= 0 },
	} {
		want := want
		t.Register(op, func(s *Space, args []Value) (Value, error) {
			return NewBool(want(bytes.Compare(bytesOf(args, 0).b, bytesOf(args, 1).b))), nil
		}, kB, kB)
	}

	t.Register("len", func(s *Space, args []Value) (Value, error) {
		return NewInt(int64(bytesOf(args, 0).Len())), nil
	}, kB)
	t.Register("contains", func(s *Space, args []Value) (Value, error) {
		return NewBool(bytes.Contains(bytesOf(args, 0).b, bytesOf(args, 1).b)), nil
	}, kB, kB)
	t.Register("contains", func(s *Space, args []Value) (Value, error) {
		n, ok := indexValue(args[1])
		if !ok {
			return nil, newError(TypeError, "a bytes-like object is required, not '%s'", args[1].TypeName())
		}
		if n < 0 || n > 255 {
			return nil, newError(ValueError, "byte must be in range(0, 256)")
		}
		return NewBool(bytes.IndexByte(bytesOf(args, 0).b, byte(n)) >= 0), nil
	}, kB, KindAny)
	t.Register("getitem", func(s *Space, args []Value) (Value, error) {
		b := bytesOf(args, 0)
		i, err := seqIndex(len(b.b), args[1], "index")
		if err != nil {
			return nil, err
		}
		return NewInt(int64(b.b[i])), nil
	}, kB, KindAny)
	registerN(t, "getslice", func(s *Space, args []Value) (Value, error) {
		b := bytesOf(args, 0)
		start, step, n, err := sliceIndices(len(b.b), args, 1)
		if err != nil {
			return nil, err
		}
		if step == 1 && n == len(b.b) && b.class == "" {
			return b, nil
		}
		out := make([]byte, n)
		for i, j := 0, start; i < n; i, j = i+1, j+step {
			out[i] = b.b[j]
		}
		return NewBytes(out), nil
	}, 3, kB)
	t.Register("join", bytesJoin, kB, KindAny)

	registerN(t, "decode", func(s *Space, args []Value) (Value, error) {
		encoding, mode := "utf-8", "strict"
		for i, dst := range []*string{&encoding, &mode} {
			if len(args) > i+1 {
				v, ok := args[i+1].(*Unicode)
				if !ok {
					return nil, newError(TypeError, "decode() argument %d must be str, not %s", i+1, args[i+1].TypeName())
				}
				*dst = v.String()
			}
		}
		return s.decodeText(bytesOf(args, 0), encoding, mode)
	}, 2, kB)
}

func bytesRepeat(s *Space, args []Value) (Value, error) {
	b := bytesOf(args, 0)
	n, ok := indexValue(args[1])
	if !ok {
		return nil, ErrNotImplemented
	}
	if n <= 0 || len(b.b) == 0 {
		return NewBytes(nil), nil
	}
	if n == 1 {
		return CreateIfSubclassed(b), nil
	}
	if _, err := ustr.CheckedMul("repeat", len(b.b), clampInt(n)); err != nil {
		return nil, err
	}
	return NewBytes(bytes.Repeat(b.b, int(n))), nil
}

// bytesJoin concatenates a list or tuple of bytes with the separator. A
// single exact bytes item is returned as is.
func bytesJoin(s *Space, args []Value) (Value, error) {
	sep := bytesOf(args, 0)
	items, ok := sequenceItems(args[1])
	if !ok {
		return nil, newError(TypeError, "can only join an iterable, not %s", args[1].TypeName())
	}
	parts := make([][]byte, len(items))
	size := 0
	for i, item := range items {
		b, ok := item.(*Bytes)
		if !ok {
			return nil, newError(TypeError, "sequence item %d: expected a bytes-like object, %s found", i, item.TypeName())
		}
		parts[i] = b.b
		var err error
		if size, err = ustr.CheckedAdd("join", size, len(b.b)); err != nil {
			return nil, err
		}
	}
	if len(items) == 1 && items[0].UserClass() == "" {
		return items[0], nil
	}
	if len(items) > 1 {
		if _, err := ustr.CheckedAdd("join", size, len(sep.b)*(len(items)-1)); err != nil {
			return nil, err
		}
	}
	return NewBytes(bytes.Join(parts, sep.b)), nil
}
