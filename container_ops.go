package objspace

import "github.com/phroun/objspace/pkg/ustr"

func registerNone(t *DispatchTable) {
	t.Register("eq", func(s *Space, args []Value) (Value, error) {
		return True, nil
	}, KindNone, KindNone)
	t.Register("ne", func(s *Space, args []Value) (Value, error) {
		return False, nil
	}, KindNone, KindNone)
}

// seqMaker rebuilds a sequence of the same kind from items
type seqMaker func(items []Value) Value

func makeList(items []Value) Value  { return &List{items: items} }
func makeTuple(items []Value) Value { return NewTuple(items...) }

func registerContainers(t *DispatchTable) {
	seqs := map[Kind]struct {
		name string
		make seqMaker
	}{
		KindList:  {"list", makeList},
		KindTuple: {"tuple", makeTuple},
	}
	for k, seq := range seqs {
		seq := seq
		t.Register("add", func(s *Space, args []Value) (Value, error) {
			a, _ := sequenceItems(args[0])
			b, _ := sequenceItems(args[1])
			n, err := ustr.CheckedAdd("concat", len(a), len(b))
			if err != nil {
				return nil, err
			}
			out := make([]Value, 0, n)
			return seq.make(append(append(out, a...), b...)), nil
		}, k, k)
		repeat := func(s *Space, args []Value) (Value, error) {
			items, _ := sequenceItems(args[0])
			n, ok := indexValue(args[1])
			if !ok {
				return nil, ErrNotImplemented
			}
			if n <= 0 {
				return seq.make(nil), nil
			}
			size, err := ustr.CheckedMul("repeat", len(items), clampInt(n))
			if err != nil {
				return nil, err
			}
			out := make([]Value, 0, size)
			for i := int64(0); i < n; i++ {
				out = append(out, items...)
			}
			return seq.make(out), nil
		}
		t.Register("mul", repeat, k, KindAny)
		t.Register("mul", func(s *Space, args []Value) (Value, error) {
			return repeat(s, []Value{args[1], args[0]})
		}, KindAny, k)

		t.Register("len", func(s *Space, args []Value) (Value, error) {
			items, _ := sequenceItems(args[0])
			return NewInt(int64(len(items))), nil
		}, k)
		t.Register("getitem", func(s *Space, args []Value) (Value, error) {
			items, _ := sequenceItems(args[0])
			i, err := seqIndex(len(items), args[1], seq.name)
			if err != nil {
				return nil, err
			}
			return items[i], nil
		}, k, KindAny)
		registerN(t, "getslice", func(s *Space, args []Value) (Value, error) {
			items, _ := sequenceItems(args[0])
			start, step, n, err := sliceIndices(len(items), args, 1)
			if err != nil {
				return nil, err
			}
			out := make([]Value, n)
			for i, j := 0, start; i < n; i, j = i+1, j+step {
				out[i] = items[j]
			}
			return seq.make(out), nil
		}, 3, k)
		t.Register("eq", func(s *Space, args []Value) (Value, error) {
			eq, err := s.sequenceEq(args[0], args[1])
			return NewBool(eq), err
		}, k, k)
		t.Register("ne", func(s *Space, args []Value) (Value, error) {
			eq, err := s.sequenceEq(args[0], args[1])
			return NewBool(!eq), err
		}, k, k)
		t.Register("contains", func(s *Space, args []Value) (Value, error) {
			items, _ := sequenceItems(args[0])
			for _, item := range items {
				eq, err := s.EqW(item, args[1])
				if err != nil {
					return nil, err
				}
				if eq {
					return True, nil
				}
			}
			return False, nil
		}, k, KindAny)
	}

	t.Register("setitem", func(s *Space, args []Value) (Value, error) {
		l := args[0].(*List)
		i, err := seqIndex(len(l.items), args[1], "list assignment")
		if err != nil {
			return nil, err
		}
		l.items[i] = args[2]
		return None, nil
	}, KindList, KindAny, KindAny)
	t.Register("append", func(s *Space, args []Value) (Value, error) {
		args[0].(*List).Append(args[1])
		return None, nil
	}, KindList, KindAny)

	registerDict(t)
}

// sequenceEq compares two sequences item by item, identical items counting
// as equal
func (s *Space) sequenceEq(a, b Value) (bool, error) {
	if a == b {
		return true, nil
	}
	x, _ := sequenceItems(a)
	y, _ := sequenceItems(b)
	if len(x) != len(y) {
		return false, nil
	}
	for i := range x {
		if x[i] == y[i] {
			continue
		}
		eq, err := s.EqW(x[i], y[i])
		if err != nil || !eq {
			return false, err
		}
	}
	return true, nil
}

func registerDict(t *DispatchTable) {
	kD := KindDict
	t.Register("getitem", func(s *Space, args []Value) (Value, error) {
		v, found, err := args[0].(*Dict).Get(args[1])
		if err != nil {
			return nil, err
		}
		if !found {
			key, rerr := s.repr(args[1], nil)
			if rerr != nil {
				return nil, rerr
			}
			return nil, newError(KeyError, "%s", key)
		}
		return v, nil
	}, kD, KindAny)
	t.Register("setitem", func(s *Space, args []Value) (Value, error) {
		if err := args[0].(*Dict).Set(args[1], args[2]); err != nil {
			return nil, err
		}
		return None, nil
	}, kD, KindAny, KindAny)
	t.Register("len", func(s *Space, args []Value) (Value, error) {
		return NewInt(int64(args[0].(*Dict).Len())), nil
	}, kD)
	t.Register("contains", func(s *Space, args []Value) (Value, error) {
		_, found, err := args[0].(*Dict).Get(args[1])
		if err != nil {
			return nil, err
		}
		return NewBool(found), nil
	}, kD, KindAny)
	t.Register("get", func(s *Space, args []Value) (Value, error) {
		v, found, err := args[0].(*Dict).Get(args[1])
		if err != nil {
			return nil, err
		}
		if !found {
			return None, nil
		}
		return v, nil
	}, kD, KindAny)
	t.Register("get", func(s *Space, args []Value) (Value, error) {
		v, found, err := args[0].(*Dict).Get(args[1])
		if err != nil || found {
			return v, err
		}
		return args[2], nil
	}, kD, KindAny, KindAny)
}
