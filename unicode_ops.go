package objspace

import (
	"github.com/phroun/objspace/pkg/ustr"
)

const (
	kU = KindUnicode
	kA = KindAny
)

// sameOrNew returns orig when rs holds exactly its code points and orig is
// a base instance, else a new value
func sameOrNew(orig *Unicode, rs []rune) *Unicode {
	if orig.class == "" && len(rs) == len(orig.runes) {
		return orig
	}
	return NewUnicode(rs)
}

func registerUnicode(t *DispatchTable) {
	t.Register("add", unicodeAdd, kU, kU)
	t.Register("mul", unicodeRepeat, kU, kA)
	t.Register("mul", func(s *Space, args []Value) (Value, error) {
		return unicodeRepeat(s, []Value{args[1], args[0]})
	}, kA, kU)
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
			return NewBool(want(ustr.Compare(unicodeOf(args, 0).runes, unicodeOf(args, 1).runes))), nil
		}, kU, kU)
	}

	t.Register("contains", func(s *Space, args []Value) (Value, error) {
		return NewBool(ustr.Contains(unicodeOf(args, 0).runes, unicodeOf(args, 1).runes)), nil
	}, kU, kU)
	t.Register("contains", func(s *Space, args []Value) (Value, error) {
		return nil, newError(TypeError, "'in <string>' requires string as left operand, not %s", args[1].TypeName())
	}, kU, kA)
	t.Register("len", func(s *Space, args []Value) (Value, error) {
		return NewInt(int64(unicodeOf(args, 0).Len())), nil
	}, kU)
	t.Register("getitem", func(s *Space, args []Value) (Value, error) {
		u := unicodeOf(args, 0)
		i, err := seqIndex(len(u.runes), args[1], "string")
		if err != nil {
			return nil, err
		}
		return NewUnicode([]rune{u.runes[i]}), nil
	}, kU, kA)
	registerN(t, "getslice", func(s *Space, args []Value) (Value, error) {
		u := unicodeOf(args, 0)
		start, step, n, err := sliceIndices(len(u.runes), args, 1)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return EmptyUnicode, nil
		}
		if step == 1 {
			return sameOrNew(u, append([]rune(nil), u.runes[start:start+n]...)), nil
		}
		out := make([]rune, n)
		for i, j := 0, start; i < n; i, j = i+1, j+step {
			out[i] = u.runes[j]
		}
		return NewUnicode(out), nil
	}, 3, kU)
	t.Register("ord", func(s *Space, args []Value) (Value, error) {
		u := unicodeOf(args, 0)
		if len(u.runes) != 1 {
			return nil, newError(TypeError, "ord() expected a character, but string of length %d found", len(u.runes))
		}
		return NewInt(int64(u.runes[0])), nil
	}, kU)

	registerUnicodeSearch(t)
	registerUnicodeSplit(t)
	registerUnicodeTransform(t)
	registerUnicodeJustify(t)
	registerUnicodeRewrite(t)
}

func unicodeAdd(s *Space, args []Value) (Value, error) {
	a, b := unicodeOf(args, 0), unicodeOf(args, 1)
	n, err := ustr.CheckedAdd("concat", len(a.runes), len(b.runes))
	if err != nil {
		return nil, err
	}
	out := make([]rune, 0, n)
	out = append(append(out, a.runes...), b.runes...)
	return NewUnicode(out), nil
}

// unicodeRepeat implements str * n; a count that is not an integer declines
func unicodeRepeat(s *Space, args []Value) (Value, error) {
	u := unicodeOf(args, 0)
	n, ok := indexValue(args[1])
	if !ok {
		return nil, ErrNotImplemented
	}
	if n <= 0 || len(u.runes) == 0 {
		return EmptyUnicode, nil
	}
	if n == 1 {
		return CreateIfSubclassed(u), nil
	}
	size, err := ustr.CheckedMul("repeat", len(u.runes), clampInt(n))
	if err != nil {
		return nil, err
	}
	b := ustr.NewBuilder(size)
	for i := int64(0); i < n; i++ {
		b.AppendSlice(u.runes)
	}
	return NewUnicode(b.Build()), nil
}

// registerN registers impl for the base operand kinds followed by up to
// extra optional KindAny operands
func registerN(t *DispatchTable, op string, impl Impl, extra int, kinds ...Kind) {
	for i := 0; i <= extra; i++ {
		sig := append(append([]Kind(nil), kinds...), make([]Kind, i)...)
		for j := len(kinds); j < len(sig); j++ {
			sig[j] = kA
		}
		t.Register(op, impl, sig...)
	}
}

func registerUnicodeSearch(t *DispatchTable) {
	type searchFn func(s, sub []rune, start, end int) (int, error)
	wrap := func(fn func(s, sub []rune, start, end int) int) searchFn {
		return func(s, sub []rune, start, end int) (int, error) { return fn(s, sub, start, end), nil }
	}
	for op, fn := range map[string]searchFn{
		"find":   wrap(ustr.Find),
		"rfind":  wrap(ustr.RFind),
		"count":  wrap(ustr.Count),
		"index":  ustr.Index,
		"rindex": ustr.RIndex,
	} {
		fn := fn
		registerN(t, op, func(s *Space, args []Value) (Value, error) {
			start, end, err := window(args, 2)
			if err != nil {
				return nil, err
			}
			n, err := fn(unicodeOf(args, 0).runes, unicodeOf(args, 1).runes, start, end)
			if err != nil {
				return nil, err
			}
			return NewInt(int64(n)), nil
		}, 2, kU, kU)
	}

	for op, fn := range map[string]func(s, affix []rune, start, end int) bool{
		"startswith": ustr.StartsWith,
		"endswith":   ustr.EndsWith,
	} {
		op, fn := op, fn
		registerN(t, op, func(s *Space, args []Value) (Value, error) {
			u := unicodeOf(args, 0)
			start, end, err := window(args, 2)
			if err != nil {
				return nil, err
			}
			switch affix := args[1].(type) {
			case *Unicode:
				return NewBool(fn(u.runes, affix.runes, start, end)), nil
			case *Tuple:
				for _, item := range affix.items {
					a, ok := item.(*Unicode)
					if !ok {
						return nil, newError(TypeError, "tuple for %s must only contain str, not %s", op, item.TypeName())
					}
					if fn(u.runes, a.runes, start, end) {
						return True, nil
					}
				}
				return False, nil
			}
			return nil, newError(TypeError, "%s first arg must be str or a tuple of str, not %s", op, args[1].TypeName())
		}, 2, kU, kA)
	}
}

// runesList boxes split results as a list of strings
func runesList(parts [][]rune) *List {
	items := make([]Value, len(parts))
	for i, p := range parts {
		items[i] = NewUnicode(p)
	}
	return &List{items: items}
}

func registerUnicodeSplit(t *DispatchTable) {
	type splitter struct {
		whitespace func([]rune, int) [][]rune
		sep        func(s, sep []rune, maxsplit int) ([][]rune, error)
	}
	for op, fns := range map[string]splitter{
		"split":  {ustr.SplitWhitespace, ustr.Split},
		"rsplit": {ustr.RSplitWhitespace, ustr.RSplit},
	} {
		op, fns := op, fns
		t.Register(op, func(s *Space, args []Value) (Value, error) {
			return runesList(fns.whitespace(unicodeOf(args, 0).runes, -1)), nil
		}, kU)
		registerN(t, op, func(s *Space, args []Value) (Value, error) {
			u := unicodeOf(args, 0)
			maxsplit := -1
			if len(args) > 2 {
				var err error
				if maxsplit, err = intArg(args[2], "maxsplit"); err != nil {
					return nil, err
				}
			}
			switch sep := args[1].(type) {
			case *NoneValue:
				return runesList(fns.whitespace(u.runes, maxsplit)), nil
			case *Unicode:
				parts, err := fns.sep(u.runes, sep.runes, maxsplit)
				if err != nil {
					return nil, err
				}
				return runesList(parts), nil
			}
			return nil, newError(TypeError, "must be str or None, not %s", args[1].TypeName())
		}, 1, kU, kA)
	}

	registerN(t, "splitlines", func(s *Space, args []Value) (Value, error) {
		keepends := len(args) > 1 && s.IsTrue(args[1])
		return runesList(ustr.Splitlines(unicodeOf(args, 0).runes, keepends)), nil
	}, 1, kU)

	t.Register("partition", func(s *Space, args []Value) (Value, error) {
		u := unicodeOf(args, 0)
		head, tail, found, err := ustr.Partition(u.runes, unicodeOf(args, 1).runes)
		if err != nil {
			return nil, err
		}
		if !found {
			return NewTuple(u, EmptyUnicode, EmptyUnicode), nil
		}
		return NewTuple(NewUnicode(head), args[1], NewUnicode(tail)), nil
	}, kU, kU)
	t.Register("rpartition", func(s *Space, args []Value) (Value, error) {
		u := unicodeOf(args, 0)
		head, tail, found, err := ustr.RPartition(u.runes, unicodeOf(args, 1).runes)
		if err != nil {
			return nil, err
		}
		if !found {
			return NewTuple(EmptyUnicode, EmptyUnicode, u), nil
		}
		return NewTuple(NewUnicode(head), args[1], NewUnicode(tail)), nil
	}, kU, kU)
}

func registerUnicodeTransform(t *DispatchTable) {
	for op, sides := range map[string][2]bool{
		"strip":  {true, true},
		"lstrip": {true, false},
		"rstrip": {false, true},
	} {
		op, sides := op, sides
		registerN(t, op, func(s *Space, args []Value) (Value, error) {
			u := unicodeOf(args, 0)
			var chars []rune
			if len(args) > 1 {
				switch c := args[1].(type) {
				case *NoneValue:
				case *Unicode:
					chars = append([]rune{}, c.runes...)
				default:
					return nil, newError(TypeError, "%s arg must be None or str", op)
				}
			}
			return sameOrNew(u, ustr.Strip(u.runes, chars, sides[0], sides[1])), nil
		}, 1, kU)
	}

	for op, fn := range map[string]func([]rune) []rune{
		"lower":      ustr.Lower,
		"upper":      ustr.Upper,
		"title":      ustr.Title,
		"capitalize": ustr.Capitalize,
		"swapcase":   ustr.SwapCase,
		"to_decimal": ustr.ToDecimal,
	} {
		fn := fn
		t.Register(op, func(s *Space, args []Value) (Value, error) {
			return NewUnicode(fn(unicodeOf(args, 0).runes)), nil
		}, kU)
	}

	for op, fn := range map[string]func([]rune) bool{
		"isspace":      ustr.IsSpace,
		"isalpha":      ustr.IsAlpha,
		"isalnum":      ustr.IsAlnum,
		"isdecimal":    ustr.IsDecimal,
		"isdigit":      ustr.IsDigit,
		"isnumeric":    ustr.IsNumeric,
		"islower":      ustr.IsLower,
		"isupper":      ustr.IsUpper,
		"istitle":      ustr.IsTitle,
		"isidentifier": ustr.IsIdentifier,
		"isprintable":  ustr.IsPrintable,
	} {
		fn := fn
		t.Register(op, func(s *Space, args []Value) (Value, error) {
			return NewBool(fn(unicodeOf(args, 0).runes)), nil
		}, kU)
	}
}

func fillArg(args []Value, i int) (rune, error) {
	if i >= len(args) {
		return ' ', nil
	}
	f, ok := args[i].(*Unicode)
	if !ok {
		return 0, newError(TypeError, "The fill character must be a unicode character, not %s", args[i].TypeName())
	}
	if len(f.runes) != 1 {
		return 0, &ustr.FillCharError{Length: len(f.runes)}
	}
	return f.runes[0], nil
}

func registerUnicodeJustify(t *DispatchTable) {
	for op, fn := range map[string]func([]rune, int, rune) ([]rune, bool, error){
		"center": ustr.Center,
		"ljust":  ustr.LJust,
		"rjust":  ustr.RJust,
	} {
		fn := fn
		registerN(t, op, func(s *Space, args []Value) (Value, error) {
			u := unicodeOf(args, 0)
			width, err := intArg(args[1], "width")
			if err != nil {
				return nil, err
			}
			fill, err := fillArg(args, 2)
			if err != nil {
				return nil, err
			}
			out, changed, err := fn(u.runes, width, fill)
			if err != nil {
				return nil, err
			}
			if !changed {
				return CreateIfSubclassed(u), nil
			}
			return NewUnicode(out), nil
		}, 1, kU, kA)
	}

	t.Register("zfill", func(s *Space, args []Value) (Value, error) {
		u := unicodeOf(args, 0)
		width, err := intArg(args[1], "width")
		if err != nil {
			return nil, err
		}
		out, changed, err := ustr.Zfill(u.runes, width)
		if err != nil {
			return nil, err
		}
		if !changed {
			return CreateIfSubclassed(u), nil
		}
		return NewUnicode(out), nil
	}, kU, kA)
}

func registerUnicodeRewrite(t *DispatchTable) {
	t.Register("join", unicodeJoin, kU, kA)

	registerN(t, "replace", func(s *Space, args []Value) (Value, error) {
		count := -1
		if len(args) > 3 {
			var err error
			if count, err = intArg(args[3], "count"); err != nil {
				return nil, err
			}
		}
		out, err := ustr.Replace(unicodeOf(args, 0).runes, unicodeOf(args, 1).runes, unicodeOf(args, 2).runes, count)
		if err != nil {
			return nil, err
		}
		return NewUnicode(out), nil
	}, 1, kU, kU, kU)

	registerN(t, "expandtabs", func(s *Space, args []Value) (Value, error) {
		tabsize := 8
		if len(args) > 1 {
			var err error
			if tabsize, err = intArg(args[1], "tabsize"); err != nil {
				return nil, err
			}
		}
		out, err := ustr.ExpandTabs(unicodeOf(args, 0).runes, tabsize)
		if err != nil {
			return nil, err
		}
		return NewUnicode(out), nil
	}, 1, kU)

	t.Register("translate", unicodeTranslate, kU, KindDict)

	registerN(t, "encode", func(s *Space, args []Value) (Value, error) {
		encoding, mode := "utf-8", "strict"
		for i, dst := range []*string{&encoding, &mode} {
			if len(args) > i+1 {
				v, ok := args[i+1].(*Unicode)
				if !ok {
					return nil, newError(TypeError, "encode() argument %d must be str, not %s", i+1, args[i+1].TypeName())
				}
				*dst = v.String()
			}
		}
		return s.encodeText(unicodeOf(args, 0), encoding, mode)
	}, 2, kU)
}

// unicodeJoin joins a list or tuple of strings. A single exact str item is
// returned as is.
func unicodeJoin(s *Space, args []Value) (Value, error) {
	sep := unicodeOf(args, 0)
	items, ok := sequenceItems(args[1])
	if !ok {
		if u, isStr := args[1].(*Unicode); isStr {
			items = make([]Value, len(u.runes))
			for i, r := range u.runes {
				items[i] = NewUnicode([]rune{r})
			}
		} else {
			return nil, newError(TypeError, "can only join an iterable, not %s", args[1].TypeName())
		}
	}
	if len(items) == 0 {
		return EmptyUnicode, nil
	}
	parts := make([][]rune, len(items))
	for i, item := range items {
		u, ok := item.(*Unicode)
		if !ok {
			return nil, newError(TypeError, "sequence item %d: expected str instance, %s found", i, item.TypeName())
		}
		parts[i] = u.runes
	}
	if len(items) == 1 && items[0].UserClass() == "" {
		return items[0], nil
	}
	out, err := ustr.Join(sep.runes, parts)
	if err != nil {
		return nil, err
	}
	return NewUnicode(out), nil
}

// unicodeTranslate maps code points through a dict keyed by ordinals whose
// values are None (delete), an ordinal or a string
func unicodeTranslate(s *Space, args []Value) (Value, error) {
	table := args[1].(*Dict)
	lookup := func(r rune) (ustr.Mapping, error) {
		v, found, err := table.Get(NewInt(int64(r)))
		if err != nil || !found {
			return ustr.Mapping{Action: ustr.MapKeep}, err
		}
		switch m := v.(type) {
		case *NoneValue:
			return ustr.Mapping{Action: ustr.MapDelete}, nil
		case *Int:
			if m.v < 0 || m.v > 0x10FFFF {
				return ustr.Mapping{}, &ustr.MappingError{Codepoint: r, Reason: "must be in range(0x110000)"}
			}
			return ustr.Mapping{Action: ustr.MapRune, Rune: rune(m.v)}, nil
		case *Unicode:
			return ustr.Mapping{Action: ustr.MapText, Text: m.runes}, nil
		}
		return ustr.Mapping{}, &ustr.MappingError{Codepoint: r, Reason: "must return integer, None or str"}
	}
	out, err := ustr.Translate(unicodeOf(args, 0).runes, lookup)
	if err != nil {
		return nil, err
	}
	return NewUnicode(out), nil
}
