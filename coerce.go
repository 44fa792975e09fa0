package objspace

// coercions lists, per kind, the kinds its values widen to for numeric
// operations
var coercions = map[Kind][]Kind{
	KindBool: {KindInt, KindFloat},
	KindInt:  {KindFloat},
}

// CanCoerce reports whether values of kind from widen to kind to
func CanCoerce(from, to Kind) bool {
	for _, k := range coercions[from] {
		if k == to {
			return true
		}
	}
	return false
}

// coerceTo widens v to kind k, or returns ok=false
func coerceTo(v Value, k Kind) (Value, bool) {
	if v.Kind() == k {
		return v, true
	}
	if !CanCoerce(v.Kind(), k) {
		return nil, false
	}
	switch x := v.(type) {
	case *Bool:
		if k == KindInt {
			return NewInt(x.Int()), true
		}
		return NewFloat(float64(x.Int())), true
	case *Int:
		return NewFloat(float64(x.v)), true
	}
	return nil, false
}

// coercePair converts whichever operand widens to the other's kind. Two
// bools both become ints.
func coercePair(a, b Value) (Value, Value, bool) {
	ak, bk := a.Kind(), b.Kind()
	if ak == bk {
		if ak == KindBool {
			ca, _ := coerceTo(a, KindInt)
			cb, _ := coerceTo(b, KindInt)
			return ca, cb, true
		}
		return nil, nil, false
	}
	if ca, ok := coerceTo(a, bk); ok {
		return ca, b, true
	}
	if cb, ok := coerceTo(b, ak); ok {
		return a, cb, true
	}
	return nil, nil, false
}

// Coerce returns a and b converted to a common numeric kind. Operands that
// already share a kind are returned as they are. Anything else is a
// TypeError.
func (s *Space) Coerce(a, b Value) (Value, Value, error) {
	if !isNumber(a) || !isNumber(b) {
		return nil, nil, newError(TypeError, "number coercion failed for '%s' and '%s'", a.TypeName(), b.TypeName())
	}
	if a.Kind() == b.Kind() {
		return a, b, nil
	}
	ca, cb, _ := coercePair(a, b)
	s.logger.TraceCat(CatType, "coerced (%s, %s) to (%s, %s)", a.TypeName(), b.TypeName(), ca.TypeName(), cb.TypeName())
	return ca, cb, nil
}

func isNumber(v Value) bool {
	switch v.Kind() {
	case KindBool, KindInt, KindFloat:
		return true
	}
	return false
}
