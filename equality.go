package objspace

import (
	"bytes"
	"math"
)

// IsW is the identity relation ("a is b"). Values of different kinds are
// never identical. Otherwise the same pointer is identical, a user subclass
// instance is only identical to itself, and immutable scalars compare by
// payload. Containers are identical only to themselves.
func IsW(a, b Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() {
		return false
	}
	if a == b {
		return true
	}
	if a.UserClass() != "" || b.UserClass() != "" {
		return false
	}
	switch x := a.(type) {
	case *Int:
		return x.v == b.(*Int).v
	case *Float:
		return math.Float64bits(x.v) == math.Float64bits(b.(*Float).v)
	case *Bytes:
		return bytes.Equal(x.b, b.(*Bytes).b)
	case *Unicode:
		return runesEqual(x.runes, b.(*Unicode).runes)
	}
	// None and Bool are singletons; containers compare by pointer only
	return false
}

func runesEqual(a, b []rune) bool {
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

// EqW is value equality (a == b) through the eq operation
func (s *Space) EqW(a, b Value) (bool, error) {
	if IsW(a, b) && a.Kind() != KindFloat {
		return true, nil
	}
	res, err := s.Binary("eq", a, b)
	if err != nil {
		return false, err
	}
	return s.IsTrue(res), nil
}

// IsTrue is the truth value of v
func (s *Space) IsTrue(v Value) bool {
	switch x := v.(type) {
	case *NoneValue:
		return false
	case *Bool:
		return x.v
	case *Int:
		return x.v != 0
	case *Float:
		return x.v != 0
	case *Bytes:
		return len(x.b) != 0
	case *Unicode:
		return len(x.runes) != 0
	case *Tuple:
		return len(x.items) != 0
	case *List:
		return len(x.items) != 0
	case *Dict:
		return len(x.keys) != 0
	}
	return true
}
