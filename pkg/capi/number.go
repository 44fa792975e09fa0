package capi

import (
	"github.com/phroun/objspace"
)

// NumberCheck reports whether v supports the numeric protocol
func NumberCheck(v objspace.Value) bool {
	switch v.Kind() {
	case objspace.KindBool, objspace.KindInt, objspace.KindFloat:
		return true
	}
	return false
}

// IndexCheck reports whether v can be used as an index
func IndexCheck(v objspace.Value) bool {
	switch v.Kind() {
	case objspace.KindBool, objspace.KindInt:
		return true
	}
	return false
}

func (b *Bridge) NumberAdd(x, y objspace.Value) (objspace.Value, error) {
	return b.space.Binary("add", x, y)
}

func (b *Bridge) NumberMultiply(x, y objspace.Value) (objspace.Value, error) {
	return b.space.Binary("mul", x, y)
}

func (b *Bridge) NumberPower(x, y objspace.Value) (objspace.Value, error) {
	return b.space.Binary("pow", x, y)
}

func (b *Bridge) NumberAbsolute(x objspace.Value) (objspace.Value, error) {
	return b.space.Call("abs", x)
}

func (b *Bridge) NumberIndex(x objspace.Value) (objspace.Value, error) {
	return b.space.Call("index", x)
}

// NumberLong converts x to an int
func (b *Bridge) NumberLong(x objspace.Value) (objspace.Value, error) {
	return b.space.Call("int", x)
}

// NumberCoerceEx converts the numbers in *pa and *pb to a common kind and
// stores new references to the results in the slots. The caller keeps its
// references to the originals. It returns 1 without touching the slots
// when either value is not a number.
func (b *Bridge) NumberCoerceEx(pa, pb **Handle) (int, error) {
	if pa == nil || pb == nil || *pa == nil || *pb == nil {
		return -1, badInternalCall()
	}
	x, y := b.FromRef(*pa), b.FromRef(*pb)
	if !NumberCheck(x) || !NumberCheck(y) {
		return 1, nil
	}
	cx, cy, err := b.space.Coerce(x, y)
	if err != nil {
		return -1, err
	}
	*pa = b.MakeRef(cx)
	*pb = b.MakeRef(cy)
	return 0, nil
}
