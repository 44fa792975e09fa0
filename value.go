package objspace

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"
	"unicode/utf8"
)

// Kind identifies the variant of a boxed value
type Kind int

const (
	KindInvalid Kind = iota // Zero value - never carried by a live value
	KindNone
	KindBool
	KindInt
	KindFloat
	KindBytes
	KindUnicode
	KindTuple
	KindList
	KindDict
	KindAny // Dispatch wildcard, matches every kind
)

// String returns the user-facing type name of a Kind
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "NoneType"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBytes:
		return "bytes"
	case KindUnicode:
		return "str"
	case KindTuple:
		return "tuple"
	case KindList:
		return "list"
	case KindDict:
		return "dict"
	case KindAny:
		return "object"
	default:
		return "invalid"
	}
}

// KindFromString converts a type name to a Kind
func KindFromString(s string) Kind {
	switch strings.ToLower(s) {
	case "none", "nonetype":
		return KindNone
	case "bool":
		return KindBool
	case "int":
		return KindInt
	case "float":
		return KindFloat
	case "bytes":
		return KindBytes
	case "str", "unicode":
		return KindUnicode
	case "tuple":
		return KindTuple
	case "list":
		return KindList
	case "dict":
		return KindDict
	case "object", "any":
		return KindAny
	default:
		return KindInvalid
	}
}

// Value is a boxed value. The set of implementations is closed.
type Value interface {
	Kind() Kind
	// TypeName is the user class name for subclass instances, else Kind().String()
	TypeName() string
	// UserClass is the user subclass name, or "" for base instances
	UserClass() string
	isValue()
}

// userClass is embedded by variants that user code may subclass
type userClass struct {
	class string
}

func (u userClass) UserClass() string { return u.class }

func typeName(k Kind, class string) string {
	if class != "" {
		return class
	}
	return k.String()
}

// NoneValue is the type of None
type NoneValue struct{}

// None is the only NoneValue
var None = &NoneValue{}

func (*NoneValue) Kind() Kind        { return KindNone }
func (*NoneValue) TypeName() string  { return "NoneType" }
func (*NoneValue) UserClass() string { return "" }
func (*NoneValue) isValue()          {}

// Bool is a boxed boolean; True and False are its only instances
type Bool struct {
	v bool
}

var (
	True  = &Bool{v: true}
	False = &Bool{v: false}
)

// NewBool returns the True or False singleton
func NewBool(b bool) *Bool {
	if b {
		return True
	}
	return False
}

func (*Bool) Kind() Kind        { return KindBool }
func (*Bool) TypeName() string  { return "bool" }
func (*Bool) UserClass() string { return "" }
func (*Bool) isValue()          {}
func (b *Bool) Value() bool     { return b.v }

// Int returns 1 for True and 0 for False
func (b *Bool) Int() int64 {
	if b.v {
		return 1
	}
	return 0
}

func (b *Bool) String() string {
	if b.v {
		return "True"
	}
	return "False"
}

// Int is a boxed machine integer. Results that do not fit raise OverflowError.
type Int struct {
	userClass
	v int64
}

func NewInt(v int64) *Int           { return &Int{v: v} }
func (*Int) Kind() Kind             { return KindInt }
func (i *Int) TypeName() string     { return typeName(KindInt, i.class) }
func (*Int) isValue()               {}
func (i *Int) Value() int64         { return i.v }

// Float is a boxed float64
type Float struct {
	userClass
	v float64
}

func NewFloat(v float64) *Float     { return &Float{v: v} }
func (*Float) Kind() Kind           { return KindFloat }
func (f *Float) TypeName() string   { return typeName(KindFloat, f.class) }
func (*Float) isValue()             {}
func (f *Float) Value() float64     { return f.v }

// Bytes is an immutable byte string
type Bytes struct {
	userClass
	b []byte
}

// NewBytes boxes b without copying; the caller gives up ownership
func NewBytes(b []byte) *Bytes {
	if b == nil {
		b = []byte{}
	}
	return &Bytes{b: b}
}

func (*Bytes) Kind() Kind           { return KindBytes }
func (b *Bytes) TypeName() string   { return typeName(KindBytes, b.class) }
func (*Bytes) isValue()             {}

// Bytes returns the payload, which must not be modified
func (b *Bytes) Bytes() []byte { return b.b }
func (b *Bytes) Len() int      { return len(b.b) }

// Unicode is an immutable sequence of code points
type Unicode struct {
	userClass
	runes []rune
	ident atomic.Pointer[string] // UTF-8 identifier cache, set at most once
}

// EmptyUnicode is the canonical zero-length string
var EmptyUnicode = &Unicode{runes: []rune{}}

// NewUnicode boxes rs without copying. A zero-length sequence yields
// EmptyUnicode.
func NewUnicode(rs []rune) *Unicode {
	if len(rs) == 0 {
		return EmptyUnicode
	}
	return &Unicode{runes: rs}
}

// NewUnicodeString boxes the code points of a Go string
func NewUnicodeString(s string) *Unicode {
	return NewUnicode([]rune(s))
}

// NewUnicodeSubclass creates an instance of a user subclass of str. Subclass
// instances are never canonicalized.
func NewUnicodeSubclass(class string, rs []rune) *Unicode {
	if rs == nil {
		rs = []rune{}
	}
	return &Unicode{userClass: userClass{class: class}, runes: rs}
}

func (*Unicode) Kind() Kind         { return KindUnicode }
func (u *Unicode) TypeName() string { return typeName(KindUnicode, u.class) }
func (*Unicode) isValue()           {}

// Runes returns the payload, which must not be modified
func (u *Unicode) Runes() []rune { return u.runes }
func (u *Unicode) Len() int      { return len(u.runes) }

// String converts to a Go string; lone surrogates become U+FFFD
func (u *Unicode) String() string { return string(u.runes) }

// IdentifierW returns the UTF-8 encoding of u, computed on first use and
// cached for the lifetime of the value. Lone surrogates cannot be encoded.
func (u *Unicode) IdentifierW() (string, error) {
	if p := u.ident.Load(); p != nil {
		return *p, nil
	}
	buf := make([]byte, 0, len(u.runes))
	for i, r := range u.runes {
		if !utf8.ValidRune(r) {
			return "", &OperationError{
				Type: UnicodeEncodeError,
				Message: fmt.Sprintf("'utf-8' codec can't encode character '\\u%04x' in position %d: surrogates not allowed",
					r, i),
			}
		}
		buf = utf8.AppendRune(buf, r)
	}
	s := string(buf)
	u.ident.CompareAndSwap(nil, &s)
	return *u.ident.Load(), nil
}

// Tuple is an immutable sequence of values
type Tuple struct {
	items []Value
}

// EmptyTuple is the canonical zero-length tuple
var EmptyTuple = &Tuple{items: []Value{}}

func NewTuple(items ...Value) *Tuple {
	if len(items) == 0 {
		return EmptyTuple
	}
	return &Tuple{items: items}
}

func (*Tuple) Kind() Kind           { return KindTuple }
func (*Tuple) TypeName() string     { return "tuple" }
func (*Tuple) UserClass() string    { return "" }
func (*Tuple) isValue()             {}
func (t *Tuple) Items() []Value     { return t.items }
func (t *Tuple) Len() int           { return len(t.items) }

// List is a mutable sequence of values
type List struct {
	items []Value
}

func NewList(items ...Value) *List {
	return &List{items: append([]Value(nil), items...)}
}

func (*List) Kind() Kind            { return KindList }
func (*List) TypeName() string      { return "list" }
func (*List) UserClass() string     { return "" }
func (*List) isValue()              {}
func (l *List) Items() []Value      { return l.items }
func (l *List) Len() int            { return len(l.items) }
func (l *List) Append(v Value)      { l.items = append(l.items, v) }

// Dict is an insertion-ordered mapping from hashable values
type Dict struct {
	keys   []Value
	values []Value
	index  map[string]int
}

func NewDict() *Dict {
	return &Dict{index: make(map[string]int)}
}

func (*Dict) Kind() Kind            { return KindDict }
func (*Dict) TypeName() string      { return "dict" }
func (*Dict) UserClass() string     { return "" }
func (*Dict) isValue()              {}
func (d *Dict) Len() int            { return len(d.keys) }
func (d *Dict) Keys() []Value       { return d.keys }

// Get looks key up; unhashable keys are a TypeError
func (d *Dict) Get(key Value) (Value, bool, error) {
	k, err := hashKey(key)
	if err != nil {
		return nil, false, err
	}
	i, ok := d.index[k]
	if !ok {
		return nil, false, nil
	}
	return d.values[i], true, nil
}

// Set stores value under key, keeping the original key on overwrite
func (d *Dict) Set(key, value Value) error {
	k, err := hashKey(key)
	if err != nil {
		return err
	}
	if i, ok := d.index[k]; ok {
		d.values[i] = value
		return nil
	}
	d.index[k] = len(d.keys)
	d.keys = append(d.keys, key)
	d.values = append(d.values, value)
	return nil
}

// hashKey derives the lookup key of a hashable value. Numbers that compare
// equal share a key, so 1, 1.0 and True find the same entry.
func hashKey(v Value) (string, error) {
	switch x := v.(type) {
	case *NoneValue:
		return "n", nil
	case *Bool:
		return fmt.Sprintf("i%d", x.Int()), nil
	case *Int:
		return fmt.Sprintf("i%d", x.v), nil
	case *Float:
		if x.v == math.Trunc(x.v) && math.Abs(x.v) < 1<<63 {
			return fmt.Sprintf("i%d", int64(x.v)), nil
		}
		return fmt.Sprintf("f%v", x.v), nil
	case *Unicode:
		var b strings.Builder
		b.WriteByte('s')
		for _, r := range x.runes {
			b.WriteRune(r)
			if !utf8.ValidRune(r) {
				fmt.Fprintf(&b, "\x00%x", r)
			}
		}
		return b.String(), nil
	case *Bytes:
		return "b" + string(x.b), nil
	case *Tuple:
		var b strings.Builder
		b.WriteString("t(")
		for _, item := range x.items {
			k, err := hashKey(item)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&b, "%d:%s", len(k), k)
		}
		b.WriteByte(')')
		return b.String(), nil
	}
	return "", newError(TypeError, "unhashable type: '%s'", v.TypeName())
}

// Subclass returns a copy of v as an instance of the user class name.
// Only the scalar variants Int, Float, Bytes and Unicode can be subclassed.
func Subclass(v Value, class string) (Value, error) {
	uc := userClass{class: class}
	switch x := v.(type) {
	case *Int:
		return &Int{userClass: uc, v: x.v}, nil
	case *Float:
		return &Float{userClass: uc, v: x.v}, nil
	case *Bytes:
		return &Bytes{userClass: uc, b: x.b}, nil
	case *Unicode:
		return &Unicode{userClass: uc, runes: x.runes}, nil
	}
	return nil, newError(TypeError, "type '%s' is not an acceptable base type", v.TypeName())
}

// CreateIfSubclassed re-wraps a subclass instance as its base type and
// returns base instances unchanged
func CreateIfSubclassed(v Value) Value {
	if v.UserClass() == "" {
		return v
	}
	switch x := v.(type) {
	case *Int:
		return NewInt(x.v)
	case *Float:
		return NewFloat(x.v)
	case *Bytes:
		return NewBytes(x.b)
	case *Unicode:
		return NewUnicode(x.runes)
	}
	return v
}

// Wrap boxes a Go value
func Wrap(x interface{}) (Value, error) {
	switch v := x.(type) {
	case nil:
		return None, nil
	case Value:
		return v, nil
	case bool:
		return NewBool(v), nil
	case int:
		return NewInt(int64(v)), nil
	case int64:
		return NewInt(v), nil
	case float64:
		return NewFloat(v), nil
	case string:
		return NewUnicodeString(v), nil
	case []rune:
		return NewUnicode(v), nil
	case []byte:
		return NewBytes(append([]byte(nil), v...)), nil
	case []interface{}:
		items := make([]Value, len(v))
		for i, item := range v {
			w, err := Wrap(item)
			if err != nil {
				return nil, err
			}
			items[i] = w
		}
		return NewList(items...), nil
	case map[string]interface{}:
		d := NewDict()
		for k, item := range v {
			w, err := Wrap(item)
			if err != nil {
				return nil, err
			}
			if err := d.Set(NewUnicodeString(k), w); err != nil {
				return nil, err
			}
		}
		return d, nil
	}
	return nil, newError(TypeError, "cannot box Go value of type %T", x)
}
