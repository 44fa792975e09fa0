package objspace

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestKindNames(t *testing.T) {
	for k := KindNone; k <= KindDict; k++ {
		assert.Equal(t, k, KindFromString(k.String()), k.String())
	}
	assert.Equal(t, "str", KindUnicode.String())
	assert.Equal(t, KindInvalid, KindFromString("widget"))
}

func TestIsW(t *testing.T) {
	t.Run("scalars compare by payload", func(t *testing.T) {
		assert.True(t, IsW(NewInt(5), NewInt(5)))
		assert.True(t, IsW(NewUnicodeString("ab"), NewUnicodeString("ab")))
		assert.True(t, IsW(NewBytes([]byte("x")), NewBytes([]byte("x"))))
		assert.False(t, IsW(NewInt(5), NewInt(6)))
	})
	t.Run("different kinds", func(t *testing.T) {
		assert.False(t, IsW(NewInt(1), NewFloat(1)))
		assert.False(t, IsW(True, NewInt(1)))
	})
	t.Run("float identity is bitwise", func(t *testing.T) {
		nan := math.NaN()
		assert.True(t, IsW(NewFloat(nan), NewFloat(nan)))
		assert.False(t, IsW(NewFloat(0), NewFloat(math.Copysign(0, -1))))
	})
	t.Run("subclass instances are only themselves", func(t *testing.T) {
		a := NewUnicodeSubclass("S", []rune("x"))
		b := NewUnicodeSubclass("S", []rune("x"))
		assert.True(t, IsW(a, a))
		assert.False(t, IsW(a, b))
		assert.False(t, IsW(a, NewUnicodeString("x")))
	})
	t.Run("containers by pointer", func(t *testing.T) {
		l := NewList()
		assert.True(t, IsW(l, l))
		assert.False(t, IsW(NewList(), NewList()))
	})
	t.Run("singletons", func(t *testing.T) {
		assert.True(t, IsW(None, None))
		assert.True(t, IsW(NewBool(true), True))
	})
}

func TestEmptyUnicodeIsCanonical(t *testing.T) {
	assert.Same(t, EmptyUnicode, NewUnicode(nil))
	assert.Same(t, EmptyUnicode, NewUnicodeString(""))

	s := newTestSpace(t)
	res, err := s.Call("mul", NewUnicodeString("ab"), NewInt(0))
	require.NoError(t, err)
	assert.Same(t, EmptyUnicode, res)

	sub := NewUnicodeSubclass("S", nil)
	assert.NotSame(t, EmptyUnicode, sub)
}

func TestIdentifierW(t *testing.T) {
	t.Run("memoized once under concurrency", func(t *testing.T) {
		u := NewUnicodeString("naïve")
		results := make([]string, 16)
		var g errgroup.Group
		for i := range results {
			i := i
			g.Go(func() error {
				id, err := u.IdentifierW()
				results[i] = id
				return err
			})
		}
		require.NoError(t, g.Wait())
		for _, r := range results {
			assert.Equal(t, "naïve", r)
		}
		first, _ := u.IdentifierW()
		second, _ := u.IdentifierW()
		assert.Equal(t, first, second)
	})

	t.Run("lone surrogate", func(t *testing.T) {
		_, err := NewUnicode([]rune{'a', 0xD800}).IdentifierW()
		require.Error(t, err)
		assert.True(t, Match(err, UnicodeEncodeError))
		assert.Contains(t, err.Error(), "position 1")
	})
}

func TestSubclass(t *testing.T) {
	v, err := Subclass(NewFloat(2.5), "Money")
	require.NoError(t, err)
	assert.Equal(t, "Money", v.TypeName())
	assert.Equal(t, "Money", v.UserClass())

	base := CreateIfSubclassed(v)
	assert.Equal(t, "float", base.TypeName())
	assert.Equal(t, 2.5, base.(*Float).Value())

	plain := NewInt(1)
	assert.Same(t, plain, CreateIfSubclassed(plain))

	_, err = Subclass(NewList(), "Stack")
	require.Error(t, err)
	assert.Equal(t, "TypeError: type 'list' is not an acceptable base type", err.Error())
}

func TestDictKeys(t *testing.T) {
	d := NewDict()
	require.NoError(t, d.Set(NewInt(1), NewUnicodeString("int")))
	require.NoError(t, d.Set(NewFloat(1), NewUnicodeString("float")))
	require.NoError(t, d.Set(NewTuple(NewInt(1), NewUnicodeString("a")), None))
	assert.Equal(t, 2, d.Len())

	v, ok, err := d.Get(True)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "float", v.(*Unicode).String())
	assert.Equal(t, KindInt, d.Keys()[0].Kind())

	_, ok, err = d.Get(NewFloat(1.5))
	require.NoError(t, err)
	assert.False(t, ok)

	err = d.Set(NewDict(), None)
	assert.True(t, Match(err, TypeError))
}

func TestWrap(t *testing.T) {
	v, err := Wrap([]interface{}{1, "a", nil, 2.5, true, []byte("b")})
	require.NoError(t, err)
	s := newTestSpace(t)
	r, err := s.Repr(v)
	require.NoError(t, err)
	assert.Equal(t, "[1, 'a', None, 2.5, True, b'b']", r)

	_, err = Wrap(struct{}{})
	assert.Error(t, err)
}
