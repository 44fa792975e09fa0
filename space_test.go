package objspace

import (
	"testing"

	"github.com/phroun/objspace/pkg/locale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpacesAreIndependent(t *testing.T) {
	t.Run("string size limit", func(t *testing.T) {
		small := DefaultConfig()
		small.Locale = "C.UTF-8"
		small.MaxStringSize = 10
		a := New(small)

		_, err := a.Call("mul", NewUnicodeString("ab"), NewInt(20))
		require.Error(t, err)
		assert.Equal(t, "OverflowError: new string is too long", err.Error())

		large := DefaultConfig()
		large.Locale = "C.UTF-8"
		large.MaxStringSize = 1000
		b := New(large)

		_, err = a.Call("mul", NewUnicodeString("ab"), NewInt(20))
		assert.True(t, Match(err, OverflowError))

		res, err := b.Call("mul", NewUnicodeString("ab"), NewInt(20))
		require.NoError(t, err)
		assert.Equal(t, 40, res.(*Unicode).Len())

		res, err = a.Call("mul", NewUnicodeString("ab"), NewInt(5))
		require.NoError(t, err)
		assert.Equal(t, 10, res.(*Unicode).Len())
	})

	t.Run("operands handed back are not limited", func(t *testing.T) {
		config := DefaultConfig()
		config.Locale = "C.UTF-8"
		config.MaxStringSize = 3
		s := New(config)
		long := NewUnicodeString("abcdef")
		res, err := s.Call("strip", long)
		require.NoError(t, err)
		assert.Same(t, long, res)

		_, err = s.Call("upper", long)
		assert.True(t, Match(err, OverflowError))
	})

	t.Run("locale", func(t *testing.T) {
		before, _ := locale.Current()

		latin := DefaultConfig()
		latin.Locale = "de_DE.ISO-8859-1"
		l := New(latin)
		u := newTestSpace(t)

		b, err := l.EncodeLocale(NewUnicodeString("é"), nil)
		require.NoError(t, err)
		assert.Equal(t, []byte{0xe9}, b.Bytes())

		b, err = u.EncodeLocale(NewUnicodeString("é"), nil)
		require.NoError(t, err)
		assert.Equal(t, []byte{0xc3, 0xa9}, b.Bytes())

		res, err := l.Call("encode", NewUnicodeString("é"), NewUnicodeString("locale"))
		require.NoError(t, err)
		assert.Equal(t, []byte{0xe9}, res.(*Bytes).Bytes())

		after, _ := locale.Current()
		assert.Equal(t, before, after)
	})
}
