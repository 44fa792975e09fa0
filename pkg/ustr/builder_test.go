package ustr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	t.Run("appends and builds", func(t *testing.T) {
		b := NewBuilder(4)
		b.Append('a')
		b.AppendSlice([]rune("bc"))
		b.AppendRepeat('-', 2)
		assert.Equal(t, 5, b.Len())
		assert.Equal(t, "abc--", string(b.Build()))
	})

	t.Run("negative hint is tolerated", func(t *testing.T) {
		b := NewBuilder(-3)
		b.Append('x')
		assert.Equal(t, "x", string(b.Build()))
	})

	t.Run("mutation after build panics", func(t *testing.T) {
		b := NewBuilder(0)
		b.Append('a')
		_ = b.Build()
		assert.Panics(t, func() { b.Append('b') })
		assert.Panics(t, func() { b.AppendSlice([]rune("b")) })
		assert.Panics(t, func() { b.Build() })
	})
}

func TestCheckedArithmetic(t *testing.T) {
	t.Run("in range", func(t *testing.T) {
		n, err := CheckedAdd("join", 3, 4)
		require.NoError(t, err)
		assert.Equal(t, 7, n)

		n, err = CheckedMul("join", 3, 4)
		require.NoError(t, err)
		assert.Equal(t, 12, n)
	})

	t.Run("overflow is reported", func(t *testing.T) {
		_, err := CheckedAdd("replace", math.MaxInt, 1)
		var ovf *OverflowError
		require.ErrorAs(t, err, &ovf)
		assert.Equal(t, "replace string is too long", err.Error())

		_, err = CheckedMul("join", math.MaxInt/2, 3)
		require.ErrorAs(t, err, &ovf)
	})

	t.Run("lowered MaxSize is honoured", func(t *testing.T) {
		saved := MaxSize
		MaxSize = 10
		defer func() { MaxSize = saved }()

		_, err := CheckedAdd("expandtabs", 6, 5)
		require.Error(t, err)
		assert.Equal(t, "new string is too long", err.Error())
	})
}
