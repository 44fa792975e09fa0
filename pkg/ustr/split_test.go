package ustr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strs(parts [][]rune) []string {
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = string(p)
	}
	return out
}

func TestSplitWhitespace(t *testing.T) {
	t.Run("collapses runs", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b", "c"}, strs(SplitWhitespace(r("  a b \t c "), 0)))
		assert.Empty(t, SplitWhitespace(r("   "), 0))
		assert.Empty(t, SplitWhitespace(r(""), -1))
	})

	t.Run("maxsplit keeps the remainder", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b c "}, strs(SplitWhitespace(r("a b c "), 1)))
		assert.Equal(t, []string{" a b", "c"}, strs(RSplitWhitespace(r(" a b c"), 1)))
	})

	t.Run("right split without limit", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b", "c"}, strs(RSplitWhitespace(r(" a  b c  "), -1)))
	})

	t.Run("unicode whitespace separates", func(t *testing.T) {
		assert.Equal(t, []string{"x", "y"}, strs(SplitWhitespace(r("x　y"), 0)))
	})
}

func TestSplit(t *testing.T) {
	t.Run("every separator", func(t *testing.T) {
		parts, err := Split(r("a,b,,c"), r(","), 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "", "c"}, strs(parts))
	})

	t.Run("maxsplit", func(t *testing.T) {
		parts, err := Split(r("a,b,,c"), r(","), 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", ",c"}, strs(parts))

		parts, err = RSplit(r("a,b,c"), r(","), 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"a,b", "c"}, strs(parts))
	})

	t.Run("multi code point separator", func(t *testing.T) {
		parts, err := RSplit(r("a::b::c"), r("::"), -1)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, strs(parts))
	})

	t.Run("empty separator", func(t *testing.T) {
		_, err := Split(r("abc"), r(""), 0)
		assert.ErrorIs(t, err, ErrEmptySeparator)
		_, err = RSplit(r("abc"), nil, 0)
		assert.ErrorIs(t, err, ErrEmptySeparator)
	})

	t.Run("split then join round trips", func(t *testing.T) {
		for _, s := range []string{"", "a", "a--b", "--a--", "----"} {
			parts, err := Split(r(s), r("--"), 0)
			require.NoError(t, err)
			joined, err := Join(r("--"), parts)
			require.NoError(t, err)
			assert.Equal(t, s, string(joined))
		}
	})
}

func TestSplitlines(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, strs(Splitlines(r("a\nb\r\nc"), false)))
	assert.Equal(t, []string{"a\n", "b\r\n", "c"}, strs(Splitlines(r("a\nb\r\nc"), true)))
	assert.Equal(t, []string{"a"}, strs(Splitlines(r("a\n"), false)))
	assert.Equal(t, []string{"", "x"}, strs(Splitlines(r("\rx"), false)))
	assert.Equal(t, []string{"p", "q"}, strs(Splitlines(r("p q"), false)))
	assert.Empty(t, Splitlines(r(""), true))
}

func TestPartition(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		head, tail, found, err := Partition(r("a=b=c"), r("="))
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "a", string(head))
		assert.Equal(t, "b=c", string(tail))

		head, tail, found, err = RPartition(r("a=b=c"), r("="))
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "a=b", string(head))
		assert.Equal(t, "c", string(tail))
	})

	t.Run("not found", func(t *testing.T) {
		head, tail, found, err := Partition(r("abc"), r("="))
		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, "abc", string(head))
		assert.Empty(t, tail)

		head, tail, found, err = RPartition(r("abc"), r("="))
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, head)
		assert.Equal(t, "abc", string(tail))
	})

	t.Run("empty separator", func(t *testing.T) {
		_, _, _, err := Partition(r("abc"), r(""))
		assert.ErrorIs(t, err, ErrEmptySeparator)
	})
}
