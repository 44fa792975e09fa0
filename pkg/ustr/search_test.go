package ustr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func r(s string) []rune { return []rune(s) }

func TestNormalizeIndex(t *testing.T) {
	cases := []struct {
		length, index, want int
	}{
		{5, 0, 0},
		{5, 3, 3},
		{5, 9, 5},
		{5, -1, 4},
		{5, -5, 0},
		{5, -9, 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizeIndex(c.length, c.index), "index %d", c.index)
	}
}

func TestFind(t *testing.T) {
	s := r("hello world")

	t.Run("finds substring", func(t *testing.T) {
		assert.Equal(t, 6, Find(s, r("world"), 0, len(s)))
		assert.Equal(t, 2, Find(s, r("l"), 0, len(s)))
		assert.Equal(t, 9, RFind(s, r("l"), 0, len(s)))
	})

	t.Run("absent substring is -1", func(t *testing.T) {
		assert.Equal(t, -1, Find(s, r("z"), 0, len(s)))
		assert.Equal(t, -1, RFind(s, r("z"), 0, len(s)))
	})

	t.Run("window limits the search", func(t *testing.T) {
		assert.Equal(t, -1, Find(s, r("hello"), 1, len(s)))
		assert.Equal(t, 3, Find(s, r("l"), 3, len(s)))
		assert.Equal(t, -1, Find(s, r("world"), 0, -1))
		assert.Equal(t, 6, Find(s, r("world"), -5, len(s)))
		assert.Equal(t, 3, RFind(s, r("l"), 0, 4))
	})

	t.Run("empty needle", func(t *testing.T) {
		assert.Equal(t, 0, Find(s, r(""), 0, len(s)))
		assert.Equal(t, len(s), RFind(s, r(""), 0, len(s)))
	})
}

func TestIndex(t *testing.T) {
	_, err := Index(r("hello"), r("z"), 0, 5)
	require.ErrorIs(t, err, ErrSubstringNotFound)
	assert.Equal(t, "substring not found", err.Error())

	_, err = RIndex(r("hello"), r("z"), 0, 5)
	require.ErrorIs(t, err, ErrSubstringNotFound)

	i, err := RIndex(r("hello"), r("l"), 0, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, i)
}

func TestCount(t *testing.T) {
	assert.Equal(t, 2, Count(r("aaaa"), r("aa"), 0, 4))
	assert.Equal(t, 3, Count(r("abcabcabc"), r("abc"), 0, 9))
	assert.Equal(t, 1, Count(r("abcabcabc"), r("abc"), 1, 7))
	assert.Equal(t, 4, Count(r("abc"), r(""), 0, 3))
	assert.Equal(t, 0, Count(r("abc"), r("x"), 0, 3))
}

func TestStartsEndsWith(t *testing.T) {
	s := r("prefix-body-suffix")
	assert.True(t, StartsWith(s, r("prefix"), 0, len(s)))
	assert.False(t, StartsWith(s, r("body"), 0, len(s)))
	assert.True(t, StartsWith(s, r("body"), 7, len(s)))
	assert.True(t, EndsWith(s, r("suffix"), 0, len(s)))
	assert.True(t, EndsWith(s, r("body"), 0, 11))
	assert.False(t, EndsWith(s, r("suffix"), 0, -1))
}

func TestCompare(t *testing.T) {
	assert.Equal(t, 0, Compare(r("abc"), r("abc")))
	assert.Equal(t, -1, Compare(r("ab"), r("abc")))
	assert.Equal(t, 1, Compare(r("b"), r("abc")))
	assert.True(t, Equal(r("é"), r("é")))
	assert.False(t, Equal(r("a"), r("b")))
}
