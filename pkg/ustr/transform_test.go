package ustr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrip(t *testing.T) {
	assert.Equal(t, "ab", string(Strip(r("  ab \n"), nil, true, true)))
	assert.Equal(t, "ab \n", string(Strip(r("  ab \n"), nil, true, false)))
	assert.Equal(t, "  ab", string(Strip(r("  ab \n"), nil, false, true)))
	assert.Equal(t, "a", string(Strip(r("xyaxy"), r("xy"), true, true)))
	assert.Empty(t, Strip(r("xxxx"), r("x"), true, true))

	t.Run("idempotent", func(t *testing.T) {
		for _, s := range []string{"", " a ", "\t\tb", "c　"} {
			once := Strip(r(s), nil, true, true)
			assert.Equal(t, string(once), string(Strip(once, nil, true, true)))
		}
	})
}

func TestCaseMapping(t *testing.T) {
	assert.Equal(t, "abc", string(Lower(r("AbC"))))
	assert.Equal(t, "ÀÉ1", string(Upper(r("àé1"))))
	assert.Equal(t, "Ab1", string(SwapCase(r("aB1"))))
	assert.Equal(t, "Hello", string(Capitalize(r("hELLO"))))
	assert.Empty(t, Capitalize(r("")))
	assert.Equal(t, "Hello World", string(Title(r("hello wORLD"))))
	assert.Equal(t, "They'Re", string(Title(r("they're"))))
}

func TestToDecimal(t *testing.T) {
	assert.Equal(t, "12 3", string(ToDecimal(r("١٢　٣"))))
	assert.Equal(t, "plain 42", string(ToDecimal(r("plain 42"))))
	assert.Equal(t, "x", string(ToDecimal(r("x"))))
}

func TestJustify(t *testing.T) {
	t.Run("center", func(t *testing.T) {
		out, changed, err := Center(r("ab"), 5, ' ')
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, "  ab ", string(out))

		out, _, err = Center(r("abc"), 6, '*')
		require.NoError(t, err)
		assert.Equal(t, "*abc**", string(out))
	})

	t.Run("ljust and rjust", func(t *testing.T) {
		out, _, err := LJust(r("ab"), 4, '.')
		require.NoError(t, err)
		assert.Equal(t, "ab..", string(out))

		out, _, err = RJust(r("ab"), 4, '.')
		require.NoError(t, err)
		assert.Equal(t, "..ab", string(out))
	})

	t.Run("narrow width leaves input unchanged", func(t *testing.T) {
		for _, fn := range []func([]rune, int, rune) ([]rune, bool, error){Center, LJust, RJust} {
			out, changed, err := fn(r("abc"), 3, '-')
			require.NoError(t, err)
			assert.False(t, changed)
			assert.Equal(t, "abc", string(out))
		}
	})

	t.Run("zfill", func(t *testing.T) {
		cases := []struct {
			s     string
			width int
			want  string
		}{
			{"-42", 5, "-0042"},
			{"+1", 3, "+01"},
			{"42", 5, "00042"},
			{"", 3, "000"},
			{"abc", 2, "abc"},
		}
		for _, c := range cases {
			out, _, err := Zfill(r(c.s), c.width)
			require.NoError(t, err)
			assert.Equal(t, c.want, string(out), "zfill(%q, %d)", c.s, c.width)
		}
	})

	t.Run("width beyond MaxSize", func(t *testing.T) {
		saved := MaxSize
		MaxSize = 10
		defer func() { MaxSize = saved }()

		_, _, err := Center(r("a"), 11, ' ')
		var ovf *OverflowError
		require.ErrorAs(t, err, &ovf)
		_, _, err = Zfill(r("1"), 11)
		require.ErrorAs(t, err, &ovf)
	})
}

func TestPredicates(t *testing.T) {
	t.Run("empty is always false", func(t *testing.T) {
		for name, fn := range map[string]func([]rune) bool{
			"isspace": IsSpace, "isalpha": IsAlpha, "isdecimal": IsDecimal,
			"isdigit": IsDigit, "isnumeric": IsNumeric, "isprintable": IsPrintable,
			"isalnum": IsAlnum, "islower": IsLower, "isupper": IsUpper,
			"istitle": IsTitle, "isidentifier": IsIdentifier,
		} {
			assert.False(t, fn(nil), name)
		}
	})

	assert.True(t, IsSpace(r(" \t\n")))
	assert.True(t, IsAlpha(r("abcé")))
	assert.False(t, IsAlpha(r("ab1")))
	assert.True(t, IsDecimal(r("0123")))
	assert.True(t, IsDigit(r("²")))
	assert.False(t, IsDecimal(r("²")))
	assert.True(t, IsNumeric(r("½")))
	assert.True(t, IsAlnum(r("abc123")))
	assert.True(t, IsLower(r("abc1")))
	assert.False(t, IsLower(r("Abc")))
	assert.True(t, IsUpper(r("ABC 1")))
	assert.True(t, IsTitle(r("Hello World")))
	assert.False(t, IsTitle(r("HEllo")))
	assert.False(t, IsTitle(r("123")))
	assert.True(t, IsIdentifier(r("_a1")))
	assert.True(t, IsIdentifier(r("café")))
	assert.False(t, IsIdentifier(r("1a")))
	assert.False(t, IsIdentifier(r("a-b")))
	assert.True(t, IsPrintable(r("abc ")))
	assert.False(t, IsPrintable(r("a\n")))
}

func TestEscape(t *testing.T) {
	cases := []struct {
		name string
		s    string
		opts EscapeOptions
		want string
	}{
		{"plain", "abc", EscapeOptions{Quotes: true}, `'abc'`},
		{"single quote switches", "a'b", EscapeOptions{Quotes: true}, `"a'b"`},
		{"both quotes", `a'"b`, EscapeOptions{Quotes: true}, `'a\'"b'`},
		{"controls", "a\tb\n\r\x01", EscapeOptions{Quotes: true}, `'a\tb\n\r\x01'`},
		{"backslash", `\`, EscapeOptions{Quotes: true}, `'\\'`},
		{"latin1 escaped", "é", EscapeOptions{Quotes: true}, `'\xe9'`},
		{"latin1 passed", "é", EscapeOptions{Quotes: true, PassPrintable: true}, `'é'`},
		{"bmp", "€", EscapeOptions{}, `\u20ac`},
		{"astral", "\U0001F600", EscapeOptions{}, `\U0001f600`},
		{"prefix", "x", EscapeOptions{Quotes: true, Prefix: "b"}, `b'x'`},
		{"unquoted backslash", `a\b`, EscapeOptions{}, `a\\b`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Escape(r(c.s), c.opts))
		})
	}
}
