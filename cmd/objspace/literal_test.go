package main

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/phroun/objspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		lit  string
		repr string
	}{
		{"42", "42"},
		{"-1.5", "-1.5"},
		{"None", "None"},
		{"True", "True"},
		{"hello", "'hello'"},
		{`'a\tb'`, `'a\tb'`},
		{`b'\xff\x00'`, `b'\xff\x00'`},
		{"[1, 'a']", "[1, 'a']"},
		{"''", "''"},
	}

	config := objspace.DefaultConfig()
	config.Locale = "C.UTF-8"
	space := objspace.New(config)
	for _, tt := range tests {
		t.Run(tt.lit, func(t *testing.T) {
			v, err := parseLiteral(tt.lit)
			require.NoError(t, err)
			r, err := space.Repr(v)
			require.NoError(t, err)
			assert.Equal(t, tt.repr, r)
		})
	}

	_, err := parseLiteral(`b'abc`)
	assert.Error(t, err)
}

func TestSplitFields(t *testing.T) {
	fields, err := splitFields(`center 'a b' 6  "*"`)
	require.NoError(t, err)
	assert.Equal(t, []string{"center", "'a b'", "6", `"*"`}, fields)

	fields, err = splitFields(`join ', ' ['x', 'y z']`)
	require.NoError(t, err)
	assert.Equal(t, []string{"join", "', '", "['x', 'y z']"}, fields)

	_, err = splitFields(`upper 'abc`)
	assert.Error(t, err)
	_, err = splitFields(`len [1, 2`)
	assert.Error(t, err)
}

func TestREPLLoop(t *testing.T) {
	config := objspace.DefaultConfig()
	config.Locale = "C.UTF-8"
	space := objspace.New(config)

	in := "upper 'abc'\nadd 1 'x'\n\nmul 'ab' 2\nquit\nlen 'never'\n"
	var out bytes.Buffer
	require.NoError(t, replLoop(space, bufio.NewScanner(strings.NewReader(in)), &out))
	assert.Equal(t,
		"'ABC'\r\nTypeError: unsupported operand type(s) for +: 'int' and 'str'\r\n'abab'\r\n",
		out.String())
}
