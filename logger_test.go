package objspace

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerRouting(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewLogger(false)
	l.SetOutput(&out, &errOut)

	l.DebugCat(CatDispatch, "hidden")
	l.WarnCat(CatLocale, "switching to %s", "C")
	assert.Empty(t, out.String())
	assert.Equal(t, "[objspace:locale WARN] switching to C\n", errOut.String())

	l.SetEnabled(true)
	l.DebugCat(CatDispatch, "still hidden")
	assert.Empty(t, out.String())

	l.EnableCategory(CatDispatch)
	l.DebugCat(CatDispatch, "resolved %s", "add")
	l.TraceCat(CatMemory, "not selected")
	assert.Equal(t, "[DEBUG:dispatch] resolved add\n", out.String())

	l.DisableCategory(CatDispatch)
	assert.False(t, l.IsCategoryEnabled(CatDispatch))
	l.EnableAllCategories()
	for _, cat := range AllCategories {
		assert.True(t, l.IsCategoryEnabled(cat))
	}

	var nilLogger *Logger
	assert.NotPanics(t, func() { nilLogger.Error("ignored") })
}

func TestParseCategories(t *testing.T) {
	cats, err := ParseCategories("Dispatch, memory")
	require.NoError(t, err)
	assert.Equal(t, []LogCategory{CatDispatch, CatMemory}, cats)

	cats, err = ParseCategories("all")
	require.NoError(t, err)
	assert.Equal(t, AllCategories, cats)

	cats, err = ParseCategories("")
	require.NoError(t, err)
	assert.Empty(t, cats)

	_, err = ParseCategories("dispatch,nope")
	assert.Error(t, err)
}

func TestSpaceLogsThroughCategories(t *testing.T) {
	config := DefaultConfig()
	config.Debug = true
	config.Locale = "C.UTF-8"
	config.LogCategories = []string{"dispatch"}
	s := New(config)

	var out, errOut bytes.Buffer
	s.Logger().SetOutput(&out, &errOut)
	_, err := s.Call("add", NewUnicodeString("a"), NewInt(1))
	require.Error(t, err)
	assert.Contains(t, out.String(), "[DEBUG:dispatch] no implementation for add(str, int)")
}

func TestStderrSupportsColor(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	assert.False(t, StderrSupportsColor())

	l := NewLogger(false)
	assert.False(t, l.colorEnabled)
}
