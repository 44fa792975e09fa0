package objspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("toml", func(t *testing.T) {
		c, err := LoadConfig("testdata/config.toml")
		require.NoError(t, err)
		assert.True(t, c.Debug)
		assert.Equal(t, []string{"dispatch", "locale"}, c.LogCategories)
		assert.Equal(t, "de_DE.ISO-8859-15", c.Locale)
		assert.Equal(t, 2, c.ScalarWidth)
		assert.Equal(t, 4, c.WcharWidth)
		assert.Equal(t, 4096, c.MaxStringSize)
	})

	t.Run("yaml keeps defaults for missing fields", func(t *testing.T) {
		c, err := LoadConfig("testdata/config.yaml")
		require.NoError(t, err)
		assert.False(t, c.Debug)
		assert.Equal(t, []string{"memory"}, c.LogCategories)
		assert.Equal(t, 4, c.ScalarWidth)
		assert.Equal(t, 1024, c.MaxHandleSize)
	})

	t.Run("invalid width", func(t *testing.T) {
		_, err := LoadConfig("testdata/bad_width.toml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "2 or 4")
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := LoadConfig("testdata/ops.json")
		assert.Error(t, err)
	})
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	c := DefaultConfig()
	c.Locale = "C"
	c.LogCategories = []string{"type"}
	require.NoError(t, SaveConfig(path, c))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, c, loaded)
}

func TestApplyEnv(t *testing.T) {
	t.Run("boolean", func(t *testing.T) {
		t.Setenv("OBJSPACE_DEBUG", "true")
		t.Setenv("OBJSPACE_LOCALE", "C")
		c := DefaultConfig()
		require.NoError(t, c.ApplyEnv())
		assert.True(t, c.Debug)
		assert.Equal(t, "C", c.Locale)
	})

	t.Run("category list", func(t *testing.T) {
		t.Setenv("OBJSPACE_DEBUG", "dispatch,memory")
		c := DefaultConfig()
		require.NoError(t, c.ApplyEnv())
		assert.True(t, c.Debug)
		assert.Equal(t, []string{"dispatch", "memory"}, c.LogCategories)
	})

	t.Run("unknown category", func(t *testing.T) {
		t.Setenv("OBJSPACE_DEBUG", "bogus")
		c := DefaultConfig()
		assert.Error(t, c.ApplyEnv())
	})

	t.Run("unset", func(t *testing.T) {
		os.Unsetenv("OBJSPACE_DEBUG")
		c := DefaultConfig()
		require.NoError(t, c.ApplyEnv())
		assert.False(t, c.Debug)
	})
}
