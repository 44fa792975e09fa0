package objspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds configuration for a Space
type Config struct {
	Debug         bool     `toml:"debug" yaml:"debug"`
	LogCategories []string `toml:"log_categories" yaml:"log_categories"`
	// Locale is a locale name ("de_DE.ISO-8859-15") or bare codeset; empty
	// means detect from the environment
	Locale string `toml:"locale" yaml:"locale"`
	// ScalarWidth and WcharWidth select surrogate merging in locale
	// transcoding (2 and 4 merge)
	ScalarWidth int `toml:"scalar_width" yaml:"scalar_width"`
	WcharWidth  int `toml:"wchar_width" yaml:"wchar_width"`
	// MaxStringSize bounds computed string lengths; 0 means the platform limit
	MaxStringSize int `toml:"max_string_size" yaml:"max_string_size"`
	// MaxHandleSize bounds foreign byte buffers; 0 means the platform limit
	MaxHandleSize int `toml:"max_handle_size" yaml:"max_handle_size"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Debug:         false,
		LogCategories: nil,
		Locale:        "",
		ScalarWidth:   4,
		WcharWidth:    4,
		MaxStringSize: 0,
		MaxHandleSize: 0,
	}
}

// LoadConfig reads a TOML (.toml) or YAML (.yaml, .yml) file over the
// defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	config := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), config); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%s: unsupported config format %q", path, filepath.Ext(path))
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// SaveConfig writes config as TOML
func SaveConfig(path string, config *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(config)
}

// Validate checks field ranges
func (c *Config) Validate() error {
	for _, w := range []int{c.ScalarWidth, c.WcharWidth} {
		if w != 2 && w != 4 {
			return fmt.Errorf("character width must be 2 or 4, got %d", w)
		}
	}
	if c.MaxStringSize < 0 || c.MaxHandleSize < 0 {
		return fmt.Errorf("size limits must not be negative")
	}
	if _, err := ParseCategories(strings.Join(c.LogCategories, ",")); err != nil {
		return err
	}
	return nil
}

// ApplyEnv overrides fields from OBJSPACE_DEBUG (a boolean, or a list of
// log categories which also enables debugging) and OBJSPACE_LOCALE
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv("OBJSPACE_DEBUG"); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		} else {
			if _, err := ParseCategories(v); err != nil {
				return fmt.Errorf("OBJSPACE_DEBUG: %w", err)
			}
			c.Debug = true
			c.LogCategories = strings.Split(v, ",")
		}
	}
	if v, ok := os.LookupEnv("OBJSPACE_LOCALE"); ok && v != "" {
		c.Locale = v
	}
	return nil
}
