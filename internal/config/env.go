package config

import (
	"fmt"
	"strconv"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "ORGMODE_"

// LookupFunc looks up an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// envMapping maps environment variables to the setting they override.
var envMapping = []struct {
	name string
	set  func(c *Config, value string) error
}{
	{EnvPrefix + "LOG_LEVEL", func(c *Config, v string) error { c.Logging.Level = v; return nil }},
	{EnvPrefix + "LOG_FILE", func(c *Config, v string) error { c.Logging.File = v; return nil }},
	{EnvPrefix + "LANGUAGE_ID", func(c *Config, v string) error { c.Outline.LanguageID = v; return nil }},
	{EnvPrefix + "CHECKED_MARKER", func(c *Config, v string) error { c.Outline.CheckedMarker = v; return nil }},
	{EnvPrefix + "TAB_WIDTH", func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		c.Editor.TabWidth = n
		return nil
	}},
}

// ApplyEnv overrides settings from environment variables found by lookup.
// Empty values are treated as set.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if lookup == nil {
		return nil
	}
	for _, m := range envMapping {
		v, ok := lookup(m.name)
		if !ok {
			continue
		}
		if err := m.set(c, v); err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidEnv, m.name, v, err)
		}
	}
	return nil
}
