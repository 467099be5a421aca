package common

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/viper"
)

// Config answers key lookups against the loaded configuration file, with
// defaulting and missing-key reporting. A missing key is never fatal here;
// callers decide whether an empty result aborts their operation.
type Config struct {
	v      *viper.Viper
	logger *slog.Logger
}

// LoadConfig reads the TOML configuration file at path.
func LoadConfig(path string, logger *slog.Logger) (*Config, error) {
	if logger == nil {
		logger = slog.Default()
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read configuration %s: %w", path, err)
	}
	return &Config{v: v, logger: logger}, nil
}

// Entry returns the value stored under section.key. When the key is absent
// the default is returned, with an Info line when a default exists and a
// Warn line when none does.
func (c *Config) Entry(section, key, def string) string {
	full := section + "." + key
	if c.v.IsSet(full) {
		return c.v.GetString(full)
	}
	if def != "" {
		c.logger.Info("config entry missing, using default",
			"section", section, "key", key, "default", def)
		return def
	}
	c.logger.Warn("config entry missing, no default provided",
		"section", section, "key", key)
	return ""
}

// EntryInt returns section.key parsed as an integer, falling back to def
// when the entry is absent or not a whole number.
func (c *Config) EntryInt(section, key string, def int) int {
	raw := c.Entry(section, key, strconv.Itoa(def))
	n, err := strconv.Atoi(raw)
	if err != nil {
		c.logger.Warn("config entry is not a whole number, using default",
			"section", section, "key", key, "value", raw, "default", def)
		return def
	}
	return n
}

// Section returns a configuration section's items as a key/value map, or
// nil when the section is absent. Viper lowercases the keys.
func (c *Config) Section(name string) map[string]string {
	if !c.v.IsSet(name) {
		c.logger.Warn("config section missing", "section", name)
		return nil
	}
	return c.v.GetStringMapString(name)
}
