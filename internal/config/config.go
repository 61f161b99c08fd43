// Package config loads settings for the colorview commands.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. COLORVIEW_WIDTH.
const EnvPrefix = "COLORVIEW"

// ErrInvalid is returned when a loaded value is out of range.
var ErrInvalid = errors.New("config: invalid value")

// Config holds command settings.
type Config struct {
	Width    int
	Height   int
	Backend  string
	Mapping  string
	Segments int
	Initial  Selection
	LogLevel string `mapstructure:"log_level"`
	Output   string
	Script   string
}

// Selection is the initial color in cylindrical form. Hue is in turns.
type Selection struct {
	Hue        float64
	Saturation float64
	Value      float64
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("width", 640)
	v.SetDefault("height", 480)
	v.SetDefault("backend", "")
	v.SetDefault("mapping", "hsv")
	v.SetDefault("segments", 64)
	v.SetDefault("initial.hue", 0.0)
	v.SetDefault("initial.saturation", 1.0)
	v.SetDefault("initial.value", 1.0)
	v.SetDefault("log_level", "warn")
	v.SetDefault("output", "colorview.png")
	v.SetDefault("script", "")
}

// Load reads defaults, the optional file at path (any format viper
// recognizes by extension) and COLORVIEW_* environment overrides.
// An empty path skips the file.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks ranges.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalid, c.Width, c.Height)
	case c.Segments < 3:
		return fmt.Errorf("%w: segments %d", ErrInvalid, c.Segments)
	case c.Initial.Saturation < 0 || c.Initial.Saturation > 1:
		return fmt.Errorf("%w: initial.saturation %v", ErrInvalid, c.Initial.Saturation)
	case c.Initial.Value < 0 || c.Initial.Value > 1:
		return fmt.Errorf("%w: initial.value %v", ErrInvalid, c.Initial.Value)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalid, s)
	}
	return l, nil
}
