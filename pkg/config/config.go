// Package config holds the viper-unmarshalled runtime configuration for the
// flexlay CLI. The library packages take their knobs as explicit arguments;
// this only configures the outer tooling.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the root configuration document.
type Config struct {
	Logger LoggerConfig `mapstructure:"logger"`
	Layout LayoutConfig `mapstructure:"layout"`
	Render RenderConfig `mapstructure:"render"`
}

// LoggerConfig controls the global zap logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level"`
	Format      string `mapstructure:"format"` // "console" or "json"
	ServiceName string `mapstructure:"service_name"`
	AddSource   bool   `mapstructure:"add_source"`

	// File output with rotation; empty disables the file sink.
	LogFile    string `mapstructure:"log_file"`
	MaxSize    int    `mapstructure:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
	Compress   bool   `mapstructure:"compress"`
}

// LayoutConfig carries defaults for the layout engine invocation.
type LayoutConfig struct {
	// ViewportWidth is used when the command line does not override it.
	// The root box must always resolve against an explicit width.
	ViewportWidth float64 `mapstructure:"viewport_width"`
	// Parallelism bounds concurrent sibling measurement; 1 is sequential.
	Parallelism int `mapstructure:"parallelism"`
}

// RenderConfig controls the debug raster renderer.
type RenderConfig struct {
	// Scale multiplies px lengths into image pixels.
	Scale float64 `mapstructure:"scale"`
	// Height is the image height in px; 0 sizes to the root box.
	Height float64 `mapstructure:"height"`
}

// SetDefaults registers every default so a missing config file still yields
// a complete Config.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "flexlay")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)

	v.SetDefault("layout.viewport_width", 800.0)
	v.SetDefault("layout.parallelism", 1)

	v.SetDefault("render.scale", 1.0)
	v.SetDefault("render.height", 0.0)
}

// Load unmarshals the current viper state into a Config.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
