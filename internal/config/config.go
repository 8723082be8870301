// Package config loads server configuration from TOML.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ryholmdahl/groblins/internal/world"
)

type Config struct {
	Server     ServerConfig     `toml:"server"`
	Logging    LoggingConfig    `toml:"logging"`
	Persist    PersistConfig    `toml:"persist"`
	World      world.Config     `toml:"world"`
	Generation world.GenOptions `toml:"generation"`
}

type ServerConfig struct {
	BindAddress string `toml:"bind_address"`
	TickRate    int    `toml:"tick_rate"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type PersistConfig struct {
	Path            string `toml:"path"`
	IntervalSeconds int    `toml:"interval_seconds"`
}

// Load reads the config file at path, layering it over defaults. A
// missing file is not an error; the defaults stand alone.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Defaults returns the configuration the server boots with when no
// file overrides it.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			BindAddress: "0.0.0.0:8080",
			TickRate:    15,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Persist: PersistConfig{
			Path:            "groblins.db",
			IntervalSeconds: 30,
		},
		World:      world.DefaultConfig(),
		Generation: world.DefaultGenOptions(),
	}
}

// NewLogger builds a zap logger from the logging section.
func NewLogger(cfg LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
