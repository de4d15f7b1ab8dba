package depot

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds global configuration read when storages, stores and caches
// are created.
var Config config = config{
	logger:        zap.NewNop(),
	storeCapacity: 64,
	cacheCapacity: 128,
}

type config struct {
	logger        *zap.Logger
	storeCapacity int
	cacheCapacity int
}

// fileConfig is the YAML shape accepted by Load.
type fileConfig struct {
	StoreCapacity int    `yaml:"store_capacity"`
	CacheCapacity int    `yaml:"cache_capacity"`
	LogLevel      string `yaml:"log_level"`
	LogEncoding   string `yaml:"log_encoding"`
}

// SetLogger replaces the package logger; nil restores the no-op logger.
func (c *config) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c.logger = logger
}

func (c *config) Logger() *zap.Logger {
	return c.logger
}

// SetStoreCapacity sets the initial capacity of newly registered stores.
func (c *config) SetStoreCapacity(n int) {
	c.storeCapacity = max(n, 0)
}

// SetCacheCapacity sets how many queries a world's cache can hold.
func (c *config) SetCacheCapacity(n int) {
	c.cacheCapacity = max(n, 0)
}

// Load applies settings from a YAML document. Zero or missing fields keep
// their current value.
func (c *config) Load(r io.Reader) error {
	var fc fileConfig
	if err := yaml.NewDecoder(r).Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	if fc.StoreCapacity < 0 {
		return ConfigError{Field: "store_capacity", Value: fc.StoreCapacity}
	}
	if fc.CacheCapacity < 0 {
		return ConfigError{Field: "cache_capacity", Value: fc.CacheCapacity}
	}

	var logger *zap.Logger
	if fc.LogLevel != "" {
		built, err := newLogger(fc.LogLevel, fc.LogEncoding)
		if err != nil {
			return err
		}
		logger = built
	}

	if fc.StoreCapacity > 0 {
		c.storeCapacity = fc.StoreCapacity
	}
	if fc.CacheCapacity > 0 {
		c.cacheCapacity = fc.CacheCapacity
	}
	if logger != nil {
		c.logger = logger
	}
	return nil
}

func newLogger(level, encoding string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, ConfigError{Field: "log_level", Value: level}
	}
	if encoding == "" {
		encoding = "json"
	}
	if encoding != "json" && encoding != "console" {
		return nil, ConfigError{Field: "log_encoding", Value: encoding}
	}
	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(lvl),
		Development:      false,
		Encoding:         encoding,
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
