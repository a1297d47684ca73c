package main

import (
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
)

const (
	// DefaultInstanceTimeout 等待 pdfium 实例的时间
	DefaultInstanceTimeout = 30 * time.Second

	DefaultLogLevel = "info"

	EnvLogLevel        = "COMPRESS_PDF_LOG_LEVEL"
	EnvInstanceTimeout = "COMPRESS_PDF_INSTANCE_TIMEOUT"
)

type Config struct {
	InputPath       string
	OutputPath      string
	Maximum         bool
	LogLevel        string
	LogJSON         bool
	Quiet           bool
	InstanceTimeout time.Duration
}

func defaultConfig() *Config {
	return &Config{
		LogLevel:        getEnv(EnvLogLevel, DefaultLogLevel),
		InstanceTimeout: getEnvDuration(EnvInstanceTimeout, DefaultInstanceTimeout),
	}
}

func (c *Config) level() hclog.Level {
	if c.Quiet {
		return hclog.Warn
	}
	level := hclog.LevelFromString(c.LogLevel)
	if level == hclog.NoLevel {
		return hclog.Info
	}
	return level
}

func (c *Config) newLogger() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:       "compress-pdf",
		Level:      c.level(),
		Output:     os.Stderr,
		JSONFormat: c.LogJSON,
		Color:      hclog.AutoColor,
	})
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
