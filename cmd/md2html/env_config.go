package main

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-md2html/internal/config"
)

// envPrefix starts every environment variable the CLI reads.
const envPrefix = "MD2HTML_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // MD2HTML_CONFIG: config file name or path
	Template   string        // MD2HTML_TEMPLATE: application default template
	Lang       string        // MD2HTML_LANG: default document language
	Timeout    time.Duration // MD2HTML_TIMEOUT: PDF page load timeout
	WatchDelay time.Duration // MD2HTML_WATCH_DELAY: watcher quiet period
	LogLevel   string        // MD2HTML_LOG_LEVEL: debug, info, warn, error
	LogFormat  string        // MD2HTML_LOG_FORMAT: pretty, json, text

	hasWatchDelay bool
	invalid       []string // set variables whose value could not be parsed
}

// knownEnvVars lists valid MD2HTML_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2HTML_CONFIG":      true,
	"MD2HTML_TEMPLATE":    true,
	"MD2HTML_LANG":        true,
	"MD2HTML_TIMEOUT":     true,
	"MD2HTML_WATCH_DELAY": true,
	"MD2HTML_LOG_LEVEL":   true,
	"MD2HTML_LOG_FORMAT":  true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized MD2HTML_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MD2HTML_CONFIG"),
		Template:   os.Getenv("MD2HTML_TEMPLATE"),
		Lang:       os.Getenv("MD2HTML_LANG"),
		LogLevel:   os.Getenv("MD2HTML_LOG_LEVEL"),
		LogFormat:  os.Getenv("MD2HTML_LOG_FORMAT"),
	}

	if v := os.Getenv("MD2HTML_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		} else {
			cfg.invalid = append(cfg.invalid, "MD2HTML_TIMEOUT")
		}
	}

	if v := os.Getenv("MD2HTML_WATCH_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			cfg.WatchDelay = d
			cfg.hasWatchDelay = true
		} else {
			cfg.invalid = append(cfg.invalid, "MD2HTML_WATCH_DELAY")
		}
	}

	return cfg
}

// warnEnv logs unrecognized MD2HTML_* variables and unparsable values.
// Helps catch typos like MD2HTML_TEMPLTE.
func (e *envConfig) warnEnv(logger *slog.Logger) {
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			logger.Warn("unknown environment variable (typo?)", slog.String("name", name))
		}
	}
	for _, name := range e.invalid {
		logger.Warn("ignoring invalid environment value", slog.String("name", name), slog.String("value", os.Getenv(name)))
	}
}

// applyEnvConfig applies environment variable values over the loaded
// config. Priority is CLI flags > env vars > config file > defaults; CLI
// flags are applied afterwards by the caller.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Template != "" {
		cfg.Template.Default = env.Template
	}
	if env.Lang != "" {
		cfg.HTML.Lang = env.Lang
	}
	if env.Timeout > 0 {
		cfg.PDF.Timeout = env.Timeout
	}
	if env.hasWatchDelay {
		cfg.Watch.Delay = env.WatchDelay
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		cfg.Log.Format = env.LogFormat
	}
}
