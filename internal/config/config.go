// Package config loads and validates the YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/alnah/go-md2html/internal/assets"
	"github.com/alnah/go-md2html/internal/dateutil"
	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/logging"
	"github.com/alnah/go-md2html/internal/pipeline"
	"github.com/alnah/go-md2html/internal/watch"
	"github.com/alnah/go-md2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigInvalid   = errors.New("invalid config")
)

// UserConfigDirName is the directory searched under os.UserConfigDir.
const UserConfigDirName = "go-md2html"

// Defaults, shared with the packages that apply them.
const (
	DefaultCacheSize  = assets.DefaultCacheSize
	DefaultLang       = pipeline.DefaultLang
	DefaultWatchDelay = watch.DefaultDelay
	MaxCacheSize      = 1024
)

var langPattern = regexp.MustCompile(`^[A-Za-z]{2,8}(-[A-Za-z0-9]{1,8})*$`)

// Config holds every configurable setting.
type Config struct {
	Template TemplateConfig `yaml:"template"`
	HTML     HTMLConfig     `yaml:"html"`
	PDF      PDFConfig      `yaml:"pdf"`
	Watch    WatchConfig    `yaml:"watch"`
	Log      LogConfig      `yaml:"log"`
	Display  DisplayConfig  `yaml:"display"`
}

// TemplateConfig defines template resolution options.
type TemplateConfig struct {
	Default   string `yaml:"default"`   // canonical template path (empty = next to executable)
	CacheSize int    `yaml:"cacheSize"` // extracted templates kept in memory
}

// HTMLConfig defines document output options.
type HTMLConfig struct {
	Lang string `yaml:"lang"` // used when front matter has no lang
}

// PDFConfig defines PDF rendering options.
type PDFConfig struct {
	Timeout time.Duration `yaml:"timeout"` // 0 = no timeout
}

// WatchConfig defines watcher options.
type WatchConfig struct {
	Delay time.Duration `yaml:"delay"` // quiet period before handling an event
}

// LogConfig defines logger options.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DisplayConfig defines CLI display options.
type DisplayConfig struct {
	DateFormat string `yaml:"dateFormat"` // token format or preset for list/info
}

// Validate checks every section. Called by LoadConfig, and available for
// callers that build a Config by hand.
func (c *Config) Validate() error {
	err := validation.Errors{
		"template": c.Template.Validate(),
		"html":     c.HTML.Validate(),
		"pdf":      c.PDF.Validate(),
		"watch":    c.Watch.Validate(),
		"log":      c.Log.Validate(),
		"display":  c.Display.Validate(),
	}.Filter()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}
	return nil
}

// Validate validates the template section.
func (c *TemplateConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Default, validation.Length(0, 4096)),
		validation.Field(&c.CacheSize, validation.Required, validation.Min(1), validation.Max(MaxCacheSize)),
	)
}

// Validate validates the html section.
func (c *HTMLConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Lang, validation.Required, validation.Match(langPattern)),
	)
}

// Validate validates the pdf section.
func (c *PDFConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
}

// Validate validates the watch section.
func (c *WatchConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Delay, validation.Min(time.Duration(0)), validation.Max(10*time.Second)),
	)
}

// Validate validates the log section.
func (c *LogConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Level, validation.In(toAny(logging.Levels)...)),
		validation.Field(&c.Format, validation.In(toAny(logging.Formats)...)),
	)
}

// Validate validates the display section.
func (c *DisplayConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DateFormat, validation.By(func(v any) error {
			s, _ := v.(string)
			if s == "" {
				return nil
			}
			_, err := dateutil.Layout(s)
			return err
		})),
	)
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Template: TemplateConfig{CacheSize: DefaultCacheSize},
		HTML:     HTMLConfig{Lang: DefaultLang},
		Watch:    WatchConfig{Delay: DefaultWatchDelay},
		Log:      LogConfig{Level: "info", Format: string(logging.FormatPretty)},
		Display:  DisplayConfig{DateFormat: dateutil.DefaultDateFormat},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Values absent from the file keep their defaults.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := yamlutil.DecodeFile(configPath, cfg); err != nil {
		switch {
		case errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		case errors.Is(err, yamlutil.ErrEmptyInput):
			// An empty file is a valid config holding only defaults.
		default:
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns every location tried for a config name, in order:
// current directory, then the user config directory; .yaml before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, UserConfigDirName, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
