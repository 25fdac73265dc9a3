package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/internal/dateutil"
	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/logging"
)

// session is the resolved configuration and logger of one command run.
type session struct {
	cfg    *config.Config
	logger *slog.Logger
	env    *Environment
}

// newSession loads configuration with priority
// CLI flags > environment > config file > defaults.
func newSession(common commonFlags, env *Environment) (*session, error) {
	envCfg := loadEnvConfig()

	name := common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				err = &configNotFoundError{err: err, searched: searchedFor(name)}
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	if common.logFormat != "" {
		cfg.Log.Format = common.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level := logging.ParseLevel(cfg.Log.Level)
	switch {
	case common.verbose:
		level = slog.LevelDebug
	case common.quiet:
		level = slog.LevelError
	}
	logger := logging.New(env.Stderr, logging.ParseFormat(cfg.Log.Format), level)
	envCfg.warnEnv(logger)

	return &session{cfg: cfg, logger: logger, env: env}, nil
}

// newConverter builds a converter from the session configuration.
func (s *session) newConverter(pdfTimeout time.Duration) Converter {
	opts := []md2html.Option{
		md2html.WithLogger(s.logger),
		md2html.WithDefaultLang(s.cfg.HTML.Lang),
		md2html.WithTemplateCacheSize(s.cfg.Template.CacheSize),
		md2html.WithPDFTimeout(pdfTimeout),
	}
	if s.cfg.Template.Default != "" {
		opts = append(opts, md2html.WithDefaultTemplatePath(s.cfg.Template.Default))
	}
	return s.env.NewConverter(opts...)
}

// resolveTimeout returns the PDF timeout: the flag when given, else the
// configured value (environment already applied). Zero means no timeout.
func (s *session) resolveTimeout(flagValue string) (time.Duration, error) {
	if flagValue == "" {
		return s.cfg.PDF.Timeout, nil
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil {
		return 0, fmt.Errorf("%w: --timeout %q: %v", ErrInvalidFlag, flagValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: --timeout must be positive, got %s", ErrInvalidFlag, d)
	}
	return d, nil
}

// formatDate renders t with the configured display format.
func (s *session) formatDate(t time.Time) string {
	out, err := dateutil.Format(s.cfg.Display.DateFormat, t)
	if err != nil {
		return t.Format(time.DateTime)
	}
	return out
}

func searchedFor(name string) []string {
	if fileutil.IsFilePath(name) {
		return nil
	}
	return config.SearchPaths(name)
}
