package main

import (
	"context"
	"os"
	"time"

	"github.com/brightcms/backoffice"
	"github.com/rs/zerolog"
)

type options struct {
	Config    string `short:"c" long:"config" description:"YAML config file" default:"backoffice.yaml"`
	URL       string `short:"u" long:"url" env:"BACKOFFICE_URL" description:"back-office API base URL"`
	TokenPath string `long:"token-path" env:"BACKOFFICE_TOKEN_PATH" description:"file persisting the session token"`
	Timeout   int    `long:"timeout" description:"HTTP timeout in seconds" default:"30"`
	Verbose   bool   `short:"v" long:"verbose" description:"debug logging"`
}

type app struct {
	options options
}

func newApp() *app {
	return &app{}
}

func (a *app) logger() zerolog.Logger {
	level := zerolog.InfoLevel
	if a.options.Verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// client builds the SDK from the config file, flags and environment, in
// ascending precedence.
func (a *app) client() (*backoffice.Client, error) {
	config, err := backoffice.LoadConfig(a.options.Config)
	if err != nil {
		return nil, err
	}
	if a.options.URL != "" {
		config.BaseURL = a.options.URL
	}
	if a.options.TokenPath != "" {
		config.TokenPath = a.options.TokenPath
	}
	if config.Timeout == 0 {
		config.Timeout = time.Duration(a.options.Timeout) * time.Second
	}
	logger := a.logger()
	return backoffice.New(config,
		backoffice.WithLogger(logger),
		backoffice.WithNotifier(&logNotifier{logger: logger}),
		backoffice.WithOnSessionExpired(func() {
			logger.Warn().Msg("session expired, run `backctl login` again")
		}),
	)
}

func (a *app) context() context.Context {
	return context.Background()
}

// logNotifier renders SDK success/error events on the console.
type logNotifier struct {
	logger zerolog.Logger
}

func (n *logNotifier) Success(message string) { n.logger.Info().Msg(message) }
func (n *logNotifier) Error(message string)   { n.logger.Error().Msg(message) }
