package client

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Option represents option
type Option func(s *Service)

// WithHTTPClient sets the underlying HTTP client, typically one whose
// transport is the session-aware RoundTripper.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(s *Service) {
		s.httpClient = httpClient
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		s.httpClient.Timeout = timeout
	}
}

// WithNotifier sets the notifier
func WithNotifier(notifier Notifier) Option {
	return func(s *Service) {
		s.notifier = notifier
	}
}

// WithLogger sets the logger
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}
