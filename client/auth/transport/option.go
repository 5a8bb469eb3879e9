package transport

import (
	"net/http"

	"github.com/brightcms/backoffice/client/auth/store"
	"github.com/rs/zerolog"
)

type Option func(*RoundTripper)

// WithStore sets the token store
func WithStore(store store.Store) Option {
	return func(t *RoundTripper) {
		t.store = store
	}
}

// WithTransport sets the underlying transport
func WithTransport(transport http.RoundTripper) Option {
	return func(t *RoundTripper) {
		t.transport = transport
	}
}

// WithRefreshURL sets the absolute session-refresh endpoint URL
func WithRefreshURL(URL string) Option {
	return func(t *RoundTripper) {
		t.refreshURL = URL
	}
}

// WithOnSessionExpired sets the hook invoked after an unrecoverable
// authentication failure, typically routing the user to the login entry point.
func WithOnSessionExpired(fn func()) Option {
	return func(t *RoundTripper) {
		t.onExpired = fn
	}
}

// WithLogger sets the logger
func WithLogger(logger zerolog.Logger) Option {
	return func(t *RoundTripper) {
		t.logger = logger
	}
}
