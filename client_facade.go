package backoffice

import (
	"net/http"

	"github.com/brightcms/backoffice/client"
	"github.com/brightcms/backoffice/client/auth"
	authstore "github.com/brightcms/backoffice/client/auth/store"
	"github.com/brightcms/backoffice/client/auth/transport"
	"github.com/brightcms/backoffice/resource"
	"github.com/brightcms/backoffice/store"
	"github.com/rs/zerolog"
)

// Client aggregates the authenticated API core and one collection store per
// resource family. Stores are independent: no two families share mutable
// state, and the token store is the only resource they all read through the
// shared transport.
type Client struct {
	config    *Config
	tokens    authstore.Store
	api       *client.Service
	notifier  client.Notifier
	logger    zerolog.Logger
	onExpired func()
	transport http.RoundTripper

	Auth     *auth.Service
	Content  *store.Store[Content]
	Services *store.Store[Service]
	Users    *store.Store[User]
	Contacts *store.Store[Contact]
}

// Option represents option
type Option func(*Client)

// WithNotifier sets the notifier receiving success/error events
func WithNotifier(notifier client.Notifier) Option {
	return func(c *Client) {
		c.notifier = notifier
	}
}

// WithLogger sets the logger
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithOnSessionExpired sets the hook routing the user to the login entry
// point after an unrecoverable authentication failure
func WithOnSessionExpired(fn func()) Option {
	return func(c *Client) {
		c.onExpired = fn
	}
}

// WithTokenStore overrides the token store derived from the config
func WithTokenStore(tokens authstore.Store) Option {
	return func(c *Client) {
		c.tokens = tokens
	}
}

// WithTransport sets the transport the session-aware RoundTripper wraps
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = rt
	}
}

// New wires the SDK from config: token store, session-aware transport, HTTP
// core, auth service and the four resource family stores.
func New(config *Config, options ...Option) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	ret := &Client{
		config:    config,
		notifier:  client.NopNotifier(),
		logger:    zerolog.Nop(),
		transport: http.DefaultTransport,
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.tokens == nil {
		if config.TokenPath != "" {
			ret.tokens = authstore.NewFileStore(config.TokenPath)
		} else {
			ret.tokens = authstore.NewMemoryStore()
		}
	}

	roundTripper, err := transport.New(
		transport.WithStore(ret.tokens),
		transport.WithTransport(ret.transport),
		transport.WithRefreshURL(config.BaseURL+"/auth/refresh-token"),
		transport.WithOnSessionExpired(ret.onExpired),
		transport.WithLogger(ret.logger),
	)
	if err != nil {
		return nil, err
	}
	httpClient := &http.Client{Transport: roundTripper}
	if config.Timeout > 0 {
		httpClient.Timeout = config.Timeout
	}
	ret.api = client.New(config.BaseURL,
		client.WithHTTPClient(httpClient),
		client.WithNotifier(ret.notifier),
		client.WithLogger(ret.logger),
	)
	ret.Auth = auth.New(ret.api, ret.tokens)

	pageSize := config.PageSize
	if pageSize <= 0 {
		pageSize = resource.DefaultPageSize
	}
	ret.Content = newStore[Content](ret, "/content", "content item", pageSize,
		resource.Filters{"sort": "-createdAt"})
	ret.Services = newStore[Service](ret, "/services", "service", pageSize,
		resource.Filters{"sort": "order"})
	ret.Users = newStore[User](ret, "/users", "user", pageSize,
		resource.Filters{"sort": "email"})
	ret.Contacts = newStore[Contact](ret, "/contacts", "contact", pageSize,
		resource.Filters{"sort": "-receivedAt"})
	return ret, nil
}

// API exposes the HTTP core for callers composing their own resource clients.
func (c *Client) API() *client.Service { return c.api }

// TokenStore exposes the session token store.
func (c *Client) TokenStore() authstore.Store { return c.tokens }

func newStore[T resource.Record](c *Client, path, name string, pageSize int, defaults resource.Filters) *store.Store[T] {
	return store.New(
		resource.NewClient[T](c.api, path, name),
		store.WithNotifier[T](c.notifier),
		store.WithLogger[T](c.logger),
		store.WithPageSize[T](pageSize),
		store.WithDefaultFilters[T](defaults),
	)
}
