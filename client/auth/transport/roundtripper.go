package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/brightcms/backoffice/client/auth/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// ErrSessionExpired reports an unrecoverable authentication failure: the
// refresh call itself failed. The stored session has been cleared and the
// OnSessionExpired hook invoked; the user must log in again.
var ErrSessionExpired = errors.New("session expired")

// expirySkew refreshes proactively slightly before the token exp claim.
const expirySkew = 10 * time.Second

// RoundTripper attaches the current access token as a bearer credential to
// every outgoing request and drives the refresh-and-retry protocol on 401:
// refresh the session once, replay the original request once, and pass a
// second 401 through untouched. Concurrent 401s share a single in-flight
// refresh call, so only one refresh fires no matter how many requests
// failed simultaneously.
type RoundTripper struct {
	store      store.Store
	transport  http.RoundTripper
	refreshURL string
	onExpired  func()
	logger     zerolog.Logger
	group      singleflight.Group
}

func New(options ...Option) (*RoundTripper, error) {
	ret := &RoundTripper{
		transport: http.DefaultTransport,
		store:     store.NewMemoryStore(),
		logger:    zerolog.Nop(),
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.refreshURL == "" {
		return nil, errors.New("transport: refresh URL is required")
	}
	return ret, nil
}

func (r *RoundTripper) Store() store.Store {
	return r.store
}

func (r *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	token, _ := r.store.Token()

	// Refresh ahead of the 401 when the token carries a past exp claim.
	if token != "" && !refreshDisabled(ctx) && tokenExpired(token) {
		refreshed, err := r.refresh(ctx)
		if err != nil {
			return nil, err
		}
		token = refreshed
	}

	attempt := clone(req)
	if token != "" {
		attempt.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := r.transport.RoundTrip(attempt)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized || refreshDisabled(ctx) {
		return resp, nil
	}
	// Close the prior body so we don't leak.
	resp.Body.Close()

	token, err = r.refresh(ctx)
	if err != nil {
		return nil, err
	}

	retry := clone(req)
	retry.Header.Set("Authorization", "Bearer "+token)
	resp, err = r.transport.RoundTrip(retry)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		// The replay was rejected even with a fresh token; the session is
		// over. No further refresh attempt for this request.
		r.expire()
	}
	return resp, nil
}

// refresh exchanges the current session for a new access token. All callers
// that hit a 401 while one refresh is in flight await the same call. The
// exchange runs detached from the triggering caller's context: its result is
// shared by every waiter, and one caller's cancellation must neither fail the
// others nor end the session.
func (r *RoundTripper) refresh(ctx context.Context) (string, error) {
	ctx = context.WithoutCancel(ctx)
	v, err, _ := r.group.Do("refresh", func() (interface{}, error) {
		token, err := r.requestToken(ctx)
		if err != nil {
			r.expire()
			r.logger.Warn().Err(err).Msg("session refresh failed")
			return nil, fmt.Errorf("%w: %v", ErrSessionExpired, err)
		}
		if serr := r.store.SetToken(token); serr != nil {
			return nil, fmt.Errorf("failed to store refreshed token: %w", serr)
		}
		r.logger.Debug().Msg("session token refreshed")
		return token, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (r *RoundTripper) requestToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.refreshURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")
	if current, ok := r.store.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+current)
	}
	resp, err := r.transport.RoundTrip(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("refresh endpoint returned status %d", resp.StatusCode)
	}
	var out struct {
		Token string `json:"token"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to parse refresh response: %w", err)
	}
	if out.Token == "" {
		return "", errors.New("refresh response missing token")
	}
	return out.Token, nil
}

func (r *RoundTripper) expire() {
	_ = r.store.Clear()
	if r.onExpired != nil {
		r.onExpired()
	}
}

// tokenExpired inspects the exp claim without verifying the signature; the
// server remains the authority. Opaque non-JWT tokens never expire locally.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Until(exp.Time) < expirySkew
}
