package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/brightcms/backoffice/client/auth/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// authServer is a fake API accepting one specific bearer token and issuing a
// replacement from its refresh endpoint.
type authServer struct {
	*httptest.Server
	validToken   atomic.Value
	refreshToken string
	refreshFails bool
	// refreshStale hands out a token the resource endpoint still rejects
	refreshStale bool
	refreshDelay time.Duration
	// refreshStarted, when set, is closed as the first refresh call arrives
	refreshStarted chan struct{}

	resourceHits atomic.Int64
	refreshHits  atomic.Int64
}

func newAuthServer(validToken, refreshToken string) *authServer {
	srv := &authServer{refreshToken: refreshToken}
	srv.validToken.Store(validToken)
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		if srv.refreshHits.Add(1) == 1 && srv.refreshStarted != nil {
			close(srv.refreshStarted)
		}
		if srv.refreshDelay > 0 {
			time.Sleep(srv.refreshDelay)
		}
		if srv.refreshFails {
			http.Error(w, `{"message":"refresh denied"}`, http.StatusUnauthorized)
			return
		}
		if !srv.refreshStale {
			srv.validToken.Store(srv.refreshToken)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"token": srv.refreshToken})
	})
	mux.HandleFunc("/data", func(w http.ResponseWriter, r *http.Request) {
		srv.resourceHits.Add(1)
		if r.Header.Get("Authorization") != "Bearer "+srv.validToken.Load().(string) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	srv.Server = httptest.NewServer(mux)
	return srv
}

func newTestRoundTripper(t *testing.T, srv *authServer, tokens store.Store, options ...Option) *RoundTripper {
	t.Helper()
	options = append([]Option{
		WithStore(tokens),
		WithRefreshURL(srv.URL + "/auth/refresh-token"),
	}, options...)
	rt, err := New(options...)
	require.NoError(t, err)
	return rt
}

func TestRoundTripAttachesBearer(t *testing.T) {
	srv := newAuthServer("valid", "next")
	defer srv.Close()

	tokens := store.NewMemoryStore()
	require.NoError(t, tokens.SetToken("valid"))
	rt := newTestRoundTripper(t, srv, tokens)

	resp, err := (&http.Client{Transport: rt}).Get(srv.URL + "/data")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(1), srv.resourceHits.Load())
	assert.Equal(t, int64(0), srv.refreshHits.Load(), "no refresh for an accepted token")
}

func TestRoundTripSingleRefreshAndRetry(t *testing.T) {
	srv := newAuthServer("fresh", "fresh")
	defer srv.Close()

	tokens := store.NewMemoryStore()
	require.NoError(t, tokens.SetToken("stale"))
	rt := newTestRoundTripper(t, srv, tokens)

	resp, err := (&http.Client{Transport: rt}).Get(srv.URL + "/data")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "caller observes only the final outcome")
	assert.Equal(t, int64(2), srv.resourceHits.Load(), "one send plus exactly one resend")
	assert.Equal(t, int64(1), srv.refreshHits.Load(), "exactly one refresh call")

	token, ok := tokens.Token()
	assert.True(t, ok)
	assert.Equal(t, "fresh", token, "refreshed token must be stored")
}

func TestRoundTripNoInfiniteLoop(t *testing.T) {
	// refresh succeeds but the resend is still rejected
	srv := newAuthServer("unreachable", "still-wrong")
	srv.refreshStale = true
	defer srv.Close()

	expired := false
	tokens := store.NewMemoryStore()
	require.NoError(t, tokens.SetToken("stale"))
	rt := newTestRoundTripper(t, srv, tokens, WithOnSessionExpired(func() { expired = true }))

	resp, err := (&http.Client{Transport: rt}).Get(srv.URL + "/data")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "second 401 passes through")
	assert.Equal(t, int64(1), srv.refreshHits.Load(), "never a second refresh for the same request")
	assert.Equal(t, int64(2), srv.resourceHits.Load())
	assert.True(t, expired)
	_, ok := tokens.Token()
	assert.False(t, ok, "session cleared after irrecoverable 401")
}

func TestRoundTripRefreshFailure(t *testing.T) {
	srv := newAuthServer("fresh", "fresh")
	srv.refreshFails = true
	defer srv.Close()

	expired := false
	tokens := store.NewMemoryStore()
	require.NoError(t, tokens.SetToken("stale"))
	rt := newTestRoundTripper(t, srv, tokens, WithOnSessionExpired(func() { expired = true }))

	_, err := (&http.Client{Transport: rt}).Get(srv.URL + "/data")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSessionExpired), "got %v", err)
	assert.True(t, expired, "expired hook must fire")
	_, ok := tokens.Token()
	assert.False(t, ok, "token cleared on refresh failure")
}

func TestRoundTripConcurrent401SingleRefresh(t *testing.T) {
	srv := newAuthServer("fresh", "fresh")
	srv.refreshDelay = 50 * time.Millisecond
	defer srv.Close()

	tokens := store.NewMemoryStore()
	require.NoError(t, tokens.SetToken("stale"))
	rt := newTestRoundTripper(t, srv, tokens)
	httpClient := &http.Client{Transport: rt}

	const inFlight = 8
	var wg sync.WaitGroup
	start := make(chan struct{})
	errs := make([]error, inFlight)
	for i := 0; i < inFlight; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			resp, err := httpClient.Get(srv.URL + "/data")
			if err != nil {
				errs[i] = err
				return
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				errs[i] = errors.New(resp.Status)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "request %d", i)
	}
	assert.Equal(t, int64(1), srv.refreshHits.Load(), "concurrent 401s must share one refresh")
}

func TestRoundTripCallerCancelMidRefreshKeepsSession(t *testing.T) {
	srv := newAuthServer("fresh", "fresh")
	srv.refreshDelay = 100 * time.Millisecond
	srv.refreshStarted = make(chan struct{})
	defer srv.Close()

	expired := false
	tokens := store.NewMemoryStore()
	require.NoError(t, tokens.SetToken("stale"))
	rt := newTestRoundTripper(t, srv, tokens, WithOnSessionExpired(func() { expired = true }))
	httpClient := &http.Client{Transport: rt}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-srv.refreshStarted
		cancel()
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/data", nil)
	require.NoError(t, err)
	_, err = httpClient.Do(req)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled, "the caller sees only its own cancellation")

	assert.False(t, expired, "one caller giving up must not end the session")
	token, ok := tokens.Token()
	require.True(t, ok, "the refreshed token survives the cancelled trigger")
	assert.Equal(t, "fresh", token)

	// the session keeps working without another refresh
	resp, err := httpClient.Get(srv.URL + "/data")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(1), srv.refreshHits.Load())
}

func TestRoundTripWithoutRefresh(t *testing.T) {
	srv := newAuthServer("valid", "next")
	defer srv.Close()

	tokens := store.NewMemoryStore()
	require.NoError(t, tokens.SetToken("stale"))
	rt := newTestRoundTripper(t, srv, tokens)

	req, err := http.NewRequestWithContext(WithoutRefresh(context.Background()), http.MethodGet, srv.URL+"/data", nil)
	require.NoError(t, err)
	resp, err := rt.RoundTrip(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, int64(0), srv.refreshHits.Load(), "opted-out requests never trigger a refresh")
}

func TestRoundTripProactiveRefresh(t *testing.T) {
	srv := newAuthServer("fresh", "fresh")
	defer srv.Close()

	expiredJWT, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(-time.Minute).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tokens := store.NewMemoryStore()
	require.NoError(t, tokens.SetToken(expiredJWT))
	rt := newTestRoundTripper(t, srv, tokens)

	resp, err := (&http.Client{Transport: rt}).Get(srv.URL + "/data")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(1), srv.refreshHits.Load(), "expired exp claim refreshes before sending")
	assert.Equal(t, int64(1), srv.resourceHits.Load(), "no 401 round trip needed")
}

func TestTokenExpired(t *testing.T) {
	live, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("k"))
	require.NoError(t, err)

	cases := []struct {
		name  string
		token string
		want  bool
	}{
		{name: "opaque token never expires locally", token: "opaque-session-token", want: false},
		{name: "live jwt", token: live, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tokenExpired(tc.token))
		})
	}
}

func TestCloneCopiesBody(t *testing.T) {
	body := strings.NewReader(`{"title":"hello"}`)
	req, err := http.NewRequest(http.MethodPost, "http://localhost/content", body)
	require.NoError(t, err)

	cloned := clone(req)
	first := make([]byte, 32)
	n, _ := cloned.Body.Read(first)
	assert.Contains(t, string(first[:n]), "hello")

	// the original stays readable for the replay
	second := make([]byte, 32)
	n, _ = req.Body.Read(second)
	assert.Contains(t, string(second[:n]), "hello")
}
