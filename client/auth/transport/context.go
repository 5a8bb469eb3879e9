package transport

import "context"

type contextKey string

const contextSkipRefreshKey contextKey = "skipRefresh"

// WithoutRefresh marks ctx so requests carrying it bypass the 401
// refresh-and-retry protocol. The login and refresh calls themselves use it
// to avoid recursing into the protocol.
func WithoutRefresh(ctx context.Context) context.Context {
	return context.WithValue(ctx, contextSkipRefreshKey, true)
}

// RefreshDisabled reports whether ctx was marked with WithoutRefresh.
func RefreshDisabled(ctx context.Context) bool {
	return refreshDisabled(ctx)
}

func refreshDisabled(ctx context.Context) bool {
	v, _ := ctx.Value(contextSkipRefreshKey).(bool)
	return v
}
