package app

import (
	"context"
	"errors"

	"github.com/sonar-libras/sonar/internal/logging"
)

type contextKey struct{}

var errNoApp = errors.New("app not initialized")

// WithApp stores a in ctx together with its logger
func WithApp(ctx context.Context, a *App) context.Context {
	ctx = logging.WithLogger(ctx, a.Logger)
	return context.WithValue(ctx, contextKey{}, a)
}

// FromContext retrieves the App stored by WithApp
func FromContext(ctx context.Context) (*App, error) {
	a, ok := ctx.Value(contextKey{}).(*App)
	if !ok || a == nil {
		return nil, errNoApp
	}
	return a, nil
}
