package contexthelpers

import (
	"context"
	"net/http"
)

func AuthenticateContext(r *http.Request, userID string) *http.Request {
	ctx := r.Context()
	ctx = context.WithValue(ctx, IsAuthenticatedContextKey, true)
	ctx = context.WithValue(ctx, AuthenticatedUserIDContextKey, userID)
	return r.WithContext(ctx)
}
