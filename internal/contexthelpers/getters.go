package contexthelpers

import (
	"context"
)

func IsAuthenticated(ctx context.Context) bool {
	isAuthenticated, ok := ctx.Value(IsAuthenticatedContextKey).(bool)
	if !ok {
		return false
	}

	return isAuthenticated
}

// AuthenticatedUserID returns the opaque user id minted by the session
// handler, or the empty string when the request carries no user.
func AuthenticatedUserID(ctx context.Context) string {
	userID, ok := ctx.Value(AuthenticatedUserIDContextKey).(string)
	if !ok {
		return ""
	}

	return userID
}
