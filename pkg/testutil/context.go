package testutil

import (
	"net/http"

	id "kycgate/pkg/domain"
	"kycgate/pkg/requestcontext"
)

// WithUserID adds an authenticated end user to the request context, as the
// JWT middleware would. Invalid IDs are silently ignored.
func WithUserID(req *http.Request, userID string) *http.Request {
	parsed, err := id.ParseUserID(userID)
	if err != nil {
		return req
	}
	ctx := requestcontext.WithUserID(req.Context(), parsed)
	ctx = requestcontext.WithActor(ctx, "user")
	return req.WithContext(ctx)
}
