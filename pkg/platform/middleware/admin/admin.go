package admin

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"kycgate/pkg/requestcontext"
)

const headerAdminToken = "X-Admin-Token"

// TokenCheck decides whether a presented admin token is valid.
type TokenCheck func(presented string) bool

// PlainToken compares against a configured token in constant time.
func PlainToken(expected string) TokenCheck {
	return func(presented string) bool {
		if expected == "" {
			return false
		}
		return subtle.ConstantTimeCompare([]byte(presented), []byte(expected)) == 1
	}
}

// HashedToken compares against a bcrypt hash of the admin token so the
// cleartext never has to live in the environment.
func HashedToken(hash string) TokenCheck {
	return func(presented string) bool {
		if hash == "" || presented == "" {
			return false
		}
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(presented)) == nil
	}
}

// RequireAdminToken rejects requests whose X-Admin-Token fails check.
func RequireAdminToken(check TokenCheck, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if !check(r.Header.Get(headerAdminToken)) {
				logger.WarnContext(ctx, "admin token mismatch",
					"request_id", requestcontext.RequestID(ctx),
					"client_ip", requestcontext.ClientIP(ctx),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"admin token required"}`))
				return
			}
			ctx = requestcontext.WithActor(ctx, "admin")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
