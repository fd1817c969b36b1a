package metadata

import (
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"kycgate/pkg/requestcontext"
)

// ClientMetadata extracts client IP, User-Agent and a parsed device summary
// and stores them in the request context. Apply early in the chain.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua := r.Header.Get("User-Agent")
		ctx := requestcontext.WithClientMetadata(r.Context(), ClientIPFromRequest(r), ua, DeviceFromUserAgent(ua))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// DeviceFromUserAgent renders "Browser on OS" (or the bot name) for audit logs.
func DeviceFromUserAgent(raw string) string {
	if raw == "" {
		return ""
	}
	ua := useragent.New(raw)
	name, _ := ua.Browser()
	if ua.Bot() {
		return name
	}
	os := ua.OSInfo().Name
	switch {
	case name != "" && os != "":
		return name + " on " + os
	case name != "":
		return name
	default:
		return os
	}
}

// ClientIPFromRequest extracts the real client IP, honoring proxy headers.
func ClientIPFromRequest(r *http.Request) string {
	// X-Forwarded-For: client, proxy1, proxy2
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if addr := r.RemoteAddr; addr != "" {
		if idx := strings.LastIndex(addr, ":"); idx != -1 {
			return addr[:idx]
		}
		return addr
	}
	return "unknown"
}
