package admin

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"kycgate/pkg/requestcontext"
)

func newProtected(check TokenCheck) (http.Handler, *string) {
	var actor string
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := RequireAdminToken(check, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor = requestcontext.Actor(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))
	return h, &actor
}

func TestRequireAdminToken(t *testing.T) {
	t.Run("plain token accepted", func(t *testing.T) {
		h, actor := newProtected(PlainToken("secret-token"))
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("X-Admin-Token", "secret-token")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "admin", *actor)
	})

	t.Run("missing token rejected", func(t *testing.T) {
		h, _ := newProtected(PlainToken("secret-token"))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("empty configured token rejects everything", func(t *testing.T) {
		h, _ := newProtected(PlainToken(""))
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("X-Admin-Token", "")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("bcrypt hash accepted", func(t *testing.T) {
		hash, err := bcrypt.GenerateFromPassword([]byte("hashed-token"), bcrypt.MinCost)
		require.NoError(t, err)
		h, _ := newProtected(HashedToken(string(hash)))

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("X-Admin-Token", "hashed-token")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		req.Header.Set("X-Admin-Token", "wrong")
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
