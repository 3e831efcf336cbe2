package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	dErrors "accidentstats/pkg/domain-errors"
	"accidentstats/pkg/platform/httputil"
)

// AdminTokenHeader carries the shared secret for write endpoints.
const AdminTokenHeader = "X-Admin-Token"

// RequireAdminToken rejects requests whose X-Admin-Token does not match token.
// An empty token leaves the route open.
func RequireAdminToken(token string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(AdminTokenHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				logger.WarnContext(r.Context(), "unauthorized admin request",
					"request_id", GetRequestID(r.Context()),
					"path", r.URL.Path,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing or invalid admin token"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
