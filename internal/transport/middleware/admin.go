package middleware

import (
	"net/http"

	"github.com/heartmarshall/flashdeck-backend/pkg/ctxutil"
)

// RequireModerator rejects requests from callers without a moderator role
// before they reach the moderation handlers. Services check the role again.
func RequireModerator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ctxutil.UserIDFromCtx(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !ctxutil.IsModeratorCtx(r.Context()) {
			http.Error(w, "moderator access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
