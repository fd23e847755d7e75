package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Cheertaboi/storefront/internal/session"
)

// Session resolves the browser's session cookie to the active user and stores both in the
// request context. A missing or malformed cookie starts a new session. A store failure is
// logged and the request continues without an identity.
func Session(provider *session.Provider, cookieName string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := ""
			if c, err := r.Cookie(cookieName); err == nil {
				if _, err := uuid.Parse(c.Value); err == nil {
					sid = c.Value
				}
			}
			if sid == "" {
				sid = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    sid,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			userID, err := provider.Resolve(r.Context(), sid)
			if err != nil {
				logger.Error("resolve session", zap.String("session_id", sid), zap.Error(err))
				userID = ""
			}
			next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), sid, userID)))
		})
	}
}
