package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/Cheertaboi/storefront/internal/requestid"
)

// RequestID reuses the caller's X-Request-Id or mints a new one, echoes it on the response,
// and stores it in the request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(requestid.Header)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(requestid.Header, reqID)
		next.ServeHTTP(w, r.WithContext(requestid.NewContext(r.Context(), reqID)))
	})
}
