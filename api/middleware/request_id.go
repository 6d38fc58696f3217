package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/atlastours/rentals-backend/pkg/logger"
)

const requestIDHeader = "X-Request-ID"

// RequestID assigns every request a correlation id, honoring the inbound
// header when the caller already set one, and attaches it to the logger.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, id)

			ctx := context.WithValue(r.Context(), requestIDKey, id)
			if logg != nil {
				ctx = logg.WithRequestID(ctx, id)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
