package middleware

import (
	"net/http"
	"time"

	"github.com/atlastours/rentals-backend/api/responses"
	pkgerrors "github.com/atlastours/rentals-backend/pkg/errors"
	"github.com/atlastours/rentals-backend/pkg/logger"
	"github.com/atlastours/rentals-backend/pkg/redis"
)

const (
	idempotencyHeader = "Idempotency-Key"
	idempotencyTTL    = 24 * time.Hour
)

// Idempotency guards mutating endpoints against double submission. When the
// client sends an Idempotency-Key the first request claims the key; replays
// within the TTL are rejected with IDEMPOTENCY_KEY_REUSED. Requests without
// the header pass through untouched.
func Idempotency(store *redis.Client, scope string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(idempotencyHeader)
			if key == "" || store == nil {
				next.ServeHTTP(w, r)
				return
			}

			claimed, err := store.SetNX(r.Context(), store.IdempotencyKey(scope, key), "claimed", idempotencyTTL)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "idempotency store unavailable"))
				return
			}
			if !claimed {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeIdempotency, "request already processed"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
