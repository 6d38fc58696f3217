package middleware

import (
	"net/http"

	"github.com/atlastours/rentals-backend/api/responses"
	pkgerrors "github.com/atlastours/rentals-backend/pkg/errors"
	"github.com/atlastours/rentals-backend/pkg/logger"
)

// Recoverer converts handler panics into a 500 envelope instead of killing
// the connection.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil || rec == http.ErrAbortHandler {
					if rec != nil {
						panic(rec)
					}
					return
				}
				err := pkgerrors.New(pkgerrors.CodeInternal, "internal server error")
				if logg != nil {
					ctx := logg.WithField(r.Context(), "panic", rec)
					logg.Error(ctx, "panic recovered", err)
				}
				responses.WriteError(r.Context(), nil, w, err)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
