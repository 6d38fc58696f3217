package controllers

import (
	"context"
	"net/http"

	"github.com/atlastours/rentals-backend/api/responses"
	"github.com/atlastours/rentals-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthController reports liveness and the state of the backing services.
type HealthController struct {
	db    pinger
	cache pinger
	logg  *logger.Logger
}

func NewHealthController(db, cache pinger, logg *logger.Logger) *HealthController {
	return &HealthController{db: db, cache: cache, logg: logg}
}

// Live always succeeds while the process is up.
func (c *HealthController) Live(w http.ResponseWriter, r *http.Request) {
	responses.WriteSuccess(w, map[string]string{"status": "ok"})
}

// Ready checks the database and cache connections.
func (c *HealthController) Ready(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}
	healthy := true

	checks["database"] = c.check(r.Context(), c.db)
	checks["cache"] = c.check(r.Context(), c.cache)
	for _, state := range checks {
		if state != "ok" {
			healthy = false
		}
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	responses.WriteSuccessStatus(w, status, checks)
}

func (c *HealthController) check(ctx context.Context, p pinger) string {
	if p == nil {
		return "skipped"
	}
	if err := p.Ping(ctx); err != nil {
		if c.logg != nil {
			c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "health check failed")
		}
		return "unavailable"
	}
	return "ok"
}
