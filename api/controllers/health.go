package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/smartlaundry/backend/api/responses"
	"github.com/smartlaundry/backend/pkg/config"
	pkgerrors "github.com/smartlaundry/backend/pkg/errors"
	"github.com/smartlaundry/backend/pkg/logger"
)

// Pinger is the health-check slice of a backing service client.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{
			"status": "ok",
			"env":    cfg.App.Env,
		})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, db, redis Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{}
		healthy := true

		probe := func(name string, p Pinger) {
			if p == nil {
				checks[name] = "skipped"
				return
			}
			if err := p.Ping(ctx); err != nil {
				checks[name] = "down"
				healthy = false
				if logg != nil {
					logg.Error(logg.WithField(ctx, "dependency", name), "readiness probe failed", err)
				}
				return
			}
			checks[name] = "ok"
		}

		probe("database", db)
		probe("redis", redis)

		if !healthy {
			responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeDependency, "dependency unavailable").WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"status": "ready",
			"env":    cfg.App.Env,
			"checks": checks,
		})
	}
}
