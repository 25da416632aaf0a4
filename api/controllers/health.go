package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/nourzaidi/nourfashion-backend/api/responses"
	"github.com/nourzaidi/nourfashion-backend/pkg/config"
	pkgerrors "github.com/nourzaidi/nourfashion-backend/pkg/errors"
	"github.com/nourzaidi/nourfashion-backend/pkg/logger"
)

const envHeader = "X-NourFashion-Env"

// Pinger is any dependency that can report liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every wired dependency and aggregates the failures.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP Pinger, redisP Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var err error
		if dbP != nil {
			if pingErr := dbP.Ping(ctx); pingErr != nil {
				err = multierr.Append(err, fmt.Errorf("postgres: %w", pingErr))
			}
		}
		if redisP != nil {
			if pingErr := redisP.Ping(ctx); pingErr != nil {
				err = multierr.Append(err, fmt.Errorf("redis: %w", pingErr))
			}
		}

		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "dependencies not ready"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
