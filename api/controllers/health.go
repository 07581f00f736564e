package controllers

import (
	"context"
	"net/http"

	"github.com/laskalegacy/storefront-backend/api/responses"
	"github.com/laskalegacy/storefront-backend/pkg/config"
	pkgerrors "github.com/laskalegacy/storefront-backend/pkg/errors"
	"github.com/laskalegacy/storefront-backend/pkg/logger"
)

// Pinger is any dependency that can report connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Laska-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports 503 when blob storage is unreachable. Redis is optional
// infrastructure; its failure is logged but does not fail readiness.
func HealthReady(cfg *config.Config, logg *logger.Logger, blobs Pinger, redisClient Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Laska-Env", cfg.App.Env)

		if blobs != nil {
			if err := blobs.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeStore, err, "blob storage unreachable"))
				return
			}
		}

		degraded := []string{}
		if redisClient != nil {
			if err := redisClient.Ping(r.Context()); err != nil {
				degraded = append(degraded, "redis")
				if logg != nil {
					logg.Warn(r.Context(), "health.redis_unreachable")
				}
			}
		}

		payload := map[string]any{"status": "ready"}
		if len(degraded) > 0 {
			payload["degraded"] = degraded
		}
		responses.WriteSuccess(w, payload)
	}
}
