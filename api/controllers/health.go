package controllers

import (
	"net/http"

	"github.com/sincrochat/catalog-backend/api/responses"
	"github.com/sincrochat/catalog-backend/pkg/config"
	pkgerrors "github.com/sincrochat/catalog-backend/pkg/errors"
	"github.com/sincrochat/catalog-backend/pkg/logger"
	"github.com/sincrochat/catalog-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		responses.WriteSuccess(w, map[string]string{
			"status": "ok",
			"env":    cfg.App.Env,
		})
	}
}

// HealthReady checks the dependencies a cart request actually needs.
func HealthReady(cfg *config.Config, logg *logger.Logger, redisClient redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			if err := redisClient.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis not ready"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{
			"status": "ready",
			"env":    cfg.App.Env,
		})
	}
}
