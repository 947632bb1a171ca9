package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Cri010101/toelettatura-system/internal/timezone"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthHandler struct {
	env   string
	tz    string
	db    Pinger
	cache Pinger
}

// NewHealthHandler takes a nil cache when Redis is not configured.
func NewHealthHandler(env, tz string, db, cache Pinger) *HealthHandler {
	return &HealthHandler{env: env, tz: tz, db: db, cache: cache}
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		"env":       h.env,
	})
}

func (h *HealthHandler) Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":     "Server della toelettatura attivo",
		"server_time": timezone.NowIn(h.tz).Format(time.RFC3339),
	})
}

// Ready checks the dependencies the API cannot serve without.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{"database": "OK"}
	healthy := true

	if err := h.db.Ping(ctx); err != nil {
		log.Error().Err(err).Msg("readiness: database ping failed")
		checks["database"] = "ERROR"
		healthy = false
	}
	if h.cache != nil {
		checks["cache"] = "OK"
		if err := h.cache.Ping(ctx); err != nil {
			log.Error().Err(err).Msg("readiness: cache ping failed")
			checks["cache"] = "ERROR"
			healthy = false
		}
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "ERROR", "checks": checks})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "OK", "checks": checks})
}
