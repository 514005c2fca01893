package health

import (
	"context"
	"net/http"
	"time"

	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Observer wraps a dependency check, typically for metrics.
type Observer func(op string, fn func() error) error

type Handler struct {
	db      Pinger
	observe Observer
	logger  *zap.Logger
}

func NewHandler(db Pinger, observe Observer, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("health.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("health.handler")
	}
	if observe == nil {
		observe = func(_ string, fn func() error) error { return fn() }
	}
	return &Handler{db: db, observe: observe, logger: l}
}

func (h *Handler) Healthz(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"status": "ok"}, nil)
}

// Readyz reports ready only while the database answers a ping.
func (h *Handler) Readyz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	err := h.observe("ping", func() error { return h.db.PingContext(ctx) })
	if err != nil {
		h.logger.Warn("readiness check failed", zap.Error(err))
		response.Error(c, http.StatusServiceUnavailable, apperror.CodeServiceUnavailable, "Database unavailable", nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "ready"}, nil)
}

func RegisterRoutes(r gin.IRouter, handler *Handler) {
	r.GET("/healthz", handler.Healthz)
	r.GET("/readyz", handler.Readyz)
}
