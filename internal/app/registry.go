package app

import (
	"database/sql"

	"go-attendance/internal/attendance"
	"go-attendance/internal/config"
	"go-attendance/internal/health"
	"go-attendance/internal/leave"
	"go-attendance/internal/messaging/kafka"
	"go-attendance/internal/middleware"
	"go-attendance/internal/observability"
	"go-attendance/internal/profile"
	"go-attendance/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// Dependencies are the shared connections the modules are built on. Redis,
// Outbox and Prom are optional.
type Dependencies struct {
	GormDB *gorm.DB
	SQLDB  *sql.DB
	Redis  *redis.Client
	Outbox kafka.OutboxRepository
	Prom   *observability.Prom
}

func NewRouter(cfg config.Config, deps Dependencies, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.ContextLogger(logger),
		middleware.CORS(cfg.HTTP.AllowedOrigin),
	)
	if cfg.OTel.Enabled {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}

	var observe health.Observer
	if deps.Prom != nil {
		router.Use(deps.Prom.GinHandleMiddleware())
		router.GET("/metrics", gin.WrapH(deps.Prom.Handler()))
		observe = deps.Prom.ObserveDB
	}

	health.RegisterRoutes(router, health.NewHandler(deps.SQLDB, observe, logger))

	registerModules(router.Group("/api"), cfg, deps, logger)

	return router
}

func registerModules(api *gin.RouterGroup, cfg config.Config, deps Dependencies, logger *zap.Logger) {
	writeGuards := []gin.HandlerFunc{
		middleware.RateLimitByIP(rate.Limit(cfg.HTTP.RateLimitRPS), cfg.HTTP.RateLimitBurst),
		middleware.Idempotency(deps.Redis, logger),
	}

	// --- Repositories ---
	userRepo := user.NewRepository(deps.GormDB)
	attendanceRepo := attendance.NewRepository(deps.GormDB)
	leaveRepo := leave.NewRepository(deps.GormDB)
	profileRepo := profile.NewRepository(deps.GormDB)

	// --- Services ---
	userService := user.NewService(userRepo, deps.Redis, user.Options{
		StorePlaintextPasswords: cfg.StorePlaintextPasswords,
	}, logger)
	attendanceService := attendance.NewService(attendanceRepo, logger)
	leaveService := leave.NewService(deps.SQLDB, leaveRepo, deps.Outbox, logger)
	profileService := profile.NewService(profileRepo, logger)

	// --- Routes ---
	user.RegisterRoutes(api, user.NewHandler(userService, logger), writeGuards...)
	attendance.RegisterRoutes(api, attendance.NewHandler(attendanceService, logger), writeGuards...)
	leave.RegisterRoutes(api, leave.NewHandler(leaveService, logger), writeGuards...)
	profile.RegisterRoutes(api, profile.NewHandler(profileService, logger), writeGuards...)
}
