package app

import (
	"context"
	"database/sql"
	"fmt"

	"go-attendance/internal/attendance"
	"go-attendance/internal/config"
	"go-attendance/internal/leave"
	"go-attendance/internal/messaging/kafka"
	"go-attendance/internal/observability"
	"go-attendance/internal/profile"
	"go-attendance/internal/shared/connection"
	"go-attendance/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Router *gin.Engine
	GormDB *gorm.DB
	SQLDB  *sql.DB
	Redis  *redis.Client

	shutdownTracer func(context.Context) error
	logger         *zap.Logger
}

// BuildApp connects to Postgres and Redis, prepares the schema and assembles
// the HTTP router.
func BuildApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	log := logger.Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB, logger)
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis, logger)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := Migrate(ctx, gormDB, sqlDB); err != nil {
			_ = sqlDB.Close()
			_ = rdb.Close()
			return nil, err
		}
		log.Info("schema migrated")
	}

	a := &App{GormDB: gormDB, SQLDB: sqlDB, Redis: rdb, logger: log}

	if cfg.OTel.Enabled {
		shutdown, err := observability.InitTracer(ctx, cfg.OTel.ServiceName, cfg.OTel.Endpoint)
		if err != nil {
			log.Warn("tracing disabled", zap.Error(err))
		} else {
			a.shutdownTracer = shutdown
		}
	}

	a.Router = NewRouter(cfg, Dependencies{
		GormDB: gormDB,
		SQLDB:  sqlDB,
		Redis:  rdb,
		Outbox: kafka.NewOutboxRepository(sqlDB),
		Prom:   observability.NewProm(prometheus.NewRegistry()),
	}, logger)

	return a, nil
}

// Migrate creates or updates every table the service owns.
func Migrate(ctx context.Context, gormDB *gorm.DB, sqlDB *sql.DB) error {
	err := gormDB.WithContext(ctx).AutoMigrate(
		&user.User{},
		&attendance.Attendance{},
		&leave.LeaveRequest{},
		&profile.Profile{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := kafka.EnsureOutboxSchema(ctx, sqlDB); err != nil {
		return fmt.Errorf("outbox schema: %w", err)
	}
	return nil
}

func (a *App) Close(ctx context.Context) {
	if a.shutdownTracer != nil {
		if err := a.shutdownTracer(ctx); err != nil {
			a.logger.Warn("tracer shutdown failed", zap.Error(err))
		}
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.SQLDB != nil {
		_ = a.SQLDB.Close()
	}
}
