package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dieg0espx/spanish-horizons-api/config"
	"github.com/dieg0espx/spanish-horizons-api/internal/auth"
	"github.com/dieg0espx/spanish-horizons-api/internal/bootstrap"
	"github.com/dieg0espx/spanish-horizons-api/internal/cache"
	"github.com/dieg0espx/spanish-horizons-api/internal/kafka"
	"github.com/dieg0espx/spanish-horizons-api/internal/logger"
	"github.com/dieg0espx/spanish-horizons-api/internal/repository"
	"github.com/dieg0espx/spanish-horizons-api/internal/service/booking"
	"github.com/dieg0espx/spanish-horizons-api/internal/service/slots"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog := logger.New(cfg.Environment)
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		zlog.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	if err := bootstrap.Migrate(ctx, pool, cfg.Database.MigrationsDir); err != nil {
		zlog.Fatal("run migrations", zap.Error(err))
	}

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Slots.CacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers, zlog)
	defer producer.Close()

	authz := auth.NewAllowList(cfg.Auth.AdminEmails)

	slotRepo := repository.NewSlotRepository(pool)
	applicationRepo := repository.NewApplicationRepository(pool)
	slotService := slots.NewSlotService(slotRepo, redisCache, authz, zlog)
	bookingService := booking.NewBookingService(
		applicationRepo,
		slotRepo,
		redisCache,
		producer,
		cfg.Kafka.InterviewsTopic,
		zlog,
	)

	if err := bootstrap.Run(ctx, cfg, zlog, slotService, bookingService); err != nil {
		zlog.Fatal("server error", zap.Error(err))
	}
}
