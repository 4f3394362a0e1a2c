package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/jetcharter/config"
	"github.com/Domenick1991/jetcharter/internal/bootstrap"
	"github.com/Domenick1991/jetcharter/internal/cache"
	"github.com/Domenick1991/jetcharter/internal/kafka"
	"github.com/Domenick1991/jetcharter/internal/repository"
	"github.com/Domenick1991/jetcharter/internal/service/booking"
	"github.com/Domenick1991/jetcharter/internal/service/jets"
	"github.com/Domenick1991/jetcharter/internal/service/stats"
	"github.com/Domenick1991/jetcharter/internal/service/users"
	"github.com/jackc/pgx/v5/pgxpool"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.JetsCacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	jetRepo := repository.NewJetRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	statsRepo := repository.NewStatsRepository(pool)

	jetService := jets.NewJetService(jetRepo, redisCache)
	bookingService := booking.NewBookingService(
		bookingRepo,
		jetRepo,
		userRepo,
		redisCache,
		producer,
		cfg.Kafka.BookingTopic,
		time.Duration(cfg.Booking.HoldTTLSeconds)*time.Second,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)
	userService := users.NewUserService(
		userRepo,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.AccessTTLMinutes)*time.Minute,
		time.Duration(cfg.Auth.RefreshTTLHours)*time.Hour,
	)
	statsService := stats.NewStatsService(statsRepo)

	err = bootstrap.Run(ctx, cfg, bootstrap.Services{
		Jets:     jetService,
		Bookings: bookingService,
		Users:    userService,
		Stats:    statsService,
	})
	if err != nil {
		log.Fatalf("server error: %v", err)
	}
}
