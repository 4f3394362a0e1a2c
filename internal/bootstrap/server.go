package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/jetcharter/api"
	"github.com/Domenick1991/jetcharter/config"
	"github.com/Domenick1991/jetcharter/internal/domain"
	"github.com/Domenick1991/jetcharter/internal/service/booking"
	"github.com/Domenick1991/jetcharter/internal/service/jets"
	"github.com/Domenick1991/jetcharter/internal/service/stats"
	"github.com/Domenick1991/jetcharter/internal/service/users"
	"github.com/gin-gonic/gin"
)

type Services struct {
	Jets     jets.JetUseCase
	Bookings booking.BookingUseCase
	Users    users.UserUseCase
	Stats    stats.StatsUseCase
}

// Run starts the HTTP API server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, svc Services) error {
	httpServer := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: newRouter(cfg, svc),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpServer.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newRouter(cfg *config.Config, svc Services) *gin.Engine {
	engine := gin.Default()

	secret := cfg.Auth.JWTSecret
	refreshTTL := time.Duration(cfg.Auth.RefreshTTLHours) * time.Hour

	authHandler := api.NewAuthHandler(svc.Users, cfg.Auth.RefreshCookieName, refreshTTL)
	jetHandler := api.NewJetHandler(svc.Jets)
	bookingHandler := api.NewBookingHandler(svc.Bookings)
	userHandler := api.NewUserHandler(svc.Users)
	adminHandler := api.NewAdminHandler(svc.Stats)

	root := engine.Group("/api")

	authHandler.Register(root.Group("/auth"), secret)
	jetHandler.Register(root.Group("/jets"))
	bookingHandler.Register(root, secret)

	profile := root.Group("/users")
	profile.Use(api.RequireAuth(secret))
	userHandler.Register(profile)

	admin := root.Group("/admin")
	admin.Use(api.RequireAuth(secret), api.RequireRole(domain.RoleAdmin))
	jetHandler.RegisterAdmin(admin)
	bookingHandler.RegisterAdmin(admin)
	adminHandler.Register(admin)

	return engine
}
