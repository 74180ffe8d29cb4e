package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"localbite-be/internal/audit"
	"localbite-be/internal/config"
	"localbite-be/internal/db"
	"localbite-be/internal/events"
	"localbite-be/internal/logger"
	"localbite-be/internal/meal"
	"localbite-be/internal/metrics"
	"localbite-be/internal/middleware"
	"localbite-be/internal/order"
	"localbite-be/internal/rating"
	"localbite-be/internal/report"
	"localbite-be/internal/rest"
	"localbite-be/internal/review"
	"localbite-be/internal/user"

	"go.uber.org/zap"
)

const (
	sweepInterval   = time.Minute
	shutdownTimeout = 10 * time.Second
)

var (
	initDBFunc      = db.InitDB
	startServerFunc = listenAndServe
	newPublisher    = func(url string) (events.Publisher, error) {
		return events.NewNATSPublisher(url)
	}
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	publisher := events.Publisher(events.NoopPublisher{})
	if cfg.NatsURL != "" {
		p, err := newPublisher(cfg.NatsURL)
		if err != nil {
			logger.L().Warn("order events disabled", zap.Error(err))
		} else {
			publisher = p
		}
	}
	defer publisher.Close()

	app := newApp(cfg, database, publisher)

	if cfg.OrderTTL > 0 {
		go order.RunSweeper(ctx, app.orders, cfg.OrderTTL, sweepInterval)
	}
	go app.limiter.Cleanup(ctx)

	addr := ":" + cfg.AppPort
	logger.L().Info("LocalBite API listening", zap.String("addr", addr))
	return startServerFunc(ctx, addr, app.handler)
}

type app struct {
	handler http.Handler
	orders  order.Service
	limiter *middleware.RateLimiter
}

// newApp wires repositories, services and the router.
func newApp(cfg *config.Config, database *sql.DB, publisher events.Publisher) *app {
	tx := db.NewTransactor(database)
	registry := metrics.NewRegistry()
	recorder := audit.NewService(audit.NewRepository(database))
	ratings := rating.NewAggregator(rating.NewRepository(database))

	mealRepo := meal.NewRepository(database)
	orderRepo := order.NewRepository(database)

	userSvc := user.NewService(user.NewRepository(database), tx, recorder)
	mealSvc := meal.NewService(mealRepo, tx, recorder)
	orderSvc := order.NewService(orderRepo, mealRepo, publisher, registry)
	reviewSvc := review.NewService(review.NewRepository(database), orderRepo, tx, ratings, recorder)
	reportSvc := report.NewService(report.NewRepository(database), tx, reviewSvc, mealSvc, recorder)

	limiter := middleware.NewRateLimiter()

	return &app{
		handler: rest.NewRouter(rest.Deps{
			Users:      userSvc,
			Meals:      mealSvc,
			Orders:     orderSvc,
			Reviews:    reviewSvc,
			Reports:    reportSvc,
			Metrics:    registry,
			Limiter:    limiter,
			JWTSecret:  cfg.JWTSecret,
			CORSOrigin: cfg.CORSOrigin,
		}),
		orders:  orderSvc,
		limiter: limiter,
	}
}

func newServer(cfg *config.Config, database *sql.DB) http.Handler {
	return newApp(cfg, database, events.NoopPublisher{}).handler
}

// listenAndServe serves until ctx is cancelled, then drains in-flight requests.
func listenAndServe(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
