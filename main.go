package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/acmeshop/checkout/internal/checkout"
	"github.com/acmeshop/checkout/internal/config"
	"github.com/acmeshop/checkout/internal/notify"
	"github.com/acmeshop/checkout/internal/repository"
	"github.com/acmeshop/checkout/internal/server"
	"github.com/acmeshop/checkout/pkg/metrics"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("service stopped", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Read()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		return err
	}

	orders, err := repository.NewOrder(pool)
	if err != nil {
		return err
	}

	baskets, err := repository.NewBasket(pool)
	if err != nil {
		return err
	}

	queue, err := notify.NewQueuePublisher(notify.QueueConfig{
		Brokers: cfg.QueueBrokers,
		Topic:   cfg.QueueName,
	})
	if err != nil {
		return err
	}

	delivery, err := notify.NewDeliveryNotifier(notify.DeliveryConfig{
		BaseURL: cfg.DeliveryBaseURL,
	}, &http.Client{Timeout: 30 * time.Second})
	if err != nil {
		return err
	}

	m := metrics.NewCheckoutMetrics(nil)

	service, err := checkout.NewService(orders, baskets, queue, delivery, logger, m)
	if err != nil {
		return err
	}

	handler, err := server.New(service, logger)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/checkout", handler.HandleCheckout)
	mux.HandleFunc("/health", handler.HandleHealth)
	mux.Handle("/metrics", metrics.Handler())

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: mux,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
