package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/andreasstove999/ecommerce-system/cart-pricing-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/cart-pricing-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/cart-pricing-service-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/cart-pricing-service-go/internal/events"
	httpserver "github.com/andreasstove999/ecommerce-system/cart-pricing-service-go/internal/http"
	"github.com/andreasstove999/ecommerce-system/cart-pricing-service-go/internal/pricing"
	"github.com/andreasstove999/ecommerce-system/cart-pricing-service-go/internal/sorting"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("service", "cart-pricing-service"))

	// --- core ---
	products := catalog.New(logger.Named("catalog"))
	store := cart.NewStore(products, logger.Named("cart"))
	engine, err := pricing.NewEngine(cfg.TaxRate, logger.Named("pricing"))
	if err != nil {
		logger.Fatal("create pricing engine", zap.Error(err))
	}
	sorter := sorting.NewSorter(logger.Named("sorting"))

	if cfg.SeedSampleData {
		if err := seed(products, engine); err != nil {
			logger.Fatal("seed sample data", zap.Error(err))
		}
	}

	// --- AMQP ---
	sequence := events.NewMemorySequence()
	var publisher events.CartEventsPublisher = events.NewLogPublisher(sequence, logger.Named("events"))
	if cfg.RabbitURL != "" {
		conn, err := events.Dial(cfg.RabbitURL)
		if err != nil {
			logger.Fatal("dial rabbitmq", zap.Error(err))
		}
		defer conn.Close()

		rabbit, err := events.NewRabbitCartEventsPublisher(conn, sequence, logger.Named("events"))
		if err != nil {
			logger.Fatal("create cart publisher", zap.Error(err))
		}
		defer rabbit.Close()
		publisher = rabbit
	} else {
		logger.Warn("RABBITMQ_URL not set, checkout events are only logged")
	}

	// --- HTTP ---
	h := httpserver.NewHandler(products, store, engine, sorter, publisher, logger.Named("http"))
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpserver.NewRouter(h, cfg.RequestTimeout),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown error", zap.Error(err))
	}
	logger.Info("shutdown complete")
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// seed loads the demo assortment and the default discount rules.
func seed(products *catalog.Catalog, engine *pricing.Engine) error {
	if err := catalog.Seed(products); err != nil {
		return err
	}

	rules := []pricing.RuleSpec{
		{Type: string(pricing.TypePercentage), Value: decimalPtr("5")},
		{Type: string(pricing.TypeFixed), Value: decimalPtr("1000")},
		{
			Type:          string(pricing.TypeThreshold),
			Threshold:     decimalPtr("100000"),
			DiscountType:  string(pricing.TypePercentage),
			DiscountValue: decimalPtr("10"),
		},
	}
	for _, spec := range rules {
		if _, err := engine.AddRule(spec); err != nil {
			return err
		}
	}
	return nil
}

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
