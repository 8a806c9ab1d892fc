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

	"github.com/ecarthub/marketcore/internal/config"
	"github.com/ecarthub/marketcore/internal/repository"
	"github.com/ecarthub/marketcore/internal/server"
	"github.com/ecarthub/marketcore/internal/service"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("failed to create connection pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	products := repository.NewProduct(pool)
	carts := repository.NewCart(pool)
	orders := repository.NewOrder(pool)

	cartSvc := service.NewCart(carts, products)
	checkoutSvc := service.NewCheckout(products, carts, orders)
	statusSvc := service.NewStatus(orders, cfg.Orders.StrictTransitions)
	sellerSvc := service.NewSeller(products, orders)

	metrics := server.NewMetrics()

	mux := server.NewMux(
		server.NewCartHandler(cartSvc, logger),
		server.NewOrderHandler(checkoutSvc, statusSvc, orders, logger),
		server.NewSellerHandler(sellerSvc, statusSvc, products, logger),
		metrics,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("starting api server", "port", cfg.Server.Port,
			"strict_transitions", cfg.Orders.StrictTransitions)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shut down server", "error", err)
	}

	logger.Info("server stopped")
}
