package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tindahan-be/internal/cart"
	"tindahan-be/internal/category"
	"tindahan-be/internal/checkout"
	"tindahan-be/internal/config"
	"tindahan-be/internal/db"
	"tindahan-be/internal/httpserver"
	"tindahan-be/internal/inventory"
	"tindahan-be/internal/logger"
	"tindahan-be/internal/metrics"
	"tindahan-be/internal/order"
	"tindahan-be/internal/product"
	"tindahan-be/internal/review"
	"tindahan-be/internal/user"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	categoryRepo := category.NewRepository(database)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo, categoryRepo)

	ledger := inventory.NewLedger(productRepo)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo)

	checkoutStats := &metrics.Checkout{}
	checkoutSvc := checkout.NewService(cartRepo, userRepo, ledger, orderRepo, checkoutStats)

	reviewRepo := review.NewRepository(database)
	reviewSvc := review.NewService(reviewRepo, orderRepo)

	router := httpserver.NewRouter(&httpserver.Handlers{
		Users:      userSvc,
		Products:   productSvc,
		Categories: categoryRepo,
		Carts:      cartSvc,
		Checkout:   checkoutSvc,
		Orders:     orderSvc,
		Reviews:    reviewSvc,
		Ledger:     ledger,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.L().Info("server listening", zap.String("port", cfg.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.L().Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.L().Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.L().Error("shutdown failed", zap.Error(err))
	}
}
