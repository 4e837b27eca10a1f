package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/pearview-systems/pos-checkout-service/internal/config"
	"github.com/pearview-systems/pos-checkout-service/internal/events"
	"github.com/pearview-systems/pos-checkout-service/internal/handlers"
	"github.com/pearview-systems/pos-checkout-service/internal/logging"
	"github.com/pearview-systems/pos-checkout-service/internal/repository"
	"github.com/pearview-systems/pos-checkout-service/internal/server"
	"github.com/pearview-systems/pos-checkout-service/internal/service"
)

func main() {
	cfg := config.Load()

	logger := logging.NewLoggerV2("orders-backend")

	logging.Infof("Starting orders backend on port %d", cfg.Server.Port)

	db, err := initDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", logging.Fields{"error": err.Error()})
	}
	defer db.Close()

	orderRepo := repository.NewPostgresOrderRepository(db, logger)
	if err := orderRepo.RunMigrations(cfg.Database.MigrationsPath); err != nil {
		logger.Fatal("Failed to run migrations", logging.Fields{"error": err.Error()})
	}

	orderCache := repository.NewRedisOrderCache(cfg.Redis)

	eventPublisher := events.NewKafkaPublisher(cfg.Kafka, logger)
	defer eventPublisher.Close()

	orderService := service.NewOrderService(orderRepo, orderCache, eventPublisher, cfg)

	h := handlers.NewHandlers(orderService, cfg)

	srv := server.New(h, cfg)

	go func() {
		logger.Info("Server starting", logging.Fields{
			"port":           cfg.Server.Port,
			"enable_caching": cfg.Features.EnableOrderCaching,
			"enable_events":  cfg.Features.EnableOrderEvents,
		})
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", logging.Fields{"error": err.Error()})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", logging.Fields{"error": err.Error()})
	}

	logger.Info("Server exited")
}

func initDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	logging.Info("Database connected", logging.Fields{
		"host": cfg.Database.Host,
		"name": cfg.Database.Name,
	})

	return db, nil
}
