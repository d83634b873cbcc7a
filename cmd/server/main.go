package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"tonwallet/internal/backup"
	"tonwallet/internal/config"
	"tonwallet/internal/handlers"
	"tonwallet/internal/keys"
	"tonwallet/internal/logging"
	"tonwallet/internal/middleware"
	"tonwallet/internal/repository"
	"tonwallet/internal/service"
	"tonwallet/internal/tonclient"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load config:", err)
	}

	logger := logging.SetupLogger(cfg.LogLevel)

	walletVersion, err := keys.ParseVersion(cfg.WalletVersion)
	if err != nil {
		logger.Error("invalid wallet version", "err", err)
		os.Exit(1)
	}

	gin.SetMode(gin.ReleaseMode)

	db, err := repository.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	repo := repository.NewWalletSQLiteRepository(db, logger, cfg.DBTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("failed to ensure schema", "err", err)
		os.Exit(1)
	}

	keyGen := keys.NewGenerator(walletVersion)
	exporter := backup.NewFileExporter(cfg.WalletsDir)
	executor := tonclient.NewClient(cfg.TonConfigURL, walletVersion, cfg.SendTimeout, logger)
	svc := service.NewWalletService(keyGen, repo, exporter, executor, logger)
	handler := handlers.NewWalletHTTPHandler(svc)

	r := gin.New()
	r.Use(middleware.RequestLogger(logger), gin.Recovery())
	handler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port, "testnet", cfg.Testnet)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("Server forced to shutdown", "err", err)
	}
	logger.Info("Server exiting")
}
