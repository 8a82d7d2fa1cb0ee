package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"varotra-backend-go/internal/api"
	"varotra-backend-go/internal/config"
	"varotra-backend-go/internal/hub"
	"varotra-backend-go/internal/middleware"
	"varotra-backend-go/internal/store"
)

// localOwner is the fixed account everything belongs to when the server
// runs without Firebase.
const localOwner = "local-demo-owner"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	var logger *zap.Logger
	if strings.ToLower(cfg.GinMode) == "release" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	var (
		sources hub.Sources
		clients *store.Clients
		authMW  gin.HandlerFunc
	)
	if cfg.IsLocalMode() {
		logger.Warn("running in local mode: no Firebase, data is in-memory and per-process")
		authMW = middleware.LocalAuth(localOwner)
	} else {
		initCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		clients, err = store.InitFirebase(initCtx, cfg, logger)
		cancel()
		if err != nil {
			logger.Fatal("failed to initialize Firebase", zap.Error(err))
		}
		defer clients.Close()

		sources = hub.FromStore(store.New(clients.Firestore, logger))
		authMW = middleware.FirebaseAuth(clients.Auth, logger)
		logger.Info("Firebase initialized", zap.String("project", cfg.FirebaseProjectID))
	}

	manager := hub.NewManager(sources, logger, hub.Options{
		TopN:      cfg.TopRankLimit,
		LocalOnly: cfg.IsLocalMode(),
	})
	defer manager.Close()

	if strings.ToLower(cfg.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Recovery(logger))
	if cfg.ClientURL != "" {
		router.Use(middleware.CORS(cfg.ClientURL))
	} else {
		logger.Warn("CLIENT_URL is not set, CORS middleware disabled")
	}

	api.RegisterRoutes(router, api.NewHandler(manager, logger), authMW)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", server.Addr), zap.String("ginMode", gin.Mode()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("shutting down", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
