// main.go - Entry point for the tree encyclopedia backend server

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

	"go-tree-catalog/config"
	"go-tree-catalog/database"
	"go-tree-catalog/handlers"
	"go-tree-catalog/session"
	"go-tree-catalog/store"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Error("database setup failed", "err", err)
		os.Exit(1)
	}

	sessions := session.NewManager(cfg.SessionTTL)
	defer sessions.Stop()

	h := handlers.New(cfg, store.NewUserStore(db), store.NewTreeStore(db), sessions, log)
	router := handlers.SetupRouter(h, log)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	go func() {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Drain in-flight requests on SIGINT/SIGTERM before exiting.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown failed", "err", err)
	}
}
