package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"onthegomusic/internal/api"
	"onthegomusic/internal/auth"
	"onthegomusic/internal/config"
	"onthegomusic/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	// Setup logger
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	logrus.WithField("db", cfg.MongoDB).Info("connecting to MongoDB")
	client, err := store.Connect(context.Background(), cfg.MongoURI, 10*time.Second)
	if err != nil {
		logrus.Fatalf("failed to connect to MongoDB: %v", err)
	}
	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	err = store.EnsureIndexes(indexCtx, client.Database(cfg.MongoDB))
	cancelIndexes()
	if err != nil {
		logrus.Fatalf("failed to ensure indexes: %v", err)
	}
	db := store.New(client, cfg.MongoDB)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = db.Close(ctx)
	}()

	router := api.NewRouter(api.Deps{
		Config:    cfg,
		Usuarios:  db.Usuarios,
		Productos: db.Productos,
		Boletas:   db.Boletas,
		Health:    db,
		Hasher:    auth.NewHasher(cfg.BcryptCost),
		Tokens:    auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Policy:    auth.DefaultPolicy(),
		Log:       logrus.StandardLogger(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.WithFields(logrus.Fields{"port": cfg.AppPort, "prefix": cfg.APIPrefix}).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("shutdown: %v", err)
	}
}
