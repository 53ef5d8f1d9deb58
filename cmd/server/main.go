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
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/youruser/birthdaycard/internal/api"
	"github.com/youruser/birthdaycard/internal/cards"
	"github.com/youruser/birthdaycard/internal/config"
	"github.com/youruser/birthdaycard/internal/genai"
	imagepkg "github.com/youruser/birthdaycard/internal/image"
	"github.com/youruser/birthdaycard/internal/logging"
	"github.com/youruser/birthdaycard/internal/service"
)

func main() {
	v, err := config.LoadConfig("./config", ".")
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	cfg, err := config.ParseConfig(v)
	if err != nil {
		logrus.Fatalf("parse config: %v", err)
	}

	release := cfg.Server.Mode == gin.ReleaseMode
	if release {
		gin.SetMode(gin.ReleaseMode)
	}
	log := logging.New(os.Stdout, cfg.Log.Level, release)

	gen, err := newGenerator(context.Background(), cfg.Genai)
	if err != nil {
		log.Fatalf("genai: %v", err)
	}
	renderer, err := imagepkg.NewRenderer(cfg.Render.Title)
	if err != nil {
		log.Fatalf("renderer: %v", err)
	}
	store, closeStore, err := newStore(cfg.Redis, log)
	if err != nil {
		log.Fatalf("card store: %v", err)
	}
	defer closeStore()

	svc := service.NewCardService(gen, renderer, store, log)
	handler := api.NewHandler(svc, cfg.Server.BaseURL, cfg.Server.MaxUploadMB)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           api.NewRouter(handler, log),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server shutdown")
	}
}

func newGenerator(ctx context.Context, cfg config.GenaiConfig) (genai.Generator, error) {
	if cfg.Provider == "local" {
		return genai.NewLocal(), nil
	}
	return genai.NewGemini(ctx, genai.GeminiConfig{
		APIKey:     cfg.APIKey,
		Endpoint:   cfg.Endpoint,
		ImageModel: cfg.ImageModel,
		TextModel:  cfg.TextModel,
		Timeout:    cfg.Timeout,
	})
}

// newStore uses redis when an address is configured and process memory
// otherwise.
func newStore(cfg config.RedisConfig, log logrus.FieldLogger) (cards.Store, func(), error) {
	if cfg.Addr == "" {
		log.Warn("redis.addr is empty, cards are kept in memory")
		return cards.NewMemoryStore(), func() {}, nil
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	store, err := cards.NewRedisStore(ctx, client, cfg.TTL)
	if err != nil {
		client.Close()
		return nil, nil, err
	}
	return store, func() { client.Close() }, nil
}
