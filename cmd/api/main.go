package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/VenkataVardineni/careerbuildai/internal/auth"
	"github.com/VenkataVardineni/careerbuildai/internal/cache"
	"github.com/VenkataVardineni/careerbuildai/internal/config"
	"github.com/VenkataVardineni/careerbuildai/internal/database"
	"github.com/VenkataVardineni/careerbuildai/internal/groq"
	"github.com/VenkataVardineni/careerbuildai/internal/handler"
	"github.com/VenkataVardineni/careerbuildai/internal/logger"
	"github.com/VenkataVardineni/careerbuildai/internal/repository"
	"github.com/VenkataVardineni/careerbuildai/internal/resume"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: could not load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	zlog.Info("starting careerbuildai api", zap.String("config", cfg.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DB.DSN, cfg.DB.MaxOpenConns, cfg.DB.MaxConnLife)
	if err != nil {
		zlog.Fatal("database connect failed", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, zlog); err != nil {
		zlog.Fatal("database migrate failed", zap.Error(err))
	}

	var sessions *cache.SessionStore
	if cfg.Redis.Addr != "" {
		rdb := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := cache.Ping(ctx, rdb); err != nil {
			zlog.Fatal("redis ping failed", zap.Error(err))
		}
		sessions = cache.NewSessionStore(rdb)
		zlog.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
	} else {
		zlog.Warn("redis not configured, access-token revocation disabled")
	}

	h := &handler.Handler{
		Logger: zlog,
		Store:  repository.NewRepository(pool),
		AI: groq.NewClient(groq.Options{
			APIKey:          cfg.Groq.APIKey,
			Model:           cfg.Groq.Model,
			BaseURL:         cfg.Groq.BaseURL,
			QuestionTimeout: cfg.Groq.QuestionTimeout,
			FeedbackTimeout: cfg.Groq.FeedbackTimeout,
		}),
		Resume:     resume.NewParser(),
		TokenMaker: auth.NewJWTMaker(cfg.JWT.Secret),
		Sessions:   sessions,
		AccessTTL:  cfg.JWT.AccessTokenTTL,
		RefreshTTL: cfg.JWT.RefreshTokenTTL,
		UploadDir:  cfg.Upload.Dir,
	}

	if err := serve(cfg, zlog, routes(cfg, zlog, h)); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
