package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mshrynzw/auriary/internal/auth"
	"github.com/mshrynzw/auriary/internal/cache"
	"github.com/mshrynzw/auriary/internal/config"
	"github.com/mshrynzw/auriary/internal/database"
	"github.com/mshrynzw/auriary/internal/handler"
	"github.com/mshrynzw/auriary/internal/logger"
	"github.com/mshrynzw/auriary/internal/repository"
	"github.com/mshrynzw/auriary/internal/sentiment"
	"github.com/mshrynzw/auriary/internal/sentimentapi"
	"github.com/mshrynzw/auriary/pkg"
)

type application struct {
	DB         *pgxpool.Pool
	Redis      *goredis.Client
	Sentiment  *sentimentapi.Client
	Logger     *zap.Logger
	Config     *config.Config
	Repository *repository.Repository
	Handler    *handler.Handler
}

func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, _ := logger.NewLogger(cfg.Env)
	defer log.Sync()
	sugar := log.Sugar()
	sugar.Infof("config loaded, env=%s", cfg.Env)

	pool, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		sugar.Fatal(err)
	}
	defer pool.Close()

	var rdb *goredis.Client
	if cfg.Redis.Addr != "" {
		rdb = cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := cache.Ping(ctx, rdb); err != nil {
			sugar.Warnw("redis unreachable, analysis cache disabled", "err", err)
			rdb = nil
		}
	}

	var sentimentClient *sentimentapi.Client
	if cfg.Sentiment.BaseURL != "" {
		sentimentClient = sentimentapi.NewClient(cfg.Sentiment.BaseURL, cfg.Sentiment.Timeout)
	}

	var crypto *pkg.Crypto
	if cfg.Crypto.Secret != "" {
		crypto, err = pkg.NewCrypto(cfg.Crypto.Secret)
		if err != nil {
			sugar.Fatal(err)
		}
	}

	repo := repository.NewRepository(pool, crypto)
	engine := sentimentapi.NewEngine(sentimentClient, sentiment.NewMockEngine(nil), log)

	h := &handler.Handler{
		Logger:          log,
		Repository:      repo,
		TokenMaker:      auth.NewJWTMaker(cfg.JWT.Secret),
		Engine:          engine,
		AnalysisCache:   cache.NewAnalysisCache(rdb, cfg.Redis.CacheTTL),
		AccessTokenTTL:  cfg.JWT.AccessTokenTTL,
		RefreshTokenTTL: cfg.JWT.RefreshTokenTTL,
	}

	app := &application{
		DB:         pool,
		Redis:      rdb,
		Sentiment:  sentimentClient,
		Logger:     log,
		Config:     cfg,
		Repository: repo,
		Handler:    h,
	}

	if err := app.serve(); err != nil {
		sugar.Fatal(err)
	}
}
