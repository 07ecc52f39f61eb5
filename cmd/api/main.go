package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"
	"github.com/shakthishetty/Interview-Prep-Ai/internal/agent"
	"github.com/shakthishetty/Interview-Prep-Ai/internal/auth"
	"github.com/shakthishetty/Interview-Prep-Ai/internal/cache"
	"github.com/shakthishetty/Interview-Prep-Ai/internal/config"
	"github.com/shakthishetty/Interview-Prep-Ai/internal/database"
	"github.com/shakthishetty/Interview-Prep-Ai/internal/feedback"
	"github.com/shakthishetty/Interview-Prep-Ai/internal/fetcher"
	"github.com/shakthishetty/Interview-Prep-Ai/internal/gemini"
	"github.com/shakthishetty/Interview-Prep-Ai/internal/handler"
	"github.com/shakthishetty/Interview-Prep-Ai/internal/logger"
	"github.com/shakthishetty/Interview-Prep-Ai/internal/payment"
	"github.com/shakthishetty/Interview-Prep-Ai/internal/repository"
	"github.com/shakthishetty/Interview-Prep-Ai/internal/voice"
	"go.uber.org/zap"
)

type application struct {
	DB         *pgxpool.Pool
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

	if err := database.Migrate(cfg.DB.DSN); err != nil {
		sugar.Fatal(err)
	}

	pool, err := database.Connect(ctx, cfg.DB.DSN, cfg.DB.MaxOpenConns, cfg.DB.MaxConnLife)
	if err != nil {
		sugar.Fatal(err)
	}
	defer pool.Close()

	redisClient := cache.NewRedisClient(cfg.Redis)
	if err := cache.Ping(ctx, redisClient); err != nil {
		sugar.Fatalf("redis unreachable: %v", err)
	}

	repo := repository.NewRepository(pool)
	geminiClient := gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model)
	generator := feedback.NewGenerator(geminiClient, repo, log, cfg.Gemini.Timeout, cfg.Gemini.MaxRetries)
	payments := payment.NewService(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret, cfg.Stripe.BaseURL)

	calls := handler.NewCallRegistry(func() agent.VoiceAgent {
		return voice.NewClient(cfg.Vapi.Token, cfg.Vapi.BaseURL, log)
	})

	app := &application{
		DB:         pool,
		Logger:     log,
		Config:     cfg,
		Repository: repo,
		Handler: &handler.Handler{
			Logger:          log,
			Repository:      repo,
			TokenMaker:      auth.NewJWTMaker(cfg.JWT.Secret),
			Sessions:        cache.NewSessionStore(redisClient),
			SessionTTL:      cfg.JWT.SessionTTL,
			Secure:          cfg.IsProduction(),
			Gemini:          geminiClient,
			Generator:       generator,
			Payments:        payments,
			Fetcher:         fetcher.NewFetcher(),
			Calls:           calls,
			VapiWorkflowID:  cfg.Vapi.WorkflowID,
			VapiAssistantID: cfg.Vapi.AssistantID,
		},
	}

	if err := app.serve(); err != nil {
		sugar.Fatal(err)
	}
}
