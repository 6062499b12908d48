package main

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"github.com/jerry-619/JobPrep-AI/internal/auth"
	"github.com/jerry-619/JobPrep-AI/internal/cache"
	"github.com/jerry-619/JobPrep-AI/internal/config"
	"github.com/jerry-619/JobPrep-AI/internal/database"
	"github.com/jerry-619/JobPrep-AI/internal/fallback"
	"github.com/jerry-619/JobPrep-AI/internal/genai"
	"github.com/jerry-619/JobPrep-AI/internal/handler"
	"github.com/jerry-619/JobPrep-AI/internal/llm"
	"github.com/jerry-619/JobPrep-AI/internal/logger"
	"github.com/jerry-619/JobPrep-AI/internal/repository"
	"github.com/jerry-619/JobPrep-AI/internal/service"
)

const reportCacheTTL = time.Hour

type application struct {
	DB      *pgxpool.Pool
	Logger  *zap.Logger
	Config  *config.Config
	Handler *handler.Handler
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

	repo := repository.NewRepository(pool)

	gateway := llm.NewClient(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.Timeout)
	library := fallback.MustLoad()

	reportCache := cache.NewReportCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, reportCacheTTL)
	if err := reportCache.Ping(ctx); err != nil {
		sugar.Warnw("redis unreachable, report caching disabled", "err", err)
		reportCache = nil
	}

	interviews := service.NewInterviewService(
		&repo.Interview,
		genai.NewQuestionGenerator(gateway, library, log),
		genai.NewFeedbackEvaluator(gateway, library, log),
		genai.NewReportGenerator(gateway, log),
		reportCache,
		log,
	)

	app := &application{
		DB:     pool,
		Logger: log,
		Config: cfg,
		Handler: &handler.Handler{
			Logger:     log,
			UserRepo:   &repo.User,
			Interviews: interviews,
			TokenMaker: auth.NewJWTMaker(cfg.JWT.Secret),
			JwtTTL:     cfg.JWT.TTL,
		},
	}

	if err := app.serve(); err != nil {
		sugar.Fatal(err)
	}
}
