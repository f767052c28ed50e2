package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/redis/go-redis/v9"

	"github.com/telepathbot/telepath/internal/ai"
	"github.com/telepathbot/telepath/internal/api"
	"github.com/telepathbot/telepath/internal/bot"
	"github.com/telepathbot/telepath/internal/config"
	"github.com/telepathbot/telepath/internal/logger"
	"github.com/telepathbot/telepath/internal/provider/dub"
	"github.com/telepathbot/telepath/internal/repository/postgres"
	"github.com/telepathbot/telepath/internal/repository/rediscache"
	"github.com/telepathbot/telepath/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		zlog.Fatalw("failed to connect to database", "error", err)
	}

	// Initialize repositories
	repos := postgres.NewRepositories(db)

	// Optional Redis read-through cache for link lookups
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		repos.Links = rediscache.NewLinkCache(repos.Links, rdb, zlog)
		zlog.Infow("link cache enabled", "addr", cfg.RedisAddr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize external clients
	dubClient := dub.NewClient(cfg.DubAPIKey, zlog)

	gemini, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		zlog.Fatalw("failed to create gemini client", "error", err)
	}
	defer gemini.Close()

	// Initialize services
	services := service.NewServices(repos, dubClient, gemini, zlog)

	// Initialize Telegram client
	tg, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		zlog.Fatalw("failed to create telegram client", "error", err)
	}

	b := bot.New(tg, services, bot.NewGate(cfg.AllowedUserIDs), zlog)

	// One-time profile setup, guarded by persisted flags
	go b.ConfigureProfile(ctx)

	// Health endpoints
	srv := &http.Server{
		Addr:         cfg.HealthAddr,
		Handler:      api.NewRouter(postgres.Pinger{DB: db}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	go func() {
		zlog.Infow("health server starting", "addr", cfg.HealthAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Errorw("health server failed", "error", err)
		}
	}()

	// Consume updates until interrupted
	b.Run(ctx)

	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Errorw("health server shutdown failed", "error", err)
	}

	zlog.Info("stopped")
}
