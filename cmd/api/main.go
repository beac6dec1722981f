package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wellness-planner/internal/catalog"
	"wellness-planner/internal/config"
	"wellness-planner/internal/email"
	apihttp "wellness-planner/internal/http"
	"wellness-planner/internal/llm"
	"wellness-planner/internal/notify"
	"wellness-planner/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cat, err := catalog.Load(ctx, cfg.CatalogSource())
	if err != nil {
		logger.Fatal("load catalog", zap.Error(err))
	}
	logger.Info("catalog loaded", zap.String("version", cat.Version()), zap.Int("products", cat.Len()))

	llmClient, err := llm.NewClient(cfg.LLMProviderConfig(), logger)
	if err != nil {
		logger.Fatal("llm client", zap.Error(err))
	}
	if cfg.LLMAPIKey == "" {
		logger.Warn("llm api key not configured, lifestyle tips will use fallback text")
	}

	var (
		tipsLimiter = service.NewMemoryTipsRateLimiter(cfg.TipsRateWindow, cfg.TipsRateMax)
		store       = service.NewMemoryRecommendationStore()
		redisClient *redis.Client
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory session store", zap.Error(err))
		} else {
			tipsLimiter = service.NewRedisTipsRateLimiter(redisClient, cfg.TipsRateWindow, cfg.TipsRateMax)
			store = service.NewRedisRecommendationStore(redisClient)
		}
		cancel()
	}

	productNames := make([]string, 0, cat.Len())
	for _, p := range cat.Products() {
		productNames = append(productNames, p.Name)
	}
	tipsSvc := service.NewTipsService(llmClient, tipsLimiter, cfg.TipsTimeout, productNames, logger)

	notifier := notify.NewDisabledNotifier()
	if cfg.WebhookURL != "" {
		wh, err := notify.NewWebhookNotifier(cfg.WebhookURL, cfg.WebhookTimeout)
		if err != nil {
			logger.Warn("webhook init failed", zap.Error(err))
		} else {
			notifier = wh
		}
	}

	emailSender := email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}

	shareSvc := service.NewShareTokenService(cfg.ShareSecret, cfg.ShareTTL)
	if !shareSvc.Enabled() {
		logger.Warn("share secret not configured, share links disabled")
	}

	planner := service.NewPlannerService(cat, tipsSvc, store, notifier, shareSvc, emailSender, service.PlannerConfig{
		SessionTTL: cfg.SessionTTL,
		Contact:    cfg.AdvisorContact(),
	}, logger)

	router := apihttp.NewRouter(
		logger,
		apihttp.NewCatalogHandler(logger, cat),
		apihttp.NewFormHandler(logger),
		apihttp.NewRecommendationHandler(logger, planner),
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           apihttp.NewCORSHandler(cfg.CORSAllowedOrigins, router),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
	planner.Wait()
}
