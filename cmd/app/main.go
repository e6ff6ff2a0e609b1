package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"socrates-bot/internal/api"
	"socrates-bot/internal/bot"
	"socrates-bot/internal/repository"
	"socrates-bot/internal/service"
	"socrates-bot/pkg/logger"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	err = logger.Initialize(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zapLogger := logger.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := repository.New(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to initialize repository", zap.Error(err))
	}
	defer repo.Close()

	userService := service.NewUserService(repo)
	sessions := service.NewSessionStore(cfg.Session.TTL)
	go sessions.Run(ctx)

	tg, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		zapLogger.Fatal("Failed to create bot client", zap.Error(err))
	}

	dispatcher := bot.NewDispatcher(tg, userService, sessions, bot.Config{
		BotUsername: cfg.Telegram.BotUsername,
		OwnerID:     cfg.Telegram.OwnerID,
		GroupLink:   cfg.Telegram.GroupLink,
		ChannelLink: cfg.Telegram.ChannelLink,
	})

	router := gin.New()
	router.Use(gin.Recovery())
	api.NewWebhookRoutes(router.Group("/"), dispatcher, cfg.Telegram.WebhookSecret)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)

	if cfg.Telegram.UseWebhook {
		zapLogger.Info("Starting webhook server", zap.String("addr", addr))
		if err := router.Run(addr); err != nil {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
		return
	}

	// Polling mode: the HTTP server stays up for health checks only.
	go func() {
		if err := router.Run(addr); err != nil {
			zapLogger.Error("HTTP server stopped", zap.Error(err))
		}
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := tg.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		tg.StopReceivingUpdates()
	}()

	zapLogger.Info("Bot started", zap.String("username", tg.Self.UserName))
	for update := range updates {
		dispatcher.HandleUpdate(ctx, update)
	}
}
