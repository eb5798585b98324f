package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"safechat/internal/classifier"
	"safechat/internal/config"
	"safechat/internal/filter"
	"safechat/internal/handler"
	"safechat/internal/llm"
	"safechat/internal/notifier"
	"safechat/internal/policy"
	"safechat/internal/repository"
	"safechat/internal/server"
	"safechat/internal/service"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err) // Should not happen in development
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	// Load configuration
	cfgPath := "configs/config.yml"
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Database connection
	db, err := repository.NewPostgresDB(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	repository.MigrateDB(db, logger)

	// Initialize repositories
	childRepo := repository.NewChildRepository(db, logger)
	parentRepo := repository.NewParentRepository(db, logger)
	notificationRepo := repository.NewNotificationRepository(db, logger)

	// Classifier LLM provider
	classifierProvider, err := llm.New(cfg.Classifier.Provider, llm.Config{
		APIKey:      cfg.Classifier.APIKey,
		Model:       cfg.Classifier.Model,
		BaseURL:     cfg.Classifier.BaseURL,
		Temperature: float32(cfg.Classifier.Temperature),
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize classifier provider", zap.Error(err))
	}
	defer classifierProvider.Close()

	messageClassifier := classifier.New(classifierProvider, classifier.Config{
		Timeout: time.Duration(cfg.Classifier.TimeoutSeconds) * time.Second,
	}, logger)

	ages := filter.NewAgeResolver(childRepo, logger)

	// Telegram parent alerts (optional)
	telegramNotifier, err := notifier.NewTelegramNotifier(cfg, parentRepo, logger)
	if err != nil {
		logger.Warn("Failed to initialize Telegram notifier, continuing without it", zap.Error(err))
		telegramNotifier = nil
	}
	var parentNotifier filter.ParentNotifier
	if telegramNotifier != nil {
		parentNotifier = telegramNotifier
	}

	pipeline := filter.NewPipeline(messageClassifier, ages, policy.Default(), notificationRepo, parentNotifier, logger)

	// Handlers
	messageHandler := handler.NewMessageHandler(pipeline, logger)
	notificationHandler := handler.NewNotificationHandler(notificationRepo, logger)

	// Chatbot (optional)
	var chatbotHandler handler.ChatbotHandler
	if cfg.Chatbot.Enabled {
		chatbotProvider, err := llm.New(cfg.Chatbot.Provider, llm.Config{
			APIKey:      cfg.Chatbot.APIKey,
			Model:       cfg.Chatbot.Model,
			BaseURL:     cfg.Chatbot.BaseURL,
			Temperature: float32(cfg.Chatbot.Temperature),
			MaxTokens:   cfg.Chatbot.MaxTokens,
		}, logger)
		if err != nil {
			logger.Fatal("Failed to initialize chatbot provider", zap.Error(err))
		}
		defer chatbotProvider.Close()

		bot := service.NewChatbot(chatbotProvider, ages,
			time.Duration(cfg.Chatbot.TimeoutSeconds)*time.Second, logger)
		chatbotHandler = handler.NewChatbotHandler(bot, logger)
		logger.Info("Chatbot enabled")
	}

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize and run the server
	srv := server.NewServer(cfg, messageHandler, notificationHandler, chatbotHandler, logger)
	go func() {
		if err := srv.Run(cfg.Server.Port); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Application stopped.")
}
