package notifier

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"safechat/internal/config"
	"safechat/internal/models"
	"safechat/internal/repository"
)

// TelegramNotifier pushes parent alerts over Telegram for parents who linked
// a chat with the alert bot. It is an optional delivery channel on top of the
// persisted notification record.
type TelegramNotifier struct {
	api     *tgbotapi.BotAPI
	parents repository.ParentRepository
	logger  *zap.Logger
}

// NewTelegramNotifier creates the notifier, or returns (nil, nil) when the
// channel is disabled in configuration.
func NewTelegramNotifier(cfg *config.Config, parents repository.ParentRepository, logger *zap.Logger) (*TelegramNotifier, error) {
	if !cfg.Telegram.Enabled || cfg.Telegram.BotToken == "" {
		logger.Info("Telegram alerts are disabled (telegram.enabled=false or token is empty)")
		return nil, nil
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot API: %w", err)
	}

	logger.Info("Telegram alert bot authorized", zap.String("username", botAPI.Self.UserName))

	return &TelegramNotifier{
		api:     botAPI,
		parents: parents,
		logger:  logger,
	}, nil
}

// NotifyParent sends the alert to the parent's linked chat. Parents without a
// linked chat are skipped silently; the persisted record is their fallback.
func (t *TelegramNotifier) NotifyParent(ctx context.Context, n *models.Notification) error {
	chatID, err := t.parents.GetTelegramChatID(ctx, n.ParentUsername)
	if err != nil {
		return fmt.Errorf("failed to look up parent chat: %w", err)
	}
	if chatID == nil {
		t.logger.Debug("Parent has no linked Telegram chat, skipping push",
			zap.String("parent", n.ParentUsername))
		return nil
	}

	text := fmt.Sprintf(
		"⚠️ %s received a message flagged as %s from %s:\n\n%s",
		n.ReceiverChildUsername, n.RiskType, n.SenderChildUsername, n.Content,
	)

	if _, err := t.api.Send(tgbotapi.NewMessage(*chatID, text)); err != nil {
		return fmt.Errorf("failed to send telegram alert: %w", err)
	}
	return nil
}
