package notifier

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"mailtriage/internal/models"
)

// TelegramNotifier posts review alerts to a support channel.
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger
}

func NewTelegramNotifier(token string, chatID int64, logger *zap.Logger) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &TelegramNotifier{
		api:    api,
		chatID: chatID,
		logger: logger,
	}, nil
}

func (n *TelegramNotifier) NotifyReview(email *models.Email) error {
	text := fmt.Sprintf("📬 Email #%d precisa de revisão humana\n\nDe: %s\nAssunto: %s\nCategoria: %s (confiança %.2f)",
		email.ID, email.FromEmail, email.Subject, email.Category, email.Confidence)

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send review notification: %w", err)
	}

	n.logger.Debug("Sent review notification",
		zap.Int64("email_id", email.ID),
		zap.Int64("chat_id", n.chatID))
	return nil
}
