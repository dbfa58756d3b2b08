package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"botrental/internal/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const sendAttempts = 3

// TelegramSender delivers messages through the Bot API with a small bounded
// retry.
type TelegramSender struct {
	bot      *tgbotapi.BotAPI
	adminIDs []int64
	log      *slog.Logger
}

func NewTelegramSender(token string, adminIDs []int64) (*TelegramSender, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}

	log := logger.With("component", "telegram_sender")
	log.Info("telegram sender authorized", "username", bot.Self.UserName)

	return &TelegramSender{bot: bot, adminIDs: adminIDs, log: log}, nil
}

// Send delivers text to the recipient's chat, retrying transient failures.
func (s *TelegramSender) Send(ctx context.Context, recipientID int64, text string) error {
	msg := tgbotapi.NewMessage(recipientID, text)

	var lastErr error
	for attempt := 1; attempt <= sendAttempts; attempt++ {
		if _, lastErr = s.bot.Send(msg); lastErr == nil {
			return nil
		}

		s.log.Warn("message delivery failed",
			"recipient", recipientID, "attempt", attempt, "error", lastErr)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
		}
	}
	return fmt.Errorf("send message after %d attempts: %w", sendAttempts, lastErr)
}

// NotifyAdmins fans text out to every configured admin chat. Failures are
// logged and dropped.
func (s *TelegramSender) NotifyAdmins(ctx context.Context, text string) {
	for _, id := range s.adminIDs {
		if err := s.Send(ctx, id, text); err != nil {
			s.log.Warn("admin notification dropped", "admin", id, "error", err)
		}
	}
}
