package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

const (
	// retryAttempts — количество попыток отправки при ошибке.
	retryAttempts = 3
	// retryDelay — базовая задержка между попытками.
	retryDelay = 2 * time.Second
)

// Sender доставляет подготовленный текст в фиксированный чат.
// Ошибки Bot API не фатальны для пайплайна: отправка best-effort.
type Sender struct {
	client     TelegramClient
	chatID     string
	retryDelay time.Duration // в тестах ноль
	log        zerolog.Logger
}

// NewSender создаёт новый экземпляр отправителя.
func NewSender(client TelegramClient, chatID string, log zerolog.Logger) *Sender {
	return &Sender{
		client:     client,
		chatID:     chatID,
		retryDelay: retryDelay,
		log:        log,
	}
}

// Send отправляет одно сообщение с retry-логикой. Возвращаемая ошибка
// информационная: вызывающий код продолжает работу в любом случае.
func (s *Sender) Send(ctx context.Context, text string) error {
	var lastErr error

	for attempt := 0; attempt < retryAttempts; attempt++ {
		if attempt > 0 && s.retryDelay > 0 {
			delay := s.retryDelay * time.Duration(attempt)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		if err := s.client.SendMessage(ctx, s.chatID, text, "Markdown"); err != nil {
			lastErr = err
			s.log.Warn().Err(err).Int("attempt", attempt+1).Msg("telegram send failed")
			continue
		}
		return nil
	}

	return fmt.Errorf("send after %d attempts: %w", retryAttempts, lastErr)
}
