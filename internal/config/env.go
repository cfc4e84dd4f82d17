package config

import (
	"fmt"
	"os"
)

// EnvConfig содержит токены и другие переменные окружения.
type EnvConfig struct {
	TelegramToken  string
	TelegramChatID string
	DryRun         bool // не отправлять и не писать в реестр, только логи
}

// LoadEnvConfig читает переменные окружения и возвращает конфигурацию.
// Возвращает ошибку, если обязательные переменные отсутствуют или пустые.
func LoadEnvConfig() (*EnvConfig, error) {
	dryRun := os.Getenv("DRY_RUN") == "1"

	token := os.Getenv("TELEGRAM_TOKEN")
	chatID := os.Getenv("TELEGRAM_CHAT_ID")
	if !dryRun {
		if token == "" {
			return nil, fmt.Errorf("TELEGRAM_TOKEN environment variable is required")
		}
		if chatID == "" {
			return nil, fmt.Errorf("TELEGRAM_CHAT_ID environment variable is required")
		}
	}

	return &EnvConfig{
		TelegramToken:  token,
		TelegramChatID: chatID,
		DryRun:         dryRun,
	}, nil
}
