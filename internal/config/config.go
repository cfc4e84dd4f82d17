package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type (
	// Root объединяет все конфигурационные блоки.
	Root struct {
		Pipeline Pipeline `yaml:"pipeline"`
	}

	// Pipeline описывает параметры прохода курации.
	Pipeline struct {
		WindowHours      int `yaml:"window_hours"`       // глубина окна, часов назад от запуска
		WindowLagMinutes int `yaml:"window_lag_minutes"` // отступ конца окна от «сейчас»
		DeliveryDelayMS  int `yaml:"delivery_delay_ms"`  // пауза между отправками

		LedgerPath string `yaml:"ledger_path"`

		// TopPerCategory ограничивает многотиражные категории топ-K по популярности.
		TopPerCategory map[string]int `yaml:"top_per_category,omitempty"`
		// StatuteWhitelist — белый список законов для законодательных категорий.
		StatuteWhitelist []string `yaml:"statute_whitelist,omitempty"`
	}

	// FeedsRoot описывает список источников по группам.
	FeedsRoot struct {
		Groups []FeedGroup `yaml:"groups"`
	}

	// FeedGroup — группа источников одной тематики.
	FeedGroup struct {
		Name string `yaml:"name"`
		// KoreanOnly отбрасывает записи без хангыля в заголовке
		// (англоязычный шум в поисковых фидах).
		KoreanOnly bool `yaml:"korean_only,omitempty"`
		// BlockDomains исключает записи по домену ссылки
		// (например, собственные публикации KCGS).
		BlockDomains []string `yaml:"block_domains,omitempty"`
		Feeds        []Feed   `yaml:"feeds"`
	}

	// Feed — один источник. Kind выбирает адаптер: rss или html.
	Feed struct {
		URL  string `yaml:"url"`
		Kind string `yaml:"kind"`
	}
)

// Виды адаптеров источников.
const (
	FeedKindRSS  = "rss"
	FeedKindHTML = "html"
)

// LoadRoot читает основной файл конфигурации.
func LoadRoot(path string) (Root, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Root{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Root
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Root{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// LoadFeeds читает конфиг со списком источников.
func LoadFeeds(path string) (FeedsRoot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FeedsRoot{}, fmt.Errorf("read feeds config: %w", err)
	}

	var cfg FeedsRoot
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FeedsRoot{}, fmt.Errorf("unmarshal feeds config: %w", err)
	}
	return cfg, nil
}
