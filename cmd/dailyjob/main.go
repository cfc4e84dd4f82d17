package main

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/maine/labor_watch_bot/internal/app"
	"github.com/maine/labor_watch_bot/internal/classify"
	"github.com/maine/labor_watch_bot/internal/config"
	"github.com/maine/labor_watch_bot/internal/filter"
	"github.com/maine/labor_watch_bot/internal/formatter"
	"github.com/maine/labor_watch_bot/internal/ledger"
	"github.com/maine/labor_watch_bot/internal/sources"
	"github.com/maine/labor_watch_bot/internal/telegram"
)

// Один проход курации. Расписание (каждый день в 08:00 KST) обеспечивает
// внешний cron; повторный запуск безопасен благодаря реестру.
func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := context.Background()

	rootCfg, err := config.LoadRoot("configs/pipeline.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("load pipeline config")
	}

	feedsCfg, err := config.LoadFeeds("configs/feeds.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("load feeds config")
	}

	envCfg, err := config.LoadEnvConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("load env config")
	}

	ledgerPath := rootCfg.Pipeline.LedgerPath
	if ledgerPath == "" {
		ledgerPath = "state/ledger.db"
	}
	if err := os.MkdirAll(filepath.Dir(ledgerPath), 0o755); err != nil {
		log.Fatal().Err(err).Msg("create ledger directory")
	}
	store, err := ledger.Open(ledgerPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open ledger")
	}
	defer store.Close()

	httpClient := &http.Client{Timeout: 15 * time.Second}
	collector := sources.NewCollector(
		feedsCfg.Groups,
		sources.NewRSSAdapter(httpClient),
		sources.NewHTMLAdapter(httpClient),
		log,
	)

	var sender app.Sender
	if envCfg.DryRun {
		sender = dryRunSender{log: log}
	} else {
		sender = telegram.NewSender(telegram.NewClient(envCfg.TelegramToken), envCfg.TelegramChatID, log)
	}

	p := app.NewPipeline(app.PipelineDeps{
		Collector:     collector,
		Classifier:    classify.New(nil, nil),
		Curator:       filter.New(rootCfg.Pipeline.StatuteWhitelist, rootCfg.Pipeline.TopPerCategory),
		Ledger:        store,
		Renderer:      formatter.New(nil),
		Sender:        sender,
		WindowHours:   rootCfg.Pipeline.WindowHours,
		WindowLag:     time.Duration(rootCfg.Pipeline.WindowLagMinutes) * time.Minute,
		DeliveryDelay: time.Duration(rootCfg.Pipeline.DeliveryDelayMS) * time.Millisecond,
		Log:           log,
	})

	report, err := p.RunOnce(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("pipeline failed")
	}

	log.Info().
		Int("collected", report.Collected).
		Int("curated", report.Curated).
		Int("delivered", report.Delivered).
		Int("skipped", report.Skipped).
		Int("source_errors", report.SourceErrors).
		Int("delivery_errors", report.DeliveryErrors).
		Msg("pipeline completed")
}

// dryRunSender печатает сообщения в лог вместо отправки в Telegram.
type dryRunSender struct {
	log zerolog.Logger
}

func (s dryRunSender) Send(ctx context.Context, text string) error {
	s.log.Info().Str("message", text).Msg("dry-run delivery")
	return nil
}
