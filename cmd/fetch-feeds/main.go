// fetch-feeds — отладочный инструмент: загружает сконфигурированные источники,
// нормализует и классифицирует записи и печатает их в JSON. Ничего не
// отправляет и не пишет в реестр.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/maine/labor_watch_bot/internal/classify"
	"github.com/maine/labor_watch_bot/internal/config"
	"github.com/maine/labor_watch_bot/internal/dates"
	"github.com/maine/labor_watch_bot/internal/news"
	"github.com/maine/labor_watch_bot/internal/sources"
)

func main() {
	feedsPath := flag.String("feeds", "configs/feeds.yaml", "path to feeds config")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	ctx := context.Background()

	feedsCfg, err := config.LoadFeeds(*feedsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load feeds config")
	}

	httpClient := &http.Client{Timeout: 15 * time.Second}
	collector := sources.NewCollector(
		feedsCfg.Groups,
		sources.NewRSSAdapter(httpClient),
		sources.NewHTMLAdapter(httpClient),
		log,
	)

	raw, sourceErrs := collector.Collect(ctx)
	for _, se := range sourceErrs {
		log.Error().Err(se.Err).Str("feed", se.SourceFeed).Msg("source failed")
	}

	classifier := classify.New(nil, nil)
	items := make([]news.Item, 0, len(raw))
	for _, r := range raw {
		if r.Title == "" || r.Link == "" {
			continue
		}
		publishedAt, _ := dates.Parse(r.PublishedRaw, dates.KST)
		items = append(items, news.Item{
			RawItem:     r,
			Category:    classifier.Classify(r.SourceFeed, r.Title, r.Summary),
			PublishedAt: publishedAt,
			ContentID:   news.ContentID(r.Title, r.Link),
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		log.Fatal().Err(err).Msg("encode items")
	}

	log.Info().Int("collected", len(raw)).Int("normalized", len(items)).
		Int("source_errors", len(sourceErrs)).Msg("done")
}
