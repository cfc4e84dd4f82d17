// Package sources собирает записи из сконфигурированных источников.
// Отказ одного источника никогда не прерывает сбор остальных: ошибки
// накапливаются и возвращаются вызывающему для подсчёта.
package sources

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/maine/labor_watch_bot/internal/config"
	"github.com/maine/labor_watch_bot/internal/news"
)

// hangul проверяет, есть ли в заголовке корейский текст.
var hangul = regexp.MustCompile(`[가-힣]`)

// Adapter загружает записи одного источника.
type Adapter interface {
	Fetch(ctx context.Context, feedURL string) ([]news.RawItem, error)
}

// Collector обходит группы источников, выбирая адаптер по виду источника
// и применяя групповые фильтры (хангыль, запрещённые домены).
type Collector struct {
	groups []config.FeedGroup
	rss    Adapter
	html   Adapter
	log    zerolog.Logger
}

// NewCollector создаёт новый сборщик.
func NewCollector(groups []config.FeedGroup, rss, html Adapter, log zerolog.Logger) *Collector {
	return &Collector{
		groups: groups,
		rss:    rss,
		html:   html,
		log:    log,
	}
}

// Collect обходит все источники последовательно. Возвращает собранные записи
// и список отказов по источникам.
func (c *Collector) Collect(ctx context.Context) ([]news.RawItem, []news.SourceError) {
	var results []news.RawItem
	var failures []news.SourceError

	for _, group := range c.groups {
		for _, feed := range group.Feeds {
			adapter := c.adapterFor(feed.Kind)
			if adapter == nil {
				c.log.Warn().Str("group", group.Name).Str("kind", feed.Kind).
					Msg("unknown feed kind, skipping")
				continue
			}

			items, err := adapter.Fetch(ctx, feed.URL)
			if err != nil {
				c.log.Error().Err(err).Str("group", group.Name).Str("feed", feed.URL).
					Msg("feed fetch failed")
				failures = append(failures, news.SourceError{SourceFeed: feed.URL, Err: err})
				continue
			}

			kept := applyGroupFilters(group, items)
			c.log.Debug().Str("group", group.Name).Str("feed", feed.URL).
				Int("fetched", len(items)).Int("kept", len(kept)).
				Msg("feed collected")
			results = append(results, kept...)
		}
	}

	return results, failures
}

func (c *Collector) adapterFor(kind string) Adapter {
	switch kind {
	case config.FeedKindRSS, "":
		return c.rss
	case config.FeedKindHTML:
		return c.html
	default:
		return nil
	}
}

// applyGroupFilters применяет настройки группы: отсев записей без хангыля
// в заголовке и записей с запрещённых доменов.
func applyGroupFilters(group config.FeedGroup, items []news.RawItem) []news.RawItem {
	if !group.KoreanOnly && len(group.BlockDomains) == 0 {
		return items
	}

	kept := make([]news.RawItem, 0, len(items))
	for _, it := range items {
		if group.KoreanOnly && !hangul.MatchString(it.Title) {
			continue
		}
		if blockedDomain(group.BlockDomains, it.Link) {
			continue
		}
		kept = append(kept, it)
	}
	return kept
}

func blockedDomain(domains []string, link string) bool {
	for _, d := range domains {
		if strings.Contains(link, d) {
			return true
		}
	}
	return false
}
