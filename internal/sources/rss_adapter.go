package sources

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/maine/labor_watch_bot/internal/news"
)

// Лимит: обрабатываем только первые 100 записей фида (обычно самые свежие).
// Защищает от лент, отдающих тысячи архивных записей.
const maxItemsPerFeed = 100

// RSSAdapter загружает записи из RSS 2.0 и Atom фидов. Через него же ходят
// поисковые фиды Google News — это обычный RSS с query в URL.
type RSSAdapter struct {
	client *http.Client
	parser *gofeed.Parser
}

// NewRSSAdapter создаёт новый адаптер.
func NewRSSAdapter(client *http.Client) *RSSAdapter {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &RSSAdapter{
		client: client,
		parser: gofeed.NewParser(),
	}
}

// Fetch загружает фид и отображает его записи в RawItem.
// Дата публикации передаётся дальше сырой строкой: её разбором занимается
// нормализатор, а не адаптер.
func (a *RSSAdapter) Fetch(ctx context.Context, feedURL string) ([]news.RawItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	setBrowserHeaders(req)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	feed, err := a.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	items := feed.Items
	if len(items) > maxItemsPerFeed {
		items = items[:maxItemsPerFeed]
	}

	out := make([]news.RawItem, 0, len(items))
	for _, item := range items {
		title := strings.TrimSpace(item.Title)
		link := strings.TrimSpace(item.Link)
		if title == "" || link == "" {
			continue
		}

		publishedRaw := item.Published
		if publishedRaw == "" {
			// Atom-ленты часто заполняют только updated.
			publishedRaw = item.Updated
		}

		out = append(out, news.RawItem{
			Title:        title,
			Link:         link,
			Summary:      strings.TrimSpace(item.Description),
			PublishedRaw: strings.TrimSpace(publishedRaw),
			SourceFeed:   feedURL,
		})
	}

	return out, nil
}

// setBrowserHeaders выставляет правдоподобные заголовки браузера:
// часть государственных лент отдаёт 403 на «голые» запросы.
func setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml, text/html, */*")
	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7")
	req.Header.Set("Connection", "keep-alive")
}
