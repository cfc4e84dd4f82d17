package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/maine/labor_watch_bot/internal/news"
)

// rowDatePattern находит дату (опционально с временем) в тексте строки таблицы.
var rowDatePattern = regexp.MustCompile(`\d{4}[.\-/]\d{1,2}[.\-/]\d{1,2}(?:\s+\d{1,2}:\d{2})?`)

// HTMLAdapter извлекает записи со страниц без машинного фида. Единственный
// такой источник сейчас — список свежих раскрытий DART: таблица, в каждой
// строке ссылка на отчёт и дата.
type HTMLAdapter struct {
	client *http.Client
}

// NewHTMLAdapter создаёт новый адаптер.
func NewHTMLAdapter(client *http.Client) *HTMLAdapter {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTMLAdapter{client: client}
}

// Fetch загружает страницу и собирает записи из строк таблицы.
func (a *HTMLAdapter) Fetch(ctx context.Context, pageURL string) ([]news.RawItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
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

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	var out []news.RawItem
	seen := make(map[string]bool)

	doc.Find("table tbody tr").Each(func(_ int, row *goquery.Selection) {
		if len(out) >= maxItemsPerFeed {
			return
		}

		anchor := row.Find("a").First()
		title := strings.TrimSpace(anchor.Text())
		href, ok := anchor.Attr("href")
		if title == "" || !ok || href == "" {
			return
		}

		link := resolveURL(pageURL, href)
		if link == "" || seen[link] {
			return
		}
		seen[link] = true

		// Дата лежит в одной из ячеек строки; выдёргиваем её по шаблону,
		// чтобы не зависеть от номера колонки.
		publishedRaw := rowDatePattern.FindString(row.Text())

		out = append(out, news.RawItem{
			Title:        title,
			Link:         link,
			PublishedRaw: publishedRaw,
			SourceFeed:   pageURL,
		})
	})

	if len(out) == 0 {
		return nil, fmt.Errorf("no rows recognized at %s", pageURL)
	}

	return out, nil
}

// resolveURL превращает относительную ссылку в абсолютную.
func resolveURL(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ""
	}
	h, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return b.ResolveReference(h).String()
}
