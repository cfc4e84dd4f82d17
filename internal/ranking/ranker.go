// Package ranking оценивает «популярность» сюжета без счётчиков просмотров:
// чем больше изданий опубликовали материал с одним и тем же нормализованным
// заголовком, тем выше сюжет. Внутри группы свежие записи важнее старых.
package ranking

import (
	"regexp"
	"sort"
	"strings"

	"github.com/maine/labor_watch_bot/internal/news"
)

// bracketed вырезает пометки изданий и рубрик: [단독], (종합), 【속보】 и т.п.
var bracketed = regexp.MustCompile(`\[[^\]]*\]|\([^)]*\)|【[^】]*】`)

var spaces = regexp.MustCompile(`\s+`)

// NormalizeTitle приводит заголовок к ключу группировки: нижний регистр,
// без скобочных пометок, с одиночными пробелами.
func NormalizeTitle(title string) string {
	t := bracketed.ReplaceAllString(title, " ")
	t = strings.ToLower(t)
	t = spaces.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

type bucket struct {
	key   string
	items []news.Item
}

// newest возвращает самую свежую запись группы. Записи без даты считаются
// старше любых датированных и выбираются только за неимением лучшего.
func (b bucket) newest() news.Item {
	best := b.items[0]
	for _, it := range b.items[1:] {
		if it.PublishedAt.After(best.PublishedAt) {
			best = it
		}
	}
	return best
}

// Top группирует записи по нормализованному заголовку и возвращает не более k
// представителей: по одному (самому свежему) из каждой группы, группы в порядке
// убывания размера, при равенстве — по самой свежей записи группы.
func Top(items []news.Item, k int) []news.Item {
	if len(items) == 0 || k <= 0 {
		return nil
	}

	byKey := make(map[string]*bucket)
	order := make([]*bucket, 0, len(items))
	for _, it := range items {
		key := NormalizeTitle(it.Title)
		if key == "" {
			// Пустой ключ после нормализации: группируем по ссылке,
			// чтобы такие записи не слипались между собой.
			key = it.Link
		}
		b, ok := byKey[key]
		if !ok {
			b = &bucket{key: key}
			byKey[key] = b
			order = append(order, b)
		}
		b.items = append(b.items, it)
	}

	sort.SliceStable(order, func(i, j int) bool {
		if len(order[i].items) != len(order[j].items) {
			return len(order[i].items) > len(order[j].items)
		}
		return order[i].newest().PublishedAt.After(order[j].newest().PublishedAt)
	})

	if k > len(order) {
		k = len(order)
	}
	out := make([]news.Item, 0, k)
	for _, b := range order[:k] {
		out = append(out, b.newest())
	}
	return out
}
