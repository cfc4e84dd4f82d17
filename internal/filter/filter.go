// Package filter реализует цепочку отбора записей перед доставкой:
// временное окно → допуск законодательных категорий по белому списку законов →
// топ-N по популярности для многотиражных категорий. Порядок стадий важен:
// ранжирование не должно видеть записи, уже отсечённые окном.
package filter

import (
	"regexp"
	"strings"
	"time"

	"github.com/maine/labor_watch_bot/internal/news"
	"github.com/maine/labor_watch_bot/internal/ranking"
)

// Window — допустимый диапазон дат публикации: [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains сообщает, попадает ли момент в окно. Нулевая дата не попадает никогда.
func (w Window) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	return !t.Before(w.Start) && t.Before(w.End)
}

// DefaultStatutes — белый список законов для категорий законодательных
// уведомлений. Запись допускается, только если упоминает один из них.
var DefaultStatutes = []string{
	"근로기준법",
	"남녀고용평등법",
	"산업안전보건법",
	"중대재해처벌법",
	"최저임금법",
	"근로자퇴직급여보장법",
	"파견근로자보호법",
	"기간제법",
	"고용보험법",
	"산업재해보상보험법",
	"노동조합 및 노동관계조정법",
	"고용정책기본법",
}

// defaultBackupPattern — запасной признак релевантности для записей,
// не назвавших закон напрямую.
var defaultBackupPattern = regexp.MustCompile(`개정안|개정|입법예고|행정예고|시행령|시행규칙|공포|근로시간|임금체계`)

// DefaultTopPerCategory ограничивает многотиражные категории: ESG-новостей
// выходит по нескольку десятков в день, упоминаний KCGS достаточно одного.
var DefaultTopPerCategory = map[string]int{
	news.CategoryESGNews:  3,
	news.CategoryKCGSNews: 1,
}

// lawCategories — категории, проходящие через белый список законов.
var lawCategories = map[string]bool{
	news.CategoryLawNotice:  true,
	news.CategoryLawEnacted: true,
}

// Chain хранит неизменяемые таблицы отбора.
type Chain struct {
	statutes       []string
	backupPattern  *regexp.Regexp
	topPerCategory map[string]int
}

// New создаёт цепочку. Пустые аргументы заменяются значениями по умолчанию.
func New(statutes []string, topPerCategory map[string]int) *Chain {
	if len(statutes) == 0 {
		statutes = DefaultStatutes
	}
	if topPerCategory == nil {
		topPerCategory = DefaultTopPerCategory
	}
	return &Chain{
		statutes:       statutes,
		backupPattern:  defaultBackupPattern,
		topPerCategory: topPerCategory,
	}
}

// Apply прогоняет записи через все стадии. Записи не мутируются, каждая стадия
// только сужает список. Нулевое окно (w == nil) отключает первую стадию:
// в этом режиме записи без даты могут дойти до доставки.
func (c *Chain) Apply(items []news.Item, w *Window) []news.Item {
	out := items
	if w != nil {
		out = c.applyWindow(out, *w)
	}
	out = c.applyWhitelist(out)
	out = c.applyTop(out)
	return out
}

func (c *Chain) applyWindow(items []news.Item, w Window) []news.Item {
	kept := make([]news.Item, 0, len(items))
	for _, it := range items {
		if w.Contains(it.PublishedAt) {
			kept = append(kept, it)
		}
	}
	return kept
}

func (c *Chain) applyWhitelist(items []news.Item) []news.Item {
	kept := make([]news.Item, 0, len(items))
	for _, it := range items {
		if !lawCategories[it.Category] || c.admitLaw(it) {
			kept = append(kept, it)
		}
	}
	return kept
}

// admitLaw допускает законодательную запись, если она называет закон из
// белого списка либо проходит запасной шаблон релевантности.
func (c *Chain) admitLaw(it news.Item) bool {
	text := it.Title + " " + it.Summary
	for _, statute := range c.statutes {
		if strings.Contains(text, statute) {
			return true
		}
	}
	return c.backupPattern.MatchString(text)
}

// applyTop оставляет в ограниченных категориях только представителей из
// топ-K ранкера, сохраняя исходный порядок остальных записей.
func (c *Chain) applyTop(items []news.Item) []news.Item {
	limited := make(map[string][]news.Item)
	for _, it := range items {
		if _, ok := c.topPerCategory[it.Category]; ok {
			limited[it.Category] = append(limited[it.Category], it)
		}
	}
	if len(limited) == 0 {
		return items
	}

	admitted := make(map[string]bool)
	for category, group := range limited {
		for _, rep := range ranking.Top(group, c.topPerCategory[category]) {
			admitted[rep.ContentID] = true
		}
	}

	kept := make([]news.Item, 0, len(items))
	for _, it := range items {
		if _, ok := c.topPerCategory[it.Category]; ok && !admitted[it.ContentID] {
			continue
		}
		kept = append(kept, it)
	}
	return kept
}
