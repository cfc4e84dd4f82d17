// Package formatter превращает нормализованные записи в текст для Telegram.
package formatter

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/maine/labor_watch_bot/internal/news"
)

const (
	// telegramMaxMessageLength — максимальная длина сообщения в Telegram.
	telegramMaxMessageLength = 4096
	ellipsis                 = "..."
	// unknownDate показывается вместо даты, которую не удалось разобрать.
	unknownDate = "날짜 불명"
)

// markdownSpecials — символы, требующие экранирования в Telegram Markdown.
// Дефис стоит последним, чтобы не образовать диапазон внутри класса.
var markdownSpecials = regexp.MustCompile("([_*\\[\\]()~`>#+=|{}.!\\\\-])")

// EscapeMarkdown экранирует спецсимволы Telegram Markdown в тексте.
func EscapeMarkdown(text string) string {
	return markdownSpecials.ReplaceAllString(text, `\$1`)
}

// Formatter форматирует записи. Даты показываются в локальном поясе.
type Formatter struct {
	loc *time.Location
}

// New создаёт форматтер. При nil используется KST.
func New(loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.FixedZone("KST", 9*60*60)
	}
	return &Formatter{loc: loc}
}

// RenderItem возвращает одно Markdown-сообщение для записи:
// категория, кликабельный заголовок, дата и домен источника.
func (f *Formatter) RenderItem(it news.Item) string {
	datestr := unknownDate
	if !it.PublishedAt.IsZero() {
		datestr = it.PublishedAt.In(f.loc).Format("2006-01-02 15:04")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*%s*\n", EscapeMarkdown(it.Category)))
	sb.WriteString(fmt.Sprintf("[%s](%s)\n", EscapeMarkdown(it.Title), it.Link))
	sb.WriteString(fmt.Sprintf("%s · %s", datestr, feedHost(it.SourceFeed)))

	return truncate(sb.String(), telegramMaxMessageLength)
}

// RenderHeader возвращает заголовок дайджеста с датой запуска и описанием окна.
func (f *Formatter) RenderHeader(now time.Time, windowHours int) string {
	local := now.In(f.loc)
	return fmt.Sprintf("🔔 인사노무·노동법·정책 뉴스 (%s)\n최근 %d시간 내 기사만 포함합니다.",
		local.Format("2006-01-02"), windowHours)
}

func feedHost(feedURL string) string {
	u, err := url.Parse(feedURL)
	if err != nil || u.Host == "" {
		return feedURL
	}
	return u.Host
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := limit - len(ellipsis)
	// Не режем посреди UTF-8 последовательности.
	for cut > 0 && text[cut]&0xC0 == 0x80 {
		cut--
	}
	return text[:cut] + ellipsis
}
