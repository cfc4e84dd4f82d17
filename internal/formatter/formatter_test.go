package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/maine/labor_watch_bot/internal/news"
)

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"[단독] 협상 타결!", `\[단독\] 협상 타결\!`},
		{"a_b*c", `a\_b\*c`},
		{"50% (전년 대비)", `50% \(전년 대비\)`},
		{"", ""},
	}

	for _, tt := range tests {
		if got := EscapeMarkdown(tt.in); got != tt.want {
			t.Errorf("EscapeMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatter_RenderItem(t *testing.T) {
	f := New(nil)

	it := news.Item{
		RawItem: news.RawItem{
			Title:      "[단독] 근로기준법 개정 추진",
			Link:       "https://media.example.com/article/1",
			SourceFeed: "https://news.google.com/rss/search?q=labor",
		},
		Category:    news.CategoryLaborNews,
		PublishedAt: time.Date(2024, 12, 1, 23, 0, 0, 0, time.UTC),
	}

	got := f.RenderItem(it)

	if !strings.Contains(got, `\[단독\] 근로기준법 개정 추진`) {
		t.Errorf("title not escaped: %q", got)
	}
	if !strings.Contains(got, "(https://media.example.com/article/1)") {
		t.Errorf("link missing: %q", got)
	}
	// Дата показывается в KST: 23:00 UTC = 08:00 следующего дня.
	if !strings.Contains(got, "2024-12-02 08:00") {
		t.Errorf("date not in KST: %q", got)
	}
	if !strings.Contains(got, "news.google.com") {
		t.Errorf("source host missing: %q", got)
	}
}

func TestFormatter_RenderItemUnknownDate(t *testing.T) {
	f := New(nil)

	it := news.Item{
		RawItem: news.RawItem{
			Title:      "날짜 없는 기사",
			Link:       "https://media.example.com/2",
			SourceFeed: "https://example.com/feed",
		},
		Category: news.CategoryOther,
	}

	if got := f.RenderItem(it); !strings.Contains(got, "날짜 불명") {
		t.Errorf("unknown date marker missing: %q", got)
	}
}

func TestFormatter_RenderItemTruncates(t *testing.T) {
	f := New(nil)

	it := news.Item{
		RawItem: news.RawItem{
			Title:      strings.Repeat("가", 5000),
			Link:       "https://media.example.com/3",
			SourceFeed: "https://example.com/feed",
		},
		Category: news.CategoryOther,
	}

	got := f.RenderItem(it)
	if len(got) > 4096 {
		t.Errorf("message length %d exceeds telegram limit", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated message has no ellipsis: %q", got[len(got)-20:])
	}
	// Обрезка не должна ломать UTF-8.
	if !strings.ContainsRune(got, '가') || strings.ContainsRune(got, '�') {
		t.Error("truncation produced invalid UTF-8")
	}
}

func TestFormatter_RenderHeader(t *testing.T) {
	f := New(nil)
	now := time.Date(2024, 12, 1, 23, 30, 0, 0, time.UTC) // 08:30 KST следующего дня

	got := f.RenderHeader(now, 24)
	if !strings.Contains(got, "2024-12-02") {
		t.Errorf("header date not in KST: %q", got)
	}
	if !strings.Contains(got, "24시간") {
		t.Errorf("window description missing: %q", got)
	}
}
