package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const rssBody = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>고용노동부 보도자료</title>
    <item>
      <title>근로기준법 개정안 입법예고</title>
      <link>https://www.moel.go.kr/news/1</link>
      <description>근로기준법 일부개정법률안을 입법예고합니다.</description>
      <pubDate>Mon, 02 Dec 2024 08:00:00 +0900</pubDate>
    </item>
    <item>
      <title>링크 없는 항목</title>
      <description>무시되어야 함</description>
    </item>
    <item>
      <title>두번째 자료</title>
      <link>https://www.moel.go.kr/news/2</link>
      <pubDate>2024.12.01 17:30</pubDate>
    </item>
  </channel>
</rss>`

const atomBody = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>입법예고</title>
  <entry>
    <title>산업안전보건법 시행령 개정</title>
    <link href="https://open.moleg.go.kr/notice/10"/>
    <updated>2024-12-02T08:00:00+09:00</updated>
    <summary>시행령 일부 개정 내용</summary>
  </entry>
</feed>`

func TestRSSAdapter_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(rssBody))
	}))
	defer srv.Close()

	adapter := NewRSSAdapter(srv.Client())
	items, err := adapter.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("Fetch() returned %d items, want 2 (item without link dropped)", len(items))
	}

	first := items[0]
	if first.Title != "근로기준법 개정안 입법예고" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.Link != "https://www.moel.go.kr/news/1" {
		t.Errorf("Link = %q", first.Link)
	}
	if first.PublishedRaw != "Mon, 02 Dec 2024 08:00:00 +0900" {
		t.Errorf("PublishedRaw = %q, want untouched raw date", first.PublishedRaw)
	}
	if first.SourceFeed != srv.URL {
		t.Errorf("SourceFeed = %q, want %q", first.SourceFeed, srv.URL)
	}
	if first.Summary == "" {
		t.Error("Summary is empty, want description text")
	}

	// Нестандартная дата источника уходит дальше как есть: её разбирает
	// нормализатор, а не адаптер.
	if items[1].PublishedRaw != "2024.12.01 17:30" {
		t.Errorf("PublishedRaw = %q", items[1].PublishedRaw)
	}
}

func TestRSSAdapter_FetchAtom(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		w.Write([]byte(atomBody))
	}))
	defer srv.Close()

	adapter := NewRSSAdapter(srv.Client())
	items, err := adapter.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("Fetch() returned %d items, want 1", len(items))
	}
	if items[0].Title != "산업안전보건법 시행령 개정" {
		t.Errorf("Title = %q", items[0].Title)
	}
	// У Atom-записи нет published: дата берётся из updated.
	if items[0].PublishedRaw != "2024-12-02T08:00:00+09:00" {
		t.Errorf("PublishedRaw = %q, want updated value", items[0].PublishedRaw)
	}
}

func TestRSSAdapter_FetchErrors(t *testing.T) {
	t.Run("http error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "forbidden", http.StatusForbidden)
		}))
		defer srv.Close()

		if _, err := NewRSSAdapter(srv.Client()).Fetch(context.Background(), srv.URL); err == nil {
			t.Error("Fetch() error = nil, want error on 403")
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>점검 중입니다</html>"))
		}))
		defer srv.Close()

		if _, err := NewRSSAdapter(srv.Client()).Fetch(context.Background(), srv.URL); err == nil {
			t.Error("Fetch() error = nil, want parse error")
		}
	})
}
