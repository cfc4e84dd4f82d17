package ledger

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/maine/labor_watch_bot/internal/news"
)

func testRecord(id string) news.DeliveryRecord {
	return news.DeliveryRecord{
		ContentID:    id,
		Title:        "근로기준법 개정안 입법예고",
		Link:         "https://law.example.com/1",
		PublishedRaw: "Mon, 02 Dec 2024 08:00:00 +0900",
		SourceFeed:   "http://open.moleg.go.kr/data/xml/li_rssSH01.xml",
		Category:     news.CategoryLawNotice,
		FirstSeenAt:  time.Date(2024, 12, 2, 8, 0, 0, 0, time.UTC),
	}
}

func TestStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	t.Run("unknown id is not delivered", func(t *testing.T) {
		delivered, err := store.IsDelivered(ctx, "missing")
		if err != nil {
			t.Fatalf("IsDelivered() error = %v", err)
		}
		if delivered {
			t.Error("IsDelivered() = true for unknown id")
		}
	})

	t.Run("record then lookup", func(t *testing.T) {
		if err := store.Record(ctx, testRecord("id-1")); err != nil {
			t.Fatalf("Record() error = %v", err)
		}

		delivered, err := store.IsDelivered(ctx, "id-1")
		if err != nil {
			t.Fatalf("IsDelivered() error = %v", err)
		}
		if !delivered {
			t.Error("IsDelivered() = false after Record")
		}
	})

	t.Run("duplicate insert fails loudly", func(t *testing.T) {
		err := store.Record(ctx, testRecord("id-1"))
		if !errors.Is(err, ErrAlreadyDelivered) {
			t.Fatalf("Record() duplicate error = %v, want ErrAlreadyDelivered", err)
		}

		n, err := store.Count(ctx)
		if err != nil {
			t.Fatalf("Count() error = %v", err)
		}
		if n != 1 {
			t.Errorf("Count() = %d after duplicate insert, want 1", n)
		}
	})
}

// Реестр переживает перезапуск процесса: записи видны после переоткрытия файла.
func TestStore_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	ctx := context.Background()

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := store.Record(ctx, testRecord("persist-1")); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	delivered, err := reopened.IsDelivered(ctx, "persist-1")
	if err != nil {
		t.Fatalf("IsDelivered() error = %v", err)
	}
	if !delivered {
		t.Error("record lost after reopen")
	}
}
