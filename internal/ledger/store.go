// Package ledger хранит реестр уже отправленных записей. Реестр — единственное
// состояние между запусками: наличие записи означает, что повторная отправка
// запрещена навсегда.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/maine/labor_watch_bot/internal/news"
)

// ErrAlreadyDelivered возвращается при повторной попытке записать один и тот же
// идентификатор. Оркестратор обязан проверять IsDelivered до Record; эта ошибка —
// страховка от гонки, а не штатный путь.
var ErrAlreadyDelivered = errors.New("ledger: item already delivered")

const schema = `CREATE TABLE IF NOT EXISTS delivered (
	content_id    TEXT PRIMARY KEY,
	title         TEXT NOT NULL,
	link          TEXT NOT NULL,
	published_raw TEXT NOT NULL DEFAULT '',
	source_feed   TEXT NOT NULL DEFAULT '',
	category      TEXT NOT NULL DEFAULT '',
	first_seen_at TIMESTAMP NOT NULL
)`

// Store — реестр на базе sqlite. Рассчитан на одного пишущего: параллельные
// запуски пайплайна не поддерживаются.
type Store struct {
	db *sql.DB
}

// Open открывает (и при необходимости создаёт) файл реестра.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create ledger schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close закрывает соединение с реестром.
func (s *Store) Close() error {
	return s.db.Close()
}

// IsDelivered сообщает, отправлялась ли запись с данным идентификатором.
func (s *Store) IsDelivered(ctx context.Context, contentID string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM delivered WHERE content_id = ?", contentID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("query ledger: %w", err)
	}
	return n > 0, nil
}

// Record фиксирует отправку. Повторная вставка того же идентификатора
// возвращает ErrAlreadyDelivered — запись никогда не перезаписывается молча.
func (s *Store) Record(ctx context.Context, rec news.DeliveryRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO delivered (content_id, title, link, published_raw, source_feed, category, first_seen_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ContentID, rec.Title, rec.Link, rec.PublishedRaw, rec.SourceFeed, rec.Category,
		rec.FirstSeenAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyDelivered
		}
		return fmt.Errorf("insert delivery record: %w", err)
	}
	return nil
}

// Count возвращает число записей в реестре (для тестов и диагностики).
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM delivered").Scan(&n); err != nil {
		return 0, fmt.Errorf("count ledger: %w", err)
	}
	return n, nil
}

// isUniqueViolation распознаёт нарушение первичного ключа у драйвера
// modernc.org/sqlite, который не экспортирует типизированные коды ошибок.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
