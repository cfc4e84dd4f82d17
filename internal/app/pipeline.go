// Package app собирает конвейер курации: нормализация → отбор →
// идемпотентная доставка через реестр.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/maine/labor_watch_bot/internal/dates"
	"github.com/maine/labor_watch_bot/internal/filter"
	"github.com/maine/labor_watch_bot/internal/ledger"
	"github.com/maine/labor_watch_bot/internal/news"
)

// ErrNotConfigured возвращается, когда пайплайн запущен без обязательных зависимостей.
var ErrNotConfigured = errors.New("pipeline dependencies not configured")

// Clock определяет источник времени (удобно подменять в тестах).
type Clock func() time.Time

// SourceCollector агрегирует записи из подключённых источников.
// Отказы отдельных источников возвращаются списком, а не ошибкой.
type SourceCollector interface {
	Collect(ctx context.Context) ([]news.RawItem, []news.SourceError)
}

// Classifier присваивает записи категорию.
type Classifier interface {
	Classify(sourceFeed, title, summary string) string
}

// Curator применяет цепочку отбора к нормализованным записям.
type Curator interface {
	Apply(items []news.Item, w *filter.Window) []news.Item
}

// Ledger — реестр отправленных записей.
type Ledger interface {
	IsDelivered(ctx context.Context, contentID string) (bool, error)
	Record(ctx context.Context, rec news.DeliveryRecord) error
}

// Renderer превращает запись в текст сообщения.
type Renderer interface {
	RenderItem(it news.Item) string
	RenderHeader(now time.Time, windowHours int) string
}

// Sender публикует подготовленное сообщение. Ошибки не фатальны.
type Sender interface {
	Send(ctx context.Context, text string) error
}

// Report — наблюдаемый итог одного прохода.
type Report struct {
	Collected      int
	Inadmissible   int // записи без заголовка или ссылки
	Curated        int
	Delivered      int
	Skipped        int // уже были в реестре
	SourceErrors   int
	DeliveryErrors int
	PerCategory    map[string]int
}

// PipelineDeps перечисляет зависимости пайплайна.
type PipelineDeps struct {
	Collector  SourceCollector
	Classifier Classifier
	Curator    Curator
	Ledger     Ledger
	Renderer   Renderer
	Sender     Sender
	Clock      Clock

	// Location — пояс для дат без явной зоны.
	Location *time.Location
	// WindowHours задаёт глубину окна; 0 отключает временной фильтр целиком.
	WindowHours int
	// WindowLag отодвигает конец окна от «сейчас», чтобы не гоняться за
	// наполовину опубликованными записями.
	WindowLag time.Duration
	// DeliveryDelay — пауза между отправками; в тестах ноль.
	DeliveryDelay time.Duration

	Log zerolog.Logger
}

// Pipeline инкапсулирует один проход курации.
type Pipeline struct {
	deps PipelineDeps
}

// NewPipeline создаёт новый экземпляр пайплайна.
func NewPipeline(deps PipelineDeps) *Pipeline {
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.Location == nil {
		deps.Location = dates.KST
	}
	return &Pipeline{deps: deps}
}

// RunOnce исполняет один проход: собирает, нормализует, отбирает и доставляет.
// Ошибку возвращает только невосстановимый отказ реестра; всё остальное
// учитывается в отчёте.
func (p *Pipeline) RunOnce(ctx context.Context) (Report, error) {
	report := Report{PerCategory: make(map[string]int)}

	if err := p.validateDeps(); err != nil {
		return report, err
	}

	now := p.deps.Clock()
	log := p.deps.Log.With().Str("run_id", uuid.NewString()).Logger()

	var window *filter.Window
	if p.deps.WindowHours > 0 {
		window = &filter.Window{
			Start: now.Add(-time.Duration(p.deps.WindowHours) * time.Hour),
			End:   now.Add(-p.deps.WindowLag),
		}
	}

	log.Info().Msg("collecting items from sources")
	raw, sourceErrs := p.deps.Collector.Collect(ctx)
	report.Collected = len(raw)
	report.SourceErrors = len(sourceErrs)
	log.Info().Int("collected", len(raw)).Int("source_errors", len(sourceErrs)).
		Msg("collection finished")

	items := p.normalize(raw, &report)
	log.Info().Int("normalized", len(items)).Msg("normalization finished")

	curated := p.deps.Curator.Apply(items, window)
	report.Curated = len(curated)
	log.Info().Int("curated", len(curated)).Msg("curation finished")

	// Сверка с реестром до доставки: заголовок дайджеста отправляется только
	// когда есть хотя бы одна новая запись.
	pending := make([]news.Item, 0, len(curated))
	for _, it := range curated {
		delivered, err := p.deps.Ledger.IsDelivered(ctx, it.ContentID)
		if err != nil {
			return report, fmt.Errorf("ledger lookup: %w", err)
		}
		if delivered {
			report.Skipped++
			continue
		}
		pending = append(pending, it)
	}

	if len(pending) > 0 {
		// Заголовок в реестр не попадает: его потеря ничего не дублирует.
		if err := p.deps.Sender.Send(ctx, p.deps.Renderer.RenderHeader(now, p.deps.WindowHours)); err != nil {
			log.Warn().Err(err).Msg("header delivery failed")
		}
	}

	for _, it := range pending {
		if p.deps.DeliveryDelay > 0 {
			// Намеренно блокирующая пауза: лимиты Telegram важнее отзывчивости.
			time.Sleep(p.deps.DeliveryDelay)
		}

		// Доставка best-effort: отказ счётчика не меняет судьбу записи в реестре.
		if err := p.deps.Sender.Send(ctx, p.deps.Renderer.RenderItem(it)); err != nil {
			report.DeliveryErrors++
			log.Warn().Err(err).Str("content_id", it.ContentID).Msg("delivery failed")
		}

		err := p.deps.Ledger.Record(ctx, news.DeliveryRecord{
			ContentID:    it.ContentID,
			Title:        it.Title,
			Link:         it.Link,
			PublishedRaw: it.PublishedRaw,
			SourceFeed:   it.SourceFeed,
			Category:     it.Category,
			FirstSeenAt:  now,
		})
		switch {
		case errors.Is(err, ledger.ErrAlreadyDelivered):
			// Гонка с предыдущим незавершённым проходом: считаем отправленным.
			report.Skipped++
		case err != nil:
			return report, fmt.Errorf("ledger record: %w", err)
		default:
			report.Delivered++
		}
	}

	log.Info().Int("delivered", report.Delivered).Int("skipped", report.Skipped).
		Int("delivery_errors", report.DeliveryErrors).Msg("run finished")
	return report, nil
}

// normalize превращает сырые записи в нормализованные: категория, дата,
// идентификатор. Записи без заголовка или ссылки недопустимы.
func (p *Pipeline) normalize(raw []news.RawItem, report *Report) []news.Item {
	items := make([]news.Item, 0, len(raw))
	for _, r := range raw {
		if r.Title == "" || r.Link == "" {
			report.Inadmissible++
			continue
		}

		publishedAt, _ := dates.Parse(r.PublishedRaw, p.deps.Location)
		category := p.deps.Classifier.Classify(r.SourceFeed, r.Title, r.Summary)

		items = append(items, news.Item{
			RawItem:     r,
			Category:    category,
			PublishedAt: publishedAt,
			ContentID:   news.ContentID(r.Title, r.Link),
		})
		report.PerCategory[category]++
	}
	return items
}

func (p *Pipeline) validateDeps() error {
	switch {
	case p.deps.Collector == nil,
		p.deps.Classifier == nil,
		p.deps.Curator == nil,
		p.deps.Ledger == nil,
		p.deps.Renderer == nil,
		p.deps.Sender == nil,
		p.deps.Clock == nil:
		return ErrNotConfigured
	default:
		return nil
	}
}
