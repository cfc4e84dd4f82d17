package news

import "time"

// Категории с привязкой к источнику (определяются по URL фида).
const (
	CategoryLawNotice    = "법령-입법예고"  // законопроекты на общественном обсуждении
	CategoryLawEnacted   = "법령-시행법령"  // вступившие в силу изменения законов
	CategoryMinistryNews = "노동-부처소식"  // новости министерства труда
	CategoryFSCPress     = "금융위-보도자료" // пресс-релизы финансового регулятора
	CategoryDart         = "금감원-DART"  // лента раскрытия информации DART
)

// Категории, определяемые по ключевым словам (для поисковых фидов).
const (
	CategoryLaborNews      = "노동-뉴스"
	CategoryFinanceNews    = "금융-뉴스"
	CategoryDisclosureNews = "공시-뉴스"
	CategoryESGNews        = "ESG-뉴스"
	CategoryKCGSNews       = "KCGS-뉴스"
	CategoryNews           = "뉴스" // поисковый фид, ни одно ключевое слово не совпало
	CategoryOther          = "기타" // ничего не совпало
)

// RawItem описывает запись сразу после получения из источника.
// Адаптеры источников обязаны заполнить Title и Link; остальные поля опциональны.
type RawItem struct {
	Title        string `json:"title"`
	Link         string `json:"link"`
	Summary      string `json:"summary,omitempty"`       // может содержать HTML
	PublishedRaw string `json:"published_raw,omitempty"` // дата в произвольном формате источника
	SourceFeed   string `json:"source_feed"`             // URL фида или страницы, откуда пришла запись
}

// Item — нормализованная запись: категория, каноническая дата и идентификатор.
// После нормализации поля не изменяются до конца прохода.
type Item struct {
	RawItem

	Category string `json:"category"`
	// PublishedAt в UTC; нулевое значение означает, что дату разобрать не удалось.
	PublishedAt time.Time `json:"published_at,omitempty"`
	ContentID   string    `json:"content_id"`
}

// DeliveryRecord — запись в реестре отправленных. Хранится между запусками.
type DeliveryRecord struct {
	ContentID    string    `json:"content_id"`
	Title        string    `json:"title"`
	Link         string    `json:"link"`
	PublishedRaw string    `json:"published_raw"`
	SourceFeed   string    `json:"source_feed"`
	Category     string    `json:"category"`
	FirstSeenAt  time.Time `json:"first_seen_at"`
}

// SourceError фиксирует отказ одного источника, не прерывая обработку остальных.
type SourceError struct {
	SourceFeed string
	Err        error
}
