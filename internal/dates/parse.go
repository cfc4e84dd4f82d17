// Package dates нормализует произвольные строки с датой публикации
// в абсолютный момент времени (UTC).
//
// Источники неподконтрольны и присылают даты в разнобой: RFC-822 из RSS,
// ISO-8601 из Atom, «2025.01.02» со страниц DART. Парсер пробует известные
// форматы по порядку и только в самом конце выдёргивает дату регуляркой.
package dates

import (
	"regexp"
	"strings"
	"time"
)

// KST — часовой пояс по умолчанию для дат без явной зоны.
var KST = time.FixedZone("KST", 9*60*60)

// Форматы с явной зоной: разбираются как есть.
var zonedFormats = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	time.RFC3339,
	time.RFC3339Nano,
	"02 Jan 2006 15:04:05 MST",
}

// Форматы без зоны: считаем, что время указано в переданной локали.
var zonelessFormats = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006.01.02 15:04:05",
	"2006.01.02 15:04",
	"2006.01.02",
}

// fallbackPattern вытаскивает первую встреченную дату вида YYYY[.-/]MM[.-/]DD,
// опционально с временем HH:MM сразу после неё.
var fallbackPattern = regexp.MustCompile(`(\d{4})[.\-/](\d{1,2})[.\-/](\d{1,2})(?:\D{1,3}(\d{1,2}):(\d{2}))?`)

// Parse разбирает строку с датой. Второе значение false означает «не разобрать»;
// вызывающий код обязан исключить такую запись из окна доставки, а не подставлять
// текущее время.
func Parse(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = KST
	}

	// Суффикс " UTC" после даты-времени без зоны: разбираем явно в UTC,
	// чтобы не зависеть от того, знает ли локальная база зон имя "UTC".
	if stripped, ok := strings.CutSuffix(value, " UTC"); ok {
		if t, ok := parseZoneless(stripped, time.UTC); ok {
			return t, true
		}
	}

	// ParseInLocation, а не Parse: аббревиатура «KST» известна только самой
	// локали, goвский Parse дал бы ей нулевое смещение.
	for _, f := range zonedFormats {
		if t, err := time.ParseInLocation(f, value, loc); err == nil {
			return t.UTC(), true
		}
	}

	if t, ok := parseZoneless(value, loc); ok {
		return t, true
	}

	return parseFallback(value, loc)
}

func parseZoneless(value string, loc *time.Location) (time.Time, bool) {
	for _, f := range zonelessFormats {
		if t, err := time.ParseInLocation(f, value, loc); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// parseFallback — крайняя мера для мусорных строк, внутри которых всё же
// встречается дата. Время по умолчанию 00:00 в переданной локали.
func parseFallback(value string, loc *time.Location) (time.Time, bool) {
	m := fallbackPattern.FindStringSubmatch(value)
	if m == nil {
		return time.Time{}, false
	}

	year := atoi(m[1])
	month := atoi(m[2])
	day := atoi(m[3])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	hour, minute := 0, 0
	if m[4] != "" {
		hour = atoi(m[4])
		minute = atoi(m[5])
		if hour > 23 || minute > 59 {
			hour, minute = 0, 0
		}
	}

	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc).UTC(), true
}

func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
