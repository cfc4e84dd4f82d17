// Package classify присваивает записям категории из закрытого набора.
//
// Решение двухфазное: сначала правила по URL источника (официальные фиды
// министерств и регуляторов), затем ключевые слова по заголовку и аннотации
// (для поисковых агрегаторов). Классификация — чистая функция своих аргументов.
package classify

import (
	"regexp"
	"strings"

	"github.com/maine/labor_watch_bot/internal/news"
)

// SourceRule сопоставляет категорию фиду: все подстроки Match должны
// встречаться в URL фида.
type SourceRule struct {
	Match    []string
	Category string
}

// KeywordRule сопоставляет категорию тексту записи по регулярному выражению.
type KeywordRule struct {
	Category string
	Pattern  *regexp.Regexp
}

// DefaultSourceRules — правила по источнику в порядке приоритета.
// Составные правила стоят раньше одиночных: URL законодательного фида
// министерства труда содержит и домен, и токен подраздела, и должен
// попасть в категорию законов, а не в общие новости министерства.
var DefaultSourceRules = []SourceRule{
	{Match: []string{"moleg.go.kr", "SH01"}, Category: news.CategoryLawNotice},
	{Match: []string{"moleg.go.kr", "SH02"}, Category: news.CategoryLawEnacted},
	{Match: []string{"moel.go.kr", "lawinfo"}, Category: news.CategoryLawNotice},
	{Match: []string{"korea.kr", "dept_moel"}, Category: news.CategoryMinistryNews},
	{Match: []string{"moel.go.kr"}, Category: news.CategoryMinistryNews},
	{Match: []string{"fsc.go.kr"}, Category: news.CategoryFSCPress},
	{Match: []string{"dart.fss.or.kr"}, Category: news.CategoryDart},
}

// DefaultKeywordRules — фолбэк по ключевым словам в порядке приоритета.
// KCGS стоит раньше ESG: упоминание института важнее общей тематики.
var DefaultKeywordRules = []KeywordRule{
	{Category: news.CategoryKCGSNews, Pattern: regexp.MustCompile(`(?i)KCGS|한국ESG기준원`)},
	{Category: news.CategoryESGNews, Pattern: regexp.MustCompile(`(?i)ESG|지속가능경영|지속가능|지배구조`)},
	{Category: news.CategoryDisclosureNews, Pattern: regexp.MustCompile(`(?i)DART|공시|감사보고서|회계감사`)},
	{Category: news.CategoryFinanceNews, Pattern: regexp.MustCompile(`금융위원회|금융위|금융감독원|금감원`)},
	{Category: news.CategoryLaborNews, Pattern: regexp.MustCompile(`노동|근로|인사노무|고용|임금|육아|모성보호|채용|노사관계|노사`)},
}

// searchFeedMarker отличает поисковый агрегатор от прочих источников;
// для него «ничего не совпало» — это всё же новость, а не мусор.
const searchFeedMarker = "news.google.com"

// Classifier хранит неизменяемые таблицы правил.
type Classifier struct {
	sourceRules  []SourceRule
	keywordRules []KeywordRule
}

// New создаёт классификатор. Пустые списки заменяются таблицами по умолчанию.
func New(sourceRules []SourceRule, keywordRules []KeywordRule) *Classifier {
	if len(sourceRules) == 0 {
		sourceRules = DefaultSourceRules
	}
	if len(keywordRules) == 0 {
		keywordRules = DefaultKeywordRules
	}
	return &Classifier{
		sourceRules:  sourceRules,
		keywordRules: keywordRules,
	}
}

// Classify возвращает категорию записи. Первое совпавшее правило по источнику
// выигрывает и отменяет фазу ключевых слов.
func (c *Classifier) Classify(sourceFeed, title, summary string) string {
	for _, rule := range c.sourceRules {
		if matchesAll(sourceFeed, rule.Match) {
			return rule.Category
		}
	}

	text := title + " " + summary
	for _, rule := range c.keywordRules {
		if rule.Pattern.MatchString(text) {
			return rule.Category
		}
	}

	if strings.Contains(sourceFeed, searchFeedMarker) {
		return news.CategoryNews
	}
	return news.CategoryOther
}

func matchesAll(feed string, subs []string) bool {
	for _, s := range subs {
		if !strings.Contains(feed, s) {
			return false
		}
	}
	return len(subs) > 0
}
