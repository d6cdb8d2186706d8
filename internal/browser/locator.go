package browser

import (
	"fmt"
	"regexp"
	"strings"
)

type SelectorStrategy int

const (
	StrategyCSS SelectorStrategy = iota
	StrategyXPath
	StrategyID
	StrategyName
	StrategyText
)

func (s SelectorStrategy) String() string {
	switch s {
	case StrategyCSS:
		return "css"
	case StrategyXPath:
		return "xpath"
	case StrategyID:
		return "id"
	case StrategyName:
		return "name"
	case StrategyText:
		return "text"
	default:
		return "unknown"
	}
}

// Locator описывает, как найти элемент. Значение неизменяемое: page objects
// создают локаторы один раз и передают их в interact.
type Locator struct {
	Strategy SelectorStrategy
	Value    string
}

func ByCSS(selector string) Locator { return Locator{Strategy: StrategyCSS, Value: selector} }
func ByXPath(expr string) Locator   { return Locator{Strategy: StrategyXPath, Value: expr} }
func ByID(id string) Locator        { return Locator{Strategy: StrategyID, Value: id} }
func ByName(name string) Locator    { return Locator{Strategy: StrategyName, Value: name} }
func ByText(text string) Locator    { return Locator{Strategy: StrategyText, Value: text} }

func (l Locator) String() string {
	return l.Strategy.String() + "=" + l.Value
}

// Selector переводит локатор в строку селектора Playwright.
// ID и name рендерятся через атрибутные селекторы: в ParaBank id вида
// "customer.firstName" содержат точки и не работают как "#id".
func (l Locator) Selector() string {
	switch l.Strategy {
	case StrategyXPath:
		return "xpath=" + l.Value
	case StrategyID:
		return fmt.Sprintf(`[id="%s"]`, escapeAttr(l.Value))
	case StrategyName:
		return fmt.Sprintf(`[name="%s"]`, escapeAttr(l.Value))
	case StrategyText:
		return fmt.Sprintf(`text="%s"`, escapeAttr(l.Value))
	default:
		normalized, _ := NormalizeSelector(l.Value)
		return normalized
	}
}

// Validate проверяет, что локатор можно отдать драйверу.
func (l Locator) Validate() error {
	if l.Strategy == StrategyCSS {
		return ValidateSelector(l.Value)
	}
	if strings.TrimSpace(l.Value) == "" {
		return fmt.Errorf("пустое значение локатора %s", l.Strategy)
	}
	return nil
}

// Sensitive сообщает, что в поле вводятся секреты и значение нельзя логировать.
func (l Locator) Sensitive() bool {
	lower := strings.ToLower(l.Value)
	for _, keyword := range []string{"password", "ssn", "secret", "token", "cvv"} {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func escapeAttr(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `"`, `\"`)
}

var (
	containsDouble   = regexp.MustCompile(`:contains\("([^"]*)"\)`)
	containsSingle   = regexp.MustCompile(`:contains\('([^']*)'\)`)
	containsNoQuotes = regexp.MustCompile(`:contains\(([^)'"]+)\)`)
)

// NormalizeSelector переводит jQuery :contains() в :has-text() Playwright.
// Возвращает нормализованный селектор и флаг изменения.
func NormalizeSelector(selector string) (string, bool) {
	if selector == "" {
		return selector, false
	}

	changed := false
	normalized := containsDouble.ReplaceAllStringFunc(selector, func(match string) string {
		changed = true
		text := containsDouble.FindStringSubmatch(match)[1]
		return `:has-text("` + text + `")`
	})
	normalized = containsSingle.ReplaceAllStringFunc(normalized, func(match string) string {
		changed = true
		text := containsSingle.FindStringSubmatch(match)[1]
		return `:has-text('` + text + `')`
	})
	normalized = containsNoQuotes.ReplaceAllStringFunc(normalized, func(match string) string {
		changed = true
		text := strings.TrimSpace(containsNoQuotes.FindStringSubmatch(match)[1])
		return `:has-text("` + text + `")`
	})

	return normalized, changed
}

// ValidateSelector отсекает пустые селекторы и URL, переданные вместо селектора.
func ValidateSelector(selector string) error {
	trimmed := strings.TrimSpace(selector)
	if trimmed == "" {
		return fmt.Errorf("селектор не может быть пустым")
	}
	if strings.Contains(trimmed, "://") {
		return fmt.Errorf("селектор не может содержать протокол (://), для перехода используйте Navigate. Получен: %s", selector)
	}
	return nil
}
