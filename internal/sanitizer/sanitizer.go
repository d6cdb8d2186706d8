// Package sanitizer маскирует персональные данные перед записью в логи и
// историю прогонов: пароли, номера карт, SSN, email и телефоны.
package sanitizer

import (
	"regexp"
	"strings"
)

const (
	Filtered = "[FILTERED]"
	// Masked - фиксированная маска значений чувствительных полей, длина
	// исходного значения не раскрывается.
	Masked = "********"
)

type DataSanitizer struct {
	rules []Rule
}

type Rule interface {
	Sanitize(text string) string
}

func New() *DataSanitizer {
	return &DataSanitizer{
		rules: []Rule{
			passwordRule,
			tokenRule,
			cookieRule,
			cardRule,
			ssnRule,
			emailRule,
			phoneRule,
		},
	}
}

// NewWithRules добавляет к стандартным правилам пользовательские.
func NewWithRules(extra ...Rule) *DataSanitizer {
	s := New()
	s.rules = append(s.rules, extra...)
	return s
}

func (s *DataSanitizer) Sanitize(text string) string {
	if text == "" {
		return text
	}

	result := text
	for _, rule := range s.rules {
		result = rule.Sanitize(result)
	}

	return result
}

// MaskInput возвращает значение, которое можно писать в лог о вводе в поле.
func (s *DataSanitizer) MaskInput(sensitiveField bool, value string) string {
	if value == "" {
		return value
	}
	if sensitiveField {
		return Masked
	}
	return s.SanitizeValue(value)
}

// SanitizeValue обрабатывает короткие значения, например из хранилища
// сценария, где нет ключа "password=" для срабатывания правил.
func (s *DataSanitizer) SanitizeValue(value string) string {
	if value == "" {
		return value
	}

	if len(value) <= 50 && looksLikeSensitiveData(value) {
		return Filtered
	}

	return s.Sanitize(value)
}

// SanitizeKeyed маскирует значение целиком, если имя ключа чувствительное.
func (s *DataSanitizer) SanitizeKeyed(key, value string) string {
	if IsSensitiveName(key) {
		return Masked
	}
	return s.SanitizeValue(value)
}

var sensitiveNames = []string{
	"password", "passwd", "пароль", "token", "secret", "ssn", "cvv", "card",
}

// IsSensitiveName сообщает, указывает ли имя поля или ключа на секрет.
func IsSensitiveName(name string) bool {
	lower := strings.ToLower(name)
	for _, keyword := range sensitiveNames {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

var longOpaque = regexp.MustCompile(`^[a-zA-Z0-9_-]{21,}$`)

func looksLikeSensitiveData(value string) bool {
	lower := strings.ToLower(value)

	for _, pattern := range []string{"password", "пароль", "token", "secret", "cvv", "cvc", "session"} {
		if strings.Contains(lower, pattern) {
			return true
		}
	}

	return longOpaque.MatchString(value)
}
