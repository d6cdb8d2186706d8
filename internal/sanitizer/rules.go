package sanitizer

import "regexp"

// RegexRule заменяет каждое совпадение любого шаблона на Replacement.
// Replacement может ссылаться на группы (${1}).
type RegexRule struct {
	Patterns    []*regexp.Regexp
	Replacement string
}

func (r *RegexRule) Sanitize(text string) string {
	for _, pattern := range r.Patterns {
		text = pattern.ReplaceAllString(text, r.Replacement)
	}
	return text
}

var (
	passwordRule = &RegexRule{
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(password|passwd|pwd|пароль)\s*[:=]\s*["']?[^"'\s,}]{3,}["']?`),
		},
		Replacement: `${1}: [FILTERED]`,
	}

	tokenRule = &RegexRule{
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(token|api[_-]?key|secret)\s*[:=]\s*["']?[a-zA-Z0-9_-]{16,}["']?`),
			regexp.MustCompile(`(?i)(bearer\s+)[a-zA-Z0-9._-]{16,}`),
		},
		Replacement: `${1}[FILTERED]`,
	}

	cookieRule = &RegexRule{
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(jsessionid|session[_-]?id)\s*[:=]\s*["']?[a-zA-Z0-9_-]{10,}["']?`),
		},
		Replacement: `${1}=[FILTERED]`,
	}

	cardRule = &RegexRule{
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`),
			regexp.MustCompile(`(?i)\b(cvv2?|cvc2?)\s*[:=]\s*["']?\d{3,4}["']?`),
		},
		Replacement: Filtered,
	}

	ssnRule = &RegexRule{
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
			regexp.MustCompile(`(?i)\b(ssn)\s*[:=]\s*["']?\d{9}["']?`),
		},
		Replacement: `[FILTERED_SSN]`,
	}

	emailRule = &RegexRule{
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}\b`),
		},
		Replacement: `[FILTERED_EMAIL]`,
	}

	phoneRule = &RegexRule{
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\+7\s?\(?\d{3}\)?\s?\d{3}[-.\s]?\d{2}[-.\s]?\d{2}`),
			regexp.MustCompile(`\(?\b\d{3}\)?[-.\s]\d{3}[-.\s]\d{4}\b`),
		},
		Replacement: `[FILTERED_PHONE]`,
	}
)
