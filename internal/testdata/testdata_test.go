package testdata

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerator_Formats(t *testing.T) {
	g := NewSeeded(42)

	assert.Regexp(t, regexp.MustCompile(`^user_[0-9a-f]{8}$`), g.Username())
	assert.Regexp(t, regexp.MustCompile(`^Pass@\d{6}$`), g.Password())
	assert.Regexp(t, regexp.MustCompile(`^[a-z0-9]{10}@test\.com$`), g.Email())
	assert.Regexp(t, regexp.MustCompile(`^\d{10}$`), g.Phone())
	assert.Regexp(t, regexp.MustCompile(`^\d{9}$`), g.SSN())
	assert.Regexp(t, regexp.MustCompile(`^\d{5}$`), g.ZipCode())
	assert.Len(t, g.String(12), 12)
}

func TestGenerator_UniqueUsernames(t *testing.T) {
	g := New()
	seen := make(map[string]struct{})
	for range 200 {
		name := g.Username()
		_, dup := seen[name]
		assert.False(t, dup, name)
		seen[name] = struct{}{}
	}
}

func TestGenerator_Customer(t *testing.T) {
	c := New().Customer()

	assert.NotEmpty(t, c.FirstName)
	assert.NotEmpty(t, c.Street)
	assert.Len(t, c.SSN, 9)
	assert.NotEqual(t, c.Username, New().Customer().Username)
}

func TestNewSeeded_Deterministic(t *testing.T) {
	assert.Equal(t, NewSeeded(7).Numeric(20), NewSeeded(7).Numeric(20))
}
