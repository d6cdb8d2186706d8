// Package testdata генерирует уникальные данные клиентов для регистрации.
package testdata

import (
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
)

const (
	alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	numeric      = "0123456789"
)

// Customer - данные формы регистрации ParaBank.
type Customer struct {
	FirstName string
	LastName  string
	Street    string
	City      string
	State     string
	ZipCode   string
	Phone     string
	SSN       string
	Username  string
	Password  string
}

// Generator не потокобезопасен: у каждого сценария свой экземпляр.
type Generator struct {
	rnd *rand.Rand
}

func New() *Generator {
	return &Generator{rnd: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeeded нужен тестам, которым важна воспроизводимость.
func NewSeeded(seed uint64) *Generator {
	return &Generator{rnd: rand.New(rand.NewPCG(seed, seed))}
}

// Username уникален между прогонами: суффикс берется из UUID.
func (g *Generator) Username() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "user_" + id[:8]
}

func (g *Generator) Password() string {
	return "Pass@" + g.Numeric(6)
}

func (g *Generator) Email() string {
	return strings.ToLower(g.String(10)) + "@test.com"
}

func (g *Generator) Phone() string {
	return g.Numeric(10)
}

func (g *Generator) SSN() string {
	return g.Numeric(9)
}

func (g *Generator) ZipCode() string {
	return g.Numeric(5)
}

func (g *Generator) String(n int) string {
	return g.pick(alphanumeric, n)
}

func (g *Generator) Numeric(n int) string {
	return g.pick(numeric, n)
}

func (g *Generator) pick(alphabet string, n int) string {
	var sb strings.Builder
	sb.Grow(n)
	for range n {
		sb.WriteByte(alphabet[g.rnd.IntN(len(alphabet))])
	}
	return sb.String()
}

// Customer возвращает заполненного клиента с новым логином и паролем.
func (g *Generator) Customer() Customer {
	return Customer{
		FirstName: "John",
		LastName:  "Doe",
		Street:    "123 Main Street",
		City:      "New York",
		State:     "NY",
		ZipCode:   g.ZipCode(),
		Phone:     g.Phone(),
		SSN:       g.SSN(),
		Username:  g.Username(),
		Password:  g.Password(),
	}
}
