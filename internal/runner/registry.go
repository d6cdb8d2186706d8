package runner

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// StepFunc выполняет шаг. args - аргументы из файла сценария в порядке
// объявления.
type StepFunc func(ctx context.Context, w *World, args []string) error

type StepDef struct {
	Text string
	Args int
	Fn   StepFunc
}

// Registry сопоставляет текст шага с его реализацией. Текст сравнивается
// без учета регистра и повторных пробелов.
type Registry struct {
	defs map[string]StepDef
}

func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]StepDef)}
}

// Register добавляет шаг с args аргументами. Повторная регистрация того же
// текста - ошибка сборки набора шагов, поэтому паникует.
func (r *Registry) Register(text string, args int, fn StepFunc) {
	key := normalizeStep(text)
	if _, dup := r.defs[key]; dup {
		panic(fmt.Sprintf("шаг %q зарегистрирован дважды", text))
	}
	r.defs[key] = StepDef{Text: text, Args: args, Fn: fn}
}

func (r *Registry) Lookup(text string) (StepDef, bool) {
	def, ok := r.defs[normalizeStep(text)]
	return def, ok
}

// Steps возвращает тексты всех шагов по алфавиту.
func (r *Registry) Steps() []string {
	out := make([]string, 0, len(r.defs))
	for _, def := range r.defs {
		out = append(out, def.Text)
	}
	sort.Strings(out)
	return out
}

func normalizeStep(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}
