package browser

import (
	"context"
)

// Document - живая страница сессии. Все методы неблокирующие: ожидание
// условий делает слой interact поверх этого интерфейса.
type Document interface {
	// Find возвращает элементы, совпадающие с селектором прямо сейчас.
	// Пустой результат без ошибки означает, что элементов пока нет.
	Find(selector string) ([]Element, error)
	Navigate(url string) error
	URL() string
	Title() (string, error)
}

// Element - ссылка на узел DOM, полученная через Document.Find.
type Element interface {
	IsVisible() (bool, error)
	IsEnabled() (bool, error)
	Click() error
	Clear() error
	SendKeys(text string) error
	Text() (string, error)
	Options() ([]Option, error)
	Select(value string) error
}

// Option - пункт выпадающего списка.
type Option struct {
	Value string
	Text  string
}

// Instance - запущенный браузер вместе с его страницей.
type Instance interface {
	Document
	Close() error
}

// Variant запускает один вид браузера. Новый браузер добавляется новой
// реализацией, а не веткой в менеджере.
type Variant interface {
	Name() string
	Launch(ctx context.Context, opts Options) (Instance, error)
}

// Options - параметры запуска браузера.
type Options struct {
	Headless     bool
	WindowWidth  int
	WindowHeight int
	// Args добавляются к аргументам командной строки варианта.
	Args []string
}

const (
	DefaultWindowWidth  = 1920
	DefaultWindowHeight = 1080
)

// Normalize подставляет размер окна 1920x1080, если хотя бы одно измерение не задано.
func (o Options) Normalize() Options {
	if o.WindowWidth <= 0 || o.WindowHeight <= 0 {
		o.WindowWidth = DefaultWindowWidth
		o.WindowHeight = DefaultWindowHeight
	}
	return o
}
