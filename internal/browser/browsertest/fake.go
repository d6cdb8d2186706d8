// Package browsertest - браузер в памяти для тестов interact, runner и pages.
// Элементы регистрируются по строке селектора, которую рендерит browser.Locator.
package browsertest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"uiAutomation/internal/browser"
)

var ErrDetached = errors.New("element is not attached to the DOM")

// Page - страница в памяти, реализует browser.Instance.
type Page struct {
	mu       sync.Mutex
	url      string
	title    string
	elements map[string][]*Element
	closed   bool
	timers   []*time.Timer
	// OnNavigate вызывается после смены URL, например чтобы отрисовать страницу.
	OnNavigate func(p *Page, url string)
}

func NewPage() *Page {
	return &Page{
		url:      "about:blank",
		elements: make(map[string][]*Element),
	}
}

// Add регистрирует элемент под селектором локатора и возвращает его.
func (p *Page) Add(loc browser.Locator, el *Element) *Element {
	p.mu.Lock()
	defer p.mu.Unlock()
	sel := loc.Selector()
	p.elements[sel] = append(p.elements[sel], el)
	return el
}

// AddAfter добавляет элемент с задержкой, имитируя асинхронную отрисовку.
func (p *Page) AddAfter(d time.Duration, loc browser.Locator, el *Element) *Element {
	t := time.AfterFunc(d, func() { p.Add(loc, el) })
	p.mu.Lock()
	p.timers = append(p.timers, t)
	p.mu.Unlock()
	return el
}

// Remove удаляет все элементы локатора.
func (p *Page) Remove(loc browser.Locator) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, el := range p.elements[loc.Selector()] {
		el.detach()
	}
	delete(p.elements, loc.Selector())
}

// Reset отсоединяет все элементы, как при переходе на другую страницу.
func (p *Page) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, els := range p.elements {
		for _, el := range els {
			el.detach()
		}
	}
	p.elements = make(map[string][]*Element)
}

// RemoveAfter удаляет элементы локатора с задержкой.
func (p *Page) RemoveAfter(d time.Duration, loc browser.Locator) {
	t := time.AfterFunc(d, func() { p.Remove(loc) })
	p.mu.Lock()
	p.timers = append(p.timers, t)
	p.mu.Unlock()
}

func (p *Page) SetTitle(title string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.title = title
}

func (p *Page) SetURL(url string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.url = url
}

func (p *Page) Find(selector string) ([]browser.Element, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, fmt.Errorf("page closed")
	}
	found := p.elements[selector]
	out := make([]browser.Element, 0, len(found))
	for _, el := range found {
		out = append(out, el)
	}
	return out, nil
}

func (p *Page) Navigate(url string) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return fmt.Errorf("page closed")
	}
	p.url = url
	hook := p.OnNavigate
	p.mu.Unlock()

	if hook != nil {
		hook(p, url)
	}
	return nil
}

func (p *Page) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url
}

func (p *Page) Title() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.title, nil
}

func (p *Page) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, t := range p.timers {
		t.Stop()
	}
	p.closed = true
	return nil
}

func (p *Page) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// Element - узел страницы в памяти. По умолчанию видим и доступен.
type Element struct {
	mu       sync.Mutex
	text     string
	value    string
	visible  bool
	enabled  bool
	detached bool
	options  []browser.Option
	selected string
	clicks   int
	clears   int

	// ClickErr возвращается из Click, если задан.
	ClickErr error
	// OnClick вызывается после успешного клика.
	OnClick func()
}

func NewElement() *Element {
	return &Element{visible: true, enabled: true}
}

func (e *Element) WithText(text string) *Element {
	e.text = text
	return e
}

func (e *Element) WithValue(value string) *Element {
	e.value = value
	return e
}

func (e *Element) WithOptions(options ...browser.Option) *Element {
	e.options = options
	return e
}

func (e *Element) Hidden() *Element {
	e.visible = false
	return e
}

func (e *Element) Disabled() *Element {
	e.enabled = false
	return e
}

func (e *Element) SetVisible(v bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.visible = v
}

func (e *Element) SetEnabled(v bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.enabled = v
}

func (e *Element) SetText(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.text = text
}

func (e *Element) Value() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.value
}

func (e *Element) Selected() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selected
}

func (e *Element) Clicks() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clicks
}

func (e *Element) Clears() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clears
}

func (e *Element) detach() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.detached = true
}

func (e *Element) IsVisible() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.detached {
		return false, ErrDetached
	}
	return e.visible, nil
}

func (e *Element) IsEnabled() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.detached {
		return false, ErrDetached
	}
	return e.enabled, nil
}

func (e *Element) Click() error {
	e.mu.Lock()
	if e.detached {
		e.mu.Unlock()
		return ErrDetached
	}
	if e.ClickErr != nil {
		err := e.ClickErr
		e.mu.Unlock()
		return err
	}
	e.clicks++
	hook := e.OnClick
	e.mu.Unlock()

	if hook != nil {
		hook()
	}
	return nil
}

func (e *Element) Clear() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.detached {
		return ErrDetached
	}
	e.value = ""
	e.clears++
	return nil
}

func (e *Element) SendKeys(text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.detached {
		return ErrDetached
	}
	e.value += text
	return nil
}

func (e *Element) Text() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.detached {
		return "", ErrDetached
	}
	return e.text, nil
}

func (e *Element) Options() ([]browser.Option, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]browser.Option(nil), e.options...), nil
}

func (e *Element) Select(value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, o := range e.options {
		if o.Value == value {
			e.selected = value
			return nil
		}
	}
	return fmt.Errorf("option %q not found", value)
}

// Variant - фейковый браузер, каждый запуск выдает новую Page.
type Variant struct {
	mu        sync.Mutex
	name      string
	launches  []browser.Options
	attempts  int
	pages     []*Page
	LaunchErr error
	// Setup вызывается для каждой новой страницы.
	Setup func(p *Page)
}

func NewVariant(name string) *Variant {
	return &Variant{name: name}
}

func (v *Variant) Name() string { return v.name }

func (v *Variant) Launch(ctx context.Context, opts browser.Options) (browser.Instance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.attempts++
	if v.LaunchErr != nil {
		return nil, v.LaunchErr
	}
	page := NewPage()
	if v.Setup != nil {
		v.Setup(page)
	}
	v.launches = append(v.launches, opts)
	v.pages = append(v.pages, page)
	return page, nil
}

// Attempts возвращает число вызовов Launch, включая неудачные.
func (v *Variant) Attempts() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.attempts
}

// Launches возвращает опции всех успешных запусков.
func (v *Variant) Launches() []browser.Options {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]browser.Options(nil), v.launches...)
}

// Pages возвращает страницы всех запусков по порядку.
func (v *Variant) Pages() []*Page {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]*Page(nil), v.pages...)
}
