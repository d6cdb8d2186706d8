// Package interact - синхронизированный слой взаимодействия со страницей.
// Каждая операция сначала ждет нужного состояния элемента в пределах бюджета
// и только потом действует; исключение - IsDisplayed, для которого
// "не найден" является ответом, а не ошибкой.
package interact

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"k8s.io/apimachinery/pkg/util/wait"

	"uiAutomation/internal/browser"
	"uiAutomation/internal/sanitizer"
)

// Interactor привязан к странице одной сессии и используется только
// горутиной сценария, которому принадлежит сессия.
type Interactor struct {
	doc     browser.Document
	policy  Policy
	log     *zap.Logger
	metrics *Metrics
	mask    *sanitizer.DataSanitizer
}

type Option func(*Interactor)

func WithDefaultPolicy(p Policy) Option {
	return func(i *Interactor) {
		i.policy = p.normalize()
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(i *Interactor) {
		if log != nil {
			i.log = log
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(i *Interactor) {
		i.metrics = m
	}
}

func New(doc browser.Document, opts ...Option) *Interactor {
	i := &Interactor{
		doc:    doc,
		policy: DefaultPolicy(),
		log:    zap.NewNop(),
		mask:   sanitizer.New(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// WithPolicy возвращает копию с другим бюджетом по умолчанию. Так вызывающий
// повторяет шаг с увеличенным ожиданием; сам слой повторов не делает.
func (i *Interactor) WithPolicy(p Policy) *Interactor {
	cp := *i
	cp.policy = p.normalize()
	return &cp
}

func (i *Interactor) Policy() Policy {
	return i.policy
}

// Locate ждет, пока элемент loc выполнит cond.
func (i *Interactor) Locate(ctx context.Context, loc browser.Locator, cond Condition, opts ...CallOption) (browser.Element, error) {
	return i.await(ctx, loc, cond, i.policyFor(opts))
}

// Click ждет кликабельности элемента и кликает.
func (i *Interactor) Click(ctx context.Context, loc browser.Locator, opts ...CallOption) error {
	el, err := i.await(ctx, loc, Clickable, i.policyFor(opts))
	if err != nil {
		return err
	}

	err = el.Click()
	i.metrics.recordAction("click", err)
	if err != nil {
		return &InteractionError{Action: "click", Locator: loc, Err: err}
	}

	i.log.Debug("Клик", zap.Stringer("locator", loc))
	return nil
}

// Type очищает поле и вводит text. Пустая строка только очищает поле.
func (i *Interactor) Type(ctx context.Context, loc browser.Locator, text string, opts ...CallOption) error {
	el, err := i.await(ctx, loc, Presence, i.policyFor(opts))
	if err != nil {
		return err
	}

	if err := el.Clear(); err != nil {
		i.metrics.recordAction("type", err)
		return &InteractionError{Action: "clear", Locator: loc, Err: err}
	}
	if text != "" {
		if err := el.SendKeys(text); err != nil {
			i.metrics.recordAction("type", err)
			return &InteractionError{Action: "type", Locator: loc, Err: err}
		}
	}
	i.metrics.recordAction("type", nil)

	i.log.Debug("Ввод текста",
		zap.Stringer("locator", loc),
		zap.String("text", i.mask.MaskInput(loc.Sensitive(), text)),
	)
	return nil
}

// ReadText возвращает отрисованный текст элемента.
func (i *Interactor) ReadText(ctx context.Context, loc browser.Locator, opts ...CallOption) (string, error) {
	el, err := i.await(ctx, loc, Presence, i.policyFor(opts))
	if err != nil {
		return "", err
	}

	text, err := el.Text()
	if err != nil {
		return "", &InteractionError{Action: "read text", Locator: loc, Err: err}
	}
	return text, nil
}

// IsDisplayed ждет присутствия элемента и сообщает, виден ли он. Если
// элемент так и не появился, возвращает false вместо ошибки.
func (i *Interactor) IsDisplayed(ctx context.Context, loc browser.Locator, opts ...CallOption) bool {
	el, err := i.await(ctx, loc, Presence, i.policyFor(opts))
	if err != nil {
		i.log.Debug("Элемент не отображается", zap.Stringer("locator", loc), zap.Error(err))
		return false
	}

	visible, err := el.IsVisible()
	return err == nil && visible
}

// SelectByVisibleText выбирает пункт списка по видимому тексту.
func (i *Interactor) SelectByVisibleText(ctx context.Context, loc browser.Locator, text string, opts ...CallOption) error {
	return i.selectOption(ctx, loc, "text", text, opts, func(o browser.Option) bool {
		return strings.TrimSpace(o.Text) == strings.TrimSpace(text)
	})
}

// SelectByValue выбирает пункт списка по атрибуту value.
func (i *Interactor) SelectByValue(ctx context.Context, loc browser.Locator, value string, opts ...CallOption) error {
	return i.selectOption(ctx, loc, "value", value, opts, func(o browser.Option) bool {
		return o.Value == value
	})
}

func (i *Interactor) selectOption(ctx context.Context, loc browser.Locator, by, want string, opts []CallOption, match func(browser.Option) bool) error {
	el, err := i.await(ctx, loc, Presence, i.policyFor(opts))
	if err != nil {
		return err
	}

	options, err := el.Options()
	if err != nil {
		return &InteractionError{Action: "read options", Locator: loc, Err: err}
	}

	available := make([]string, 0, len(options))
	for _, o := range options {
		if match(o) {
			err := el.Select(o.Value)
			i.metrics.recordAction("select", err)
			if err != nil {
				return &InteractionError{Action: "select", Locator: loc, Err: err}
			}
			i.log.Debug("Выбран пункт списка", zap.Stringer("locator", loc), zap.String(by, want))
			return nil
		}
		if by == "text" {
			available = append(available, o.Text)
		} else {
			available = append(available, o.Value)
		}
	}

	return &NoMatchingOptionError{Locator: loc, By: by, Want: want, Available: available}
}

// WaitForVisible только ждет видимости, без действия.
func (i *Interactor) WaitForVisible(ctx context.Context, loc browser.Locator, opts ...CallOption) error {
	_, err := i.await(ctx, loc, Visible, i.policyFor(opts))
	return err
}

// WaitForInvisible ждет, пока элемент скроется или исчезнет из DOM.
func (i *Interactor) WaitForInvisible(ctx context.Context, loc browser.Locator, opts ...CallOption) error {
	_, err := i.await(ctx, loc, Invisible, i.policyFor(opts))
	return err
}

// Navigate открывает url в странице сессии.
func (i *Interactor) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := i.doc.Navigate(url); err != nil {
		return &InteractionError{Action: "navigate", Locator: browser.ByCSS(url), Err: err}
	}
	i.log.Debug("Переход", zap.String("url", url))
	return nil
}

func (i *Interactor) CurrentURL() string {
	return i.doc.URL()
}

func (i *Interactor) Title() (string, error) {
	return i.doc.Title()
}

// WaitForURLContains ждет, пока адрес страницы не будет содержать fragment.
func (i *Interactor) WaitForURLContains(ctx context.Context, fragment string, opts ...CallOption) error {
	policy := i.policyFor(opts)
	started := time.Now()

	err := wait.PollUntilContextTimeout(ctx, policy.Interval, policy.Timeout, true, func(context.Context) (bool, error) {
		return strings.Contains(i.doc.URL(), fragment), nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &URLTimeoutError{
			Fragment: fragment,
			URL:      i.doc.URL(),
			Elapsed:  time.Since(started),
			Budget:   policy.Timeout,
		}
	}
	return nil
}
