package interact

import (
	"context"
	"time"

	"go.uber.org/zap"
	"k8s.io/apimachinery/pkg/util/wait"

	"uiAutomation/internal/browser"
)

// Condition - состояние элемента, которого ждет операция.
type Condition int

const (
	Presence Condition = iota
	Clickable
	Visible
	Invisible
)

func (c Condition) String() string {
	switch c {
	case Presence:
		return "present"
	case Clickable:
		return "clickable"
	case Visible:
		return "visible"
	case Invisible:
		return "invisible"
	default:
		return "unknown"
	}
}

const (
	DefaultTimeout  = 10 * time.Second
	DefaultInterval = 250 * time.Millisecond
)

// Policy - бюджет ожидания одной операции.
type Policy struct {
	Timeout  time.Duration
	Interval time.Duration
}

func DefaultPolicy() Policy {
	return Policy{Timeout: DefaultTimeout, Interval: DefaultInterval}
}

func (p Policy) normalize() Policy {
	if p.Timeout <= 0 {
		p.Timeout = DefaultTimeout
	}
	if p.Interval <= 0 {
		p.Interval = DefaultInterval
	}
	if p.Interval > p.Timeout {
		p.Interval = p.Timeout
	}
	return p
}

// CallOption переопределяет политику для одного вызова.
type CallOption func(*Policy)

func WithTimeout(d time.Duration) CallOption {
	return func(p *Policy) {
		p.Timeout = d
	}
}

func WithPolicy(policy Policy) CallOption {
	return func(p *Policy) {
		*p = policy
	}
}

func (i *Interactor) policyFor(opts []CallOption) Policy {
	p := i.policy
	for _, opt := range opts {
		opt(&p)
	}
	return p.normalize()
}

// await опрашивает страницу, пока cond не выполнится для loc или не истечет
// бюджет. Для Invisible возвращает nil элемент. Ошибки драйвера во время
// опроса считаются "еще не готово": элемент мог перерисоваться.
func (i *Interactor) await(ctx context.Context, loc browser.Locator, cond Condition, policy Policy) (browser.Element, error) {
	if err := loc.Validate(); err != nil {
		return nil, &InteractionError{Action: "locate", Locator: loc, Err: err}
	}

	selector := loc.Selector()
	started := time.Now()
	var found browser.Element

	err := wait.PollUntilContextTimeout(ctx, policy.Interval, policy.Timeout, true, func(context.Context) (bool, error) {
		el, ok := i.check(selector, cond)
		if ok {
			found = el
		}
		return ok, nil
	})
	elapsed := time.Since(started)

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			i.metrics.observeWait(cond, elapsed, outcomeCanceled)
			return nil, ctxErr
		}
		if wait.Interrupted(err) {
			i.metrics.observeWait(cond, elapsed, outcomeTimeout)
			return nil, &LocateTimeoutError{Locator: loc, Condition: cond, Elapsed: elapsed, Budget: policy.Timeout}
		}
		return nil, err
	}
	i.metrics.observeWait(cond, elapsed, outcomeOK)

	i.log.Debug("Условие выполнено",
		zap.Stringer("locator", loc),
		zap.Stringer("condition", cond),
		zap.Duration("elapsed", elapsed),
	)
	return found, nil
}

func (i *Interactor) check(selector string, cond Condition) (browser.Element, bool) {
	elements, err := i.doc.Find(selector)
	if err != nil {
		i.log.Debug("Ошибка поиска элемента", zap.String("selector", selector), zap.Error(err))
		return nil, false
	}

	switch cond {
	case Presence:
		if len(elements) > 0 {
			return elements[0], true
		}
		return nil, false

	case Invisible:
		for _, el := range elements {
			visible, err := el.IsVisible()
			if err == nil && visible {
				return nil, false
			}
		}
		return nil, true

	case Visible, Clickable:
		for _, el := range elements {
			visible, err := el.IsVisible()
			if err != nil || !visible {
				continue
			}
			if cond == Clickable {
				enabled, err := el.IsEnabled()
				if err != nil || !enabled {
					continue
				}
			}
			return el, true
		}
	}
	return nil, false
}
