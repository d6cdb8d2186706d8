package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"uiAutomation/internal/browser"
)

var ErrBreakerOpen = errors.New("browser launch breaker is open")

// BreakerOpenError возвращается вместо запуска браузера, пока предыдущие
// запуски подряд падали.
type BreakerOpenError struct {
	Failures int
	Last     error
}

func (e *BreakerOpenError) Error() string {
	return fmt.Sprintf("запуск браузера пропущен после %d неудач подряд: %v", e.Failures, e.Last)
}

func (e *BreakerOpenError) Unwrap() error {
	return e.Last
}

func (e *BreakerOpenError) Is(target error) bool {
	return target == ErrBreakerOpen
}

type breakerState int

const (
	stateClosed breakerState = iota
	stateOpen
	stateHalfOpen
)

// launchBreaker считает подряд идущие неудачные запуски браузера. После
// maxFailures сценарии не запускают браузер до истечения resetTimeout;
// затем один сценарий пробует снова.
type launchBreaker struct {
	maxFailures  int
	resetTimeout time.Duration

	mu          sync.Mutex
	state       breakerState
	failures    int
	lastFailure time.Time
	lastErr     error
	probing     bool
}

func newLaunchBreaker(maxFailures int, resetTimeout time.Duration) *launchBreaker {
	if maxFailures <= 0 {
		return nil
	}
	if resetTimeout <= 0 {
		resetTimeout = 30 * time.Second
	}
	return &launchBreaker{
		maxFailures:  maxFailures,
		resetTimeout: resetTimeout,
	}
}

func (b *launchBreaker) allow() error {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case stateOpen:
		if time.Since(b.lastFailure) <= b.resetTimeout {
			return &BreakerOpenError{Failures: b.failures, Last: b.lastErr}
		}
		b.state = stateHalfOpen
		b.probing = true
		return nil
	case stateHalfOpen:
		if b.probing {
			return &BreakerOpenError{Failures: b.failures, Last: b.lastErr}
		}
		b.probing = true
	}
	return nil
}

// record учитывает только ошибки запуска: неизвестный вариант или активная
// сессия не говорят о неисправности драйвера. Отмена ctx состояние не меняет.
func (b *launchBreaker) record(err error) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.probing = false

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return
	}
	if err == nil || !errors.Is(err, browser.ErrDriverLaunch) {
		b.state = stateClosed
		b.failures = 0
		return
	}

	b.failures++
	b.lastFailure = time.Now()
	b.lastErr = err
	if b.state == stateHalfOpen || b.failures >= b.maxFailures {
		b.state = stateOpen
	}
}
