package interact

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"uiAutomation/internal/browser"
)

var (
	ErrLocateTimeout    = errors.New("locate timeout")
	ErrNoMatchingOption = errors.New("no matching option")
	ErrInteraction      = errors.New("interaction failure")
	ErrURLTimeout       = errors.New("url wait timeout")
)

// LocateTimeoutError - условие не выполнилось за бюджет ожидания. Поля
// позволяют вызывающему решить, повторить ли шаг с большим бюджетом.
type LocateTimeoutError struct {
	Locator   browser.Locator
	Condition Condition
	Elapsed   time.Duration
	Budget    time.Duration
}

func (e *LocateTimeoutError) Error() string {
	return fmt.Sprintf("элемент %s не стал %s за %v (бюджет %v)",
		e.Locator, e.Condition, e.Elapsed.Round(time.Millisecond), e.Budget)
}

func (e *LocateTimeoutError) Is(target error) bool {
	return target == ErrLocateTimeout
}

// URLTimeoutError - адрес страницы не стал содержать Fragment за бюджет.
// Совпадает и с ErrLocateTimeout: для отчета это та же ошибка синхронизации.
type URLTimeoutError struct {
	Fragment string
	// URL - последний увиденный адрес.
	URL     string
	Elapsed time.Duration
	Budget  time.Duration
}

func (e *URLTimeoutError) Error() string {
	return fmt.Sprintf("адрес %q не содержит %q спустя %v (бюджет %v)",
		e.URL, e.Fragment, e.Elapsed.Round(time.Millisecond), e.Budget)
}

func (e *URLTimeoutError) Is(target error) bool {
	return target == ErrURLTimeout || target == ErrLocateTimeout
}

// NoMatchingOptionError - в выпадающем списке нет запрошенного пункта.
type NoMatchingOptionError struct {
	Locator   browser.Locator
	By        string
	Want      string
	Available []string
}

func (e *NoMatchingOptionError) Error() string {
	return fmt.Sprintf("в %s нет пункта с %s %q (доступны: %s)",
		e.Locator, e.By, e.Want, strings.Join(e.Available, ", "))
}

func (e *NoMatchingOptionError) Is(target error) bool {
	return target == ErrNoMatchingOption
}

// InteractionError - элемент найден, но действие над ним не удалось,
// например элемент отсоединился между поиском и кликом.
type InteractionError struct {
	Action  string
	Locator browser.Locator
	Err     error
}

func (e *InteractionError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Action, e.Locator, e.Err)
}

func (e *InteractionError) Unwrap() error {
	return e.Err
}

func (e *InteractionError) Is(target error) bool {
	return target == ErrInteraction
}
