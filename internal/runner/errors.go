package runner

import (
	"errors"
	"fmt"

	"uiAutomation/internal/browser"
	"uiAutomation/internal/interact"
	"uiAutomation/internal/scenario"
)

var (
	ErrAssertion   = errors.New("assertion failed")
	ErrUnknownStep = errors.New("unknown step")
	ErrStepArgs    = errors.New("wrong step arguments")
	ErrStepPanic   = errors.New("step panicked")
)

// AssertionError - ожидание шага на странице не подтвердилось.
type AssertionError struct {
	Msg string
}

func (e *AssertionError) Error() string {
	return e.Msg
}

func (e *AssertionError) Is(target error) bool {
	return target == ErrAssertion
}

// Assertf возвращает AssertionError, если cond ложно.
func Assertf(cond bool, format string, args ...any) error {
	if cond {
		return nil
	}
	return &AssertionError{Msg: fmt.Sprintf(format, args...)}
}

// PanicError - шаг запаниковал. Раннер перехватывает панику, чтобы
// закрыть браузер и очистить хранилище сценария.
type PanicError struct {
	Step  string
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("паника в шаге %q: %v", e.Step, e.Value)
}

func (e *PanicError) Is(target error) bool {
	return target == ErrStepPanic
}

// UnknownStepError - файл сценария ссылается на незарегистрированный шаг.
type UnknownStepError struct {
	Feature  string
	Scenario string
	Text     string
}

func (e *UnknownStepError) Error() string {
	return fmt.Sprintf("%s / %s: шаг %q не зарегистрирован", e.Feature, e.Scenario, e.Text)
}

func (e *UnknownStepError) Is(target error) bool {
	return target == ErrUnknownStep
}

// Kind - категория падения для отчета.
type Kind int

const (
	KindUnknown Kind = iota
	// KindSetup - браузер не запустился, шаги не выполнялись.
	KindSetup
	// KindSync - элемент не пришел в нужное состояние или действие не удалось.
	KindSync
	// KindProgrammer - ошибка в шагах или файлах сценариев.
	KindProgrammer
	KindAssertion
)

func (k Kind) String() string {
	switch k {
	case KindSetup:
		return "setup"
	case KindSync:
		return "sync"
	case KindProgrammer:
		return "programmer"
	case KindAssertion:
		return "assertion"
	default:
		return "unknown"
	}
}

func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, browser.ErrUnsupportedVariant),
		errors.Is(err, browser.ErrDriverLaunch),
		errors.Is(err, browser.ErrSessionActive),
		errors.Is(err, ErrBreakerOpen):
		return KindSetup
	case errors.Is(err, scenario.ErrMissingKey),
		errors.Is(err, ErrStepPanic),
		errors.Is(err, ErrUnknownStep),
		errors.Is(err, ErrStepArgs):
		return KindProgrammer
	case errors.Is(err, ErrAssertion):
		return KindAssertion
	case errors.Is(err, interact.ErrLocateTimeout),
		errors.Is(err, interact.ErrNoMatchingOption),
		errors.Is(err, interact.ErrInteraction):
		return KindSync
	default:
		return KindUnknown
	}
}
