package browser

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnsupportedVariant = errors.New("unsupported browser variant")
	ErrDriverLaunch       = errors.New("browser launch failed")
	// ErrSessionActive возвращается Start при политике RejectActive.
	ErrSessionActive = errors.New("browser session already active")
)

// UnsupportedVariantError - запрошен браузер, которого нет в реестре вариантов.
type UnsupportedVariantError struct {
	Variant   string
	Supported []string
}

func (e *UnsupportedVariantError) Error() string {
	return fmt.Sprintf("неподдерживаемый браузер %q (доступны: %s)", e.Variant, strings.Join(e.Supported, ", "))
}

func (e *UnsupportedVariantError) Is(target error) bool {
	return target == ErrUnsupportedVariant
}

// LaunchError - процесс браузера не запустился.
type LaunchError struct {
	Variant string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("не удалось запустить %s: %v", e.Variant, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

func (e *LaunchError) Is(target error) bool {
	return target == ErrDriverLaunch
}
