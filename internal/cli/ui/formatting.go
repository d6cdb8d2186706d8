package ui

import (
	"fmt"
	"time"
)

// FormatStatus возвращает иконку, цвет и текст для статуса сценария или шага
func FormatStatus(status string) (icon, color, text string) {
	switch status {
	case "passed":
		return IconCheckmark, ColorGreen, "пройден"
	case "failed":
		return IconCross, ColorRed, "упал"
	case "skipped":
		return IconSkip, ColorGray, "пропущен"
	default:
		return IconClock, ColorYellow, status
	}
}

// FormatDuration округляет длительность для вывода в таблицах
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(10 * time.Millisecond).String()
}

// Truncate обрезает строку до n рун
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// ClearScreen очищает терминал
func ClearScreen() {
	fmt.Print("\033[H\033[2J")
}
