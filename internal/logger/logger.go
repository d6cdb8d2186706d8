// Package logger собирает zap-логгер для прогона сценариев.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Zap оборачивает *zap.Logger, чтобы зависимые пакеты не собирали логгер сами.
type Zap struct {
	*zap.Logger
}

// New создает логгер: env "prod" пишет JSON, всё остальное - консольный вывод
// с цветными уровнями.
func New(env, level string) (*Zap, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("неизвестный уровень логирования %q: %w", level, err)
	}

	var cfg zap.Config
	if strings.EqualFold(env, "prod") {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Zap{Logger: l}, nil
}

// Nop возвращает логгер без вывода.
func Nop() *Zap {
	return &Zap{Logger: zap.NewNop()}
}

// Scenario возвращает дочерний логгер с полями сценария.
func Scenario(log *zap.Logger, feature, name, runID string) *zap.Logger {
	return log.With(
		zap.String("feature", feature),
		zap.String("scenario", name),
		zap.String("run_id", runID),
	)
}
