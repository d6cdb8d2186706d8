// Package migrations применяет схему истории прогонов через golang-migrate.
package migrations

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"

	"uiAutomation/internal/config"
	"uiAutomation/internal/logger"
)

//go:embed sql/*.sql
var embedded embed.FS

// Run поднимает схему до последней версии. Если история прогонов не
// настроена, ничего не делает.
func Run(cfg *config.Cfg, log *logger.Zap) error {
	if !cfg.Database.Enabled() {
		log.Debug("БД не настроена, миграции пропущены")
		return nil
	}

	m, err := newMigrate(cfg)
	if err != nil {
		return err
	}
	defer closeMigrate(m, log)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("применение миграций: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}
	log.Info("Миграции применены", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

// Down откатывает steps последних миграций.
func Down(cfg *config.Cfg, log *logger.Zap, steps int) error {
	m, err := newMigrate(cfg)
	if err != nil {
		return err
	}
	defer closeMigrate(m, log)

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("откат миграций: %w", err)
	}
	log.Info("Миграции откачены", zap.Int("steps", steps))
	return nil
}

func newMigrate(cfg *config.Cfg) (*migrate.Migrate, error) {
	if cfg.Migrations.Path != "" {
		m, err := migrate.New(sourceURL(cfg.Migrations.Path), cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("инициализация миграций из %s: %w", cfg.Migrations.Path, err)
		}
		return m, nil
	}

	src, err := iofs.New(embedded, "sql")
	if err != nil {
		return nil, err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("инициализация встроенных миграций: %w", err)
	}
	return m, nil
}

func sourceURL(path string) string {
	if len(path) > 7 && path[:7] == "file://" {
		return path
	}
	return "file://" + path
}

func closeMigrate(m *migrate.Migrate, log *logger.Zap) {
	srcErr, dbErr := m.Close()
	if err := errors.Join(srcErr, dbErr); err != nil {
		log.Warn("Ошибка закрытия миграций", zap.Error(err))
	}
}
