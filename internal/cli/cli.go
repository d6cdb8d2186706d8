// Package cli собирает команды uiAutomation: прогон сценариев, историю,
// миграции и интерактивный режим.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"uiAutomation/internal/cli/commands"
	"uiAutomation/internal/config"
	"uiAutomation/internal/database"
	"uiAutomation/internal/logger"
	"uiAutomation/internal/migrations"
	"uiAutomation/internal/runner"
	"uiAutomation/internal/server"
	"uiAutomation/internal/steps"
)

const Version = "v0.2.0"

// App - общее состояние команд. Конфигурация и логгер создаются в
// PersistentPreRunE, до выполнения любой подкоманды.
type App struct {
	envFiles []string
	cfg      *config.Cfg
	log      *logger.Zap
	reg      *runner.Registry
	launch   commands.Launcher
	out      io.Writer

	db *database.DB
}

func newApp() *App {
	reg := runner.NewRegistry()
	steps.Register(reg)
	return &App{
		reg:    reg,
		launch: commands.PlaywrightLauncher,
		out:    os.Stdout,
	}
}

// NewRootCmd возвращает корневую команду.
func NewRootCmd() *cobra.Command {
	return newRootCmd(newApp())
}

func newRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "uiautomation",
		Short:         "BDD сценарии ParaBank поверх Playwright",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.init()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			app.close()
		},
	}
	root.PersistentFlags().StringSliceVar(&app.envFiles, "env-file", nil, "файлы .env (по умолчанию ./.env, если есть)")

	root.AddCommand(runCmd(app))
	root.AddCommand(historyCmd(app))
	root.AddCommand(migrateCmd(app))
	root.AddCommand(stepsCmd(app))
	root.AddCommand(shellCmd(app))
	root.AddCommand(serveCmd(app))
	return root
}

func (a *App) init() error {
	cfg, err := config.Load(a.envFiles...)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Logger.Env, cfg.Logger.Level)
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, log
	return nil
}

func (a *App) close() {
	if a.db != nil {
		a.db.Close(a.log)
		a.db = nil
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}

// database подключается к истории прогонов один раз. Без настроенной БД
// возвращает nil без ошибки.
func (a *App) database() (*database.DB, error) {
	if a.db != nil || !a.cfg.Database.Enabled() {
		return a.db, nil
	}
	if err := migrations.Run(a.cfg, a.log); err != nil {
		return nil, err
	}
	db, err := database.New(a.cfg, a.log)
	if err != nil {
		return nil, err
	}
	a.db = db
	return db, nil
}

// recorder возвращает запись в историю или nil, если БД не настроена.
// Недоступная БД не мешает прогону.
func (a *App) recorder() runner.Recorder {
	db, err := a.database()
	if err != nil {
		a.log.Warn("История прогонов недоступна", zap.Error(err))
		return nil
	}
	if db == nil {
		return nil
	}
	return database.NewRecorder(database.NewRunRepository(db.DB))
}

func (a *App) history() (*commands.HistoryHandler, error) {
	db, err := a.database()
	if err != nil {
		return nil, err
	}
	if db == nil {
		return nil, errors.New("история прогонов не настроена: задайте DB_HOST и DB_NAME")
	}
	return commands.NewHistoryHandler(database.NewRunRepository(db.DB), a.out), nil
}

func runCmd(app *App) *cobra.Command {
	var opts commands.RunOptions
	cmd := &cobra.Command{
		Use:   "run [features-dir]",
		Short: "Запустить сценарии",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults := commands.OptionsFromConfig(app.cfg)
			flags := cmd.Flags()
			if len(args) == 1 {
				opts.FeaturesDir = args[0]
			} else {
				opts.FeaturesDir = defaults.FeaturesDir
			}
			if !flags.Changed("tags") {
				opts.Tags = defaults.Tags
			}
			if !flags.Changed("browser") {
				opts.Browser = defaults.Browser
			}
			if !flags.Changed("headless") {
				opts.Headless = defaults.Headless
			}
			if !flags.Changed("parallel") {
				opts.Parallel = defaults.Parallel
			}
			if !flags.Changed("metrics-file") {
				opts.MetricsFile = defaults.MetricsFile
			}

			h := commands.NewRunHandler(app.cfg, app.log.Logger, app.reg, app.launch, app.recorder(), app.out)
			_, err := h.Run(cmd.Context(), opts)
			return err
		},
	}
	cmd.Flags().StringSliceVarP(&opts.Tags, "tags", "t", nil, "теги сценариев, \"!тег\" исключает")
	cmd.Flags().StringVarP(&opts.Browser, "browser", "b", "", "chrome, firefox или edge")
	cmd.Flags().BoolVar(&opts.Headless, "headless", false, "запуск без окна")
	cmd.Flags().IntVarP(&opts.Parallel, "parallel", "p", 1, "сколько сценариев выполнять одновременно")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "файл для метрик в текстовом формате Prometheus")
	return cmd
}

func historyCmd(app *App) *cobra.Command {
	var (
		status string
		limit  int
		window int
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Последние прогоны",
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := app.history()
			if err != nil {
				return err
			}
			return h.List(cmd.Context(), status, limit)
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "passed или failed")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "сколько прогонов показать")

	cmd.AddCommand(&cobra.Command{
		Use:   "show [run-id]",
		Short: "Шаги прогона",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := app.history()
			if err != nil {
				return err
			}
			return h.Show(cmd.Context(), args[0])
		},
	})

	flaky := &cobra.Command{
		Use:   "flaky",
		Short: "Сценарии, которые и падали, и проходили",
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := app.history()
			if err != nil {
				return err
			}
			return h.Flaky(cmd.Context(), window)
		},
	}
	flaky.Flags().IntVar(&window, "window", 100, "сколько последних прогонов учитывать")
	cmd.AddCommand(flaky)
	return cmd
}

func migrateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Применить миграции истории прогонов",
		RunE: func(*cobra.Command, []string) error {
			if !app.cfg.Database.Enabled() {
				return errors.New("БД не настроена: задайте DB_HOST и DB_NAME")
			}
			return migrations.Run(app.cfg, app.log)
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "down [steps]",
		Short: "Откатить последние миграции",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			n := 1
			if len(args) == 1 {
				v, err := strconv.Atoi(args[0])
				if err != nil || v < 1 {
					return fmt.Errorf("число шагов должно быть положительным: %q", args[0])
				}
				n = v
			}
			return migrations.Down(app.cfg, app.log, n)
		},
	})
	return cmd
}

func stepsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "steps",
		Short: "Список зарегистрированных шагов",
		Run: func(*cobra.Command, []string) {
			commands.PrintSteps(app.out, app.reg)
		},
	}
}

func shellCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Интерактивный режим",
		Run: func(cmd *cobra.Command, _ []string) {
			NewShell(app).Run(cmd.Context())
		},
	}
}

func serveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "HTTP API истории прогонов",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := app.database()
			if err != nil {
				return err
			}
			if db == nil {
				return errors.New("история прогонов не настроена: задайте DB_HOST и DB_NAME")
			}
			return server.New(app.cfg, app.log, database.NewRunRepository(db.DB)).Run(cmd.Context())
		},
	}
}

// Execute выполняет корневую команду с контекстом ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
