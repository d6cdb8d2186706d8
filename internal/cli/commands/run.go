package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"uiAutomation/internal/browser"
	"uiAutomation/internal/cli/ui"
	"uiAutomation/internal/config"
	"uiAutomation/internal/interact"
	"uiAutomation/internal/runner"
)

// ErrScenariosFailed возвращается, если хотя бы один сценарий не пройден.
var ErrScenariosFailed = errors.New("scenarios failed")

// Launcher поднимает драйвер и возвращает доступные браузеры. stop
// вызывается после прогона.
type Launcher func(cfg *config.Cfg) (variants []browser.Variant, stop func() error, err error)

// PlaywrightLauncher запускает драйвер Playwright.
func PlaywrightLauncher(cfg *config.Cfg) ([]browser.Variant, func() error, error) {
	rt, err := browser.NewRuntime(browser.RuntimeConfig{
		BrowsersPath: cfg.Browser.BrowsersPath,
		Install:      cfg.Browser.InstallBrowsers,
	})
	if err != nil {
		return nil, nil, err
	}
	return rt.Variants(), rt.Stop, nil
}

type RunOptions struct {
	FeaturesDir string
	Tags        []string
	Browser     string
	Headless    bool
	Parallel    int
	MetricsFile string
}

// OptionsFromConfig заполняет параметры прогона значениями из окружения.
func OptionsFromConfig(cfg *config.Cfg) RunOptions {
	return RunOptions{
		FeaturesDir: cfg.Suite.FeaturesDir,
		Tags:        cfg.Suite.Tags,
		Browser:     cfg.Browser.Variant,
		Headless:    cfg.Browser.Headless,
		Parallel:    cfg.Suite.Parallel,
		MetricsFile: cfg.Metrics.File,
	}
}

// RunHandler загружает сценарии, запускает их и печатает итог
type RunHandler struct {
	cfg      *config.Cfg
	log      *zap.Logger
	reg      *runner.Registry
	launch   Launcher
	recorder runner.Recorder
	out      io.Writer
}

func NewRunHandler(cfg *config.Cfg, log *zap.Logger, reg *runner.Registry, launch Launcher, rec runner.Recorder, out io.Writer) *RunHandler {
	return &RunHandler{
		cfg:      cfg,
		log:      log,
		reg:      reg,
		launch:   launch,
		recorder: rec,
		out:      out,
	}
}

// Run возвращает ErrScenariosFailed, если что-то упало. Ошибки загрузки
// сценариев возвращаются до запуска браузера.
func (h *RunHandler) Run(ctx context.Context, opts RunOptions) (runner.Summary, error) {
	suite, err := runner.LoadSuite(opts.FeaturesDir, h.reg)
	if err != nil {
		return runner.Summary{}, err
	}
	scenarios := suite.Filter(opts.Tags)
	if len(scenarios) == 0 {
		return runner.Summary{}, fmt.Errorf("нет сценариев с тегами %s", strings.Join(opts.Tags, ", "))
	}

	variants, stop, err := h.launch(h.cfg)
	if err != nil {
		return runner.Summary{}, err
	}
	defer func() {
		if err := stop(); err != nil {
			h.log.Warn("Ошибка остановки драйвера", zap.Error(err))
		}
	}()

	metricsReg := prometheus.NewRegistry()
	runnerOpts := []runner.Option{
		runner.WithLogger(h.log),
		runner.WithRegistry(metricsReg),
	}
	if h.recorder != nil {
		runnerOpts = append(runnerOpts, runner.WithRecorder(h.recorder))
	}

	active := browser.RejectActive
	if h.cfg.Browser.ReplaceActive {
		active = browser.ReplaceActive
	}

	r := runner.New(variants, runner.Config{
		Variant: opts.Browser,
		Browser: browser.Options{
			Headless:     opts.Headless,
			WindowWidth:  h.cfg.Browser.WindowWidth,
			WindowHeight: h.cfg.Browser.WindowHeight,
		},
		Wait:     interact.Policy{Timeout: h.cfg.Browser.WaitTimeout, Interval: h.cfg.Browser.PollInterval},
		Active:   active,
		BaseURL:  h.cfg.Suite.BaseURL,
		Username: h.cfg.Suite.Username,
		Password: h.cfg.Suite.Password,
		Parallel: opts.Parallel,

		MaxLaunchFailures: h.cfg.Browser.MaxLaunchFailures,
		LaunchRetryAfter:  h.cfg.Browser.LaunchRetryAfter,
	}, runnerOpts...)

	fmt.Fprintf(h.out, ui.ColorCyan+ui.IconPlay+" Запуск %d сценариев в %s"+ui.ColorReset+"\n", len(scenarios), opts.Browser)
	results := r.RunAll(ctx, scenarios)
	h.print(results)

	if opts.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(opts.MetricsFile, metricsReg); err != nil {
			h.log.Warn("Не удалось записать метрики", zap.String("file", opts.MetricsFile), zap.Error(err))
		}
	}

	summary := runner.Summarize(results)
	if summary.Failed > 0 {
		return summary, fmt.Errorf("%d из %d: %w", summary.Failed, summary.Total, ErrScenariosFailed)
	}
	return summary, nil
}

func (h *RunHandler) print(results []runner.Result) {
	for _, res := range results {
		icon, color, _ := ui.FormatStatus(string(res.Status))
		fmt.Fprintf(h.out, "%s%s%s %s / %s %s(%s)%s\n",
			color, icon, ui.ColorReset, res.Feature, res.Scenario,
			ui.ColorGray, ui.FormatDuration(res.Duration), ui.ColorReset)
		if res.Passed() {
			continue
		}

		for i, st := range res.Steps {
			if st.Status == runner.StatusPassed {
				continue
			}
			stepIcon, stepColor, _ := ui.FormatStatus(string(st.Status))
			fmt.Fprintf(h.out, "    %s%s [%d] %s %s%s\n", stepColor, stepIcon, i+1, st.Keyword, st.Text, ui.ColorReset)
		}
		fmt.Fprintf(h.out, "    %s%s: %v%s\n", ui.ColorRed, res.Kind, res.Err, ui.ColorReset)
	}

	s := runner.Summarize(results)
	fmt.Fprintf(h.out, "\n"+ui.ColorBold+ui.IconChart+" Итого: %d, пройдено %d, упало %d"+ui.ColorReset+"\n", s.Total, s.Passed, s.Failed)
	for _, kind := range []runner.Kind{runner.KindSetup, runner.KindSync, runner.KindAssertion, runner.KindProgrammer, runner.KindUnknown} {
		if n := s.ByKind[kind]; n > 0 {
			fmt.Fprintf(h.out, "    %s: %d\n", kind, n)
		}
	}
}
