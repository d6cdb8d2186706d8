// Package runner выполняет сценарии: на каждый сценарий запускает свой
// браузер, создает свое хранилище и гарантированно освобождает оба.
package runner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"uiAutomation/internal/browser"
	"uiAutomation/internal/interact"
	"uiAutomation/internal/logger"
	"uiAutomation/internal/scenario"
	"uiAutomation/internal/testdata"
)

// Recorder сохраняет результат сценария, например в историю прогонов.
type Recorder interface {
	Record(ctx context.Context, res Result) error
}

type Config struct {
	Variant  string
	Browser  browser.Options
	Wait     interact.Policy
	Active   browser.ActivePolicy
	BaseURL  string
	Username string
	Password string
	// Parallel - сколько сценариев выполняется одновременно.
	Parallel int

	// MaxLaunchFailures - после стольких неудачных запусков браузера подряд
	// остальные сценарии падают без запуска. 0 отключает.
	MaxLaunchFailures int
	LaunchRetryAfter  time.Duration
}

type Runner struct {
	variants []browser.Variant
	cfg      Config
	log      *zap.Logger
	recorder Recorder
	breaker  *launchBreaker

	waitMetrics *interact.Metrics
	metrics     *metrics
}

type Option func(*Runner)

func WithLogger(log *zap.Logger) Option {
	return func(r *Runner) {
		if log != nil {
			r.log = log
		}
	}
}

func WithRecorder(rec Recorder) Option {
	return func(r *Runner) {
		r.recorder = rec
	}
}

// WithRegistry включает метрики ожиданий и сценариев.
func WithRegistry(reg prometheus.Registerer) Option {
	return func(r *Runner) {
		r.waitMetrics = interact.NewMetrics(reg)
		r.metrics = newMetrics(reg)
	}
}

func New(variants []browser.Variant, cfg Config, opts ...Option) *Runner {
	if cfg.Parallel < 1 {
		cfg.Parallel = 1
	}
	r := &Runner{
		variants: variants,
		cfg:      cfg,
		log:      zap.NewNop(),
		breaker:  newLaunchBreaker(cfg.MaxLaunchFailures, cfg.LaunchRetryAfter),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunAll выполняет сценарии с ограничением cfg.Parallel. Результаты
// возвращаются в порядке входного списка. Падение сценария не отменяет
// остальные; отмена ctx приводит к пропуску еще не начатых шагов.
func (r *Runner) RunAll(ctx context.Context, scenarios []Scenario) []Result {
	results := make([]Result, len(scenarios))

	var g errgroup.Group
	g.SetLimit(r.cfg.Parallel)
	for i, sc := range scenarios {
		g.Go(func() error {
			results[i] = r.Run(ctx, sc)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Run выполняет один сценарий. До первого шага запускается браузер, после
// последнего (на любом пути выхода) браузер закрывается и хранилище
// очищается. Шаги после упавшего помечаются пропущенными.
func (r *Runner) Run(ctx context.Context, sc Scenario) (res Result) {
	res = Result{
		ID:        uuid.NewString(),
		Feature:   sc.Feature,
		Scenario:  sc.Name,
		Tags:      sc.Tags,
		Browser:   r.cfg.Variant,
		StartedAt: time.Now(),
		Steps:     make([]StepResult, len(sc.Steps)),
	}
	for i, st := range sc.Steps {
		res.Steps[i] = StepResult{Keyword: st.Keyword, Text: st.Text, Status: StatusSkipped}
	}

	log := logger.Scenario(r.log, sc.Feature, sc.Name, res.ID)

	manager := browser.NewManager(r.variants,
		browser.WithActivePolicy(r.cfg.Active),
		browser.WithLogger(log),
	)
	store := scenario.NewStore()

	defer func() {
		if p := recover(); p != nil {
			res.fail(&PanicError{Step: "hooks", Value: p})
		}
		if !res.Passed() {
			res.StoreKeys = store.Keys()
		}
		if err := manager.Stop(); err != nil {
			log.Warn("Ошибка закрытия браузера", zap.Error(err))
		}
		store.Clear()

		res.Duration = time.Since(res.StartedAt)
		r.metrics.observe(res)
		r.report(ctx, res, log)
	}()

	if err := r.breaker.allow(); err != nil {
		res.fail(err)
		return res
	}
	session, err := manager.Start(ctx, r.cfg.Variant, r.cfg.Browser)
	r.breaker.record(err)
	if err != nil {
		res.fail(err)
		return res
	}

	world := &World{
		Session: session,
		UI: interact.New(session.Document(),
			interact.WithLogger(log),
			interact.WithDefaultPolicy(r.cfg.Wait),
			interact.WithMetrics(r.waitMetrics),
		),
		Store:    store,
		Log:      log,
		Data:     testdata.New(),
		BaseURL:  r.cfg.BaseURL,
		Username: r.cfg.Username,
		Password: r.cfg.Password,
	}
	ctx = scenario.WithStore(ctx, store)

	for i, st := range sc.Steps {
		if err := ctx.Err(); err != nil {
			res.fail(err)
			log.Warn("Прогон отменен", zap.Int("step", i+1), zap.Error(err))
			return res
		}

		started := time.Now()
		err := r.runStep(ctx, world, st)
		res.Steps[i].Duration = time.Since(started)

		if err != nil {
			res.Steps[i].Status = StatusFailed
			res.Steps[i].Err = err
			res.fail(err)
			log.Warn("Шаг не пройден",
				zap.Int("step", i+1),
				zap.String("text", st.Text),
				zap.Stringer("kind", res.Kind),
				zap.Error(err),
			)
			return res
		}

		res.Steps[i].Status = StatusPassed
		log.Debug("Шаг пройден", zap.Int("step", i+1), zap.String("text", st.Text))
	}

	res.Status = StatusPassed
	return res
}

func (r *Runner) runStep(ctx context.Context, w *World, st Step) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &PanicError{Step: st.Text, Value: p}
		}
	}()

	return st.def.Fn(ctx, w, st.Args)
}

func (r *Runner) report(ctx context.Context, res Result, log *zap.Logger) {
	if res.Passed() {
		log.Info("Сценарий пройден", zap.Duration("duration", res.Duration))
	} else {
		log.Error("Сценарий не пройден",
			zap.Stringer("kind", res.Kind),
			zap.Duration("duration", res.Duration),
			zap.Strings("store_keys", res.StoreKeys),
			zap.Error(res.Err),
		)
	}

	if r.recorder == nil {
		return
	}
	if err := r.recorder.Record(context.WithoutCancel(ctx), res); err != nil {
		log.Warn("Не удалось сохранить результат", zap.Error(err))
	}
}
