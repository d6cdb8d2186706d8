package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"uiAutomation/internal/browser"
	"uiAutomation/internal/browser/browsertest"
	"uiAutomation/internal/interact"
	"uiAutomation/internal/scenario"
)

var heading = browser.ByCSS("h1.title")

type recorder struct {
	mu      sync.Mutex
	results []Result
}

func (r *recorder) Record(_ context.Context, res Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
	return nil
}

func newRunner(t *testing.T, variant *browsertest.Variant, opts ...Option) *Runner {
	t.Helper()
	cfg := Config{
		Variant:  variant.Name(),
		Browser:  browser.Options{Headless: true},
		Wait:     interact.Policy{Timeout: 100 * time.Millisecond, Interval: 5 * time.Millisecond},
		BaseURL:  "https://parabank.test/parabank/",
		Parallel: 2,
	}
	opts = append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)
	return New([]browser.Variant{variant}, cfg, opts...)
}

func step(text string, fn StepFunc) Step {
	return Step{Keyword: "When", Text: text, def: StepDef{Text: text, Fn: fn}}
}

func TestRun_PassingScenarioTearsDown(t *testing.T) {
	variant := browsertest.NewVariant("chrome")
	variant.Setup = func(p *browsertest.Page) {
		p.Add(heading, browsertest.NewElement().WithText("Accounts Overview"))
	}
	rec := &recorder{}
	r := newRunner(t, variant, WithRecorder(rec))

	var store *scenario.Store
	sc := Scenario{Feature: "Accounts", Name: "overview", Steps: []Step{
		step("remember", func(ctx context.Context, w *World, _ []string) error {
			store = w.Store
			assert.Same(t, w.Store, scenario.FromContext(ctx))
			w.Store.Set("title", "Accounts Overview")
			return nil
		}),
		step("check", func(ctx context.Context, w *World, _ []string) error {
			want, err := scenario.Value[string](w.Store, "title")
			if err != nil {
				return err
			}
			got, err := w.UI.ReadText(ctx, heading)
			if err != nil {
				return err
			}
			return Assertf(got == want, "заголовок %q, ожидался %q", got, want)
		}),
	}}

	res := r.Run(context.Background(), sc)

	require.True(t, res.Passed(), "%v", res.Err)
	assert.Equal(t, StatusPassed, res.Steps[0].Status)
	assert.Equal(t, StatusPassed, res.Steps[1].Status)
	assert.Positive(t, res.Duration)
	assert.Zero(t, store.Len(), "store cleared after scenario")
	assert.True(t, variant.Pages()[0].Closed(), "browser closed after scenario")
	require.Len(t, rec.results, 1)
	assert.Equal(t, res.ID, rec.results[0].ID)
}

func TestRun_FailedStepSkipsRest(t *testing.T) {
	variant := browsertest.NewVariant("chrome")
	r := newRunner(t, variant)

	var ran bool
	sc := Scenario{Feature: "Login", Name: "missing element", Steps: []Step{
		step("click absent", func(ctx context.Context, w *World, _ []string) error {
			w.Store.Set("username", "john")
			return w.UI.Click(ctx, heading)
		}),
		step("never", func(context.Context, *World, []string) error {
			ran = true
			return nil
		}),
	}}

	res := r.Run(context.Background(), sc)

	assert.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, KindSync, res.Kind)
	assert.ErrorIs(t, res.Err, interact.ErrLocateTimeout)
	assert.Equal(t, StatusFailed, res.Steps[0].Status)
	assert.Equal(t, StatusSkipped, res.Steps[1].Status)
	assert.False(t, ran)
	assert.Equal(t, []string{"username"}, res.StoreKeys)
	assert.True(t, variant.Pages()[0].Closed())
}

func TestRun_PanicInStepStillTearsDown(t *testing.T) {
	variant := browsertest.NewVariant("firefox")
	r := newRunner(t, variant)

	sc := Scenario{Feature: "Accounts", Name: "panics", Steps: []Step{
		step("boom", func(context.Context, *World, []string) error {
			var m map[string]int
			m["x"]++
			return nil
		}),
	}}

	res := r.Run(context.Background(), sc)

	assert.Equal(t, KindProgrammer, res.Kind)
	assert.ErrorIs(t, res.Err, ErrStepPanic)
	assert.True(t, variant.Pages()[0].Closed())
}

func TestRun_MissingKeyIsProgrammerError(t *testing.T) {
	r := newRunner(t, browsertest.NewVariant("chrome"))

	sc := Scenario{Feature: "Registration", Name: "login as registered", Steps: []Step{
		step("read", func(_ context.Context, w *World, _ []string) error {
			_, err := scenario.Value[string](w.Store, "registeredUsername")
			return err
		}),
	}}

	res := r.Run(context.Background(), sc)
	assert.Equal(t, KindProgrammer, res.Kind)
	assert.ErrorIs(t, res.Err, scenario.ErrMissingKey)
}

func TestRun_LaunchFailureSkipsAllSteps(t *testing.T) {
	variant := browsertest.NewVariant("edge")
	variant.LaunchErr = errors.New("msedge executable not found")
	r := newRunner(t, variant)

	var ran bool
	sc := Scenario{Feature: "Login", Name: "any", Steps: []Step{
		step("one", func(context.Context, *World, []string) error { ran = true; return nil }),
		step("two", func(context.Context, *World, []string) error { ran = true; return nil }),
	}}

	res := r.Run(context.Background(), sc)

	assert.False(t, ran)
	assert.Equal(t, KindSetup, res.Kind)
	assert.ErrorIs(t, res.Err, browser.ErrDriverLaunch)
	for _, st := range res.Steps {
		assert.Equal(t, StatusSkipped, st.Status)
	}
	assert.Empty(t, variant.Pages())
}

func TestRun_UnsupportedVariant(t *testing.T) {
	variant := browsertest.NewVariant("chrome")
	r := New([]browser.Variant{variant}, Config{Variant: "safari"}, WithLogger(zaptest.NewLogger(t)))

	res := r.Run(context.Background(), Scenario{Feature: "Login", Name: "any"})
	assert.Equal(t, KindSetup, res.Kind)
	assert.ErrorIs(t, res.Err, browser.ErrUnsupportedVariant)
}

func TestRun_CanceledContext(t *testing.T) {
	variant := browsertest.NewVariant("chrome")
	r := newRunner(t, variant)
	ctx, cancel := context.WithCancel(context.Background())

	var ran bool
	sc := Scenario{Feature: "Login", Name: "canceled", Steps: []Step{
		step("cancel", func(context.Context, *World, []string) error { cancel(); return nil }),
		step("after", func(context.Context, *World, []string) error { ran = true; return nil }),
	}}

	res := r.Run(ctx, sc)
	assert.ErrorIs(t, res.Err, context.Canceled)
	assert.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, StatusPassed, res.Steps[0].Status)
	assert.Equal(t, StatusSkipped, res.Steps[1].Status)
	assert.NoError(t, res.Steps[1].Err)
	assert.False(t, ran)
	assert.True(t, variant.Pages()[0].Closed())
}

func TestRunAll_IsolatesScenarios(t *testing.T) {
	variant := browsertest.NewVariant("chrome")
	reg := prometheus.NewRegistry()
	r := newRunner(t, variant, WithRegistry(reg))

	var scenarios []Scenario
	for i := 0; i < 6; i++ {
		name := fmt.Sprintf("scenario-%d", i)
		scenarios = append(scenarios, Scenario{Feature: "Parallel", Name: name, Steps: []Step{
			step("write", func(_ context.Context, w *World, _ []string) error {
				w.Store.Set("owner", name)
				time.Sleep(20 * time.Millisecond)
				return nil
			}),
			step("read", func(_ context.Context, w *World, _ []string) error {
				owner, err := scenario.Value[string](w.Store, "owner")
				if err != nil {
					return err
				}
				return Assertf(owner == name, "прочитано %q вместо %q", owner, name)
			}),
		}})
	}

	results := r.RunAll(context.Background(), scenarios)

	require.Len(t, results, 6)
	for i, res := range results {
		assert.Equal(t, scenarios[i].Name, res.Scenario)
		assert.True(t, res.Passed(), "%s: %v", res.Scenario, res.Err)
	}

	pages := variant.Pages()
	require.Len(t, pages, 6, "one browser per scenario")
	for _, p := range pages {
		assert.True(t, p.Closed())
	}

	summary := Summarize(results)
	assert.Equal(t, 6, summary.Passed)
	assert.Zero(t, summary.Failed)
	assert.Equal(t, 6.0, testutil.ToFloat64(r.metrics.scenarios.WithLabelValues("passed", "")))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "launch", err: &browser.LaunchError{Variant: "chrome", Err: errors.New("x")}, want: KindSetup},
		{name: "unsupported", err: &browser.UnsupportedVariantError{Variant: "ie"}, want: KindSetup},
		{name: "timeout", err: &interact.LocateTimeoutError{Locator: heading}, want: KindSync},
		{name: "url timeout", err: &interact.URLTimeoutError{Fragment: "overview.htm"}, want: KindSync},
		{name: "no option", err: &interact.NoMatchingOptionError{Locator: heading}, want: KindSync},
		{name: "interaction", err: &interact.InteractionError{Action: "click", Locator: heading, Err: errors.New("detached")}, want: KindSync},
		{name: "missing key", err: fmt.Errorf("step: %w", &scenario.MissingKeyError{Key: "k"}), want: KindProgrammer},
		{name: "panic", err: &PanicError{Step: "s", Value: "x"}, want: KindProgrammer},
		{name: "assertion", err: Assertf(false, "nope"), want: KindAssertion},
		{name: "other", err: errors.New("network"), want: KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
	assert.NoError(t, Assertf(true, "ok"))
}
