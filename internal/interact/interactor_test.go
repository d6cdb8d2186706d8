package interact

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"uiAutomation/internal/browser"
	"uiAutomation/internal/browser/browsertest"
)

var (
	usernameField = browser.ByName("username")
	passwordField = browser.ByName("password")
	loginButton   = browser.ByXPath("//input[@value='Log In']")
	accountType   = browser.ByID("type")
	errorMessage  = browser.ByCSS("p.error")
	overview      = browser.ByCSS("h1.title")
)

func fastPolicy() Policy {
	return Policy{Timeout: 200 * time.Millisecond, Interval: 10 * time.Millisecond}
}

func newInteractor(t *testing.T, opts ...Option) (*Interactor, *browsertest.Page) {
	t.Helper()
	page := browsertest.NewPage()
	t.Cleanup(func() { _ = page.Close() })
	opts = append([]Option{WithLogger(zaptest.NewLogger(t)), WithDefaultPolicy(fastPolicy())}, opts...)
	return New(page, opts...), page
}

func TestClick(t *testing.T) {
	ui, page := newInteractor(t)
	btn := page.Add(loginButton, browsertest.NewElement())

	require.NoError(t, ui.Click(context.Background(), loginButton))
	assert.Equal(t, 1, btn.Clicks())
}

func TestClick_WaitsUntilEnabled(t *testing.T) {
	ui, page := newInteractor(t)
	btn := page.Add(loginButton, browsertest.NewElement().Disabled())
	time.AfterFunc(50*time.Millisecond, func() { btn.SetEnabled(true) })

	require.NoError(t, ui.Click(context.Background(), loginButton))
	assert.Equal(t, 1, btn.Clicks())
}

func TestClick_NeverClickableTimesOut(t *testing.T) {
	ui, page := newInteractor(t)
	btn := page.Add(loginButton, browsertest.NewElement().Disabled())

	started := time.Now()
	err := ui.Click(context.Background(), loginButton)
	elapsed := time.Since(started)
	require.ErrorIs(t, err, ErrLocateTimeout)

	var lt *LocateTimeoutError
	require.ErrorAs(t, err, &lt)
	assert.Equal(t, Clickable, lt.Condition)
	assert.Equal(t, loginButton, lt.Locator)
	assert.Equal(t, 200*time.Millisecond, lt.Budget)
	assert.GreaterOrEqual(t, lt.Elapsed, lt.Budget)
	assert.GreaterOrEqual(t, elapsed, lt.Budget)
	assert.Less(t, elapsed, lt.Budget+time.Second)
	assert.Zero(t, btn.Clicks())
}

func TestClick_ActionFailure(t *testing.T) {
	ui, page := newInteractor(t)
	boom := errors.New("element is not attached")
	btn := browsertest.NewElement()
	btn.ClickErr = boom
	page.Add(loginButton, btn)

	err := ui.Click(context.Background(), loginButton)
	assert.ErrorIs(t, err, ErrInteraction)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrLocateTimeout)
}

func TestType(t *testing.T) {
	ui, page := newInteractor(t)
	field := page.Add(usernameField, browsertest.NewElement().WithValue("previous"))

	require.NoError(t, ui.Type(context.Background(), usernameField, "john"))
	assert.Equal(t, "john", field.Value())
	assert.Equal(t, 1, field.Clears())
}

func TestType_EmptyTextOnlyClears(t *testing.T) {
	ui, page := newInteractor(t)
	field := page.Add(passwordField, browsertest.NewElement().WithValue("demo"))

	require.NoError(t, ui.Type(context.Background(), passwordField, ""))
	assert.Equal(t, "", field.Value())
	assert.Equal(t, 1, field.Clears())
}

func TestType_HiddenFieldIsStillTyped(t *testing.T) {
	ui, page := newInteractor(t)
	field := page.Add(usernameField, browsertest.NewElement().Hidden())

	require.NoError(t, ui.Type(context.Background(), usernameField, "john"))
	assert.Equal(t, "john", field.Value())
}

func TestReadText(t *testing.T) {
	ui, page := newInteractor(t)
	page.AddAfter(30*time.Millisecond, errorMessage,
		browsertest.NewElement().WithText("The username and password could not be verified."))

	text, err := ui.ReadText(context.Background(), errorMessage)
	require.NoError(t, err)
	assert.Equal(t, "The username and password could not be verified.", text)
}

func TestIsDisplayed(t *testing.T) {
	ui, page := newInteractor(t)
	page.Add(overview, browsertest.NewElement().WithText("Accounts Overview"))
	page.Add(errorMessage, browsertest.NewElement().Hidden())

	assert.True(t, ui.IsDisplayed(context.Background(), overview))
	assert.False(t, ui.IsDisplayed(context.Background(), errorMessage), "present but hidden")
}

func TestIsDisplayed_AbsentReturnsFalseAfterBudget(t *testing.T) {
	ui, _ := newInteractor(t)

	started := time.Now()
	displayed := ui.IsDisplayed(context.Background(), errorMessage)
	elapsed := time.Since(started)

	assert.False(t, displayed)
	assert.GreaterOrEqual(t, elapsed, 200*time.Millisecond)
	assert.Less(t, elapsed, 2*time.Second)
}

func TestSelectByVisibleText(t *testing.T) {
	ui, page := newInteractor(t)
	sel := page.Add(accountType, browsertest.NewElement().WithOptions(
		browser.Option{Value: "0", Text: "CHECKING"},
		browser.Option{Value: "1", Text: "SAVINGS"},
	))

	require.NoError(t, ui.SelectByVisibleText(context.Background(), accountType, "SAVINGS"))
	assert.Equal(t, "1", sel.Selected())

	require.NoError(t, ui.SelectByValue(context.Background(), accountType, "0"))
	assert.Equal(t, "0", sel.Selected())
}

func TestSelect_NoMatchingOption(t *testing.T) {
	ui, page := newInteractor(t)
	sel := page.Add(accountType, browsertest.NewElement().WithOptions(
		browser.Option{Value: "0", Text: "CHECKING"},
		browser.Option{Value: "1", Text: "SAVINGS"},
	))

	err := ui.SelectByVisibleText(context.Background(), accountType, "BROKERAGE")
	require.ErrorIs(t, err, ErrNoMatchingOption)

	var nm *NoMatchingOptionError
	require.ErrorAs(t, err, &nm)
	assert.Equal(t, "text", nm.By)
	assert.Equal(t, []string{"CHECKING", "SAVINGS"}, nm.Available)
	assert.Empty(t, sel.Selected())

	err = ui.SelectByValue(context.Background(), accountType, "7")
	require.ErrorAs(t, err, &nm)
	assert.Equal(t, []string{"0", "1"}, nm.Available)
}

func TestSelect_MissingElementTimesOut(t *testing.T) {
	ui, _ := newInteractor(t)

	err := ui.SelectByValue(context.Background(), accountType, "1")
	assert.ErrorIs(t, err, ErrLocateTimeout)
	assert.NotErrorIs(t, err, ErrNoMatchingOption)
}

func TestNavigateAndURL(t *testing.T) {
	ui, page := newInteractor(t)
	page.OnNavigate = func(p *browsertest.Page, url string) {
		p.SetTitle("ParaBank | Welcome")
	}

	require.NoError(t, ui.Navigate(context.Background(), "https://parabank.parasoft.com/parabank/index.htm"))
	assert.Equal(t, "https://parabank.parasoft.com/parabank/index.htm", ui.CurrentURL())

	title, err := ui.Title()
	require.NoError(t, err)
	assert.Equal(t, "ParaBank | Welcome", title)
}

func TestWaitForURLContains(t *testing.T) {
	ui, page := newInteractor(t)
	page.SetURL("https://parabank.parasoft.com/parabank/index.htm")
	time.AfterFunc(40*time.Millisecond, func() {
		page.SetURL("https://parabank.parasoft.com/parabank/overview.htm")
	})

	require.NoError(t, ui.WaitForURLContains(context.Background(), "overview.htm"))

	err := ui.WaitForURLContains(context.Background(), "register.htm")
	assert.ErrorIs(t, err, ErrURLTimeout)
	assert.ErrorIs(t, err, ErrLocateTimeout)

	var ut *URLTimeoutError
	require.ErrorAs(t, err, &ut)
	assert.Equal(t, "register.htm", ut.Fragment)
	assert.Equal(t, "https://parabank.parasoft.com/parabank/overview.htm", ut.URL)
	assert.Equal(t, 200*time.Millisecond, ut.Budget)
	assert.GreaterOrEqual(t, ut.Elapsed, ut.Budget)

	var lt *LocateTimeoutError
	assert.False(t, errors.As(err, &lt), "no element locator for a url wait")
}

func TestWithPolicy_DoesNotMutateOriginal(t *testing.T) {
	ui, _ := newInteractor(t)
	patient := ui.WithPolicy(Policy{Timeout: time.Second, Interval: 50 * time.Millisecond})

	assert.Equal(t, time.Second, patient.Policy().Timeout)
	assert.Equal(t, 200*time.Millisecond, ui.Policy().Timeout)
}

func TestInteractor_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	ui, page := newInteractor(t, WithMetrics(metrics))
	page.Add(loginButton, browsertest.NewElement())

	require.NoError(t, ui.Click(context.Background(), loginButton))
	_ = ui.WaitForVisible(context.Background(), errorMessage)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.actions.WithLabelValues("click", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.locateTimeouts.WithLabelValues("visible")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.locateTimeouts.WithLabelValues("clickable")))
}
