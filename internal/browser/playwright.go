package browser

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

// RuntimeConfig - настройки драйвера Playwright.
type RuntimeConfig struct {
	BrowsersPath string
	// Install скачивает драйвер и браузеры перед запуском.
	Install bool
	Verbose bool
	// Timeout - таймаут по умолчанию для операций страницы.
	Timeout time.Duration
}

// Runtime держит процесс драйвера Playwright. Один Runtime разделяется
// всеми сценариями прогона, у каждого сценария свой браузер.
type Runtime struct {
	pw  *playwright.Playwright
	cfg RuntimeConfig
}

func NewRuntime(cfg RuntimeConfig) (*Runtime, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.BrowsersPath != "" {
		os.Setenv("PLAYWRIGHT_BROWSERS_PATH", cfg.BrowsersPath)
	}

	opts := &playwright.RunOptions{
		Verbose: cfg.Verbose,
	}
	if !cfg.Verbose {
		opts.Stdout = io.Discard
		opts.Stderr = io.Discard
	}

	if cfg.Install {
		if err := playwright.Install(opts); err != nil {
			return nil, fmt.Errorf("failed to install playwright: %w", err)
		}
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}
	return &Runtime{pw: pw, cfg: cfg}, nil
}

// Variants возвращает все поддерживаемые браузеры поверх этого драйвера.
func (r *Runtime) Variants() []Variant {
	return []Variant{
		&chromeVariant{rt: r},
		&firefoxVariant{rt: r},
		&edgeVariant{rt: r},
	}
}

func (r *Runtime) Stop() error {
	if r.pw == nil {
		return nil
	}
	return r.pw.Stop()
}

// launch запускает браузер, контекст с размером окна и первую страницу.
// При любой ошибке уже открытые ресурсы закрываются.
func (r *Runtime) launch(bt playwright.BrowserType, launchOpts playwright.BrowserTypeLaunchOptions, opts Options) (Instance, error) {
	br, err := bt.Launch(launchOpts)
	if err != nil {
		return nil, err
	}

	bctx, err := br.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  opts.WindowWidth,
			Height: opts.WindowHeight,
		},
	})
	if err != nil {
		br.Close()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		bctx.Close()
		br.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	page.SetDefaultTimeout(float64(r.cfg.Timeout.Milliseconds()))

	return &pageDocument{browser: br, context: bctx, page: page}, nil
}

// pageDocument реализует Instance поверх страницы Playwright.
type pageDocument struct {
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
}

func (d *pageDocument) Find(selector string) ([]Element, error) {
	handles, err := d.page.QuerySelectorAll(selector)
	if err != nil {
		return nil, err
	}
	elements := make([]Element, 0, len(handles))
	for _, h := range handles {
		elements = append(elements, &handleElement{h: h})
	}
	return elements, nil
}

func (d *pageDocument) Navigate(url string) error {
	_, err := d.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	return err
}

func (d *pageDocument) URL() string {
	return d.page.URL()
}

func (d *pageDocument) Title() (string, error) {
	return d.page.Title()
}

func (d *pageDocument) Close() error {
	var errs []string
	if err := d.context.Close(); err != nil {
		errs = append(errs, err.Error())
	}
	if err := d.browser.Close(); err != nil {
		errs = append(errs, err.Error())
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing browser: %s", strings.Join(errs, "; "))
	}
	return nil
}

// handleElement реализует Element поверх ElementHandle. Действия идут с
// коротким таймаутом: ожидание уже выполнено слоем interact.
type handleElement struct {
	h playwright.ElementHandle
}

const actionTimeoutMs = 5000

func (e *handleElement) IsVisible() (bool, error) {
	return e.h.IsVisible()
}

func (e *handleElement) IsEnabled() (bool, error) {
	return e.h.IsEnabled()
}

func (e *handleElement) Click() error {
	return e.h.Click(playwright.ElementHandleClickOptions{
		Timeout: playwright.Float(actionTimeoutMs),
	})
}

func (e *handleElement) Clear() error {
	return e.h.Fill("", playwright.ElementHandleFillOptions{
		Timeout: playwright.Float(actionTimeoutMs),
	})
}

func (e *handleElement) SendKeys(text string) error {
	return e.h.Type(text, playwright.ElementHandleTypeOptions{
		Timeout: playwright.Float(actionTimeoutMs),
	})
}

func (e *handleElement) Text() (string, error) {
	text, err := e.h.InnerText()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

const optionsScript = `el => el.options
	? Array.from(el.options).map(o => ({ value: o.value, text: (o.text || '').trim() }))
	: []`

func (e *handleElement) Options() ([]Option, error) {
	raw, err := e.h.Evaluate(optionsScript)
	if err != nil {
		return nil, err
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil, nil
	}

	options := make([]Option, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		value, _ := m["value"].(string)
		text, _ := m["text"].(string)
		options = append(options, Option{Value: value, Text: text})
	}
	return options, nil
}

func (e *handleElement) Select(value string) error {
	_, err := e.h.SelectOption(playwright.SelectOptionValues{Values: &[]string{value}},
		playwright.ElementHandleSelectOptionOptions{Timeout: playwright.Float(actionTimeoutMs)})
	return err
}
