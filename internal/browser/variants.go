package browser

import (
	"context"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// chromeVariant - Google Chrome через канал "chrome" движка Chromium.
type chromeVariant struct {
	rt *Runtime
}

func (v *chromeVariant) Name() string { return "chrome" }

func (v *chromeVariant) Launch(ctx context.Context, opts Options) (Instance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return v.rt.launch(v.rt.pw.Chromium, playwright.BrowserTypeLaunchOptions{
		Channel:  playwright.String("chrome"),
		Headless: playwright.Bool(opts.Headless),
		Args:     chromiumArgs(opts),
	}, opts)
}

// edgeVariant - Microsoft Edge, тот же Chromium с каналом "msedge".
type edgeVariant struct {
	rt *Runtime
}

func (v *edgeVariant) Name() string { return "edge" }

func (v *edgeVariant) Launch(ctx context.Context, opts Options) (Instance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return v.rt.launch(v.rt.pw.Chromium, playwright.BrowserTypeLaunchOptions{
		Channel:  playwright.String("msedge"),
		Headless: playwright.Bool(opts.Headless),
		Args:     chromiumArgs(opts),
	}, opts)
}

type firefoxVariant struct {
	rt *Runtime
}

func (v *firefoxVariant) Name() string { return "firefox" }

func (v *firefoxVariant) Launch(ctx context.Context, opts Options) (Instance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return v.rt.launch(v.rt.pw.Firefox, playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args:     firefoxArgs(opts),
	}, opts)
}

func chromiumArgs(opts Options) []string {
	args := []string{
		"--no-sandbox",
		"--disable-notifications",
		"--disable-popup-blocking",
	}
	if opts.Headless {
		args = append(args, fmt.Sprintf("--window-size=%d,%d", opts.WindowWidth, opts.WindowHeight))
	} else {
		args = append(args, "--start-maximized")
	}
	return append(args, opts.Args...)
}

func firefoxArgs(opts Options) []string {
	args := []string{
		fmt.Sprintf("--width=%d", opts.WindowWidth),
		fmt.Sprintf("--height=%d", opts.WindowHeight),
	}
	return append(args, opts.Args...)
}
