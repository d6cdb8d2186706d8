package steps

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"uiAutomation/internal/pages"
	"uiAutomation/internal/runner"
)

func registerLogin(reg *runner.Registry) {
	reg.Register("user is on ParaBank login page", 0, func(ctx context.Context, w *runner.World, _ []string) error {
		return pages.NewLoginPage(w.UI, w.BaseURL).Open(ctx)
	})

	reg.Register("user enters username", 1, func(ctx context.Context, w *runner.World, args []string) error {
		return pages.NewLoginPage(w.UI, w.BaseURL).EnterUsername(ctx, args[0])
	})

	reg.Register("user enters password", 1, func(ctx context.Context, w *runner.World, args []string) error {
		return pages.NewLoginPage(w.UI, w.BaseURL).EnterPassword(ctx, args[0])
	})

	reg.Register("user leaves username empty", 0, func(ctx context.Context, w *runner.World, _ []string) error {
		return pages.NewLoginPage(w.UI, w.BaseURL).EnterUsername(ctx, "")
	})

	reg.Register("user leaves password empty", 0, func(ctx context.Context, w *runner.World, _ []string) error {
		return pages.NewLoginPage(w.UI, w.BaseURL).EnterPassword(ctx, "")
	})

	reg.Register("user clicks login button", 0, func(ctx context.Context, w *runner.World, _ []string) error {
		return pages.NewLoginPage(w.UI, w.BaseURL).Submit(ctx)
	})

	reg.Register("user logs in with default credentials", 0, func(ctx context.Context, w *runner.World, _ []string) error {
		return login(ctx, w, w.Username, w.Password)
	})

	reg.Register("user is logged in with username and password", 2, func(ctx context.Context, w *runner.World, args []string) error {
		return login(ctx, w, args[0], args[1])
	})

	reg.Register("user should be navigated to dashboard page", 0, func(ctx context.Context, w *runner.World, _ []string) error {
		err := w.UI.WaitForURLContains(ctx, pages.OverviewFragment)
		return expect(err, "пользователь не попал в личный кабинет, текущий адрес %s", w.UI.CurrentURL())
	})

	reg.Register("user should see welcome message", 1, func(ctx context.Context, w *runner.World, args []string) error {
		actual, err := pages.NewDashboardPage(w.UI, w.BaseURL).WelcomeMessage(ctx)
		if err != nil {
			return expect(err, "приветствие %q не найдено", args[0])
		}
		return runner.Assertf(strings.Contains(actual, args[0]),
			"приветствие: ожидалось %q, на странице %q", args[0], actual)
	})

	reg.Register("error message should be displayed", 0, func(ctx context.Context, w *runner.World, _ []string) error {
		shown := pages.NewLoginPage(w.UI, w.BaseURL).IsErrorDisplayed(ctx)
		return runner.Assertf(shown, "сообщение об ошибке не показано")
	})

	reg.Register("error message should contain", 1, func(ctx context.Context, w *runner.World, args []string) error {
		p := pages.NewLoginPage(w.UI, w.BaseURL)
		if !p.IsErrorDisplayed(ctx) {
			return runner.Assertf(false, "сообщение об ошибке не показано, ожидалось %q", args[0])
		}
		actual, err := p.ErrorMessage(ctx)
		if err != nil {
			return err
		}
		return runner.Assertf(strings.Contains(actual, args[0]),
			"ошибка: ожидалось %q, на странице %q", args[0], actual)
	})

	reg.Register("user logs out", 0, func(ctx context.Context, w *runner.World, _ []string) error {
		return pages.NewDashboardPage(w.UI, w.BaseURL).Logout(ctx)
	})
}

func login(ctx context.Context, w *runner.World, username, password string) error {
	p := pages.NewLoginPage(w.UI, w.BaseURL)
	if err := p.Open(ctx); err != nil {
		return err
	}
	if err := p.Login(ctx, username, password); err != nil {
		return err
	}
	w.Log.Info("Выполнен вход", zap.String("username", username))
	return nil
}
