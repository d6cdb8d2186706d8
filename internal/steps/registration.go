package steps

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"uiAutomation/internal/browser"
	"uiAutomation/internal/pages"
	"uiAutomation/internal/runner"
	"uiAutomation/internal/scenario"
	"uiAutomation/internal/testdata"
)

var registrationFields = map[string]browser.Locator{
	"user fills first name":   pages.RegFirstName,
	"user fills last name":    pages.RegLastName,
	"user fills address":      pages.RegStreet,
	"user fills city":         pages.RegCity,
	"user fills state":        pages.RegState,
	"user fills zip code":     pages.RegZipCode,
	"user fills phone number": pages.RegPhone,
	"user fills SSN":          pages.RegSSN,
	"user fills username":     pages.RegUsername,
	"user fills password":     pages.RegPassword,
	"user confirms password":  pages.RegRepeatPassword,
}

func registerRegistration(reg *runner.Registry) {
	reg.Register("user is on ParaBank registration page", 0, func(ctx context.Context, w *runner.World, _ []string) error {
		return pages.NewRegistrationPage(w.UI, w.BaseURL).Open(ctx)
	})

	for text, field := range registrationFields {
		reg.Register(text, 1, func(ctx context.Context, w *runner.World, args []string) error {
			return pages.NewRegistrationPage(w.UI, w.BaseURL).Enter(ctx, field, args[0])
		})
	}

	reg.Register("user fills registration form with generated data", 0, func(ctx context.Context, w *runner.World, _ []string) error {
		customer := w.Data.Customer()
		if err := pages.NewRegistrationPage(w.UI, w.BaseURL).Fill(ctx, customer); err != nil {
			return err
		}
		w.Store.Set(KeyCustomer, customer)
		w.Store.Set(KeyRegisteredUsername, customer.Username)
		w.Store.Set(KeyRegisteredPassword, customer.Password)
		w.Log.Info("Форма регистрации заполнена", zap.String("username", customer.Username))
		return nil
	})

	reg.Register("user clicks register button", 0, func(ctx context.Context, w *runner.World, _ []string) error {
		return pages.NewRegistrationPage(w.UI, w.BaseURL).Submit(ctx)
	})

	reg.Register("registration should be successful", 0, func(ctx context.Context, w *runner.World, _ []string) error {
		shown := pages.NewRegistrationPage(w.UI, w.BaseURL).IsSuccessDisplayed(ctx)
		return runner.Assertf(shown, "сообщение об успешной регистрации не показано")
	})

	reg.Register("user should see", 1, func(ctx context.Context, w *runner.World, args []string) error {
		actual, err := pages.NewRegistrationPage(w.UI, w.BaseURL).SuccessMessage(ctx)
		if err != nil {
			return expect(err, "сообщение %q не найдено", args[0])
		}
		return runner.Assertf(strings.Contains(actual, args[0]),
			"ожидалось %q, на странице %q", args[0], actual)
	})

	reg.Register("error messages should be displayed for required fields", 0, func(ctx context.Context, w *runner.World, _ []string) error {
		shown := pages.NewRegistrationPage(w.UI, w.BaseURL).HasFieldErrors(ctx)
		return runner.Assertf(shown, "ошибки обязательных полей не показаны")
	})

	reg.Register("user logs in as the registered user", 0, func(ctx context.Context, w *runner.World, _ []string) error {
		username, err := scenario.Value[string](w.Store, KeyRegisteredUsername)
		if err != nil {
			return err
		}
		password, err := scenario.Value[string](w.Store, KeyRegisteredPassword)
		if err != nil {
			return err
		}
		return login(ctx, w, username, password)
	})

	reg.Register("welcome message should greet the registered user", 0, func(ctx context.Context, w *runner.World, _ []string) error {
		customer, err := scenario.Value[testdata.Customer](w.Store, KeyCustomer)
		if err != nil {
			return err
		}
		actual, err := pages.NewDashboardPage(w.UI, w.BaseURL).WelcomeMessage(ctx)
		if err != nil {
			return expect(err, "приветствие для %s не найдено", customer.Username)
		}
		return runner.Assertf(strings.Contains(actual, customer.Username),
			"приветствие %q не содержит %q", actual, customer.Username)
	})
}
