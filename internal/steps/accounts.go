package steps

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"uiAutomation/internal/browser"
	"uiAutomation/internal/pages"
	"uiAutomation/internal/runner"
	"uiAutomation/internal/scenario"
)

var navigationLinks = map[string]browser.Locator{
	"accounts overview": pages.AccountsOverviewLink,
	"open new account":  pages.OpenNewAccountLink,
	"transfer funds":    pages.TransferFundsLink,
	"log out":           pages.LogoutLink,
}

func registerAccounts(reg *runner.Registry) {
	dashboard := func(w *runner.World) *pages.DashboardPage {
		return pages.NewDashboardPage(w.UI, w.BaseURL)
	}

	reg.Register("user navigates to accounts overview", 0, func(ctx context.Context, w *runner.World, _ []string) error {
		return dashboard(w).OpenAccountsOverview(ctx)
	})

	reg.Register("user should see list of all accounts", 0, func(ctx context.Context, w *runner.World, _ []string) error {
		return runner.Assertf(dashboard(w).IsAccountsListDisplayed(ctx), "список счетов не показан")
	})

	reg.Register("user clicks on link", 1, func(ctx context.Context, w *runner.World, args []string) error {
		loc, ok := navigationLinks[strings.ToLower(strings.TrimSpace(args[0]))]
		if !ok {
			return fmt.Errorf("неизвестная ссылка %q: %w", args[0], runner.ErrStepArgs)
		}
		return w.UI.Click(ctx, loc)
	})

	reg.Register("user selects account type", 1, func(ctx context.Context, w *runner.World, args []string) error {
		return dashboard(w).SelectAccountType(ctx, args[0])
	})

	reg.Register("user selects source account", 1, func(ctx context.Context, w *runner.World, args []string) error {
		return dashboard(w).SelectFromAccount(ctx, args[0])
	})

	reg.Register("user clicks create account button", 0, func(ctx context.Context, w *runner.World, _ []string) error {
		return dashboard(w).CreateAccount(ctx)
	})

	reg.Register("new account should be created successfully", 0, func(ctx context.Context, w *runner.World, _ []string) error {
		id, err := dashboard(w).NewAccountID(ctx)
		if err != nil {
			return expect(err, "номер нового счета не показан")
		}
		if err := runner.Assertf(id != "", "номер нового счета пуст"); err != nil {
			return err
		}
		w.Store.Set(KeyNewAccountID, id)
		w.Log.Info("Открыт счет", zap.String("account", id))
		return nil
	})

	reg.Register("confirmation message should be displayed", 0, func(ctx context.Context, w *runner.World, _ []string) error {
		msg, err := dashboard(w).ConfirmationMessage(ctx)
		if err != nil {
			return expect(err, "сообщение подтверждения не показано")
		}
		w.Store.Set(KeyConfirmation, msg)
		return runner.Assertf(msg != "", "сообщение подтверждения пустое")
	})

	reg.Register("confirmation message should contain", 1, func(ctx context.Context, w *runner.World, args []string) error {
		msg, err := dashboard(w).ConfirmationMessage(ctx)
		if err != nil {
			return expect(err, "сообщение подтверждения не показано, ожидалось %q", args[0])
		}
		return runner.Assertf(strings.Contains(msg, args[0]),
			"подтверждение %q не содержит %q", msg, args[0])
	})

	reg.Register("user navigates to transfer funds page", 0, func(ctx context.Context, w *runner.World, _ []string) error {
		return dashboard(w).OpenTransferFunds(ctx)
	})

	reg.Register("user enters amount", 1, func(ctx context.Context, w *runner.World, args []string) error {
		return dashboard(w).EnterTransferAmount(ctx, args[0])
	})

	reg.Register("user selects destination account", 1, func(ctx context.Context, w *runner.World, args []string) error {
		return dashboard(w).SelectToAccount(ctx, args[0])
	})

	reg.Register("user selects the new account as destination", 0, func(ctx context.Context, w *runner.World, _ []string) error {
		id, err := scenario.Value[string](w.Store, KeyNewAccountID)
		if err != nil {
			return err
		}
		return dashboard(w).SelectToAccount(ctx, id)
	})

	reg.Register("user clicks transfer button", 0, func(ctx context.Context, w *runner.World, _ []string) error {
		return dashboard(w).SubmitTransfer(ctx)
	})

	reg.Register("confirmation should mention the new account", 0, func(ctx context.Context, w *runner.World, _ []string) error {
		id, err := scenario.Value[string](w.Store, KeyNewAccountID)
		if err != nil {
			return err
		}
		msg, err := dashboard(w).ConfirmationMessage(ctx)
		if err != nil {
			return expect(err, "подтверждение перевода не показано")
		}
		return runner.Assertf(strings.Contains(msg, "#"+id), "подтверждение %q не упоминает счет %s", msg, id)
	})
}
