package pages

import (
	"context"
	"strings"

	"uiAutomation/internal/browser"
	"uiAutomation/internal/interact"
)

var (
	AccountsOverviewLink = browser.ByXPath("//a[contains(text(), 'Accounts Overview')]")
	OpenNewAccountLink   = browser.ByXPath("//a[contains(text(), 'Open New Account')]")
	TransferFundsLink    = browser.ByXPath("//a[contains(text(), 'Transfer Funds')]")
	LogoutLink           = browser.ByXPath("//a[contains(text(), 'Log Out')]")
	AccountsRows         = browser.ByXPath("//table[@class='accounts']/tbody/tr")
	AccountTypeSelect    = browser.ByID("type")
	FromAccountSelect    = browser.ByID("fromAccountId")
	ToAccountSelect      = browser.ByID("toAccountId")
	TransferAmount       = browser.ByID("amount")
	TransferButton       = browser.ByXPath("//input[@value='Transfer']")
	CreateAccountButton  = browser.ByXPath("//input[@value='Open New Account']")
	Confirmation         = browser.ByCSS("div#rightPanel p")
	NewAccountLink       = browser.ByID("newAccountId")
)

type DashboardPage struct {
	base
}

func NewDashboardPage(ui *interact.Interactor, baseURL string) *DashboardPage {
	return &DashboardPage{base{ui: ui, baseURL: baseURL}}
}

func (p *DashboardPage) OpenAccountsOverview(ctx context.Context) error {
	return p.ui.Click(ctx, AccountsOverviewLink)
}

func (p *DashboardPage) OpenNewAccount(ctx context.Context) error {
	return p.ui.Click(ctx, OpenNewAccountLink)
}

func (p *DashboardPage) OpenTransferFunds(ctx context.Context) error {
	return p.ui.Click(ctx, TransferFundsLink)
}

func (p *DashboardPage) SelectAccountType(ctx context.Context, accountType string) error {
	return p.ui.SelectByVisibleText(ctx, AccountTypeSelect, accountType)
}

func (p *DashboardPage) SelectFromAccount(ctx context.Context, accountID string) error {
	return p.ui.SelectByValue(ctx, FromAccountSelect, accountID)
}

func (p *DashboardPage) SelectToAccount(ctx context.Context, accountID string) error {
	return p.ui.SelectByValue(ctx, ToAccountSelect, accountID)
}

func (p *DashboardPage) EnterTransferAmount(ctx context.Context, amount string) error {
	return p.ui.Type(ctx, TransferAmount, amount)
}

func (p *DashboardPage) SubmitTransfer(ctx context.Context) error {
	return p.ui.Click(ctx, TransferButton)
}

func (p *DashboardPage) CreateAccount(ctx context.Context) error {
	return p.ui.Click(ctx, CreateAccountButton)
}

func (p *DashboardPage) ConfirmationMessage(ctx context.Context) (string, error) {
	return p.ui.ReadText(ctx, Confirmation)
}

func (p *DashboardPage) WelcomeMessage(ctx context.Context) (string, error) {
	return p.ui.ReadText(ctx, WelcomeHeader)
}

func (p *DashboardPage) IsAccountsListDisplayed(ctx context.Context) bool {
	return p.ui.IsDisplayed(ctx, AccountsRows)
}

// NewAccountID читает номер счета, открытого последним, со страницы
// подтверждения.
func (p *DashboardPage) NewAccountID(ctx context.Context) (string, error) {
	if err := p.ui.WaitForVisible(ctx, NewAccountLink); err != nil {
		return "", err
	}
	id, err := p.ui.ReadText(ctx, NewAccountLink)
	return strings.TrimSpace(id), err
}

// Logout ждет, пока ссылка выхода пропадет, то есть страница сменилась.
func (p *DashboardPage) Logout(ctx context.Context) error {
	if err := p.ui.Click(ctx, LogoutLink); err != nil {
		return err
	}
	return p.ui.WaitForInvisible(ctx, LogoutLink)
}

func (p *DashboardPage) IsOnOverview() bool {
	return strings.Contains(p.ui.CurrentURL(), OverviewFragment)
}
