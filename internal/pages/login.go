package pages

import (
	"context"

	"uiAutomation/internal/browser"
	"uiAutomation/internal/interact"
)

var (
	LoginUsername = browser.ByName("username")
	LoginPassword = browser.ByName("password")
	LoginButton   = browser.ByXPath("//input[@value='Log In']")
	LoginError    = browser.ByCSS("p.error")
	WelcomeHeader = browser.ByCSS("h2")
	RegisterLink  = browser.ByXPath("//a[contains(text(), 'Register')]")
)

type LoginPage struct {
	base
}

func NewLoginPage(ui *interact.Interactor, baseURL string) *LoginPage {
	return &LoginPage{base{ui: ui, baseURL: baseURL}}
}

func (p *LoginPage) Open(ctx context.Context) error {
	return p.ui.Navigate(ctx, p.resolve(IndexPath))
}

func (p *LoginPage) EnterUsername(ctx context.Context, username string) error {
	return p.ui.Type(ctx, LoginUsername, username)
}

func (p *LoginPage) EnterPassword(ctx context.Context, password string) error {
	return p.ui.Type(ctx, LoginPassword, password)
}

func (p *LoginPage) Submit(ctx context.Context) error {
	return p.ui.Click(ctx, LoginButton)
}

// Login заполняет форму и отправляет ее. Результат входа не проверяет.
func (p *LoginPage) Login(ctx context.Context, username, password string) error {
	if err := p.EnterUsername(ctx, username); err != nil {
		return err
	}
	if err := p.EnterPassword(ctx, password); err != nil {
		return err
	}
	return p.Submit(ctx)
}

// OpenRegistration переходит к форме регистрации по ссылке со страницы входа.
func (p *LoginPage) OpenRegistration(ctx context.Context) error {
	return p.ui.Click(ctx, RegisterLink)
}

func (p *LoginPage) ErrorMessage(ctx context.Context) (string, error) {
	return p.ui.ReadText(ctx, LoginError)
}

func (p *LoginPage) IsErrorDisplayed(ctx context.Context) bool {
	return p.ui.IsDisplayed(ctx, LoginError)
}

func (p *LoginPage) WelcomeMessage(ctx context.Context) (string, error) {
	return p.ui.ReadText(ctx, WelcomeHeader)
}
