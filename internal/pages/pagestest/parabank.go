// Package pagestest - упрощенная копия ParaBank на browsertest.Page: вход,
// регистрация, обзор счетов, открытие счета и перевод.
package pagestest

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"uiAutomation/internal/browser"
	"uiAutomation/internal/browser/browsertest"
	"uiAutomation/internal/pages"
)

const (
	LoginFailedText  = "The username and password could not be verified."
	LoginEmptyText   = "Please enter a username and password."
	RegisteredText   = "Your account was created successfully. You are now logged in."
	AccountOpenText  = "Congratulations, your account is now open."
	OverviewTitle    = "Accounts Overview"
	FirstAccountID   = "13344"
	SecondAccountID  = "13345"
	firstNewAccount  = 13566
	transferTemplate = "$%s has been transferred from account #%s to account #%s."
)

// Site отрисовывает страницы ParaBank при навигации и кликах.
type Site struct {
	BaseURL string

	mu          sync.Mutex
	users       map[string]string
	accounts    []string
	nextAccount int
	current     string
}

func NewSite(baseURL string) *Site {
	return &Site{
		BaseURL:     strings.TrimRight(baseURL, "/") + "/",
		users:       map[string]string{"john": "demo"},
		accounts:    []string{FirstAccountID, SecondAccountID},
		nextAccount: firstNewAccount,
	}
}

// AddUser регистрирует пользователя без прохождения формы.
func (s *Site) AddUser(username, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = password
}

func (s *Site) HasUser(username string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[username]
	return ok
}

// Install подключает сайт к странице. Подходит как Setup для
// browsertest.Variant.
func (s *Site) Install(p *browsertest.Page) {
	p.OnNavigate = func(p *browsertest.Page, url string) {
		s.render(p, strings.TrimPrefix(url, s.BaseURL))
	}
}

func (s *Site) goTo(p *browsertest.Page, path string) {
	p.SetURL(s.BaseURL + path)
	s.render(p, path)
}

func (s *Site) render(p *browsertest.Page, path string) {
	p.Reset()
	switch {
	case strings.HasPrefix(path, pages.IndexPath):
		p.SetTitle("ParaBank | Welcome | Online Banking")
		s.renderLogin(p)
	case strings.HasPrefix(path, pages.RegisterPath):
		p.SetTitle("ParaBank | Register for Free Online Account Access")
		s.renderRegister(p)
	case strings.HasPrefix(path, pages.OverviewPath):
		p.SetTitle("ParaBank | Accounts Overview")
		s.renderOverview(p)
	case strings.HasPrefix(path, pages.OpenAccountPath):
		p.SetTitle("ParaBank | Open Account")
		s.renderOpenAccount(p)
	case strings.HasPrefix(path, pages.TransferPath):
		p.SetTitle("ParaBank | Transfer Funds")
		s.renderTransfer(p)
	default:
		p.SetTitle("ParaBank | Error")
	}
}

func (s *Site) renderLogin(p *browsertest.Page) {
	user := p.Add(pages.LoginUsername, browsertest.NewElement())
	pass := p.Add(pages.LoginPassword, browsertest.NewElement())
	btn := p.Add(pages.LoginButton, browsertest.NewElement())
	register := p.Add(pages.RegisterLink, browsertest.NewElement().WithText("Register"))
	register.OnClick = func() { s.goTo(p, pages.RegisterPath) }

	btn.OnClick = func() {
		username, password := user.Value(), pass.Value()
		if username == "" || password == "" {
			s.loginError(p, LoginEmptyText)
			return
		}
		s.mu.Lock()
		want, ok := s.users[username]
		s.mu.Unlock()
		if !ok || want != password {
			s.loginError(p, LoginFailedText)
			return
		}
		s.login(username)
		s.goTo(p, pages.OverviewPath)
	}
}

func (s *Site) loginError(p *browsertest.Page, text string) {
	p.Remove(pages.LoginError)
	p.Add(pages.LoginError, browsertest.NewElement().WithText(text))
}

// CurrentUser - пользователь, под которым выполнен вход, или пустая строка.
func (s *Site) CurrentUser() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Site) login(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = username
}

func (s *Site) renderNav(p *browsertest.Page) {
	overview := p.Add(pages.AccountsOverviewLink, browsertest.NewElement().WithText(OverviewTitle))
	overview.OnClick = func() { s.goTo(p, pages.OverviewPath) }

	open := p.Add(pages.OpenNewAccountLink, browsertest.NewElement().WithText("Open New Account"))
	open.OnClick = func() { s.goTo(p, pages.OpenAccountPath) }

	transfer := p.Add(pages.TransferFundsLink, browsertest.NewElement().WithText("Transfer Funds"))
	transfer.OnClick = func() { s.goTo(p, pages.TransferPath) }

	logout := p.Add(pages.LogoutLink, browsertest.NewElement().WithText("Log Out"))
	logout.OnClick = func() {
		s.login("")
		s.goTo(p, pages.IndexPath)
	}
}

func (s *Site) renderOverview(p *browsertest.Page) {
	s.renderNav(p)
	p.Add(pages.WelcomeHeader, browsertest.NewElement().WithText(OverviewTitle))
	for _, id := range s.Accounts() {
		p.Add(pages.AccountsRows, browsertest.NewElement().WithText(id+" $100.00"))
	}
}

// Accounts возвращает номера всех счетов, включая открытые в тесте.
func (s *Site) Accounts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.accounts...)
}

func (s *Site) accountOptions() []browser.Option {
	var out []browser.Option
	for _, id := range s.Accounts() {
		out = append(out, browser.Option{Value: id, Text: id})
	}
	return out
}

func (s *Site) renderOpenAccount(p *browsertest.Page) {
	s.renderNav(p)
	p.Add(pages.AccountTypeSelect, browsertest.NewElement().WithOptions(
		browser.Option{Value: "0", Text: "CHECKING"},
		browser.Option{Value: "1", Text: "SAVINGS"},
	))
	p.Add(pages.FromAccountSelect, browsertest.NewElement().WithOptions(s.accountOptions()...))
	btn := p.Add(pages.CreateAccountButton, browsertest.NewElement())

	btn.OnClick = func() {
		s.mu.Lock()
		id := strconv.Itoa(s.nextAccount)
		s.nextAccount++
		s.accounts = append(s.accounts, id)
		s.mu.Unlock()

		p.Remove(pages.CreateAccountButton)
		p.Add(pages.Confirmation, browsertest.NewElement().WithText(AccountOpenText))
		p.Add(pages.NewAccountLink, browsertest.NewElement().WithText(id))
	}
}

func (s *Site) renderTransfer(p *browsertest.Page) {
	s.renderNav(p)
	amount := p.Add(pages.TransferAmount, browsertest.NewElement())
	from := p.Add(pages.FromAccountSelect, browsertest.NewElement().WithOptions(s.accountOptions()...))
	to := p.Add(pages.ToAccountSelect, browsertest.NewElement().WithOptions(s.accountOptions()...))
	btn := p.Add(pages.TransferButton, browsertest.NewElement())

	btn.OnClick = func() {
		p.Add(pages.Confirmation, browsertest.NewElement().WithText(
			fmt.Sprintf(transferTemplate, amount.Value(), from.Selected(), to.Selected())))
	}
}

func (s *Site) renderRegister(p *browsertest.Page) {
	fields := make(map[string]*browsertest.Element)
	for _, loc := range []browser.Locator{
		pages.RegFirstName, pages.RegLastName, pages.RegStreet, pages.RegCity, pages.RegState,
		pages.RegZipCode, pages.RegPhone, pages.RegSSN, pages.RegUsername, pages.RegPassword,
		pages.RegRepeatPassword,
	} {
		fields[loc.Value] = p.Add(loc, browsertest.NewElement())
	}
	btn := p.Add(pages.RegisterButton, browsertest.NewElement())

	btn.OnClick = func() {
		var missing bool
		for _, el := range fields {
			if el.Value() == "" {
				missing = true
			}
		}
		username := fields[pages.RegUsername.Value].Value()
		password := fields[pages.RegPassword.Value].Value()
		if password != fields[pages.RegRepeatPassword.Value].Value() {
			missing = true
		}
		if missing || s.HasUser(username) {
			p.Remove(pages.RegFieldErrors)
			p.Add(pages.RegFieldErrors, browsertest.NewElement().WithText("This field is required."))
			return
		}

		s.AddUser(username, password)
		s.login(username)
		p.Reset()
		s.renderNav(p)
		p.Add(pages.WelcomeHeader, browsertest.NewElement().WithText("Welcome "+username))
		p.Add(pages.RegSuccess, browsertest.NewElement().WithText(RegisteredText))
	}
}
