package pages

import (
	"context"

	"uiAutomation/internal/browser"
	"uiAutomation/internal/interact"
	"uiAutomation/internal/testdata"
)

var (
	RegFirstName      = browser.ByID("customer.firstName")
	RegLastName       = browser.ByID("customer.lastName")
	RegStreet         = browser.ByID("customer.address.street")
	RegCity           = browser.ByID("customer.address.city")
	RegState          = browser.ByID("customer.address.state")
	RegZipCode        = browser.ByID("customer.address.zipCode")
	RegPhone          = browser.ByID("customer.phoneNumber")
	RegSSN            = browser.ByID("customer.ssn")
	RegUsername       = browser.ByID("customer.username")
	RegPassword       = browser.ByID("customer.password")
	RegRepeatPassword = browser.ByID("customer.repeatPassword")
	RegisterButton    = browser.ByXPath("//input[@value='Register']")
	RegSuccess        = browser.ByCSS("div#rightPanel p")
	RegFieldErrors    = browser.ByCSS("span.error")
)

type RegistrationPage struct {
	base
}

func NewRegistrationPage(ui *interact.Interactor, baseURL string) *RegistrationPage {
	return &RegistrationPage{base{ui: ui, baseURL: baseURL}}
}

func (p *RegistrationPage) Open(ctx context.Context) error {
	return p.ui.Navigate(ctx, p.resolve(RegisterPath))
}

// Enter вводит value в поле формы field.
func (p *RegistrationPage) Enter(ctx context.Context, field browser.Locator, value string) error {
	return p.ui.Type(ctx, field, value)
}

// Fill заполняет всю форму, включая подтверждение пароля.
func (p *RegistrationPage) Fill(ctx context.Context, c testdata.Customer) error {
	fields := []struct {
		loc   browser.Locator
		value string
	}{
		{RegFirstName, c.FirstName},
		{RegLastName, c.LastName},
		{RegStreet, c.Street},
		{RegCity, c.City},
		{RegState, c.State},
		{RegZipCode, c.ZipCode},
		{RegPhone, c.Phone},
		{RegSSN, c.SSN},
		{RegUsername, c.Username},
		{RegPassword, c.Password},
		{RegRepeatPassword, c.Password},
	}
	for _, f := range fields {
		if err := p.ui.Type(ctx, f.loc, f.value); err != nil {
			return err
		}
	}
	return nil
}

func (p *RegistrationPage) Submit(ctx context.Context) error {
	return p.ui.Click(ctx, RegisterButton)
}

func (p *RegistrationPage) SuccessMessage(ctx context.Context) (string, error) {
	return p.ui.ReadText(ctx, RegSuccess)
}

func (p *RegistrationPage) IsSuccessDisplayed(ctx context.Context) bool {
	return p.ui.IsDisplayed(ctx, RegSuccess)
}

func (p *RegistrationPage) HasFieldErrors(ctx context.Context) bool {
	return p.ui.IsDisplayed(ctx, RegFieldErrors)
}
