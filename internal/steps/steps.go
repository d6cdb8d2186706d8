// Package steps - библиотека шагов ParaBank. Шаги передают данные друг
// другу только через хранилище сценария.
package steps

import (
	"errors"

	"uiAutomation/internal/interact"
	"uiAutomation/internal/runner"
)

// Ключи хранилища сценария.
const (
	KeyRegisteredUsername = "registeredUsername"
	KeyRegisteredPassword = "registeredPassword"
	KeyCustomer           = "customer"
	KeyNewAccountID       = "newAccountId"
	KeyConfirmation       = "confirmation"
)

// Register добавляет в reg все шаги библиотеки.
func Register(reg *runner.Registry) {
	registerLogin(reg)
	registerRegistration(reg)
	registerAccounts(reg)
}

// expect превращает истекшее ожидание в провал проверки: для шагов Then
// отсутствие элемента означает, что ожидание теста не выполнилось.
func expect(err error, format string, args ...any) error {
	if errors.Is(err, interact.ErrLocateTimeout) {
		return errors.Join(runner.Assertf(false, format, args...), err)
	}
	return err
}
