package runner

import (
	"go.uber.org/zap"

	"uiAutomation/internal/browser"
	"uiAutomation/internal/interact"
	"uiAutomation/internal/scenario"
	"uiAutomation/internal/testdata"
)

// World - все, что видит шаг: сессия браузера, слой взаимодействия и
// хранилище сценария. Создается раннером заново для каждого сценария.
type World struct {
	Session *browser.Session
	UI      *interact.Interactor
	Store   *scenario.Store
	Log     *zap.Logger
	Data    *testdata.Generator

	BaseURL  string
	Username string
	Password string
}
