// Package pages - объекты страниц ParaBank поверх interact.Interactor.
// Локаторы экспортированы, чтобы тесты могли собрать страницу в памяти.
package pages

import (
	"net/url"
	"strings"

	"uiAutomation/internal/interact"
)

const (
	IndexPath        = "index.htm"
	RegisterPath     = "register.htm"
	OverviewPath     = "overview.htm"
	OpenAccountPath  = "openaccount.htm"
	TransferPath     = "transfer.htm"
	OverviewFragment = "overview"
)

type base struct {
	ui      *interact.Interactor
	baseURL string
}

// resolve склеивает базовый адрес приложения и путь страницы.
func (b base) resolve(path string) string {
	u, err := url.Parse(b.baseURL)
	if err != nil || u.Scheme == "" {
		return strings.TrimRight(b.baseURL, "/") + "/" + path
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.ResolveReference(&url.URL{Path: path}).String()
}
