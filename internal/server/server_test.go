package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"uiAutomation/internal/config"
	"uiAutomation/internal/database"
	"uiAutomation/internal/logger"
)

type memStore struct {
	runs   []database.ScenarioRun
	status string
	limit  int
}

func (m *memStore) ListRuns(_ context.Context, status string, limit, _ int) ([]database.ScenarioRun, error) {
	m.status, m.limit = status, limit
	return m.runs, nil
}

func (m *memStore) GetRun(_ context.Context, runID string) (*database.ScenarioRun, error) {
	for i := range m.runs {
		if m.runs[i].RunID == runID {
			return &m.runs[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memStore) FlakyScenarios(context.Context, int) ([]database.FlakyScenario, error) {
	return []database.FlakyScenario{{Feature: "Login", Scenario: "invalid", Passed: 1, Failed: 1}}, nil
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHandler(t *testing.T) {
	store := &memStore{runs: []database.ScenarioRun{
		{RunID: "run-1", Feature: "Login", Scenario: "valid", Status: "passed"},
	}}
	h := New(&config.Cfg{}, logger.Nop(), store).Handler()

	w := get(t, h, "/health")
	assert.Equal(t, http.StatusOK, w.Code)

	w = get(t, h, "/api/runs?status=failed&limit=5")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "failed", store.status)
	assert.Equal(t, 5, store.limit)
	var runs []database.ScenarioRun
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &runs))
	assert.Len(t, runs, 1)

	w = get(t, h, "/api/runs?limit=lots")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(t, h, "/api/runs/run-1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "valid")

	w = get(t, h, "/api/runs/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = get(t, h, "/api/flaky")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "invalid")
}
