package database

import (
	"context"

	"gorm.io/gorm"
)

type RunRepository struct {
	db *gorm.DB
}

func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{db: db}
}

// SaveRun сохраняет сценарий вместе с шагами в одной транзакции.
func (r *RunRepository) SaveRun(ctx context.Context, run *ScenarioRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *RunRepository) GetRun(ctx context.Context, runID string) (*ScenarioRun, error) {
	var run ScenarioRun
	err := r.db.WithContext(ctx).
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("step_no") }).
		Where("run_id = ?", runID).
		First(&run).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// ListRuns возвращает последние прогоны, новые первыми. Пустой status -
// без фильтра.
func (r *RunRepository) ListRuns(ctx context.Context, status string, limit, offset int) ([]ScenarioRun, error) {
	q := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Offset(offset)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var runs []ScenarioRun
	if err := q.Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// FlakyScenarios - сценарии, которые за последние window прогонов и падали,
// и проходили.
func (r *RunRepository) FlakyScenarios(ctx context.Context, window int) ([]FlakyScenario, error) {
	var out []FlakyScenario
	recent := r.db.Model(&ScenarioRun{}).Order("id DESC").Limit(window)
	err := r.db.WithContext(ctx).
		Table("(?) AS recent", recent).
		Select("feature, scenario, " +
			"COUNT(*) FILTER (WHERE status = 'passed') AS passed, " +
			"COUNT(*) FILTER (WHERE status = 'failed') AS failed").
		Group("feature, scenario").
		Having("COUNT(*) FILTER (WHERE status = 'passed') > 0 AND COUNT(*) FILTER (WHERE status = 'failed') > 0").
		Order("failed DESC").
		Scan(&out).Error
	return out, err
}

type FlakyScenario struct {
	Feature  string `json:"feature"`
	Scenario string `json:"scenario"`
	Passed   int    `json:"passed"`
	Failed   int    `json:"failed"`
}
