// Package database хранит историю прогонов сценариев в PostgreSQL через GORM.
package database

import "time"

// ScenarioRun - один выполненный сценарий.
// Статусы: passed, failed.
type ScenarioRun struct {
	ID         uint         `gorm:"primaryKey" json:"-"`
	RunID      string       `gorm:"type:varchar(36);uniqueIndex;not null" json:"run_id"` // UUID из runner.Result
	Feature    string       `gorm:"type:text;not null" json:"feature"`
	Scenario   string       `gorm:"type:text;not null" json:"scenario"`
	Tags       string       `gorm:"type:text" json:"tags,omitempty"` // через запятую
	Browser    string       `gorm:"type:varchar(32);not null" json:"browser"`
	Status     string       `gorm:"type:varchar(16);not null;index" json:"status"`
	FailKind   string       `gorm:"type:varchar(16)" json:"fail_kind,omitempty"` // setup, sync, programmer, assertion
	Error      string       `gorm:"type:text" json:"error,omitempty"`
	StartedAt  time.Time    `gorm:"not null" json:"started_at"`
	DurationMs int64        `gorm:"not null" json:"duration_ms"`
	Steps      []StepRecord `json:"steps,omitempty"`
	CreatedAt  time.Time    `gorm:"autoCreateTime" json:"-"`
}

// StepRecord - результат одного шага сценария.
type StepRecord struct {
	ID            uint   `gorm:"primaryKey" json:"-"`
	ScenarioRunID uint   `gorm:"index;not null" json:"-"`
	StepNo        int    `gorm:"not null" json:"step_no"`
	Keyword       string `gorm:"type:varchar(8)" json:"keyword"`
	Text          string `gorm:"type:text;not null" json:"text"`
	Status        string `gorm:"type:varchar(16);not null" json:"status"`
	Error         string `gorm:"type:text" json:"error,omitempty"`
	DurationMs    int64  `json:"duration_ms"`
}
