package database

import (
	"context"
	"strings"

	"uiAutomation/internal/runner"
	"uiAutomation/internal/sanitizer"
)

// Recorder сохраняет результаты раннера в историю. Тексты ошибок проходят
// через sanitizer: в них бывают введенные значения полей.
type Recorder struct {
	repo *RunRepository
	mask *sanitizer.DataSanitizer
}

func NewRecorder(repo *RunRepository) *Recorder {
	return &Recorder{repo: repo, mask: sanitizer.New()}
}

func (r *Recorder) Record(ctx context.Context, res runner.Result) error {
	return r.repo.SaveRun(ctx, toModel(res, r.mask))
}

func toModel(res runner.Result, mask *sanitizer.DataSanitizer) *ScenarioRun {
	run := &ScenarioRun{
		RunID:      res.ID,
		Feature:    res.Feature,
		Scenario:   res.Scenario,
		Tags:       strings.Join(res.Tags, ","),
		Browser:    res.Browser,
		Status:     string(res.Status),
		StartedAt:  res.StartedAt,
		DurationMs: res.Duration.Milliseconds(),
		Steps:      make([]StepRecord, 0, len(res.Steps)),
	}
	if res.Err != nil {
		run.FailKind = res.Kind.String()
		run.Error = mask.Sanitize(res.Err.Error())
	}

	for i, st := range res.Steps {
		rec := StepRecord{
			StepNo:     i + 1,
			Keyword:    st.Keyword,
			Text:       st.Text,
			Status:     string(st.Status),
			DurationMs: st.Duration.Milliseconds(),
		}
		if st.Err != nil {
			rec.Error = mask.Sanitize(st.Err.Error())
		}
		run.Steps = append(run.Steps, rec)
	}
	return run
}
