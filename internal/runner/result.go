package runner

import "time"

type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

type StepResult struct {
	Keyword  string
	Text     string
	Status   Status
	Err      error
	Duration time.Duration
}

type Result struct {
	ID        string
	Feature   string
	Scenario  string
	Tags      []string
	Browser   string
	Status    Status
	Err       error
	Kind      Kind
	StartedAt time.Time
	Duration  time.Duration
	Steps     []StepResult
	// StoreKeys - ключи хранилища на момент падения, до очистки.
	StoreKeys []string
}

func (r *Result) fail(err error) {
	r.Status = StatusFailed
	r.Err = err
	r.Kind = Classify(err)
}

func (r Result) Passed() bool {
	return r.Status == StatusPassed
}

type Summary struct {
	Total  int
	Passed int
	Failed int
	ByKind map[Kind]int
}

func Summarize(results []Result) Summary {
	s := Summary{Total: len(results), ByKind: make(map[Kind]int)}
	for _, r := range results {
		if r.Passed() {
			s.Passed++
			continue
		}
		s.Failed++
		s.ByKind[r.Kind]++
	}
	return s
}
