package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"gorm.io/gorm"

	"uiAutomation/internal/cli/ui"
	"uiAutomation/internal/database"
)

// HistoryRepository - чтение истории прогонов.
type HistoryRepository interface {
	ListRuns(ctx context.Context, status string, limit, offset int) ([]database.ScenarioRun, error)
	GetRun(ctx context.Context, runID string) (*database.ScenarioRun, error)
	FlakyScenarios(ctx context.Context, window int) ([]database.FlakyScenario, error)
}

// HistoryHandler обрабатывает команды просмотра истории
type HistoryHandler struct {
	repo HistoryRepository
	out  io.Writer
}

func NewHistoryHandler(repo HistoryRepository, out io.Writer) *HistoryHandler {
	return &HistoryHandler{repo: repo, out: out}
}

// List выводит последние прогоны, новые сверху
func (h *HistoryHandler) List(ctx context.Context, status string, limit int) error {
	runs, err := h.repo.ListRuns(ctx, status, limit, 0)
	if err != nil {
		return fmt.Errorf("чтение истории: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(h.out, ui.ColorGray+"История пуста"+ui.ColorReset)
		return nil
	}

	tw := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN ID\tСТАТУС\tБРАУЗЕР\tСЦЕНАРИЙ\tВРЕМЯ\tНАЧАТ")
	for _, run := range runs {
		icon, _, _ := ui.FormatStatus(run.Status)
		fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\t%dms\t%s\n",
			run.RunID, icon, run.Status, run.Browser,
			ui.Truncate(run.Feature+" / "+run.Scenario, 60),
			run.DurationMs, run.StartedAt.Format("2006-01-02 15:04:05"))
	}
	return tw.Flush()
}

// Show выводит прогон со всеми шагами
func (h *HistoryHandler) Show(ctx context.Context, runID string) error {
	run, err := h.repo.GetRun(ctx, runID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fmt.Fprintln(h.out, ui.ColorRed+ui.IconCross+" Прогон не найден"+ui.ColorReset)
		return err
	}
	if err != nil {
		return err
	}

	_, color, statusText := ui.FormatStatus(run.Status)
	fmt.Fprintf(h.out, "\n"+ui.ColorBold+"=== %s / %s ==="+ui.ColorReset+"\n", run.Feature, run.Scenario)
	fmt.Fprintf(h.out, ui.ColorCyan+ui.IconChart+" Статус:"+ui.ColorReset+" %s%s%s\n", color, statusText, ui.ColorReset)
	fmt.Fprintf(h.out, ui.ColorCyan+ui.IconGlobe+" Браузер:"+ui.ColorReset+" %s\n", run.Browser)
	fmt.Fprintf(h.out, ui.ColorCyan+ui.IconTime+" Начат:"+ui.ColorReset+" %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
	if run.Tags != "" {
		fmt.Fprintf(h.out, ui.ColorCyan+ui.IconDocument+" Теги:"+ui.ColorReset+" %s\n", run.Tags)
	}
	if run.Error != "" {
		fmt.Fprintf(h.out, ui.ColorRed+"%s: %s"+ui.ColorReset+"\n", run.FailKind, run.Error)
	}

	for _, st := range run.Steps {
		icon, color, _ := ui.FormatStatus(st.Status)
		fmt.Fprintf(h.out, "  %s%s%s [%d] %s %s %s(%dms)%s\n",
			color, icon, ui.ColorReset, st.StepNo, st.Keyword, st.Text, ui.ColorGray, st.DurationMs, ui.ColorReset)
		if st.Error != "" {
			fmt.Fprintf(h.out, "      "+ui.ColorRed+"%s"+ui.ColorReset+"\n", st.Error)
		}
	}
	return nil
}

// Flaky выводит сценарии, которые в последних window прогонах и падали, и проходили
func (h *HistoryHandler) Flaky(ctx context.Context, window int) error {
	flaky, err := h.repo.FlakyScenarios(ctx, window)
	if err != nil {
		return fmt.Errorf("поиск нестабильных сценариев: %w", err)
	}
	if len(flaky) == 0 {
		fmt.Fprintln(h.out, ui.ColorGreen+ui.IconCheckmark+" Нестабильных сценариев нет"+ui.ColorReset)
		return nil
	}

	fmt.Fprintf(h.out, ui.ColorYellow+ui.IconLoop+" Нестабильные сценарии (%d):"+ui.ColorReset+"\n", len(flaky))
	for _, f := range flaky {
		fmt.Fprintf(h.out, "  %s / %s: пройден %d, упал %d\n", f.Feature, f.Scenario, f.Passed, f.Failed)
	}
	return nil
}
