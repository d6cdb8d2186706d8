package commands

import (
	"fmt"
	"io"

	"uiAutomation/internal/cli/ui"
	"uiAutomation/internal/runner"
)

// PrintSteps выводит все зарегистрированные шаги с числом аргументов
func PrintSteps(out io.Writer, reg *runner.Registry) {
	steps := reg.Steps()
	fmt.Fprintf(out, ui.ColorYellow+ui.IconList+" Шаги (%d):"+ui.ColorReset+"\n", len(steps))
	for _, text := range steps {
		def, _ := reg.Lookup(text)
		if def.Args == 0 {
			fmt.Fprintf(out, "  %s\n", text)
			continue
		}
		fmt.Fprintf(out, "  %s %s(args: %d)%s\n", text, ui.ColorGray, def.Args, ui.ColorReset)
	}
}
