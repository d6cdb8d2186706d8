package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"uiAutomation/internal/cli"
	"uiAutomation/internal/cli/commands"
	"uiAutomation/internal/cli/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		if !errors.Is(err, commands.ErrScenariosFailed) {
			fmt.Fprintln(os.Stderr, ui.ColorRed+ui.IconCross+" "+err.Error()+ui.ColorReset)
		}
		stop()
		os.Exit(1)
	}
}
