package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"go.uber.org/zap"

	"uiAutomation/internal/cli/commands"
	"uiAutomation/internal/cli/ui"
)

// Shell - интерактивный режим поверх тех же обработчиков, что и команды.
type Shell struct {
	app *App
	rl  *readline.Instance
	in  *bufio.Reader
}

func NewShell(app *App) *Shell {
	s := &Shell{app: app}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     ".uiautomation-history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		app.log.Warn("Не удалось инициализировать readline, будет использован fallback режим", zap.Error(err))
		s.in = bufio.NewReader(os.Stdin)
	} else {
		s.rl = rl
	}
	return s
}

func (s *Shell) readLine() (string, error) {
	if s.rl != nil {
		return s.rl.Readline()
	}
	fmt.Print(ui.ColorCyan + "> " + ui.ColorReset)
	line, err := s.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (s *Shell) Run(ctx context.Context) {
	ui.PrintWelcome(Version)
	if s.rl != nil {
		defer s.rl.Close()
	}

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\n" + ui.ColorCyan + ui.IconWave + " Получен сигнал завершения..." + ui.ColorReset)
			return
		default:
		}

		line, err := s.readLine()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return
			}
			continue
		} else if errors.Is(err, io.EOF) {
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !s.handle(ctx, line) {
			fmt.Println(ui.ColorCyan + ui.IconWave + " До свидания!" + ui.ColorReset)
			return
		}
	}
}

// handle выполняет одну команду; false означает выход.
func (s *Shell) handle(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]

	var err error
	switch name {
	case "exit", "quit":
		return false

	case "clear":
		ui.ClearScreen()

	case "run":
		opts := commands.OptionsFromConfig(s.app.cfg)
		if len(args) > 0 {
			opts.Tags = args
		}
		h := commands.NewRunHandler(s.app.cfg, s.app.log.Logger, s.app.reg, s.app.launch, s.app.recorder(), s.app.out)
		_, err = h.Run(ctx, opts)

	case "history":
		var h *commands.HistoryHandler
		if h, err = s.app.history(); err == nil {
			status := ""
			if len(args) > 0 {
				status = args[0]
			}
			err = h.List(ctx, status, 20)
		}

	case "show":
		if len(args) != 1 {
			err = errors.New("использование: show <run-id>")
			break
		}
		var h *commands.HistoryHandler
		if h, err = s.app.history(); err == nil {
			err = h.Show(ctx, args[0])
		}

	case "flaky":
		var h *commands.HistoryHandler
		if h, err = s.app.history(); err == nil {
			err = h.Flaky(ctx, 100)
		}

	case "steps":
		commands.PrintSteps(s.app.out, s.app.reg)

	default:
		ui.PrintHelp()
	}

	if err != nil {
		fmt.Println(ui.ColorRed + ui.IconCross + " " + err.Error() + ui.ColorReset)
	}
	return true
}
