package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/taskflow/internal/app"
	"github.com/nhle/taskflow/internal/pomodoro"
)

func runTUI(ctx context.Context, g *globalOptions) error {
	e, err := openEnv(ctx, g)
	if err != nil {
		return err
	}
	defer e.Close()

	m := app.New(app.Options{
		Tasks:           e.tasks,
		Prefs:           e.prefs,
		Timer:           pomodoro.New(e.cfg.Pomodoro.WorkMinutes, e.cfg.Pomodoro.BreakMinutes),
		Ticker:          pomodoro.NewTicker(time.Second),
		Logger:          e.logger,
		Theme:           e.cfg.Display.Theme,
		DefaultCategory: e.cfg.Tasks.DefaultCategory,
	})

	e.logger.Info("starting tui")
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}
