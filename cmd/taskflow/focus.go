package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhle/taskflow/internal/logging"
	"github.com/nhle/taskflow/internal/model"
	"github.com/nhle/taskflow/internal/pomodoro"
)

func focusCmd(g *globalOptions) *cobra.Command {
	var work, brk, cycles int

	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Run the focus timer without the task list",
		Long: `Run pomodoro sessions in the terminal, printing the clock each second.
Stops after --cycles completed work sessions or on Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := g.configPath
			if path == "" {
				path = model.DefaultConfigPath()
			}
			cfg, err := model.LoadConfig(path)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("work") {
				work = cfg.Pomodoro.WorkMinutes
			}
			if !cmd.Flags().Changed("break") {
				brk = cfg.Pomodoro.BreakMinutes
			}

			logger, closer, err := logging.New(cfg.Log)
			if err != nil {
				return fmt.Errorf("setting up logging: %w", err)
			}
			defer closer.Close()

			timer := pomodoro.New(pomodoro.DefaultWorkMinutes, pomodoro.DefaultBreakMinutes)
			if err := timer.SetWorkDuration(work); err != nil {
				return err
			}
			if err := timer.SetBreakDuration(brk); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			logger.Info("focus started", "work", work, "break", brk, "cycles", cycles)
			err = runFocus(cmd.Context(), timer, pomodoro.NewTicker(time.Second), cycles, func(line string, notes []model.Notification) {
				fmt.Fprintf(out, "\r%s", line)
				for _, n := range notes {
					fmt.Fprintf(out, "\n%s\n", n.Message)
					logger.Info("pomodoro phase completed", "message", n.Message)
				}
			})
			fmt.Fprintln(out)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().IntVarP(&work, "work", "w", pomodoro.DefaultWorkMinutes, "Work session length in minutes (1-60)")
	cmd.Flags().IntVarP(&brk, "break", "b", pomodoro.DefaultBreakMinutes, "Break length in minutes (1-30)")
	cmd.Flags().IntVarP(&cycles, "cycles", "n", 1, "Stop after this many completed work sessions (0 runs until interrupted)")

	return cmd
}

// runFocus drives timer from ticker until cycles work sessions complete or
// ctx ends. show receives the rendered status line after every tick.
func runFocus(ctx context.Context, timer *pomodoro.Timer, ticker *pomodoro.Ticker, cycles int, show func(string, []model.Notification)) error {
	timer.Start()
	return ticker.Run(ctx, func(pomodoro.Tick) bool {
		notes := timer.Tick()
		s := timer.State()
		show(fmt.Sprintf("%-5s %s  cycles %d", s.Mode, timer.Clock(), s.CompletedCycles), notes)

		if cycles > 0 && s.CompletedCycles >= cycles {
			return false
		}
		if !timer.Running() {
			// Phases stop the timer when they complete; keep going.
			timer.Start()
		}
		return true
	})
}
