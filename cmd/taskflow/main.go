// Command taskflow is a terminal task manager with a built-in focus timer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:           "taskflow",
		Short:         "taskflow - tasks and pomodoro focus in the terminal",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), g)
		},
	}
	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "config file (default ~/.config/taskflow/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&g.dbPath, "db", "", "database path (overrides config)")

	rootCmd.AddCommand(tuiCmd(g))
	rootCmd.AddCommand(addCmd(g))
	rootCmd.AddCommand(listCmd(g))
	rootCmd.AddCommand(doneCmd(g))
	rootCmd.AddCommand(rmCmd(g))
	rootCmd.AddCommand(moveCmd(g))
	rootCmd.AddCommand(statsCmd(g))
	rootCmd.AddCommand(exportCmd(g))
	rootCmd.AddCommand(focusCmd(g))

	return rootCmd
}

func tuiCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive task manager",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), g)
		},
	}
}
