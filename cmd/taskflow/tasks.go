package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/nhle/taskflow/internal/export"
	"github.com/nhle/taskflow/internal/model"
	"github.com/nhle/taskflow/internal/tasks"
)

func addCmd(g *globalOptions) *cobra.Command {
	var (
		priority string
		due      string
		category string
		attach   []string
	)

	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := model.ParsePriority(priority)
			if err != nil {
				return err
			}
			dueDate, err := tasks.ParseDue(due, time.Local)
			if err != nil {
				return err
			}
			attachments, err := tasks.AttachmentsFromPaths(attach)
			if err != nil {
				return err
			}

			e, err := openEnv(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer e.Close()

			t, notes, err := e.tasks.Add(cmd.Context(), tasks.Input{
				Text:        args[0],
				Priority:    p,
				DueDate:     dueDate,
				Category:    category,
				Attachments: attachments,
			})
			printNotes(cmd.ErrOrStderr(), notes)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&priority, "priority", "p", string(model.PriorityMedium), "Priority (high, medium, low)")
	cmd.Flags().StringVarP(&due, "due", "d", "", "Due date (YYYY-MM-DD or \"YYYY-MM-DD HH:MM\")")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (defaults to the configured category)")
	cmd.Flags().StringArrayVarP(&attach, "attach", "a", nil, "Attach a file (repeatable, at most 3)")

	return cmd
}

func listCmd(g *globalOptions) *cobra.Command {
	var filter, sortBy, search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := tasks.ParseFilter(filter)
			if err != nil {
				return err
			}
			s, err := tasks.ParseSort(sortBy)
			if err != nil {
				return err
			}

			e, err := openEnv(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer e.Close()

			view := e.tasks.View(tasks.Query{Filter: f, Sort: s, Search: search})
			if len(view) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTaskTable(view, e.tasks.Now()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", string(tasks.FilterAll), "Filter (all, active, completed, high, medium, low, overdue)")
	cmd.Flags().StringVarP(&sortBy, "sort", "s", string(tasks.SortDefault), "Sort (default, priority, dueDate, newest, oldest)")
	cmd.Flags().StringVarP(&search, "search", "q", "", "Case-insensitive text search")

	return cmd
}

// renderTaskTable lays out view with its position numbers, which are the
// indices accepted by move.
func renderTaskTable(view []model.Task, now time.Time) string {
	rows := make([][]string, 0, len(view))
	for i, t := range view {
		done := " "
		if t.Completed {
			done = "x"
		}
		due := tasks.FormatDue(t.DueDate)
		if t.IsOverdue(now) {
			due += " !"
		}
		rows = append(rows, []string{
			strconv.Itoa(i), done, string(t.Priority), t.Text, t.Category, due, t.ID,
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "✓", "PRIORITY", "TEXT", "CATEGORY", "DUE", "ID").
		Rows(rows...).
		String()
}

func doneCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "done [id]",
		Short: "Toggle a task's completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer e.Close()

			if _, ok := e.tasks.Get(args[0]); !ok {
				return fmt.Errorf("no task with id %s", args[0])
			}
			return e.tasks.Toggle(cmd.Context(), args[0])
		},
	}
}

func rmCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer e.Close()

			notes, err := e.tasks.Delete(cmd.Context(), args[0])
			printNotes(cmd.ErrOrStderr(), notes)
			if err != nil {
				return err
			}
			if len(notes) == 0 {
				return fmt.Errorf("no task with id %s", args[0])
			}
			return nil
		},
	}
}

func moveCmd(g *globalOptions) *cobra.Command {
	var filter, sortBy, search string

	cmd := &cobra.Command{
		Use:   "move [from] [to]",
		Short: "Move a task between positions of a list",
		Long: `Move the task at position FROM to position TO. Positions are the
numbers shown by list with the same --filter, --sort and --search flags.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("from must be a number: %w", err)
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("to must be a number: %w", err)
			}
			f, err := tasks.ParseFilter(filter)
			if err != nil {
				return err
			}
			s, err := tasks.ParseSort(sortBy)
			if err != nil {
				return err
			}

			e, err := openEnv(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer e.Close()

			return e.tasks.Reorder(cmd.Context(), tasks.Query{Filter: f, Sort: s, Search: search}, from, to)
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", string(tasks.FilterAll), "Filter the positions refer to")
	cmd.Flags().StringVarP(&sortBy, "sort", "s", string(tasks.SortDefault), "Sort the positions refer to")
	cmd.Flags().StringVarP(&search, "search", "q", "", "Search the positions refer to")

	return cmd
}

func statsCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer e.Close()

			s := e.tasks.Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total:     %d\n", s.Total)
			fmt.Fprintf(out, "Completed: %d (%d%%)\n", s.Completed, s.Percent())
			fmt.Fprintf(out, "Active:    %d\n", s.Active)
			fmt.Fprintf(out, "High:      %d\n", s.HighPriority)
			fmt.Fprintf(out, "Overdue:   %d\n", s.Overdue)
			return nil
		},
	}
}

func exportCmd(g *globalOptions) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all tasks as JSON or TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			e, err := openEnv(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer e.Close()

			doc := export.NewDocument(e.tasks.All(), e.tasks.Now())
			if err := writeExport(cmd.OutOrStdout(), out, f, doc); err != nil {
				return err
			}
			e.logger.Info("tasks exported", "format", f, "count", len(doc.Tasks), "out", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatJSON), "Output format (json, toml)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")

	return cmd
}

// writeExport encodes doc to path, or to stdout when path is empty or "-".
// A file that fails to close is reported as a failed export.
func writeExport(stdout io.Writer, path string, f export.Format, doc export.Document) (err error) {
	if path == "" || path == "-" {
		return export.Write(stdout, f, doc)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	return export.Write(file, f, doc)
}

func printNotes(w io.Writer, notes []model.Notification) {
	for _, n := range notes {
		fmt.Fprintf(w, "%s: %s\n", n.Severity, n.Message)
	}
}
