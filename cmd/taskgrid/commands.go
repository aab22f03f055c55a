package main

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"taskgrid/internal/app"
	"taskgrid/internal/task"
	"taskgrid/internal/ui"
)

func newListCmd(o *options) *cobra.Command {
	var (
		filter app.Filter
		status string
		order  string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks with their index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if status != "" {
				st, ok := task.ParseStatus(status)
				if !ok {
					return fmt.Errorf("unknown status %q", status)
				}
				filter.Status = &st
			}
			ord, err := app.ParseOrder(order)
			if err != nil {
				return err
			}
			s, err := o.headless()
			if err != nil {
				return err
			}
			defer s.Close()

			entries := s.Store.Entries()
			rows := app.SortByDeadline(filter.Apply(entries), ord)
			writeTable(cmd.OutOrStdout(), s.Store, rows, task.SystemClock.Now())
			return nil
		},
	}
	cmd.Flags().StringVar(&filter.Tag, "tag", "", "only tasks carrying this exact tag")
	cmd.Flags().StringVar(&status, "status", "", "only Active or Done tasks")
	cmd.Flags().StringVar(&filter.Keyword, "search", "", "case-sensitive substring of title or description")
	cmd.Flags().StringVar(&order, "sort", "", "order by deadline: asc or desc")
	return cmd
}

func writeTable(w io.Writer, s *task.Store, rows []task.Entry, now time.Time) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "no tasks")
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "TITLE", "DEADLINE", "PRIORITY", "STATUS", "TAGS", "DUE")
	for _, e := range rows {
		t.Row(
			strconv.Itoa(s.IndexOf(e.ID)),
			e.Task.Title,
			e.Task.Deadline,
			e.Task.Priority.String(),
			e.Task.Status.String(),
			app.JoinTags(e.Task.Tags),
			task.Classify(e.Task.Deadline, now).String(),
		)
	}
	fmt.Fprintln(w, t.Render())
}

type taskFlags struct {
	title, desc, priority, status, deadline, tags string
}

func (f *taskFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "task title")
	cmd.Flags().StringVar(&f.desc, "desc", "", "task description")
	cmd.Flags().StringVar(&f.priority, "priority", task.Medium.String(), "Low, Medium or High")
	cmd.Flags().StringVar(&f.status, "status", task.Active.String(), "Active or Done")
	cmd.Flags().StringVar(&f.deadline, "deadline", "", "deadline as YYYY-MM-DD HH:MM")
	cmd.Flags().StringVar(&f.tags, "tags", "", "comma-separated tags")
}

func newAddCmd(o *options) *cobra.Command {
	var f taskFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.headless()
			if err != nil {
				return err
			}
			defer s.Close()

			t, warnings := app.ParseTaskFields(f.title, f.desc, f.priority, f.status, f.deadline, f.tags)
			warn(cmd, warnings)
			if _, err := s.Add(t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added #%d %s\n", s.Store.Len()-1, t.Title)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newEditCmd(o *options) *cobra.Command {
	var f taskFlags
	cmd := &cobra.Command{
		Use:   "edit INDEX",
		Short: "Replace fields of the task at INDEX; unset flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("index: %w", err)
			}
			s, err := o.headless()
			if err != nil {
				return err
			}
			defer s.Close()

			cur, ok := s.Store.Get(i)
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "no task at index %d\n", i)
				return nil
			}
			changed := cmd.Flags().Changed
			pick := func(flag, value, current string) string {
				if changed(flag) {
					return value
				}
				return current
			}
			t, warnings := app.ParseTaskFields(
				pick("title", f.title, cur.Title),
				pick("desc", f.desc, cur.Description),
				pick("priority", f.priority, cur.Priority.String()),
				pick("status", f.status, cur.Status.String()),
				pick("deadline", f.deadline, cur.Deadline),
				pick("tags", f.tags, app.JoinTags(cur.Tags)),
			)
			warn(cmd, warnings)
			if _, err := s.Edit(i, t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "edited #%d %s\n", i, t.Title)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newDeleteCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete INDEX",
		Short: "Delete the task at INDEX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("index: %w", err)
			}
			s, err := o.headless()
			if err != nil {
				return err
			}
			defer s.Close()

			changed, err := s.Delete(i)
			if err != nil {
				return err
			}
			if !changed {
				fmt.Fprintf(cmd.OutOrStdout(), "no task at index %d\n", i)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted #%d\n", i)
			return nil
		},
	}
}

func newStatsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count tasks per priority and per deadline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.headless()
			if err != nil {
				return err
			}
			defer s.Close()

			w := cmd.OutOrStdout()
			stats := s.Store.PriorityStats()
			fmt.Fprintln(w, "Priority:")
			for _, p := range []task.Priority{task.High, task.Medium, task.Low} {
				fmt.Fprintf(w, "  %-8s %d\n", p, stats[p])
			}

			deadlines := s.Store.DeadlineCalendar()
			keys := make([]string, 0, len(deadlines))
			for k := range deadlines {
				keys = append(keys, k)
			}
			slices.Sort(keys)
			fmt.Fprintln(w, "Deadlines:")
			for _, k := range keys {
				label := k
				if label == "" {
					label = "(none)"
				}
				fmt.Fprintf(w, "  %-16s %d\n", label, deadlines[k])
			}
			return nil
		},
	}
}

func newCalendarCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "calendar [YYYY-MM]",
		Short: "Print a month grid of tasks by deadline",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.headless()
			if err != nil {
				return err
			}
			defer s.Close()

			cal := s.Store.Calendar()
			months := cal.Months()
			var ym task.YearMonth
			switch {
			case len(args) == 1:
				d, err := time.Parse("2006-01", args[0])
				if err != nil {
					return fmt.Errorf("month must be YYYY-MM: %w", err)
				}
				ym = task.YearMonth{Year: d.Year(), Month: d.Month()}
			case len(months) > 0:
				ym = months[0]
			default:
				fmt.Fprintln(cmd.OutOrStdout(), "no tasks with a valid deadline")
				return nil
			}

			w := cmd.OutOrStdout()
			fmt.Fprint(w, ui.RenderGrid(cal.Grid(ym.Year, ym.Month)))
			if len(months) > 0 {
				names := make([]string, len(months))
				for i, m := range months {
					names[i] = fmt.Sprintf("%d-%02d", m.Year, int(m.Month))
				}
				fmt.Fprintf(w, "months with tasks: %s\n", strings.Join(names, " "))
			}
			return nil
		},
	}
}

func warn(cmd *cobra.Command, warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}
}
