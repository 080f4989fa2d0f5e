package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/yukikurage/taskboard/internal/board"
	"github.com/yukikurage/taskboard/internal/models"
	"github.com/yukikurage/taskboard/internal/tui"
)

func newTasksCmd(opts *rootOptions) *cobra.Command {
	var (
		status string
		filter board.Filter
	)

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List tasks across boards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter.Status = models.TaskStatus(status)
			if filter.Status != "" && !filter.Status.Valid() {
				return fmt.Errorf("invalid status %q (want Backlog, InProgress or Done)", status)
			}

			tasks, err := opts.client().ListTasks(cmd.Context())
			if err != nil {
				return err
			}
			tasks = filter.Apply(tasks)

			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(out, "No tasks found.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPRIORITY\tBOARD\tASSIGNEE")
			for _, t := range tasks {
				boardName := t.BoardName
				if boardName == "" {
					boardName = fmt.Sprintf("#%d", t.BoardID)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					t.ID, t.Title, tui.Label(t.Status), t.Priority, boardName, t.Assignee.FullName)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Only tasks with this status")
	cmd.Flags().Uint64Var(&filter.BoardID, "board", 0, "Only tasks on this board")
	cmd.Flags().Uint64Var(&filter.AssigneeID, "assignee", 0, "Only tasks assigned to this user")
	cmd.Flags().StringVar(&filter.Query, "q", "", "Search titles and assignee names")
	return cmd
}

func newTaskCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "task <id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "task")
			if err != nil {
				return err
			}

			task, err := opts.client().GetTask(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "#%d %s\n", task.ID, task.Title)
			fmt.Fprintf(out, "  Status:   %s\n", tui.Label(task.Status))
			fmt.Fprintf(out, "  Priority: %s\n", task.Priority)
			fmt.Fprintf(out, "  Board:    %s\n", task.BoardName)
			fmt.Fprintf(out, "  Assignee: %s <%s>\n", task.Assignee.FullName, task.Assignee.Email)
			if task.Description != "" {
				fmt.Fprintf(out, "\n%s\n", task.Description)
			}
			return nil
		},
	}
}
