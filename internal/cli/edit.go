package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yukikurage/taskboard/internal/form"
	"github.com/yukikurage/taskboard/internal/models"
	"github.com/yukikurage/taskboard/internal/reconciler"
)

// taskFlags are the editable fields shared by create and update
type taskFlags struct {
	title       string
	description string
	board       uint64
	assignee    uint64
	priority    string
	status      string
}

func (f *taskFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Task title")
	cmd.Flags().StringVar(&f.description, "description", "", "Task description")
	cmd.Flags().Uint64Var(&f.board, "board", 0, "Board id")
	cmd.Flags().Uint64Var(&f.assignee, "assignee", 0, "Assignee user id")
	cmd.Flags().StringVar(&f.priority, "priority", "", "Low, Medium or High")
	cmd.Flags().StringVar(&f.status, "status", "", "Backlog, InProgress or Done")
}

// apply copies the flags the user actually set onto values
func (f *taskFlags) apply(cmd *cobra.Command, values form.Values) form.Values {
	changed := cmd.Flags().Changed
	if changed("title") {
		values.Title = f.title
	}
	if changed("description") {
		values.Description = f.description
	}
	if changed("board") {
		values.BoardID = f.board
	}
	if changed("assignee") {
		values.AssigneeID = f.assignee
	}
	if changed("priority") {
		values.Priority = models.TaskPriority(f.priority)
	}
	if changed("status") {
		values.Status = models.TaskStatus(f.status)
	}
	return values
}

func newCreateCmd(opts *rootOptions) *cobra.Command {
	var flags taskFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl := form.NewController(opts.client(), nil)
			if err := ctl.OpenCreate(flags.board); err != nil {
				return err
			}
			if err := ctl.Update(flags.apply(cmd, ctl.Snapshot().Values)); err != nil {
				return err
			}

			id, err := ctl.Submit(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task #%d\n", id)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newUpdateCmd(opts *rootOptions) *cobra.Command {
	var flags taskFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a task. Only the flags given are changed; the board is kept.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "task")
			if err != nil {
				return err
			}

			client := opts.client()
			details, err := client.GetTask(cmd.Context(), id)
			if err != nil {
				return err
			}

			ctl := form.NewController(client, nil)
			if err := ctl.OpenEdit(details.AsTask(), false); err != nil {
				return err
			}
			if err := ctl.Update(flags.apply(cmd, ctl.Snapshot().Values)); err != nil {
				return err
			}

			if _, err := ctl.Submit(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated task #%d\n", id)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newMoveCmd(opts *rootOptions) *cobra.Command {
	var index int

	cmd := &cobra.Command{
		Use:   "move <taskId> <status>",
		Short: "Move a task to another column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "task")
			if err != nil {
				return err
			}
			status := models.TaskStatus(args[1])
			if !status.Valid() {
				return fmt.Errorf("invalid status %q (want Backlog, InProgress or Done)", args[1])
			}

			ctx := cmd.Context()
			client := opts.client()
			details, err := client.GetTask(ctx, id)
			if err != nil {
				return err
			}
			if details.BoardID == 0 {
				return fmt.Errorf("task #%d has no board", id)
			}

			notify := reconciler.NotifierFunc(func(message string) {
				fmt.Fprintln(cmd.ErrOrStderr(), message)
			})
			rec := reconciler.New(details.BoardID, client, notify, opts.log)
			if err := rec.Load(ctx); err != nil {
				return err
			}

			from, fromIndex, ok := rec.Columns().Index(id)
			if !ok {
				return fmt.Errorf("task #%d is not on board #%d", id, details.BoardID)
			}

			outcome, err := rec.Move(ctx, reconciler.Move{
				TaskID: id,
				From:   reconciler.Position{Status: from, Index: fromIndex},
				To:     reconciler.Position{Status: status, Index: index},
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task #%d: %s\n", id, outcome)
			return nil
		},
	}

	cmd.Flags().IntVar(&index, "index", 0, "Position within the target column")
	return cmd
}
