package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/yukikurage/taskboard/internal/board"
	"github.com/yukikurage/taskboard/internal/tui"
)

func newBoardsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "boards",
		Short: "List boards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			boards, err := opts.client().ListBoards(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(boards) == 0 {
				fmt.Fprintln(out, "No boards found.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTASKS\tDESCRIPTION")
			for _, b := range boards {
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", b.ID, b.Name, b.TaskCount, b.Description)
			}
			return w.Flush()
		},
	}
}

func newBoardCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "board <id>",
		Short: "Show a board's columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			boardID, err := parseID(args[0], "board")
			if err != nil {
				return err
			}

			tasks, err := opts.client().ListBoardTasks(cmd.Context(), boardID)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), tui.RenderColumns(board.Project(tasks)))
			return nil
		},
	}
}

func parseID(arg, what string) (uint64, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, arg)
	}
	return id, nil
}
