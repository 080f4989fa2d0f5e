package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/yukikurage/taskboard/internal/reconciler"
	"github.com/yukikurage/taskboard/internal/tui"
)

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui <boardId>",
		Short: "Open a board in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			boardID, err := parseID(args[0], "board")
			if err != nil {
				return err
			}

			client := opts.client()
			title := fmt.Sprintf("Board #%d", boardID)
			boards, _ := client.ListBoards(cmd.Context())
			for _, b := range boards {
				if b.ID == boardID {
					title = b.Name
				}
			}

			// Logging would draw over the board.
			opts.log.SetOutput(io.Discard)

			alerts := &tui.Alerts{}
			rec := reconciler.New(boardID, client, alerts, opts.log)
			return tui.Run(cmd.Context(), title, rec, alerts)
		},
	}
}
