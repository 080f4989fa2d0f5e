package cli

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yukikurage/taskboard/internal/database"
	"github.com/yukikurage/taskboard/internal/handlers"
)

func newDevServerCmd(opts *rootOptions) *cobra.Command {
	var (
		addr string
		seed bool
	)

	cmd := &cobra.Command{
		Use:   "devserver",
		Short: "Run the reference tracker API",
		Long: `devserver serves the tracker REST API under /api/v1 from a local database
(DB_DRIVER sqlite, mysql or postgres). Use it to develop against without a
real tracker.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = opts.cfg.DevServerAddr
			}
			gin.SetMode(opts.cfg.GinMode)

			if err := database.Connect(opts.cfg, opts.log); err != nil {
				return err
			}
			if err := database.Migrate(opts.log); err != nil {
				return err
			}
			if seed {
				if err := database.Seed(database.GetDB()); err != nil {
					return err
				}
				opts.log.Info("Seeded sample boards")
			}

			opts.log.WithField("addr", addr).Info("Tracker API starting")
			return listen(cmd.Context(), addr, handlers.NewRouter(database.GetDB(), opts.log), opts.log)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from DEVSERVER_ADDR)")
	cmd.Flags().BoolVar(&seed, "seed", false, "Fill an empty database with sample data")
	return cmd
}
