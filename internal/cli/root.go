package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yukikurage/taskboard/internal/apiclient"
	"github.com/yukikurage/taskboard/internal/config"
)

// rootOptions is shared by every subcommand
type rootOptions struct {
	apiURL  string
	verbose bool

	cfg *config.Config
	log *logrus.Logger
}

// NewRootCmd builds the taskboard command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{log: logrus.New()}

	rootCmd := &cobra.Command{
		Use:   "taskboard",
		Short: "Kanban boards for the tracker API",
		Long: `taskboard shows the tracker's boards as Backlog, In progress and Done columns.

Run "taskboard serve" for the web UI, "taskboard tui <board>" for the terminal
board, or use the list and edit commands directly.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&opts.apiURL, "api", "", "Tracker API base URL (default from API_BASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newDevServerCmd(opts))
	rootCmd.AddCommand(newBoardsCmd(opts))
	rootCmd.AddCommand(newBoardCmd(opts))
	rootCmd.AddCommand(newTasksCmd(opts))
	rootCmd.AddCommand(newTaskCmd(opts))
	rootCmd.AddCommand(newCreateCmd(opts))
	rootCmd.AddCommand(newUpdateCmd(opts))
	rootCmd.AddCommand(newMoveCmd(opts))
	rootCmd.AddCommand(newTUICmd(opts))

	return rootCmd
}

func (o *rootOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	o.cfg = cfg
	if o.apiURL == "" {
		o.apiURL = cfg.APIBaseURL
	}

	o.log.SetOutput(cmd.ErrOrStderr())
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	if o.verbose {
		level = logrus.DebugLevel
	}
	o.log.SetLevel(level)
	return nil
}

func (o *rootOptions) client() *apiclient.Client {
	return apiclient.New(o.apiURL,
		apiclient.WithTimeout(o.cfg.HTTPTimeout),
		apiclient.WithLogger(o.log),
	)
}

// Execute runs the root command until it finishes or the process is interrupted
func Execute(version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCmd()
	rootCmd.Version = version
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
