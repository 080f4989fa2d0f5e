package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yukikurage/taskboard/internal/cache"
	"github.com/yukikurage/taskboard/internal/web"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board web UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = opts.cfg.ListenAddr
			}
			gin.SetMode(opts.cfg.GinMode)

			store, err := web.NewSessionStore(opts.cfg)
			if err != nil {
				return err
			}

			var rdb *redis.Client
			if redisAddr := opts.cfg.RedisAddr(); redisAddr != "" {
				rdb = redis.NewClient(&redis.Options{Addr: redisAddr})
				defer rdb.Close()
			}

			api := opts.client()
			srv := web.New(web.Options{
				API:    api,
				Boards: cache.NewBoards(api, rdb, opts.cfg.BoardCacheTTL, opts.log),
				Store:  store,
				Log:    opts.log,
			})

			opts.log.WithFields(logrus.Fields{
				"addr": addr,
				"api":  api.BaseURL(),
			}).Info("Board UI starting")
			return listen(cmd.Context(), addr, srv.Router(), opts.log)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from LISTEN_ADDR)")
	return cmd
}

// listen serves handler until ctx is cancelled, then shuts down gracefully
func listen(ctx context.Context, addr string, handler http.Handler, log logrus.FieldLogger) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
