package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"promptctl/internal/engine"
	"promptctl/internal/server"
	"promptctl/internal/store"
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "127.0.0.1:7391", "address to bind (host:port)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		s, err := store.Open()
		if err != nil {
			return err
		}
		srv := &server.Server{Addr: addr, Store: s, Files: engine.OSFileAccess{}}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		if err := srv.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}
