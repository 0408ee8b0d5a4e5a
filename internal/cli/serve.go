package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilecard/internal/server"
)

const shutdownTimeout = 5 * time.Second

// serveCommand creates the HTTP API command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve presets and scripted cards over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			return c.runServer(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8080\")")

	return cmd
}

// runServer serves until ctx is canceled, then drains in-flight requests.
func (c *CLI) runServer(ctx context.Context, addr string) error {
	catalog, closeCache, err := c.newCatalog(ctx)
	if err != nil {
		return err
	}
	defer closeCache()

	srv := &http.Server{
		Addr: addr,
		Handler: server.New(catalog,
			server.WithLogger(c.Logger),
			server.WithPlaceholder(c.Config.Placeholder),
			server.WithRequestTimeout(c.Config.Provider.Timeout+5*time.Second),
		),
		ReadHeaderTimeout: 5 * time.Second,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		shutdownErr <- srv.Shutdown(sctx)
	}()

	printInfo("Listening on %s", addr)
	printKeyValue("Cache", c.Config.Cache.Backend)
	printKeyValue("Provider", c.Config.Provider.BaseURL)

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve %s: %w", addr, err)
	}
	if err := <-shutdownErr; err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	printSuccess("Server stopped")
	return nil
}
