package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roomgen/internal/server"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		noCache  bool
		maxCells int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve dungeon generation over HTTP. Generated artifacts share the configured
cache; dungeons created with POST /v1/dungeons go to the configured store.`,
		Example: `  roomgen serve --addr :8080
  curl 'localhost:8080/v1/dungeons?seed=42&format=text'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config.Server
			if cmd.Flags().Changed("addr") || cfg.Addr == "" {
				cfg.Addr = addr
			}
			timeout, err := cfg.timeout()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			sp := newSpinnerWithContext(ctx, "Opening cache...")
			sp.Start()
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				sp.StopWithError("Cache unavailable")
				return err
			}
			defer runner.Close()

			sp.Update("Opening store...")
			st, err := c.newStore(ctx)
			if err != nil {
				sp.StopWithError("Store unavailable")
				return err
			}
			defer st.Close()
			sp.Stop()

			printSuccess("Serving on %s", StyleValue.Render("http://"+cfg.Addr))
			printDetail("cache: %s, store: %s", orDefault(c.config.Cache.Backend, backendFile), orDefault(c.config.Store.Backend, backendFile))
			if noCache {
				printWarning("Artifact cache disabled")
			}

			srv := server.New(runner, st, c.Logger, server.Config{Timeout: timeout, MaxCells: maxCells})
			if err := srv.ListenAndServe(ctx, cfg.Addr); err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			printInfo("Server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().IntVar(&maxCells, "max-cells", server.DefaultMaxCells, "largest map (height*width) a request may ask for")

	return cmd
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
