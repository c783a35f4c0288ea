package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roomgen/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached dungeons and artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cc, err := c.newCache(ctx, false)
			if err != nil {
				return err
			}
			defer cc.Close()

			if err := cc.Clear(ctx); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			backend := orDefault(c.config.Cache.Backend, backendFile)
			printSuccess("Cleared %s cache", backend)
			switch backend {
			case backendFile:
				if dir, err := c.cacheDir(); err == nil {
					printDetail("Directory: %s", dir)
				}
			case backendRedis:
				printDetail("Prefix: %s", orDefault(c.config.Cache.Redis.Prefix, cache.DefaultRedisPrefix))
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

// cacheDir is the configured file cache directory, or the XDG default.
func (c *CLI) cacheDir() (string, error) {
	if dir := c.config.Cache.Dir; dir != "" {
		return dir, nil
	}
	return cacheDir()
}
