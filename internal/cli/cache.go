package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/explaintext/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered-text cache",
		Long: `Manage cached renderings.

Formatted text and SVG trees are cached per explanation and options, in
the cache directory or, when cache.redis_url is set, in Redis.`,
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var fileOnly bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached renderings",
		Long: `Remove cached renderings from the cache directory and, when
cache.redis_url is configured, the keys under cache.prefix in Redis.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := clearFileCache()
			if err != nil {
				return err
			}
			if n == 0 {
				printInfo("Cache directory is empty")
			} else {
				printSuccess("Cleared %s from disk", plural(n, "file"))
			}

			if url := c.config.Cache.RedisURL; url != "" && !fileOnly {
				return c.clearRedisCache(cmd.Context(), url)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&fileOnly, "file-only", false, "leave Redis entries in place")

	return cmd
}

func clearFileCache() (int, error) {
	dir, err := cacheDir()
	if err != nil {
		return 0, fmt.Errorf("get cache dir: %w", err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return 0, nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return 0, err
	}
	return fc.Clear()
}

// clearRedisCache deletes the keys this configuration writes. An unreachable
// server is reported as a warning, as its entries expire on their own.
func (c *CLI) clearRedisCache(ctx context.Context, url string) error {
	rc, err := cache.NewRedisCache(ctx, url)
	if err != nil {
		printWarning("Redis unreachable, its entries expire with their TTL")
		printDetail("%s: %v", redactURL(url), err)
		return nil
	}
	defer rc.Close()

	total := 0
	for _, pattern := range cache.KeyPatterns(c.config.Cache.Prefix) {
		n, err := rc.Clear(ctx, pattern)
		total += n
		if err != nil {
			return fmt.Errorf("clear redis keys %q: %w", pattern, err)
		}
	}
	printSuccess("Cleared %s from Redis", plural(total, "key"))
	printDetail("%s", redactURL(url))
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
