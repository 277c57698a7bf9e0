package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scr/internal/config"
	"scr/internal/driver"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the on-disk token cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached token stream",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cache, err := openDiskCache(cfg.Cache)
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
}

// openDiskCache uses [cache].dir, or $XDG_CACHE_HOME/scr when it is empty.
func openDiskCache(cfg config.CacheConfig) (*driver.DiskCache, error) {
	if cfg.Dir != "" {
		return driver.OpenDiskCacheAt(cfg.Dir)
	}
	return driver.OpenDiskCache("scr")
}
