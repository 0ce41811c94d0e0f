package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/th3flyboy/llvm-mirror/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the irty report cache",
	Long:  "Remove all cached evaluation reports. The cache directory itself is kept.",
	Args:  cobra.NoArgs,
	RunE:  runCleanCache,
}

func runCleanCache(cmd *cobra.Command, _ []string) error {
	cfg, haveCfg, err := loadToolConfig(".")
	if err != nil {
		return err
	}
	var cache *driver.DiskCache
	if haveCfg && cfg.Config.Cache.Dir != "" {
		cache, err = driver.OpenDiskCacheAt(cfg.Config.Cache.Dir)
	} else {
		cache, err = driver.OpenDiskCache("irty")
	}
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to drop cache: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stdout, "cache cleared (%s)\n", cache.Dir())
	return nil
}
