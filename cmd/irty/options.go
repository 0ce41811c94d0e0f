package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/th3flyboy/llvm-mirror/internal/driver"
	"github.com/th3flyboy/llvm-mirror/internal/trace"
)

// buildOptions assembles driver options from persistent flags and the
// optional irty.toml.
func buildOptions(cmd *cobra.Command) (*driver.Options, error) {
	cfg, haveCfg, err := loadToolConfig(".")
	if err != nil {
		return nil, err
	}

	levelValue, err := cmd.Root().PersistentFlags().GetString("trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	if levelValue == "off" && haveCfg && cfg.Config.Trace.Level != "" {
		levelValue = cfg.Config.Trace.Level
	}
	level, err := trace.ParseLevel(levelValue)
	if err != nil {
		return nil, err
	}
	tracer := trace.Nop
	if level > trace.LevelOff {
		tracer = trace.NewStreamTracer(os.Stderr, level)
	}

	noCache, err := cmd.Root().PersistentFlags().GetBool("no-cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	cacheEnabled := !noCache
	if haveCfg && cfg.Config.Cache.Enabled != nil && !*cfg.Config.Cache.Enabled {
		cacheEnabled = false
	}
	var cache *driver.DiskCache
	if cacheEnabled {
		if haveCfg && cfg.Config.Cache.Dir != "" {
			cache, err = driver.OpenDiskCacheAt(cfg.Config.Cache.Dir)
		} else {
			cache, err = driver.OpenDiskCache("irty")
		}
		if err != nil {
			// a broken cache dir degrades to uncached evaluation
			trace.Point(tracer, trace.ScopePhase, "cache", "disabled: "+err.Error())
			cache = nil
		}
	}

	return &driver.Options{Tracer: tracer, Cache: cache}, nil
}

// collectScripts expands file and directory arguments into a script list.
func collectScripts(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			found, err := driver.ListScripts(arg)
			if err != nil {
				return nil, err
			}
			paths = append(paths, found...)
			continue
		}
		paths = append(paths, arg)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no .ty scripts found")
	}
	return paths, nil
}
