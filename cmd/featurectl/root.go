// Command featurectl is a debugging and demonstration CLI around the
// Selection & Expansion Engine: it loads a TOML/JSON configuration
// record, resolves a requested feature set, and prints the command
// line, environment, tool resolution, or artifact name the engine
// produces for it.
//
// Grounded on beads' cmd/bd cobra command tree conventions (a root
// command with persistent flags, one file per subcommand, RunE
// returning wrapped errors) — not on cmd/bd's own 190k lines of
// product code, which were not carried into this workspace; see
// DESIGN.md.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/forgebld/tcfeatures/internal/config"
	"github.com/forgebld/tcfeatures/internal/configrecord"
	"github.com/forgebld/tcfeatures/internal/engine"
	"github.com/forgebld/tcfeatures/internal/graph"
)

var (
	configDir     string
	configPath    string
	cacheCapacity int
	logLevel      string

	logger *slog.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "featurectl",
		Short:         "Inspect and exercise a toolchain feature configuration",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Ambient settings (featurectl.yaml / FEATURECTL_* env) fill
			// in anything the caller didn't pass explicitly on the flags.
			ambient := config.Load(configDir)
			if !cmd.Flags().Changed("config") && ambient.ConfigRecordPath != "" {
				configPath = ambient.ConfigRecordPath
			}
			if !cmd.Flags().Changed("cache-capacity") {
				cacheCapacity = ambient.CacheCapacity
			}
			if !cmd.Flags().Changed("log-level") {
				logLevel = ambient.LogLevel
			}

			logger = newLogger(logLevel)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory to search for a featurectl.yaml ambient settings file")
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML or JSON configuration record (required)")
	root.PersistentFlags().IntVar(&cacheCapacity, "cache-capacity", engine.DefaultCacheCapacity, "selection cache capacity")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	root.AddCommand(
		newBuildCmd(),
		newSelectCmd(),
		newCmdlineCmd(),
		newEnvCmd(),
		newToolCmd(),
		newArtifactCmd(),
		newGraphCmd(),
	)
	return root
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// loadEngine reads --config and constructs a Graph and Engine over it.
func loadEngine() (*graph.Graph, *engine.Engine, error) {
	if configPath == "" {
		return nil, nil, fmt.Errorf("--config is required")
	}
	rec, err := configrecord.LoadFile(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration record: %w", err)
	}
	g, err := graph.Build(*rec)
	if err != nil {
		logger.Warn("configuration record failed graph construction", "error", err)
		return nil, nil, err
	}
	e, err := engine.New(g, engine.Options{CacheCapacity: cacheCapacity})
	if err != nil {
		return nil, nil, fmt.Errorf("construct engine: %w", err)
	}
	return g, e, nil
}
