// Package cli implements the evq command line.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tessro/evq/internal/config"
	"github.com/tessro/evq/internal/logging"
	"github.com/tessro/evq/internal/paths"
	"github.com/tessro/evq/internal/render"
)

// Global flag values.
var (
	evqDir   string
	logLevel string
	verbose  bool
	noColor  bool
	width    int
)

var (
	// globalConfig is loaded before every command. Nil means defaults.
	globalConfig *config.GlobalConfig
	logCleanup   func()
)

var rootCmd = &cobra.Command{
	Use:   "evq",
	Short: "Ordered event handler queue",
	Long:  "evq replays dispatch scenarios against an ordered, deduplicating event handler queue and prints what ran.",
	// Errors are printed by cobra; usage only for flag/arg mistakes.
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Set EVQ_DIR so all path helpers use the override.
		if evqDir != "" {
			if err := os.Setenv(paths.EnvEvqDir, evqDir); err != nil {
				return err
			}
		}

		cfg, err := config.LoadGlobalConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		globalConfig = cfg

		level := cfg.GetLogLevel()
		if logLevel != "" {
			if err := config.ValidateLogLevel(logLevel); err != nil {
				return err
			}
			level = logLevel
		}

		var extra io.Writer
		if verbose {
			extra = cmd.ErrOrStderr()
		}
		cleanup, err := logging.SetupMulti(cfg.GetLogFile(), extra, logging.ParseLevel(level))
		if err != nil {
			return fmt.Errorf("setup logging: %w", err)
		}
		logCleanup = cleanup
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&evqDir, "evq-dir", "", "base directory for evq data (overrides ~/.evq)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "also write logs to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable styled output")
	rootCmd.PersistentFlags().IntVar(&width, "width", 0, "wrap output at this many columns")
}

// Execute runs the root command.
func Execute() error {
	defer func() {
		if logCleanup != nil {
			logCleanup()
			logCleanup = nil
		}
	}()
	return rootCmd.Execute()
}

// newRenderer builds a renderer from the config and flags.
func newRenderer() (*render.Renderer, error) {
	w := globalConfig.GetWidth()
	if width != 0 {
		if err := config.ValidateWidth(width); err != nil {
			return nil, err
		}
		w = width
	}
	return render.New(globalConfig.ColorEnabled() && !noColor, w), nil
}
