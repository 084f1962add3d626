package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ingdiba-reader/ingdiba/internal/buildinfo"
	"github.com/ingdiba-reader/ingdiba/internal/config"
	"github.com/ingdiba-reader/ingdiba/internal/logger"
)

// globalFlags are shared by all subcommands.
type globalFlags struct {
	configPath string
	logLevel   string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:     "ingdiba",
		Short:   "Read ING-DiBa statement exports and extract classifier features",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", config.FileName, "config file")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (overrides config)")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newParseCommand(&flags))
	rootCmd.AddCommand(newImportCommand(&flags))

	return rootCmd
}

// load reads the config file, falling back to defaults when it does not
// exist, and builds the logger.
func (f *globalFlags) load() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(f.configPath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = config.Default()
	} else if err != nil {
		return nil, zerolog.Logger{}, fmt.Errorf("loading %s: %w", f.configPath, err)
	}

	level := cfg.Log.Level
	if f.logLevel != "" {
		level = f.logLevel
	}
	return cfg, logger.New(level, cfg.Log.Console), nil
}
