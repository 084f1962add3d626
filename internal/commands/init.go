package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ingdiba-reader/ingdiba/internal/config"
)

func newInitCommand() *cobra.Command {
	var cards []string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a statement import directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(absDir, cards); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized ingdiba project at %s\n", absDir)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&cards, "card", nil, "credit card number as printed in descriptions (repeatable)")

	return cmd
}

func runInit(dir string, cards []string) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	}

	cfg := config.Default()
	cfg.CreditCards = cards

	// Create directory structure.
	for _, d := range []string{cfg.ImportDir, filepath.Join(cfg.ImportDir, "processed")} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Keep the import dir in version control.
	if err := os.WriteFile(filepath.Join(dir, cfg.ImportDir, ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}
	return nil
}
