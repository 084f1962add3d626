package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ingdiba-reader/ingdiba/internal/features"
	"github.com/ingdiba-reader/ingdiba/internal/importer"
	"github.com/ingdiba-reader/ingdiba/internal/model"
)

func newParseCommand(flags *globalFlags) *cobra.Command {
	var cards []string
	var format string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a statement and print its feature table as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := flags.load()
			if err != nil {
				return err
			}

			p := importer.DefaultRegistry().Get(format)
			if p == nil {
				return fmt.Errorf("unknown format %q", format)
			}

			txns, err := p.Read(args[0])
			if err != nil {
				return err
			}
			table := features.ExtractFeatures(txns, append(append([]string(nil), cfg.CreditCards...), cards...))
			log.Debug().Str("file", args[0]).Int("rows", table.Len()).Msg("statement parsed")

			return writeRecords(cmd.OutOrStdout(), table)
		},
	}

	cmd.Flags().StringSliceVar(&cards, "card", nil, "additional credit card number (repeatable)")
	cmd.Flags().StringVar(&format, "format", "ingdiba", "statement format")

	return cmd
}

// writeRecords prints one JSON object per row over the table's column union.
func writeRecords(w io.Writer, table *model.FeatureTable) error {
	records := make([]map[string]any, table.Len())
	for i := range records {
		records[i] = table.Record(i)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding feature table: %w", err)
	}
	return nil
}
