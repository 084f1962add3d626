package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ingdiba-reader/ingdiba/internal/config"
	"github.com/ingdiba-reader/ingdiba/internal/features"
	"github.com/ingdiba-reader/ingdiba/internal/importer"
	"github.com/ingdiba-reader/ingdiba/internal/logger"
	"github.com/ingdiba-reader/ingdiba/internal/store"
)

type importOptions struct {
	format string
	dryRun bool
	keep   bool
}

func newImportCommand(flags *globalFlags) *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import all statements waiting in the import directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := flags.load()
			if err != nil {
				return err
			}
			ctx := logger.WithContext(cmd.Context(), log)
			return runImport(ctx, cmd.OutOrStdout(), cfg, opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "ingdiba", "statement format")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "parse without writing to the database or moving files")
	cmd.Flags().BoolVar(&opts.keep, "keep", false, "leave imported files in place")

	return cmd
}

// fileResult summarizes one imported statement.
type fileResult struct {
	rows       int
	inserted   int
	duplicates int
}

func runImport(ctx context.Context, out io.Writer, cfg *config.Config, opts importOptions) error {
	log := logger.FromContext(ctx)

	p := importer.DefaultRegistry().Get(opts.format)
	if p == nil {
		return fmt.Errorf("unknown format %q", opts.format)
	}

	files, err := importer.Scan(cfg.ImportDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintf(out, "No statements in %s\n", cfg.ImportDir)
		return nil
	}

	var db *store.Store
	if !opts.dryRun {
		db, err = store.Open(cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()
	}

	var failed int
	for _, f := range files {
		flog := log.With().Str("file", f.Name).Logger()

		res, err := importFile(ctx, p, db, f.Path, cfg.CreditCards)
		if err != nil {
			failed++
			logImportError(flog, err)
			failure(out, "%s: %v", f.Name, err)
			continue
		}
		flog.Info().
			Int("rows", res.rows).
			Int("inserted", res.inserted).
			Int("duplicates", res.duplicates).
			Msg("statement imported")

		if opts.dryRun {
			success(out, "%s: %d rows (dry run)", f.Name, res.rows)
			continue
		}
		if res.duplicates > 0 {
			warning(out, "%s: %d new, %d already imported", f.Name, res.inserted, res.duplicates)
		} else {
			success(out, "%s: %d new", f.Name, res.inserted)
		}

		if opts.keep {
			continue
		}
		if err := importer.MarkProcessed(cfg.ImportDir, f.Name); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d statements failed", failed, len(files))
	}
	return nil
}

func importFile(ctx context.Context, p importer.Parser, db *store.Store, path string, cards []string) (fileResult, error) {
	txns, err := p.Read(path)
	if err != nil {
		return fileResult{}, err
	}
	table := features.ExtractFeatures(txns, cards)
	res := fileResult{rows: table.Len()}
	if db == nil {
		return res, nil
	}

	saved, err := db.Save(ctx, table)
	if err != nil {
		return fileResult{}, fmt.Errorf("saving %s: %w", path, err)
	}
	res.inserted = saved.Inserted
	res.duplicates = saved.Duplicates
	return res, nil
}

func logImportError(log zerolog.Logger, err error) {
	var fe *importer.FormatError
	var se *importer.SchemaError
	switch {
	case errors.As(err, &fe):
		log.Error().Err(err).Int("probed_lines", fe.Lines).Msg("not an ING-DiBa statement")
	case errors.As(err, &se):
		log.Error().Err(err).Str("column", se.Column).Msg("statement incomplete")
	default:
		log.Error().Err(err).Msg("import failed")
	}
}
