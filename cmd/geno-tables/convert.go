package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inodb/geno-tables/internal/export"
	"github.com/inodb/geno-tables/internal/tables"
	"github.com/inodb/geno-tables/internal/vcf"
)

var (
	convertChunk   int
	convertSeed    int64
	convertConsent bool
	convertCSV     string
	convertSQLite  string
	convertDuckDB  string
)

var convertCmd = &cobra.Command{
	Use:   "convert <input.vcf> <dataset> <output-prefix>",
	Short: "Convert a multi-sample VCF into genotype store tables",
	Long: `Convert a multi-sample VCF into the five genotype store tables.

Observed genotypes are written as phase-aware allele strings ("0/1",
"1|0"). A record with no informative call across all samples is skipped
entirely and consumes no variant id. Only the first alternate allele of a
multi-allelic record is retained.`,
	Example: `  geno-tables convert cohort.vcf.gz mystudy out/mystudy
  geno-tables convert cohort.vcf mystudy out/mystudy --chunk 1000 --sqlite mystudy.db
  cat cohort.vcf | geno-tables convert - mystudy out/mystudy`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser, err := vcf.NewParser(args[0])
		if err != nil {
			return err
		}
		defer parser.Close()

		logger := newLogger()
		defer logger.Sync()

		cfg := tables.Config{
			Dataset:   args[1],
			Prefix:    args[2],
			ChunkSize: convertChunk,
			Consent:   convertConsent,
			Seed:      convertSeed,
		}
		if err := tables.Ingest(parser, cfg, logger); err != nil {
			return fmt.Errorf("convert %s: %w", args[0], err)
		}

		return runExports(cmd.Context(), cfg.Prefix, convertSQLite, convertDuckDB, convertCSV)
	},
}

func init() {
	convertCmd.Flags().IntVar(&convertChunk, "chunk", tables.DefaultChunkSize,
		"Chunk size in variants per flush")
	convertCmd.Flags().Int64Var(&convertSeed, "seed", 0,
		"Random seed for sample demographics")
	convertCmd.Flags().BoolVar(&convertConsent, "consent", true,
		"Consent flag stamped on callset and sample rows")
	convertCmd.Flags().StringVar(&convertCSV, "csv", "",
		"Also export tables as gzipped CSV under this prefix")
	convertCmd.Flags().StringVar(&convertSQLite, "sqlite", "",
		"Also load tables into this SQLite database file")
	convertCmd.Flags().StringVar(&convertDuckDB, "duckdb", "",
		"Also load tables into this DuckDB database file")
}

// runExports runs the optional post-run export sinks.
func runExports(ctx context.Context, prefix, sqlitePath, duckdbPath, csvPrefix string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if sqlitePath != "" {
		if err := export.ToSQLite(ctx, prefix, sqlitePath); err != nil {
			return err
		}
	}
	if duckdbPath != "" {
		if err := export.ToDuckDB(ctx, prefix, duckdbPath); err != nil {
			return err
		}
	}
	if csvPrefix != "" {
		if err := export.ToCSV(ctx, prefix, csvPrefix); err != nil {
			return err
		}
	}
	return nil
}
