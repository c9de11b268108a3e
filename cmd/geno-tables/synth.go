package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/inodb/geno-tables/internal/tables"
	"github.com/inodb/geno-tables/internal/vcf"
)

var (
	synthChunk   int
	synthSeed    int64
	synthConsent bool
)

var synthCmd = &cobra.Command{
	Use:   "synth <sites.vcf> <dataset> <output-prefix> <nsamples>",
	Short: "Generate synthetic genotype store tables from allele frequencies",
	Long: `Generate synthetic tables from a sites-only VCF carrying AF INFO values.

For each record with an allele frequency q, per-sample genotype classes are
drawn under Hardy-Weinberg equilibrium ({p², 2pq, q²} for hom-ref, het and
hom-alt, p = 1-q) for a cohort of nsamples synthetic samples named
<dataset>_00000 onward. Genotypes are stored as compact uint8 class codes.
Records without AF, and records whose draw yields no present call, are
skipped. A fixed --seed reproduces a run exactly.`,
	Example: `  geno-tables synth gnomad.exomes.sites.vcf.gz synthstudy out/synth 1000
  geno-tables synth sites.vcf synthstudy out/synth 100 --seed 42 --chunk 200`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		nsamples, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("invalid sample count %q: %w", args[3], err)
		}

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
			ChunkSize: synthChunk,
			Consent:   synthConsent,
			Seed:      synthSeed,
			Samples:   nsamples,
		}
		if err := tables.Synthesize(parser, cfg, logger); err != nil {
			return fmt.Errorf("synthesize from %s: %w", args[0], err)
		}
		return nil
	},
}

func init() {
	synthCmd.Flags().IntVar(&synthChunk, "chunk", tables.DefaultChunkSize,
		"Chunk size in variants per flush")
	synthCmd.Flags().Int64Var(&synthSeed, "seed", 0,
		"Random seed for genotype sampling and demographics")
	synthCmd.Flags().BoolVar(&synthConsent, "consent", true,
		"Consent flag stamped on callset and sample rows")
}
