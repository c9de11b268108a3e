package tables

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/inodb/geno-tables/internal/vcf"
)

// Config holds the knobs of one table-generation run.
type Config struct {
	Dataset   string // label stamped on every callset and sample row
	Prefix    string // output path prefix for the five artifacts
	ChunkSize int    // variants per flush; DefaultChunkSize when zero
	Consent   bool   // consent flag stamped on callset and sample rows
	Seed      int64  // seed for demographics and synthetic sampling
	Samples   int    // synthetic cohort size (synthetic runs only)
}

// Ingest runs the real-ingestion pipeline: one sequential pass over src,
// decoding observed genotypes into string-encoded rows and flushing them
// in chunks. The callsets and samples tables are written up front from the
// stream's fixed sample list.
func Ingest(src vcf.VariantSource, cfg Config, logger *zap.Logger) error {
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = DefaultChunkSize
	}

	names := src.SampleNames()
	if len(names) == 0 {
		return fmt.Errorf("input stream has no sample columns")
	}
	idx, err := NewSampleIndex(names)
	if err != nil {
		return fmt.Errorf("build sample index: %w", err)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if err := WriteCallsets(cfg.Prefix, idx, cfg.Dataset, cfg.Consent); err != nil {
		return fmt.Errorf("write callsets table: %w", err)
	}
	if err := WriteSamples(cfg.Prefix, idx, cfg.Dataset, cfg.Consent, rng); err != nil {
		return fmt.Errorf("write samples table: %w", err)
	}

	w, err := NewChunkedWriter(cfg.Prefix, GenotypeStrings, cfg.ChunkSize)
	if err != nil {
		return err
	}
	w.SetLogger(logger)

	dec := NewDecoder(idx, names)
	records, err := drive(src, dec.Decode, w)
	if err != nil {
		w.Abort()
		return err
	}

	if err := w.Close(); err != nil {
		return err
	}
	logger.Info("ingest complete",
		zap.Int64("records", records),
		zap.Int64("variants", w.Variants()))
	return nil
}

// Synthesize runs the synthetic pipeline: src is a sites-only stream
// carrying AF INFO values, and per-sample genotypes are drawn under
// Hardy-Weinberg equilibrium for a cohort of cfg.Samples synthetic
// samples. Genotypes are written code-encoded.
func Synthesize(src vcf.VariantSource, cfg Config, logger *zap.Logger) error {
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.Samples <= 0 {
		return fmt.Errorf("synthetic runs need a positive sample count, got %d", cfg.Samples)
	}

	idx, err := NewSampleIndex(SyntheticSampleNames(cfg.Dataset, cfg.Samples))
	if err != nil {
		return fmt.Errorf("build sample index: %w", err)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if err := WriteCallsets(cfg.Prefix, idx, cfg.Dataset, cfg.Consent); err != nil {
		return fmt.Errorf("write callsets table: %w", err)
	}
	if err := WriteSamples(cfg.Prefix, idx, cfg.Dataset, cfg.Consent, rng); err != nil {
		return fmt.Errorf("write samples table: %w", err)
	}

	w, err := NewChunkedWriter(cfg.Prefix, GenotypeCodes, cfg.ChunkSize)
	if err != nil {
		return err
	}
	w.SetLogger(logger)

	dec := NewSyntheticDecoder(NewSamplerFromRand(rng), cfg.Samples)
	start := time.Now()
	records, err := drive(src, dec.Decode, w)
	if err != nil {
		w.Abort()
		return err
	}

	if err := w.Close(); err != nil {
		return err
	}
	logger.Info("synthesis complete",
		zap.Int64("records", records),
		zap.Int64("variants", w.Variants()),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// drive is the shared pull-decode-buffer loop. decode returns nil for
// records that are skipped entirely.
func drive(src vcf.VariantSource, decode func(*vcf.Variant) (*Decoded, error), w *ChunkedWriter) (int64, error) {
	var records int64
	for {
		v, err := src.Next()
		if err != nil {
			return records, fmt.Errorf("read record: %w", err)
		}
		if v == nil {
			return records, nil
		}
		records++

		d, err := decode(v)
		if err != nil {
			return records, err
		}
		if d == nil {
			continue
		}

		if err := w.Add(d); err != nil {
			return records, err
		}
	}
}
