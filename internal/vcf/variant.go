// Package vcf provides streaming VCF parsing for table generation.
package vcf

import (
	"strconv"
	"strings"
)

// Variant represents a single data line from a VCF file.
type Variant struct {
	Chrom     string            // Chromosome name (e.g., "12", "chr12")
	Pos       int64             // 1-based genomic position
	ID        string            // Variant identifier (e.g., rs ID)
	Ref       string            // Reference allele
	Alts      []string          // Alternate alleles in column order
	Qual      float64           // Quality score
	Filter    string            // Filter status (PASS or filter name)
	Info      map[string]string // INFO field key-value pairs; flags map to ""
	Genotypes []Genotype        // Per-sample calls, aligned with the header sample list
}

// GeneSymbol returns the geneSymbol INFO annotation, if present.
func (v *Variant) GeneSymbol() (string, bool) {
	s, ok := v.Info["geneSymbol"]
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// AlleleFrequency returns the AF INFO value, if present and parseable.
// For multi-valued AF entries only the first value is returned, matching
// the first-alternate-only convention used throughout table generation.
func (v *Variant) AlleleFrequency() (float64, bool) {
	s, ok := v.Info["AF"]
	if !ok || s == "" {
		return 0, false
	}
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = s[:i]
	}
	q, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return q, true
}

// IsSNV returns true if the variant's first alternate is a single nucleotide variant.
func (v *Variant) IsSNV() bool {
	return len(v.Alts) > 0 && len(v.Ref) == 1 && len(v.Alts[0]) == 1
}

// NormalizeChrom returns the chromosome name without "chr" prefix.
func (v *Variant) NormalizeChrom() string {
	if len(v.Chrom) > 3 && v.Chrom[:3] == "chr" {
		return v.Chrom[3:]
	}
	return v.Chrom
}
