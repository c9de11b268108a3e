package tables

import (
	"strconv"
	"strings"

	"github.com/inodb/geno-tables/internal/vcf"
)

// Genotype class codes used by the compact encoding. The numbering leaves
// 2 for unknown calls so that present classes (het, hom-alt) are exactly
// the odd codes.
const (
	CodeHomRef  uint8 = 0
	CodeHet     uint8 = 1
	CodeUnknown uint8 = 2
	CodeHomAlt  uint8 = 3
)

// Present reports whether a raw genotype call is informative enough to
// materialize a row in the gts table: at least one called allele must be
// non-reference. Hom-ref calls and fully missing calls are not present;
// a half-missing call like "0/." carries no alternate allele and is not
// present either.
func Present(g vcf.Genotype) bool {
	for _, a := range g.Alleles {
		if a > 0 {
			return true
		}
	}
	return false
}

// CodePresent reports presence for a class code: het and hom-alt.
func CodePresent(code uint8) bool {
	return code == CodeHet || code == CodeHomAlt
}

// GenotypeString renders a raw call as its allele/phase string: allele
// indices joined by "/" for unphased calls and "|" for phased calls,
// missing alleles rendered as ".". This is the single place the phase
// symbol is chosen.
func GenotypeString(g vcf.Genotype) string {
	sep := "/"
	if g.Phased {
		sep = "|"
	}

	parts := make([]string, len(g.Alleles))
	for i, a := range g.Alleles {
		if a == vcf.MissingAllele {
			parts[i] = "."
		} else {
			parts[i] = strconv.Itoa(a)
		}
	}
	return strings.Join(parts, sep)
}

// CodeGenotypeString renders a class code as an unphased diploid allele
// string, for callers that need the string convention for synthetic calls.
func CodeGenotypeString(code uint8) string {
	switch code {
	case CodeHomRef:
		return "0/0"
	case CodeHet:
		return "0/1"
	case CodeHomAlt:
		return "1/1"
	default:
		return "./."
	}
}
