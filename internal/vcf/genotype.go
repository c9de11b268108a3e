package vcf

import "strings"

// MissingAllele marks an uncalled allele index within a genotype (the "."
// in "./." or "0/.").
const MissingAllele = -1

// Genotype is one sample's call at one position: the raw allele indices
// from the GT field plus whether the call was phased.
type Genotype struct {
	Alleles []int
	Phased  bool
}

// Missing reports whether the call carries no called allele at all.
func (g Genotype) Missing() bool {
	for _, a := range g.Alleles {
		if a != MissingAllele {
			return false
		}
	}
	return true
}

// parseGenotype parses a GT subfield such as "0/1", "1|0", "1" or "./.".
// Allele indices that cannot be parsed are treated as missing.
func parseGenotype(s string) Genotype {
	g := Genotype{Phased: strings.ContainsRune(s, '|')}

	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == '/' || s[i] == '|' {
			g.Alleles = append(g.Alleles, parseAllele(s[start:i]))
			start = i + 1
		}
	}
	return g
}

func parseAllele(s string) int {
	if s == "" || s == "." {
		return MissingAllele
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return MissingAllele
		}
		n = n*10 + int(s[i]-'0')
	}
	return n
}
