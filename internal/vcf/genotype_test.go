package vcf

import "testing"

func TestParseGenotype(t *testing.T) {
	tests := []struct {
		name    string
		gt      string
		alleles []int
		phased  bool
	}{
		{"hom ref", "0/0", []int{0, 0}, false},
		{"het", "0/1", []int{0, 1}, false},
		{"hom alt", "1/1", []int{1, 1}, false},
		{"phased", "1|0", []int{1, 0}, true},
		{"fully missing", "./.", []int{MissingAllele, MissingAllele}, false},
		{"half missing", "0/.", []int{0, MissingAllele}, false},
		{"haploid", "1", []int{1}, false},
		{"second alt", "1/2", []int{1, 2}, false},
		{"bare dot", ".", []int{MissingAllele}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := parseGenotype(tt.gt)
			if g.Phased != tt.phased {
				t.Errorf("Phased: got %v, want %v", g.Phased, tt.phased)
			}
			if len(g.Alleles) != len(tt.alleles) {
				t.Fatalf("Alleles: got %v, want %v", g.Alleles, tt.alleles)
			}
			for i := range tt.alleles {
				if g.Alleles[i] != tt.alleles[i] {
					t.Errorf("Allele %d: got %d, want %d", i, g.Alleles[i], tt.alleles[i])
				}
			}
		})
	}
}

func TestGenotypeMissing(t *testing.T) {
	if !(Genotype{Alleles: []int{MissingAllele, MissingAllele}}).Missing() {
		t.Error("./. should be missing")
	}
	if (Genotype{Alleles: []int{0, MissingAllele}}).Missing() {
		t.Error("0/. should not be missing")
	}
	if (Genotype{Alleles: []int{0, 0}}).Missing() {
		t.Error("0/0 should not be missing")
	}
}
