package tables

import (
	"fmt"

	"github.com/inodb/geno-tables/internal/vcf"
)

// VariantRow is one row of the variants table.
type VariantRow struct {
	VID   int64
	Chrom string
	Pos   int32
	Ref   string
	Alt   string
}

// AnnotationRow is one row of the annotations table.
type AnnotationRow struct {
	VID        int64
	GeneSymbol string
}

// GenotypeRow is one row of the gts table. Genotype carries the value for
// the string encoding and Code for the compact encoding; the writer picks
// the field matching its configured encoding.
type GenotypeRow struct {
	VID       int64
	CallsetID int32
	Genotype  string
	Code      uint8
}

// Decoded is the full set of rows produced from one emitted variant record:
// exactly one variant row, an optional annotation row and one genotype row
// per present call.
type Decoded struct {
	Variant    VariantRow
	Annotation *AnnotationRow
	Genotypes  []GenotypeRow
}

// Decoder turns real variant records into table rows. Variant ids are a
// dense post-filter counter: a record skipped for having no present calls
// consumes no id.
type Decoder struct {
	samples     *SampleIndex
	sourceNames []string
	nextID      int64
}

// NewDecoder creates a decoder. sourceNames is the ordered sample list the
// record stream's genotypes are aligned with; it is looked up name by name
// in idx so a divergence between the two lists surfaces as an error rather
// than as silently misassigned ids.
func NewDecoder(idx *SampleIndex, sourceNames []string) *Decoder {
	return &Decoder{samples: idx, sourceNames: sourceNames}
}

// Decode produces the rows for one record. Returns nil, nil when the record
// has no present genotype call and is skipped entirely.
func (d *Decoder) Decode(v *vcf.Variant) (*Decoded, error) {
	if len(v.Genotypes) != len(d.sourceNames) {
		return nil, fmt.Errorf("record at %s:%d has %d genotypes for %d samples",
			v.Chrom, v.Pos, len(v.Genotypes), len(d.sourceNames))
	}
	if len(v.Alts) == 0 {
		return nil, fmt.Errorf("record at %s:%d has no alternate allele", v.Chrom, v.Pos)
	}

	var gts []GenotypeRow
	for i, g := range v.Genotypes {
		if !Present(g) {
			continue
		}
		id, err := d.samples.Lookup(d.sourceNames[i])
		if err != nil {
			return nil, fmt.Errorf("decode record at %s:%d: %w", v.Chrom, v.Pos, err)
		}
		gts = append(gts, GenotypeRow{
			CallsetID: id,
			Genotype:  GenotypeString(g),
		})
	}

	if len(gts) == 0 {
		return nil, nil
	}

	vid := d.nextID
	d.nextID++
	for i := range gts {
		gts[i].VID = vid
	}

	dec := &Decoded{
		Variant: VariantRow{
			VID:   vid,
			Chrom: v.Chrom,
			Pos:   int32(v.Pos),
			Ref:   v.Ref,
			Alt:   v.Alts[0], // additional alternates are dropped
		},
		Genotypes: gts,
	}

	if gene, ok := v.GeneSymbol(); ok {
		dec.Annotation = &AnnotationRow{VID: vid, GeneSymbol: gene}
	}

	return dec, nil
}

// SyntheticDecoder turns allele-frequency records into table rows, drawing
// per-sample genotype classes from a Hardy-Weinberg sampler instead of
// reading observed calls. Variant ids follow the same dense post-filter
// counter as Decoder.
type SyntheticDecoder struct {
	sampler *Sampler
	n       int
	nextID  int64
}

// NewSyntheticDecoder creates a synthetic decoder for n samples.
func NewSyntheticDecoder(sampler *Sampler, n int) *SyntheticDecoder {
	return &SyntheticDecoder{sampler: sampler, n: n}
}

// Decode produces rows for one sites-only record. Records without a usable
// AF INFO value are skipped, as are records whose draw yields no present
// call; neither consumes a variant id.
func (d *SyntheticDecoder) Decode(v *vcf.Variant) (*Decoded, error) {
	q, ok := v.AlleleFrequency()
	if !ok {
		return nil, nil
	}
	if len(v.Alts) == 0 {
		return nil, fmt.Errorf("record at %s:%d has no alternate allele", v.Chrom, v.Pos)
	}

	codes, err := d.sampler.Draw(q, d.n)
	if err != nil {
		return nil, fmt.Errorf("sample genotypes at %s:%d: %w", v.Chrom, v.Pos, err)
	}

	var gts []GenotypeRow
	for i, code := range codes {
		if !CodePresent(code) {
			continue
		}
		gts = append(gts, GenotypeRow{CallsetID: int32(i), Code: code})
	}

	if len(gts) == 0 {
		return nil, nil
	}

	vid := d.nextID
	d.nextID++
	for i := range gts {
		gts[i].VID = vid
	}

	return &Decoded{
		Variant: VariantRow{
			VID:   vid,
			Chrom: v.Chrom,
			Pos:   int32(v.Pos),
			Ref:   v.Ref,
			Alt:   v.Alts[0],
		},
		Genotypes: gts,
	}, nil
}
