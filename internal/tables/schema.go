// Package tables converts a stream of variant records into the normalized,
// schema-typed columnar tables of the genotype store: variants, annotations,
// genotype calls, callsets and samples.
package tables

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
)

// Table names, used both as map keys and in output artifact paths.
const (
	TableVariants    = "variants"
	TableAnnotations = "annotations"
	TableGenotypes   = "gts"
	TableCallsets    = "callsets"
	TableSamples     = "samples"
)

// GenotypeEncoding selects how genotype values are stored in the gts table.
// The encoding is fixed for a whole run before the first chunk is flushed.
type GenotypeEncoding int

const (
	// GenotypeStrings stores phase-aware allele strings such as "0/1" and
	// "1|0". Used for real ingestion, where phase information is available.
	GenotypeStrings GenotypeEncoding = iota

	// GenotypeCodes stores the compact uint8 genotype class code.
	// Used for synthetic generation, where calls are drawn as classes.
	GenotypeCodes
)

func (e GenotypeEncoding) String() string {
	switch e {
	case GenotypeStrings:
		return "strings"
	case GenotypeCodes:
		return "codes"
	default:
		return fmt.Sprintf("GenotypeEncoding(%d)", int(e))
	}
}

// VariantsSchema returns the fixed schema of the variants table.
func VariantsSchema() *arrow.Schema {
	return arrow.NewSchema([]arrow.Field{
		{Name: "vId", Type: arrow.PrimitiveTypes.Int64},
		{Name: "chrom", Type: arrow.BinaryTypes.String},
		{Name: "pos", Type: arrow.PrimitiveTypes.Int32},
		{Name: "ref", Type: arrow.BinaryTypes.String},
		{Name: "alt", Type: arrow.BinaryTypes.String},
	}, nil)
}

// AnnotationsSchema returns the fixed schema of the annotations table.
func AnnotationsSchema() *arrow.Schema {
	return arrow.NewSchema([]arrow.Field{
		{Name: "vId", Type: arrow.PrimitiveTypes.Int64},
		{Name: "geneSymbol", Type: arrow.BinaryTypes.String},
	}, nil)
}

// GenotypesSchema returns the fixed schema of the gts table for the given
// encoding. The two encodings deliberately differ in integer width: code
// runs are sized for very large synthetic cohorts.
func GenotypesSchema(enc GenotypeEncoding) *arrow.Schema {
	if enc == GenotypeCodes {
		return arrow.NewSchema([]arrow.Field{
			{Name: "vId", Type: arrow.PrimitiveTypes.Uint64},
			{Name: "callsetId", Type: arrow.PrimitiveTypes.Uint32},
			{Name: "genotype", Type: arrow.PrimitiveTypes.Uint8},
		}, nil)
	}
	return arrow.NewSchema([]arrow.Field{
		{Name: "vId", Type: arrow.PrimitiveTypes.Int64},
		{Name: "callsetId", Type: arrow.PrimitiveTypes.Int32},
		{Name: "genotype", Type: arrow.BinaryTypes.String},
	}, nil)
}

// CallsetsSchema returns the fixed schema of the callsets table.
func CallsetsSchema() *arrow.Schema {
	return arrow.NewSchema([]arrow.Field{
		{Name: "callsetId", Type: arrow.PrimitiveTypes.Int32},
		{Name: "sampleId", Type: arrow.PrimitiveTypes.Int32},
		{Name: "call_type", Type: arrow.BinaryTypes.String},
		{Name: "dataset", Type: arrow.BinaryTypes.String},
		{Name: "consent", Type: arrow.FixedWidthTypes.Boolean},
	}, nil)
}

// SamplesSchema returns the fixed schema of the samples table.
func SamplesSchema() *arrow.Schema {
	return arrow.NewSchema([]arrow.Field{
		{Name: "sampleId", Type: arrow.PrimitiveTypes.Int32},
		{Name: "sample_name", Type: arrow.BinaryTypes.String},
		{Name: "ethnicity", Type: arrow.BinaryTypes.String},
		{Name: "birth_sex", Type: arrow.BinaryTypes.String},
		{Name: "patientId", Type: arrow.BinaryTypes.String},
		{Name: "dataset", Type: arrow.BinaryTypes.String},
		{Name: "consent", Type: arrow.FixedWidthTypes.Boolean},
	}, nil)
}

// AllTableNames returns every table of a run, in a stable order.
func AllTableNames() []string {
	return []string{TableVariants, TableAnnotations, TableGenotypes, TableCallsets, TableSamples}
}

// ArtifactPath returns the output path of one table's parquet artifact
// under a run's path prefix.
func ArtifactPath(prefix, table string) string {
	return fmt.Sprintf("%s_%s.parquet", prefix, table)
}
