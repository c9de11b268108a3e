package tables

import (
	"fmt"
	"math/rand"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// callTypeGermline is the call type stamped on every callset row.
const callTypeGermline = "germline"

// Demographic attribute pools for the samples table.
var (
	ethnicities = []string{
		"Indigenous", "Arab/West Asian", "Black", "East Asian",
		"South Asian", "Latin American", "White",
	}
	birthSexes      = []string{"male", "female", "other"}
	birthSexWeights = []int{1000, 1000, 1}
)

// SyntheticSampleNames generates the fixed sample list for a synthetic run:
// dataset_00000 through dataset_{n-1}.
func SyntheticSampleNames(dataset string, n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("%s_%05d", dataset, i)
	}
	return names
}

// WriteCallsets builds the callsets table from the fixed sample list and
// writes it as a single parquet artifact. Callset and sample ids are the
// same dense integers; every row carries the run's dataset label and
// consent flag.
func WriteCallsets(prefix string, idx *SampleIndex, dataset string, consent bool) error {
	schema := CallsetsSchema()
	b := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer b.Release()

	for i := 0; i < idx.Len(); i++ {
		b.Field(0).(*array.Int32Builder).Append(int32(i))
		b.Field(1).(*array.Int32Builder).Append(int32(i))
		b.Field(2).(*array.StringBuilder).Append(callTypeGermline)
		b.Field(3).(*array.StringBuilder).Append(dataset)
		b.Field(4).(*array.BooleanBuilder).Append(consent)
	}

	rec := b.NewRecord()
	defer rec.Release()
	return WriteTableFile(ArtifactPath(prefix, TableCallsets), schema, rec)
}

// WriteSamples builds the samples table from the fixed sample list and
// writes it as a single parquet artifact. Demographic attributes are drawn
// from rng so a seeded run reproduces them exactly; the patient id reuses
// the sample name.
func WriteSamples(prefix string, idx *SampleIndex, dataset string, consent bool, rng *rand.Rand) error {
	schema := SamplesSchema()
	b := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer b.Release()

	for i, name := range idx.Names() {
		b.Field(0).(*array.Int32Builder).Append(int32(i))
		b.Field(1).(*array.StringBuilder).Append(name)
		b.Field(2).(*array.StringBuilder).Append(ethnicities[rng.Intn(len(ethnicities))])
		b.Field(3).(*array.StringBuilder).Append(weightedChoice(rng, birthSexes, birthSexWeights))
		b.Field(4).(*array.StringBuilder).Append(name)
		b.Field(5).(*array.StringBuilder).Append(dataset)
		b.Field(6).(*array.BooleanBuilder).Append(consent)
	}

	rec := b.NewRecord()
	defer rec.Release()
	return WriteTableFile(ArtifactPath(prefix, TableSamples), schema, rec)
}

// weightedChoice draws one value with integer weights.
func weightedChoice(rng *rand.Rand, values []string, weights []int) string {
	total := 0
	for _, w := range weights {
		total += w
	}
	r := rng.Intn(total)
	for i, w := range weights {
		if r < w {
			return values[i]
		}
		r -= w
	}
	return values[len(values)-1]
}
