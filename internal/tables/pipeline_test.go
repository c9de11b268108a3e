package tables

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inodb/geno-tables/internal/vcf"
)

const ingestVCF = `##fileformat=VCFv4.2
##INFO=<ID=geneSymbol,Number=1,Type=String,Description="Gene symbol">
#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO	FORMAT	NA001	NA002	NA003
1	12345	rs1	A	T,G	50	PASS	geneSymbol=BRCA2	GT	0/0	0/1	1/1
1	20000	.	C	G	30	PASS	.	GT	0/0	0/0	0/0
2	30000	.	G	A	99	PASS	geneSymbol=TP53	GT	1|0	./.	0/0
`

const sitesVCF = `##fileformat=VCFv4.2
##INFO=<ID=AF,Number=A,Type=Float,Description="Allele frequency">
#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO
1	100	.	A	T	.	PASS	AF=1.0
1	200	.	C	G	.	PASS	AF=0
1	300	.	G	C	.	PASS	DP=10
2	400	.	T	A	.	PASS	AF=0.5
`

func runIngest(t *testing.T, text, prefix string, chunkSize int) {
	t.Helper()
	parser, err := vcf.NewParserFromReader(strings.NewReader(text))
	require.NoError(t, err)

	cfg := Config{
		Dataset:   "mystudy",
		Prefix:    prefix,
		ChunkSize: chunkSize,
		Consent:   true,
		Seed:      42,
	}
	require.NoError(t, Ingest(parser, cfg, zap.NewNop()))
}

func TestIngestEndToEnd(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "run")
	runIngest(t, ingestVCF, prefix, 500)

	// The all-hom-ref record at 1:20000 is skipped and consumes no id.
	variants := readRows(t, prefix, TableVariants)
	require.Len(t, variants, 2)
	assert.Equal(t, []any{int64(0), "1", int32(12345), "A", "T"}, variants[0])
	assert.Equal(t, []any{int64(1), "2", int32(30000), "G", "A"}, variants[1])

	gts := readRows(t, prefix, TableGenotypes)
	require.Len(t, gts, 3)
	assert.Equal(t, []any{int64(0), int32(1), "0/1"}, gts[0])
	assert.Equal(t, []any{int64(0), int32(2), "1/1"}, gts[1])
	assert.Equal(t, []any{int64(1), int32(0), "1|0"}, gts[2])

	anns := readRows(t, prefix, TableAnnotations)
	require.Len(t, anns, 2)
	assert.Equal(t, []any{int64(0), "BRCA2"}, anns[0])
	assert.Equal(t, []any{int64(1), "TP53"}, anns[1])

	callsets := readRows(t, prefix, TableCallsets)
	samples := readRows(t, prefix, TableSamples)
	require.Len(t, callsets, 3)
	require.Len(t, samples, 3)

	// Every genotype row resolves to a callset/sample row.
	sampleIDs := make(map[int32]bool)
	for _, row := range samples {
		sampleIDs[row[0].(int32)] = true
	}
	for _, row := range gts {
		assert.True(t, sampleIDs[row[1].(int32)], "callsetId %v not in samples", row[1])
	}
}

func TestIngestChunkSizeDoesNotChangeOutput(t *testing.T) {
	dir := t.TempDir()
	one := filepath.Join(dir, "one")
	all := filepath.Join(dir, "all")

	runIngest(t, ingestVCF, one, 1)
	runIngest(t, ingestVCF, all, 500)

	for _, table := range AllTableNames() {
		assert.Equal(t, readRows(t, all, table), readRows(t, one, table),
			"table %s differs across chunk sizes", table)
	}
}

func TestIngestEmptyStream(t *testing.T) {
	const emptyVCF = `##fileformat=VCFv4.2
#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO	FORMAT	NA001	NA002
`
	prefix := filepath.Join(t.TempDir(), "run")
	runIngest(t, emptyVCF, prefix, 500)

	assert.Empty(t, readRows(t, prefix, TableVariants))
	assert.Empty(t, readRows(t, prefix, TableAnnotations))
	assert.Empty(t, readRows(t, prefix, TableGenotypes))
	assert.Len(t, readRows(t, prefix, TableCallsets), 2)
	assert.Len(t, readRows(t, prefix, TableSamples), 2)
}

func TestIngestRequiresSampleColumns(t *testing.T) {
	const noSamples = `##fileformat=VCFv4.2
#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO
`
	parser, err := vcf.NewParserFromReader(strings.NewReader(noSamples))
	require.NoError(t, err)

	err = Ingest(parser, Config{Dataset: "ds", Prefix: filepath.Join(t.TempDir(), "run")}, zap.NewNop())
	require.Error(t, err)
}

func TestSynthesizeEndToEnd(t *testing.T) {
	const nsamples = 5
	prefix := filepath.Join(t.TempDir(), "synth")

	parser, err := vcf.NewParserFromReader(strings.NewReader(sitesVCF))
	require.NoError(t, err)

	cfg := Config{
		Dataset:   "synthstudy",
		Prefix:    prefix,
		ChunkSize: 2,
		Consent:   true,
		Seed:      42,
		Samples:   nsamples,
	}
	require.NoError(t, Synthesize(parser, cfg, zap.NewNop()))

	samples := readRows(t, prefix, TableSamples)
	require.Len(t, samples, nsamples)
	assert.Equal(t, "synthstudy_00000", samples[0][1])

	// AF=1.0 at 1:100 is always emitted first: all samples hom-alt.
	variants := readRows(t, prefix, TableVariants)
	require.NotEmpty(t, variants)
	assert.Equal(t, []any{int64(0), "1", int32(100), "A", "T"}, variants[0])

	gts := readRows(t, prefix, TableGenotypes)
	require.GreaterOrEqual(t, len(gts), nsamples)
	for i := 0; i < nsamples; i++ {
		assert.Equal(t, uint64(0), gts[i][0])
		assert.Equal(t, uint32(i), gts[i][1])
		assert.Equal(t, CodeHomAlt, gts[i][2])
	}

	// AF=0 and missing-AF records are skipped; ids stay dense. The AF=0.5
	// record may or may not be emitted depending on the draw.
	require.LessOrEqual(t, len(variants), 2)
	for i, row := range variants {
		assert.Equal(t, int64(i), row[0], "variant ids must be dense")
	}

	// Every genotype row is a present call referencing a valid callset.
	for _, row := range gts {
		code := row[2].(uint8)
		assert.True(t, CodePresent(code), "non-present code %d materialized", code)
		assert.Less(t, row[1].(uint32), uint32(nsamples))
	}
}

func TestSynthesizeRejectsBadSampleCount(t *testing.T) {
	parser, err := vcf.NewParserFromReader(strings.NewReader(sitesVCF))
	require.NoError(t, err)

	cfg := Config{Dataset: "ds", Prefix: filepath.Join(t.TempDir(), "run"), Samples: 0}
	require.Error(t, Synthesize(parser, cfg, zap.NewNop()))
}

func TestSynthesizeReproducible(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")

	for _, prefix := range []string{a, b} {
		parser, err := vcf.NewParserFromReader(strings.NewReader(sitesVCF))
		require.NoError(t, err)
		cfg := Config{Dataset: "ds", Prefix: prefix, Seed: 7, Samples: 8, Consent: true}
		require.NoError(t, Synthesize(parser, cfg, zap.NewNop()))
	}

	for _, table := range AllTableNames() {
		assert.Equal(t, readRows(t, a, table), readRows(t, b, table),
			"table %s differs across identically seeded runs", table)
	}
}
