package tables

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readRows reads a table artifact back and flattens it to row-major values.
func readRows(t *testing.T, prefix, table string) [][]any {
	t.Helper()
	tbl, err := ReadTableFile(context.Background(), ArtifactPath(prefix, table))
	require.NoError(t, err)
	defer tbl.Release()

	rows, err := TableRows(tbl)
	require.NoError(t, err)
	return rows
}

func testDecoded(vid int64) *Decoded {
	d := &Decoded{
		Variant: VariantRow{VID: vid, Chrom: "1", Pos: int32(1000 + vid), Ref: "A", Alt: "T"},
		Genotypes: []GenotypeRow{
			{VID: vid, CallsetID: 0, Genotype: "0/1", Code: CodeHet},
			{VID: vid, CallsetID: 2, Genotype: "1/1", Code: CodeHomAlt},
		},
	}
	if vid%2 == 0 {
		d.Annotation = &AnnotationRow{VID: vid, GeneSymbol: "KRAS"}
	}
	return d
}

func writeRun(t *testing.T, prefix string, enc GenotypeEncoding, chunkSize, variants int) {
	t.Helper()
	w, err := NewChunkedWriter(prefix, enc, chunkSize)
	require.NoError(t, err)

	for i := 0; i < variants; i++ {
		require.NoError(t, w.Add(testDecoded(int64(i))))
	}
	require.NoError(t, w.Close())
}

func TestChunkedWriterRoundTrip(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "run")
	writeRun(t, prefix, GenotypeStrings, 2, 5)

	variants := readRows(t, prefix, TableVariants)
	require.Len(t, variants, 5)
	assert.Equal(t, []any{int64(0), "1", int32(1000), "A", "T"}, variants[0])
	assert.Equal(t, []any{int64(4), "1", int32(1004), "A", "T"}, variants[4])

	gts := readRows(t, prefix, TableGenotypes)
	require.Len(t, gts, 10)
	assert.Equal(t, []any{int64(0), int32(0), "0/1"}, gts[0])
	assert.Equal(t, []any{int64(0), int32(2), "1/1"}, gts[1])

	// Annotations only for even ids
	anns := readRows(t, prefix, TableAnnotations)
	require.Len(t, anns, 3)
	assert.Equal(t, []any{int64(0), "KRAS"}, anns[0])
	assert.Equal(t, []any{int64(2), "KRAS"}, anns[1])
	assert.Equal(t, []any{int64(4), "KRAS"}, anns[2])
}

func TestChunkedWriterCodeEncoding(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "run")
	writeRun(t, prefix, GenotypeCodes, 3, 4)

	gts := readRows(t, prefix, TableGenotypes)
	require.Len(t, gts, 8)
	assert.Equal(t, []any{uint64(0), uint32(0), CodeHet}, gts[0])
	assert.Equal(t, []any{uint64(0), uint32(2), CodeHomAlt}, gts[1])
}

func TestChunkBoundaryInvisible(t *testing.T) {
	// The same input flushed one variant at a time and all at once must
	// produce identical row content and order in every table.
	const variants = 7
	dir := t.TempDir()
	small := filepath.Join(dir, "small")
	big := filepath.Join(dir, "big")

	writeRun(t, small, GenotypeStrings, 1, variants)
	writeRun(t, big, GenotypeStrings, variants, variants)

	for _, table := range []string{TableVariants, TableAnnotations, TableGenotypes} {
		assert.Equal(t, readRows(t, big, table), readRows(t, small, table),
			"table %s differs across chunk sizes", table)
	}
}

func TestEmptyRunStillWritesTypedArtifacts(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "empty")

	w, err := NewChunkedWriter(prefix, GenotypeStrings, 500)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	wantFields := map[string][]string{
		TableVariants:    {"vId", "chrom", "pos", "ref", "alt"},
		TableAnnotations: {"vId", "geneSymbol"},
		TableGenotypes:   {"vId", "callsetId", "genotype"},
	}

	for table, fields := range wantFields {
		tbl, err := ReadTableFile(context.Background(), ArtifactPath(prefix, table))
		require.NoError(t, err, "artifact for %s missing", table)

		assert.EqualValues(t, 0, tbl.NumRows())
		require.Equal(t, len(fields), int(tbl.NumCols()))
		for i, name := range fields {
			assert.Equal(t, name, tbl.Schema().Field(i).Name)
		}
		tbl.Release()
	}
}

func TestFinalPartialChunkFlushed(t *testing.T) {
	// 5 variants with chunk size 3: the trailing partial buffer of 2 must
	// be flushed at Close.
	prefix := filepath.Join(t.TempDir(), "run")
	writeRun(t, prefix, GenotypeStrings, 3, 5)

	assert.Len(t, readRows(t, prefix, TableVariants), 5)
}

func TestChunkedWriterRejectsBadChunkSize(t *testing.T) {
	_, err := NewChunkedWriter(filepath.Join(t.TempDir(), "run"), GenotypeStrings, 0)
	require.Error(t, err)

	_, err = NewChunkedWriter(filepath.Join(t.TempDir(), "run"), GenotypeStrings, -5)
	require.Error(t, err)
}

func TestWriteTableFileEmptyRecord(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "meta")

	idx, err := NewSampleIndex(nil)
	require.NoError(t, err)
	require.NoError(t, WriteCallsets(prefix, idx, "ds", true))

	tbl, err := ReadTableFile(context.Background(), ArtifactPath(prefix, TableCallsets))
	require.NoError(t, err)
	defer tbl.Release()
	assert.EqualValues(t, 0, tbl.NumRows())
}

func TestGenotypesSchemaPerEncoding(t *testing.T) {
	s := GenotypesSchema(GenotypeStrings)
	assert.True(t, arrow.TypeEqual(arrow.BinaryTypes.String, s.Field(2).Type))

	s = GenotypesSchema(GenotypeCodes)
	assert.True(t, arrow.TypeEqual(arrow.PrimitiveTypes.Uint8, s.Field(2).Type))
	assert.True(t, arrow.TypeEqual(arrow.PrimitiveTypes.Uint64, s.Field(0).Type))
}
