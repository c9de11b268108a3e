package tables

import (
	"fmt"
	"os"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"go.uber.org/zap"
)

// DefaultChunkSize is the number of buffered variants that triggers a flush.
const DefaultChunkSize = 500

// streamedTables is the flush order of the tables fed by the record stream.
var streamedTables = []string{TableVariants, TableAnnotations, TableGenotypes}

// ChunkedWriter buffers decoded rows per table and appends them to one
// parquet file per table in bounded-size chunks. Each file is opened once,
// with its schema fixed, before the first row is buffered; every chunk is a
// row group appended to the same file, so chunking never shows up in the
// final artifact beyond row group boundaries.
//
// Chunking is driven by the variants buffer: once it holds chunkSize rows,
// all three buffers are flushed together. Close flushes whatever remains.
type ChunkedWriter struct {
	enc       GenotypeEncoding
	chunkSize int
	mem       memory.Allocator
	logger    *zap.Logger

	builders map[string]*array.RecordBuilder
	writers  map[string]*pqarrow.FileWriter

	pending  int // variants buffered since the last flush
	variants int64
	chunks   int
	start    time.Time
	closed   bool
}

// NewChunkedWriter creates the writer, opening the variants, annotations
// and gts artifacts under the given path prefix. Opening eagerly fixes each
// table's schema up front and guarantees an artifact exists for every table
// even when a run emits no rows at all.
func NewChunkedWriter(prefix string, enc GenotypeEncoding, chunkSize int) (*ChunkedWriter, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}

	schemas := map[string]*arrow.Schema{
		TableVariants:    VariantsSchema(),
		TableAnnotations: AnnotationsSchema(),
		TableGenotypes:   GenotypesSchema(enc),
	}

	w := &ChunkedWriter{
		enc:       enc,
		chunkSize: chunkSize,
		mem:       memory.DefaultAllocator,
		logger:    zap.NewNop(),
		builders:  make(map[string]*array.RecordBuilder, len(schemas)),
		writers:   make(map[string]*pqarrow.FileWriter, len(schemas)),
		start:     time.Now(),
	}

	for _, table := range streamedTables {
		fw, err := openTableWriter(ArtifactPath(prefix, table), schemas[table])
		if err != nil {
			w.abandon()
			return nil, fmt.Errorf("open %s writer: %w", table, err)
		}
		w.writers[table] = fw
		w.builders[table] = array.NewRecordBuilder(w.mem, schemas[table])
	}

	return w, nil
}

// SetLogger sets the logger used for per-chunk progress reporting.
func (w *ChunkedWriter) SetLogger(l *zap.Logger) {
	w.logger = l
}

// Add buffers the rows of one decoded record and flushes if the variants
// buffer has reached the chunk size.
func (w *ChunkedWriter) Add(d *Decoded) error {
	if w.closed {
		return fmt.Errorf("add to closed writer")
	}

	vb := w.builders[TableVariants]
	vb.Field(0).(*array.Int64Builder).Append(d.Variant.VID)
	vb.Field(1).(*array.StringBuilder).Append(d.Variant.Chrom)
	vb.Field(2).(*array.Int32Builder).Append(d.Variant.Pos)
	vb.Field(3).(*array.StringBuilder).Append(d.Variant.Ref)
	vb.Field(4).(*array.StringBuilder).Append(d.Variant.Alt)

	if d.Annotation != nil {
		ab := w.builders[TableAnnotations]
		ab.Field(0).(*array.Int64Builder).Append(d.Annotation.VID)
		ab.Field(1).(*array.StringBuilder).Append(d.Annotation.GeneSymbol)
	}

	gb := w.builders[TableGenotypes]
	for _, g := range d.Genotypes {
		if w.enc == GenotypeCodes {
			gb.Field(0).(*array.Uint64Builder).Append(uint64(g.VID))
			gb.Field(1).(*array.Uint32Builder).Append(uint32(g.CallsetID))
			gb.Field(2).(*array.Uint8Builder).Append(g.Code)
		} else {
			gb.Field(0).(*array.Int64Builder).Append(g.VID)
			gb.Field(1).(*array.Int32Builder).Append(g.CallsetID)
			gb.Field(2).(*array.StringBuilder).Append(g.Genotype)
		}
	}

	w.pending++
	w.variants++

	if w.pending >= w.chunkSize {
		return w.Flush()
	}
	return nil
}

// Flush converts every table's buffered rows to a columnar batch and
// appends it to the table's artifact. Empty buffers write nothing; the
// artifact and its schema already exist.
func (w *ChunkedWriter) Flush() error {
	if w.closed {
		return fmt.Errorf("flush closed writer")
	}

	for _, table := range streamedTables {
		rec := w.builders[table].NewRecord()
		if rec.NumRows() > 0 {
			if err := w.writers[table].Write(rec); err != nil {
				rec.Release()
				return fmt.Errorf("flush %s chunk: %w", table, err)
			}
		}
		rec.Release()
	}

	if w.pending > 0 {
		w.chunks++
		w.logger.Info("flushed chunk",
			zap.Int("chunk", w.chunks),
			zap.Int64("variants", w.variants),
			zap.Duration("elapsed", time.Since(w.start)))
	}
	w.pending = 0
	return nil
}

// Close flushes any remaining rows and finalizes every artifact.
func (w *ChunkedWriter) Close() error {
	if w.closed {
		return nil
	}

	if err := w.Flush(); err != nil {
		w.abandon()
		return err
	}
	w.closed = true

	for _, table := range streamedTables {
		w.builders[table].Release()
		if err := w.writers[table].Close(); err != nil {
			return fmt.Errorf("close %s writer: %w", table, err)
		}
	}
	return nil
}

// Variants returns the number of variant rows written or buffered so far.
func (w *ChunkedWriter) Variants() int64 {
	return w.variants
}

// Abort closes every open artifact without flushing buffered rows. The
// run's artifacts are left truncated (no parquet footer) so downstream
// readers reject them instead of loading a silently partial table.
func (w *ChunkedWriter) Abort() {
	w.abandon()
}

// abandon closes whatever was opened without flushing, for error paths
// during construction and final flush.
func (w *ChunkedWriter) abandon() {
	w.closed = true
	for _, b := range w.builders {
		b.Release()
	}
	for _, fw := range w.writers {
		fw.Close()
	}
}

// openTableWriter creates a table's parquet artifact with its schema
// fixed, using snappy compression.
func openTableWriter(path string, schema *arrow.Schema) (*pqarrow.FileWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	fw, err := pqarrow.NewFileWriter(schema, f, props, pqarrow.DefaultWriterProps())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create parquet writer for %s: %w", path, err)
	}
	return fw, nil
}

// WriteTableFile writes a complete table as a single parquet artifact.
// Used for the callsets and samples tables, which are built once per run.
func WriteTableFile(path string, schema *arrow.Schema, rec arrow.Record) error {
	fw, err := openTableWriter(path, schema)
	if err != nil {
		return err
	}

	if rec.NumRows() > 0 {
		if err := fw.Write(rec); err != nil {
			fw.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return fw.Close()
}
