package tables

import (
	"errors"
	"fmt"
)

// ErrUnknownSample is returned when a genotype references a sample name
// that is not part of the stream's fixed sample list. This signals an
// identifier inconsistency between the metadata tables and the genotype
// decoding path and is always fatal.
var ErrUnknownSample = errors.New("sample name not in fixed sample list")

// SampleIndex is the order-preserving bijection from sample name to the
// dense zero-based callset/sample id. It is built once, before any record
// is decoded, and never changes for the life of a run.
type SampleIndex struct {
	names []string
	ids   map[string]int32
}

// NewSampleIndex builds the index from the stream's ordered sample list.
// Duplicate names are rejected: two samples mapping to the same id would
// corrupt every genotype row referencing them.
func NewSampleIndex(names []string) (*SampleIndex, error) {
	ids := make(map[string]int32, len(names))
	for i, name := range names {
		if _, dup := ids[name]; dup {
			return nil, fmt.Errorf("duplicate sample name %q at position %d", name, i)
		}
		ids[name] = int32(i)
	}
	return &SampleIndex{names: append([]string(nil), names...), ids: ids}, nil
}

// Lookup returns the id assigned to a sample name.
func (x *SampleIndex) Lookup(name string) (int32, error) {
	id, ok := x.ids[name]
	if !ok {
		return 0, fmt.Errorf("lookup %q: %w", name, ErrUnknownSample)
	}
	return id, nil
}

// Names returns the ordered sample list the index was built from.
func (x *SampleIndex) Names() []string {
	return x.names
}

// Len returns the number of samples in the index.
func (x *SampleIndex) Len() int {
	return len(x.names)
}
