package vcf

// VariantSource is the interface for anything that yields a stream of
// variant records in input order.
type VariantSource interface {
	// Next reads the next variant.
	// Returns nil, nil when there are no more variants.
	Next() (*Variant, error)

	// SampleNames returns the ordered sample list fixed for the whole stream.
	SampleNames() []string

	// Close closes the source and releases resources.
	Close() error
}
