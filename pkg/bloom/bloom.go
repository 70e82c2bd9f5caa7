// Package bloom wraps an ecosystem bloom filter behind the small
// interface the rest of the module consumes.
package bloom

import (
	"errors"

	bloom "github.com/bits-and-blooms/bloom/v3"
)

const (
	// FalsePositive is the default false positive rate parameter for
	// the bloomfilter, expressed in terms of 0-1 is 0% - 100%
	FalsePositive = 1e-6

	FilterTypeBitsAndBloom = iota
)

var (
	ErrUnknownFilterType = errors.New("cannot create a bloomfilter of unknown type")
	ErrInvalidEstimate   = errors.New("expected item count must be positive")
	ErrInvalidRate       = errors.New("false positive rate must be within (0, 1)")
)

// Filter is a bloomfilter interface to wrap around an actual
// implementation.
type Filter interface {
	Add(identifier []byte)
	Check(identifier []byte) bool
	Clear()
	BitSize() uint
	HashCount() uint
	Len() uint64
	MarshalBinary() ([]byte, error)
}

// Option overrides a construction default.
type Option func(*config)

type config struct {
	rate float64
}

// WithFalsePositiveRate overrides the default false positive rate.
func WithFalsePositiveRate(r float64) Option {
	return func(c *config) {
		c.rate = r
	}
}

// bits-and-bloom implementation of the Filter interface
type bitsAndBloom struct {
	bf    *bloom.BloomFilter
	items uint64
}

// New instantiates a bloomfilter of type t sized for n expected items.
func New(t int, n int64, opts ...Option) (Filter, error) {
	c := &config{rate: FalsePositive}
	for _, opt := range opts {
		opt(c)
	}

	if n < 1 {
		return nil, ErrInvalidEstimate
	}
	if c.rate <= 0 || c.rate >= 1 {
		return nil, ErrInvalidRate
	}

	switch t {
	case FilterTypeBitsAndBloom:
		return &bitsAndBloom{bf: bloom.NewWithEstimates(uint(n), c.rate)}, nil
	default:
		return nil, ErrUnknownFilterType
	}
}

// Unmarshal restores a bloomfilter from bytes produced by
// MarshalBinary. The inserted item count does not survive the round
// trip, only the membership state does.
func Unmarshal(b []byte) (Filter, error) {
	var bf = &bloom.BloomFilter{}
	if err := bf.UnmarshalJSON(b); err != nil {
		return nil, err
	}
	return &bitsAndBloom{bf: bf}, nil
}

// Add an identifier to the bloomfilter
func (f *bitsAndBloom) Add(identifier []byte) {
	f.bf.Add(identifier)
	f.items++
}

// Check for the presence of an identifier in the bloomfilter
func (f *bitsAndBloom) Check(identifier []byte) bool {
	return f.bf.Test(identifier)
}

// Clear resets the filter to empty
func (f *bitsAndBloom) Clear() {
	f.bf.ClearAll()
	f.items = 0
}

// BitSize returns the size of the backing bit array
func (f *bitsAndBloom) BitSize() uint {
	return f.bf.Cap()
}

// HashCount returns the number of hash functions the filter probes
func (f *bitsAndBloom) HashCount() uint {
	return f.bf.K()
}

// Len returns the number of identifiers added since construction or
// the last Clear
func (f *bitsAndBloom) Len() uint64 {
	return f.items
}

// MarshalBinary marshals the entire bloomfilter and return the bytes
func (f *bitsAndBloom) MarshalBinary() ([]byte, error) {
	return f.bf.MarshalJSON()
}
