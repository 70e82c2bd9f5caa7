// Package hashfamily derives a set of k independent hash functions over
// byte keys from a single 64 bit master seed. Multi-probe tables use one
// family to compute the k candidate positions of every key.
package hashfamily

import (
	"errors"
	"fmt"

	"github.com/optable/multiprobe/internal/hash"
)

// DefaultHasher is the base hasher backing a family unless an option
// overrides it.
const DefaultHasher = hash.Murmur3

var ErrInvalidCount = errors.New("hash family needs at least one function")

// Family holds k derived seeds and one salted base hasher. Every
// function of the family folds the same base 64 bit hash of a key with
// its own seed, so a key is hashed once per evaluation regardless of k.
// A Family is immutable after construction and can be shared read-only
// by any number of tables.
type Family struct {
	k     int
	seeds []uint64
	base  hash.Hasher
}

// Option overrides a construction default.
type Option func(*config)

type config struct {
	hasherType int
}

// WithHasher selects the base hasher, one of the hash package type
// constants.
func WithHasher(t int) Option {
	return func(c *config) {
		c.hasherType = t
	}
}

// New derives a family of k functions from masterSeed. Seed i is
// produced by chaining a splitmix64 mix over the master seed and the
// function index, and the base hasher is salted with material expanded
// from the same master seed, so two families built from identical
// arguments hash identically on every platform.
func New(k int, masterSeed uint64, opts ...Option) (*Family, error) {
	if k < 1 {
		return nil, ErrInvalidCount
	}

	c := &config{hasherType: DefaultHasher}
	for _, opt := range opts {
		opt(c)
	}

	salt, err := hash.NewSalt(masterSeed)
	if err != nil {
		return nil, err
	}

	base, err := hash.New(c.hasherType, salt)
	if err != nil {
		return nil, err
	}

	seeds := make([]uint64, k)
	x := masterSeed
	for i := range seeds {
		x = splitmix64(x + uint64(i))
		seeds[i] = x
	}

	return &Family{k: k, seeds: seeds, base: base}, nil
}

// K returns the number of functions in the family.
func (f *Family) K() int {
	return f.k
}

// Hash evaluates function i of the family over key, truncated to the
// platform word. Panics if i is outside [0, K).
func (f *Family) Hash(i int, key []byte) uint {
	if i < 0 || i >= f.k {
		panic(fmt.Errorf("hash function index %d outside family of %d", i, f.k))
	}

	return word(fold64(f.base.Hash64(key), f.seeds[i]))
}
