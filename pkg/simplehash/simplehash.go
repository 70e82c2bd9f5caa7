// Package simplehash implements a chained hash table that keeps a copy
// of every entry in each of the entry's k candidate buckets. A lookup
// succeeds as soon as any one candidate bucket holds a copy; a delete
// removes every copy. The logical size counts each key once no matter
// how many copies exist.
package simplehash

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/optable/multiprobe/pkg/hashfamily"
)

const (
	// DefaultBuckets is the initial bucket count unless an option
	// overrides it.
	DefaultBuckets = 16

	minBuckets = 1
	// maxLoadFactor is the logical load beyond which an insert grows
	// the table first.
	maxLoadFactor = 0.75
)

var (
	ErrNilFamily      = errors.New("simple hash table needs a hash family")
	ErrFamilyTooSmall = errors.New("simple hash table needs a hash family with at least 3 functions")
)

type entry[V any] struct {
	key   []byte
	value V
}

// Table is a multi-copy chained hash table mapping byte keys to values
// of type V. Not safe for concurrent mutation; the family it is built
// on may be shared freely.
type Table[V any] struct {
	family  *hashfamily.Family
	k       int
	buckets [][]entry[V]
	size    int
}

// Option overrides a construction default.
type Option func(*config)

type config struct {
	buckets int
}

// WithBuckets sets the initial bucket count, clamped to at least 1.
func WithBuckets(n int) Option {
	return func(c *config) {
		c.buckets = n
	}
}

// NewTable creates an empty table bound to family. The family must
// provide at least 3 functions, the replication factor of this layout.
func NewTable[V any](family *hashfamily.Family, opts ...Option) (*Table[V], error) {
	if family == nil {
		return nil, ErrNilFamily
	}
	if family.K() < 3 {
		return nil, ErrFamilyTooSmall
	}

	c := &config{buckets: DefaultBuckets}
	for _, opt := range opts {
		opt(c)
	}
	if c.buckets < minBuckets {
		c.buckets = minBuckets
	}

	return &Table[V]{
		family:  family,
		k:       family.K(),
		buckets: make([][]entry[V], c.buckets),
	}, nil
}

// position returns the candidate bucket of key under hash function h
// at the current bucket count.
func (t *Table[V]) position(h int, key []byte) int {
	return int(t.family.Hash(h, key) % uint(len(t.buckets)))
}

// Insert places a copy of (key, value) in every candidate bucket of
// key and reports whether key was new; inserting a resident key
// overwrites the value of every copy. The table keeps the key slice it
// is given.
func (t *Table[V]) Insert(key []byte, value V) bool {
	if t.LoadFactor() > maxLoadFactor {
		t.Rehash(2 * len(t.buckets))
	}

	return t.place(key, value)
}

// place writes one copy per distinct candidate bucket. Candidate
// collisions collapse naturally: a later function mapping to a bucket
// that already got its copy takes the update path there.
func (t *Table[V]) place(key []byte, value V) bool {
	isNew := false
	for h := 0; h < t.k; h++ {
		b := t.position(h, key)

		updated := false
		for i := range t.buckets[b] {
			if bytes.Equal(t.buckets[b][i].key, key) {
				t.buckets[b][i].value = value
				updated = true
				break
			}
		}
		if !updated {
			t.buckets[b] = append(t.buckets[b], entry[V]{key: key, value: value})
			// count the key once no matter how many copies are written
			if !isNew {
				isNew = true
				t.size++
			}
		}
	}

	return isNew
}

// Get returns the value stored under key, from the first candidate
// bucket holding a copy.
func (t *Table[V]) Get(key []byte) (V, bool) {
	for h := 0; h < t.k; h++ {
		chain := t.buckets[t.position(h, key)]
		for i := range chain {
			if bytes.Equal(chain[i].key, key) {
				return chain[i].value, true
			}
		}
	}

	var zero V
	return zero, false
}

// Contains reports whether key is resident.
func (t *Table[V]) Contains(key []byte) bool {
	_, ok := t.Get(key)
	return ok
}

// Delete removes every copy of key and reports whether any existed.
func (t *Table[V]) Delete(key []byte) bool {
	erased := false
	for h := 0; h < t.k; h++ {
		b := t.position(h, key)
		chain := t.buckets[b]
		// a bucket holds at most one copy of a key
		for i := range chain {
			if bytes.Equal(chain[i].key, key) {
				t.buckets[b] = append(chain[:i], chain[i+1:]...)
				if !erased {
					erased = true
					t.size--
				}
				break
			}
		}
	}

	return erased
}

// Rehash rebuilds the table with n buckets, clamped to at least 1.
// Every unique entry is re-placed against the new bucket count; the
// logical size must survive the rebuild.
func (t *Table[V]) Rehash(n int) {
	if n < minBuckets {
		n = minBuckets
	}

	old := t.buckets
	oldSize := t.size
	t.buckets = make([][]entry[V], n)
	t.size = 0

	seen := make(map[string]bool, oldSize)
	for _, chain := range old {
		for _, e := range chain {
			if seen[string(e.key)] {
				continue
			}
			seen[string(e.key)] = true
			t.place(e.key, e.value)
		}
	}

	if t.size != oldSize {
		panic(fmt.Errorf("rehash to %d buckets kept %d of %d entries", n, t.size, oldSize))
	}
}

// Clear empties every bucket. The bucket count is unchanged.
func (t *Table[V]) Clear() {
	for i := range t.buckets {
		t.buckets[i] = nil
	}
	t.size = 0
}

// Len returns the number of resident keys, each counted once.
func (t *Table[V]) Len() int {
	return t.size
}

// Buckets returns the bucket count.
func (t *Table[V]) Buckets() int {
	return len(t.buckets)
}

// LoadFactor returns the ratio of resident keys to buckets.
func (t *Table[V]) LoadFactor() float64 {
	return float64(t.size) / float64(len(t.buckets))
}

// candidates returns the k candidate buckets of key at the current
// bucket count.
func (t *Table[V]) candidates(key []byte) []int {
	pos := make([]int, t.k)
	for h := range pos {
		pos[h] = t.position(h, key)
	}

	return pos
}

// Dump writes a diagnostic view of the table to w: a header with the
// logical and physical sizes, then one line per bucket showing its
// chain.
func (t *Table[V]) Dump(w io.Writer) {
	copies := 0
	for i := range t.buckets {
		copies += len(t.buckets[i])
	}
	fmt.Fprintf(w, "simple hash table: buckets=%d size=%d copies=%d load=%.3f k=%d\n",
		len(t.buckets), t.size, copies, t.LoadFactor(), t.k)

	for i, chain := range t.buckets {
		if len(chain) == 0 {
			fmt.Fprintf(w, "%4d: empty\n", i)
			continue
		}
		fmt.Fprintf(w, "%4d:", i)
		for j := range chain {
			if j > 0 {
				fmt.Fprint(w, " ->")
			}
			fmt.Fprintf(w, " %q=%v", chain[j].key, chain[j].value)
		}
		fmt.Fprintln(w)
	}
}
