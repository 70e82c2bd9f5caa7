// Package cuckoo implements a bounded displacement cuckoo hash table
// over byte keys. Every key has k candidate slots computed by a shared
// hash family, so lookups probe at most k slots regardless of load.
// Inserts that run out of displacement budget grow the table and retry
// instead of failing.
package cuckoo

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/optable/multiprobe/pkg/hashfamily"
)

const (
	// DefaultCapacity is the initial slot count unless an option
	// overrides it.
	DefaultCapacity = 16
	// DefaultMaxDisplacements bounds the eviction walk of a single
	// insert before the table grows and retries.
	DefaultMaxDisplacements = 500

	// minCapacity keeps the modulus of candidate positions sane.
	minCapacity = 2
	// maxGrowthRetries caps how many times one insert may double the
	// table. Reaching it means the family cannot spread the keys.
	maxGrowthRetries = 64
)

var (
	ErrNilFamily      = errors.New("cuckoo table needs a hash family")
	ErrFamilyTooSmall = errors.New("cuckoo table needs a hash family with at least 2 functions")
)

type slot[V any] struct {
	key      []byte
	value    V
	occupied bool
}

// Table is a cuckoo hash table mapping byte keys to values of type V.
// Every resident key occupies exactly one of the k candidate slots its
// hash family assigns to it. The table is not safe for concurrent
// mutation; the family it is built on may be shared freely.
type Table[V any] struct {
	family           *hashfamily.Family
	k                int
	slots            []slot[V]
	size             int
	maxDisplacements int
}

// Option overrides a construction default.
type Option func(*config)

type config struct {
	capacity         int
	maxDisplacements int
}

// WithCapacity sets the initial slot count, clamped to at least 2.
func WithCapacity(n int) Option {
	return func(c *config) {
		c.capacity = n
	}
}

// WithMaxDisplacements sets the eviction walk budget of one insert.
func WithMaxDisplacements(n int) Option {
	return func(c *config) {
		c.maxDisplacements = n
	}
}

// NewTable creates an empty table bound to family. The family must
// provide at least 2 hash functions for the displacement scheme to
// work, and must outlive the table.
func NewTable[V any](family *hashfamily.Family, opts ...Option) (*Table[V], error) {
	if family == nil {
		return nil, ErrNilFamily
	}
	if family.K() < 2 {
		return nil, ErrFamilyTooSmall
	}

	c := &config{
		capacity:         DefaultCapacity,
		maxDisplacements: DefaultMaxDisplacements,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.capacity < minCapacity {
		c.capacity = minCapacity
	}

	return &Table[V]{
		family:           family,
		k:                family.K(),
		slots:            make([]slot[V], c.capacity),
		maxDisplacements: c.maxDisplacements,
	}, nil
}

// position returns the candidate slot of key under hash function h at
// the current capacity.
func (t *Table[V]) position(h int, key []byte) int {
	return int(t.family.Hash(h, key) % uint(len(t.slots)))
}

// Insert places key with value and reports whether key was new;
// inserting a resident key only overwrites its value. The table may
// grow to make room. Key slices are kept as given, so callers must not
// mutate a key after handing it over.
func (t *Table[V]) Insert(key []byte, value V) bool {
	// grow ahead of need so eviction walks stay short
	if t.LoadFactor() > 0.5 {
		t.rebuild(2 * len(t.slots))
	}

	return t.place(key, value)
}

// place runs the insertion algorithm at the current capacity, growing
// only when an eviction walk exhausts its budget.
func (t *Table[V]) place(key []byte, value V) bool {
	// a resident key is overwritten in whichever candidate slot holds it
	for h := 0; h < t.k; h++ {
		if s := &t.slots[t.position(h, key)]; s.occupied && bytes.Equal(s.key, key) {
			s.value = value
			return false
		}
	}

	cur := slot[V]{key: key, value: value, occupied: true}
	for grown := 0; ; grown++ {
		// an empty candidate slot takes the entry directly
		for h := 0; h < t.k; h++ {
			if i := t.position(h, cur.key); !t.slots[i].occupied {
				t.slots[i] = cur
				t.size++
				return true
			}
		}

		// eviction walk: swap the entry into one of its candidate
		// slots in round robin order, then try to rehome the occupant
		// it displaced
		which := 0
		for d := 0; d < t.maxDisplacements; d++ {
			which = (which + 1) % t.k
			i := t.position(which, cur.key)
			cur, t.slots[i] = t.slots[i], cur

			for h := 0; h < t.k; h++ {
				if j := t.position(h, cur.key); !t.slots[j].occupied {
					t.slots[j] = cur
					t.size++
					return true
				}
			}
		}

		// walk budget exhausted; growing moves every candidate
		// position, which breaks the stalled chain. The entry in
		// flight stays out of the rebuild and is retried against the
		// larger table.
		if grown >= maxGrowthRetries {
			panic(fmt.Errorf("insert exceeded %d growths at capacity %d", maxGrowthRetries, len(t.slots)))
		}
		t.rebuild(2 * len(t.slots))
	}
}

// Get returns the value stored under key.
func (t *Table[V]) Get(key []byte) (V, bool) {
	for h := 0; h < t.k; h++ {
		if s := &t.slots[t.position(h, key)]; s.occupied && bytes.Equal(s.key, key) {
			return s.value, true
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

// Delete removes key and reports whether it was resident.
func (t *Table[V]) Delete(key []byte) bool {
	for h := 0; h < t.k; h++ {
		if i := t.position(h, key); t.slots[i].occupied && bytes.Equal(t.slots[i].key, key) {
			t.slots[i] = slot[V]{}
			t.size--
			return true
		}
	}

	return false
}

// Resize rebuilds the table at newCapacity, clamped to at least 2.
// Entries rehash against the new capacity and may move anywhere. A
// capacity too small for the resident set grows back during the
// rebuild rather than failing.
func (t *Table[V]) Resize(newCapacity int) {
	t.rebuild(newCapacity)
}

// rebuild reallocates the slot array and reinserts every resident
// entry. The entry count must survive: resident keys are distinct, so
// reinsertion can never take the update path, and a count mismatch
// means entries were lost or duplicated.
func (t *Table[V]) rebuild(newCapacity int) {
	if newCapacity < minCapacity {
		newCapacity = minCapacity
	}

	old := t.slots
	oldSize := t.size
	t.slots = make([]slot[V], newCapacity)
	t.size = 0

	for i := range old {
		if old[i].occupied {
			t.place(old[i].key, old[i].value)
		}
	}

	if t.size != oldSize {
		panic(fmt.Errorf("rebuild to capacity %d kept %d of %d entries", newCapacity, t.size, oldSize))
	}
}

// Clear empties every slot. Capacity is unchanged.
func (t *Table[V]) Clear() {
	for i := range t.slots {
		t.slots[i] = slot[V]{}
	}
	t.size = 0
}

// Len returns the number of resident entries.
func (t *Table[V]) Len() int {
	return t.size
}

// Capacity returns the slot count.
func (t *Table[V]) Capacity() int {
	return len(t.slots)
}

// LoadFactor returns the ratio of resident entries to capacity.
func (t *Table[V]) LoadFactor() float64 {
	return float64(t.size) / float64(len(t.slots))
}

// candidates returns the k candidate positions of key at the current
// capacity.
func (t *Table[V]) candidates(key []byte) []int {
	pos := make([]int, t.k)
	for h := range pos {
		pos[h] = t.position(h, key)
	}

	return pos
}

// Dump writes a diagnostic view of the table to w: a header with the
// table parameters, then one line per slot showing its occupant and
// the occupant's full candidate set.
func (t *Table[V]) Dump(w io.Writer) {
	fmt.Fprintf(w, "cuckoo table: capacity=%d size=%d load=%.3f k=%d maxDisplacements=%d\n",
		t.Capacity(), t.size, t.LoadFactor(), t.k, t.maxDisplacements)

	for i := range t.slots {
		if !t.slots[i].occupied {
			fmt.Fprintf(w, "%4d: empty\n", i)
			continue
		}
		fmt.Fprintf(w, "%4d: %q=%v candidates=%v\n",
			i, t.slots[i].key, t.slots[i].value, t.candidates(t.slots[i].key))
	}
}
