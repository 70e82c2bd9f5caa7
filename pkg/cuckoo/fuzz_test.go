package cuckoo

import (
	"math/rand/v2"
	"testing"

	"github.com/optable/multiprobe/pkg/hashfamily"
)

// FuzzTableOps drives a table against a reference map and checks that
// the displacement machinery never loses or duplicates an entry, in
// particular when eviction walks exhaust a small budget and recover by
// growing. An abandoned walk must leave the occupancy set intact since
// every swap exchanges two entries.
func FuzzTableOps(f *testing.F) {
	// Seed corpus
	f.Add(uint64(1), 3, 100, 1)
	f.Add(uint64(42), 2, 400, 500)
	f.Add(uint64(0), 4, 50, 2)
	f.Add(^uint64(0), 2, 1000, 1)

	f.Fuzz(func(t *testing.T, seed uint64, k, n, budget int) {
		if k < 2 || k > 8 || n < 1 || n > 2000 || budget < 1 || budget > 1000 {
			t.Skip("bounds")
		}

		family, err := hashfamily.New(k, seed)
		if err != nil {
			t.Fatalf("New family: %v", err)
		}
		table, err := NewTable[uint64](family, WithCapacity(2), WithMaxDisplacements(budget))
		if err != nil {
			t.Fatalf("NewTable: %v", err)
		}

		prng := rand.New(rand.NewPCG(seed, 99))
		want := make(map[string]uint64)
		keySpace := n/2 + 1

		for i := 0; i < n; i++ {
			key := intKey(int(prng.Uint64() % uint64(keySpace)))
			if prng.Uint64()%10 < 7 {
				value := prng.Uint64()
				inserted := table.Insert(key, value)
				_, present := want[string(key)]
				if inserted == present {
					t.Fatalf("insert of %x reported new=%v, reference says present=%v", key, inserted, present)
				}
				want[string(key)] = value
			} else {
				deleted := table.Delete(key)
				_, present := want[string(key)]
				if deleted != present {
					t.Fatalf("delete of %x reported %v, reference says present=%v", key, deleted, present)
				}
				delete(want, string(key))
			}
		}

		if table.Len() != len(want) {
			t.Fatalf("size drift: table %d, reference %d", table.Len(), len(want))
		}
		for key, value := range want {
			got, ok := table.Get([]byte(key))
			if !ok {
				t.Fatalf("key %x lost", key)
			}
			if got != value {
				t.Fatalf("key %x: want %d, got %d", key, value, got)
			}
		}
		checkInvariants(t, table)
	})
}
