package hash

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"testing"
)

var xxx = []byte("e:0e1f461bbefa6e07cc2ef06b9ee1ed25101e24d4345af266ed2f5a58bcd26c5e")

func makeSalt() ([]byte, error) {
	var s = make([]byte, SaltLength)

	if n, err := rand.Read(s); err != nil {
		return nil, err
	} else if n != SaltLength {
		return nil, fmt.Errorf("requested %d rand bytes and got %d", SaltLength, n)
	} else {
		return s, nil
	}
}

func TestNew(t *testing.T) {
	s, err := makeSalt()
	if err != nil {
		t.Fatalf("makeSalt: %v", err)
	}

	for _, typ := range []int{Murmur3, Highway, Metro, Sip} {
		h, err := New(typ, s)
		if err != nil {
			t.Fatalf("New(%d): %v", typ, err)
		}
		if h == nil {
			t.Fatalf("New(%d): nil hasher", typ)
		}
	}

	if _, err := New(Sip+1, s); err != ErrUnknownHash {
		t.Errorf("New with unknown type: want: %v, got: %v", ErrUnknownHash, err)
	}
}

func TestSaltLengthChecked(t *testing.T) {
	short := make([]byte, SaltLength-1)

	if _, err := NewMurmur3Hasher(short); err != ErrSaltLengthMismatch {
		t.Errorf("murmur3 short salt: want: %v, got: %v", ErrSaltLengthMismatch, err)
	}
	if _, err := NewHighwayHasher(short); err != ErrSaltLengthMismatch {
		t.Errorf("highway short salt: want: %v, got: %v", ErrSaltLengthMismatch, err)
	}
	if _, err := NewMetroHasher(short); err != ErrSaltLengthMismatch {
		t.Errorf("metro short salt: want: %v, got: %v", ErrSaltLengthMismatch, err)
	}
	if _, err := NewSIPHasher(short); err != ErrSaltLengthMismatch {
		t.Errorf("sip short salt: want: %v, got: %v", ErrSaltLengthMismatch, err)
	}
}

func TestHashersDeterministic(t *testing.T) {
	s, err := makeSalt()
	if err != nil {
		t.Fatalf("makeSalt: %v", err)
	}

	for _, typ := range []int{Murmur3, Highway, Metro, Sip} {
		h1, _ := New(typ, s)
		h2, _ := New(typ, s)
		if got1, got2 := h1.Hash64(xxx), h2.Hash64(xxx); got1 != got2 {
			t.Errorf("type %d not deterministic: %d != %d", typ, got1, got2)
		}
	}
}

func TestHashersSalted(t *testing.T) {
	s1, err := makeSalt()
	if err != nil {
		t.Fatalf("makeSalt: %v", err)
	}
	s2, err := makeSalt()
	if err != nil {
		t.Fatalf("makeSalt: %v", err)
	}
	if bytes.Equal(s1, s2) {
		t.Fatal("two random salts are identical")
	}

	for _, typ := range []int{Murmur3, Highway, Metro, Sip} {
		h1, _ := New(typ, s1)
		h2, _ := New(typ, s2)
		if h1.Hash64(xxx) == h2.Hash64(xxx) {
			t.Errorf("type %d ignores its salt", typ)
		}
	}
}

func TestNewSalt(t *testing.T) {
	s1, err := NewSalt(42)
	if err != nil {
		t.Fatalf("NewSalt: %v", err)
	}
	if len(s1) != SaltLength {
		t.Fatalf("salt length: want: %d, got: %d", SaltLength, len(s1))
	}

	s2, err := NewSalt(42)
	if err != nil {
		t.Fatalf("NewSalt: %v", err)
	}
	if !bytes.Equal(s1, s2) {
		t.Error("same seed expanded to different salts")
	}

	s3, err := NewSalt(43)
	if err != nil {
		t.Fatalf("NewSalt: %v", err)
	}
	if bytes.Equal(s1, s3) {
		t.Error("different seeds expanded to the same salt")
	}
}

func TestRandomSeed(t *testing.T) {
	s1, err := RandomSeed()
	if err != nil {
		t.Fatalf("RandomSeed: %v", err)
	}
	s2, err := RandomSeed()
	if err != nil {
		t.Fatalf("RandomSeed: %v", err)
	}
	if s1 == s2 {
		t.Error("two random seeds are identical")
	}
}

func BenchmarkMurmur3(b *testing.B) {
	s, _ := makeSalt()
	h, _ := NewMurmur3Hasher(s)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Hash64(xxx)
	}
}

func BenchmarkHighway(b *testing.B) {
	s, _ := makeSalt()
	h, _ := NewHighwayHasher(s)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Hash64(xxx)
	}
}

func BenchmarkMetro(b *testing.B) {
	s, _ := makeSalt()
	h, _ := NewMetroHasher(s)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Hash64(xxx)
	}
}

func BenchmarkSIP(b *testing.B) {
	s, _ := makeSalt()
	h, _ := NewSIPHasher(s)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Hash64(xxx)
	}
}
