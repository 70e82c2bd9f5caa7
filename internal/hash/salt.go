package hash

import (
	crand "crypto/rand"
	"encoding/binary"

	"github.com/alecthomas/unsafeslice"
	"github.com/zeebo/blake3"
)

// NewSalt expands a 64 bit seed to SaltLength bytes of salt material
// with a blake3 XOF. The expansion is deterministic: the same seed
// always yields the same salt.
func NewSalt(seed uint64) ([]byte, error) {
	var salt = make([]byte, SaltLength)

	h := blake3.New()
	if _, err := h.Write(unsafeslice.ByteSliceFromUint64Slice([]uint64{seed})); err != nil {
		return nil, err
	}

	drbg := h.Digest()
	if _, err := drbg.Read(salt); err != nil {
		return nil, err
	}

	return salt, nil
}

// RandomSeed draws a fresh 64 bit seed from crypto/rand for callers
// that do not bring their own seed material.
func RandomSeed() (uint64, error) {
	var rb [8]byte
	if _, err := crand.Read(rb[:]); err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint64(rb[:]), nil
}
