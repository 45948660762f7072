// Package random builds the seeded randomness sources used by combat.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	"golang.org/x/crypto/blake2b"
)

// NewSource returns a deterministic PCG-backed generator for seed.
// The result satisfies dice.Source and is not safe for concurrent use.
func NewSource(seed int64) *rand.Rand {
	s := uint64(seed)
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

// NewSeed returns a fresh non-negative seed from the OS entropy source.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("reading entropy: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:]) >> 1), nil
}

// DeriveSeed deterministically derives the n-th child seed of master.
// Children of the same master are independent of each other, so a batch of
// runs can be replayed one by one.
func DeriveSeed(master int64, n int) int64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(master))
	binary.LittleEndian.PutUint64(buf[8:], uint64(n))

	sum := blake2b.Sum256(buf[:])
	return int64(binary.LittleEndian.Uint64(sum[:8]) >> 1)
}
