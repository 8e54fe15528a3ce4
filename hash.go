package hermosa

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"
)

// saltedKeySize is the size of the buffer passed to murmur3: the element's
// 32-bit hash code (big-endian) followed by one salt byte.
const saltedKeySize = 5

// HashCoder is implemented by elements that can be recorded in a [Filter].
//
// HashCode must be deterministic: logically equal elements must return the
// same value on every call for the lifetime of the filter. A filter cannot
// detect a violation, and an unstable hash code breaks the no false
// negatives guarantee.
type HashCoder interface {
	HashCode() int32
}

// BytesHashCode derives a 32-bit hash code for data by folding its xxh3 hash.
func BytesHashCode(data []byte) int32 {
	return fold(xxh3.Hash(data))
}

// StringHashCode derives a 32-bit hash code for s without allocating.
func StringHashCode(s string) int32 {
	return fold(xxh3.HashString(s))
}

// fold mixes both halves of a 64-bit hash into 32 bits.
func fold(h uint64) int32 {
	return int32(uint32(h) ^ uint32(h>>32))
}

// saltedHash returns the murmur3 hash of code followed by salt.
func saltedHash(code int32, salt byte) uint32 {
	var buf [saltedKeySize]byte
	binary.BigEndian.PutUint32(buf[:4], uint32(code))
	buf[4] = salt
	return murmur3.Sum32(buf[:])
}

// cellIndex reduces a hash to a cell index. The hash is read as a signed
// 32-bit value and its absolute value is taken in unsigned space, so
// MinInt32 maps to 2^31 instead of staying negative.
func cellIndex(h uint32, cells uint64) uint64 {
	abs := h
	if int32(h) < 0 {
		abs = -h
	}
	return uint64(abs) % cells
}

// GenerateSalts draws k distinct salt bytes from r.
func GenerateSalts(k uint32, r *rand.Rand) ([]byte, error) {
	if k == 0 || k > MaxHashFunctions {
		return nil, fmt.Errorf("%w: hash function count %d outside [1, %d]", ErrInvalidConfiguration, k, MaxHashFunctions)
	}

	perm := r.Perm(MaxHashFunctions)
	salts := make([]byte, k)
	for i := range salts {
		salts[i] = byte(perm[i])
	}
	return salts, nil
}

// checkSalts verifies that salts holds exactly k distinct values.
func checkSalts(salts []byte, k uint32) error {
	if uint64(len(salts)) != uint64(k) {
		return fmt.Errorf("%w: %w: got %d salts, need %d", ErrInvalidConfiguration, ErrInvalidSalts, len(salts), k)
	}

	var seen [MaxHashFunctions]bool
	for i, s := range salts {
		if seen[s] {
			return fmt.Errorf("%w: %w: salt %d at position %d is repeated", ErrInvalidConfiguration, ErrInvalidSalts, s, i)
		}
		seen[s] = true
	}
	return nil
}
