package hermosa

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaltedHash(t *testing.T) {
	// Reference values for Murmur3-32 (seed 0) over the big-endian hash code
	// followed by the salt byte.
	for _, tc := range []struct {
		code  int32
		salt  byte
		hash  uint32
		index uint64
	}{
		{0, 0, 0x2d4db2f0, 2446},
		{1, 7, 0x340c6293, 9401},
		{-1, 255, 0x7a12e75c, 742},
		{123456789, 42, 0xd5b697c5, 3609}, // negative as int32
	} {
		h := saltedHash(tc.code, tc.salt)
		require.Equal(t, tc.hash, h, "code=%d salt=%d", tc.code, tc.salt)
		require.Equal(t, tc.index, cellIndex(h, 9586), "code=%d salt=%d", tc.code, tc.salt)
	}
}

func TestCellIndexMinInt32(t *testing.T) {
	const minInt32 = uint32(1) << 31

	require.Equal(t, uint64(1)<<31, cellIndex(minInt32, MaxCells))
	require.Equal(t, uint64(1<<31)%9586, cellIndex(minInt32, 9586))
	require.Equal(t, uint64(0), cellIndex(minInt32, 2))

	// -1 and 1 share an index.
	require.Equal(t, uint64(1), cellIndex(0xffffffff, 10))
	require.Equal(t, cellIndex(1, 10), cellIndex(0xffffffff, 10))
	require.Equal(t, uint64(0), cellIndex(0, 10))
}

func TestHashCodes(t *testing.T) {
	require.Equal(t, BytesHashCode([]byte("hello")), StringHashCode("hello"))
	require.Equal(t, StringHashCode(""), BytesHashCode(nil))
	require.NotEqual(t, StringHashCode("hello"), StringHashCode("hellp"))
	require.Equal(t, int32(0), fold(0))
	require.Equal(t, int32(-1), fold(0x00000000ffffffff))
	require.Equal(t, int32(0), fold(0xffffffffffffffff))
}

func TestGenerateSalts(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 7))

	for _, k := range []uint32{1, 7, 100, MaxHashFunctions} {
		salts, err := GenerateSalts(k, r)
		require.NoError(t, err)
		require.Len(t, salts, int(k))
		require.NoError(t, checkSalts(salts, k))
	}

	_, err := GenerateSalts(0, r)
	require.ErrorIs(t, err, ErrInvalidConfiguration)
	_, err = GenerateSalts(MaxHashFunctions+1, r)
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestCheckSalts(t *testing.T) {
	require.NoError(t, checkSalts([]byte{0, 255}, 2))
	require.ErrorIs(t, checkSalts([]byte{0, 0}, 2), ErrInvalidSalts)
	require.ErrorIs(t, checkSalts([]byte{0}, 2), ErrInvalidSalts)
	require.ErrorIs(t, checkSalts([]byte{0, 1, 2}, 2), ErrInvalidConfiguration)
}
