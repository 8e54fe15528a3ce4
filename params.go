package hermosa

import (
	"fmt"
	"math"
)

const (
	// MaxCount is the saturation cap of every counter.
	MaxCount = 127
	// MaxHashFunctions is the largest supported k. Each hash function is
	// identified by a distinct single-byte salt.
	MaxHashFunctions = 256
	// MaxCells bounds the counter array (one byte per cell, 1 TiB).
	MaxCells = uint64(1) << 40
	// ln2Squared is ln(2)^2.
	ln2Squared = 0.4804530139182014
	// hashFunctionRatio scales cells-per-item into a hash function count.
	hashFunctionRatio = 0.7
)

// CellCount returns the number of counters needed to hold expectedItems at
// the target false positive rate:
//
//	ceil(-n * ln(p) / ln(2)^2)
//
// The result is not validated. Use [OptimalParams] for checked parameters.
func CellCount(expectedItems uint64, fpRate float64) uint64 {
	return uint64(math.Ceil(-float64(expectedItems) * math.Log(fpRate) / ln2Squared))
}

// HashFunctionCount returns ceil((cells / expectedItems) * 0.7).
// It returns 0 when expectedItems is 0.
func HashFunctionCount(cells, expectedItems uint64) uint32 {
	if expectedItems == 0 {
		return 0
	}
	return uint32(math.Ceil(float64(cells) / float64(expectedItems) * hashFunctionRatio))
}

// OptimalParams validates the inputs and returns the cell count and number
// of hash functions for a filter. Every failure wraps ErrInvalidConfiguration.
func OptimalParams(expectedItems uint64, fpRate float64) (cells uint64, k uint32, err error) {
	if expectedItems == 0 {
		return 0, 0, fmt.Errorf("%w: expected items must be positive", ErrInvalidConfiguration)
	}
	if math.IsNaN(fpRate) || fpRate <= 0 || fpRate >= 1 {
		return 0, 0, fmt.Errorf("%w: false positive rate %v outside (0, 1)", ErrInvalidConfiguration, fpRate)
	}

	// Checked in float space first so the uint64 conversion cannot overflow.
	cellsFloat := math.Ceil(-float64(expectedItems) * math.Log(fpRate) / ln2Squared)
	if cellsFloat < 1 || cellsFloat > float64(MaxCells) {
		return 0, 0, fmt.Errorf("%w: cell count %.0f outside [1, %d]", ErrInvalidConfiguration, cellsFloat, MaxCells)
	}
	cells = CellCount(expectedItems, fpRate)

	kFloat := math.Ceil(float64(cells) / float64(expectedItems) * hashFunctionRatio)
	if kFloat < 1 || kFloat > MaxHashFunctions {
		return 0, 0, fmt.Errorf("%w: hash function count %.0f outside [1, %d]", ErrInvalidConfiguration, kFloat, MaxHashFunctions)
	}
	k = HashFunctionCount(cells, expectedItems)

	return cells, k, nil
}

// EstimateFalsePositiveRate estimates the chance that an element never
// recorded gets a nonzero estimate after items distinct records.
// Formula: (1 - e^(-kn/m))^k
func EstimateFalsePositiveRate(cells uint64, k uint32, items uint64) float64 {
	m := float64(cells)
	n := float64(items)
	kf := float64(k)

	if m == 0 || n == 0 {
		return 0
	}

	return math.Pow(1-math.Exp(-kf*n/m), kf)
}
