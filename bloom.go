package hermosa

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

var (
	// ErrInvalidConfiguration is returned when a filter cannot be built from
	// the given parameters.
	ErrInvalidConfiguration = errors.New("hermosa: invalid configuration")

	// ErrInvalidSalts is returned alongside ErrInvalidConfiguration when an
	// injected salt table has the wrong length or repeats a value.
	ErrInvalidSalts = errors.New("hermosa: invalid salt table")
)

// Filter is a counting bloom filter with saturating 7-bit counters stored
// one per byte.
//
// Each element maps to k cells, one per salt. Recording an element bumps
// each of its cells up to [MaxCount]; the estimate for an element is the
// smallest of its cells. Collisions can only raise an estimate, so an
// element that was recorded n times never reads lower than min(n, MaxCount).
//
// Filter is NOT safe for concurrent use. No locks or atomics are used, and
// concurrent calls lose updates. Guard it with a mutex or shard across
// several filters when more than one goroutine needs access.
type Filter struct {
	cells []uint8 // Saturating counters, one byte each
	salts []byte  // One distinct salt per hash function
	count uint64  // Number of record calls
}

// New creates a counting bloom filter sized for expectedItems distinct
// elements at the target false positive rate, with randomly drawn salts.
func New(expectedItems uint64, fpRate float64) (*Filter, error) {
	return NewWithRand(expectedItems, fpRate, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// NewWithRand is like New but draws the salts from r. A seeded r makes the
// cell layout reproducible.
func NewWithRand(expectedItems uint64, fpRate float64, r *rand.Rand) (*Filter, error) {
	cells, k, err := OptimalParams(expectedItems, fpRate)
	if err != nil {
		return nil, err
	}

	salts, err := GenerateSalts(k, r)
	if err != nil {
		return nil, err
	}

	return newFilter(cells, salts), nil
}

// NewWithSalts is like New but uses the given salt table, which must hold
// exactly as many distinct values as the derived hash function count.
func NewWithSalts(expectedItems uint64, fpRate float64, salts []byte) (*Filter, error) {
	cells, k, err := OptimalParams(expectedItems, fpRate)
	if err != nil {
		return nil, err
	}
	if err := checkSalts(salts, k); err != nil {
		return nil, err
	}

	return newFilter(cells, salts), nil
}

// NewWithParams creates a filter with an explicit cell count and salt table.
// The number of salts is the number of hash functions.
func NewWithParams(cells uint64, salts []byte) (*Filter, error) {
	if cells == 0 || cells > MaxCells {
		return nil, fmt.Errorf("%w: cell count %d outside [1, %d]", ErrInvalidConfiguration, cells, MaxCells)
	}
	if len(salts) == 0 || len(salts) > MaxHashFunctions {
		return nil, fmt.Errorf("%w: hash function count %d outside [1, %d]", ErrInvalidConfiguration, len(salts), MaxHashFunctions)
	}
	if err := checkSalts(salts, uint32(len(salts))); err != nil {
		return nil, err
	}

	return newFilter(cells, salts), nil
}

// newFilter allocates the counter array and takes a private copy of salts.
func newFilter(cells uint64, salts []byte) *Filter {
	return &Filter{
		cells: make([]uint8, cells),
		salts: append([]byte(nil), salts...),
	}
}

// Put records e and returns how many times it had likely been recorded
// before this call.
func (f *Filter) Put(e HashCoder) int {
	return f.RecordHash(e.HashCode())
}

// LikelyToContain returns the estimated number of times e was recorded.
// Zero means e was definitely never recorded.
func (f *Filter) LikelyToContain(e HashCoder) int {
	return f.EstimateHash(e.HashCode())
}

// Record records data. See [Filter.RecordHash].
func (f *Filter) Record(data []byte) int {
	return f.RecordHash(BytesHashCode(data))
}

// RecordString records s without allocating. See [Filter.RecordHash].
func (f *Filter) RecordString(s string) int {
	return f.RecordHash(StringHashCode(s))
}

// RecordHash records the element with the given hash code. Each of its k
// cells is incremented unless it is already at MaxCount. The return value
// is the smallest cell value seen before incrementing, which is the
// element's estimate prior to this call.
func (f *Filter) RecordHash(code int32) int {
	n := uint64(len(f.cells))
	minVal := uint8(MaxCount)

	for _, salt := range f.salts {
		idx := cellIndex(saltedHash(code, salt), n)
		v := f.cells[idx]
		if v < minVal {
			minVal = v
		}
		if v < MaxCount {
			f.cells[idx] = v + 1
		}
	}

	f.count++
	return int(minVal)
}

// Estimate returns the estimated number of times data was recorded.
func (f *Filter) Estimate(data []byte) int {
	return f.EstimateHash(BytesHashCode(data))
}

// EstimateString returns the estimated number of times s was recorded.
func (f *Filter) EstimateString(s string) int {
	return f.EstimateHash(StringHashCode(s))
}

// EstimateHash returns the smallest current value among the cells of the
// element with the given hash code. It never modifies the filter.
func (f *Filter) EstimateHash(code int32) int {
	n := uint64(len(f.cells))
	minVal := uint8(MaxCount)

	for _, salt := range f.salts {
		v := f.cells[cellIndex(saltedHash(code, salt), n)]
		if v < minVal {
			minVal = v
			if v == 0 {
				break
			}
		}
	}

	return int(minVal)
}

// Indices appends the k cell indices for the element with the given hash
// code to dst, in salt order, and returns the extended slice. Indices may
// repeat.
func (f *Filter) Indices(code int32, dst []uint64) []uint64 {
	n := uint64(len(f.cells))
	for _, salt := range f.salts {
		dst = append(dst, cellIndex(saltedHash(code, salt), n))
	}
	return dst
}

// Cells returns the number of counters in the filter.
func (f *Filter) Cells() uint64 {
	return uint64(len(f.cells))
}

// K returns the number of hash functions used.
func (f *Filter) K() uint32 {
	return uint32(len(f.salts))
}

// Salts returns a copy of the salt table.
func (f *Filter) Salts() []byte {
	return append([]byte(nil), f.salts...)
}

// Count returns the number of record calls, including repeats of the same
// element.
func (f *Filter) Count() uint64 {
	return f.count
}

// EstimatedFillRatio returns the proportion of cells that are nonzero.
func (f *Filter) EstimatedFillRatio() float64 {
	var used uint64
	for _, v := range f.cells {
		if v != 0 {
			used++
		}
	}
	return float64(used) / float64(len(f.cells))
}

// Saturated returns the number of cells that have reached MaxCount.
func (f *Filter) Saturated() uint64 {
	var n uint64
	for _, v := range f.cells {
		if v == MaxCount {
			n++
		}
	}
	return n
}

// EstimatedFalsePositiveRate estimates the current false positive rate,
// treating every record call as a distinct element. Repeated records make
// this an overestimate.
func (f *Filter) EstimatedFalsePositiveRate() float64 {
	return EstimateFalsePositiveRate(f.Cells(), f.K(), f.count)
}
