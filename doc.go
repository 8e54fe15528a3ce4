// Package hermosa provides a counting bloom filter for Go.
//
// A counting bloom filter replaces each bit of a bloom filter with a small
// counter, so besides answering "was this element seen?" it can estimate
// how many times an element was seen. Like a regular bloom filter it never
// stores the elements and never under-reports: an element recorded n times
// always reads at least min(n, 127). Hash collisions can make an estimate
// too high, and can make an element that was never recorded read nonzero
// at a bounded false positive rate.
//
// # Architecture
//
// A [Filter] holds one byte per counter. Counters saturate at [MaxCount]
// (127). Once a counter reaches the cap it stays there; it never wraps.
//
// Each element is reduced to a 32-bit hash code. For each of the k hash
// functions, the hash code is written big-endian into a 5-byte buffer with
// one salt byte appended, and the buffer is hashed with Murmur3-32. The
// absolute value of the result, taken in unsigned space, modulo the number
// of cells, is the cell index. The k salts are distinct bytes drawn at
// construction and fixed for the life of the filter.
//
// Recording an element increments each of its k cells and returns the
// smallest value seen before the increments. Estimating an element returns
// the smallest current value of its k cells.
//
// # Elements
//
// Byte slices and strings are recorded directly with [Filter.Record] and
// [Filter.RecordString]; their hash codes come from xxh3. Other types
// either implement [HashCoder] and use [Filter.Put], or are wrapped with
// [Typed] and a hash code function.
//
// Hash codes must be deterministic. If two logically equal elements hash
// differently, the filter can under-report them and no error is raised.
//
// # Choosing Parameters
//
// Use [New] with your expected number of distinct elements and desired
// false positive rate:
//
//	// Filter for 1 million elements with 1% false positive rate
//	f, err := hermosa.New(1_000_000, 0.01)
//
// The number of cells m and hash functions k are derived as
//
//	m = ceil(-n * ln(p) / ln(2)²)
//	k = ceil((m / n) * 0.7)
//
// Invalid inputs (n = 0, p outside (0, 1), or derived m or k out of range)
// are rejected with [ErrInvalidConfiguration]. For reproducible layouts
// in tests, [NewWithSalts] and [NewWithRand] fix the salt table.
//
// # Memory Usage
//
//	memory_bytes = m
//
// Example: 1 million elements at 1% FP rate ≈ 9.6 MB
//
// # Thread Safety
//
// [Filter] is NOT thread-safe and never will be: it uses no locks and no
// atomics, and each operation is O(k) with no allocation. Concurrent use
// loses updates. Use external synchronization, or shard keys across
// several filters each owned by one goroutine.
//
// # Non-goals
//
// Filters cannot be resized, merged, serialized, or have elements removed.
package hermosa
