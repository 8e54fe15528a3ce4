package hermosa

// Typed wraps a Filter with a hash code function for elements of type T, for
// element types that do not implement HashCoder.
//
// Like Filter, Typed is not safe for concurrent use.
type Typed[T any] struct {
	*Filter
	hashCode func(T) int32
}

// NewTyped creates a Typed filter sized for expectedItems at fpRate. hashCode
// must be deterministic for logically equal values.
func NewTyped[T any](expectedItems uint64, fpRate float64, hashCode func(T) int32) (*Typed[T], error) {
	f, err := New(expectedItems, fpRate)
	if err != nil {
		return nil, err
	}
	return WrapTyped(f, hashCode), nil
}

// WrapTyped returns a Typed view of f. Records through the view and through
// f land in the same counters.
func WrapTyped[T any](f *Filter, hashCode func(T) int32) *Typed[T] {
	return &Typed[T]{Filter: f, hashCode: hashCode}
}

// Add records v and returns its estimate prior to this call.
func (t *Typed[T]) Add(v T) int {
	return t.RecordHash(t.hashCode(v))
}

// CountOf returns the estimated number of times v was recorded.
func (t *Typed[T]) CountOf(v T) int {
	return t.EstimateHash(t.hashCode(v))
}
