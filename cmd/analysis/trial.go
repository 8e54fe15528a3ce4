package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	hermosa "github.com/mrphoebs/Hermosa"
)

// Result holds the measurements of one trial.
type Result struct {
	Cells          uint64
	K              uint32
	ObservedFPRate float64
	ExpectedFPRate float64
	FillRatio      float64
	Saturated      uint64
	// MeanOvercount is the average amount by which recorded elements were
	// over-estimated.
	MeanOvercount float64
	// Undercounts is the number of recorded elements whose estimate fell
	// below their true count. Anything other than zero is a bug.
	Undercounts uint64
	Elapsed     time.Duration
}

// Run fills a filter as described by t and probes it. A nil r draws random
// salts.
func Run(t Trial, r *rand.Rand) (Result, error) {
	var (
		f   *hermosa.Filter
		err error
	)
	if r == nil {
		f, err = hermosa.New(t.ExpectedItems, t.FPRate)
	} else {
		f, err = hermosa.NewWithRand(t.ExpectedItems, t.FPRate, r)
	}
	if err != nil {
		return Result{}, fmt.Errorf("trial %q: %w", t.Name, err)
	}

	start := time.Now()
	var key []byte
	for range t.Repeat {
		for i := range t.Inserted {
			key = fmt.Appendf(key[:0], "%s-item-%d", t.Name, i)
			f.Record(key)
		}
	}

	want := min(t.Repeat, hermosa.MaxCount)
	var over, under uint64
	for i := range t.Inserted {
		key = fmt.Appendf(key[:0], "%s-item-%d", t.Name, i)
		got := f.Estimate(key)
		if got < want {
			under++
		} else {
			over += uint64(got - want)
		}
	}

	var fp int
	for i := range t.Probes {
		key = fmt.Appendf(key[:0], "%s-probe-%d", t.Name, i)
		if f.Estimate(key) != 0 {
			fp++
		}
	}

	res := Result{
		Cells:          f.Cells(),
		K:              f.K(),
		ExpectedFPRate: hermosa.EstimateFalsePositiveRate(f.Cells(), f.K(), t.Inserted),
		FillRatio:      f.EstimatedFillRatio(),
		Saturated:      f.Saturated(),
		Undercounts:    under,
		Elapsed:        time.Since(start),
	}
	if t.Probes > 0 {
		res.ObservedFPRate = float64(fp) / float64(t.Probes)
	}
	if t.Inserted > 0 {
		res.MeanOvercount = float64(over) / float64(t.Inserted)
	}
	return res, nil
}
