package resolver

import (
	"errors"
	"sort"

	"github.com/mrled/randname/internal/model"
)

var (
	// ErrEmptyBucket is returned when a bucket holds no names
	ErrEmptyBucket = errors.New("bucket holds no names")

	// ErrZeroWeight is returned for a weighted draw from a bucket whose total weight is not positive
	ErrZeroWeight = errors.New("bucket total weight must be greater than zero")
)

// drawName picks one name from a bucket.
//
// A weighted draw takes u uniformly from [0, total) and returns the first
// name whose cumulative total exceeds u, so each name is drawn with
// probability proportional to its own share of the total. Names whose share
// is zero are never drawn.
func drawName(r Rand, bucket *model.BucketFile, weighted bool) (string, error) {
	n := len(bucket.Names)
	if n == 0 {
		return "", ErrEmptyBucket
	}
	if !weighted {
		return bucket.Names[r.IntN(n)], nil
	}

	totals := bucket.Totals[:min(n, len(bucket.Totals))]
	if len(totals) == 0 || totals[len(totals)-1] <= 0 {
		return "", ErrZeroWeight
	}

	u := r.Float64() * totals[len(totals)-1]
	i := sort.Search(len(totals), func(i int) bool { return totals[i] > u })
	if i == len(totals) {
		i = len(totals) - 1
	}
	return bucket.Names[i], nil
}
