package resolver

import (
	"slices"
	"sort"

	"github.com/mrled/randname/internal/model"
)

// availableYears returns the distinct, ascending years found in bucket names.
// Names without a numeric year token are skipped.
func availableYears(bucketNames []string) []int {
	years := make([]int, 0, len(bucketNames))
	for _, name := range bucketNames {
		if year, ok := model.BucketYear(name); ok {
			years = append(years, year)
		}
	}
	slices.Sort(years)
	return slices.Compact(years)
}

// snapYear maps a requested year onto the available ones: the smallest
// available year not below the request, or the largest one when the request
// is above all of them. years must be sorted and non-empty.
func snapYear(years []int, requested int) int {
	i := sort.SearchInts(years, requested)
	if i == len(years) {
		i = len(years) - 1
	}
	return years[i]
}

// inRange reports whether requested lies within the bounds of years
func inRange(years []int, requested int) bool {
	return requested >= years[0] && requested <= years[len(years)-1]
}
