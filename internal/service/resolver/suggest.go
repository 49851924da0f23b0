package resolver

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// suggestCountry returns the known code closest to given, or "" when none is
// close enough to be a plausible typo
func suggestCountry(given string, countries []string) string {
	if given == "" {
		return ""
	}

	needle := strings.ToUpper(given)
	threshold := max(1, len(needle)/2)
	best, bestDist := "", threshold+1
	for _, c := range countries {
		if d := levenshtein.ComputeDistance(needle, strings.ToUpper(c)); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
