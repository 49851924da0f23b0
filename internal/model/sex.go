package model

import (
	"slices"
	"strings"
)

// Sex is a single-letter code tagging the demographic bucket of a name list.
// The zero value means "unset" and lets the resolver choose at random.
type Sex string

const (
	Male    Sex = "M"
	Female  Sex = "F"
	Neutral Sex = "N"
	AnySex  Sex = ""
)

// RecognizedSexes are the tokens a caller may ask for, besides AnySex
var RecognizedSexes = []Sex{Male, Female, Neutral}

// NormalizeSex trims and upper-cases a caller supplied token
func NormalizeSex(s string) Sex {
	return Sex(strings.ToUpper(strings.TrimSpace(s)))
}

// IsRecognized reports whether s is one of the global sex tokens or unset
func (s Sex) IsRecognized() bool {
	return s == AnySex || slices.Contains(RecognizedSexes, s)
}

// Sexes is a list of sex codes as declared in info.json
type Sexes []Sex

// Contains reports whether the list holds s
func (ss Sexes) Contains(s Sex) bool {
	return slices.Contains(ss, s)
}

// Strings converts the list for display and error payloads
func (ss Sexes) Strings() []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = string(s)
	}
	return out
}
