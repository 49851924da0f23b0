package model

import (
	"strconv"
	"strings"
)

// InfoFile is the per-country metadata file name
const InfoFile = "info.json"

// BucketName returns the file name of the (year, sex) bucket
func BucketName(year int, sex Sex) string {
	return strconv.Itoa(year) + "_" + string(sex)
}

// BucketYear extracts the year token of a bucket file name
func BucketYear(name string) (int, bool) {
	token, _, _ := strings.Cut(name, "_")
	year, err := strconv.Atoi(token)
	if err != nil {
		return 0, false
	}
	return year, true
}

// BucketSex extracts the sex token of a bucket file name.
// ok is false when the name has no "_" separator.
func BucketSex(name string) (Sex, bool) {
	parts := strings.Split(name, "_")
	if len(parts) < 2 {
		return "", false
	}
	return Sex(parts[1]), true
}
