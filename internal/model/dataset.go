package model

// DatasetInfo is the typed content of a country's info.json
type DatasetInfo struct {
	Country    string `json:"country" yaml:"country"`
	FirstNames Sexes  `json:"first_names" yaml:"first_names"`
	LastNames  Sexes  `json:"last_names" yaml:"last_names"`
}

// SexesFor returns the sex codes declared for a category
func (i *DatasetInfo) SexesFor(c Category) Sexes {
	switch c {
	case FirstName:
		return i.FirstNames
	case LastName:
		return i.LastNames
	default:
		return nil
	}
}

// BucketFile is one (year, sex) name population.
// Totals holds cumulative weights aligned positionally with Names.
type BucketFile struct {
	Names  []string  `json:"Names"`
	Totals []float64 `json:"Totals"`
}

// CountrySummary lists the sex codes a country supports per category
type CountrySummary struct {
	FirstNames Sexes `json:"first_names" yaml:"first_names"`
	LastNames  Sexes `json:"last_names" yaml:"last_names"`
}

// Summary maps a country code to what the dataset offers for it
type Summary map[string]CountrySummary
