package commands

import (
	"github.com/spf13/cobra"

	"github.com/mrled/randname/internal/model"
	"github.com/mrled/randname/internal/service/resolver"
)

// NameFlags holds the flags shared by the name drawing commands
type NameFlags struct {
	Country   string
	Sex       string
	Year      int
	NoWeights bool
	Count     int
	Explain   bool
}

// addNameFlags adds the query flags to a name drawing command
func addNameFlags(cmd *cobra.Command, flags *NameFlags) {
	cmd.Flags().StringVarP(&flags.Country, "country", "c", "", "Country code (random if not specified)")
	cmd.Flags().StringVarP(&flags.Sex, "sex", "s", "", "Sex code: M, F or N (random if not specified)")
	cmd.Flags().IntVarP(&flags.Year, "year", "y", 0, "Year of birth (random if not specified)")
	cmd.Flags().BoolVar(&flags.NoWeights, "no-weights", false, "Draw uniformly instead of by popularity")
	cmd.Flags().IntVarP(&flags.Count, "count", "n", 1, "Number of names to draw")
	cmd.Flags().BoolVarP(&flags.Explain, "explain", "x", false, "Show the country, sex and year each name was drawn from")
}

// query builds a resolver query; the year only applies when the flag was given
func (f *NameFlags) query(cmd *cobra.Command) (resolver.Query, error) {
	if f.Count < 1 {
		return resolver.Query{}, &UsageError{errCount}
	}

	q := resolver.Query{
		Country:       f.Country,
		Sex:           model.NormalizeSex(f.Sex),
		IgnoreWeights: f.NoWeights,
	}
	if cmd.Flags().Changed("year") {
		q.Year = resolver.Year(f.Year)
	}
	return q, nil
}
