// Package presenter renders dataset summaries and drawn names for terminal output
package presenter

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/mrled/randname/internal/model"
	"github.com/mrled/randname/internal/service/resolver"
)

// Format selects a summary rendering
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists every supported rendering
var Formats = []Format{FormatText, FormatJSON, FormatYAML}

// ParseFormat accepts a format name case-insensitively
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Formats, f) {
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (expected text, json or yaml)", s)
}

// WriteSummary renders a dataset summary in the given format
func WriteSummary(w io.Writer, summary model.Summary, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(summary); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		return writeSummaryText(w, summary)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeSummaryText(w io.Writer, summary model.Summary) error {
	if len(summary) == 0 {
		_, err := fmt.Fprintln(w, "No countries found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "COUNTRY\tFIRST NAMES\tLAST NAMES")
	for _, code := range sortedKeys(summary) {
		cs := summary[code]
		fmt.Fprintf(tw, "%s\t%s\t%s\n", code, joinSexes(cs.FirstNames), joinSexes(cs.LastNames))
	}
	return tw.Flush()
}

// WriteCountries prints one country code per line
func WriteCountries(w io.Writer, countries []string) error {
	for _, c := range countries {
		if _, err := fmt.Fprintln(w, c); err != nil {
			return err
		}
	}
	return nil
}

// DescribeResult explains where a drawn name came from.
// Example: "Maria (first, PL, F, 2020; requested 2025)".
func DescribeResult(r *resolver.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s, %s, %s, %d", r.Name, r.Category, r.Country, r.Sex, r.Year)
	if r.YearSubstituted && r.RequestedYear != nil {
		fmt.Fprintf(&b, "; requested %d", *r.RequestedYear)
	}
	b.WriteString(")")
	return b.String()
}

func sortedKeys(summary model.Summary) []string {
	keys := make([]string, 0, len(summary))
	for k := range summary {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func joinSexes(s model.Sexes) string {
	if len(s) == 0 {
		return "-"
	}
	return strings.Join(s.Strings(), ",")
}
