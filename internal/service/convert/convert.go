// Package convert turns a two-column frequency table into a bucket file.
//
// It is the producer side of the dataset: rows of (name, frequency) become a
// bucket whose Totals are the running sum of the frequencies.
package convert

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mrled/randname/internal/model"
	"github.com/mrled/randname/internal/schema"
)

// DefaultLimit is the maximum number of names written to a bucket
const DefaultLimit = 10000

var (
	ErrColumns   = errors.New("expected two columns: name and frequency")
	ErrFrequency = errors.New("invalid frequency")
	ErrEmpty     = errors.New("no rows to convert")
)

// Options tunes a conversion
type Options struct {
	// Limit caps the number of names kept; zero means DefaultLimit
	Limit int
	// Raw writes frequencies as read instead of accumulating them.
	// The output is not a valid bucket when frequencies decrease.
	Raw bool
	// Language drives title-casing of names; the zero value is language.Und
	Language language.Tag
}

// Convert reads CSV rows from r and writes the resulting bucket JSON to w
func Convert(r io.Reader, w io.Writer, opts Options) (*model.BucketFile, error) {
	bucket, err := Read(r, opts)
	if err != nil {
		return nil, err
	}
	if err := Write(w, bucket, opts); err != nil {
		return nil, err
	}
	return bucket, nil
}

// Write encodes a bucket read with the same options.
// Raw frequencies are not running totals, so that output skips bucket
// validation and is not loadable as a dataset bucket until accumulated.
func Write(w io.Writer, bucket *model.BucketFile, opts Options) error {
	if opts.Raw {
		return json.NewEncoder(w).Encode(bucket)
	}
	return schema.EncodeBucket(w, bucket)
}

// Read parses CSV rows of (name, frequency) into a bucket.
// A first row whose frequency is not a number is treated as a header.
func Read(r io.Reader, opts Options) (*model.BucketFile, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	title := cases.Title(opts.Language)

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	bucket := &model.BucketFile{}
	var total float64
	for line := 1; len(bucket.Names) < limit; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) != 2 {
			return nil, fmt.Errorf("line %d: %w, got %d", line, ErrColumns, len(record))
		}

		freq, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			if line == 1 {
				continue
			}
			return nil, fmt.Errorf("line %d: %w: %q", line, ErrFrequency, record[1])
		}
		if freq < 0 {
			return nil, fmt.Errorf("line %d: %w: negative value %v", line, ErrFrequency, freq)
		}

		total += freq
		bucket.Names = append(bucket.Names, title.String(strings.TrimSpace(record[0])))
		if opts.Raw {
			bucket.Totals = append(bucket.Totals, freq)
		} else {
			bucket.Totals = append(bucket.Totals, total)
		}
	}

	if len(bucket.Names) == 0 {
		return nil, ErrEmpty
	}
	return bucket, nil
}
