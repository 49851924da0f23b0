package repository

import (
	"context"
	"fmt"

	"github.com/mrled/randname/internal/model"
)

// DatasetRepository gives read-only access to a name dataset.
// Implementations that cache must revalidate their source on every call so
// that a changed dataset is never served stale. Missing entries are reported
// with errors matching fs.ErrNotExist.
type DatasetRepository interface {
	// Countries lists the country codes of the dataset in ascending order
	Countries(ctx context.Context) ([]string, error)

	// Info returns the parsed info.json of a country
	Info(ctx context.Context, country string) (*model.DatasetInfo, error)

	// BucketNames lists the bucket file names of a country's category
	BucketNames(ctx context.Context, country string, category model.Category) ([]string, error)

	// Bucket loads one bucket file
	Bucket(ctx context.Context, country string, category model.Category, name string) (*model.BucketFile, error)
}

// Summarize collects the declared sex codes of every country, keyed by info.json's country field
func Summarize(ctx context.Context, repo DatasetRepository) (model.Summary, error) {
	countries, err := repo.Countries(ctx)
	if err != nil {
		return nil, err
	}

	summary := make(model.Summary, len(countries))
	for _, country := range countries {
		info, err := repo.Info(ctx, country)
		if err != nil {
			return nil, fmt.Errorf("failed to read info for %s: %w", country, err)
		}
		if _, exists := summary[info.Country]; exists {
			continue
		}
		summary[info.Country] = model.CountrySummary{
			FirstNames: info.FirstNames,
			LastNames:  info.LastNames,
		}
	}
	return summary, nil
}
