package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mrled/randname/internal/model"
	"github.com/mrled/randname/internal/repository/memrepo"
)

// WriteSnapshot exports every country of repo into a single snapshot document
func WriteSnapshot(ctx context.Context, repo DatasetRepository, w io.Writer) error {
	countries, err := repo.Countries(ctx)
	if err != nil {
		return err
	}

	snap := make(memrepo.Snapshot, len(countries))
	for _, country := range countries {
		info, err := repo.Info(ctx, country)
		if err != nil {
			return fmt.Errorf("failed to read info for %s: %w", country, err)
		}
		rawInfo, err := json.Marshal(info)
		if err != nil {
			return err
		}

		sc := memrepo.SnapshotCountry{Info: rawInfo}
		for _, category := range model.Categories {
			buckets, err := snapshotBuckets(ctx, repo, country, category)
			if err != nil {
				return err
			}
			if category == model.FirstName {
				sc.FirstNames = buckets
			} else {
				sc.LastNames = buckets
			}
		}
		snap[country] = sc
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(snap)
}

func snapshotBuckets(ctx context.Context, repo DatasetRepository, country string, category model.Category) (map[string]json.RawMessage, error) {
	names, err := repo.BucketNames(ctx, country, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s/%s: %w", country, category.Dir(), err)
	}

	out := make(map[string]json.RawMessage, len(names))
	for _, name := range names {
		bucket, err := repo.Bucket(ctx, country, category, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s/%s/%s: %w", country, category.Dir(), name, err)
		}
		raw, err := json.Marshal(bucket)
		if err != nil {
			return nil, err
		}
		out[name] = raw
	}
	return out, nil
}
