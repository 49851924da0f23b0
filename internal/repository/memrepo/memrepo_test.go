package memrepo

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrled/randname/internal/model"
	"github.com/mrled/randname/internal/schema"
)

const testSnapshot = `{
  "US": {
    "info": {"country": "US", "first_names": ["M", "F"], "last_names": ["N"]},
    "first_names": {
      "2020_F": {"Names": ["Alice", "Ana"], "Totals": [1, 2]},
      "2010_F": {"Names": ["Mary"], "Totals": [3]}
    },
    "last_names": {
      "2020_N": {"Names": ["Smith"], "Totals": [1]}
    }
  },
  "ES": {
    "info": {"country": "ES", "first_names": ["M"], "last_names": ["N"]},
    "first_names": {"2020_M": {"Names": ["Jose"], "Totals": [1]}},
    "last_names": {"2020_N": {"Names": ["Garcia"], "Totals": [1]}}
  }
}`

func TestMemoryRepository_FromJsonString(t *testing.T) {
	repo, err := NewMemoryRepositoryFromJsonString(testSnapshot)
	require.NoError(t, err)
	ctx := context.Background()

	countries, err := repo.Countries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ES", "US"}, countries)

	info, err := repo.Info(ctx, "US")
	require.NoError(t, err)
	assert.Equal(t, model.Sexes{model.Neutral}, info.LastNames)

	names, err := repo.BucketNames(ctx, "US", model.FirstName)
	require.NoError(t, err)
	assert.Equal(t, []string{"2010_F", "2020_F"}, names)

	bucket, err := repo.Bucket(ctx, "US", model.FirstName, "2020_F")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Ana"}, bucket.Names)
}

func TestMemoryRepository_NotFound(t *testing.T) {
	repo, err := NewMemoryRepositoryFromJsonString(testSnapshot)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = repo.Info(ctx, "PL")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = repo.BucketNames(ctx, "PL", model.FirstName)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = repo.Bucket(ctx, "US", model.FirstName, "1999_F")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestMemoryRepository_RejectsInvalidDocuments(t *testing.T) {
	_, err := NewMemoryRepositoryFromJsonString(`{"US": {"info": {"country": "US", "first_names": [], "last_names": ["N"]}}}`)
	assert.ErrorIs(t, err, schema.ErrSchema)

	_, err = NewMemoryRepositoryFromJsonString(`{"US": {
		"info": {"country": "US", "first_names": ["M"], "last_names": ["N"]},
		"first_names": {"2020_M": {"Names": ["Bob", "Tom"], "Totals": [1]}}
	}}`)
	assert.ErrorIs(t, err, schema.ErrSchema)

	_, err = NewMemoryRepositoryFromJsonString(`not json`)
	assert.Error(t, err)
}

func TestMemoryRepository_ReloadsChangedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte(testSnapshot), 0o644))

	repo, err := NewMemoryRepositoryFromFile(path)
	require.NoError(t, err)
	ctx := context.Background()

	countries, err := repo.Countries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ES", "US"}, countries)

	updated := `{"PL": {
		"info": {"country": "PL", "first_names": ["M"], "last_names": ["M"]},
		"first_names": {"2020_M": {"Names": ["Jan"], "Totals": [1]}},
		"last_names": {"2020_M": {"Names": ["Nowak"], "Totals": [1]}}
	}}`
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))
	// Make sure the change is visible even on filesystems with coarse timestamps
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))

	countries, err = repo.Countries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"PL"}, countries)
}

func TestMemoryRepository_MissingFile(t *testing.T) {
	_, err := NewMemoryRepositoryFromFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
