package fsrepo

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrled/randname/internal/model"
	"github.com/mrled/randname/internal/schema"
	"github.com/mrled/randname/internal/testutil"
)

func newTestRepository() *Repository {
	ds := testutil.NewDataset().
		Country("US", []string{"M", "F"}, []string{"N"}).
		Bucket("US", "first_names", "2020_F", []string{"Alice", "Ana"}, []float64{1, 2}).
		Bucket("US", "first_names", "2020_M", []string{"Bob"}, []float64{1}).
		Bucket("US", "last_names", "2020_N", []string{"Smith"}, []float64{5}).
		Country("PL", []string{"M"}, []string{"M"}).
		Raw("README.md", "not a country")
	return New(ds.FS())
}

func TestRepository_Countries(t *testing.T) {
	countries, err := newTestRepository().Countries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"PL", "US"}, countries)
}

func TestRepository_Info(t *testing.T) {
	info, err := newTestRepository().Info(context.Background(), "US")
	require.NoError(t, err)
	assert.Equal(t, "US", info.Country)
	assert.Equal(t, model.Sexes{model.Male, model.Female}, info.FirstNames)

	_, err = newTestRepository().Info(context.Background(), "XX")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestRepository_BucketNames(t *testing.T) {
	names, err := newTestRepository().BucketNames(context.Background(), "US", model.FirstName)
	require.NoError(t, err)
	assert.Equal(t, []string{"2020_F", "2020_M"}, names)

	names, err = newTestRepository().BucketNames(context.Background(), "PL", model.LastName)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestRepository_Bucket(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	bucket, err := repo.Bucket(ctx, "US", model.FirstName, "2020_F")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Ana"}, bucket.Names)
	assert.Equal(t, []float64{1, 2}, bucket.Totals)

	_, err = repo.Bucket(ctx, "US", model.FirstName, "1999_F")
	var pathErr *fs.PathError
	require.ErrorAs(t, err, &pathErr)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestRepository_BucketSchemaViolation(t *testing.T) {
	ds := testutil.NewDataset().
		Country("US", []string{"M"}, []string{"N"}).
		Raw("US/first_names/2020_M", `{"Names": ["Bob"]}`)

	_, err := New(ds.FS()).Bucket(context.Background(), "US", model.FirstName, "2020_M")
	assert.ErrorIs(t, err, schema.ErrSchema)
}

func TestRepository_MissingRoot(t *testing.T) {
	repo := New(os.DirFS(filepath.Join(t.TempDir(), "missing")))
	_, err := repo.Countries(context.Background())
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
