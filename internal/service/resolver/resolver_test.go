package resolver

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrled/randname/internal/model"
	"github.com/mrled/randname/internal/repository"
	"github.com/mrled/randname/internal/repository/fsrepo"
	"github.com/mrled/randname/internal/repository/memrepo"
	"github.com/mrled/randname/internal/testutil"
)

func testDataset() *testutil.Dataset {
	ds := testutil.NewDataset().
		Country("T1", []string{"M", "F"}, []string{"N"}).
		Bucket("T1", "first_names", "2020_F", []string{"Alice", "Ana"}, []float64{1, 2}).
		Bucket("T1", "first_names", "2020_M", []string{"Bob", "Ben"}, []float64{1, 2}).
		Bucket("T1", "last_names", "2020_N", []string{"Smith"}, []float64{3}).
		Country("T2", []string{"M", "F"}, []string{"N"}).
		Bucket("T2", "first_names", "2020_M", []string{"Jan"}, []float64{1}).
		Bucket("T2", "first_names", "2019_F", []string{"Ewa"}, []float64{1}).
		Bucket("T2", "last_names", "2019_N", []string{"Nowak"}, []float64{1}).
		Country("T3", []string{"M"}, []string{"M", "F"}).
		Bucket("T3", "last_names", "2020_M", []string{"Kowalski"}, []float64{1}).
		Bucket("T3", "last_names", "2020_F", []string{"Kowalska"}, []float64{1})

	for _, year := range []string{"2018", "2019", "2020", "2021"} {
		ds.Bucket("T3", "first_names", year+"_M", []string{"Piotr" + year}, []float64{1})
	}
	return ds
}

func newTestService(t *testing.T, opts ...Option) (*Service, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	opts = append([]Option{WithLogger(logger), WithSeed(1)}, opts...)
	return NewService(fsrepo.New(testDataset().FS()), opts...), &logs
}

func TestService_Resolve_OnlyBucketNames(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	q := Query{Year: Year(2020), Sex: model.Female, Country: "T1", IgnoreWeights: true}
	seen := map[string]int{}
	for range 500 {
		name, err := service.FirstName(ctx, q)
		require.NoError(t, err)
		seen[name]++
	}

	assert.Len(t, seen, 2)
	assert.Greater(t, seen["Alice"], 0)
	assert.Greater(t, seen["Ana"], 0)
}

func TestService_Resolve_Result(t *testing.T) {
	service, _ := newTestService(t)

	res, err := service.Resolve(context.Background(), model.LastName, Query{Country: "T1"})
	require.NoError(t, err)
	assert.Equal(t, &Result{
		Name:     "Smith",
		Category: model.LastName,
		Country:  "T1",
		Sex:      model.Neutral,
		Year:     2020,
	}, res)
}

func TestService_Resolve_NormalizesSex(t *testing.T) {
	service, _ := newTestService(t)

	res, err := service.Resolve(context.Background(), model.FirstName, Query{Country: "T1", Sex: "f", Year: Year(2020)})
	require.NoError(t, err)
	assert.Equal(t, model.Female, res.Sex)
	assert.Contains(t, []string{"Alice", "Ana"}, res.Name)
}

func TestService_Resolve_InvalidSex(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.FirstName(context.Background(), Query{Country: "T1", Sex: "D"})
	var sexErr *model.InvalidSexError
	require.ErrorAs(t, err, &sexErr)
	assert.Equal(t, "D", sexErr.Given)
	assert.Equal(t, []string{"M", "F"}, sexErr.Available)

	_, err = service.LastName(context.Background(), Query{Country: "T1", Sex: model.Female})
	require.ErrorAs(t, err, &sexErr)
	assert.Equal(t, []string{"N"}, sexErr.Available)
}

func TestService_Resolve_InvalidCountry(t *testing.T) {
	service, _ := newTestService(t)

	tests := []struct {
		given      string
		suggestion string
	}{
		{"T4", "T1"},
		{"t2", "T2"},
		{"NOWHERE", ""},
	}

	for _, tt := range tests {
		t.Run(tt.given, func(t *testing.T) {
			_, err := service.FirstName(context.Background(), Query{Country: tt.given})
			var countryErr *model.InvalidCountryError
			require.ErrorAs(t, err, &countryErr)
			assert.Equal(t, tt.given, countryErr.Given)
			assert.Equal(t, []string{"T1", "T2", "T3"}, countryErr.Available)
			assert.Equal(t, tt.suggestion, countryErr.Suggestion)
		})
	}
}

func TestService_Resolve_YearSnapping(t *testing.T) {
	tests := []struct {
		name        string
		requested   int
		want        int
		substituted bool
		warned      bool
	}{
		{"above range", 2022, 2021, true, true},
		{"below range", 2017, 2018, true, true},
		{"exact", 2019, 2019, false, false},
		{"zero is a year, not unset", 0, 2018, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, logs := newTestService(t)

			res, err := service.Resolve(context.Background(), model.FirstName, Query{Country: "T3", Year: Year(tt.requested)})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Year)
			assert.Equal(t, tt.requested, *res.RequestedYear)
			assert.Equal(t, tt.substituted, res.YearSubstituted)
			assert.Equal(t, "Piotr"+strconv.Itoa(tt.want), res.Name)

			if tt.warned {
				assert.Contains(t, logs.String(), "level=WARN")
				assert.Contains(t, logs.String(), "requested_year="+strconv.Itoa(tt.requested))
				assert.Contains(t, logs.String(), "resolved_year="+strconv.Itoa(tt.want))
			} else {
				assert.NotContains(t, logs.String(), "level=WARN")
			}
		})
	}
}

func TestService_Resolve_RandomDefaults(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	for range 200 {
		res, err := service.Resolve(ctx, model.FirstName, Query{})
		// T2 has no 2019_M or 2020_F bucket, so a random draw may hit a missing file
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		require.NoError(t, err)
		assert.Contains(t, []string{"T1", "T2", "T3"}, res.Country)
		assert.Nil(t, res.RequestedYear)
		assert.False(t, res.YearSubstituted)
	}
}

func TestService_Resolve_MissingBucketPropagates(t *testing.T) {
	service, _ := newTestService(t)

	// T2 has years {2019, 2020} but no 2020_F bucket
	_, err := service.FirstName(context.Background(), Query{Country: "T2", Sex: model.Female, Year: Year(2020)})
	var pathErr *fs.PathError
	require.ErrorAs(t, err, &pathErr)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestService_Resolve_MissingRoot(t *testing.T) {
	repo := fsrepo.New(os.DirFS(filepath.Join(t.TempDir(), "absent")))
	service := NewService(repo)

	_, err := service.FirstName(context.Background(), Query{})
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestService_Resolve_EmptyDataset(t *testing.T) {
	service := NewService(fsrepo.New(testutil.NewDataset().FS()))

	_, err := service.FirstName(context.Background(), Query{})
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestService_Resolve_NoBuckets(t *testing.T) {
	ds := testutil.NewDataset().Country("T1", []string{"M"}, []string{"N"})
	service := NewService(fsrepo.New(ds.FS()))

	_, err := service.FirstName(context.Background(), Query{Country: "T1"})
	assert.ErrorIs(t, err, ErrNoBuckets)
}

func TestService_Resolve_UnknownCategory(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Resolve(context.Background(), model.Category("middle"), Query{})
	assert.Error(t, err)
}

func TestService_ResolveFull_DecoupledSex(t *testing.T) {
	service, _ := newTestService(t)

	for range 50 {
		res, err := service.ResolveFull(context.Background(), Query{Sex: model.Female, Country: "T3"})
		require.NoError(t, err)

		assert.Equal(t, "T3", res.First.Country)
		assert.Equal(t, "T3", res.Last.Country)
		assert.Equal(t, model.Male, res.First.Sex)
		assert.Equal(t, model.Female, res.Last.Sex)
		assert.Equal(t, "Kowalska", res.Last.Name)
	}
}

func TestService_ResolveFull_UnsetSex(t *testing.T) {
	service, _ := newTestService(t)

	res, err := service.ResolveFull(context.Background(), Query{Country: "T1", Year: Year(2020)})
	require.NoError(t, err)
	assert.Contains(t, []model.Sex{model.Male, model.Female}, res.First.Sex)
	assert.Equal(t, model.Neutral, res.Last.Sex)
	assert.Equal(t, res.First.Name+" Smith", res.Name())
}

func TestService_ResolveFull_UnrecognizedSex(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.FullName(context.Background(), Query{Sex: "D", Country: "T1"})
	var sexErr *model.InvalidSexError
	require.ErrorAs(t, err, &sexErr)
	assert.Equal(t, []string{"M", "F", "N"}, sexErr.Available)
}

func TestService_ResolveFull_InvalidCountry(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.FullName(context.Background(), Query{Country: "XX"})
	var countryErr *model.InvalidCountryError
	assert.ErrorAs(t, err, &countryErr)
}

func TestService_FullName(t *testing.T) {
	service, _ := newTestService(t)

	name, err := service.FullName(context.Background(), Query{Country: "T1", Sex: model.Male, Year: Year(2020)})
	require.NoError(t, err)
	assert.Contains(t, []string{"Bob Smith", "Ben Smith"}, name)
}

func TestService_SeedIsReproducible(t *testing.T) {
	draw := func() []string {
		service := NewService(fsrepo.New(testDataset().FS()), WithSeed(99))
		var names []string
		for range 20 {
			name, err := service.FullName(context.Background(), Query{Country: "T1", Year: Year(2020)})
			require.NoError(t, err)
			names = append(names, name)
		}
		return names
	}

	assert.Equal(t, draw(), draw())
}

func TestService_ConcurrentCallers(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				if _, err := service.FullName(ctx, Query{Country: "T1", Year: Year(2020)}); err != nil {
					errs <- err
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestService_MemoryRepository(t *testing.T) {
	var snapshot bytes.Buffer
	require.NoError(t, repository.WriteSnapshot(context.Background(), fsrepo.New(testDataset().FS()), &snapshot))
	repo, err := memrepo.NewMemoryRepositoryFromJsonString(snapshot.String())
	require.NoError(t, err)

	service := NewService(repo, WithSeed(3))
	res, err := service.ResolveFull(context.Background(), Query{Sex: model.Female, Country: "T3", Year: Year(2030)})
	require.NoError(t, err)
	assert.Equal(t, "Piotr2021", res.First.Name)
	assert.Equal(t, "Kowalska", res.Last.Name)
}

func TestService_CountriesAndSummary(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	countries, err := service.Countries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"T1", "T2", "T3"}, countries)

	summary, err := service.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Sexes{model.Male}, summary["T3"].FirstNames)
	assert.Equal(t, model.Sexes{model.Male, model.Female}, summary["T3"].LastNames)
}

