// Package resolver draws random names from a dataset partitioned by country,
// sex and year of birth.
//
// Every call re-reads what it needs from the repository, so a Service holds
// no dataset state and may be shared by concurrent callers.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/mrled/randname/internal/model"
	"github.com/mrled/randname/internal/repository"
)

var (
	// ErrEmptyDataset is returned when the dataset root holds no country
	ErrEmptyDataset = errors.New("dataset holds no countries")

	// ErrNoBuckets is returned when a country's category holds no bucket with a year
	ErrNoBuckets = errors.New("no name buckets available")
)

// Query selects what to draw. Zero values mean "choose at random" for Year,
// Sex and Country, and a population weighted draw.
type Query struct {
	Year    *int
	Sex     model.Sex
	Country string
	// IgnoreWeights draws uniformly from the bucket instead of by population
	IgnoreWeights bool
}

// Year is a helper to fill Query.Year
func Year(y int) *int {
	return &y
}

// Result describes a resolved name and how it was resolved
type Result struct {
	Name     string
	Category model.Category
	Country  string
	Sex      model.Sex
	Year     int
	// RequestedYear is nil when no year was asked for
	RequestedYear *int
	// YearSubstituted is set when the requested year has no bucket and another year was used
	YearSubstituted bool
}

// FullResult pairs the independently resolved first and last names
type FullResult struct {
	First *Result
	Last  *Result
}

// Name joins first and last name
func (r *FullResult) Name() string {
	return r.First.Name + " " + r.Last.Name
}

// Service resolves name queries against a dataset repository
type Service struct {
	repo   repository.DatasetRepository
	rng    Rand
	logger *slog.Logger
}

// Option configures a Service
type Option func(*Service)

// WithRand sets the randomness source. The source is guarded by a mutex.
func WithRand(r Rand) Option {
	return func(s *Service) {
		if r != nil {
			s.rng = &lockedRand{r: r}
		}
	}
}

// WithSeed makes every draw reproducible
func WithSeed(seed uint64) Option {
	return WithRand(NewSeededRand(seed))
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a resolver over repo
func NewService(repo repository.DatasetRepository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		rng:    globalRand{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FirstName draws a first name
func (s *Service) FirstName(ctx context.Context, q Query) (string, error) {
	res, err := s.Resolve(ctx, model.FirstName, q)
	if err != nil {
		return "", err
	}
	return res.Name, nil
}

// LastName draws a last name
func (s *Service) LastName(ctx context.Context, q Query) (string, error) {
	res, err := s.Resolve(ctx, model.LastName, q)
	if err != nil {
		return "", err
	}
	return res.Name, nil
}

// FullName draws "first last" from one country
func (s *Service) FullName(ctx context.Context, q Query) (string, error) {
	res, err := s.ResolveFull(ctx, q)
	if err != nil {
		return "", err
	}
	return res.Name(), nil
}

// Countries lists the country codes of the dataset
func (s *Service) Countries(ctx context.Context) ([]string, error) {
	return s.repo.Countries(ctx)
}

// Summary reports the sex codes each country supports per category
func (s *Service) Summary(ctx context.Context) (model.Summary, error) {
	return repository.Summarize(ctx, s.repo)
}

// Resolve draws one name of the given category.
//
// Country, sex and year are resolved in that order. A requested year without
// a bucket is replaced by the nearest available year at or above it, or by
// the latest available year; this never fails but is logged as a warning
// when the request lies outside the available range.
func (s *Service) Resolve(ctx context.Context, category model.Category, q Query) (*Result, error) {
	if category.Dir() == "" {
		return nil, fmt.Errorf("unknown name category: %q", category)
	}

	country, err := s.resolveCountry(ctx, q.Country)
	if err != nil {
		return nil, err
	}

	info, err := s.repo.Info(ctx, country)
	if err != nil {
		return nil, fmt.Errorf("failed to read info for %s: %w", country, err)
	}
	sex, err := s.resolveSex(info.SexesFor(category), q.Sex)
	if err != nil {
		return nil, err
	}

	year, err := s.resolveYear(ctx, country, category, q.Year)
	if err != nil {
		return nil, err
	}

	bucketName := model.BucketName(year, sex)
	s.logger.Debug("loading bucket",
		slog.String("country", country),
		slog.String("category", category.Dir()),
		slog.String("bucket", bucketName))

	bucket, err := s.repo.Bucket(ctx, country, category, bucketName)
	if err != nil {
		return nil, err
	}

	name, err := drawName(s.rng, bucket, !q.IgnoreWeights)
	if err != nil {
		return nil, fmt.Errorf("%s/%s/%s: %w", country, category.Dir(), bucketName, err)
	}

	return &Result{
		Name:            name,
		Category:        category,
		Country:         country,
		Sex:             sex,
		Year:            year,
		RequestedYear:   q.Year,
		YearSubstituted: q.Year != nil && *q.Year != year,
	}, nil
}

// ResolveFull draws a first and a last name from the same country.
//
// Sex selection is decoupled per category: a requested sex is honoured where
// the category supports it, and the other category falls back to a random
// choice among its own sex codes.
func (s *Service) ResolveFull(ctx context.Context, q Query) (*FullResult, error) {
	sex := model.NormalizeSex(string(q.Sex))
	if !sex.IsRecognized() {
		return nil, &model.InvalidSexError{
			Given:     string(q.Sex),
			Available: model.Sexes(model.RecognizedSexes).Strings(),
		}
	}

	country, err := s.resolveCountry(ctx, q.Country)
	if err != nil {
		return nil, err
	}
	info, err := s.repo.Info(ctx, country)
	if err != nil {
		return nil, fmt.Errorf("failed to read info for %s: %w", country, err)
	}

	results := make([]*Result, 0, len(model.Categories))
	for _, category := range model.Categories {
		cq := q
		cq.Country = country
		cq.Sex = sex
		if available := info.SexesFor(category); len(available) > 0 && !available.Contains(sex) {
			cq.Sex = choose(s.rng, available)
		}

		res, err := s.Resolve(ctx, category, cq)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}

	return &FullResult{First: results[0], Last: results[1]}, nil
}

func (s *Service) resolveCountry(ctx context.Context, given string) (string, error) {
	countries, err := s.repo.Countries(ctx)
	if err != nil {
		return "", err
	}
	if len(countries) == 0 {
		return "", ErrEmptyDataset
	}

	if given == "" {
		country := choose(s.rng, countries)
		s.logger.Debug("chose country", slog.String("country", country))
		return country, nil
	}
	if !slices.Contains(countries, given) {
		return "", &model.InvalidCountryError{
			Given:      given,
			Available:  countries,
			Suggestion: suggestCountry(given, countries),
		}
	}
	return given, nil
}

func (s *Service) resolveSex(available model.Sexes, given model.Sex) (model.Sex, error) {
	if len(available) == 0 {
		return "", &model.InvalidSexError{Given: string(given)}
	}

	if given == model.AnySex {
		sex := choose(s.rng, available)
		s.logger.Debug("chose sex", slog.String("sex", string(sex)))
		return sex, nil
	}

	sex := model.NormalizeSex(string(given))
	if !available.Contains(sex) {
		return "", &model.InvalidSexError{Given: string(given), Available: available.Strings()}
	}
	return sex, nil
}

func (s *Service) resolveYear(ctx context.Context, country string, category model.Category, requested *int) (int, error) {
	names, err := s.repo.BucketNames(ctx, country, category)
	if err != nil {
		return 0, err
	}
	years := availableYears(names)
	if len(years) == 0 {
		return 0, fmt.Errorf("%w: %s/%s", ErrNoBuckets, country, category.Dir())
	}

	if requested == nil {
		year := choose(s.rng, years)
		s.logger.Debug("chose year", slog.Int("year", year))
		return year, nil
	}

	year := snapYear(years, *requested)
	if !inRange(years, *requested) {
		s.logger.Warn("requested year outside available range",
			slog.String("country", country),
			slog.String("category", category.Dir()),
			slog.Int("requested_year", *requested),
			slog.Int("resolved_year", year),
			slog.Int("min_year", years[0]),
			slog.Int("max_year", years[len(years)-1]),
			slog.String("available", joinInts(years)))
	}
	return year, nil
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ",")
}
