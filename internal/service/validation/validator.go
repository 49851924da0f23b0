package validation

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"regexp"
	"slices"
	"strings"

	"github.com/mrled/randname/internal/model"
	"github.com/mrled/randname/internal/schema"
)

// Validator defines the interface for dataset validation
type Validator interface {
	Validate(ctx context.Context, fsys fs.FS) error
}

// Service implements the Validator interface.
// It walks the whole dataset and reports every problem at once, so it is
// meant to be run by the dataset owner rather than on every name draw.
type Service struct {
	logger *slog.Logger
}

// Option configures a Service
type Option func(*Service)

// WithLogger sets the logger findings are reported to as they are collected
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a new validation service
func NewService(opts ...Option) *Service {
	s := &Service{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateDir validates the dataset rooted at a directory on disk
func (s *Service) ValidateDir(ctx context.Context, root string) error {
	stat, err := os.Stat(root)
	if err != nil {
		return &MissingRootError{Path: root, Err: err}
	}
	if !stat.IsDir() {
		return &MissingRootError{Path: root}
	}

	err = s.Validate(ctx, os.DirFS(root))
	var verr *Error
	if errors.As(err, &verr) {
		verr.Root = root
	}
	return err
}

// Validate checks the structure and content of the dataset whose root is fsys.
// Findings are collected across all countries and returned together as *Error.
func (s *Service) Validate(ctx context.Context, fsys fs.FS) error {
	stat, err := fs.Stat(fsys, ".")
	if err != nil {
		return &MissingRootError{Path: ".", Err: err}
	}
	if !stat.IsDir() {
		return &MissingRootError{Path: "."}
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("failed to list dataset root: %w", err)
	}

	var problems []error
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !entry.IsDir() {
			continue
		}
		problems = append(problems, s.validateCountry(fsys, entry.Name())...)
	}

	if len(problems) > 0 {
		return &Error{Root: ".", Problems: problems}
	}
	return nil
}

// validateCountry runs every check on one country directory
func (s *Service) validateCountry(fsys fs.FS, country string) []error {
	var problems []error
	report := func(err error) {
		s.logger.Error("dataset problem", slog.String("country", country), slog.Any("error", err))
		problems = append(problems, err)
	}

	infoPath := path.Join(country, model.InfoFile)
	if _, err := fs.Stat(fsys, infoPath); err != nil {
		report(&MissingInfoFileError{Path: infoPath})
	}
	for _, category := range model.Categories {
		dir := path.Join(country, category.Dir())
		if stat, err := fs.Stat(fsys, dir); err != nil || !stat.IsDir() {
			report(&MissingCategoryDirectoryError{Path: dir})
		}
	}
	if len(problems) > 0 {
		return problems
	}

	info, err := readInfo(fsys, infoPath)
	if err != nil {
		report(&SchemaError{Path: infoPath, Err: err})
	}

	for _, category := range model.Categories {
		dir := path.Join(country, category.Dir())
		entries, err := fs.ReadDir(fsys, dir)
		if err != nil {
			report(fmt.Errorf("%s: %w", dir, err))
			continue
		}

		// Name checks need the declared sex codes, content checks do not
		if info != nil {
			declared := info.SexesFor(category).Strings()
			if found := sexesInDir(entries); !sameSet(declared, found) {
				report(&GenderMismatchError{
					Path:     dir,
					Category: category,
					Declared: sortedSet(declared),
					Found:    found,
				})
			}

			pattern := bucketPattern(declared)
			for _, entry := range entries {
				if !pattern.MatchString(entry.Name()) {
					report(&FileNamePatternError{Path: path.Join(dir, entry.Name()), Pattern: pattern.String()})
				}
			}
		}

		for _, entry := range entries {
			p := path.Join(dir, entry.Name())
			if entry.IsDir() {
				report(&SchemaError{Path: p, Err: fmt.Errorf("%w: not a regular file", schema.ErrSchema)})
				continue
			}
			if err := checkBucket(fsys, p); err != nil {
				report(&SchemaError{Path: p, Err: err})
			}
		}
	}

	return problems
}

func readInfo(fsys fs.FS, p string) (*model.DatasetInfo, error) {
	f, err := fsys.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return schema.DecodeInfo(f)
}

func checkBucket(fsys fs.FS, p string) error {
	f, err := fsys.Open(p)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = schema.DecodeBucket(f)
	return err
}

// sexesInDir collects the second "_" token of every entry name, sorted and unique
func sexesInDir(entries []fs.DirEntry) []string {
	var found []string
	for _, entry := range entries {
		if sex, ok := model.BucketSex(entry.Name()); ok {
			found = append(found, string(sex))
		}
	}
	return sortedSet(found)
}

// bucketPattern matches "{positive year}_{one declared sex code}"
func bucketPattern(declared []string) *regexp.Regexp {
	var class strings.Builder
	for _, code := range declared {
		for _, r := range code {
			if strings.ContainsRune(`\]^-[`, r) {
				class.WriteByte('\\')
			}
			class.WriteRune(r)
		}
	}
	return regexp.MustCompile(`^[1-9][0-9]*_[` + class.String() + `]$`)
}

func sortedSet(values []string) []string {
	out := slices.Clone(values)
	slices.Sort(out)
	return slices.Compact(out)
}

func sameSet(a, b []string) bool {
	return slices.Equal(sortedSet(a), sortedSet(b))
}
