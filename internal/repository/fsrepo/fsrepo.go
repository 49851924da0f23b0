// Package fsrepo reads a name dataset laid out as directories and JSON files
package fsrepo

import (
	"context"
	"io/fs"
	"path"

	"github.com/mrled/randname/internal/model"
	"github.com/mrled/randname/internal/schema"
)

// Repository reads the dataset straight from a filesystem on every call
type Repository struct {
	fsys fs.FS
}

// New creates a repository over fsys, whose root is the dataset root
func New(fsys fs.FS) *Repository {
	return &Repository{fsys: fsys}
}

// Countries lists the country directories at the dataset root
func (r *Repository) Countries(ctx context.Context) ([]string, error) {
	entries, err := fs.ReadDir(r.fsys, ".")
	if err != nil {
		return nil, err
	}

	countries := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			countries = append(countries, e.Name())
		}
	}
	return countries, nil
}

// Info reads and decodes {country}/info.json
func (r *Repository) Info(ctx context.Context, country string) (*model.DatasetInfo, error) {
	f, err := r.fsys.Open(path.Join(country, model.InfoFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return schema.DecodeInfo(f)
}

// BucketNames lists the regular files of {country}/{category dir}
func (r *Repository) BucketNames(ctx context.Context, country string, category model.Category) ([]string, error) {
	entries, err := fs.ReadDir(r.fsys, path.Join(country, category.Dir()))
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// Bucket reads and decodes {country}/{category dir}/{name}.
// An open failure is returned as is.
func (r *Repository) Bucket(ctx context.Context, country string, category model.Category, name string) (*model.BucketFile, error) {
	f, err := r.fsys.Open(path.Join(country, category.Dir(), name))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return schema.DecodeBucket(f)
}
