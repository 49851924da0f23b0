// Package memrepo holds a whole name dataset in memory, loaded from a single
// JSON snapshot document.
package memrepo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mrled/randname/internal/model"
	"github.com/mrled/randname/internal/schema"
)

// Snapshot is the on-disk form of a dataset held in one document, keyed by country code
type Snapshot map[string]SnapshotCountry

// SnapshotCountry mirrors one country directory
type SnapshotCountry struct {
	Info       json.RawMessage            `json:"info"`
	FirstNames map[string]json.RawMessage `json:"first_names"`
	LastNames  map[string]json.RawMessage `json:"last_names"`
}

type countryData struct {
	info    *model.DatasetInfo
	buckets map[model.Category]map[string]*model.BucketFile
}

// MemoryRepository is an in-memory implementation of DatasetRepository optionally backed by a snapshot file.
// A file backed repository reloads the file whenever its size or modification time changes.
type MemoryRepository struct {
	mu       sync.RWMutex
	data     map[string]*countryData
	filePath string
	modTime  time.Time
	size     int64
}

// NewMemoryRepository creates an empty repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		data: make(map[string]*countryData),
	}
}

// NewMemoryRepositoryFromFile creates a repository backed by a snapshot file
func NewMemoryRepositoryFromFile(filePath string) (*MemoryRepository, error) {
	repo := &MemoryRepository{
		data:     make(map[string]*countryData),
		filePath: filePath,
	}

	if err := repo.refresh(); err != nil {
		return nil, err
	}
	return repo, nil
}

// NewMemoryRepositoryFromJsonString creates a repository initialized with a snapshot document.
// The repository is not backed by a file.
func NewMemoryRepositoryFromJsonString(jsonString string) (*MemoryRepository, error) {
	repo := NewMemoryRepository()
	if err := repo.loadFromReader(strings.NewReader(jsonString)); err != nil {
		return nil, err
	}
	return repo, nil
}

// loadFromReader decodes a snapshot and replaces the in-memory data.
// Every embedded document is checked against the dataset schema.
func (r *MemoryRepository) loadFromReader(reader io.Reader) error {
	var snap Snapshot
	if err := json.NewDecoder(reader).Decode(&snap); err != nil {
		return err
	}

	data := make(map[string]*countryData, len(snap))
	for code, sc := range snap {
		info, err := schema.DecodeInfo(bytes.NewReader(sc.Info))
		if err != nil {
			return fmt.Errorf("%s/%s: %w", code, model.InfoFile, err)
		}

		cd := &countryData{
			info:    info,
			buckets: make(map[model.Category]map[string]*model.BucketFile),
		}
		for category, raw := range map[model.Category]map[string]json.RawMessage{
			model.FirstName: sc.FirstNames,
			model.LastName:  sc.LastNames,
		} {
			cd.buckets[category] = make(map[string]*model.BucketFile, len(raw))
			for name, doc := range raw {
				bucket, err := schema.DecodeBucket(bytes.NewReader(doc))
				if err != nil {
					return fmt.Errorf("%s/%s/%s: %w", code, category.Dir(), name, err)
				}
				cd.buckets[category][name] = bucket
			}
		}
		data[code] = cd
	}

	r.data = data
	return nil
}

// refresh reloads the backing file if it changed since the last load.
// If filePath is empty, this is a no-op.
func (r *MemoryRepository) refresh() error {
	if r.filePath == "" {
		return nil
	}

	stat, err := os.Stat(r.filePath)
	if err != nil {
		return err
	}

	r.mu.RLock()
	fresh := stat.ModTime().Equal(r.modTime) && stat.Size() == r.size
	r.mu.RUnlock()
	if fresh {
		return nil
	}

	file, err := os.Open(r.filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.loadFromReader(file); err != nil {
		return fmt.Errorf("failed to load %s: %w", r.filePath, err)
	}
	r.modTime = stat.ModTime()
	r.size = stat.Size()
	return nil
}

func notExist(name string) error {
	return &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

// Countries lists the country codes in ascending order
func (r *MemoryRepository) Countries(ctx context.Context) ([]string, error) {
	if err := r.refresh(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	countries := make([]string, 0, len(r.data))
	for code := range r.data {
		countries = append(countries, code)
	}
	sort.Strings(countries)
	return countries, nil
}

// Info returns the info document of a country
func (r *MemoryRepository) Info(ctx context.Context, country string) (*model.DatasetInfo, error) {
	if err := r.refresh(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	cd, ok := r.data[country]
	if !ok {
		return nil, notExist(path.Join(country, model.InfoFile))
	}
	return cd.info, nil
}

// BucketNames lists the bucket names of a country's category in ascending order
func (r *MemoryRepository) BucketNames(ctx context.Context, country string, category model.Category) ([]string, error) {
	if err := r.refresh(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	cd, ok := r.data[country]
	if !ok {
		return nil, notExist(path.Join(country, category.Dir()))
	}

	names := make([]string, 0, len(cd.buckets[category]))
	for name := range cd.buckets[category] {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// Bucket returns one bucket
func (r *MemoryRepository) Bucket(ctx context.Context, country string, category model.Category, name string) (*model.BucketFile, error) {
	if err := r.refresh(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	cd, ok := r.data[country]
	if !ok {
		return nil, notExist(path.Join(country, category.Dir(), name))
	}
	bucket, ok := cd.buckets[category][name]
	if !ok {
		return nil, notExist(path.Join(country, category.Dir(), name))
	}
	return bucket, nil
}
