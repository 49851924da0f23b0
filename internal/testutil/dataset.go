// Package testutil builds small name datasets for tests
package testutil

import (
	"encoding/json"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"testing"
	"testing/fstest"
)

// Dataset assembles an in-memory dataset tree
type Dataset struct {
	files fstest.MapFS
}

// NewDataset returns an empty dataset
func NewDataset() *Dataset {
	return &Dataset{files: fstest.MapFS{}}
}

// Country adds {code}/info.json plus empty first_names/ and last_names/ directories
func (d *Dataset) Country(code string, firstNames, lastNames []string) *Dataset {
	d.Info(code, map[string]any{
		"country":     code,
		"first_names": firstNames,
		"last_names":  lastNames,
	})
	d.Dir(path.Join(code, "first_names"))
	d.Dir(path.Join(code, "last_names"))
	return d
}

// Info writes {code}/info.json from an arbitrary document
func (d *Dataset) Info(code string, doc any) *Dataset {
	return d.JSON(path.Join(code, "info.json"), doc)
}

// Bucket writes {code}/{dir}/{name} as a bucket document
func (d *Dataset) Bucket(code, dir, name string, names []string, totals []float64) *Dataset {
	return d.JSON(path.Join(code, dir, name), map[string]any{
		"Names":  names,
		"Totals": totals,
	})
}

// JSON marshals doc into the file at p
func (d *Dataset) JSON(p string, doc any) *Dataset {
	raw, err := json.Marshal(doc)
	if err != nil {
		panic(err)
	}
	return d.Raw(p, string(raw))
}

// Raw writes content verbatim into the file at p
func (d *Dataset) Raw(p, content string) *Dataset {
	d.files[p] = &fstest.MapFile{Data: []byte(content), Mode: 0o644}
	return d
}

// Dir adds an explicit, possibly empty, directory
func (d *Dataset) Dir(p string) *Dataset {
	d.files[p] = &fstest.MapFile{Mode: fs.ModeDir | 0o755}
	return d
}

// Remove deletes one entry
func (d *Dataset) Remove(p string) *Dataset {
	delete(d.files, p)
	return d
}

// FS returns the dataset as a filesystem
func (d *Dataset) FS() fstest.MapFS {
	return d.files
}

// WriteDir materialises the dataset under a fresh temporary directory and returns its path
func (d *Dataset) WriteDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for p, f := range d.files {
		target := filepath.Join(root, filepath.FromSlash(p))
		if f.Mode.IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				t.Fatalf("Failed to create %s: %v", target, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			t.Fatalf("Failed to create %s: %v", filepath.Dir(target), err)
		}
		if err := os.WriteFile(target, f.Data, 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", target, err)
		}
	}
	return root
}
