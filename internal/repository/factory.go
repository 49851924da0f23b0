package repository

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/mrled/randname/internal/repository/embedded"
	"github.com/mrled/randname/internal/repository/fsrepo"
	"github.com/mrled/randname/internal/repository/memrepo"
)

// RepositoryConfig holds configuration for creating a repository
type RepositoryConfig struct {
	// Root is a dataset directory on disk
	Root string

	// SnapshotPath is a single JSON document holding a whole dataset (mutually exclusive with Root)
	SnapshotPath string
}

// NewFS returns the filesystem the dataset lives in.
// Without a configured root the dataset compiled into the binary is used.
func NewFS(cfg RepositoryConfig) fs.FS {
	if cfg.Root == "" {
		return embedded.FS()
	}
	return os.DirFS(cfg.Root)
}

// NewRepository creates a DatasetRepository based on the provided configuration.
func NewRepository(cfg RepositoryConfig) (DatasetRepository, error) {
	if cfg.Root != "" && cfg.SnapshotPath != "" {
		return nil, fmt.Errorf("dataset root and snapshot are mutually exclusive")
	}

	if cfg.SnapshotPath != "" {
		repo, err := memrepo.NewMemoryRepositoryFromFile(cfg.SnapshotPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load snapshot: %w", err)
		}
		return repo, nil
	}

	return fsrepo.New(NewFS(cfg)), nil
}
