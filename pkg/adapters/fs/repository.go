package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/aretw0/ddc/pkg/core"
	"github.com/bmatcuk/doublestar/v4"
)

// DefaultFilename is the metadata file looked up in every subdirectory.
const DefaultFilename = "README.yaml"

// Repository implements core.Repository on the local filesystem.
type Repository struct {
	config     Config
	serializer Serializer

	lastRoot    string
	lastFound   int
	lastMissing int
	lastSkipped []string
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Filename   string   // e.g. "README.yaml"
	Exclude    []string // doublestar patterns matched against subdirectory names
	Logger     *slog.Logger
	Serializer Serializer
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.Filename == "" {
		config.Filename = DefaultFilename
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	serializer := config.Serializer
	if serializer == nil {
		serializer = NewYAMLSerializer()
	}
	return &Repository{config: config, serializer: serializer}
}

// Collect lists the immediate subdirectories of root. Directories are
// reported relative to root and sorted.
func (r *Repository) Collect(ctx context.Context, root string) (core.Listing, error) {
	info, err := os.Stat(root)
	if err != nil {
		return core.Listing{}, &core.InvalidRootError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return core.Listing{}, &core.InvalidRootError{Path: root}
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return core.Listing{}, fmt.Errorf("failed to read directory %s: %w", root, err)
	}

	listing := core.Listing{Root: root}
	var skipped []string

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return core.Listing{}, err
		}

		name := entry.Name()
		if !r.isDir(root, entry) {
			continue
		}
		if r.excluded(name) {
			skipped = append(skipped, name)
			r.config.Logger.Debug("skipping excluded directory", "dir", name)
			continue
		}

		if r.hasMetadata(filepath.Join(root, name)) {
			listing.Found = append(listing.Found, name)
		} else {
			listing.Missing = append(listing.Missing, name)
		}
	}

	sort.Strings(listing.Found)
	sort.Strings(listing.Missing)

	r.lastRoot = root
	r.lastFound = len(listing.Found)
	r.lastMissing = len(listing.Missing)
	r.lastSkipped = skipped

	return listing, nil
}

// Parse decodes the metadata file of every found directory.
//
// A file that decodes to nothing is left out of the catalog. A file that
// cannot be read or decoded is stored as an empty record and reported as a
// failure.
func (r *Repository) Parse(ctx context.Context, listing core.Listing) (core.Catalog, []core.ParseFailure, error) {
	catalog := core.NewCatalog()
	var failures []core.ParseFailure

	for _, dir := range listing.Found {
		if err := ctx.Err(); err != nil {
			return core.Catalog{}, nil, err
		}

		rec, keys, err := r.parseFile(filepath.Join(listing.Root, dir, r.config.Filename))
		if err != nil {
			file := path.Join(dir, r.config.Filename)
			r.config.Logger.Warn("failed to parse metadata file", "path", file, "error", err)
			failures = append(failures, core.ParseFailure{Dir: dir, Path: file, Err: err})
			catalog.Put(dir, core.Record{})
			continue
		}
		if rec == nil {
			r.config.Logger.Debug("metadata file has no content", "dir", dir)
			continue
		}
		catalog.Put(dir, rec, keys...)
	}

	return catalog, failures, nil
}

func (r *Repository) parseFile(file string) (core.Record, []string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	return r.serializer.Parse(f)
}

// isDir follows symlinks so a linked directory is cataloged like a real one.
func (r *Repository) isDir(root string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(root, entry.Name()))
	return err == nil && info.IsDir()
}

func (r *Repository) hasMetadata(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, r.config.Filename))
	return err == nil && info.Mode().IsRegular()
}

func (r *Repository) excluded(name string) bool {
	for _, pattern := range r.config.Exclude {
		matched, err := doublestar.Match(pattern, name)
		if err != nil {
			r.config.Logger.Warn("invalid exclude pattern", "pattern", pattern, "error", err)
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

var _ core.Repository = (*Repository)(nil)
