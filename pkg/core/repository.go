package core

import (
	"context"
	"io"
)

// Repository defines the contract for discovering and reading metadata files.
// Adhering to this interface keeps the core independent of where the records
// come from (local filesystem, archive, test fixture).
type Repository interface {
	// Collect lists the immediate subdirectories of root, split by whether
	// they hold a metadata file.
	Collect(ctx context.Context, root string) (Listing, error)

	// Parse decodes the metadata file of every found directory.
	// A file that cannot be decoded becomes an empty record plus a failure;
	// it never aborts the run.
	Parse(ctx context.Context, listing Listing) (Catalog, []ParseFailure, error)
}

// Renderer turns a Report into a document.
type Renderer interface {
	Render(w io.Writer, r Report) error
}
