package ddc

import (
	"log/slog"
	"time"

	"github.com/aretw0/ddc/internal/platform"
	"github.com/aretw0/ddc/pkg/adapters/fs"
	"github.com/aretw0/ddc/pkg/core"
)

// DefaultFilename is the metadata file read from every subdirectory.
const DefaultFilename = fs.DefaultFilename

// --- Types ---

// Report is the public alias for the assembled catalog report.
type Report = core.Report

// Record is the public alias for the metadata of one directory.
type Record = core.Record

// --- Configuration ---

// Option defines a functional option for configuring the cataloger.
type Option = platform.Option

// Config is the runtime configuration loaded by LoadConfig.
type Config = platform.Config

// LoadConfig reads ddc.yaml, DDC_* environment variables and bound flags.
var LoadConfig = platform.LoadConfig

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom record source.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithRenderer allows injecting a custom report renderer.
func WithRenderer(r core.Renderer) Option {
	return platform.WithRenderer(r)
}

// WithFilename changes the metadata file looked up in every subdirectory.
func WithFilename(name string) Option {
	return platform.WithFilename(name)
}

// WithDenyList replaces the character substitution table.
func WithDenyList(deny core.DenyList) Option {
	return platform.WithDenyList(deny)
}

// WithColumns sets the metadata fields shown in the report table.
func WithColumns(columns ...string) Option {
	return platform.WithColumns(columns...)
}

// WithExclude skips subdirectories whose name matches one of the patterns.
func WithExclude(patterns ...string) Option {
	return platform.WithExclude(patterns...)
}

// WithFormat selects the output format ("md" or "html").
func WithFormat(format string) Option {
	return platform.WithFormat(format)
}

// WithTitle sets the page title of the report.
func WithTitle(title string) Option {
	return platform.WithTitle(title)
}

// WithGenerator sets the program name written in the report front matter.
func WithGenerator(name string) Option {
	return platform.WithGenerator(name)
}

// WithClock replaces time.Now for the report timestamp.
func WithClock(clock func() time.Time) Option {
	return platform.WithClock(clock)
}

// --- Factory ---

// New creates a cataloger service whose reports carry Version.
func New(opts ...Option) (*core.Service, error) {
	return platform.New(append([]Option{platform.WithVersion(Version)}, opts...)...)
}
