package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/ddc/pkg/adapters/fs"
	"github.com/aretw0/ddc/pkg/adapters/markdown"
	"github.com/aretw0/ddc/pkg/core"
)

// Output formats understood by WithFormat.
const (
	FormatMarkdown = "md"
	FormatHTML     = "html"
)

// DefaultTitle is the page title written in the report front matter.
const DefaultTitle = "Data Directory Cataloger"

// options holds the internal configuration for the cataloger.
type options struct {
	repository core.Repository
	renderer   core.Renderer
	logger     *slog.Logger
	clock      func() time.Time

	filename  string
	denyList  core.DenyList
	columns   []string
	exclude   []string
	format    string
	title     string
	generator string
	version   string
}

// Option defines a functional option for configuring the cataloger.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		filename:  fs.DefaultFilename,
		denyList:  core.DefaultDenyList(),
		columns:   append([]string(nil), markdown.DefaultColumns...),
		format:    FormatMarkdown,
		title:     DefaultTitle,
		generator: "ddc",
		version:   "dev",
	}
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository allows injecting a custom record source (e.g. mock, archive).
// If provided, the default filesystem adapter will be skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithRenderer overrides the renderer picked by WithFormat.
func WithRenderer(r core.Renderer) Option {
	return func(o *options) {
		o.renderer = r
	}
}

// WithFilename changes the metadata file looked up in every subdirectory.
// Defaults to "README.yaml".
func WithFilename(name string) Option {
	return func(o *options) {
		if name != "" {
			o.filename = name
		}
	}
}

// WithDenyList replaces the character substitution table.
func WithDenyList(deny core.DenyList) Option {
	return func(o *options) {
		o.denyList = deny
	}
}

// WithColumns sets the metadata fields shown in the report table, in order.
// An empty list keeps the defaults.
func WithColumns(columns ...string) Option {
	return func(o *options) {
		if len(columns) > 0 {
			o.columns = columns
		}
	}
}

// WithExclude skips subdirectories whose name matches one of the glob patterns.
func WithExclude(patterns ...string) Option {
	return func(o *options) {
		o.exclude = append(o.exclude, patterns...)
	}
}

// WithFormat selects the output format ("md" or "html").
func WithFormat(format string) Option {
	return func(o *options) {
		if format != "" {
			o.format = format
		}
	}
}

// WithTitle sets the page title of the report.
func WithTitle(title string) Option {
	return func(o *options) {
		if title != "" {
			o.title = title
		}
	}
}

// WithGenerator sets the program name written in the report front matter.
func WithGenerator(name string) Option {
	return func(o *options) {
		if name != "" {
			o.generator = name
		}
	}
}

// WithVersion sets the version written in the report header and footer.
func WithVersion(version string) Option {
	return func(o *options) {
		if version != "" {
			o.version = version
		}
	}
}

// WithClock replaces time.Now for the report timestamp (useful for testing).
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}
