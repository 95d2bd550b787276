package platform

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/ddc/pkg/adapters/fs"
	"github.com/aretw0/ddc/pkg/adapters/markdown"
	"github.com/aretw0/ddc/pkg/core"
)

// New wires the repository, renderer and domain service.
//
//	svc, err := ddc.New(ddc.WithColumns("Title", "Owner"))
//	_, err = svc.Run(ctx, "./data", os.Stdout)
func New(opts ...Option) (*core.Service, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	repo := o.repository
	if repo == nil {
		repo = fs.NewRepository(fs.Config{
			Filename: o.filename,
			Exclude:  o.exclude,
			Logger:   logger,
		})
	}

	renderer := o.renderer
	if renderer == nil {
		var err error
		renderer, err = rendererFor(o.format)
		if err != nil {
			return nil, err
		}
	}

	return core.NewService(repo, renderer, core.ServiceConfig{
		Title:     o.title,
		Generator: o.generator,
		Version:   o.version,
		Filename:  o.filename,
		Columns:   o.columns,
		DenyList:  o.denyList,
		Logger:    logger,
		Clock:     o.clock,
	}), nil
}

func rendererFor(format string) (core.Renderer, error) {
	switch format {
	case FormatMarkdown, "markdown":
		return markdown.NewRenderer(), nil
	case FormatHTML:
		return markdown.NewHTMLRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}
