package core

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"
)

// ServiceConfig holds what the Service needs besides its adapters.
type ServiceConfig struct {
	Title     string
	Generator string
	Version   string
	Filename  string
	Columns   []string
	DenyList  DenyList
	Logger    *slog.Logger
	Clock     func() time.Time
}

// Service runs the catalog pipeline: collect, parse, sanitize, audit, render.
type Service struct {
	repo     Repository
	renderer Renderer
	config   ServiceConfig

	last *Report
}

// NewService creates a new Service.
func NewService(repo Repository, renderer Renderer, config ServiceConfig) *Service {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}
	return &Service{repo: repo, renderer: renderer, config: config}
}

// Build runs every stage up to rendering and returns the report.
func (s *Service) Build(ctx context.Context, root string) (Report, error) {
	if s.repo == nil {
		return Report{}, errors.New("service has no repository")
	}

	listing, err := s.repo.Collect(ctx, root)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Title:       s.config.Title,
		Generator:   s.config.Generator,
		Version:     s.config.Version,
		GeneratedAt: s.config.Clock(),
		Filename:    s.config.Filename,
		Listing:     listing,
		Columns:     s.config.Columns,
		DenyList:    s.config.DenyList,
		Catalog:     NewCatalog(),
		Warnings:    make(WarningSet),
		Vocabulary:  make(Vocabulary),
	}

	s.config.Logger.Debug("collected directories",
		"root", root,
		"found", len(listing.Found),
		"missing", len(listing.Missing),
	)

	if len(listing.Found) == 0 {
		s.last = &report
		return report, nil
	}

	catalog, failures, err := s.repo.Parse(ctx, listing)
	if err != nil {
		return Report{}, err
	}
	report.Failures = failures

	catalog, warnings := NewSanitizer(s.config.DenyList, s.config.Filename).Sanitize(catalog)
	report.Catalog = catalog
	report.Warnings = warnings

	report.Vocabulary = BuildVocabulary(catalog)
	report.Drift = Audit(catalog, report.Vocabulary, s.config.Filename)

	s.config.Logger.Debug("audited catalog",
		"records", catalog.Len(),
		"failures", len(failures),
		"sanitized", warnings.Len(),
		"vocabulary", report.Vocabulary.Len(),
		"drift", len(report.Drift),
	)

	s.last = &report
	return report, nil
}

// Run builds the report for root and writes it to w.
func (s *Service) Run(ctx context.Context, root string, w io.Writer) (Report, error) {
	if s.renderer == nil {
		return Report{}, errors.New("service has no renderer")
	}
	report, err := s.Build(ctx, root)
	if err != nil {
		return Report{}, err
	}
	if err := s.renderer.Render(w, report); err != nil {
		return report, err
	}
	return report, nil
}
