package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"

	"accidentstats/internal/accident/models"
	"accidentstats/internal/dataset"
	"accidentstats/internal/dataset/metrics"
	dErrors "accidentstats/pkg/domain-errors"
	"accidentstats/pkg/platform/sentinel"
)

// ErrSourceFileNotFound is returned when the dataset file does not exist.
var ErrSourceFileNotFound = fmt.Errorf("dataset file %w", sentinel.ErrNotFound)

// Store is the write side of the record store.
type Store interface {
	ReplaceAll(ctx context.Context, records []models.Record) error
}

// ReportInvalidator drops reports built from the previous record set.
type ReportInvalidator interface {
	InvalidateReports(ctx context.Context) error
}

// Service replaces the record set from CSV input. Ingests are serialized.
type Service struct {
	mu      sync.Mutex
	store   Store
	reports ReportInvalidator
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithReportInvalidator(r ReportInvalidator) Option {
	return func(s *Service) {
		s.reports = r
	}
}

// New constructs a Service writing to store.
func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReplaceFromFile replaces the record set with the CSV at path and returns
// the number of records written.
func (s *Service) ReplaceFromFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.metrics.IncrementFailure()
		return 0, dErrors.Wrap(fmt.Errorf("%w: %s", ErrSourceFileNotFound, path), dErrors.CodeSourceNotFound,
			"dataset file not found, please check path or filename")
	}
	if err != nil {
		s.metrics.IncrementFailure()
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to open dataset file")
	}
	defer f.Close()

	return s.Replace(ctx, f)
}

// Replace parses r and swaps it in as the whole record set. A parse or store
// failure leaves the previous record set in place.
func (s *Service) Replace(ctx context.Context, r io.Reader) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	records, err := dataset.Parse(r)
	if err != nil {
		s.metrics.IncrementFailure()
		return 0, err
	}

	if err := s.store.ReplaceAll(ctx, records); err != nil {
		s.metrics.IncrementFailure()
		return 0, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "failed to replace records")
	}
	s.metrics.ObserveIngest(len(records), start)

	if s.reports != nil {
		if err := s.reports.InvalidateReports(ctx); err != nil {
			s.logger.ErrorContext(ctx, "failed to invalidate cached reports after ingest",
				"error", err.Error(),
			)
		}
	}

	s.logger.InfoContext(ctx, "dataset replaced",
		"records", len(records),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return len(records), nil
}
