package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	accident "accidentstats/internal/accident/models"
	"accidentstats/internal/platform/config"
	"accidentstats/internal/stats/domain"
	"accidentstats/internal/stats/metrics"
	"accidentstats/internal/stats/models"
	dErrors "accidentstats/pkg/domain-errors"
)

// Report names, used for cache keys, span names and metric labels.
const (
	ReportYearCount  = "year-count"
	ReportYearGender = "year-gender"
	ReportAgeYear    = "age-year"
	ReportRoadPairs  = "road-pairs"
)

// ErrStoreUnavailable marks report failures caused by the record store.
var ErrStoreUnavailable = errors.New("record store unavailable")

var tracer = otel.Tracer("accidentstats/stats")

// DefaultBuildTimeout bounds a report build shared by concurrent callers.
const DefaultBuildTimeout = 30 * time.Second

// Store is the grouping surface the reports read from. BatchID identifies
// the record set currently stored and changes with every replacement.
type Store interface {
	BatchID(ctx context.Context) (string, error)
	CountByYear(ctx context.Context, years accident.Bounds) ([]accident.YearGroup, error)
	CountByYearGender(ctx context.Context, years accident.Bounds) ([]accident.YearGenderGroup, error)
	SumByAgeYear(ctx context.Context, ages, years accident.Bounds) ([]accident.AgeYearGroup, error)
	CountByRoadTypeSurface(ctx context.Context) ([]accident.RoadPairGroup, error)
}

// Cache holds built reports between ingests.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
	Invalidate(ctx context.Context) error
}

// Service builds the gap-filled reports.
type Service struct {
	store   Store
	cache   Cache
	years   accident.Bounds
	ages    accident.Bounds
	logger  *slog.Logger
	metrics *metrics.Metrics

	buildTimeout time.Duration
	group        singleflight.Group
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

// WithCache enables report caching. Without it every request reaches the store.
func WithCache(c Cache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// WithBuildTimeout overrides DefaultBuildTimeout.
func WithBuildTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.buildTimeout = d
	}
}

// New constructs a Service reporting over the windows in cfg.
func New(store Store, cfg config.StatsConfig, opts ...Option) *Service {
	s := &Service{
		store:  store,
		years:  accident.Bounds{From: cfg.YearFrom, To: cfg.YearTo},
		ages:   accident.Bounds{From: cfg.AgeFrom, To: cfg.AgeTo},
		logger: slog.New(slog.DiscardHandler),

		buildTimeout: DefaultBuildTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// YearAccidentCount returns one row per year of the window, 0 when a year has
// no accidents.
func (s *Service) YearAccidentCount(ctx context.Context) ([]models.YearCount, error) {
	key := fmt.Sprintf("%s:%d-%d", ReportYearCount, s.years.From, s.years.To)
	return cached(ctx, s, ReportYearCount, key, func(ctx context.Context) ([]models.YearCount, error) {
		years, err := domain.Enumerate(s.years.From, s.years.To)
		if err != nil {
			return nil, err
		}
		groups, err := s.store.CountByYear(ctx, s.years)
		if err != nil {
			return nil, storeError(ctx, err)
		}

		counts := make(map[int]int64, len(groups))
		for _, g := range groups {
			counts[g.Year] = g.Count
		}
		out := make([]models.YearCount, 0, len(years))
		for _, y := range years {
			out = append(out, models.YearCount{Year: y, Count: counts[y]})
		}
		return out, nil
	})
}

// YearGenderAccidentCount returns male and female counts per year of the
// window. Other gender codes count in neither column.
func (s *Service) YearGenderAccidentCount(ctx context.Context) ([]models.YearGenderCount, error) {
	key := fmt.Sprintf("%s:%d-%d", ReportYearGender, s.years.From, s.years.To)
	return cached(ctx, s, ReportYearGender, key, func(ctx context.Context) ([]models.YearGenderCount, error) {
		years, err := domain.Enumerate(s.years.From, s.years.To)
		if err != nil {
			return nil, err
		}
		groups, err := s.store.CountByYearGender(ctx, s.years)
		if err != nil {
			return nil, storeError(ctx, err)
		}

		byYear := make(map[int]accident.YearGenderGroup, len(groups))
		for _, g := range groups {
			byYear[g.Year] = g
		}
		out := make([]models.YearGenderCount, 0, len(years))
		for _, y := range years {
			g := byYear[y]
			out = append(out, models.YearGenderCount{Year: y, MaleCount: g.Male, FemaleCount: g.Female})
		}
		return out, nil
	})
}

// AgeYearDeadAccidentRows returns one flat row per (year, age) of the windows,
// ordered by year then age. Cells without records carry MissingSumSentinel in
// both sums.
func (s *Service) AgeYearDeadAccidentRows(ctx context.Context) ([]models.AgeYearSummary, error) {
	key := fmt.Sprintf("%s:%d-%d:%d-%d", ReportAgeYear, s.ages.From, s.ages.To, s.years.From, s.years.To)
	return cached(ctx, s, ReportAgeYear, key, func(ctx context.Context) ([]models.AgeYearSummary, error) {
		years, err := domain.Enumerate(s.years.From, s.years.To)
		if err != nil {
			return nil, err
		}
		ages, err := domain.Enumerate(s.ages.From, s.ages.To)
		if err != nil {
			return nil, err
		}
		groups, err := s.store.SumByAgeYear(ctx, s.ages, s.years)
		if err != nil {
			return nil, storeError(ctx, err)
		}

		type cell struct{ age, year int }
		sums := make(map[cell]accident.AgeYearGroup, len(groups))
		for _, g := range groups {
			sums[cell{g.Age, g.Year}] = g
		}
		out := make([]models.AgeYearSummary, 0, len(years)*len(ages))
		for _, y := range years {
			for _, a := range ages {
				row := models.AgeYearSummary{
					Age:            a,
					Year:           y,
					Income:         domain.MissingSumSentinel,
					LifeExpectancy: domain.MissingSumSentinel,
				}
				if g, ok := sums[cell{a, y}]; ok {
					row.Income = g.Dead
					row.LifeExpectancy = g.Cost
				}
				out = append(out, row)
			}
		}
		return out, nil
	})
}

// AgeYearDeadAccidentSummary returns the age/year rows reshaped into one
// series per age.
func (s *Service) AgeYearDeadAccidentSummary(ctx context.Context) ([]models.AgeSeries, error) {
	rows, err := s.AgeYearDeadAccidentRows(ctx)
	if err != nil {
		return nil, err
	}
	return domain.ReshapeAgeYear(rows), nil
}

// RoadTypeRoadSurfaceCount returns the count per (road type, road surface)
// pair present in the data, ordered by source then target.
func (s *Service) RoadTypeRoadSurfaceCount(ctx context.Context) ([]models.RoadPairCount, error) {
	return cached(ctx, s, ReportRoadPairs, ReportRoadPairs, func(ctx context.Context) ([]models.RoadPairCount, error) {
		groups, err := s.store.CountByRoadTypeSurface(ctx)
		if err != nil {
			return nil, storeError(ctx, err)
		}
		out := make([]models.RoadPairCount, 0, len(groups))
		for _, g := range groups {
			out = append(out, models.RoadPairCount{
				Source: string(g.RoadType),
				Target: string(g.RoadSurface),
				Count:  g.Count,
			})
		}
		return out, nil
	})
}

// InvalidateReports discards cached reports after the record set changed.
// Cache keys carry the store's batch id, so entries of an older batch are
// never served even when this is not called; this only frees them early.
func (s *Service) InvalidateReports(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		return fmt.Errorf("invalidate report cache: %w", err)
	}
	return nil
}

// cached serves a report from the cache or builds it once for all concurrent
// callers. The key carries the store's batch id, so a batch replaced by
// another process is never served from a stale entry. The shared build runs
// detached from any single caller; each caller waits on its own context.
// Cache failures are logged and bypassed.
func cached[T any](ctx context.Context, s *Service, report, key string, build func(context.Context) (T, error)) (T, error) {
	var zero T
	batch, err := s.store.BatchID(ctx)
	if err != nil {
		return zero, storeError(ctx, err)
	}
	key = fmt.Sprintf("b%s:%s", batch, key)

	if s.cache != nil {
		var hit T
		ok, err := s.cache.Get(ctx, key, &hit)
		switch {
		case err != nil:
			s.metrics.IncrementCacheLookup(report, "error")
			s.logger.WarnContext(ctx, "report cache read failed", "report", report, "error", err)
		case ok:
			s.metrics.IncrementCacheLookup(report, "hit")
			return hit, nil
		default:
			s.metrics.IncrementCacheLookup(report, "miss")
		}
	}

	ch := s.group.DoChan(key, func() (any, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.buildTimeout)
		defer cancel()
		ctx, span := tracer.Start(ctx, "stats."+report,
			trace.WithAttributes(attribute.String("stats.report", report)),
		)
		defer span.End()

		start := time.Now()
		res, err := build(ctx)
		s.metrics.ObserveReport(report, start, err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		span.SetStatus(codes.Ok, "")

		if s.cache != nil {
			if err := s.cache.Set(ctx, key, res); err != nil {
				s.logger.WarnContext(ctx, "report cache write failed", "report", report, "error", err)
			}
		}
		return res, nil
	})

	select {
	case <-ctx.Done():
		return zero, dErrors.Wrap(ctx.Err(), dErrors.CodeTimeout, "report request ended before the report was ready")
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// storeError classifies a failed store call. Calls cut off by their context
// are timeouts, everything else means the store is unavailable.
func storeError(ctx context.Context, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "record store did not answer in time")
	}
	return dErrors.Wrap(fmt.Errorf("%w: %w", ErrStoreUnavailable, err), dErrors.CodeStoreUnavailable, "record store unavailable")
}
