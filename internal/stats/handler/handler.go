package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"accidentstats/internal/platform/middleware"
	"accidentstats/internal/stats/models"
	dErrors "accidentstats/pkg/domain-errors"
	"accidentstats/pkg/platform/httputil"
)

// Service defines the report operations served over HTTP.
type Service interface {
	YearAccidentCount(ctx context.Context) ([]models.YearCount, error)
	YearGenderAccidentCount(ctx context.Context) ([]models.YearGenderCount, error)
	AgeYearDeadAccidentSummary(ctx context.Context) ([]models.AgeSeries, error)
	RoadTypeRoadSurfaceCount(ctx context.Context) ([]models.RoadPairCount, error)
}

// Handler serves the read-only report endpoints.
type Handler struct {
	logger *slog.Logger
	stats  Service
}

// New creates a new report Handler.
func New(stats Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, stats: stats}
}

// Register registers the report routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/stats", func(r chi.Router) {
		r.Get("/year-accident-count", serve(h, "year accident count", h.stats.YearAccidentCount))
		r.Get("/year-gender-accident-count", serve(h, "year gender accident count", h.stats.YearGenderAccidentCount))
		r.Get("/age-year-dead-accident-summary", serve(h, "age year dead accident summary", h.stats.AgeYearDeadAccidentSummary))
		r.Get("/road-type-road-skin-accident-count", serve(h, "road type road surface count", h.stats.RoadTypeRoadSurfaceCount))
	})
}

// serve adapts a report operation into a JSON handler.
func serve[T any](h *Handler, name string, report func(context.Context) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		rows, err := report(ctx)
		if err != nil {
			h.writeError(ctx, w, name, err)
			return
		}
		if rows == nil {
			rows = []T{}
		}
		httputil.WriteJSON(w, http.StatusOK, rows)
	}
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, name string, err error) {
	requestID := middleware.GetRequestID(ctx)
	code := dErrors.CodeOf(err)
	if code != dErrors.CodeTimeout && dErrors.ToHTTPStatus(code) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, "failed to build "+name,
			"request_id", requestID,
			"error", err.Error(),
		)
	} else {
		h.logger.WarnContext(ctx, "rejected "+name+" request",
			"request_id", requestID,
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}
