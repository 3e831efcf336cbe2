package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"accidentstats/internal/platform/middleware"
	dErrors "accidentstats/pkg/domain-errors"
	"accidentstats/pkg/platform/httputil"
)

// Service defines the ingest operation triggered over HTTP.
type Service interface {
	ReplaceFromFile(ctx context.Context, path string) (int, error)
}

// Handler serves the dataset upload endpoint.
type Handler struct {
	logger     *slog.Logger
	datasets   Service
	path       string
	adminToken string
}

// New creates a dataset Handler that ingests the file at path. A non-empty
// adminToken is required in the X-Admin-Token header.
func New(datasets Service, path, adminToken string, logger *slog.Logger) *Handler {
	return &Handler{
		logger:     logger,
		datasets:   datasets,
		path:       path,
		adminToken: adminToken,
	}
}

// Register registers the dataset routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.With(middleware.RequireAdminToken(h.adminToken, h.logger)).Post("/datasets", h.handleReplace)
}

func (h *Handler) handleReplace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	n, err := h.datasets.ReplaceFromFile(ctx, h.path)
	if err != nil {
		if dErrors.ToHTTPStatus(dErrors.CodeOf(err)) < http.StatusInternalServerError {
			h.logger.WarnContext(ctx, "dataset rejected",
				"request_id", requestID,
				"path", h.path,
				"error", err.Error(),
			)
		} else {
			h.logger.ErrorContext(ctx, "failed to replace dataset",
				"request_id", requestID,
				"path", h.path,
				"error", err.Error(),
			)
		}
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "dataset ingested",
		"request_id", requestID,
		"records", n,
	)
	httputil.WriteText(w, http.StatusCreated, "ok")
}
