package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"

	"accidentstats/internal/platform/metrics"
	"accidentstats/internal/platform/middleware"
	dErrors "accidentstats/pkg/domain-errors"
	"accidentstats/pkg/platform/httputil"
)

// RequestTimeout bounds every routed request, store calls included.
const RequestTimeout = 30 * time.Second

const readyTimeout = 2 * time.Second

// Registrar is a feature handler that mounts its own routes.
type Registrar interface {
	Register(r chi.Router)
}

// HealthChecker reports whether a dependency can serve traffic.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Deps collects what the router needs from main. Checks are pinged by
// /health/ready, keyed by dependency name.
type Deps struct {
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Checks   map[string]HealthChecker
	Handlers []Registrar
}

// NewRouter wires the shared middleware chain, the operational endpoints and
// every feature handler.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", middleware.AdminTokenHeader, middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	}).Handler)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Logger(deps.Logger))
	r.Use(chimw.Timeout(RequestTimeout))
	r.Use(middleware.LatencyMiddleware(deps.Metrics))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteText(w, http.StatusOK, "🩺 service is available")
	})
	r.Get("/health/ready", readiness(deps.Logger, deps.Checks))

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	for _, h := range deps.Handlers {
		h.Register(r)
	}
	return r
}

func readiness(logger *slog.Logger, checks map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		g, gctx := errgroup.WithContext(ctx)
		for name, check := range checks {
			g.Go(func() error {
				if err := check.Health(gctx); err != nil {
					return dErrors.Wrap(err, dErrors.CodeStoreUnavailable, name+" is not ready")
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			logger.WarnContext(r.Context(), "readiness check failed",
				"request_id", middleware.GetRequestID(r.Context()),
				"error", err.Error(),
			)
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteText(w, http.StatusOK, "ready")
	}
}
