package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accidentstats/internal/accident/store"
	"accidentstats/internal/dataset/service"
	"accidentstats/internal/platform/middleware"
	"accidentstats/pkg/testutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRouter(t *testing.T, path, token string) (chi.Router, *store.InMemory) {
	t.Helper()
	records := store.NewInMemory()
	r := chi.NewRouter()
	New(service.New(records), path, token, discardLogger()).Register(r)
	return r, records
}

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte("ACCIDENT_ID,ACCIDENT_YEAR\nA1,9\nA2,15\n"), 0o600))
	return path
}

func TestPostDatasets(t *testing.T) {
	t.Run("ingests the configured file", func(t *testing.T) {
		router, records := newRouter(t, writeDataset(t), "")

		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodPost, "/datasets"))

		testutil.AssertText(t, rr, http.StatusCreated, "ok")
		n, err := records.Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("missing file is a 404", func(t *testing.T) {
		router, _ := newRouter(t, filepath.Join(t.TempDir(), "absent.csv"), "")

		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodPost, "/datasets"))

		testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "source_not_found")
	})

	t.Run("malformed file is a 400", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dataset.csv")
		require.NoError(t, os.WriteFile(path, []byte("ACCIDENT_ID\nA1\n"), 0o600))
		router, _ := newRouter(t, path, "")

		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodPost, "/datasets"))

		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "validation")
	})
}

func TestPostDatasetsAdminToken(t *testing.T) {
	path := writeDataset(t)
	router, _ := newRouter(t, path, "s3cret")

	t.Run("missing token is rejected", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodPost, "/datasets"))
		testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
	})

	t.Run("wrong token is rejected", func(t *testing.T) {
		req := testutil.NewRequestWithHeader(t, http.MethodPost, "/datasets", middleware.AdminTokenHeader, "nope")
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
	})

	t.Run("matching token is accepted", func(t *testing.T) {
		req := testutil.NewRequestWithHeader(t, http.MethodPost, "/datasets", middleware.AdminTokenHeader, "s3cret")
		rr := testutil.DoRequest(router, req)
		testutil.AssertText(t, rr, http.StatusCreated, "ok")
	})
}
