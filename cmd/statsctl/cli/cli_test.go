package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accidentstats/internal/accident/store"
	"accidentstats/internal/app"
	"accidentstats/internal/platform/config"
	"accidentstats/internal/stats/cache"
	"accidentstats/internal/stats/models"
	statsservice "accidentstats/internal/stats/service"
)

// useMemoryStore points every command at one shared in-memory store.
func useMemoryStore(t *testing.T) *store.InMemory {
	t.Helper()
	t.Setenv("STORE_DRIVER", config.DriverMemory)
	t.Setenv("REDIS_URL", "")
	records := store.NewInMemory()
	prev := openStore
	openStore = func(context.Context, config.Server, *slog.Logger) (app.RecordStore, func(), error) {
		return records, func() {}, nil
	}
	t.Cleanup(func() { openStore = prev })
	return records
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestIngestThenReport(t *testing.T) {
	useMemoryStore(t)
	path := filepath.Join(t.TempDir(), "dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte("ACCIDENT_ID,ACCIDENT_YEAR\nA1,9\nA2,15\n"), 0o600))

	out, err := run(t, "ingest", path)
	require.NoError(t, err)
	assert.Contains(t, out, "ingested 2 records")

	out, err = run(t, "report", "year-count", "--year-from", "2009", "--year-to", "2018")
	require.NoError(t, err)

	var rows []models.YearCount
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 10)
	assert.Equal(t, models.YearCount{Year: 2009, Count: 1}, rows[0])
	assert.Equal(t, models.YearCount{Year: 2015, Count: 1}, rows[6])
}

func TestIngestIsVisibleToARunningServer(t *testing.T) {
	records := useMemoryStore(t)
	dir := t.TempDir()
	first := filepath.Join(dir, "first.csv")
	second := filepath.Join(dir, "second.csv")
	require.NoError(t, os.WriteFile(first, []byte("ACCIDENT_ID,ACCIDENT_YEAR\nA1,9\n"), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("ACCIDENT_ID,ACCIDENT_YEAR\nB1,9\nB2,9\nB3,12\n"), 0o600))

	_, err := run(t, "ingest", first)
	require.NoError(t, err)

	window := config.StatsConfig{YearFrom: 2009, YearTo: 2012, AgeFrom: 1, AgeTo: 100}
	server := statsservice.New(records, window, statsservice.WithCache(cache.NewMemory(time.Minute)))
	ctx := context.Background()
	before, err := server.YearAccidentCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.YearCount{Year: 2009, Count: 1}, before[0])

	_, err = run(t, "ingest", second)
	require.NoError(t, err)

	after, err := server.YearAccidentCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.YearCount{Year: 2009, Count: 2}, after[0])
	assert.Equal(t, models.YearCount{Year: 2012, Count: 1}, after[3])
}

func TestReportAgeYearFlat(t *testing.T) {
	useMemoryStore(t)

	out, err := run(t, "report", "age-year", "--flat", "--age-from", "1", "--age-to", "2")
	require.NoError(t, err)

	var rows []models.AgeYearSummary
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	assert.Len(t, rows, 20)
}

func TestReportRejectsUnknownName(t *testing.T) {
	useMemoryStore(t)

	_, err := run(t, "report", "by-weather")
	require.Error(t, err)
}

func TestIngestMissingFile(t *testing.T) {
	useMemoryStore(t)

	_, err := run(t, "ingest", filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset file not found")
}
