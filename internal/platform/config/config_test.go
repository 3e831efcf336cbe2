package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"ACCIDENTSTATS_ADDR", "PORT", "STORE_DRIVER", "DATASET_PATH", "STATS_YEAR_FROM", "STATS_CACHE_TTL"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, "temp/dataset.csv", cfg.DatasetPath)
	assert.Equal(t, DefaultStats, cfg.Stats)
	require.NoError(t, cfg.Validate())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("STATS_YEAR_FROM", "2009")
	t.Setenv("STATS_YEAR_TO", "2018")
	t.Setenv("STATS_CACHE_TTL", "30s")

	cfg := FromEnv()

	assert.Equal(t, ":8081", cfg.Addr)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, 2009, cfg.Stats.YearFrom)
	assert.Equal(t, 2018, cfg.Stats.YearTo)
	assert.Equal(t, 30*time.Second, cfg.Stats.CacheTTL)
	require.NoError(t, cfg.Validate())
}

func TestFromEnvRejectsMalformedValues(t *testing.T) {
	t.Setenv("STORE_DRIVER", DriverMemory)
	t.Setenv("STATS_YEAR_FROM", "abc")
	t.Setenv("STATS_CACHE_TTL", "ten minutes")

	cfg := FromEnv()

	assert.Equal(t, DefaultStats.YearFrom, cfg.Stats.YearFrom)
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, `STATS_YEAR_FROM: invalid integer "abc"`)
	assert.ErrorContains(t, err, "STATS_CACHE_TTL")
}

func TestValidate(t *testing.T) {
	base := Server{StoreDriver: DriverMemory, Stats: DefaultStats}

	t.Run("unknown driver", func(t *testing.T) {
		cfg := base
		cfg.StoreDriver = "cassandra"
		assert.ErrorContains(t, cfg.Validate(), "unknown STORE_DRIVER")
	})

	t.Run("postgres requires url", func(t *testing.T) {
		cfg := base
		cfg.StoreDriver = DriverPostgres
		assert.ErrorContains(t, cfg.Validate(), "POSTGRES_URL")
	})

	t.Run("reversed year window", func(t *testing.T) {
		cfg := base
		cfg.Stats.YearFrom, cfg.Stats.YearTo = 2019, 2010
		assert.ErrorContains(t, cfg.Validate(), "STATS_YEAR_FROM")
	})

	t.Run("reversed age window", func(t *testing.T) {
		cfg := base
		cfg.Stats.AgeFrom, cfg.Stats.AgeTo = 50, 10
		assert.ErrorContains(t, cfg.Validate(), "STATS_AGE_FROM")
	})
}
