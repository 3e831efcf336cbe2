package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Server captures process level configuration.
type Server struct {
	Addr        string
	StoreDriver string
	DatasetPath string
	AdminToken  string
	LogLevel    string
	LogFormat   string

	Mongo    MongoConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Stats    StatsConfig

	parseErrs []error
}

// MongoConfig holds the document store connection settings.
type MongoConfig struct {
	URI            string
	Database       string
	Collection     string
	ConnectTimeout time.Duration
	MaxPoolSize    uint64
}

// PostgresConfig holds the relational store connection settings.
type PostgresConfig struct {
	URL      string
	MaxConns int32
}

// RedisConfig holds the report cache connection settings. An empty URL
// disables Redis and the in-process cache is used instead.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// StatsConfig bounds the reporting windows.
type StatsConfig struct {
	YearFrom int
	YearTo   int
	AgeFrom  int
	AgeTo    int
	CacheTTL time.Duration
}

// DefaultStats is the reporting window used when no overrides are set.
var DefaultStats = StatsConfig{
	YearFrom: 2010,
	YearTo:   2019,
	AgeFrom:  1,
	AgeTo:    100,
	CacheTTL: 10 * time.Minute,
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("ACCIDENTSTATS_ADDR")
	if addr == "" {
		addr = ":" + getEnv("PORT", "9000")
	}

	var env envReader
	cfg := Server{
		Addr:        addr,
		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", DriverMongo)),
		DatasetPath: getEnv("DATASET_PATH", "temp/dataset.csv"),
		AdminToken:  os.Getenv("ADMIN_TOKEN"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		Mongo: MongoConfig{
			URI:            getEnv("DATABASE_URI", "mongodb://localhost:27017"),
			Database:       getEnv("MONGO_DB_NAME", "accident"),
			Collection:     getEnv("MONGO_COLLECTION", "accidents"),
			ConnectTimeout: env.duration("MONGO_CONNECT_TIMEOUT", 3*time.Second),
			MaxPoolSize:    uint64(env.integer("MONGO_MAX_POOL_SIZE", 50)),
		},
		Postgres: PostgresConfig{
			URL:      os.Getenv("POSTGRES_URL"),
			MaxConns: int32(env.integer("POSTGRES_MAX_CONNS", 10)),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     env.integer("REDIS_POOL_SIZE", 10),
			MinIdleConns: env.integer("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  env.duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  env.duration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: env.duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Stats: StatsConfig{
			YearFrom: env.integer("STATS_YEAR_FROM", DefaultStats.YearFrom),
			YearTo:   env.integer("STATS_YEAR_TO", DefaultStats.YearTo),
			AgeFrom:  env.integer("STATS_AGE_FROM", DefaultStats.AgeFrom),
			AgeTo:    env.integer("STATS_AGE_TO", DefaultStats.AgeTo),
			CacheTTL: env.duration("STATS_CACHE_TTL", DefaultStats.CacheTTL),
		},
	}
	cfg.parseErrs = env.errs
	return cfg
}

// Validate rejects configurations the server cannot start with.
func (s Server) Validate() error {
	if err := errors.Join(s.parseErrs...); err != nil {
		return err
	}
	switch s.StoreDriver {
	case DriverMongo:
		if s.Mongo.URI == "" {
			return fmt.Errorf("DATABASE_URI is required for the mongo store")
		}
	case DriverPostgres:
		if s.Postgres.URL == "" {
			return fmt.Errorf("POSTGRES_URL is required for the postgres store")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", s.StoreDriver)
	}
	if s.Stats.YearFrom > s.Stats.YearTo {
		return fmt.Errorf("STATS_YEAR_FROM %d is after STATS_YEAR_TO %d", s.Stats.YearFrom, s.Stats.YearTo)
	}
	if s.Stats.AgeFrom > s.Stats.AgeTo {
		return fmt.Errorf("STATS_AGE_FROM %d is after STATS_AGE_TO %d", s.Stats.AgeFrom, s.Stats.AgeTo)
	}
	if s.Stats.AgeFrom < 0 {
		return fmt.Errorf("STATS_AGE_FROM must not be negative")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envReader parses typed variables, keeping the default and recording an
// error for values that do not parse.
type envReader struct {
	errs []error
}

func (e *envReader) integer(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: invalid integer %q", key, v))
		return fallback
	}
	return n
}

func (e *envReader) duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: invalid duration %q", key, v))
		return fallback
	}
	return d
}
