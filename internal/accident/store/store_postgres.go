package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"accidentstats/internal/accident/models"
	"accidentstats/pkg/platform/sentinel"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS accidents (
	accident_id        TEXT NOT NULL,
	locate_id_district TEXT NOT NULL DEFAULT '',
	locate_id_police   TEXT NOT NULL DEFAULT '',
	accident_month     INTEGER NOT NULL DEFAULT 0,
	accident_year      INTEGER NOT NULL,
	accident_cost      DOUBLE PRECISION NOT NULL DEFAULT 0,
	human_admit        INTEGER NOT NULL DEFAULT 0,
	human_dead         INTEGER NOT NULL DEFAULT 0,
	roadtype_id        TEXT NOT NULL DEFAULT '',
	roadskin_id        TEXT NOT NULL DEFAULT '',
	acdpoint_id        TEXT NOT NULL DEFAULT '',
	atmosphere_id      TEXT NOT NULL DEFAULT '',
	light_id           TEXT NOT NULL DEFAULT '',
	gis_e              DOUBLE PRECISION NOT NULL DEFAULT 0,
	gis_n              DOUBLE PRECISION NOT NULL DEFAULT 0,
	gis_lat            DOUBLE PRECISION NOT NULL DEFAULT 0,
	gis_lng            DOUBLE PRECISION NOT NULL DEFAULT 0,
	person_gender      TEXT NOT NULL DEFAULT '',
	person_age         INTEGER,
	person_type        TEXT NOT NULL DEFAULT '',
	person_state       TEXT NOT NULL DEFAULT '',
	locate_province    TEXT NOT NULL DEFAULT '',
	locate_domicile    TEXT NOT NULL DEFAULT '',
	locate_areatype    TEXT NOT NULL DEFAULT '',
	health_deadplace   TEXT NOT NULL DEFAULT '',
	health_emssend     INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS accidents_year_idx ON accidents (accident_year);
CREATE INDEX IF NOT EXISTS accidents_age_year_idx ON accidents (person_age, accident_year);
CREATE TABLE IF NOT EXISTS accident_batches (
	id          SMALLINT PRIMARY KEY CHECK (id = 1),
	batch_id    TEXT NOT NULL,
	replaced_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

var accidentColumns = []string{
	"accident_id", "locate_id_district", "locate_id_police",
	"accident_month", "accident_year", "accident_cost", "human_admit", "human_dead",
	"roadtype_id", "roadskin_id", "acdpoint_id", "atmosphere_id", "light_id",
	"gis_e", "gis_n", "gis_lat", "gis_lng",
	"person_gender", "person_age", "person_type", "person_state",
	"locate_province", "locate_domicile", "locate_areatype", "health_deadplace", "health_emssend",
}

// Postgres is the relational Record Store. Grouping runs as SQL GROUP BY and
// replacement is a single transaction.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// EnsureSchema creates the accidents table and its indexes when missing.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure accidents schema: %w", err)
	}
	return nil
}

// ReplaceAll deletes, copies and records a new batch id inside one
// transaction, so a failed copy rolls back to the previous batch.
func (s *Postgres) ReplaceAll(ctx context.Context, records []models.Record) (err error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace: %w: %w", sentinel.ErrUnavailable, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
		}
	}()

	if _, err = tx.Exec(ctx, `DELETE FROM accidents`); err != nil {
		return fmt.Errorf("clear accidents: %w: %w", sentinel.ErrUnavailable, err)
	}

	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = []any{
			r.AccidentID, r.DistrictID, r.PoliceLocaleID,
			r.Month, r.Year, r.Cost, r.Admitted, r.Dead,
			string(r.RoadType), string(r.RoadSurface), string(r.AccidentPoint), string(r.Atmosphere), string(r.Light),
			r.Easting, r.Northing, r.Lat, r.Lng,
			string(r.Gender), r.Age, r.PersonType, r.PersonState,
			r.Province, r.Domicile, r.AreaType, r.DeadPlace, r.EMSDispatch,
		}
	}
	if _, err = tx.CopyFrom(ctx, pgx.Identifier{"accidents"}, accidentColumns, pgx.CopyFromRows(rows)); err != nil {
		return fmt.Errorf("copy accidents: %w: %w", sentinel.ErrUnavailable, err)
	}

	if _, err = tx.Exec(ctx, `
		INSERT INTO accident_batches (id, batch_id, replaced_at) VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET batch_id = EXCLUDED.batch_id, replaced_at = EXCLUDED.replaced_at`,
		uuid.NewString()); err != nil {
		return fmt.Errorf("record batch: %w: %w", sentinel.ErrUnavailable, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit replace: %w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}

// BatchID returns the id written by the last ReplaceAll, or "" when none ran.
func (s *Postgres) BatchID(ctx context.Context) (string, error) {
	var id string
	err := s.pool.QueryRow(ctx, `SELECT batch_id FROM accident_batches WHERE id = 1`).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read batch id: %w: %w", sentinel.ErrUnavailable, err)
	}
	return id, nil
}

func (s *Postgres) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM accidents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count records: %w: %w", sentinel.ErrUnavailable, err)
	}
	return n, nil
}

func (s *Postgres) CountByYear(ctx context.Context, years models.Bounds) ([]models.YearGroup, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT accident_year, COUNT(*)
		FROM accidents
		WHERE accident_year BETWEEN $1 AND $2
		GROUP BY accident_year
		ORDER BY accident_year`, years.From, years.To)
	if err != nil {
		return nil, fmt.Errorf("count by year: %w: %w", sentinel.ErrUnavailable, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.YearGroup, error) {
		var g models.YearGroup
		err := row.Scan(&g.Year, &g.Count)
		return g, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan year counts: %w: %w", sentinel.ErrUnavailable, err)
	}
	return out, nil
}

func (s *Postgres) CountByYearGender(ctx context.Context, years models.Bounds) ([]models.YearGenderGroup, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT accident_year,
			COUNT(*) FILTER (WHERE person_gender = $3),
			COUNT(*) FILTER (WHERE person_gender = $4)
		FROM accidents
		WHERE accident_year BETWEEN $1 AND $2
		GROUP BY accident_year
		ORDER BY accident_year`,
		years.From, years.To, string(models.GenderMale), string(models.GenderFemale))
	if err != nil {
		return nil, fmt.Errorf("count by year and gender: %w: %w", sentinel.ErrUnavailable, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.YearGenderGroup, error) {
		var g models.YearGenderGroup
		err := row.Scan(&g.Year, &g.Male, &g.Female)
		return g, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan year gender counts: %w: %w", sentinel.ErrUnavailable, err)
	}
	return out, nil
}

func (s *Postgres) SumByAgeYear(ctx context.Context, ages, years models.Bounds) ([]models.AgeYearGroup, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT person_age, accident_year, COALESCE(SUM(human_dead), 0), COALESCE(SUM(accident_cost), 0)
		FROM accidents
		WHERE person_age BETWEEN $1 AND $2
			AND accident_year BETWEEN $3 AND $4
		GROUP BY person_age, accident_year
		ORDER BY person_age, accident_year`, ages.From, ages.To, years.From, years.To)
	if err != nil {
		return nil, fmt.Errorf("sum by age and year: %w: %w", sentinel.ErrUnavailable, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.AgeYearGroup, error) {
		var g models.AgeYearGroup
		err := row.Scan(&g.Age, &g.Year, &g.Dead, &g.Cost)
		return g, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan age year sums: %w: %w", sentinel.ErrUnavailable, err)
	}
	return out, nil
}

func (s *Postgres) CountByRoadTypeSurface(ctx context.Context) ([]models.RoadPairGroup, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT roadtype_id, roadskin_id, COUNT(*)
		FROM accidents
		GROUP BY roadtype_id, roadskin_id
		ORDER BY roadtype_id, roadskin_id`)
	if err != nil {
		return nil, fmt.Errorf("count by road type and surface: %w: %w", sentinel.ErrUnavailable, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.RoadPairGroup, error) {
		var g models.RoadPairGroup
		var roadType, surface string
		err := row.Scan(&roadType, &surface, &g.Count)
		g.RoadType = models.RoadTypeCode(roadType)
		g.RoadSurface = models.RoadSurfaceCode(surface)
		return g, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan road pair counts: %w: %w", sentinel.ErrUnavailable, err)
	}
	return out, nil
}

func (s *Postgres) Health(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}

