package store_test

import (
	"context"

	"github.com/stretchr/testify/suite"

	"accidentstats/internal/accident/models"
)

// recordStore is the surface every backend shares.
type recordStore interface {
	ReplaceAll(ctx context.Context, records []models.Record) error
	Count(ctx context.Context) (int64, error)
	CountByYear(ctx context.Context, years models.Bounds) ([]models.YearGroup, error)
	CountByYearGender(ctx context.Context, years models.Bounds) ([]models.YearGenderGroup, error)
	SumByAgeYear(ctx context.Context, ages, years models.Bounds) ([]models.AgeYearGroup, error)
	CountByRoadTypeSurface(ctx context.Context) ([]models.RoadPairGroup, error)
	BatchID(ctx context.Context) (string, error)
	Health(ctx context.Context) error
}

// contractSuite holds the grouping behaviour each backend must reproduce.
// Backend suites embed it and set store in SetupTest.
type contractSuite struct {
	suite.Suite
	ctx   context.Context
	store recordStore
}

var (
	reportYears = models.Bounds{From: 2010, To: 2019}
	reportAges  = models.Bounds{From: 1, To: 100}
)

func age(v int) *int { return &v }

func record(id string, year int, mutate ...func(*models.Record)) models.Record {
	r := models.Record{
		AccidentID:  id,
		Month:       1,
		Year:        year,
		Gender:      models.GenderMale,
		RoadType:    "1",
		RoadSurface: "1",
	}
	for _, m := range mutate {
		m(&r)
	}
	return r
}

func (s *contractSuite) replace(records ...models.Record) {
	s.Require().NoError(s.store.ReplaceAll(s.ctx, records))
}

func (s *contractSuite) TestReplaceAll() {
	s.Run("second batch replaces the first", func() {
		s.replace(record("a", 2010), record("b", 2011), record("c", 2012))
		s.replace(record("d", 2015))

		n, err := s.store.Count(s.ctx)
		s.Require().NoError(err)
		s.Equal(int64(1), n)
	})

	s.Run("empty batch clears the store", func() {
		s.replace(record("a", 2010))
		s.replace()

		n, err := s.store.Count(s.ctx)
		s.Require().NoError(err)
		s.Zero(n)
	})
}

func (s *contractSuite) TestBatchIDChangesWithEachReplace() {
	s.replace(record("a", 2010))
	first, err := s.store.BatchID(s.ctx)
	s.Require().NoError(err)
	s.NotEmpty(first)

	again, err := s.store.BatchID(s.ctx)
	s.Require().NoError(err)
	s.Equal(first, again, "reads do not change the batch")

	s.replace(record("a", 2010))
	second, err := s.store.BatchID(s.ctx)
	s.Require().NoError(err)
	s.NotEmpty(second)
	s.NotEqual(first, second, "identical content still counts as a new batch")
}

func (s *contractSuite) TestCountByYear() {
	s.replace(
		record("a", 2009),
		record("b", 2010),
		record("c", 2010),
		record("d", 2015),
		record("e", 2019),
		record("f", 2020),
	)

	groups, err := s.store.CountByYear(s.ctx, reportYears)
	s.Require().NoError(err)
	s.Equal([]models.YearGroup{
		{Year: 2010, Count: 2},
		{Year: 2015, Count: 1},
		{Year: 2019, Count: 1},
	}, groups)
}

func (s *contractSuite) TestCountByYearGender() {
	female := func(r *models.Record) { r.Gender = models.GenderFemale }
	other := func(r *models.Record) { r.Gender = "9" }
	s.replace(
		record("a", 2012),
		record("b", 2012, female),
		record("c", 2012, female),
		record("d", 2012, other),
		record("e", 2013, other),
		record("f", 2008, female),
	)

	groups, err := s.store.CountByYearGender(s.ctx, reportYears)
	s.Require().NoError(err)
	s.Equal([]models.YearGenderGroup{
		{Year: 2012, Male: 1, Female: 2},
		{Year: 2013, Male: 0, Female: 0},
	}, groups)
}

func (s *contractSuite) TestSumByAgeYear() {
	withAge := func(a, dead int, cost float64) func(*models.Record) {
		return func(r *models.Record) {
			r.Age = age(a)
			r.Dead = dead
			r.Cost = cost
		}
	}
	noAge := func(r *models.Record) { r.Dead = 5 }
	s.replace(
		record("a", 2011, withAge(30, 1, 100)),
		record("b", 2011, withAge(30, 2, 50.5)),
		record("c", 2012, withAge(30, 0, 10)),
		record("d", 2011, withAge(45, 3, 0)),
		record("e", 2011, withAge(0, 4, 1)),
		record("f", 2011, withAge(101, 4, 1)),
		record("g", 2005, withAge(30, 4, 1)),
		record("h", 2011, noAge),
	)

	groups, err := s.store.SumByAgeYear(s.ctx, reportAges, reportYears)
	s.Require().NoError(err)
	s.Equal([]models.AgeYearGroup{
		{Age: 30, Year: 2011, Dead: 3, Cost: 150.5},
		{Age: 30, Year: 2012, Dead: 0, Cost: 10},
		{Age: 45, Year: 2011, Dead: 3, Cost: 0},
	}, groups)
}

func (s *contractSuite) TestCountByRoadTypeSurface() {
	road := func(typ, surface string) func(*models.Record) {
		return func(r *models.Record) {
			r.RoadType = models.RoadTypeCode(typ)
			r.RoadSurface = models.RoadSurfaceCode(surface)
		}
	}
	s.replace(
		record("a", 2010, road("2", "1")),
		record("b", 2003, road("1", "2")),
		record("c", 2011, road("1", "2")),
		record("d", 2012, road("1", "1")),
	)

	groups, err := s.store.CountByRoadTypeSurface(s.ctx)
	s.Require().NoError(err)
	s.Equal([]models.RoadPairGroup{
		{RoadType: "1", RoadSurface: "1", Count: 1},
		{RoadType: "1", RoadSurface: "2", Count: 2},
		{RoadType: "2", RoadSurface: "1", Count: 1},
	}, groups)
}

func (s *contractSuite) TestEmptyStore() {
	s.replace()

	years, err := s.store.CountByYear(s.ctx, reportYears)
	s.Require().NoError(err)
	s.Empty(years)

	pairs, err := s.store.CountByRoadTypeSurface(s.ctx)
	s.Require().NoError(err)
	s.Empty(pairs)

	s.NoError(s.store.Health(s.ctx))
}
