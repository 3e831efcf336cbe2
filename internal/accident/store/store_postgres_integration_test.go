//go:build integration

package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"accidentstats/internal/accident/models"
	"accidentstats/internal/accident/store"
	"accidentstats/pkg/platform/sentinel"
	"accidentstats/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	contractSuite
	postgres *containers.PostgresContainer
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	pg := store.NewPostgres(s.postgres.DB)
	s.Require().NoError(pg.EnsureSchema(context.Background()))
	s.store = pg
}

func (s *PostgresStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.Require().NoError(s.postgres.TruncateTables(s.ctx, "accidents", "accident_batches"))
}

// A failed copy must leave the previous batch in place.
func (s *PostgresStoreSuite) TestReplaceAllRollsBackOnFailure() {
	s.replace(record("a", 2010), record("b", 2011))
	before, err := s.store.BatchID(s.ctx)
	s.Require().NoError(err)

	broken := record("c", 2012, func(r *models.Record) { r.AccidentID = "bad\x00id" })
	err = s.store.ReplaceAll(s.ctx, []models.Record{record("d", 2013), broken})
	s.Require().Error(err)
	s.True(errors.Is(err, sentinel.ErrUnavailable))

	n, err := s.store.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(2), n)

	after, err := s.store.BatchID(s.ctx)
	s.Require().NoError(err)
	s.Equal(before, after)
}
