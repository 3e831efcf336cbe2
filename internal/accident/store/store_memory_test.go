package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"accidentstats/internal/accident/models"
	"accidentstats/internal/accident/store"
)

type InMemoryStoreSuite struct {
	contractSuite
	memory *store.InMemory
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.memory = store.NewInMemory()
	s.store = s.memory
}

func (s *InMemoryStoreSuite) TestReplaceAllCopiesInput() {
	batch := []models.Record{record("a", 2010)}
	s.replace(batch...)

	batch[0].Year = 2015

	groups, err := s.memory.CountByYear(s.ctx, reportYears)
	s.Require().NoError(err)
	s.Equal([]models.YearGroup{{Year: 2010, Count: 1}}, groups)
}
