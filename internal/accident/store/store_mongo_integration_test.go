//go:build integration

package store_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"

	"accidentstats/internal/accident/models"
	"accidentstats/internal/accident/store"
	"accidentstats/pkg/testutil/containers"
)

const mongoTestDB = "accident_test"

type MongoStoreSuite struct {
	contractSuite
	mongo      *containers.MongoContainer
	mongoStore *store.Mongo
}

func TestMongoStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(MongoStoreSuite))
}

func (s *MongoStoreSuite) SetupSuite() {
	s.mongo = containers.GetManager().GetMongo(s.T())
}

func (s *MongoStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.Require().NoError(s.mongo.DropDatabase(s.ctx, mongoTestDB))
	s.mongoStore = store.NewMongo(s.mongo.Database(mongoTestDB), "accidents")
	s.Require().NoError(s.mongoStore.EnsureIndexes(s.ctx))
	s.store = s.mongoStore
}

func (s *MongoStoreSuite) TestReplaceAllLeavesNoStagingCollections() {
	s.replace(record("a", 2010), record("b", 2011))
	s.replace(record("c", 2012))

	names, err := s.mongo.Database(mongoTestDB).ListCollectionNames(s.ctx, bson.D{})
	s.Require().NoError(err)
	s.Equal([]string{"accidents"}, names)
}

func (s *MongoStoreSuite) TestReplaceAllLargeBatch() {
	batch := make([]models.Record, 2500)
	for i := range batch {
		batch[i] = record(fmt.Sprintf("r%d", i), 2010+i%10)
	}
	s.replace(batch...)

	n, err := s.store.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(2500), n)

	groups, err := s.store.CountByYear(s.ctx, reportYears)
	s.Require().NoError(err)
	s.Len(groups, 10)
	for _, g := range groups {
		s.Equal(int64(250), g.Count)
	}
}
