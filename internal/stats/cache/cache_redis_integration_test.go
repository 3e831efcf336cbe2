//go:build integration

package cache_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"accidentstats/internal/stats/cache"
	"accidentstats/internal/stats/models"
	"accidentstats/pkg/testutil/containers"
)

type RedisCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *cache.Redis
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.cache = cache.NewRedis(s.redis.Client, 5*time.Minute)
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisCacheSuite) TestRoundTrip() {
	ctx := context.Background()
	want := []models.RoadPairCount{{Source: "1", Target: "2", Count: 7}}

	s.Require().NoError(s.cache.Set(ctx, "road-pairs", want))

	var got []models.RoadPairCount
	ok, err := s.cache.Get(ctx, "road-pairs", &got)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(want, got)

	ttl, err := s.redis.Client.TTL(ctx, "stats:road-pairs").Result()
	s.Require().NoError(err)
	s.Positive(ttl)
}

func (s *RedisCacheSuite) TestMiss() {
	var got []models.YearCount
	ok, err := s.cache.Get(context.Background(), "year-count", &got)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *RedisCacheSuite) TestInvalidateKeepsForeignKeys() {
	ctx := context.Background()
	for i := range 250 {
		s.Require().NoError(s.cache.Set(ctx, fmt.Sprintf("report-%d", i), i))
	}
	s.Require().NoError(s.redis.Client.Set(ctx, "other:key", "1", 0).Err())

	s.Require().NoError(s.cache.Invalidate(ctx))

	n, err := s.redis.Client.DBSize(ctx).Result()
	s.Require().NoError(err)
	s.Equal(int64(1), n)
}
