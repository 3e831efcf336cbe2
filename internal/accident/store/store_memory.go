package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"accidentstats/internal/accident/models"
)

// InMemory keeps the record set in a slice. It backs STORE_DRIVER=memory and
// the service and handler tests; grouping mirrors what the database stores do.
type InMemory struct {
	mu      sync.RWMutex
	records []models.Record
	batch   string
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

// ReplaceAll swaps the whole record set in one step.
func (s *InMemory) ReplaceAll(_ context.Context, records []models.Record) error {
	copied := make([]models.Record, len(records))
	copy(copied, records)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = copied
	s.batch = uuid.NewString()
	return nil
}

// BatchID identifies the current record set. It is "" before the first
// ReplaceAll.
func (s *InMemory) BatchID(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.batch, nil
}

func (s *InMemory) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.records)), nil
}

func (s *InMemory) CountByYear(_ context.Context, years models.Bounds) ([]models.YearGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[int]int64)
	for _, r := range s.records {
		if years.Contains(r.Year) {
			counts[r.Year]++
		}
	}

	out := make([]models.YearGroup, 0, len(counts))
	for year, n := range counts {
		out = append(out, models.YearGroup{Year: year, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out, nil
}

func (s *InMemory) CountByYearGender(_ context.Context, years models.Bounds) ([]models.YearGenderGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := make(map[int]*models.YearGenderGroup)
	for _, r := range s.records {
		if !years.Contains(r.Year) {
			continue
		}
		g, ok := groups[r.Year]
		if !ok {
			g = &models.YearGenderGroup{Year: r.Year}
			groups[r.Year] = g
		}
		switch r.Gender {
		case models.GenderMale:
			g.Male++
		case models.GenderFemale:
			g.Female++
		}
	}

	out := make([]models.YearGenderGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out, nil
}

func (s *InMemory) SumByAgeYear(_ context.Context, ages, years models.Bounds) ([]models.AgeYearGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type key struct{ age, year int }
	groups := make(map[key]*models.AgeYearGroup)
	for _, r := range s.records {
		if r.Age == nil || !ages.Contains(*r.Age) || !years.Contains(r.Year) {
			continue
		}
		k := key{*r.Age, r.Year}
		g, ok := groups[k]
		if !ok {
			g = &models.AgeYearGroup{Age: k.age, Year: k.year}
			groups[k] = g
		}
		g.Dead += int64(r.Dead)
		g.Cost += r.Cost
	}

	out := make([]models.AgeYearGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Age != out[j].Age {
			return out[i].Age < out[j].Age
		}
		return out[i].Year < out[j].Year
	})
	return out, nil
}

func (s *InMemory) CountByRoadTypeSurface(_ context.Context) ([]models.RoadPairGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type key struct {
		roadType models.RoadTypeCode
		surface  models.RoadSurfaceCode
	}
	counts := make(map[key]int64)
	for _, r := range s.records {
		counts[key{r.RoadType, r.RoadSurface}]++
	}

	out := make([]models.RoadPairGroup, 0, len(counts))
	for k, n := range counts {
		out = append(out, models.RoadPairGroup{RoadType: k.roadType, RoadSurface: k.surface, Count: n})
	}
	sortRoadPairs(out)
	return out, nil
}

// Health always succeeds for the in-memory store.
func (s *InMemory) Health(_ context.Context) error {
	return nil
}

func sortRoadPairs(pairs []models.RoadPairGroup) {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].RoadType != pairs[j].RoadType {
			return pairs[i].RoadType < pairs[j].RoadType
		}
		return pairs[i].RoadSurface < pairs[j].RoadSurface
	})
}
