package domain

import (
	"cmp"
	"slices"
	"strconv"

	"accidentstats/internal/stats/models"
)

// MissingSumSentinel fills both sums of an (age, year) cell that has no
// records. Chart consumers expect it to be non-zero.
const MissingSumSentinel = 1

// ReshapeAgeYear groups flat rows into one series per age, ascending by age,
// with each series ascending by year. Population is a copy of LifeExpectancy.
func ReshapeAgeYear(rows []models.AgeYearSummary) []models.AgeSeries {
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b models.AgeYearSummary) int {
		if c := cmp.Compare(a.Age, b.Age); c != 0 {
			return c
		}
		return cmp.Compare(a.Year, b.Year)
	})

	byAge := make(map[int]*models.AgeSeries)
	var ages []int
	for _, row := range sorted {
		series, ok := byAge[row.Age]
		if !ok {
			series = &models.AgeSeries{
				Name:   strconv.Itoa(row.Age),
				Region: string(CohortOf(row.Age)),
			}
			byAge[row.Age] = series
			ages = append(ages, row.Age)
		}
		series.Years = append(series.Years, row.Year)
		series.Income = append(series.Income, row.Income)
		series.LifeExpectancy = append(series.LifeExpectancy, row.LifeExpectancy)
	}

	out := make([]models.AgeSeries, 0, len(ages))
	for _, a := range ages {
		series := byAge[a]
		series.Population = slices.Clone(series.LifeExpectancy)
		out = append(out, *series)
	}
	return out
}
