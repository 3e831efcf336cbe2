package models

// YearCount is one row of the yearly accident count report.
type YearCount struct {
	Year  int   `json:"year"`
	Count int64 `json:"count"`
}

// YearGenderCount splits one year's accidents by gender.
type YearGenderCount struct {
	Year        int   `json:"year"`
	MaleCount   int64 `json:"maleCount"`
	FemaleCount int64 `json:"femaleCount"`
}

// AgeYearSummary is one flat, gap-filled (age, year) cell: Income holds the
// summed dead count and LifeExpectancy the summed accident cost.
type AgeYearSummary struct {
	Age            int     `json:"age"`
	Year           int     `json:"year"`
	Income         int64   `json:"income"`
	LifeExpectancy float64 `json:"lifeExpectancy"`
}

// AgeSeries is the chart-ready series for one age. The slices are parallel
// and ordered by year.
type AgeSeries struct {
	Name           string    `json:"name"`
	Region         string    `json:"region"`
	Years          []int     `json:"years"`
	Income         []int64   `json:"income"`
	LifeExpectancy []float64 `json:"lifeExpectancy"`
	Population     []float64 `json:"population"`
}

// RoadPairCount counts accidents for one (road type, road surface) pair.
type RoadPairCount struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Count  int64  `json:"count"`
}
