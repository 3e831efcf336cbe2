package models

// Bounds is a closed integer interval [From, To] used to restrict grouping
// queries.
type Bounds struct {
	From int
	To   int
}

// Contains reports whether v lies inside the closed interval.
func (b Bounds) Contains(v int) bool {
	return v >= b.From && v <= b.To
}

// YearGroup is the store's row count for one year.
type YearGroup struct {
	Year  int
	Count int64
}

// YearGenderGroup splits one year's rows by gender code.
type YearGenderGroup struct {
	Year   int
	Male   int64
	Female int64
}

// AgeYearGroup sums casualties and cost for one (age, year) pair.
type AgeYearGroup struct {
	Age  int
	Year int
	Dead int64
	Cost float64
}

// RoadPairGroup counts rows for one (road type, road surface) pair.
type RoadPairGroup struct {
	RoadType    RoadTypeCode
	RoadSurface RoadSurfaceCode
	Count       int64
}
