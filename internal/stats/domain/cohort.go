package domain

// Cohort is the generation label assigned to an age.
type Cohort string

const (
	CohortGenZ        Cohort = "Gen Z"
	CohortMillennials Cohort = "Millennials"
	CohortGenX        Cohort = "Gen X"
	CohortBoomersII   Cohort = "Boomers II"
	CohortBoomersI    Cohort = "Boomers I"
	CohortPostWar     Cohort = "Post War"
	CohortWWII        Cohort = "WW II"
	CohortNone        Cohort = ""
)

// MinCohortAge is the youngest classified age.
const MinCohortAge = 1

// cohortBounds are inclusive upper bounds in ascending order; first match wins.
var cohortBounds = []struct {
	upTo   int
	cohort Cohort
}{
	{24, CohortGenZ},
	{40, CohortMillennials},
	{56, CohortGenX},
	{66, CohortBoomersII},
	{75, CohortBoomersI},
	{93, CohortPostWar},
	{100, CohortWWII},
}

// CohortOf maps an age to its cohort. Ages below MinCohortAge or above the
// last bound map to CohortNone.
func CohortOf(age int) Cohort {
	if age < MinCohortAge {
		return CohortNone
	}
	for _, b := range cohortBounds {
		if age <= b.upTo {
			return b.cohort
		}
	}
	return CohortNone
}
