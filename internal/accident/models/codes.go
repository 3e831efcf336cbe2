package models

// GenderCode is the PERSON_GENDER code of the source dataset.
//
//	code | meaning
//	-----+--------
//	"1"  | male
//	"2"  | female
//	     | any other code is kept verbatim and excluded from gender splits
type GenderCode string

const (
	GenderMale    GenderCode = "1"
	GenderFemale  GenderCode = "2"
	GenderUnknown GenderCode = ""
)

func (g GenderCode) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	default:
		return "unknown"
	}
}

// The remaining categorical fields are opaque codes until their code tables
// are confirmed with the data owner. They are typed so they cannot be mixed up
// with each other or with free text.
type (
	RoadTypeCode      string
	RoadSurfaceCode   string
	AccidentPointCode string
	AtmosphereCode    string
	LightCode         string
)
