package models

// Record is one accident observation. Bson and column names keep the upper
// snake case of the source dataset so existing collections stay readable.
type Record struct {
	AccidentID     string `bson:"ACCIDENT_ID" json:"accidentId"`
	DistrictID     string `bson:"LOCATE_ID_DISTRICT" json:"districtId"`
	PoliceLocaleID string `bson:"LOCATE_ID_POLICE" json:"policeLocaleId"`

	Month int `bson:"ACCIDENT_MONTH" json:"month"`
	Year  int `bson:"ACCIDENT_YEAR" json:"year"`

	Cost     float64 `bson:"ACCIDENT_COST" json:"cost"`
	Admitted int     `bson:"HUMAN_ADMIT" json:"admitted"`
	Dead     int     `bson:"HUMAN_DEAD" json:"dead"`

	RoadType      RoadTypeCode      `bson:"ROADTYPE_ID" json:"roadType"`
	RoadSurface   RoadSurfaceCode   `bson:"ROADSKIN_ID" json:"roadSurface"`
	AccidentPoint AccidentPointCode `bson:"ACDPOINT_ID" json:"accidentPoint"`
	Atmosphere    AtmosphereCode    `bson:"ATMOSPHERE_ID" json:"atmosphere"`
	Light         LightCode         `bson:"LIGHT_ID" json:"light"`

	Easting  float64 `bson:"GIS_E" json:"easting"`
	Northing float64 `bson:"GIS_N" json:"northing"`
	Lat      float64 `bson:"GIS_LAT" json:"lat"`
	Lng      float64 `bson:"GIS_LNG" json:"lng"`

	Gender      GenderCode `bson:"PERSON_GENDER" json:"gender"`
	Age         *int       `bson:"PERSON_AGE,omitempty" json:"age,omitempty"`
	PersonType  string     `bson:"PERSON_TYPE" json:"personType"`
	PersonState string     `bson:"PERSON_STATE" json:"personState"`

	Province    string `bson:"LOCATE_PROVINCE" json:"province"`
	Domicile    string `bson:"LOCATE_DOMICILE" json:"domicile"`
	AreaType    string `bson:"LOCATE_AREATYPE" json:"areaType"`
	DeadPlace   string `bson:"HEALTH_DEADPLACE" json:"deadPlace"`
	EMSDispatch int    `bson:"HEALTH_EMSSEND" json:"emsDispatch"`
}

// Valid years after ingest normalization.
const (
	MinYear = 2000
	MaxYear = 2099
)

// HasAge reports whether the record carries a person age.
func (r Record) HasAge() bool {
	return r.Age != nil
}
