// Package dataset turns the accident CSV export into records.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"accidentstats/internal/accident/models"
	dErrors "accidentstats/pkg/domain-errors"
)

// Column names of the source export.
const (
	ColAccidentID    = "ACCIDENT_ID"
	ColDistrictID    = "LOCATE_ID_DISTRICT"
	ColPoliceID      = "LOCATE_ID_POLICE"
	ColMonth         = "ACCIDENT_MONTH"
	ColYear          = "ACCIDENT_YEAR"
	ColCost          = "ACCIDENT_COST"
	ColAdmitted      = "HUMAN_ADMIT"
	ColDead          = "HUMAN_DEAD"
	ColRoadType      = "ROADTYPE_ID"
	ColRoadSurface   = "ROADSKIN_ID"
	ColAccidentPoint = "ACDPOINT_ID"
	ColAtmosphere    = "ATMOSPHERE_ID"
	ColLight         = "LIGHT_ID"
	ColEasting       = "GIS_E"
	ColNorthing      = "GIS_N"
	ColLat           = "GIS_LAT"
	ColLng           = "GIS_LNG"
	ColGender        = "PERSON_GENDER"
	ColAge           = "PERSON_AGE"
	ColPersonType    = "PERSON_TYPE"
	ColPersonState   = "PERSON_STATE"
	ColProvince      = "LOCATE_PROVINCE"
	ColDomicile      = "LOCATE_DOMICILE"
	ColAreaType      = "LOCATE_AREATYPE"
	ColDeadPlace     = "HEALTH_DEADPLACE"
	ColEMSDispatch   = "HEALTH_EMSSEND"
)

var (
	ErrInvalidYear    = errors.New("invalid accident year")
	ErrMissingColumn  = errors.New("missing required column")
	ErrInvalidNumber  = errors.New("invalid number")
	ErrNegativeAge    = errors.New("negative person age")
	ErrMalformedInput = errors.New("malformed csv")
)

// NormalizeYear expands the export's short year to four digits: one digit
// gets "200" prepended, four digits are kept, anything else gets "20".
// The result must fall within [models.MinYear, models.MaxYear].
func NormalizeYear(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidYear)
	}
	var full string
	switch len(raw) {
	case 1:
		full = "200" + raw
	case 4:
		full = raw
	default:
		full = "20" + raw
	}
	for _, c := range full {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidYear, raw)
		}
	}
	year, err := strconv.Atoi(full)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidYear, raw)
	}
	if year < models.MinYear || year > models.MaxYear {
		return 0, fmt.Errorf("%w: %q normalizes to %d", ErrInvalidYear, raw, year)
	}
	return year, nil
}

// Parse reads a header row followed by one record per row. Columns are
// matched by name; only ACCIDENT_YEAR is required. Any bad row rejects the
// whole batch with a validation error naming the line.
func Parse(r io.Reader) ([]models.Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, dErrors.Wrap(ErrMissingColumn, dErrors.CodeValidation, "dataset is empty, expected a header row")
	}
	if err != nil {
		return nil, dErrors.Wrap(fmt.Errorf("%w: %w", ErrMalformedInput, err), dErrors.CodeValidation, "dataset header is malformed")
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		cols[name] = i
	}
	if _, ok := cols[ColYear]; !ok {
		return nil, dErrors.Wrap(ErrMissingColumn, dErrors.CodeValidation, "dataset has no "+ColYear+" column")
	}

	var records []models.Record
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, dErrors.Wrap(fmt.Errorf("%w: %w", ErrMalformedInput, err), dErrors.CodeValidation, "dataset is malformed")
		}
		line, _ := reader.FieldPos(0)
		rec, err := parseRow(row{cols: cols, fields: fields})
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeValidation, fmt.Sprintf("dataset line %d: %s", line, err))
		}
		records = append(records, rec)
	}
	return records, nil
}

type row struct {
	cols   map[string]int
	fields []string
}

func (r row) str(col string) string {
	i, ok := r.cols[col]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

func (r row) integer(col string) (int, error) {
	v := r.str(col)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		// Some exports write integral columns as 1.0
		f, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, fmt.Errorf("%w in %s: %q", ErrInvalidNumber, col, v)
		}
		n = int(f)
	}
	return n, nil
}

func (r row) number(col string) (float64, error) {
	v := r.str(col)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w in %s: %q", ErrInvalidNumber, col, v)
	}
	return f, nil
}

func parseRow(r row) (models.Record, error) {
	year, err := NormalizeYear(r.str(ColYear))
	if err != nil {
		return models.Record{}, err
	}

	rec := models.Record{
		AccidentID:     r.str(ColAccidentID),
		DistrictID:     r.str(ColDistrictID),
		PoliceLocaleID: r.str(ColPoliceID),
		Year:           year,
		RoadType:       models.RoadTypeCode(r.str(ColRoadType)),
		RoadSurface:    models.RoadSurfaceCode(r.str(ColRoadSurface)),
		AccidentPoint:  models.AccidentPointCode(r.str(ColAccidentPoint)),
		Atmosphere:     models.AtmosphereCode(r.str(ColAtmosphere)),
		Light:          models.LightCode(r.str(ColLight)),
		Gender:         models.GenderCode(r.str(ColGender)),
		PersonType:     r.str(ColPersonType),
		PersonState:    r.str(ColPersonState),
		Province:       r.str(ColProvince),
		Domicile:       r.str(ColDomicile),
		AreaType:       r.str(ColAreaType),
		DeadPlace:      r.str(ColDeadPlace),
	}

	ints := []struct {
		col string
		dst *int
	}{
		{ColMonth, &rec.Month},
		{ColAdmitted, &rec.Admitted},
		{ColDead, &rec.Dead},
		{ColEMSDispatch, &rec.EMSDispatch},
	}
	for _, f := range ints {
		if *f.dst, err = r.integer(f.col); err != nil {
			return models.Record{}, err
		}
	}

	floats := []struct {
		col string
		dst *float64
	}{
		{ColCost, &rec.Cost},
		{ColEasting, &rec.Easting},
		{ColNorthing, &rec.Northing},
		{ColLat, &rec.Lat},
		{ColLng, &rec.Lng},
	}
	for _, f := range floats {
		if *f.dst, err = r.number(f.col); err != nil {
			return models.Record{}, err
		}
	}

	if r.str(ColAge) != "" {
		age, err := r.integer(ColAge)
		if err != nil {
			return models.Record{}, err
		}
		if age < 0 {
			return models.Record{}, fmt.Errorf("%w: %d", ErrNegativeAge, age)
		}
		rec.Age = &age
	}
	return rec, nil
}
