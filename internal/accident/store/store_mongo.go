package store

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"accidentstats/internal/accident/models"
	"accidentstats/pkg/platform/sentinel"
)

const insertBatchSize = 1000

// Mongo stores records in one collection and answers reports with native
// aggregation pipelines.
type Mongo struct {
	db         *mongo.Database
	collection string
}

func NewMongo(db *mongo.Database, collection string) *Mongo {
	return &Mongo{db: db, collection: collection}
}

func (s *Mongo) coll() *mongo.Collection {
	return s.db.Collection(s.collection)
}

// EnsureIndexes creates the indexes the report pipelines match on.
func (s *Mongo) EnsureIndexes(ctx context.Context) error {
	return createIndexes(ctx, s.coll())
}

func createIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ACCIDENT_YEAR", Value: 1}},
			Options: options.Index().SetName("accident_year_idx"),
		},
		{
			Keys:    bson.D{{Key: "PERSON_AGE", Value: 1}, {Key: "ACCIDENT_YEAR", Value: 1}},
			Options: options.Index().SetName("person_age_year_idx"),
		},
	})
	if err != nil {
		return fmt.Errorf("create indexes on %s: %w", coll.Name(), err)
	}
	return nil
}

// ReplaceAll writes the batch into a fresh staging collection and renames it
// over the live collection. Readers see either the old or the new batch; a
// failed insert drops the staging collection and leaves the live data intact.
func (s *Mongo) ReplaceAll(ctx context.Context, records []models.Record) error {
	staging := s.collection + "_staging_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	if err := s.db.CreateCollection(ctx, staging); err != nil {
		return fmt.Errorf("create staging collection: %w: %w", sentinel.ErrUnavailable, err)
	}
	stagingColl := s.db.Collection(staging)

	if err := s.fillStaging(ctx, stagingColl, records); err != nil {
		_ = stagingColl.Drop(context.WithoutCancel(ctx))
		return err
	}

	rename := bson.D{
		{Key: "renameCollection", Value: s.db.Name() + "." + staging},
		{Key: "to", Value: s.db.Name() + "." + s.collection},
		{Key: "dropTarget", Value: true},
	}
	if err := s.db.Client().Database("admin").RunCommand(ctx, rename).Err(); err != nil {
		_ = stagingColl.Drop(context.WithoutCancel(ctx))
		return fmt.Errorf("swap staging collection: %w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}

func (s *Mongo) fillStaging(ctx context.Context, coll *mongo.Collection, records []models.Record) error {
	for start := 0; start < len(records); start += insertBatchSize {
		end := min(start+insertBatchSize, len(records))
		docs := make([]any, 0, end-start)
		for i := start; i < end; i++ {
			docs = append(docs, records[i])
		}
		if _, err := coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false)); err != nil {
			return fmt.Errorf("insert batch at row %d: %w: %w", start, sentinel.ErrUnavailable, err)
		}
	}
	return createIndexes(ctx, coll)
}

// BatchID returns the UUID of the live collection. Each ReplaceAll renames a
// new staging collection over it, so the UUID changes together with the data.
func (s *Mongo) BatchID(ctx context.Context) (string, error) {
	cursor, err := s.db.ListCollections(ctx, bson.D{{Key: "name", Value: s.collection}})
	if err != nil {
		return "", fmt.Errorf("list collections: %w: %w", sentinel.ErrUnavailable, err)
	}
	defer cursor.Close(ctx)

	var specs []struct {
		Info struct {
			UUID primitive.Binary `bson:"uuid"`
		} `bson:"info"`
	}
	if err := cursor.All(ctx, &specs); err != nil {
		return "", fmt.Errorf("decode collection info: %w: %w", sentinel.ErrUnavailable, err)
	}
	if len(specs) == 0 {
		return "", nil
	}
	return hex.EncodeToString(specs[0].Info.UUID.Data), nil
}

func (s *Mongo) Count(ctx context.Context) (int64, error) {
	n, err := s.coll().CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count records: %w: %w", sentinel.ErrUnavailable, err)
	}
	return n, nil
}

func yearMatch(years models.Bounds) bson.D {
	return bson.D{{Key: "ACCIDENT_YEAR", Value: bson.D{
		{Key: "$gte", Value: years.From},
		{Key: "$lte", Value: years.To},
	}}}
}

func (s *Mongo) CountByYear(ctx context.Context, years models.Bounds) ([]models.YearGroup, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: yearMatch(years)}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$ACCIDENT_YEAR"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	var docs []struct {
		Year  int   `bson:"_id"`
		Count int64 `bson:"count"`
	}
	if err := s.aggregate(ctx, pipeline, &docs); err != nil {
		return nil, fmt.Errorf("count by year: %w", err)
	}

	out := make([]models.YearGroup, len(docs))
	for i, d := range docs {
		out[i] = models.YearGroup{Year: d.Year, Count: d.Count}
	}
	return out, nil
}

func genderCount(code models.GenderCode) bson.D {
	return bson.D{{Key: "$sum", Value: bson.D{{Key: "$cond", Value: bson.A{
		bson.D{{Key: "$eq", Value: bson.A{"$PERSON_GENDER", string(code)}}}, 1, 0,
	}}}}}
}

func (s *Mongo) CountByYearGender(ctx context.Context, years models.Bounds) ([]models.YearGenderGroup, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: yearMatch(years)}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$ACCIDENT_YEAR"},
			{Key: "male", Value: genderCount(models.GenderMale)},
			{Key: "female", Value: genderCount(models.GenderFemale)},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	var docs []struct {
		Year   int   `bson:"_id"`
		Male   int64 `bson:"male"`
		Female int64 `bson:"female"`
	}
	if err := s.aggregate(ctx, pipeline, &docs); err != nil {
		return nil, fmt.Errorf("count by year and gender: %w", err)
	}

	out := make([]models.YearGenderGroup, len(docs))
	for i, d := range docs {
		out[i] = models.YearGenderGroup{Year: d.Year, Male: d.Male, Female: d.Female}
	}
	return out, nil
}

func (s *Mongo) SumByAgeYear(ctx context.Context, ages, years models.Bounds) ([]models.AgeYearGroup, error) {
	match := yearMatch(years)
	match = append(match, bson.E{Key: "PERSON_AGE", Value: bson.D{
		{Key: "$gte", Value: ages.From},
		{Key: "$lte", Value: ages.To},
	}})

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "age", Value: "$PERSON_AGE"},
				{Key: "year", Value: "$ACCIDENT_YEAR"},
			}},
			{Key: "dead", Value: bson.D{{Key: "$sum", Value: "$HUMAN_DEAD"}}},
			{Key: "cost", Value: bson.D{{Key: "$sum", Value: "$ACCIDENT_COST"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id.age", Value: 1}, {Key: "_id.year", Value: 1}}}},
	}

	var docs []struct {
		ID struct {
			Age  int `bson:"age"`
			Year int `bson:"year"`
		} `bson:"_id"`
		Dead int64   `bson:"dead"`
		Cost float64 `bson:"cost"`
	}
	if err := s.aggregate(ctx, pipeline, &docs); err != nil {
		return nil, fmt.Errorf("sum by age and year: %w", err)
	}

	out := make([]models.AgeYearGroup, len(docs))
	for i, d := range docs {
		out[i] = models.AgeYearGroup{Age: d.ID.Age, Year: d.ID.Year, Dead: d.Dead, Cost: d.Cost}
	}
	return out, nil
}

func (s *Mongo) CountByRoadTypeSurface(ctx context.Context) ([]models.RoadPairGroup, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "type", Value: "$ROADTYPE_ID"},
				{Key: "surface", Value: "$ROADSKIN_ID"},
			}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id.type", Value: 1}, {Key: "_id.surface", Value: 1}}}},
	}

	var docs []struct {
		ID struct {
			Type    string `bson:"type"`
			Surface string `bson:"surface"`
		} `bson:"_id"`
		Count int64 `bson:"count"`
	}
	if err := s.aggregate(ctx, pipeline, &docs); err != nil {
		return nil, fmt.Errorf("count by road type and surface: %w", err)
	}

	out := make([]models.RoadPairGroup, len(docs))
	for i, d := range docs {
		out[i] = models.RoadPairGroup{
			RoadType:    models.RoadTypeCode(d.ID.Type),
			RoadSurface: models.RoadSurfaceCode(d.ID.Surface),
			Count:       d.Count,
		}
	}
	return out, nil
}

func (s *Mongo) aggregate(ctx context.Context, pipeline mongo.Pipeline, out any) error {
	cursor, err := s.coll().Aggregate(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err)
	}
	defer cursor.Close(ctx)
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("%w: decode: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}

func (s *Mongo) Health(ctx context.Context) error {
	if err := s.db.Client().Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}
