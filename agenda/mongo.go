package agenda

import (
	"context"

	"boxbook/db"
	"boxbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoHolidays is the holiday set backed by the holidays collection.
type MongoHolidays struct {
	coll *mongo.Collection
}

func NewMongoHolidays() *MongoHolidays {
	return &MongoHolidays{coll: db.HolidaysCollection}
}

func (h *MongoHolidays) IsHoliday(ctx context.Context, date string) (bool, error) {
	count, err := h.coll.CountDocuments(ctx, bson.M{"date": date})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (h *MongoHolidays) List(ctx context.Context) ([]models.Holiday, error) {
	cur, err := h.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"date": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var holidays []models.Holiday
	if err := cur.All(ctx, &holidays); err != nil {
		return nil, err
	}
	return holidays, nil
}

func (h *MongoHolidays) Add(ctx context.Context, holiday models.Holiday) error {
	_, err := h.coll.UpdateOne(ctx,
		bson.M{"date": holiday.Date},
		bson.M{"$set": holiday},
		options.Update().SetUpsert(true),
	)
	return err
}

func (h *MongoHolidays) Remove(ctx context.Context, date string) error {
	_, err := h.coll.DeleteOne(ctx, bson.M{"date": date})
	return err
}

// Seed inserts the default holiday set when the collection is empty.
func (h *MongoHolidays) Seed(ctx context.Context) error {
	count, err := h.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	docs := make([]interface{}, len(defaultHolidays))
	for i, holiday := range defaultHolidays {
		docs[i] = holiday
	}
	_, err = h.coll.InsertMany(ctx, docs)
	return err
}

// MongoOverrides loads and stores per-date schedule overrides.
type MongoOverrides struct {
	coll *mongo.Collection
}

func NewMongoOverrides() *MongoOverrides {
	return &MongoOverrides{coll: db.OverridesCollection}
}

func (o *MongoOverrides) Get(ctx context.Context, date string) (*models.DayOverride, error) {
	var override models.DayOverride
	err := o.coll.FindOne(ctx, bson.M{"date": date}).Decode(&override)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &override, nil
}

func (o *MongoOverrides) Put(ctx context.Context, override models.DayOverride) error {
	_, err := o.coll.UpdateOne(ctx,
		bson.M{"date": override.Date},
		bson.M{"$set": override},
		options.Update().SetUpsert(true),
	)
	return err
}
