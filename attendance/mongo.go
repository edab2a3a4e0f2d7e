package attendance

import (
	"context"

	"boxbook/db"
	"boxbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRecords stores one attendance document per user per date, enforced
// by the unique (userId, date) index.
type MongoRecords struct {
	coll *mongo.Collection
}

func NewMongoRecords() *MongoRecords {
	return &MongoRecords{coll: db.AttendanceCollection}
}

func (m *MongoRecords) Upsert(ctx context.Context, rec models.AttendanceRecord) error {
	_, err := m.coll.UpdateOne(ctx,
		bson.M{"userId": rec.UserID, "date": rec.Date},
		bson.M{"$set": rec},
		options.Update().SetUpsert(true),
	)
	return err
}

func (m *MongoRecords) History(ctx context.Context, userID, from, to string) ([]models.AttendanceRecord, error) {
	filter := bson.M{"userId": userID}
	dateRange := bson.M{}
	if from != "" {
		dateRange["$gte"] = from
	}
	if to != "" {
		dateRange["$lte"] = to
	}
	if len(dateRange) > 0 {
		filter["date"] = dateRange
	}

	cur, err := m.coll.Find(ctx, filter, options.Find().SetSort(bson.M{"date": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var records []models.AttendanceRecord
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
