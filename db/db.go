package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection       *mongo.Collection
	RostersCollection    *mongo.Collection
	AttendanceCollection *mongo.Collection
	OverridesCollection  *mongo.Collection
	HolidaysCollection   *mongo.Collection
	Client               *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	dbName := os.Getenv("MONGODB_DB")
	if dbName == "" {
		dbName = "boxbookdb"
	}

	UserCollection = Client.Database(dbName).Collection("users")
	RostersCollection = Client.Database(dbName).Collection("rosters")
	AttendanceCollection = Client.Database(dbName).Collection("attendance")
	OverridesCollection = Client.Database(dbName).Collection("overrides")
	HolidaysCollection = Client.Database(dbName).Collection("holidays")
}

// EnsureIndexes creates the unique indexes the write paths rely on: one
// roster per date, one attendance record per user per date.
func EnsureIndexes(ctx context.Context) error {
	_, err := RostersCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"date": 1},
		Options: options.Index().SetUnique(true).SetName("unique_date"),
	})
	if err != nil {
		return err
	}
	_, err = AttendanceCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_user_date"),
	})
	if err != nil {
		return err
	}
	_, err = UserCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"username": 1},
		Options: options.Index().SetUnique(true).SetName("unique_username"),
	})
	if err != nil {
		return err
	}
	_, err = HolidaysCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"date": 1},
		Options: options.Index().SetUnique(true).SetName("unique_holiday_date"),
	})
	return err
}
