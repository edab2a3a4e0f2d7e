package roster

import (
	"context"

	"boxbook/db"
	"boxbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const casRetries = 3

// MongoStore keeps one roster document per date in the rosters collection.
// Writes are guarded twice: the per-date mutex serializes updates inside
// this process, and the version filter on the write catches lost updates
// against other processes sharing the collection.
type MongoStore struct {
	coll  *mongo.Collection
	locks *keyedMutex
}

func NewMongoStore() *MongoStore {
	return &MongoStore{coll: db.RostersCollection, locks: newKeyedMutex()}
}

func (s *MongoStore) Get(ctx context.Context, date string) (*models.Roster, error) {
	var r models.Roster
	err := s.coll.FindOne(ctx, bson.M{"date": date}).Decode(&r)
	if err == mongo.ErrNoDocuments {
		return emptyRoster(date), nil
	}
	if err != nil {
		return nil, err
	}
	if r.Slots == nil {
		r.Slots = make(map[string][]models.BookingEntry)
	}
	return &r, nil
}

func (s *MongoStore) Update(ctx context.Context, date string, mutate func(*models.Roster) error) (*models.Roster, error) {
	lock := s.locks.get(date)
	lock.Lock()
	defer lock.Unlock()

	for attempt := 0; attempt < casRetries; attempt++ {
		current, err := s.Get(ctx, date)
		if err != nil {
			return nil, err
		}

		next := cloneRoster(current)
		if err := mutate(next); err != nil {
			return nil, err
		}

		prevVersion := next.Version
		touch(next)

		if prevVersion == 0 {
			_, err = s.coll.InsertOne(ctx, next)
			if mongo.IsDuplicateKeyError(err) {
				continue // another process created the date first
			}
			if err != nil {
				return nil, err
			}
			return next, nil
		}

		res, err := s.coll.ReplaceOne(ctx,
			bson.M{"date": date, "version": prevVersion},
			next,
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			continue // lost the version race, reload and retry
		}
		return next, nil
	}

	return nil, ErrConflict
}
