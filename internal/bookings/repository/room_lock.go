package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hotelbooker/pkg/config"
	"hotelbooker/pkg/logger"
	"hotelbooker/pkg/model"
)

const lockTTL = 10 * time.Second

// RoomLockRepository provides advisory locks that serialize writes
// against a single room.
type RoomLockRepository interface {
	Acquire(ctx context.Context, roomID string) (string, error)
	Release(ctx context.Context, lockID string) error
}

type mongoRoomLockRepository struct {
	collection *mongo.Collection
	log        *logger.Logger
}

func NewRoomLockRepository(cfg *config.Config) RoomLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	repo := &mongoRoomLockRepository{
		collection: db.Collection("Room_locks"),
		log:        cfg.Log,
	}
	repo.ensureTTLIndex(cfg.MongoConnTimeout)
	return repo
}

// ensureTTLIndex lets Mongo reap lock documents whose holder died between
// Acquire and Release, so a crashed request cannot wedge a room forever.
func (r *mongoRoomLockRepository) ensureTTLIndex(timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if _, err := r.collection.Indexes().CreateOne(ctx, roomLockTTLIndex()); err != nil {
		r.log.Warn("Failed to create room lock TTL index", "error", err)
	}
}

func roomLockTTLIndex() mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	}
}

// Acquire inserts the lock document. A duplicate key error means another
// request holds the lock for this room; an expired leftover lock is
// cleared and the insert retried once, covering the window before the
// TTL monitor sweeps it.
func (r *mongoRoomLockRepository) Acquire(ctx context.Context, roomID string) (string, error) {
	lockID := fmt.Sprintf("room_lock_%s", roomID)

	if err := r.insertLock(ctx, lockID); err != nil {
		if !mongo.IsDuplicateKeyError(err) {
			return "", err
		}
		deleted, delErr := r.collection.DeleteOne(ctx, bson.M{
			"_id":        lockID,
			"expires_at": bson.M{"$lt": time.Now()},
		})
		if delErr != nil || deleted.DeletedCount == 0 {
			return "", err
		}
		r.log.Warn("Cleared expired room lock", "lock_id", lockID)
		if err := r.insertLock(ctx, lockID); err != nil {
			return "", err
		}
	}
	return lockID, nil
}

func (r *mongoRoomLockRepository) insertLock(ctx context.Context, lockID string) error {
	lock := &model.RoomLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(lockTTL),
		CreatedAt: time.Now(),
	}
	_, err := r.collection.InsertOne(ctx, lock)
	return err
}

func (r *mongoRoomLockRepository) Release(ctx context.Context, lockID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID})
	return err
}
