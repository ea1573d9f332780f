package model

import "time"

// RoomLock is an advisory lock document guarding concurrent writes against
// the same room. The _id is derived from the room, so a duplicate key error
// on insert means another request holds the lock.
type RoomLock struct {
	ID        string    `bson:"_id"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}
