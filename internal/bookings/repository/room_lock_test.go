package repository

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestRoomLockTTLIndex(t *testing.T) {
	idx := roomLockTTLIndex()

	keys, ok := idx.Keys.(bson.D)
	if !ok || len(keys) != 1 {
		t.Fatalf("TTL index keys = %v, want a single expires_at key", idx.Keys)
	}
	if keys[0].Key != "expires_at" {
		t.Errorf("TTL index key = %q, want expires_at", keys[0].Key)
	}

	if idx.Options == nil || idx.Options.ExpireAfterSeconds == nil {
		t.Fatal("TTL index must set ExpireAfterSeconds")
	}
	if *idx.Options.ExpireAfterSeconds != 0 {
		t.Errorf("ExpireAfterSeconds = %d, want 0 so expires_at is the deadline itself", *idx.Options.ExpireAfterSeconds)
	}
}
