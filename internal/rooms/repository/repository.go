package repository

import (
	"context"

	"hotelbooker/pkg/model"
)

// RoomRepository is the persistence contract for the room inventory.
// FindAll returns rooms ordered by room number so calendar rows are
// stable across requests.
type RoomRepository interface {
	Insert(ctx context.Context, room *model.Room) error
	FindByID(ctx context.Context, id string) (*model.Room, error)
	FindAll(ctx context.Context) ([]*model.Room, error)
	UpdateStatus(ctx context.Context, id string, status model.RoomStatus) error
	BulkUpdateStatus(ctx context.Context, ids []string, status model.RoomStatus) (int64, error)
}
