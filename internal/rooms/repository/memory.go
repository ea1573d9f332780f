package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	roomserrors "hotelbooker/internal/rooms/errors"
	"hotelbooker/pkg/model"
)

// MemoryRoomRepository keeps the room inventory in a mutex-guarded map.
type MemoryRoomRepository struct {
	mu       sync.RWMutex
	byID     map[string]*model.Room
	byNumber map[string]string
}

func NewMemoryRoomRepository() *MemoryRoomRepository {
	return &MemoryRoomRepository{
		byID:     make(map[string]*model.Room),
		byNumber: make(map[string]string),
	}
}

func (r *MemoryRoomRepository) Insert(ctx context.Context, room *model.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byNumber[room.Number]; exists {
		return roomserrors.ErrDuplicateNumber
	}

	if room.ID == "" {
		room.ID = uuid.New().String()
	}

	stored := *room
	r.byID[stored.ID] = &stored
	r.byNumber[stored.Number] = stored.ID
	return nil
}

func (r *MemoryRoomRepository) FindByID(ctx context.Context, id string) (*model.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.byID[id]
	if !ok {
		return nil, roomserrors.ErrNotFound
	}
	clone := *room
	return &clone, nil
}

func (r *MemoryRoomRepository) FindAll(ctx context.Context) ([]*model.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rooms := make([]*model.Room, 0, len(r.byID))
	for _, room := range r.byID {
		clone := *room
		rooms = append(rooms, &clone)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Number < rooms[j].Number })
	return rooms, nil
}

func (r *MemoryRoomRepository) UpdateStatus(ctx context.Context, id string, status model.RoomStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.byID[id]
	if !ok {
		return roomserrors.ErrNotFound
	}
	room.Status = status
	return nil
}

func (r *MemoryRoomRepository) BulkUpdateStatus(ctx context.Context, ids []string, status model.RoomStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var updated int64
	for _, id := range ids {
		if room, ok := r.byID[id]; ok {
			room.Status = status
			updated++
		}
	}
	return updated, nil
}
