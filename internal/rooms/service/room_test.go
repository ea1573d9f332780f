package service

import (
	"context"
	"testing"

	"hotelbooker/internal/events"
	roomserrors "hotelbooker/internal/rooms/errors"
	"hotelbooker/internal/rooms/validator"
	"hotelbooker/pkg/config"
	apperrors "hotelbooker/pkg/errors"
	"hotelbooker/pkg/logger"
	"hotelbooker/pkg/model"
)

// Mock repository for testing
type mockRoomRepository struct {
	insertFunc           func(ctx context.Context, room *model.Room) error
	findByIDFunc         func(ctx context.Context, id string) (*model.Room, error)
	findAllFunc          func(ctx context.Context) ([]*model.Room, error)
	updateStatusFunc     func(ctx context.Context, id string, status model.RoomStatus) error
	bulkUpdateStatusFunc func(ctx context.Context, ids []string, status model.RoomStatus) (int64, error)
}

func (m *mockRoomRepository) Insert(ctx context.Context, room *model.Room) error {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, room)
	}
	return nil
}

func (m *mockRoomRepository) FindByID(ctx context.Context, id string) (*model.Room, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return &model.Room{ID: id, Status: model.RoomAvailable}, nil
}

func (m *mockRoomRepository) FindAll(ctx context.Context) ([]*model.Room, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return []*model.Room{}, nil
}

func (m *mockRoomRepository) UpdateStatus(ctx context.Context, id string, status model.RoomStatus) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockRoomRepository) BulkUpdateStatus(ctx context.Context, ids []string, status model.RoomStatus) (int64, error) {
	if m.bulkUpdateStatusFunc != nil {
		return m.bulkUpdateStatusFunc(ctx, ids, status)
	}
	return int64(len(ids)), nil
}

func newTestService(repo *mockRoomRepository) RoomService {
	log := logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
	cfg := &config.Config{Log: log}
	return NewRoomService(repo, validator.NewRoomValidator(log), events.NopPublisher{}, cfg)
}

func demoRooms() []*model.Room {
	return []*model.Room{
		{ID: "r1", Number: "101", Type: model.RoomTypeStandard, Floor: 1, Status: model.RoomAvailable, BaseRate: 120, Capacity: 2},
		{ID: "r2", Number: "102", Type: model.RoomTypeStandard, Floor: 1, Status: model.RoomOccupied, BaseRate: 120, Capacity: 2},
		{ID: "r3", Number: "201", Type: model.RoomTypeDeluxe, Floor: 2, Status: model.RoomAvailable, BaseRate: 180, Capacity: 3},
		{ID: "r4", Number: "202", Type: model.RoomTypeSuite, Floor: 2, Status: model.RoomMaintenance, BaseRate: 350, Capacity: 4},
		{ID: "r5", Number: "301", Type: model.RoomTypePresidential, Floor: 3, Status: model.RoomBlocked, BaseRate: 750, Capacity: 6},
	}
}

func TestVisibleRooms(t *testing.T) {
	svc := newTestService(&mockRoomRepository{
		findAllFunc: func(ctx context.Context) ([]*model.Room, error) {
			return demoRooms(), nil
		},
	})
	ctx := context.Background()

	tests := []struct {
		name    string
		filter  model.RoomFilter
		wantIDs []string
		wantErr bool
	}{
		{
			name:    "no filter returns everything in order",
			filter:  model.RoomFilter{},
			wantIDs: []string{"r1", "r2", "r3", "r4", "r5"},
		},
		{
			name:    "all keyword behaves like no filter",
			filter:  model.RoomFilter{Type: model.FilterAll, Status: model.FilterAll},
			wantIDs: []string{"r1", "r2", "r3", "r4", "r5"},
		},
		{
			name:    "type filter",
			filter:  model.RoomFilter{Type: "standard"},
			wantIDs: []string{"r1", "r2"},
		},
		{
			name:    "status filter",
			filter:  model.RoomFilter{Status: "available"},
			wantIDs: []string{"r1", "r3"},
		},
		{
			name:    "type and status combined",
			filter:  model.RoomFilter{Type: "standard", Status: "available"},
			wantIDs: []string{"r1"},
		},
		{
			name:    "filter matching nothing yields empty list",
			filter:  model.RoomFilter{Type: "presidential", Status: "available"},
			wantIDs: []string{},
		},
		{
			name:    "unknown type is rejected",
			filter:  model.RoomFilter{Type: "penthouse"},
			wantErr: true,
		},
		{
			name:    "unknown status is rejected",
			filter:  model.RoomFilter{Status: "dirty"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rooms, err := svc.VisibleRooms(ctx, tt.filter)
			if tt.wantErr {
				if err == nil {
					t.Fatal("VisibleRooms() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("VisibleRooms() unexpected error: %v", err)
			}
			if len(rooms) != len(tt.wantIDs) {
				t.Fatalf("VisibleRooms() returned %d rooms, want %d", len(rooms), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if rooms[i].ID != want {
					t.Errorf("rooms[%d].ID = %q, want %q", i, rooms[i].ID, want)
				}
			}
		})
	}
}

func TestUpdateStatus(t *testing.T) {
	t.Run("persists and reloads the room", func(t *testing.T) {
		var gotStatus model.RoomStatus
		svc := newTestService(&mockRoomRepository{
			updateStatusFunc: func(ctx context.Context, id string, status model.RoomStatus) error {
				gotStatus = status
				return nil
			},
			findByIDFunc: func(ctx context.Context, id string) (*model.Room, error) {
				return &model.Room{ID: id, Status: model.RoomMaintenance}, nil
			},
		})

		room, err := svc.UpdateStatus(context.Background(), "r1", model.RoomMaintenance)
		if err != nil {
			t.Fatalf("UpdateStatus() unexpected error: %v", err)
		}
		if gotStatus != model.RoomMaintenance {
			t.Errorf("repository received status %q", gotStatus)
		}
		if room.Status != model.RoomMaintenance {
			t.Errorf("returned room status = %q", room.Status)
		}
	})

	t.Run("unknown status is rejected before hitting the store", func(t *testing.T) {
		svc := newTestService(&mockRoomRepository{
			updateStatusFunc: func(ctx context.Context, id string, status model.RoomStatus) error {
				t.Error("repository must not be called for an invalid status")
				return nil
			},
		})

		_, err := svc.UpdateStatus(context.Background(), "r1", "dirty")
		if err == nil {
			t.Fatal("UpdateStatus() expected error")
		}
	})

	t.Run("missing room maps to not found", func(t *testing.T) {
		svc := newTestService(&mockRoomRepository{
			updateStatusFunc: func(ctx context.Context, id string, status model.RoomStatus) error {
				return roomserrors.ErrNotFound
			},
		})

		_, err := svc.UpdateStatus(context.Background(), "ghost", model.RoomBlocked)
		appErr := apperrors.AsAppError(err)
		if appErr == nil || appErr.Code != apperrors.CodeNotFound {
			t.Errorf("UpdateStatus() error = %v, want NOT_FOUND", err)
		}
	})
}

func TestBulkSetStatus(t *testing.T) {
	t.Run("reports updated count", func(t *testing.T) {
		svc := newTestService(&mockRoomRepository{
			bulkUpdateStatusFunc: func(ctx context.Context, ids []string, status model.RoomStatus) (int64, error) {
				return 2, nil
			},
		})

		updated, err := svc.BulkSetStatus(context.Background(), []string{"r1", "r2", "ghost"}, model.RoomBlocked)
		if err != nil {
			t.Fatalf("BulkSetStatus() unexpected error: %v", err)
		}
		if updated != 2 {
			t.Errorf("BulkSetStatus() = %d, want 2", updated)
		}
	})

	t.Run("empty id list is rejected", func(t *testing.T) {
		svc := newTestService(&mockRoomRepository{})
		if _, err := svc.BulkSetStatus(context.Background(), nil, model.RoomBlocked); err == nil {
			t.Fatal("BulkSetStatus() expected error for empty ids")
		}
	})
}

func TestSummary(t *testing.T) {
	svc := newTestService(&mockRoomRepository{
		findAllFunc: func(ctx context.Context) ([]*model.Room, error) {
			return demoRooms(), nil
		},
	})

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary() unexpected error: %v", err)
	}

	want := model.RoomSummary{Total: 5, Available: 2, Occupied: 1, Maintenance: 1, Blocked: 1}
	if *summary != want {
		t.Errorf("Summary() = %+v, want %+v", summary, want)
	}
}

func TestCreateRoom(t *testing.T) {
	t.Run("defaults status and normalizes number", func(t *testing.T) {
		var stored *model.Room
		svc := newTestService(&mockRoomRepository{
			insertFunc: func(ctx context.Context, room *model.Room) error {
				stored = room
				return nil
			},
		})

		room := &model.Room{
			Number:   "  101 ",
			Type:     model.RoomTypeStandard,
			Floor:    1,
			BaseRate: 120,
			Capacity: 2,
		}
		if err := svc.Create(context.Background(), room); err != nil {
			t.Fatalf("Create() unexpected error: %v", err)
		}
		if stored.Number != "101" {
			t.Errorf("room number = %q, want trimmed", stored.Number)
		}
		if stored.Status != model.RoomAvailable {
			t.Errorf("room status = %q, want available default", stored.Status)
		}
	})

	t.Run("duplicate number maps to conflict", func(t *testing.T) {
		svc := newTestService(&mockRoomRepository{
			insertFunc: func(ctx context.Context, room *model.Room) error {
				return roomserrors.ErrDuplicateNumber
			},
		})

		err := svc.Create(context.Background(), &model.Room{
			Number: "101", Type: model.RoomTypeStandard, Floor: 1, BaseRate: 120, Capacity: 2,
		})
		appErr := apperrors.AsAppError(err)
		if appErr == nil || appErr.Code != apperrors.CodeConflict {
			t.Errorf("Create() error = %v, want CONFLICT", err)
		}
	})

	t.Run("invalid room fails validation", func(t *testing.T) {
		svc := newTestService(&mockRoomRepository{})
		err := svc.Create(context.Background(), &model.Room{Number: "101"})
		if err == nil {
			t.Fatal("Create() expected validation error")
		}
	})
}
