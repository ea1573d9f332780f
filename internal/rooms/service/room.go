package service

import (
	"context"
	"errors"

	"hotelbooker/internal/events"
	roomserrors "hotelbooker/internal/rooms/errors"
	"hotelbooker/internal/rooms/repository"
	"hotelbooker/internal/rooms/validator"
	"hotelbooker/pkg/config"
	apperrors "hotelbooker/pkg/errors"
	"hotelbooker/pkg/model"
	"hotelbooker/pkg/sanitizer"
)

type RoomService interface {
	Create(ctx context.Context, room *model.Room) error
	GetByID(ctx context.Context, id string) (*model.Room, error)
	// VisibleRooms returns the rooms passing the filter, in room-number
	// order. Filtering never reorders rooms relative to the full list.
	VisibleRooms(ctx context.Context, filter model.RoomFilter) ([]*model.Room, error)
	UpdateStatus(ctx context.Context, id string, status model.RoomStatus) (*model.Room, error)
	BulkSetStatus(ctx context.Context, ids []string, status model.RoomStatus) (int64, error)
	Summary(ctx context.Context) (*model.RoomSummary, error)
}

type roomService struct {
	repo      repository.RoomRepository
	validator *validator.RoomValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewRoomService(
	repo repository.RoomRepository,
	validator *validator.RoomValidator,
	publisher events.Publisher,
	cfg *config.Config,
) RoomService {
	return &roomService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *roomService) Create(ctx context.Context, room *model.Room) error {
	room.Number = sanitizer.TrimAndNormalize(room.Number)
	if room.Status == "" {
		room.Status = model.RoomAvailable
	}

	if err := s.validator.Validate(room); err != nil {
		s.cfg.Log.Warn("Room validation failed", "error", err)
		return apperrors.Validation("Room validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Insert(ctx, room); err != nil {
		if errors.Is(err, roomserrors.ErrDuplicateNumber) {
			return apperrors.Conflict("Room number " + room.Number + " already in use")
		}
		s.cfg.Log.Error("Failed to create room", "number", room.Number, "error", err)
		return apperrors.Internal("Failed to create room", err)
	}

	s.cfg.Log.Info("Room created", "id", room.ID, "number", room.Number, "type", room.Type)
	return nil
}

func (s *roomService) GetByID(ctx context.Context, id string) (*model.Room, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Room ID cannot be empty")
	}

	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Room", id)
		}
		if errors.Is(err, roomserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid room ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve room", err)
	}
	return room, nil
}

func (s *roomService) VisibleRooms(ctx context.Context, filter model.RoomFilter) ([]*model.Room, error) {
	if filter.Type != "" && filter.Type != model.FilterAll && !model.RoomType(filter.Type).Valid() {
		return nil, apperrors.InvalidInput("Unknown room type filter: " + filter.Type)
	}
	if filter.Status != "" && filter.Status != model.FilterAll && !model.RoomStatus(filter.Status).Valid() {
		return nil, apperrors.InvalidInput("Unknown room status filter: " + filter.Status)
	}

	rooms, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list rooms", "error", err)
		return nil, apperrors.Internal("Failed to retrieve rooms", err)
	}

	visible := make([]*model.Room, 0, len(rooms))
	for _, room := range rooms {
		if filter.Match(room) {
			visible = append(visible, room)
		}
	}
	return visible, nil
}

func (s *roomService) UpdateStatus(ctx context.Context, id string, status model.RoomStatus) (*model.Room, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Room ID cannot be empty")
	}
	if !status.Valid() {
		return nil, apperrors.InvalidInput("Unknown room status: " + string(status))
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Room", id)
		}
		s.cfg.Log.Error("Failed to update room status", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update room status", err)
	}

	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("Failed to reload room", err)
	}

	s.publisher.PublishRoom(ctx, events.TypeRoomStatusUpdated, events.RoomStatusEvent{
		RoomID: id,
		Status: status,
	}, id)

	s.cfg.Log.Info("Room status updated", "id", id, "status", status)
	return room, nil
}

func (s *roomService) BulkSetStatus(ctx context.Context, ids []string, status model.RoomStatus) (int64, error) {
	if len(ids) == 0 {
		return 0, apperrors.InvalidInput("At least one room ID is required")
	}
	if !status.Valid() {
		return 0, apperrors.InvalidInput("Unknown room status: " + string(status))
	}

	updated, err := s.repo.BulkUpdateStatus(ctx, ids, status)
	if err != nil {
		s.cfg.Log.Error("Failed to bulk update room status", "count", len(ids), "error", err)
		return 0, apperrors.Internal("Failed to update rooms", err)
	}

	s.publisher.PublishRoom(ctx, events.TypeRoomsBulkUpdated, events.RoomsBulkEvent{
		RoomIDs: ids,
		Status:  status,
	}, ids[0])

	s.cfg.Log.Info("Room statuses updated", "requested", len(ids), "updated", updated, "status", status)
	return updated, nil
}

func (s *roomService) Summary(ctx context.Context) (*model.RoomSummary, error) {
	rooms, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve rooms", err)
	}

	summary := &model.RoomSummary{Total: len(rooms)}
	for _, room := range rooms {
		switch room.Status {
		case model.RoomAvailable:
			summary.Available++
		case model.RoomOccupied:
			summary.Occupied++
		case model.RoomMaintenance:
			summary.Maintenance++
		case model.RoomBlocked:
			summary.Blocked++
		}
	}
	return summary, nil
}
