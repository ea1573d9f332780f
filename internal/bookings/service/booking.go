package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	bookingserrors "hotelbooker/internal/bookings/errors"
	"hotelbooker/internal/bookings/repository"
	"hotelbooker/internal/bookings/validator"
	"hotelbooker/internal/calendar/daterange"
	"hotelbooker/internal/events"
	roomserrors "hotelbooker/internal/rooms/errors"
	roomsrepo "hotelbooker/internal/rooms/repository"
	"hotelbooker/pkg/config"
	apperrors "hotelbooker/pkg/errors"
	"hotelbooker/pkg/model"
	"hotelbooker/pkg/sanitizer"
)

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, filter *model.BookingFilter, limit int, offset int64) ([]*model.Booking, int64, error)
	Update(ctx context.Context, id string, updates *model.BookingUpdate) (*model.Booking, error)
	// Reschedule moves the stay to a new check-in date, and optionally a
	// new room, preserving the length of stay. An empty roomID keeps the
	// current room.
	Reschedule(ctx context.Context, id string, roomID string, checkIn time.Time) (*model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	roomRepo  roomsrepo.RoomRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	roomRepo roomsrepo.RoomRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		roomRepo:  roomRepo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	s.applyDefaults(booking)
	s.sanitize(booking)
	s.normalizeDates(booking)
	if err := s.validate(booking); err != nil {
		return err
	}

	room, err := s.lookupRoom(ctx, booking.RoomID)
	if err != nil {
		return err
	}
	booking.TotalAmount = s.totalAmount(booking, room)

	if err := s.repo.Insert(ctx, booking); err != nil {
		if mapped := mapWriteError(err, booking); mapped != nil {
			return mapped
		}
		s.cfg.Log.Error("Failed to create booking", "room_id", booking.RoomID, "error", err)
		return apperrors.Internal("Failed to create booking", err)
	}

	s.publisher.PublishBooking(ctx, events.TypeBookingCreated, events.NewBookingEvent(booking), booking.RoomID)
	s.cfg.Log.Info("Booking created",
		"id", booking.ID,
		"room_id", booking.RoomID,
		"check_in", booking.CheckIn.Format(time.DateOnly),
		"check_out", booking.CheckOut.Format(time.DateOnly),
	)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, filter *model.BookingFilter, limit int, offset int64) ([]*model.Booking, int64, error) {
	resolved, err := s.resolveRoomType(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if resolved != nil && resolved.RoomIDs != nil && len(resolved.RoomIDs) == 0 {
		// Room-type filter matched no rooms, so no booking can match either.
		return []*model.Booking{}, 0, nil
	}

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, resolved)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, resolved, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

func (s *bookingService) Update(ctx context.Context, id string, updates *model.BookingUpdate) (*model.Booking, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Booking update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	if updates.Status != "" && updates.Status != existing.Status {
		if !model.CanTransition(existing.Status, updates.Status) {
			return nil, apperrors.Conflict(fmt.Sprintf(
				"Booking cannot move from %s to %s", existing.Status, updates.Status,
			))
		}
	}

	merged := s.mergeBookingUpdates(existing, updates)
	s.sanitize(merged)
	s.normalizeDates(merged)
	if err := s.validate(merged); err != nil {
		return nil, err
	}

	room, err := s.lookupRoom(ctx, merged.RoomID)
	if err != nil {
		return nil, err
	}
	merged.TotalAmount = s.totalAmount(merged, room)

	if err := s.repo.Replace(ctx, id, merged); err != nil {
		if mapped := mapWriteError(err, merged); mapped != nil {
			return nil, mapped
		}
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		s.cfg.Log.Error("Failed to update booking", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update booking", err)
	}

	s.publisher.PublishBooking(ctx, events.TypeBookingUpdated, events.NewBookingEvent(merged), merged.RoomID)
	s.cfg.Log.Info("Booking updated", "id", id, "status", merged.Status)
	return merged, nil
}

func (s *bookingService) Reschedule(ctx context.Context, id string, roomID string, checkIn time.Time) (*model.Booking, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !existing.Status.Active() {
		return nil, apperrors.Conflict(fmt.Sprintf(
			"Booking in status %s cannot be rescheduled", existing.Status,
		))
	}

	targetRoomID := roomID
	if targetRoomID == "" {
		targetRoomID = existing.RoomID
	}
	room, err := s.lookupRoom(ctx, targetRoomID)
	if err != nil {
		return nil, err
	}

	stay := daterange.NewRange(existing.CheckIn, existing.CheckOut).Shift(checkIn)

	moved := *existing
	moved.RoomID = targetRoomID
	moved.CheckIn = stay.Start
	moved.CheckOut = stay.End
	moved.TotalAmount = s.totalAmount(&moved, room)

	if err := s.repo.Replace(ctx, id, &moved); err != nil {
		if mapped := mapWriteError(err, &moved); mapped != nil {
			return nil, mapped
		}
		s.cfg.Log.Error("Failed to reschedule booking", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to reschedule booking", err)
	}

	s.publisher.PublishBooking(ctx, events.TypeBookingRescheduled, events.RescheduleEvent{
		BookingID:    id,
		RoomID:       moved.RoomID,
		FromRoomID:   existing.RoomID,
		FromCheckIn:  existing.CheckIn,
		FromCheckOut: existing.CheckOut,
		CheckIn:      moved.CheckIn,
		CheckOut:     moved.CheckOut,
	}, moved.RoomID)

	s.cfg.Log.Info("Booking rescheduled",
		"id", id,
		"room_id", moved.RoomID,
		"check_in", moved.CheckIn.Format(time.DateOnly),
		"check_out", moved.CheckOut.Format(time.DateOnly),
	)
	return &moved, nil
}

// --- Helpers ---

func (s *bookingService) sanitize(b *model.Booking) {
	b.GuestName = sanitizer.NormalizeGuestName(b.GuestName)
	b.GuestEmail = sanitizer.NormalizeEmail(b.GuestEmail)
	b.GuestPhone = sanitizer.NormalizePhone(b.GuestPhone)
	b.SpecialRequests = sanitizer.NormalizeText(b.SpecialRequests)
}

func (s *bookingService) applyDefaults(b *model.Booking) {
	// Every booking enters the lifecycle at pending, whatever the payload
	// claims. Later statuses are reached through Update's transition table.
	b.Status = model.BookingPending
	if b.PaymentStatus == "" {
		b.PaymentStatus = model.PaymentPending
	}
	if b.Adults <= 0 {
		b.Adults = 1
	}
}

func (s *bookingService) normalizeDates(b *model.Booking) {
	b.CheckIn = daterange.DateOf(b.CheckIn)
	b.CheckOut = daterange.DateOf(b.CheckOut)
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *bookingService) lookupRoom(ctx context.Context, roomID string) (*model.Room, error) {
	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) || errors.Is(err, roomserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Unknown room: " + roomID)
		}
		return nil, apperrors.Internal("Failed to resolve room", err)
	}
	return room, nil
}

// totalAmount is always nights times the room's base rate. Rates are
// per-night, so the checkout day is never charged.
func (s *bookingService) totalAmount(b *model.Booking, room *model.Room) float64 {
	nights := daterange.NewRange(b.CheckIn, b.CheckOut).Nights()
	return float64(nights) * room.BaseRate
}

func (s *bookingService) mergeBookingUpdates(existing *model.Booking, updates *model.BookingUpdate) *model.Booking {
	merged := *existing

	if updates.RoomID != "" {
		merged.RoomID = updates.RoomID
	}
	if updates.GuestName != "" {
		merged.GuestName = updates.GuestName
	}
	if updates.GuestEmail != "" {
		merged.GuestEmail = updates.GuestEmail
	}
	if updates.GuestPhone != "" {
		merged.GuestPhone = updates.GuestPhone
	}
	if updates.CheckIn != nil {
		merged.CheckIn = *updates.CheckIn
	}
	if updates.CheckOut != nil {
		merged.CheckOut = *updates.CheckOut
	}
	if updates.Status != "" {
		merged.Status = updates.Status
	}
	if updates.Adults != nil {
		merged.Adults = *updates.Adults
	}
	if updates.Children != nil {
		merged.Children = *updates.Children
	}
	if updates.SpecialRequests != nil {
		merged.SpecialRequests = *updates.SpecialRequests
	}
	if updates.PaymentStatus != "" {
		merged.PaymentStatus = updates.PaymentStatus
	}

	return &merged
}

// resolveRoomType converts a room-type filter into the concrete room ids,
// leaving the rest of the filter untouched.
func (s *bookingService) resolveRoomType(ctx context.Context, filter *model.BookingFilter) (*model.BookingFilter, error) {
	if filter == nil || filter.RoomType == "" || filter.RoomType == model.FilterAll {
		return filter, nil
	}
	if !model.RoomType(filter.RoomType).Valid() {
		return nil, apperrors.InvalidInput("Unknown room type filter: " + filter.RoomType)
	}

	rooms, err := s.roomRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to resolve room type filter", err)
	}

	roomFilter := model.RoomFilter{Type: filter.RoomType}
	ids := make([]string, 0, len(rooms))
	for _, room := range rooms {
		if roomFilter.Match(room) {
			ids = append(ids, room.ID)
		}
	}

	resolved := *filter
	resolved.RoomType = ""
	resolved.RoomIDs = ids
	return &resolved, nil
}

func mapWriteError(err error, b *model.Booking) error {
	if errors.Is(err, bookingserrors.ErrRoomConflict) {
		return apperrors.Conflict(fmt.Sprintf(
			"Room is already booked between %s and %s",
			b.CheckIn.Format(time.DateOnly),
			b.CheckOut.Format(time.DateOnly),
		))
	}
	if errors.Is(err, bookingserrors.ErrLockContention) {
		return apperrors.Conflict("This room is currently being booked by another request. Please try again.")
	}
	return nil
}
