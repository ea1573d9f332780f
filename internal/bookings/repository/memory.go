package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	bookingserrors "hotelbooker/internal/bookings/errors"
	"hotelbooker/pkg/model"
)

// OccupancyIndex is the in-memory booking store. A per-room index keeps
// conflict checks from scanning the whole dataset, and a single RWMutex
// held across check-and-write makes Insert and Replace atomic.
type OccupancyIndex struct {
	mu     sync.RWMutex
	byID   map[string]*model.Booking
	byRoom map[string]map[string]struct{}
}

func NewOccupancyIndex() *OccupancyIndex {
	return &OccupancyIndex{
		byID:   make(map[string]*model.Booking),
		byRoom: make(map[string]map[string]struct{}),
	}
}

func (idx *OccupancyIndex) Insert(ctx context.Context, booking *model.Booking) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if booking.Status.Active() {
		if idx.conflictLocked(booking.RoomID, booking.CheckIn, booking.CheckOut, booking.ID) {
			return bookingserrors.ErrRoomConflict
		}
	}

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	stored := *booking
	idx.byID[stored.ID] = &stored
	idx.indexLocked(&stored)
	return nil
}

func (idx *OccupancyIndex) Replace(ctx context.Context, id string, booking *model.Booking) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	existing, ok := idx.byID[id]
	if !ok {
		return bookingserrors.ErrNotFound
	}

	if booking.Status.Active() {
		if idx.conflictLocked(booking.RoomID, booking.CheckIn, booking.CheckOut, id) {
			return bookingserrors.ErrRoomConflict
		}
	}

	idx.unindexLocked(existing)
	stored := *booking
	stored.ID = id
	stored.CreatedAt = existing.CreatedAt
	idx.byID[id] = &stored
	idx.indexLocked(&stored)
	return nil
}

func (idx *OccupancyIndex) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	booking, ok := idx.byID[id]
	if !ok {
		return nil, bookingserrors.ErrNotFound
	}
	clone := *booking
	return &clone, nil
}

func (idx *OccupancyIndex) FindAll(ctx context.Context, filter *model.BookingFilter, limit int, offset int64) ([]*model.Booking, error) {
	idx.mu.RLock()
	matched := idx.matchLocked(filter)
	idx.mu.RUnlock()

	sortBookings(matched, filter)

	if offset >= int64(len(matched)) {
		return []*model.Booking{}, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (idx *OccupancyIndex) Count(ctx context.Context, filter *model.BookingFilter) (int64, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return int64(len(idx.matchLocked(filter))), nil
}

func (idx *OccupancyIndex) FindOverlapping(ctx context.Context, roomIDs []string, from, to time.Time) ([]*model.Booking, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.overlappingLocked(roomIDs, from, to, true), nil
}

func (idx *OccupancyIndex) FindCovering(ctx context.Context, roomIDs []string, from, to time.Time) ([]*model.Booking, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.overlappingLocked(roomIDs, from, to, false), nil
}

func (idx *OccupancyIndex) overlappingLocked(roomIDs []string, from, to time.Time, activeOnly bool) []*model.Booking {
	rooms := roomIDs
	if rooms == nil {
		rooms = make([]string, 0, len(idx.byRoom))
		for roomID := range idx.byRoom {
			rooms = append(rooms, roomID)
		}
	}

	var result []*model.Booking
	for _, roomID := range rooms {
		for id := range idx.byRoom[roomID] {
			b := idx.byID[id]
			if activeOnly && !b.Status.Active() {
				continue
			}
			if overlaps(b.CheckIn, b.CheckOut, from, to) {
				clone := *b
				result = append(result, &clone)
			}
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CheckIn.Equal(result[j].CheckIn) {
			return result[i].CheckIn.Before(result[j].CheckIn)
		}
		return result[i].ID < result[j].ID
	})
	return result
}

func (idx *OccupancyIndex) HasConflict(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeID string) (bool, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.conflictLocked(roomID, checkIn, checkOut, excludeID), nil
}

func (idx *OccupancyIndex) conflictLocked(roomID string, checkIn, checkOut time.Time, excludeID string) bool {
	for id := range idx.byRoom[roomID] {
		if id == excludeID {
			continue
		}
		b := idx.byID[id]
		if !b.Status.Active() {
			continue
		}
		if overlaps(b.CheckIn, b.CheckOut, checkIn, checkOut) {
			return true
		}
	}
	return false
}

func (idx *OccupancyIndex) indexLocked(b *model.Booking) {
	ids, ok := idx.byRoom[b.RoomID]
	if !ok {
		ids = make(map[string]struct{})
		idx.byRoom[b.RoomID] = ids
	}
	ids[b.ID] = struct{}{}
}

func (idx *OccupancyIndex) unindexLocked(b *model.Booking) {
	if ids, ok := idx.byRoom[b.RoomID]; ok {
		delete(ids, b.ID)
		if len(ids) == 0 {
			delete(idx.byRoom, b.RoomID)
		}
	}
}

func (idx *OccupancyIndex) matchLocked(filter *model.BookingFilter) []*model.Booking {
	var roomSet map[string]struct{}
	if filter != nil && filter.RoomIDs != nil {
		roomSet = make(map[string]struct{}, len(filter.RoomIDs))
		for _, id := range filter.RoomIDs {
			roomSet[id] = struct{}{}
		}
	}

	var matched []*model.Booking
	for _, b := range idx.byID {
		if filter != nil {
			if roomSet != nil {
				if _, ok := roomSet[b.RoomID]; !ok {
					continue
				}
			}
			if filter.Status != "" && b.Status != filter.Status {
				continue
			}
			if filter.PaymentStatus != "" && b.PaymentStatus != filter.PaymentStatus {
				continue
			}
			if filter.GuestName != "" &&
				!strings.Contains(strings.ToLower(b.GuestName), strings.ToLower(filter.GuestName)) {
				continue
			}
			if filter.From != nil && b.CheckIn.Before(*filter.From) {
				continue
			}
			if filter.To != nil && b.CheckOut.After(*filter.To) {
				continue
			}
		}
		clone := *b
		matched = append(matched, &clone)
	}
	return matched
}

func sortBookings(bookings []*model.Booking, filter *model.BookingFilter) {
	sortBy := "check_in"
	desc := false
	if filter != nil {
		if filter.SortBy != "" {
			sortBy = filter.SortBy
		}
		desc = filter.SortOrder == "desc"
	}

	less := func(i, j int) bool {
		a, b := bookings[i], bookings[j]
		switch sortBy {
		case "guest_name":
			if a.GuestName != b.GuestName {
				return a.GuestName < b.GuestName
			}
		case "total_amount":
			if a.TotalAmount != b.TotalAmount {
				return a.TotalAmount < b.TotalAmount
			}
		case "status":
			if a.Status != b.Status {
				return a.Status < b.Status
			}
		case "created_at":
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
		default:
			if !a.CheckIn.Equal(b.CheckIn) {
				return a.CheckIn.Before(b.CheckIn)
			}
		}
		return a.ID < b.ID
	}

	if desc {
		sort.Slice(bookings, func(i, j int) bool { return less(j, i) })
		return
	}
	sort.Slice(bookings, less)
}
