package repository

import (
	"context"
	"time"

	"hotelbooker/pkg/model"
)

// BookingRepository is the persistence contract shared by the in-memory
// occupancy index and the MongoDB store.
//
// Insert and Replace are atomic with the conflict check: no other writer
// can slip a conflicting stay between the check and the write. The check
// only applies to stays in an active status; cancelled and checked-out
// bookings never block a room.
type BookingRepository interface {
	Insert(ctx context.Context, booking *model.Booking) error
	Replace(ctx context.Context, id string, booking *model.Booking) error
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	FindAll(ctx context.Context, filter *model.BookingFilter, limit int, offset int64) ([]*model.Booking, error)
	Count(ctx context.Context, filter *model.BookingFilter) (int64, error)
	// FindOverlapping returns active bookings whose stay overlaps the
	// half-open window [from, to). A nil roomIDs slice means all rooms.
	FindOverlapping(ctx context.Context, roomIDs []string, from, to time.Time) ([]*model.Booking, error)
	// FindCovering is FindOverlapping without the status filter: every
	// booking in the window regardless of status. The calendar renders
	// from this, so cancelled and checked-out stays stay visible.
	FindCovering(ctx context.Context, roomIDs []string, from, to time.Time) ([]*model.Booking, error)
	// HasConflict reports whether an active booking for roomID overlaps
	// [checkIn, checkOut), ignoring the booking with excludeID.
	HasConflict(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeID string) (bool, error)
}

func overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && end1.After(start2)
}
