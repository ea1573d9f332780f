package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	bookingserrors "hotelbooker/internal/bookings/errors"
	"hotelbooker/pkg/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func stay(roomID string, checkIn, checkOut time.Time, status model.BookingStatus) *model.Booking {
	return &model.Booking{
		RoomID:     roomID,
		GuestName:  "John Smith",
		GuestEmail: "john.smith@example.com",
		GuestPhone: "+15550100",
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Status:     status,
		Adults:     2,
	}
}

func TestOccupancyIndexInsert(t *testing.T) {
	idx := NewOccupancyIndex()
	ctx := context.Background()

	b := stay("room-101", date(2024, 10, 14), date(2024, 10, 17), model.BookingConfirmed)
	if err := idx.Insert(ctx, b); err != nil {
		t.Fatalf("Insert() unexpected error: %v", err)
	}
	if b.ID == "" {
		t.Error("Insert() did not assign an ID")
	}
	if b.CreatedAt.IsZero() {
		t.Error("Insert() did not set CreatedAt")
	}

	found, err := idx.FindByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("FindByID() unexpected error: %v", err)
	}
	if found.RoomID != "room-101" {
		t.Errorf("FindByID() room = %q, want room-101", found.RoomID)
	}
}

func TestOccupancyIndexConflicts(t *testing.T) {
	tests := []struct {
		name     string
		existing *model.Booking
		incoming *model.Booking
		wantErr  bool
	}{
		{
			name:     "overlapping stay in same room is rejected",
			existing: stay("room-101", date(2024, 10, 14), date(2024, 10, 17), model.BookingConfirmed),
			incoming: stay("room-101", date(2024, 10, 16), date(2024, 10, 19), model.BookingPending),
			wantErr:  true,
		},
		{
			name:     "back-to-back checkout and checkin is allowed",
			existing: stay("room-101", date(2024, 10, 14), date(2024, 10, 17), model.BookingConfirmed),
			incoming: stay("room-101", date(2024, 10, 17), date(2024, 10, 20), model.BookingPending),
			wantErr:  false,
		},
		{
			name:     "same dates in a different room are allowed",
			existing: stay("room-101", date(2024, 10, 14), date(2024, 10, 17), model.BookingConfirmed),
			incoming: stay("room-102", date(2024, 10, 14), date(2024, 10, 17), model.BookingPending),
			wantErr:  false,
		},
		{
			name:     "cancelled booking does not block the room",
			existing: stay("room-101", date(2024, 10, 14), date(2024, 10, 17), model.BookingCancelled),
			incoming: stay("room-101", date(2024, 10, 14), date(2024, 10, 17), model.BookingPending),
			wantErr:  false,
		},
		{
			name:     "checked-out booking does not block the room",
			existing: stay("room-101", date(2024, 10, 14), date(2024, 10, 17), model.BookingCheckedOut),
			incoming: stay("room-101", date(2024, 10, 14), date(2024, 10, 17), model.BookingPending),
			wantErr:  false,
		},
		{
			name:     "checked-in booking blocks the room",
			existing: stay("room-101", date(2024, 10, 14), date(2024, 10, 17), model.BookingCheckedIn),
			incoming: stay("room-101", date(2024, 10, 15), date(2024, 10, 16), model.BookingPending),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := NewOccupancyIndex()
			ctx := context.Background()

			if err := idx.Insert(ctx, tt.existing); err != nil {
				t.Fatalf("seeding existing booking failed: %v", err)
			}

			err := idx.Insert(ctx, tt.incoming)
			if tt.wantErr {
				if !errors.Is(err, bookingserrors.ErrRoomConflict) {
					t.Errorf("Insert() error = %v, want ErrRoomConflict", err)
				}
				if _, findErr := idx.FindByID(ctx, tt.incoming.ID); findErr == nil {
					t.Error("rejected booking must leave no trace in the store")
				}
				return
			}
			if err != nil {
				t.Errorf("Insert() unexpected error: %v", err)
			}
		})
	}
}

func TestOccupancyIndexReplace(t *testing.T) {
	idx := NewOccupancyIndex()
	ctx := context.Background()

	first := stay("room-101", date(2024, 10, 14), date(2024, 10, 17), model.BookingConfirmed)
	second := stay("room-101", date(2024, 10, 20), date(2024, 10, 22), model.BookingConfirmed)
	if err := idx.Insert(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := idx.Insert(ctx, second); err != nil {
		t.Fatal(err)
	}

	t.Run("booking does not conflict with itself", func(t *testing.T) {
		moved := *first
		moved.CheckIn = date(2024, 10, 15)
		moved.CheckOut = date(2024, 10, 18)
		if err := idx.Replace(ctx, first.ID, &moved); err != nil {
			t.Errorf("Replace() with self-overlapping dates failed: %v", err)
		}
	})

	t.Run("replace into another booking's dates is rejected", func(t *testing.T) {
		moved := *first
		moved.CheckIn = date(2024, 10, 19)
		moved.CheckOut = date(2024, 10, 21)
		err := idx.Replace(ctx, first.ID, &moved)
		if !errors.Is(err, bookingserrors.ErrRoomConflict) {
			t.Errorf("Replace() error = %v, want ErrRoomConflict", err)
		}

		// original stay must be untouched after the rejection
		current, findErr := idx.FindByID(ctx, first.ID)
		if findErr != nil {
			t.Fatal(findErr)
		}
		if !current.CheckIn.Equal(date(2024, 10, 15)) {
			t.Errorf("rejected replace mutated the booking: check-in %v", current.CheckIn)
		}
	})

	t.Run("room change reindexes the booking", func(t *testing.T) {
		moved := *second
		moved.RoomID = "room-102"
		if err := idx.Replace(ctx, second.ID, &moved); err != nil {
			t.Fatalf("Replace() unexpected error: %v", err)
		}

		conflict, err := idx.HasConflict(ctx, "room-101", date(2024, 10, 20), date(2024, 10, 22), "")
		if err != nil {
			t.Fatal(err)
		}
		if conflict {
			t.Error("old room still reports a conflict after the move")
		}
		conflict, err = idx.HasConflict(ctx, "room-102", date(2024, 10, 20), date(2024, 10, 22), "")
		if err != nil {
			t.Fatal(err)
		}
		if !conflict {
			t.Error("new room does not report the moved booking")
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		err := idx.Replace(ctx, "missing", stay("room-101", date(2024, 11, 1), date(2024, 11, 2), model.BookingPending))
		if !errors.Is(err, bookingserrors.ErrNotFound) {
			t.Errorf("Replace() error = %v, want ErrNotFound", err)
		}
	})
}

func TestOccupancyIndexFindOverlapping(t *testing.T) {
	idx := NewOccupancyIndex()
	ctx := context.Background()

	inWindow := stay("room-101", date(2024, 10, 14), date(2024, 10, 17), model.BookingConfirmed)
	outOfWindow := stay("room-101", date(2024, 11, 1), date(2024, 11, 3), model.BookingConfirmed)
	cancelled := stay("room-102", date(2024, 10, 15), date(2024, 10, 16), model.BookingCancelled)
	otherRoom := stay("room-103", date(2024, 10, 13), date(2024, 10, 15), model.BookingPending)
	checkedOut := stay("room-104", date(2024, 10, 10), date(2024, 10, 12), model.BookingCheckedOut)
	for _, b := range []*model.Booking{inWindow, outOfWindow, cancelled, otherRoom, checkedOut} {
		if err := idx.Insert(ctx, b); err != nil {
			t.Fatal(err)
		}
	}

	t.Run("all rooms", func(t *testing.T) {
		got, err := idx.FindOverlapping(ctx, nil, date(2024, 10, 13), date(2024, 10, 20))
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 {
			t.Fatalf("FindOverlapping() returned %d bookings, want 2", len(got))
		}
		if !got[0].CheckIn.Equal(date(2024, 10, 13)) {
			t.Errorf("results not sorted by check-in: first is %v", got[0].CheckIn)
		}
	})

	t.Run("restricted to one room", func(t *testing.T) {
		got, err := idx.FindOverlapping(ctx, []string{"room-101"}, date(2024, 10, 13), date(2024, 10, 20))
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].ID != inWindow.ID {
			t.Errorf("FindOverlapping(room-101) = %d bookings, want just the in-window stay", len(got))
		}
	})

	t.Run("overlapping excludes checked-out stays", func(t *testing.T) {
		got, err := idx.FindOverlapping(ctx, []string{"room-104"}, date(2024, 10, 11), date(2024, 10, 12))
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 0 {
			t.Errorf("FindOverlapping(room-104) = %d bookings, want 0 for checked-out", len(got))
		}
	})

	t.Run("covering includes checked-out stays", func(t *testing.T) {
		got, err := idx.FindCovering(ctx, []string{"room-104"}, date(2024, 10, 11), date(2024, 10, 12))
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].ID != checkedOut.ID {
			t.Fatalf("want 1 booking covering 2024-10-11, got %d", len(got))
		}
	})

	t.Run("covering includes cancelled stays", func(t *testing.T) {
		got, err := idx.FindCovering(ctx, []string{"room-102"}, date(2024, 10, 13), date(2024, 10, 20))
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].ID != cancelled.ID {
			t.Fatalf("FindCovering(room-102) = %d bookings, want the cancelled stay", len(got))
		}
	})
}

func TestOccupancyIndexFindAllFilters(t *testing.T) {
	idx := NewOccupancyIndex()
	ctx := context.Background()

	smith := stay("room-101", date(2024, 10, 14), date(2024, 10, 17), model.BookingConfirmed)
	smith.GuestName = "John Smith"
	smith.TotalAmount = 360
	garcia := stay("room-102", date(2024, 10, 15), date(2024, 10, 18), model.BookingPending)
	garcia.GuestName = "Maria Garcia"
	garcia.PaymentStatus = model.PaymentPaid
	garcia.TotalAmount = 540
	chen := stay("room-103", date(2024, 10, 20), date(2024, 10, 21), model.BookingCancelled)
	chen.GuestName = "Wei Chen"
	chen.TotalAmount = 180
	for _, b := range []*model.Booking{smith, garcia, chen} {
		if err := idx.Insert(ctx, b); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name      string
		filter    *model.BookingFilter
		wantNames []string
	}{
		{
			name:      "no filter sorts by check-in",
			filter:    nil,
			wantNames: []string{"John Smith", "Maria Garcia", "Wei Chen"},
		},
		{
			name:      "guest name is a case-insensitive substring match",
			filter:    &model.BookingFilter{GuestName: "gar"},
			wantNames: []string{"Maria Garcia"},
		},
		{
			name:      "status filter",
			filter:    &model.BookingFilter{Status: model.BookingCancelled},
			wantNames: []string{"Wei Chen"},
		},
		{
			name:      "payment status filter",
			filter:    &model.BookingFilter{PaymentStatus: model.PaymentPaid},
			wantNames: []string{"Maria Garcia"},
		},
		{
			name:      "room filter",
			filter:    &model.BookingFilter{RoomIDs: []string{"room-101", "room-103"}},
			wantNames: []string{"John Smith", "Wei Chen"},
		},
		{
			name:      "sort by amount descending",
			filter:    &model.BookingFilter{SortBy: "total_amount", SortOrder: "desc"},
			wantNames: []string{"Maria Garcia", "John Smith", "Wei Chen"},
		},
		{
			name: "date window",
			filter: &model.BookingFilter{
				From: timePtr(date(2024, 10, 15)),
				To:   timePtr(date(2024, 10, 21)),
			},
			wantNames: []string{"Maria Garcia", "Wei Chen"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := idx.FindAll(ctx, tt.filter, 100, 0)
			if err != nil {
				t.Fatalf("FindAll() unexpected error: %v", err)
			}
			if len(got) != len(tt.wantNames) {
				t.Fatalf("FindAll() returned %d bookings, want %d", len(got), len(tt.wantNames))
			}
			for i, want := range tt.wantNames {
				if got[i].GuestName != want {
					t.Errorf("result[%d] = %q, want %q", i, got[i].GuestName, want)
				}
			}

			count, err := idx.Count(ctx, tt.filter)
			if err != nil {
				t.Fatalf("Count() unexpected error: %v", err)
			}
			if count != int64(len(tt.wantNames)) {
				t.Errorf("Count() = %d, want %d", count, len(tt.wantNames))
			}
		})
	}

	t.Run("pagination", func(t *testing.T) {
		got, err := idx.FindAll(ctx, nil, 1, 1)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].GuestName != "Maria Garcia" {
			t.Errorf("FindAll(limit=1, offset=1) = %v, want just Maria Garcia", names(got))
		}

		got, err = idx.FindAll(ctx, nil, 10, 99)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 0 {
			t.Errorf("FindAll() past the end returned %d bookings", len(got))
		}
	})
}

func TestSortBookingsByCreatedAt(t *testing.T) {
	older := stay("room-101", date(2024, 10, 14), date(2024, 10, 17), model.BookingConfirmed)
	older.ID = "a"
	older.CreatedAt = time.Date(2024, 10, 1, 9, 0, 0, 0, time.UTC)
	newer := stay("room-102", date(2024, 10, 10), date(2024, 10, 12), model.BookingConfirmed)
	newer.ID = "b"
	newer.CreatedAt = time.Date(2024, 10, 2, 9, 0, 0, 0, time.UTC)

	bookings := []*model.Booking{newer, older}
	sortBookings(bookings, &model.BookingFilter{SortBy: "created_at"})
	if bookings[0].ID != "a" {
		t.Errorf("sort by created_at ascending: first = %q, want %q", bookings[0].ID, "a")
	}

	sortBookings(bookings, &model.BookingFilter{SortBy: "created_at", SortOrder: "desc"})
	if bookings[0].ID != "b" {
		t.Errorf("sort by created_at descending: first = %q, want %q", bookings[0].ID, "b")
	}
}

func TestOccupancyIndexReturnsCopies(t *testing.T) {
	idx := NewOccupancyIndex()
	ctx := context.Background()

	b := stay("room-101", date(2024, 10, 14), date(2024, 10, 17), model.BookingConfirmed)
	if err := idx.Insert(ctx, b); err != nil {
		t.Fatal(err)
	}

	found, err := idx.FindByID(ctx, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	found.GuestName = "mutated"

	again, err := idx.FindByID(ctx, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if again.GuestName != "John Smith" {
		t.Error("mutating a returned booking leaked into the store")
	}
}

func timePtr(t time.Time) *time.Time { return &t }

func names(bookings []*model.Booking) []string {
	out := make([]string, len(bookings))
	for i, b := range bookings {
		out[i] = b.GuestName
	}
	return out
}
