package validator

import (
	"strings"
	"testing"
	"time"

	"hotelbooker/pkg/logger"
	"hotelbooker/pkg/model"
)

func newTestValidator(t *testing.T) *BookingValidator {
	t.Helper()
	log := logger.New(logger.Config{Level: "error", Format: "text", Service: "test"})
	return NewBookingValidator(log)
}

func validBooking() *model.Booking {
	return &model.Booking{
		RoomID:     "room-101",
		GuestName:  "John Smith",
		GuestEmail: "john.smith@example.com",
		GuestPhone: "+1 555 0100",
		CheckIn:    time.Date(2024, 10, 14, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2024, 10, 17, 0, 0, 0, 0, time.UTC),
		Status:     model.BookingPending,
		Adults:     2,
	}
}

func TestValidateBooking(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		name      string
		mutate    func(b *model.Booking)
		wantField string
	}{
		{
			name:   "valid booking passes",
			mutate: func(b *model.Booking) {},
		},
		{
			name:      "missing guest name",
			mutate:    func(b *model.Booking) { b.GuestName = "" },
			wantField: "GuestName",
		},
		{
			name:      "single character guest name",
			mutate:    func(b *model.Booking) { b.GuestName = "J" },
			wantField: "GuestName",
		},
		{
			name:      "malformed email",
			mutate:    func(b *model.Booking) { b.GuestEmail = "not-an-email" },
			wantField: "GuestEmail",
		},
		{
			name:      "letters in phone",
			mutate:    func(b *model.Booking) { b.GuestPhone = "call me maybe" },
			wantField: "GuestPhone",
		},
		{
			name:      "checkout equal to checkin",
			mutate:    func(b *model.Booking) { b.CheckOut = b.CheckIn },
			wantField: "CheckOut",
		},
		{
			name:      "checkout before checkin",
			mutate:    func(b *model.Booking) { b.CheckOut = b.CheckIn.AddDate(0, 0, -1) },
			wantField: "CheckOut",
		},
		{
			name:      "zero adults",
			mutate:    func(b *model.Booking) { b.Adults = 0 },
			wantField: "Adults",
		},
		{
			name:      "unknown status",
			mutate:    func(b *model.Booking) { b.Status = "tentative" },
			wantField: "Status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBooking()
			tt.mutate(b)

			err := v.Validate(b)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("Validate() error %q does not mention field %s", err, tt.wantField)
			}
		})
	}
}

func TestValidateUpdate(t *testing.T) {
	v := newTestValidator(t)

	checkIn := time.Date(2024, 10, 14, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, 10, 17, 0, 0, 0, 0, time.UTC)

	t.Run("empty update passes", func(t *testing.T) {
		if err := v.ValidateUpdate(&model.BookingUpdate{}); err != nil {
			t.Errorf("ValidateUpdate() unexpected error: %v", err)
		}
	})

	t.Run("date pair in wrong order fails", func(t *testing.T) {
		err := v.ValidateUpdate(&model.BookingUpdate{CheckIn: &checkOut, CheckOut: &checkIn})
		if err == nil {
			t.Error("ValidateUpdate() expected error for inverted dates")
		}
	})

	t.Run("bad phone fails", func(t *testing.T) {
		err := v.ValidateUpdate(&model.BookingUpdate{GuestPhone: "nope"})
		if err == nil {
			t.Error("ValidateUpdate() expected error for invalid phone")
		}
	})

	t.Run("bad status fails", func(t *testing.T) {
		err := v.ValidateUpdate(&model.BookingUpdate{Status: "tentative"})
		if err == nil {
			t.Error("ValidateUpdate() expected error for unknown status")
		}
	})
}
