// Package seed loads the demo dataset used for local development and
// walkthroughs: a small property with eight rooms and a handful of stays
// in mid-October 2024.
package seed

import (
	"context"
	"time"

	bookingsrepo "hotelbooker/internal/bookings/repository"
	"hotelbooker/internal/calendar/daterange"
	roomsrepo "hotelbooker/internal/rooms/repository"
	"hotelbooker/pkg/logger"
	"hotelbooker/pkg/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DemoRooms returns the demo property inventory. IDs are fixed so the
// demo bookings can reference them.
func DemoRooms() []*model.Room {
	return []*model.Room{
		{ID: "room-101", Number: "101", Type: model.RoomTypeStandard, Floor: 1, Status: model.RoomAvailable, BaseRate: 120, Capacity: 2},
		{ID: "room-102", Number: "102", Type: model.RoomTypeStandard, Floor: 1, Status: model.RoomAvailable, BaseRate: 120, Capacity: 2},
		{ID: "room-103", Number: "103", Type: model.RoomTypeDeluxe, Floor: 1, Status: model.RoomOccupied, BaseRate: 180, Capacity: 3},
		{ID: "room-201", Number: "201", Type: model.RoomTypeDeluxe, Floor: 2, Status: model.RoomAvailable, BaseRate: 180, Capacity: 3},
		{ID: "room-202", Number: "202", Type: model.RoomTypeSuite, Floor: 2, Status: model.RoomMaintenance, BaseRate: 350, Capacity: 4},
		{ID: "room-203", Number: "203", Type: model.RoomTypeSuite, Floor: 2, Status: model.RoomAvailable, BaseRate: 350, Capacity: 4},
		{ID: "room-301", Number: "301", Type: model.RoomTypePresidential, Floor: 3, Status: model.RoomBlocked, BaseRate: 750, Capacity: 6},
		{ID: "room-302", Number: "302", Type: model.RoomTypeDeluxe, Floor: 3, Status: model.RoomAvailable, BaseRate: 180, Capacity: 3},
	}
}

// DemoBookings returns the demo stays. Totals follow the nightly rate of
// the referenced room.
func DemoBookings() []*model.Booking {
	return []*model.Booking{
		{
			ID:            "booking-1001",
			RoomID:        "room-101",
			GuestName:     "John Smith",
			GuestEmail:    "john.smith@example.com",
			GuestPhone:    "+1 555 0101",
			CheckIn:       date(2024, 10, 14),
			CheckOut:      date(2024, 10, 17),
			Status:        model.BookingConfirmed,
			Adults:        2,
			PaymentStatus: model.PaymentPaid,
			TotalAmount:   360,
		},
		{
			ID:            "booking-1002",
			RoomID:        "room-103",
			GuestName:     "Maria Garcia",
			GuestEmail:    "maria.garcia@example.com",
			GuestPhone:    "+34 600 123 456",
			CheckIn:       date(2024, 10, 13),
			CheckOut:      date(2024, 10, 18),
			Status:        model.BookingCheckedIn,
			Adults:        2,
			Children:      1,
			PaymentStatus: model.PaymentPartial,
			TotalAmount:   900,
		},
		{
			ID:            "booking-1003",
			RoomID:        "room-201",
			GuestName:     "Wei Chen",
			GuestEmail:    "wei.chen@example.com",
			GuestPhone:    "+86 138 0000 0000",
			CheckIn:       date(2024, 10, 16),
			CheckOut:      date(2024, 10, 20),
			Status:        model.BookingPending,
			Adults:        1,
			PaymentStatus: model.PaymentPending,
			TotalAmount:   720,
		},
		{
			ID:              "booking-1004",
			RoomID:          "room-203",
			GuestName:       "Amara Okafor",
			GuestEmail:      "amara.okafor@example.com",
			GuestPhone:      "+234 801 234 5678",
			CheckIn:         date(2024, 10, 15),
			CheckOut:        date(2024, 10, 19),
			Status:          model.BookingConfirmed,
			Adults:          2,
			Children:        2,
			SpecialRequests: "High floor if possible, late checkout",
			PaymentStatus:   model.PaymentPaid,
			TotalAmount:     1400,
		},
		{
			ID:            "booking-1005",
			RoomID:        "room-102",
			GuestName:     "Lena Novak",
			GuestEmail:    "lena.novak@example.com",
			GuestPhone:    "+420 777 888 999",
			CheckIn:       date(2024, 10, 13),
			CheckOut:      date(2024, 10, 15),
			Status:        model.BookingCancelled,
			Adults:        1,
			PaymentStatus: model.PaymentRefunded,
			TotalAmount:   240,
		},
	}
}

// Load writes the demo dataset through the repositories. Existing rooms
// with the same numbers cause duplicates to be skipped rather than fail
// the boot.
func Load(ctx context.Context, rooms roomsrepo.RoomRepository, bookings bookingsrepo.BookingRepository, log *logger.Logger) error {
	for _, room := range DemoRooms() {
		if err := rooms.Insert(ctx, room); err != nil {
			log.Warn("Skipping demo room", "number", room.Number, "error", err)
		}
	}

	for _, booking := range DemoBookings() {
		booking.CheckIn = daterange.DateOf(booking.CheckIn)
		booking.CheckOut = daterange.DateOf(booking.CheckOut)
		if err := bookings.Insert(ctx, booking); err != nil {
			log.Warn("Skipping demo booking", "id", booking.ID, "error", err)
		}
	}

	log.Info("Demo dataset loaded", "rooms", len(DemoRooms()), "bookings", len(DemoBookings()))
	return nil
}
