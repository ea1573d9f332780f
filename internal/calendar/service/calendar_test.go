package service

import (
	"context"
	"testing"
	"time"

	bookingsrepo "hotelbooker/internal/bookings/repository"
	"hotelbooker/internal/events"
	roomsrepo "hotelbooker/internal/rooms/repository"
	roomsservice "hotelbooker/internal/rooms/service"
	roomsvalidator "hotelbooker/internal/rooms/validator"
	"hotelbooker/pkg/config"
	"hotelbooker/pkg/logger"
	"hotelbooker/pkg/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	calendar *calendarService
	bookings *bookingsrepo.OccupancyIndex
	rooms    *roomsrepo.MemoryRoomRepository
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	log := logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
	cfg := &config.Config{Log: log}

	bookings := bookingsrepo.NewOccupancyIndex()
	rooms := roomsrepo.NewMemoryRoomRepository()
	roomSvc := roomsservice.NewRoomService(rooms, roomsvalidator.NewRoomValidator(log), events.NopPublisher{}, cfg)

	svc := NewCalendarService(bookings, roomSvc, cfg).(*calendarService)
	svc.now = func() time.Time { return now }

	return &fixture{calendar: svc, bookings: bookings, rooms: rooms}
}

func (f *fixture) addRoom(t *testing.T, id, number string, roomType model.RoomType, status model.RoomStatus) {
	t.Helper()
	err := f.rooms.Insert(context.Background(), &model.Room{
		ID: id, Number: number, Type: roomType, Floor: 1, Status: status, BaseRate: 120, Capacity: 2,
	})
	if err != nil {
		t.Fatalf("seeding room %s: %v", number, err)
	}
}

func (f *fixture) addBooking(t *testing.T, roomID string, checkIn, checkOut time.Time, status model.BookingStatus) *model.Booking {
	t.Helper()
	b := &model.Booking{
		RoomID:     roomID,
		GuestName:  "John Smith",
		GuestEmail: "john.smith@example.com",
		GuestPhone: "+15550100",
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Status:     status,
		Adults:     2,
	}
	if err := f.bookings.Insert(context.Background(), b); err != nil {
		t.Fatalf("seeding booking: %v", err)
	}
	return b
}

func TestGridWeekly(t *testing.T) {
	f := newFixture(t, date(2024, 10, 16))
	f.addRoom(t, "r1", "101", model.RoomTypeStandard, model.RoomAvailable)
	f.addRoom(t, "r2", "102", model.RoomTypeDeluxe, model.RoomAvailable)

	stay := f.addBooking(t, "r1", date(2024, 10, 14), date(2024, 10, 17), model.BookingConfirmed)
	cancelled := f.addBooking(t, "r2", date(2024, 10, 15), date(2024, 10, 16), model.BookingCancelled)

	grid, err := f.calendar.Grid(context.Background(), date(2024, 10, 16), model.ViewWeekly, model.RoomFilter{})
	if err != nil {
		t.Fatalf("Grid() unexpected error: %v", err)
	}

	if len(grid.Dates) != 7 {
		t.Fatalf("weekly grid has %d dates, want 7", len(grid.Dates))
	}
	if !grid.Dates[0].Equal(date(2024, 10, 13)) || !grid.Dates[6].Equal(date(2024, 10, 19)) {
		t.Errorf("week span = %v..%v, want 10-13..10-19", grid.Dates[0], grid.Dates[6])
	}
	if len(grid.Rooms) != 2 {
		t.Fatalf("grid has %d room rows, want 2", len(grid.Rooms))
	}

	row := grid.Rooms[0]
	if row.Room.Number != "101" {
		t.Fatalf("first row is room %s, want 101 (number order)", row.Room.Number)
	}

	// stay covers the 14th through the 16th; the 17th is checkout day
	wantOccupied := map[int]bool{1: true, 2: true, 3: true}
	for i, cell := range row.Cells {
		occupied := len(cell.Bookings) > 0
		if occupied != wantOccupied[i] {
			t.Errorf("cell %s occupied = %v, want %v", cell.Date.Format(time.DateOnly), occupied, wantOccupied[i])
		}
		if occupied {
			cb := cell.Bookings[0]
			if cb.ID != stay.ID {
				t.Errorf("cell %d holds booking %s", i, cb.ID)
			}
			if cb.Nights != 3 {
				t.Errorf("cell %d nights = %d, want 3", i, cb.Nights)
			}
		}
	}

	// the grid renders every status: the cancelled stay still shows on
	// its check-in night so staff can see the room's history
	var cancelledCells int
	for _, cell := range grid.Rooms[1].Cells {
		for _, cb := range cell.Bookings {
			if cb.ID == cancelled.ID {
				cancelledCells++
			}
		}
	}
	if cancelledCells != 1 {
		t.Errorf("cancelled stay rendered in %d cells, want 1 (its single night)", cancelledCells)
	}

	// today marker sits on the injected clock date
	for i, cell := range row.Cells {
		want := cell.Date.Equal(date(2024, 10, 16))
		if cell.Today != want {
			t.Errorf("cell %d today = %v, want %v", i, cell.Today, want)
		}
	}
}

func TestGridDailyAndMonthly(t *testing.T) {
	f := newFixture(t, date(2024, 2, 10))
	f.addRoom(t, "r1", "101", model.RoomTypeStandard, model.RoomAvailable)

	daily, err := f.calendar.Grid(context.Background(), date(2024, 2, 10), model.ViewDaily, model.RoomFilter{})
	if err != nil {
		t.Fatalf("Grid(daily) unexpected error: %v", err)
	}
	if len(daily.Dates) != 1 {
		t.Errorf("daily grid has %d dates, want 1", len(daily.Dates))
	}

	monthly, err := f.calendar.Grid(context.Background(), date(2024, 2, 10), model.ViewMonthly, model.RoomFilter{})
	if err != nil {
		t.Fatalf("Grid(monthly) unexpected error: %v", err)
	}
	if len(monthly.Dates) != 29 {
		t.Errorf("february 2024 grid has %d dates, want 29", len(monthly.Dates))
	}
}

func TestGridRoomFilter(t *testing.T) {
	f := newFixture(t, date(2024, 10, 16))
	f.addRoom(t, "r1", "101", model.RoomTypeStandard, model.RoomAvailable)
	f.addRoom(t, "r2", "201", model.RoomTypeDeluxe, model.RoomMaintenance)

	grid, err := f.calendar.Grid(context.Background(), date(2024, 10, 16), model.ViewWeekly, model.RoomFilter{Type: "deluxe"})
	if err != nil {
		t.Fatalf("Grid() unexpected error: %v", err)
	}
	if len(grid.Rooms) != 1 || grid.Rooms[0].Room.ID != "r2" {
		t.Errorf("filtered grid rows = %d, want only the deluxe room", len(grid.Rooms))
	}

	grid, err = f.calendar.Grid(context.Background(), date(2024, 10, 16), model.ViewWeekly, model.RoomFilter{Type: "suite"})
	if err != nil {
		t.Fatalf("Grid() unexpected error: %v", err)
	}
	if len(grid.Rooms) != 0 {
		t.Errorf("grid for unmatched filter has %d rows, want 0", len(grid.Rooms))
	}
	if len(grid.Dates) != 7 {
		t.Error("empty grid must still carry the date span")
	}
}

func TestGridBookingSpanningWindowEdge(t *testing.T) {
	f := newFixture(t, date(2024, 10, 16))
	f.addRoom(t, "r1", "101", model.RoomTypeStandard, model.RoomAvailable)

	// stay starts before the week and ends after it
	f.addBooking(t, "r1", date(2024, 10, 10), date(2024, 10, 25), model.BookingCheckedIn)

	grid, err := f.calendar.Grid(context.Background(), date(2024, 10, 16), model.ViewWeekly, model.RoomFilter{})
	if err != nil {
		t.Fatalf("Grid() unexpected error: %v", err)
	}
	for _, cell := range grid.Rooms[0].Cells {
		if len(cell.Bookings) != 1 {
			t.Errorf("cell %s not covered by the spanning stay", cell.Date.Format(time.DateOnly))
		}
	}
}

func TestGridRejectsUnknownView(t *testing.T) {
	f := newFixture(t, date(2024, 10, 16))
	if _, err := f.calendar.Grid(context.Background(), date(2024, 10, 16), "yearly", model.RoomFilter{}); err == nil {
		t.Fatal("Grid() expected error for unknown view mode")
	}
}

func TestOccupancy(t *testing.T) {
	f := newFixture(t, date(2024, 10, 16))
	f.addRoom(t, "r1", "101", model.RoomTypeStandard, model.RoomAvailable)
	f.addRoom(t, "r2", "102", model.RoomTypeStandard, model.RoomAvailable)

	// 3 nights inside the week
	f.addBooking(t, "r1", date(2024, 10, 14), date(2024, 10, 17), model.BookingConfirmed)
	// stay overhanging the window start: only 10-13 and 10-14 count
	f.addBooking(t, "r2", date(2024, 10, 11), date(2024, 10, 15), model.BookingCheckedIn)
	// cancelled stay shows on the grid but never counts toward occupancy
	f.addBooking(t, "r1", date(2024, 10, 17), date(2024, 10, 19), model.BookingCancelled)

	stats, err := f.calendar.Occupancy(context.Background(), date(2024, 10, 16), model.ViewWeekly)
	if err != nil {
		t.Fatalf("Occupancy() unexpected error: %v", err)
	}

	if stats.TotalRooms != 2 {
		t.Errorf("total rooms = %d, want 2", stats.TotalRooms)
	}
	if stats.RoomNights != 14 {
		t.Errorf("room nights = %d, want 14", stats.RoomNights)
	}
	if stats.OccupiedNights != 5 {
		t.Errorf("occupied nights = %d, want 5", stats.OccupiedNights)
	}
	if stats.ActiveBookings != 2 {
		t.Errorf("active bookings = %d, want 2", stats.ActiveBookings)
	}
	want := 5.0 / 14.0
	if stats.OccupancyRate != want {
		t.Errorf("occupancy rate = %v, want %v", stats.OccupancyRate, want)
	}
}
