package service

import (
	"context"
	"time"

	bookingsrepo "hotelbooker/internal/bookings/repository"
	"hotelbooker/internal/calendar/daterange"
	roomsservice "hotelbooker/internal/rooms/service"
	"hotelbooker/pkg/config"
	apperrors "hotelbooker/pkg/errors"
	"hotelbooker/pkg/model"
)

type CalendarService interface {
	// Grid assembles the calendar render model for the anchor date and
	// view mode: one column per date in the span, one row per room that
	// passes the filter, and in every cell the bookings covering that
	// date in that room.
	Grid(ctx context.Context, anchor time.Time, view model.ViewMode, filter model.RoomFilter) (*model.CalendarGrid, error)
	Occupancy(ctx context.Context, anchor time.Time, view model.ViewMode) (*model.OccupancyStats, error)
}

type calendarService struct {
	bookings bookingsrepo.BookingRepository
	rooms    roomsservice.RoomService
	cfg      *config.Config
	// now is swappable for tests; defaults to time.Now
	now func() time.Time
}

func NewCalendarService(
	bookings bookingsrepo.BookingRepository,
	rooms roomsservice.RoomService,
	cfg *config.Config,
) CalendarService {
	return &calendarService{
		bookings: bookings,
		rooms:    rooms,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *calendarService) Grid(ctx context.Context, anchor time.Time, view model.ViewMode, filter model.RoomFilter) (*model.CalendarGrid, error) {
	dates, err := s.span(anchor, view)
	if err != nil {
		return nil, err
	}

	visible, err := s.rooms.VisibleRooms(ctx, filter)
	if err != nil {
		return nil, err
	}

	grid := &model.CalendarGrid{
		Anchor: daterange.DateOf(anchor),
		View:   view,
		Dates:  dates,
		Rooms:  make([]model.RoomRow, 0, len(visible)),
	}
	if len(visible) == 0 {
		return grid, nil
	}

	roomIDs := make([]string, len(visible))
	for i, room := range visible {
		roomIDs[i] = room.ID
	}

	// The grid shows every stay in the window, cancelled and checked-out
	// included; only conflict checks and occupancy care about status.
	windowStart := dates[0]
	windowEnd := dates[len(dates)-1].AddDate(0, 0, 1)
	covering, err := s.bookings.FindCovering(ctx, roomIDs, windowStart, windowEnd)
	if err != nil {
		s.cfg.Log.Error("Failed to load bookings for calendar window", "error", err)
		return nil, apperrors.Internal("Failed to load calendar bookings", err)
	}

	byRoom := make(map[string][]*model.Booking, len(visible))
	for _, b := range covering {
		byRoom[b.RoomID] = append(byRoom[b.RoomID], b)
	}

	today := daterange.DateOf(s.now())
	for _, room := range visible {
		row := model.RoomRow{
			Room:  room,
			Cells: make([]model.CalendarCell, len(dates)),
		}
		for i, d := range dates {
			cell := model.CalendarCell{Date: d, Today: d.Equal(today)}
			for _, b := range byRoom[room.ID] {
				if b.Covers(d) {
					cell.Bookings = append(cell.Bookings, model.CellBooking{
						Booking: b,
						Nights:  daterange.NewRange(b.CheckIn, b.CheckOut).Nights(),
					})
				}
			}
			row.Cells[i] = cell
		}
		grid.Rooms = append(grid.Rooms, row)
	}

	return grid, nil
}

func (s *calendarService) Occupancy(ctx context.Context, anchor time.Time, view model.ViewMode) (*model.OccupancyStats, error) {
	dates, err := s.span(anchor, view)
	if err != nil {
		return nil, err
	}

	rooms, err := s.rooms.VisibleRooms(ctx, model.RoomFilter{})
	if err != nil {
		return nil, err
	}

	windowStart := dates[0]
	windowEnd := dates[len(dates)-1].AddDate(0, 0, 1)
	window := daterange.NewRange(windowStart, windowEnd)

	overlapping, err := s.bookings.FindOverlapping(ctx, nil, windowStart, windowEnd)
	if err != nil {
		return nil, apperrors.Internal("Failed to load bookings for occupancy", err)
	}

	stats := &model.OccupancyStats{
		From:           windowStart,
		To:             windowEnd,
		TotalRooms:     len(rooms),
		RoomNights:     len(rooms) * window.Nights(),
		ActiveBookings: len(overlapping),
	}
	for _, b := range overlapping {
		stay := daterange.NewRange(b.CheckIn, b.CheckOut)
		clipped := daterange.Range{Start: maxDate(stay.Start, window.Start), End: minDate(stay.End, window.End)}
		if clipped.Valid() {
			stats.OccupiedNights += clipped.Nights()
		}
	}
	if stats.RoomNights > 0 {
		stats.OccupancyRate = float64(stats.OccupiedNights) / float64(stats.RoomNights)
	}

	return stats, nil
}

func (s *calendarService) span(anchor time.Time, view model.ViewMode) ([]time.Time, error) {
	if !view.Valid() {
		return nil, apperrors.InvalidInput("Unknown view mode: " + string(view))
	}
	dates, err := daterange.Span(anchor, view)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}
	return dates, nil
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
