package model

import "time"

type ViewMode string

const (
	ViewDaily   ViewMode = "daily"
	ViewWeekly  ViewMode = "weekly"
	ViewMonthly ViewMode = "monthly"
)

func (v ViewMode) Valid() bool {
	switch v {
	case ViewDaily, ViewWeekly, ViewMonthly:
		return true
	}
	return false
}

// CalendarGrid is the render model for the room calendar: one column
// per date in the view span, one row per visible room.
type CalendarGrid struct {
	Anchor time.Time   `json:"anchor"`
	View   ViewMode    `json:"view"`
	Dates  []time.Time `json:"dates"`
	Rooms  []RoomRow   `json:"rooms"`
}

type RoomRow struct {
	Room  *Room          `json:"room"`
	Cells []CalendarCell `json:"cells"`
}

type CalendarCell struct {
	Date     time.Time     `json:"date"`
	Today    bool          `json:"today"`
	Bookings []CellBooking `json:"bookings,omitempty"`
}

// CellBooking carries the booking plus the display fields the booking
// block renders (nights badge).
type CellBooking struct {
	*Booking
	Nights int `json:"nights"`
}

// OccupancyStats summarizes how full the property is over a view span.
// RoomNights counts sellable capacity; OccupiedNights counts nights
// covered by active bookings.
type OccupancyStats struct {
	From           time.Time `json:"from"`
	To             time.Time `json:"to"`
	TotalRooms     int       `json:"total_rooms"`
	RoomNights     int       `json:"room_nights"`
	OccupiedNights int       `json:"occupied_nights"`
	OccupancyRate  float64   `json:"occupancy_rate"`
	ActiveBookings int       `json:"active_bookings"`
}
