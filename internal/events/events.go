// Package events publishes domain events for booking and room changes.
// Events are keyed by room so consumers observe changes to a single room
// in order.
package events

import (
	"time"

	"hotelbooker/pkg/model"
)

const (
	TypeBookingCreated     = "booking.created"
	TypeBookingUpdated     = "booking.updated"
	TypeBookingRescheduled = "booking.rescheduled"
	TypeRoomStatusUpdated  = "room.status_updated"
	TypeRoomsBulkUpdated   = "rooms.bulk_updated"
)

type BookingEvent struct {
	BookingID string              `json:"booking_id"`
	RoomID    string              `json:"room_id"`
	GuestName string              `json:"guest_name"`
	CheckIn   time.Time           `json:"check_in"`
	CheckOut  time.Time           `json:"check_out"`
	Status    model.BookingStatus `json:"status"`
}

type RescheduleEvent struct {
	BookingID    string    `json:"booking_id"`
	RoomID       string    `json:"room_id"`
	FromRoomID   string    `json:"from_room_id"`
	FromCheckIn  time.Time `json:"from_check_in"`
	FromCheckOut time.Time `json:"from_check_out"`
	CheckIn      time.Time `json:"check_in"`
	CheckOut     time.Time `json:"check_out"`
}

type RoomStatusEvent struct {
	RoomID string           `json:"room_id"`
	Status model.RoomStatus `json:"status"`
}

type RoomsBulkEvent struct {
	RoomIDs []string         `json:"room_ids"`
	Status  model.RoomStatus `json:"status"`
}

func NewBookingEvent(b *model.Booking) BookingEvent {
	return BookingEvent{
		BookingID: b.ID,
		RoomID:    b.RoomID,
		GuestName: b.GuestName,
		CheckIn:   b.CheckIn,
		CheckOut:  b.CheckOut,
		Status:    b.Status,
	}
}
