package model

import (
	"time"
)

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingCheckedIn  BookingStatus = "checked-in"
	BookingCheckedOut BookingStatus = "checked-out"
	BookingCancelled  BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCheckedIn, BookingCheckedOut, BookingCancelled:
		return true
	}
	return false
}

// Active reports whether the booking counts toward conflict checks.
// checked-out and cancelled bookings are historical and exempt.
func (s BookingStatus) Active() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCheckedIn:
		return true
	}
	return false
}

// bookingTransitions is the legal status-transition table. Cancellation
// is always a transition, never a removal.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCheckedIn, BookingCancelled},
	BookingCheckedIn: {BookingCheckedOut},
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPartial  PaymentStatus = "partial"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPartial, PaymentPaid, PaymentRefunded:
		return true
	}
	return false
}

// Booking occupies a room over the half-open date interval
// [CheckIn, CheckOut): the checkout day itself is free for same-day
// turnover. CheckIn and CheckOut are UTC-midnight calendar dates.
type Booking struct {
	ID              string        `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty"`
	RoomID          string        `json:"room_id" bson:"room_id" validate:"required"`
	GuestName       string        `json:"guest_name" bson:"guest_name" validate:"required,min=2,max=100"`
	GuestEmail      string        `json:"guest_email" bson:"guest_email" validate:"required,email"`
	GuestPhone      string        `json:"guest_phone" bson:"guest_phone" validate:"required,min=3,max=20,guest_phone"`
	CheckIn         time.Time     `json:"check_in" bson:"check_in" validate:"required"`
	CheckOut        time.Time     `json:"check_out" bson:"check_out" validate:"required,gtfield=CheckIn"`
	Status          BookingStatus `json:"status" bson:"status" validate:"required,oneof=pending confirmed checked-in checked-out cancelled"`
	Adults          int           `json:"adults" bson:"adults" validate:"required,min=1,max=6"`
	Children        int           `json:"children" bson:"children" validate:"omitempty,min=0,max=4"`
	SpecialRequests string        `json:"special_requests,omitempty" bson:"special_requests,omitempty" validate:"omitempty,max=500"`
	PaymentStatus   PaymentStatus `json:"payment_status,omitempty" bson:"payment_status,omitempty" validate:"omitempty,oneof=pending partial paid refunded"`
	TotalAmount     float64       `json:"total_amount" bson:"total_amount" validate:"omitempty,gte=0"`
	CreatedAt       time.Time     `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// Covers reports whether the booking occupies the given calendar date,
// i.e. CheckIn <= date < CheckOut.
func (b *Booking) Covers(date time.Time) bool {
	return !date.Before(b.CheckIn) && date.Before(b.CheckOut)
}

type BookingUpdate struct {
	RoomID          string         `json:"room_id,omitempty" validate:"omitempty"`
	GuestName       string         `json:"guest_name,omitempty" validate:"omitempty,min=2,max=100"`
	GuestEmail      string         `json:"guest_email,omitempty" validate:"omitempty,email"`
	GuestPhone      string         `json:"guest_phone,omitempty" validate:"omitempty,min=3,max=20,guest_phone"`
	CheckIn         *time.Time     `json:"check_in,omitempty" validate:"omitempty"`
	CheckOut        *time.Time     `json:"check_out,omitempty" validate:"omitempty"`
	Status          BookingStatus  `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed checked-in checked-out cancelled"`
	Adults          *int           `json:"adults,omitempty" validate:"omitempty,min=1,max=6"`
	Children        *int           `json:"children,omitempty" validate:"omitempty,min=0,max=4"`
	SpecialRequests *string        `json:"special_requests,omitempty" validate:"omitempty,max=500"`
	PaymentStatus   PaymentStatus  `json:"payment_status,omitempty" validate:"omitempty,oneof=pending partial paid refunded"`
}

// BookingFilter narrows FindAll results for the management views.
// RoomType is resolved into RoomIDs by the service before the filter
// reaches the repository, so the store never joins against rooms.
type BookingFilter struct {
	GuestName     string
	RoomType      string
	RoomIDs       []string
	Status        BookingStatus
	PaymentStatus PaymentStatus
	From          *time.Time // check-in on/after
	To            *time.Time // check-out on/before
	SortBy        string     // check_in | guest_name | total_amount | status
	SortOrder     string     // asc | desc
}
