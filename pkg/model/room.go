package model

type RoomType string

const (
	RoomTypeStandard     RoomType = "standard"
	RoomTypeDeluxe       RoomType = "deluxe"
	RoomTypeSuite        RoomType = "suite"
	RoomTypePresidential RoomType = "presidential"
)

func (t RoomType) Valid() bool {
	switch t {
	case RoomTypeStandard, RoomTypeDeluxe, RoomTypeSuite, RoomTypePresidential:
		return true
	}
	return false
}

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
	RoomBlocked     RoomStatus = "blocked"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomMaintenance, RoomBlocked:
		return true
	}
	return false
}

// Room is owned by property configuration; the calendar references rooms
// by id and never deletes them.
type Room struct {
	ID       string     `json:"id" bson:"_id" validate:"omitempty"`
	Number   string     `json:"number" bson:"number" validate:"required,min=1,max=10"`
	Type     RoomType   `json:"type" bson:"type" validate:"required,oneof=standard deluxe suite presidential"`
	Floor    int        `json:"floor" bson:"floor" validate:"required,min=0,max=200"`
	Status   RoomStatus `json:"status" bson:"status" validate:"required,oneof=available occupied maintenance blocked"`
	BaseRate float64    `json:"base_rate" bson:"base_rate" validate:"required,gt=0"`
	Capacity int        `json:"capacity" bson:"capacity" validate:"required,min=1,max=20"`
}

// RoomFilter selects the visible subset of rooms. The zero value and
// FilterAll both mean "no restriction".
type RoomFilter struct {
	Type   string `json:"type"`
	Status string `json:"status"`
}

const FilterAll = "all"

// Match reports whether the room passes the filter. Pure predicate,
// order and contents of the room are never touched.
func (f RoomFilter) Match(room *Room) bool {
	if f.Type != "" && f.Type != FilterAll && RoomType(f.Type) != room.Type {
		return false
	}
	if f.Status != "" && f.Status != FilterAll && RoomStatus(f.Status) != room.Status {
		return false
	}
	return true
}

// RoomSummary holds the per-status room counts shown on the status panel.
type RoomSummary struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	Occupied    int `json:"occupied"`
	Maintenance int `json:"maintenance"`
	Blocked     int `json:"blocked"`
}
