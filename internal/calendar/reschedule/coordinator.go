// Package reschedule implements the drag-and-drop lifecycle for moving a
// booking on the calendar. A drag either commits atomically or reverts
// with the original booking untouched; there is no intermediate persisted
// state.
package reschedule

import (
	"context"
	"errors"
	"sync"
	"time"

	"hotelbooker/pkg/logger"
	"hotelbooker/pkg/model"
)

type State string

const (
	StateIdle      State = "idle"
	StateDragging  State = "dragging"
	StateCommitted State = "committed"
	StateReverted  State = "reverted"
)

var (
	ErrNotDragging     = errors.New("no drag in progress")
	ErrAlreadyDragging = errors.New("another drag is already in progress")
	ErrImmovable       = errors.New("booking is not in a movable status")
)

// BookingMover is the slice of the booking service the coordinator needs.
type BookingMover interface {
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	Reschedule(ctx context.Context, id string, roomID string, checkIn time.Time) (*model.Booking, error)
}

// Coordinator runs one drag at a time. Begin captures a snapshot of the
// booking, Drop attempts the move, Cancel abandons the drag. After a
// Drop or Cancel the coordinator can Begin again.
type Coordinator struct {
	mover BookingMover
	log   *logger.Logger

	mu       sync.Mutex
	state    State
	snapshot *model.Booking
}

func NewCoordinator(mover BookingMover, log *logger.Logger) *Coordinator {
	return &Coordinator{
		mover: mover,
		log:   log,
		state: StateIdle,
	}
}

func (c *Coordinator) Begin(ctx context.Context, bookingID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateDragging {
		return ErrAlreadyDragging
	}

	booking, err := c.mover.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if !booking.Status.Active() {
		return ErrImmovable
	}

	c.snapshot = booking
	c.state = StateDragging
	c.log.Debug("Drag started", "booking_id", bookingID, "room_id", booking.RoomID)
	return nil
}

// Drop commits the drag onto the target cell. An empty roomID keeps the
// booking's current room. On any failure the drag reverts and the
// original booking is untouched.
func (c *Coordinator) Drop(ctx context.Context, roomID string, checkIn time.Time) (*model.Booking, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateDragging {
		return nil, ErrNotDragging
	}

	snapshot := c.snapshot
	moved, err := c.mover.Reschedule(ctx, snapshot.ID, roomID, checkIn)
	if err != nil {
		c.state = StateReverted
		c.snapshot = nil
		c.log.Info("Drag reverted",
			"booking_id", snapshot.ID,
			"target_room", roomID,
			"target_check_in", checkIn.Format(time.DateOnly),
			"error", err,
		)
		return nil, err
	}

	c.state = StateCommitted
	c.snapshot = nil
	c.log.Info("Drag committed",
		"booking_id", moved.ID,
		"room_id", moved.RoomID,
		"check_in", moved.CheckIn.Format(time.DateOnly),
	)
	return moved, nil
}

func (c *Coordinator) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateDragging {
		return ErrNotDragging
	}

	c.log.Debug("Drag cancelled", "booking_id", c.snapshot.ID)
	c.state = StateReverted
	c.snapshot = nil
	return nil
}

func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns a copy of the booking captured at Begin, or nil when
// no drag is in progress.
func (c *Coordinator) Snapshot() *model.Booking {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot == nil {
		return nil
	}
	clone := *c.snapshot
	return &clone
}
