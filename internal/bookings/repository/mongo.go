package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	bookingserrors "hotelbooker/internal/bookings/errors"
	"hotelbooker/pkg/config"
	mongotx "hotelbooker/pkg/db/mongo"
	"hotelbooker/pkg/model"
)

const (
	CollectionName = "Bookings"
)

var activeStatuses = []model.BookingStatus{
	model.BookingPending,
	model.BookingConfirmed,
	model.BookingCheckedIn,
}

type mongoBookingRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	lockRepo   RoomLockRepository
	txManager  mongotx.TransactionManager
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		lockRepo:   NewRoomLockRepository(cfg),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// When inside a transaction (SessionContext), returns the original context
// unchanged with a no-op cancel, as wrapping a SessionContext would break
// transaction semantics.
func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoBookingRepository) Insert(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	if !booking.Status.Active() {
		if _, err := r.collection.InsertOne(ctx, booking); err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return nil
	}

	return r.withRoomLock(ctx, booking.RoomID, func() error {
		return r.txManager.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
			conflict, err := r.HasConflict(sessCtx, booking.RoomID, booking.CheckIn, booking.CheckOut, booking.ID)
			if err != nil {
				return err
			}
			if conflict {
				return bookingserrors.ErrRoomConflict
			}
			if _, err := r.collection.InsertOne(sessCtx, booking); err != nil {
				return fmt.Errorf("failed to create booking: %w", err)
			}
			return nil
		})
	})
}

func (r *mongoBookingRepository) Replace(ctx context.Context, id string, booking *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	booking.ID = id

	replaceOnce := func(writeCtx context.Context) error {
		result, err := r.collection.ReplaceOne(writeCtx, bson.M{"_id": id}, booking)
		if err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}
		if result.MatchedCount == 0 {
			return bookingserrors.ErrNotFound
		}
		return nil
	}

	if !booking.Status.Active() {
		return replaceOnce(ctx)
	}

	return r.withRoomLock(ctx, booking.RoomID, func() error {
		return r.txManager.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
			conflict, err := r.HasConflict(sessCtx, booking.RoomID, booking.CheckIn, booking.CheckOut, id)
			if err != nil {
				return err
			}
			if conflict {
				return bookingserrors.ErrRoomConflict
			}
			return replaceOnce(sessCtx)
		})
	})
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	var booking model.Booking
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return &booking, nil
}

func (r *mongoBookingRepository) FindAll(ctx context.Context, filter *model.BookingFilter, limit int, offset int64) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(sortSpec(filter)).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, filterDocument(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

func (r *mongoBookingRepository) Count(ctx context.Context, filter *model.BookingFilter) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, filterDocument(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

func (r *mongoBookingRepository) FindOverlapping(ctx context.Context, roomIDs []string, from, to time.Time) ([]*model.Booking, error) {
	filter := bson.M{"status": bson.M{"$in": activeStatuses}}
	return r.findInWindow(ctx, filter, roomIDs, from, to)
}

func (r *mongoBookingRepository) FindCovering(ctx context.Context, roomIDs []string, from, to time.Time) ([]*model.Booking, error) {
	return r.findInWindow(ctx, bson.M{}, roomIDs, from, to)
}

func (r *mongoBookingRepository) findInWindow(ctx context.Context, filter bson.M, roomIDs []string, from, to time.Time) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter["check_in"] = bson.M{"$lt": to}
	filter["check_out"] = bson.M{"$gt": from}
	if roomIDs != nil {
		filter["room_id"] = bson.M{"$in": roomIDs}
	}

	opts := options.Find().SetSort(bson.D{{Key: "check_in", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find overlapping bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

func (r *mongoBookingRepository) HasConflict(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeID string) (bool, error) {
	if _, inTx := ctx.(mongo.SessionContext); !inTx {
		var cancel context.CancelFunc
		ctx, cancel = r.withTimeout(ctx, r.cfg.ReadTimeout)
		defer cancel()
	}

	filter := bson.M{
		"room_id":   roomID,
		"status":    bson.M{"$in": activeStatuses},
		"check_in":  bson.M{"$lt": checkOut},
		"check_out": bson.M{"$gt": checkIn},
	}
	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": excludeID}
	}

	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check booking conflicts: %w", err)
	}
	return count > 0, nil
}

// withRoomLock serializes the write against concurrent requests touching
// the same room. A duplicate key error on the lock insert means another
// request got there first.
func (r *mongoBookingRepository) withRoomLock(ctx context.Context, roomID string, fn func() error) error {
	lockID, err := r.lockRepo.Acquire(ctx, roomID)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return bookingserrors.ErrLockContention
		}
		return fmt.Errorf("failed to acquire room lock: %w", err)
	}
	defer func() {
		if releaseErr := r.lockRepo.Release(ctx, lockID); releaseErr != nil {
			r.cfg.Log.Warn("Failed to release room lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	return fn()
}

// escapeRegexSpecialChars escapes special regex characters to prevent
// ReDoS via attacker-controlled search strings.
func escapeRegexSpecialChars(s string) string {
	specialChars := regexp.MustCompile(`[.*+?^$()[\]{}|\\]`)
	return specialChars.ReplaceAllStringFunc(s, func(match string) string {
		return "\\" + match
	})
}

func filterDocument(filter *model.BookingFilter) bson.M {
	doc := bson.M{}
	if filter == nil {
		return doc
	}
	if filter.GuestName != "" {
		doc["guest_name"] = bson.M{"$regex": escapeRegexSpecialChars(filter.GuestName), "$options": "i"}
	}
	if filter.RoomIDs != nil {
		doc["room_id"] = bson.M{"$in": filter.RoomIDs}
	}
	if filter.Status != "" {
		doc["status"] = filter.Status
	}
	if filter.PaymentStatus != "" {
		doc["payment_status"] = filter.PaymentStatus
	}
	if filter.From != nil {
		doc["check_in"] = bson.M{"$gte": *filter.From}
	}
	if filter.To != nil {
		doc["check_out"] = bson.M{"$lte": *filter.To}
	}
	return doc
}

func sortSpec(filter *model.BookingFilter) bson.D {
	field := "check_in"
	if filter != nil {
		switch filter.SortBy {
		case "guest_name", "total_amount", "status", "check_in", "created_at":
			field = filter.SortBy
		}
	}
	order := 1
	if filter != nil && filter.SortOrder == "desc" {
		order = -1
	}
	return bson.D{{Key: field, Value: order}, {Key: "_id", Value: 1}}
}
