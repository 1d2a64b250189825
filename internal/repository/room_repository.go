package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/model"
)

// RoomRepo provides CRUD operations for rooms.  Every lookup pairs
// the room ID with the hotel ID so a room never becomes visible or
// mutable to a tenant other than its owner.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

const roomColumns = `id, hotel_id, room_number, name, room_type, price_per_night, status, created_at, updated_at`

func scanRoom(row *sql.Row) (*model.Room, error) {
	var rm model.Room
	err := row.Scan(&rm.ID, &rm.HotelID, &rm.RoomNumber, &rm.Name, &rm.RoomType,
		&rm.PricePerNight, &rm.Status, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rm, nil
}

// RoomWithOccupancy pairs a room with its point-in-time occupancy
// flag.  IsOccupied is true iff an active-status reservation
// currently references the room; it says nothing about future
// bookings on the calendar.
type RoomWithOccupancy struct {
	model.Room
	IsOccupied bool
}

// ListWithOccupancy returns all rooms of a hotel ordered by room
// number, each annotated with its occupancy flag in a single query.
func (r *RoomRepo) ListWithOccupancy(ctx context.Context, hotelID uint64) ([]RoomWithOccupancy, error) {
	const q = `SELECT r.id, r.hotel_id, r.room_number, r.name, r.room_type,
	                  r.price_per_night, r.status, r.created_at, r.updated_at,
	                  EXISTS (
	                      SELECT 1 FROM reservations v
	                      WHERE v.room_id = r.id AND v.status = 'active'
	                  ) AS is_occupied
	           FROM rooms r
	           WHERE r.hotel_id = ?
	           ORDER BY r.room_number`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]RoomWithOccupancy, 0)
	for rows.Next() {
		var rm RoomWithOccupancy
		if err := rows.Scan(&rm.ID, &rm.HotelID, &rm.RoomNumber, &rm.Name, &rm.RoomType,
			&rm.PricePerNight, &rm.Status, &rm.CreatedAt, &rm.UpdatedAt, &rm.IsOccupied); err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

// RoomRef is the lightweight identity of a room, used to annotate
// reservation listings without a join.
type RoomRef struct {
	RoomNumber string
	Name       string
}

// RefsByHotel returns room id to number/name for every room of the
// hotel.
func (r *RoomRepo) RefsByHotel(ctx context.Context, hotelID uint64) (map[uint64]RoomRef, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, room_number, name FROM rooms WHERE hotel_id = ?`, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[uint64]RoomRef)
	for rows.Next() {
		var (
			id  uint64
			ref RoomRef
		)
		if err := rows.Scan(&id, &ref.RoomNumber, &ref.Name); err != nil {
			return nil, err
		}
		out[id] = ref
	}
	return out, rows.Err()
}

// Create inserts a new room for the hotel set on the record and reads
// the row back so defaults and timestamps are populated.  A duplicate
// (hotel_id, room_number) pair is reported as ErrDuplicateRoomNumber;
// the unique key is what actually enforces the invariant, so two
// concurrent creates of the same number cannot both succeed.
func (r *RoomRepo) Create(ctx context.Context, rm *model.Room) error {
	const q = `INSERT INTO rooms (hotel_id, room_number, name, room_type, price_per_night, status)
	           VALUES (?, ?, ?, ?, ?, ?)`
	status := rm.Status
	if status == "" {
		status = model.RoomStatusAvailable
	}
	res, err := r.db.ExecContext(ctx, q, rm.HotelID, rm.RoomNumber, rm.Name, rm.RoomType, rm.PricePerNight, status)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrDuplicateRoomNumber
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	got, err := scanRoom(r.db.QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE id = ?`, id))
	if err != nil {
		return err
	}
	*rm = *got
	return nil
}

// CreateTx inserts a room within the scope of an existing transaction
// without reading the row back.  Registration seeds the starter rooms
// through this so the account, hotel and rooms commit together.
func (r *RoomRepo) CreateTx(ctx context.Context, tx *sql.Tx, rm *model.Room) error {
	const q = `INSERT INTO rooms (hotel_id, room_number, name, room_type, price_per_night, status)
	           VALUES (?, ?, ?, ?, ?, ?)`
	status := rm.Status
	if status == "" {
		status = model.RoomStatusAvailable
	}
	_, err := tx.ExecContext(ctx, q, rm.HotelID, rm.RoomNumber, rm.Name, rm.RoomType, rm.PricePerNight, status)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return ErrDuplicateRoomNumber
	}
	return err
}

// GetByIDAndHotel retrieves a room but only if it belongs to the
// given hotel.  A missing or foreign room is ErrRoomNotFound either
// way.
func (r *RoomRepo) GetByIDAndHotel(ctx context.Context, id, hotelID uint64) (*model.Room, error) {
	rm, err := scanRoom(r.db.QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE id = ? AND hotel_id = ?`, id, hotelID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	return rm, err
}

// GetForUpdateTx loads a room scoped to its hotel and locks the row
// for the remainder of the transaction.  The reservation engine takes
// this lock before its conflict probe so that concurrent bookings on
// the same room serialize instead of both committing.
func (r *RoomRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id, hotelID uint64) (*model.Room, error) {
	var rm model.Room
	err := tx.QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE id = ? AND hotel_id = ? FOR UPDATE`, id, hotelID).
		Scan(&rm.ID, &rm.HotelID, &rm.RoomNumber, &rm.Name, &rm.RoomType,
			&rm.PricePerNight, &rm.Status, &rm.CreatedAt, &rm.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rm, nil
}

// Update applies a validated patch to a room owned by the hotel.  The
// row is read back after the update.  ErrRoomNotFound is returned for
// absent or foreign rooms before anything is written.
func (r *RoomRepo) Update(ctx context.Context, id, hotelID uint64, patch booking.RoomPatch) (*model.Room, error) {
	if _, err := r.GetByIDAndHotel(ctx, id, hotelID); err != nil {
		return nil, err
	}
	const q = `UPDATE rooms
	           SET name = COALESCE(?, name),
	               room_type = COALESCE(?, room_type),
	               price_per_night = COALESCE(?, price_per_night),
	               status = COALESCE(?, status)
	           WHERE id = ? AND hotel_id = ?`
	if _, err := r.db.ExecContext(ctx, q,
		nullStr(patch.Name), nullStr(patch.RoomType), nullFloat(patch.PricePerNight), nullStr(patch.Status),
		id, hotelID); err != nil {
		return nil, err
	}
	return r.GetByIDAndHotel(ctx, id, hotelID)
}

// Delete removes a room.  Deletion is blocked with ErrRoomInUse while
// any non-terminal reservation references the room; completed and
// cancelled history does not prevent removal but is deleted with the
// room by the ON DELETE CASCADE on reservations.room_id.  The check
// and the delete run in one transaction with the room row locked so a
// reservation cannot slip in between them.
func (r *RoomRepo) Delete(ctx context.Context, id, hotelID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := r.GetForUpdateTx(ctx, tx, id, hotelID); err != nil {
		return err
	}
	var open bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (
		     SELECT 1 FROM reservations
		     WHERE room_id = ? AND status NOT IN ('completed', 'cancelled')
		 )`, id).Scan(&open)
	if err != nil {
		return err
	}
	if open {
		return ErrRoomInUse
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM rooms WHERE id = ? AND hotel_id = ?`, id, hotelID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// nullFloat converts an optional float into a driver-level NULL when
// absent, for use with COALESCE-style partial updates.
func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
