package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// ReservationRepo persists reservations.  Mutating operations that
// depend on the conflict invariant run inside a caller-provided
// transaction (the *Tx methods); the handler locks the room row
// first, probes for overlaps, then writes, so the check-then-act
// sequence is atomic against concurrent bookings.  All timestamp
// fields are stored in UTC; check-in/check-out are DATE columns.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle so handlers can begin transactions
// spanning room and reservation access.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

const reservationColumns = `id, hotel_id, room_id, guest_name, guest_email, guest_phone,
	check_in_date, check_out_date, nights, total_price, amount_paid,
	payment_status, status, created_at, checked_in_at, checked_out_at, notes`

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (*model.Reservation, error) {
	var (
		v          model.Reservation
		checkedIn  sql.NullTime
		checkedOut sql.NullTime
	)
	err := row.Scan(&v.ID, &v.HotelID, &v.RoomID, &v.GuestName, &v.GuestEmail, &v.GuestPhone,
		&v.CheckInDate, &v.CheckOutDate, &v.Nights, &v.TotalPrice, &v.AmountPaid,
		&v.PaymentStatus, &v.Status, &v.CreatedAt, &checkedIn, &checkedOut, &v.Notes)
	if err != nil {
		return nil, err
	}
	if checkedIn.Valid {
		t := checkedIn.Time
		v.CheckedInAt = &t
	}
	if checkedOut.Valid {
		t := checkedOut.Time
		v.CheckedOutAt = &t
	}
	return &v, nil
}

// ListByHotel returns all reservations of a hotel, newest stay first.
func (r *ReservationRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + `
	           FROM reservations
	           WHERE hotel_id = ?
	           ORDER BY check_in_date DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.Reservation, 0)
	for rows.Next() {
		v, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// GetByIDAndHotel retrieves one reservation scoped to its hotel.
// Absent and foreign reservations are both ErrReservationNotFound.
func (r *ReservationRepo) GetByIDAndHotel(ctx context.Context, id, hotelID uint64) (*model.Reservation, error) {
	v, err := scanReservation(r.db.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = ? AND hotel_id = ?`, id, hotelID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	return v, err
}

// GetForUpdateTx loads a reservation scoped to its hotel and locks
// the row for the remainder of the transaction.  Updates and status
// transitions read through this so concurrent mutations of the same
// reservation serialize.
func (r *ReservationRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id, hotelID uint64) (*model.Reservation, error) {
	v, err := scanReservation(tx.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = ? AND hotel_id = ? FOR UPDATE`, id, hotelID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	return v, err
}

// HasConflictTx probes for a non-terminal reservation on the room
// whose half-open interval [check_in, check_out) overlaps the
// proposed one.  Boundary equality is not an overlap, so back-to-back
// stays are allowed.  excludeID skips the reservation being edited
// (zero for a create).  Must run after the room row has been locked
// in the same transaction.
func (r *ReservationRepo) HasConflictTx(ctx context.Context, tx *sql.Tx, roomID uint64, checkIn, checkOut time.Time, excludeID uint64) (bool, error) {
	const q = `SELECT EXISTS (
	               SELECT 1 FROM reservations
	               WHERE room_id = ?
	                 AND id <> ?
	                 AND status NOT IN ('completed', 'cancelled')
	                 AND check_in_date < ?
	                 AND check_out_date > ?
	           )`
	var conflict bool
	err := tx.QueryRowContext(ctx, q, roomID, excludeID, checkOut, checkIn).Scan(&conflict)
	return conflict, err
}

// CreateTx inserts a new reservation within the scope of an existing
// transaction and reads the row back so defaults and timestamps are
// populated on the provided record.  The caller must commit or
// rollback the transaction.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, v *model.Reservation) error {
	const q = `INSERT INTO reservations
	           (hotel_id, room_id, guest_name, guest_email, guest_phone,
	            check_in_date, check_out_date, nights, total_price, amount_paid,
	            payment_status, status, notes)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		v.HotelID, v.RoomID, v.GuestName, v.GuestEmail, v.GuestPhone,
		v.CheckInDate, v.CheckOutDate, v.Nights, v.TotalPrice, v.AmountPaid,
		v.PaymentStatus, v.Status, v.Notes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	got, err := scanReservation(tx.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, id))
	if err != nil {
		return err
	}
	*v = *got
	return nil
}

// UpdateTx writes back every mutable field of a reservation within
// the transaction.  The record is expected to have passed patch and
// conflict validation already; nothing here is conditional, so a
// rejected validation earlier means nothing was written at all.
func (r *ReservationRepo) UpdateTx(ctx context.Context, tx *sql.Tx, v *model.Reservation) error {
	const q = `UPDATE reservations
	           SET room_id = ?, guest_name = ?, guest_email = ?, guest_phone = ?,
	               check_in_date = ?, check_out_date = ?, nights = ?, total_price = ?,
	               amount_paid = ?, payment_status = ?, status = ?,
	               checked_in_at = ?, checked_out_at = ?, notes = ?
	           WHERE id = ? AND hotel_id = ?`
	_, err := tx.ExecContext(ctx, q,
		v.RoomID, v.GuestName, v.GuestEmail, v.GuestPhone,
		v.CheckInDate, v.CheckOutDate, v.Nights, v.TotalPrice,
		v.AmountPaid, v.PaymentStatus, v.Status,
		nullTime(v.CheckedInAt), nullTime(v.CheckedOutAt), v.Notes,
		v.ID, v.HotelID)
	return err
}

// Delete removes a reservation scoped to its hotel.
func (r *ReservationRepo) Delete(ctx context.Context, id, hotelID uint64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM reservations WHERE id = ? AND hotel_id = ?`, id, hotelID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// ListOverlappingRange returns the hotel's non-terminal reservations
// whose stay [check_in, check_out) overlaps the half-open interval
// [start, end).  The calendar view calls this with month bounds.
func (r *ReservationRepo) ListOverlappingRange(ctx context.Context, hotelID uint64, start, end time.Time) ([]*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + `
	           FROM reservations
	           WHERE hotel_id = ?
	             AND status NOT IN ('completed', 'cancelled')
	             AND check_in_date < ?
	             AND check_out_date > ?
	           ORDER BY check_in_date, id`
	rows, err := r.db.QueryContext(ctx, q, hotelID, end, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.Reservation, 0)
	for rows.Next() {
		v, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// nullTime converts an optional timestamp into a driver-level NULL.
func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
