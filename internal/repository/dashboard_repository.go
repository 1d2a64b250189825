package repository

import (
	"context"
	"database/sql"
	"time"
)

// DashboardRepo runs the read-only aggregate queries behind the
// dashboard.  Everything is scoped by hotel; the handler supplies
// "today" from its injected clock so the queries stay testable.
type DashboardRepo struct {
	db *sql.DB
}

// NewDashboardRepo constructs a DashboardRepo bound to the given database.
func NewDashboardRepo(db *sql.DB) *DashboardRepo { return &DashboardRepo{db: db} }

func (r *DashboardRepo) scalar(ctx context.Context, q string, args ...any) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, q, args...).Scan(&n)
	return n, err
}

// CountRooms returns the total number of rooms in the hotel.
func (r *DashboardRepo) CountRooms(ctx context.Context, hotelID uint64) (int, error) {
	return r.scalar(ctx, `SELECT COUNT(*) FROM rooms WHERE hotel_id = ?`, hotelID)
}

// CountActiveReservations counts reservations whose guests are
// currently checked in.  This is the occupied-rooms figure.
func (r *DashboardRepo) CountActiveReservations(ctx context.Context, hotelID uint64) (int, error) {
	return r.scalar(ctx,
		`SELECT COUNT(*) FROM reservations WHERE hotel_id = ? AND status = 'active'`, hotelID)
}

// CountCheckinsOn counts reservations of any status whose check-in
// date falls on the given day.
func (r *DashboardRepo) CountCheckinsOn(ctx context.Context, hotelID uint64, day time.Time) (int, error) {
	return r.scalar(ctx,
		`SELECT COUNT(*) FROM reservations WHERE hotel_id = ? AND check_in_date = ?`, hotelID, day)
}

// CountCheckoutsOn counts active reservations whose check-out date
// falls on the given day, i.e. guests due to leave.
func (r *DashboardRepo) CountCheckoutsOn(ctx context.Context, hotelID uint64, day time.Time) (int, error) {
	return r.scalar(ctx,
		`SELECT COUNT(*) FROM reservations WHERE hotel_id = ? AND status = 'active' AND check_out_date = ?`,
		hotelID, day)
}

// RevenueSince sums total_price over reservations checking in on or
// after the given day.  The dashboard passes the first of the current
// month.  COALESCE keeps the result at zero for an empty hotel.
func (r *DashboardRepo) RevenueSince(ctx context.Context, hotelID uint64, day time.Time) (float64, error) {
	var sum sql.NullFloat64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(total_price), 0) FROM reservations WHERE hotel_id = ? AND check_in_date >= ?`,
		hotelID, day).Scan(&sum)
	if err != nil {
		return 0, err
	}
	return sum.Float64, nil
}
