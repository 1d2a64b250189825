package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/model"
)

// openTestDB connects to the MySQL instance named by TEST_DATABASE_DSN
// (needs parseTime=true) and skips the test when none is configured,
// so the suite stays runnable without infrastructure.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set; skipping MySQL integration test")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("open mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := db.Ping(); err != nil {
		t.Fatalf("ping mysql: %v", err)
	}
	return db
}

func TestHasConflictAgainstMySQL(t *testing.T) {
	db := openTestDB(t)
	repo := NewReservationRepo(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Everything runs in one transaction that is rolled back, so the
	// test leaves no rows behind.
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	email := fmt.Sprintf("conflict-%d@example.com", time.Now().UnixNano())
	res, err := tx.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, role) VALUES (?,?,?)",
		email, "x", model.RoleOwner)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
	ownerID, _ := res.LastInsertId()

	res, err = tx.ExecContext(ctx,
		"INSERT INTO hotels (owner_id, name) VALUES (?,?)", ownerID, "Conflict Test Hotel")
	if err != nil {
		t.Fatalf("insert hotel: %v", err)
	}
	hotelID, _ := res.LastInsertId()

	res, err = tx.ExecContext(ctx,
		`INSERT INTO rooms (hotel_id, room_number, name, room_type, price_per_night, status)
		 VALUES (?,?,?,?,?,?)`,
		hotelID, "901", "Room 901", "Standard", 50.0, model.RoomStatusAvailable)
	if err != nil {
		t.Fatalf("insert room: %v", err)
	}
	roomID, _ := res.LastInsertId()

	insertStay := func(in, out time.Time, status string) uint64 {
		t.Helper()
		r, err := tx.ExecContext(ctx,
			`INSERT INTO reservations
			 (hotel_id, room_id, guest_name, check_in_date, check_out_date,
			  nights, total_price, amount_paid, payment_status, status)
			 VALUES (?,?,?,?,?,?,?,?,?,?)`,
			hotelID, roomID, "Ana Silva", in, out,
			booking.Nights(in, out), 150.0, 0.0, model.PaymentStatusPending, status)
		if err != nil {
			t.Fatalf("insert reservation: %v", err)
		}
		id, _ := r.LastInsertId()
		return uint64(id)
	}

	pendingID := insertStay(booking.Date(2026, 3, 10), booking.Date(2026, 3, 13), model.ReservationStatusPending)
	insertStay(booking.Date(2026, 3, 20), booking.Date(2026, 3, 23), model.ReservationStatusCancelled)

	cases := []struct {
		name      string
		in, out   time.Time
		excludeID uint64
		want      bool
	}{
		{"overlapping window rejected", booking.Date(2026, 3, 12), booking.Date(2026, 3, 15), 0, true},
		{"stay contained in existing rejected", booking.Date(2026, 3, 11), booking.Date(2026, 3, 12), 0, true},
		{"back-to-back on checkout day allowed", booking.Date(2026, 3, 13), booking.Date(2026, 3, 15), 0, false},
		{"fully before allowed", booking.Date(2026, 3, 5), booking.Date(2026, 3, 10), 0, false},
		{"cancelled stay does not block", booking.Date(2026, 3, 20), booking.Date(2026, 3, 23), 0, false},
		{"editing a stay ignores itself", booking.Date(2026, 3, 10), booking.Date(2026, 3, 13), pendingID, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.HasConflictTx(ctx, tx, uint64(roomID), tc.in, tc.out, tc.excludeID)
			if err != nil {
				t.Fatalf("HasConflictTx: %v", err)
			}
			if got != tc.want {
				t.Errorf("conflict = %v, want %v", got, tc.want)
			}
		})
	}
}
