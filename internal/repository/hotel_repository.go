package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// HotelRepo resolves and mutates hotels, the tenant boundary of the
// system.  Every authenticated request maps its principal to exactly
// one hotel through GetOrCreateByOwner; all other repositories take
// the resulting hotel ID as their scope.
type HotelRepo struct {
	db *sql.DB
}

// NewHotelRepo constructs a HotelRepo bound to the given database.
func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{db: db} }

const hotelColumns = `id, owner_id, name, address, phone, email, created_at, updated_at`

func scanHotel(row *sql.Row) (*model.Hotel, error) {
	var h model.Hotel
	err := row.Scan(&h.ID, &h.OwnerID, &h.Name, &h.Address, &h.Phone, &h.Email, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// GetByOwner returns the hotel owned by the given user, or
// ErrHotelNotFound when none has been provisioned yet.
func (r *HotelRepo) GetByOwner(ctx context.Context, ownerID uint64) (*model.Hotel, error) {
	h, err := scanHotel(r.db.QueryRowContext(ctx,
		`SELECT `+hotelColumns+` FROM hotels WHERE owner_id = ?`, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHotelNotFound
	}
	return h, err
}

// CreateTx inserts a hotel for the owner within the scope of an
// existing transaction and returns its ID.  Registration provisions
// the account, the hotel and the starter rooms atomically through
// this; lazy provisioning on later requests goes through
// GetOrCreateByOwner instead.
func (r *HotelRepo) CreateTx(ctx context.Context, tx *sql.Tx, ownerID uint64, name string) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO hotels (owner_id, name) VALUES (?, ?)`, ownerID, name)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetOrCreateByOwner resolves the caller's hotel, provisioning a
// default one on first access.  The owner_id column carries a unique
// key, so a concurrent first request loses the insert race with a
// duplicate-key error and falls back to reading the winner's row;
// repeated calls for the same owner therefore always return the same
// hotel.
func (r *HotelRepo) GetOrCreateByOwner(ctx context.Context, ownerID uint64, defaultName string) (*model.Hotel, error) {
	h, err := r.GetByOwner(ctx, ownerID)
	if err == nil {
		return h, nil
	}
	if !errors.Is(err, ErrHotelNotFound) {
		return nil, err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO hotels (owner_id, name) VALUES (?, ?)`, ownerID, defaultName)
	if err != nil && !strings.Contains(strings.ToLower(err.Error()), "1062") {
		return nil, err
	}
	return r.GetByOwner(ctx, ownerID)
}

// UpdateSettings applies the hotel settings patch.  Nil pointers
// leave the corresponding column unchanged; the updated row is read
// back so callers see the final state.
func (r *HotelRepo) UpdateSettings(ctx context.Context, hotelID uint64, name, address, phone, email *string) (*model.Hotel, error) {
	const q = `UPDATE hotels
	           SET name = COALESCE(?, name),
	               address = COALESCE(?, address),
	               phone = COALESCE(?, phone),
	               email = COALESCE(?, email)
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, nullStr(name), nullStr(address), nullStr(phone), nullStr(email), hotelID); err != nil {
		return nil, err
	}
	h, err := scanHotel(r.db.QueryRowContext(ctx,
		`SELECT `+hotelColumns+` FROM hotels WHERE id = ?`, hotelID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHotelNotFound
	}
	return h, err
}

// nullStr converts an optional string into a driver-level NULL when
// absent, for use with COALESCE-style partial updates.
func nullStr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
