package model

import "time"

// Hotel represents the tenant boundary of the system.  Every room and
// reservation belongs to exactly one hotel, and every hotel belongs to
// exactly one owner.  A hotel is created automatically the first time
// its owner performs an authenticated request.  This struct
// corresponds to a row in the `hotels` table.
//
// Fields:
//  ID        – primary key identifier.
//  OwnerID   – user ID of the hotel owner (unique, immutable).
//  Name      – display name of the hotel.
//  Address   – postal address, free text.
//  Phone     – contact phone number.
//  Email     – contact email address.
//  CreatedAt – timestamp when the hotel was created.
//  UpdatedAt – timestamp of last update.
type Hotel struct {
	ID        uint64    // hotels.id
	OwnerID   uint64    // hotels.owner_id
	Name      string    // hotels.name
	Address   string    // hotels.address
	Phone     string    // hotels.phone
	Email     string    // hotels.email
	CreatedAt time.Time // hotels.created_at
	UpdatedAt time.Time // hotels.updated_at
}
