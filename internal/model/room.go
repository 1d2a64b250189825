package model

import "time"

// Room status values.  A room under maintenance can still carry
// historical reservations but is flagged to staff in listings.
const (
	RoomStatusAvailable   = "available"
	RoomStatusMaintenance = "maintenance"
)

// Room describes a bookable unit inside a hotel.  Rooms are uniquely
// identified by their hotel and room number; the database enforces
// this with a composite unique key on (hotel_id, room_number).
//
// Fields:
//  ID            – primary key identifier.
//  HotelID       – hotel to which this room belongs.
//  RoomNumber    – external number of the room, unique per hotel.
//  Name          – optional display name (e.g. "Deluxe Room 1").
//  RoomType      – category of the room (Standard, Deluxe, ...).
//  PricePerNight – non-negative nightly rate.
//  Status        – operational status (available, maintenance).
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Room struct {
	ID            uint64    // rooms.id
	HotelID       uint64    // rooms.hotel_id
	RoomNumber    string    // rooms.room_number
	Name          string    // rooms.name
	RoomType      string    // rooms.room_type
	PricePerNight float64   // rooms.price_per_night
	Status        string    // rooms.status
	CreatedAt     time.Time // rooms.created_at
	UpdatedAt     time.Time // rooms.updated_at
}
