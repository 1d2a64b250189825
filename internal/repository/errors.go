// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. Lookups
// are always scoped by hotel, so "not found" covers both a missing row
// and a row owned by another tenant; callers can never tell the two
// apart and existence is never leaked across tenants.
package repository

import "errors"

// ErrHotelNotFound is returned when no hotel row exists for a lookup.
var ErrHotelNotFound = errors.New("hotel not found")

// ErrRoomNotFound is returned when a room does not exist or belongs
// to a different hotel than the caller's. Handlers should translate
// this into an HTTP 404 response.
var ErrRoomNotFound = errors.New("room not found")

// ErrReservationNotFound is returned when a reservation does not
// exist or belongs to a different hotel than the caller's. Handlers
// should translate this into an HTTP 404 response.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrDuplicateRoomNumber is returned when creating a room whose
// number already exists within the same hotel. The database enforces
// this with a unique key on (hotel_id, room_number). Handlers should
// translate this into an HTTP 409 response.
var ErrDuplicateRoomNumber = errors.New("room number already exists")

// ErrRoomInUse is returned when a room cannot be deleted because
// non-terminal reservations still reference it. Handlers should
// translate this into an HTTP 409 response.
var ErrRoomInUse = errors.New("room has open reservations")
