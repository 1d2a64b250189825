package booking

import (
	"errors"
	"time"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// Sentinel errors surfaced by the reservation engine.  Handlers
// translate these into structured JSON error responses; none of them
// is fatal to the process.
var (
	// ErrInvalidRange is returned when a proposed stay has zero or
	// negative length (check-out not strictly after check-in).
	ErrInvalidRange = errors.New("check-out date must be after check-in date")

	// ErrBookingConflict is returned when a proposed stay overlaps a
	// non-terminal reservation on the same room.
	ErrBookingConflict = errors.New("room is already booked for these dates")

	// ErrInvalidTransition is returned when a status change does not
	// follow the reservation state machine.
	ErrInvalidTransition = errors.New("invalid reservation status transition")
)

// ValidateRange checks that [checkIn, checkOut) describes at least
// one night.
func ValidateRange(checkIn, checkOut time.Time) error {
	if Nights(checkIn, checkOut) <= 0 {
		return ErrInvalidRange
	}
	return nil
}

// TotalPrice computes the price of a stay from the room's current
// nightly rate.  It is evaluated at creation time and re-evaluated
// whenever the room or either date of a reservation changes; payment
// or status updates alone never touch it.
func TotalPrice(pricePerNight float64, nights int) float64 {
	return pricePerNight * float64(nights)
}

// ValidateTransition enforces the reservation state machine:
//
//	pending --checkin--> active --checkout--> completed
//	pending --cancel---> cancelled
//	active  --cancel---> cancelled
//
// completed and cancelled are terminal.  Restating the current status
// is permitted so that a full-object update does not fail.  Anything
// else is rejected with ErrInvalidTransition.
func ValidateTransition(from, to string) error {
	if from == to {
		return nil
	}
	switch from {
	case model.ReservationStatusPending:
		if to == model.ReservationStatusActive || to == model.ReservationStatusCancelled {
			return nil
		}
	case model.ReservationStatusActive:
		if to == model.ReservationStatusCompleted || to == model.ReservationStatusCancelled {
			return nil
		}
	}
	return ErrInvalidTransition
}

// ValidStatus reports whether s is a known reservation status.
func ValidStatus(s string) bool {
	switch s {
	case model.ReservationStatusPending, model.ReservationStatusActive,
		model.ReservationStatusCompleted, model.ReservationStatusCancelled:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether s is a known payment status.
func ValidPaymentStatus(s string) bool {
	switch s {
	case model.PaymentStatusPending, model.PaymentStatusPartial, model.PaymentStatusPaid:
		return true
	}
	return false
}

// ValidRoomStatus reports whether s is a known room status.
func ValidRoomStatus(s string) bool {
	return s == model.RoomStatusAvailable || s == model.RoomStatusMaintenance
}

// Occupancy summarizes point-in-time room usage for the dashboard.
// Occupied counts reservations whose status is active, i.e. guests
// who have checked in, regardless of calendar dates.
type Occupancy struct {
	TotalRooms     int     `json:"total_rooms"`
	OccupiedRooms  int     `json:"occupied_rooms"`
	AvailableRooms int     `json:"available_rooms"`
	OccupancyRate  float64 `json:"occupancy_rate"`
}

// NewOccupancy derives available-room count and occupancy rate from
// the raw counters.  The rate is 0 for a hotel with no rooms.
func NewOccupancy(totalRooms, occupied int) Occupancy {
	o := Occupancy{TotalRooms: totalRooms, OccupiedRooms: occupied}
	o.AvailableRooms = totalRooms - occupied
	if totalRooms > 0 {
		o.OccupancyRate = float64(occupied) / float64(totalRooms) * 100
	}
	return o
}
