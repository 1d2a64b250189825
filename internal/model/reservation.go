package model

import "time"

// Reservation status values.  completed and cancelled are terminal:
// reservations in those states never participate in conflict
// detection again.
const (
	ReservationStatusPending   = "pending"
	ReservationStatusActive    = "active"
	ReservationStatusCompleted = "completed"
	ReservationStatusCancelled = "cancelled"
)

// Payment status values for a reservation.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPartial = "partial"
	PaymentStatusPaid    = "paid"
)

// Reservation records a booking of one room for a half-open date
// range [CheckInDate, CheckOutDate).  Nights and TotalPrice are
// derived values, recomputed together whenever the room or either
// date changes.  Guest contact details are denormalized onto the
// reservation so listings do not require a join.
//
// Fields:
//  ID            – primary key identifier.
//  HotelID       – owning hotel (tenant scope).
//  RoomID        – room being booked; must belong to the same hotel.
//  GuestName     – full name of the guest.
//  GuestEmail    – guest email, may be empty.
//  GuestPhone    – guest phone, may be empty.
//  CheckInDate   – first night of the stay (inclusive).
//  CheckOutDate  – departure date (exclusive); must be after check-in.
//  Nights        – derived: check-out minus check-in in days.
//  TotalPrice    – derived: room nightly rate times nights, frozen
//                  until room or dates change.
//  AmountPaid    – amount received so far.
//  PaymentStatus – pending, partial or paid.
//  Status        – pending, active, completed or cancelled.
//  CreatedAt     – creation timestamp.
//  CheckedInAt   – when the guest checked in (nil before check-in).
//  CheckedOutAt  – when the guest checked out (nil before check-out).
//  Notes         – free-form staff notes.
type Reservation struct {
	ID            uint64     // reservations.id
	HotelID       uint64     // reservations.hotel_id
	RoomID        uint64     // reservations.room_id
	GuestName     string     // reservations.guest_name
	GuestEmail    string     // reservations.guest_email
	GuestPhone    string     // reservations.guest_phone
	CheckInDate   time.Time  // reservations.check_in_date (DATE)
	CheckOutDate  time.Time  // reservations.check_out_date (DATE)
	Nights        int        // reservations.nights
	TotalPrice    float64    // reservations.total_price
	AmountPaid    float64    // reservations.amount_paid
	PaymentStatus string     // reservations.payment_status
	Status        string     // reservations.status
	CreatedAt     time.Time  // reservations.created_at
	CheckedInAt   *time.Time // reservations.checked_in_at (nullable)
	CheckedOutAt  *time.Time // reservations.checked_out_at (nullable)
	Notes         string     // reservations.notes
}

// IsTerminal reports whether a reservation status is one of the two
// terminal states.
func IsTerminal(status string) bool {
	return status == ReservationStatusCompleted || status == ReservationStatusCancelled
}
