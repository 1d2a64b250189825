package booking

import (
	"errors"
	"strings"
	"time"
)

// Patch validation failures.  These are client errors distinct from
// the interval/transition sentinels in engine.go.
var (
	ErrEmptyGuestName    = errors.New("guest_name must not be empty")
	ErrNegativeAmount    = errors.New("amount_paid must not be negative")
	ErrNegativePrice     = errors.New("price_per_night must not be negative")
	ErrUnknownStatus     = errors.New("unknown status value")
	ErrUnknownPayStatus  = errors.New("unknown payment_status value")
	ErrUnknownRoomStatus = errors.New("unknown room status value")
	ErrEmptyRoomNumber   = errors.New("room_number must not be empty")
)

// ReservationPatch enumerates every field a reservation update may
// carry.  Nil pointers mean "leave unchanged".  The patch is
// validated as a whole before any field is applied, so a rejected
// update leaves the stored reservation untouched.
type ReservationPatch struct {
	GuestName     *string
	GuestEmail    *string
	GuestPhone    *string
	Notes         *string
	AmountPaid    *float64
	PaymentStatus *string
	Status        *string
	RoomID        *uint64
	CheckInDate   *time.Time
	CheckOutDate  *time.Time
}

// TouchesSchedule reports whether the patch changes the room or
// either date, which forces a conflict re-check and a nights/price
// recomputation against the (possibly new) room's current rate.
func (p *ReservationPatch) TouchesSchedule() bool {
	return p.RoomID != nil || p.CheckInDate != nil || p.CheckOutDate != nil
}

// Validate checks every present field against its domain.  The status
// transition itself is validated separately once the current status
// is known (see ValidateTransition).
func (p *ReservationPatch) Validate() error {
	if p.GuestName != nil && strings.TrimSpace(*p.GuestName) == "" {
		return ErrEmptyGuestName
	}
	if p.AmountPaid != nil && *p.AmountPaid < 0 {
		return ErrNegativeAmount
	}
	if p.PaymentStatus != nil && !ValidPaymentStatus(*p.PaymentStatus) {
		return ErrUnknownPayStatus
	}
	if p.Status != nil && !ValidStatus(*p.Status) {
		return ErrUnknownStatus
	}
	return nil
}

// RoomPatch enumerates the mutable fields of a room.  The room number
// is identity within its hotel and cannot be changed after creation.
type RoomPatch struct {
	Name          *string
	RoomType      *string
	PricePerNight *float64
	Status        *string
}

// Validate checks every present field against its domain.
func (p *RoomPatch) Validate() error {
	if p.PricePerNight != nil && *p.PricePerNight < 0 {
		return ErrNegativePrice
	}
	if p.Status != nil && !ValidRoomStatus(*p.Status) {
		return ErrUnknownRoomStatus
	}
	return nil
}

// Empty reports whether the patch carries no changes at all.
func (p *RoomPatch) Empty() bool {
	return p.Name == nil && p.RoomType == nil && p.PricePerNight == nil && p.Status == nil
}
