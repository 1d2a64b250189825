package booking

import (
	"errors"
	"testing"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

func TestValidateRange(t *testing.T) {
	if err := ValidateRange(Date(2026, 3, 10), Date(2026, 3, 13)); err != nil {
		t.Errorf("valid range rejected: %v", err)
	}
	if err := ValidateRange(Date(2026, 3, 10), Date(2026, 3, 10)); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("zero-night range: got %v, want ErrInvalidRange", err)
	}
	if err := ValidateRange(Date(2026, 3, 13), Date(2026, 3, 10)); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("inverted range: got %v, want ErrInvalidRange", err)
	}
}

func TestTotalPrice(t *testing.T) {
	if got := TotalPrice(50, 3); got != 150 {
		t.Errorf("TotalPrice(50, 3) = %v, want 150", got)
	}
	if got := TotalPrice(80, 1); got != 80 {
		t.Errorf("TotalPrice(80, 1) = %v, want 80", got)
	}
	if got := TotalPrice(99.5, 2); got != 199 {
		t.Errorf("TotalPrice(99.5, 2) = %v, want 199", got)
	}
}

func TestValidateTransition(t *testing.T) {
	allowed := []struct{ from, to string }{
		{model.ReservationStatusPending, model.ReservationStatusActive},
		{model.ReservationStatusPending, model.ReservationStatusCancelled},
		{model.ReservationStatusActive, model.ReservationStatusCompleted},
		{model.ReservationStatusActive, model.ReservationStatusCancelled},
	}
	for _, tc := range allowed {
		if err := ValidateTransition(tc.from, tc.to); err != nil {
			t.Errorf("%s -> %s rejected: %v", tc.from, tc.to, err)
		}
	}

	// Restating the current status is a no-op, never an error.
	for _, s := range []string{
		model.ReservationStatusPending, model.ReservationStatusActive,
		model.ReservationStatusCompleted, model.ReservationStatusCancelled,
	} {
		if err := ValidateTransition(s, s); err != nil {
			t.Errorf("%s -> %s rejected: %v", s, s, err)
		}
	}

	rejected := []struct{ from, to string }{
		{model.ReservationStatusPending, model.ReservationStatusCompleted}, // no checkout without checkin
		{model.ReservationStatusActive, model.ReservationStatusPending},
		{model.ReservationStatusCompleted, model.ReservationStatusActive},
		{model.ReservationStatusCompleted, model.ReservationStatusPending},
		{model.ReservationStatusCompleted, model.ReservationStatusCancelled},
		{model.ReservationStatusCancelled, model.ReservationStatusPending},
		{model.ReservationStatusCancelled, model.ReservationStatusActive},
		{model.ReservationStatusCancelled, model.ReservationStatusCompleted},
	}
	for _, tc := range rejected {
		if err := ValidateTransition(tc.from, tc.to); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("%s -> %s: got %v, want ErrInvalidTransition", tc.from, tc.to, err)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{"pending", "active", "completed", "cancelled"} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false", s)
		}
	}
	for _, s := range []string{"", "PENDING", "done", "checked_in"} {
		if ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = true", s)
		}
	}
}

func TestValidPaymentStatus(t *testing.T) {
	for _, s := range []string{"pending", "partial", "paid"} {
		if !ValidPaymentStatus(s) {
			t.Errorf("ValidPaymentStatus(%q) = false", s)
		}
	}
	if ValidPaymentStatus("refunded") {
		t.Error("ValidPaymentStatus accepted refunded")
	}
}

func TestNewOccupancy(t *testing.T) {
	o := NewOccupancy(10, 4)
	if o.AvailableRooms != 6 {
		t.Errorf("AvailableRooms = %d, want 6", o.AvailableRooms)
	}
	if o.OccupancyRate != 40 {
		t.Errorf("OccupancyRate = %v, want 40", o.OccupancyRate)
	}

	// A hotel with no rooms reports a zero rate, not NaN.
	o = NewOccupancy(0, 0)
	if o.OccupancyRate != 0 {
		t.Errorf("empty hotel OccupancyRate = %v, want 0", o.OccupancyRate)
	}
	if o.AvailableRooms != 0 {
		t.Errorf("empty hotel AvailableRooms = %d, want 0", o.AvailableRooms)
	}
}
