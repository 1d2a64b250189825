package handler // handler defines http handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// errNoUser signals that no authenticated user id could be extracted
// from the request context; handlers translate it to 401.
var errNoUser = errors.New("invalid user_id in context")

// getUserID extracts the user_id set by the JWT middleware and converts it
// to uint64.  JWT numeric claims decode as float64, so several
// representations are accepted.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errNoUser
}

// tenantResolver maps the authenticated principal to its hotel,
// provisioning a default one on first access.  It is embedded by
// every handler that serves tenant-scoped resources.
type tenantResolver struct {
	Users  *repository.UserRepo
	Hotels *repository.HotelRepo
}

// resolveHotel returns the caller's hotel.  It returns errNoUser when
// the context carries no usable principal; any other error is a
// storage failure.
func (t *tenantResolver) resolveHotel(c echo.Context) (*model.Hotel, error) {
	userID, err := getUserID(c)
	if err != nil {
		return nil, err
	}
	ctx := c.Request().Context()
	u, err := t.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return t.Hotels.GetOrCreateByOwner(ctx, userID, defaultHotelName(u.Email))
}

// defaultHotelName derives the name of a lazily provisioned hotel
// from the owner's email local part ("ana@x.io" -> "ana's Hotel").
func defaultHotelName(email string) string {
	local := email
	if i := strings.Index(email, "@"); i > 0 {
		local = email[:i]
	}
	if local == "" {
		local = "My"
	}
	return local + "'s Hotel"
}

// tenantError translates a resolveHotel failure into a JSON response.
func tenantError(c echo.Context, err error) error {
	if errors.Is(err, errNoUser) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "resolve hotel failed"})
}

// parseID parses a numeric path parameter; zero is never a valid id.
func parseID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id != 0
}

// roomView is the JSON shape of a room in API responses.
type roomView struct {
	ID         uint64  `json:"id"`
	RoomNumber string  `json:"room_number"`
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Price      float64 `json:"price"`
	Status     string  `json:"status"`
	IsOccupied *bool   `json:"is_occupied,omitempty"`
}

func newRoomView(rm *model.Room) roomView {
	return roomView{
		ID:         rm.ID,
		RoomNumber: rm.RoomNumber,
		Name:       rm.Name,
		Type:       rm.RoomType,
		Price:      rm.PricePerNight,
		Status:     rm.Status,
	}
}

// reservationView is the JSON shape of a reservation in API
// responses.  Room number and name are denormalized in for listings.
type reservationView struct {
	ID            uint64  `json:"id"`
	RoomID        uint64  `json:"room_id"`
	RoomNumber    string  `json:"room_number,omitempty"`
	RoomName      string  `json:"room_name,omitempty"`
	GuestName     string  `json:"guest_name"`
	GuestEmail    string  `json:"guest_email"`
	GuestPhone    string  `json:"guest_phone"`
	CheckInDate   string  `json:"check_in_date"`
	CheckOutDate  string  `json:"check_out_date"`
	Nights        int     `json:"nights"`
	TotalPrice    float64 `json:"total_price"`
	AmountPaid    float64 `json:"amount_paid"`
	PaymentStatus string  `json:"payment_status"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"created_at"`
	CheckedInAt   *string `json:"checked_in_at,omitempty"`
	CheckedOutAt  *string `json:"checked_out_at,omitempty"`
	Notes         string  `json:"notes"`
}

func newReservationView(v *model.Reservation, roomNumber, roomName string) reservationView {
	out := reservationView{
		ID:            v.ID,
		RoomID:        v.RoomID,
		RoomNumber:    roomNumber,
		RoomName:      roomName,
		GuestName:     v.GuestName,
		GuestEmail:    v.GuestEmail,
		GuestPhone:    v.GuestPhone,
		CheckInDate:   v.CheckInDate.Format(booking.DateLayout),
		CheckOutDate:  v.CheckOutDate.Format(booking.DateLayout),
		Nights:        v.Nights,
		TotalPrice:    v.TotalPrice,
		AmountPaid:    v.AmountPaid,
		PaymentStatus: v.PaymentStatus,
		Status:        v.Status,
		CreatedAt:     v.CreatedAt.UTC().Format(time.RFC3339),
		Notes:         v.Notes,
	}
	if v.CheckedInAt != nil {
		s := v.CheckedInAt.UTC().Format(time.RFC3339)
		out.CheckedInAt = &s
	}
	if v.CheckedOutAt != nil {
		s := v.CheckedOutAt.UTC().Format(time.RFC3339)
		out.CheckedOutAt = &s
	}
	return out
}
