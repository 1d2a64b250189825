package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// CalendarHandler serves the month view: every pending or active
// reservation whose stay touches the requested month.
type CalendarHandler struct {
	tenantResolver
	Reservations *repository.ReservationRepo
	Rooms        *repository.RoomRepo

	// Now supplies the default month when none is requested.
	Now func() time.Time
}

func NewCalendarHandler(users *repository.UserRepo, hotels *repository.HotelRepo, rooms *repository.RoomRepo, reservations *repository.ReservationRepo) *CalendarHandler {
	return &CalendarHandler{
		tenantResolver: tenantResolver{Users: users, Hotels: hotels},
		Reservations:   reservations,
		Rooms:          rooms,
		Now:            func() time.Time { return time.Now().UTC() },
	}
}

type calendarResp struct {
	Year         int               `json:"year"`
	Month        int               `json:"month"`
	Reservations []reservationView `json:"reservations"`
}

// GetMonth returns the reservations overlapping the month given by the
// year and month query parameters, defaulting to the current month.
// A stay [check_in, check_out) overlaps the month exactly when it
// starts before the month ends and ends after the month starts.
func (h *CalendarHandler) GetMonth(c echo.Context) error {
	hotel, err := h.resolveHotel(c)
	if err != nil {
		return tenantError(c, err)
	}
	now := h.Now()
	year, month := now.Year(), int(now.Month())
	if s := c.QueryParam("year"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1970 || n > 9999 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid year"})
		}
		year = n
	}
	if s := c.QueryParam("month"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 12 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid month"})
		}
		month = n
	}

	start, end := booking.MonthRange(year, time.Month(month))
	ctx := c.Request().Context()
	items, err := h.Reservations.ListOverlappingRange(ctx, hotel.ID, start, end)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
	}
	refs, err := h.Rooms.RefsByHotel(ctx, hotel.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list rooms failed"})
	}
	out := make([]reservationView, 0, len(items))
	for _, v := range items {
		ref := refs[v.RoomID]
		out = append(out, newReservationView(v, ref.RoomNumber, ref.Name))
	}
	return c.JSON(http.StatusOK, calendarResp{Year: year, Month: month, Reservations: out})
}
