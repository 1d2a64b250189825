package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// DashboardHandler serves the aggregate figures for the hotel
// overview screen.
type DashboardHandler struct {
	tenantResolver
	Stats *repository.DashboardRepo

	// Now supplies "today"; tests substitute a fixed clock.
	Now func() time.Time
}

func NewDashboardHandler(users *repository.UserRepo, hotels *repository.HotelRepo, stats *repository.DashboardRepo) *DashboardHandler {
	return &DashboardHandler{
		tenantResolver: tenantResolver{Users: users, Hotels: hotels},
		Stats:          stats,
		Now:            func() time.Time { return time.Now().UTC() },
	}
}

type dashboardResp struct {
	booking.Occupancy
	TodayCheckins  int     `json:"today_checkins"`
	TodayCheckouts int     `json:"today_checkouts"`
	MonthlyRevenue float64 `json:"monthly_revenue"`
	Date           string  `json:"date"`
}

// Stats computes today's dashboard: occupancy derived from rooms and
// active reservations, arrivals and departures due today, and revenue
// booked since the first of the current month.
func (h *DashboardHandler) GetStats(c echo.Context) error {
	hotel, err := h.resolveHotel(c)
	if err != nil {
		return tenantError(c, err)
	}
	ctx := c.Request().Context()
	today := booking.DayOf(h.Now())
	firstOfMonth := booking.Date(today.Year(), today.Month(), 1)

	totalRooms, err := h.Stats.CountRooms(ctx, hotel.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "count rooms failed"})
	}
	occupied, err := h.Stats.CountActiveReservations(ctx, hotel.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "count reservations failed"})
	}
	checkins, err := h.Stats.CountCheckinsOn(ctx, hotel.ID, today)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "count checkins failed"})
	}
	checkouts, err := h.Stats.CountCheckoutsOn(ctx, hotel.ID, today)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "count checkouts failed"})
	}
	revenue, err := h.Stats.RevenueSince(ctx, hotel.ID, firstOfMonth)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "sum revenue failed"})
	}

	return c.JSON(http.StatusOK, dashboardResp{
		Occupancy:      booking.NewOccupancy(totalRooms, occupied),
		TodayCheckins:  checkins,
		TodayCheckouts: checkouts,
		MonthlyRevenue: revenue,
		Date:           today.Format(booking.DateLayout),
	})
}
