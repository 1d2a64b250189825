package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// SettingsHandler serves the hotel profile (name and contact details).
type SettingsHandler struct {
	tenantResolver
}

func NewSettingsHandler(users *repository.UserRepo, hotels *repository.HotelRepo) *SettingsHandler {
	return &SettingsHandler{tenantResolver: tenantResolver{Users: users, Hotels: hotels}}
}

type hotelView struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

func newHotelView(h *model.Hotel) hotelView {
	return hotelView{ID: h.ID, Name: h.Name, Address: h.Address, Phone: h.Phone, Email: h.Email}
}

type updateSettingsReq struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
}

// Get returns the hotel profile, provisioning the hotel on first
// access like every other tenant-scoped endpoint.
func (h *SettingsHandler) Get(c echo.Context) error {
	hotel, err := h.resolveHotel(c)
	if err != nil {
		return tenantError(c, err)
	}
	return c.JSON(http.StatusOK, newHotelView(hotel))
}

// Update applies a partial update to the hotel profile.  Absent fields
// stay unchanged; the name cannot be blanked.
func (h *SettingsHandler) Update(c echo.Context) error {
	hotel, err := h.resolveHotel(c)
	if err != nil {
		return tenantError(c, err)
	}
	var req updateSettingsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name must not be empty"})
	}
	updated, err := h.Hotels.UpdateSettings(c.Request().Context(), hotel.ID, req.Name, req.Address, req.Phone, req.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update settings failed"})
	}
	return c.JSON(http.StatusOK, newHotelView(updated))
}
