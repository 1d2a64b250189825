package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// RoomHandler serves the room registry of the caller's hotel.
type RoomHandler struct {
	tenantResolver
	Rooms *repository.RoomRepo
}

func NewRoomHandler(users *repository.UserRepo, hotels *repository.HotelRepo, rooms *repository.RoomRepo) *RoomHandler {
	return &RoomHandler{tenantResolver: tenantResolver{Users: users, Hotels: hotels}, Rooms: rooms}
}

type createRoomReq struct {
	RoomNumber string  `json:"room_number"`
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Price      float64 `json:"price"`
	Status     string  `json:"status"`
}

type updateRoomReq struct {
	Name   *string  `json:"name"`
	Type   *string  `json:"type"`
	Price  *float64 `json:"price"`
	Status *string  `json:"status"`
}

// List returns every room of the hotel ordered by room number, each
// annotated with whether an active reservation occupies it right now.
func (h *RoomHandler) List(c echo.Context) error {
	hotel, err := h.resolveHotel(c)
	if err != nil {
		return tenantError(c, err)
	}
	rooms, err := h.Rooms.ListWithOccupancy(c.Request().Context(), hotel.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list rooms failed"})
	}
	out := make([]roomView, 0, len(rooms))
	for i := range rooms {
		v := newRoomView(&rooms[i].Room)
		occupied := rooms[i].IsOccupied
		v.IsOccupied = &occupied
		out = append(out, v)
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": out})
}

// Create adds a room to the hotel.  The room number is identity within
// the hotel; duplicates are rejected with 409.
func (h *RoomHandler) Create(c echo.Context) error {
	hotel, err := h.resolveHotel(c)
	if err != nil {
		return tenantError(c, err)
	}
	var req createRoomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.RoomNumber = strings.TrimSpace(req.RoomNumber)
	if req.RoomNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": booking.ErrEmptyRoomNumber.Error()})
	}
	if req.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": booking.ErrNegativePrice.Error()})
	}
	if req.Status != "" && !booking.ValidRoomStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": booking.ErrUnknownRoomStatus.Error()})
	}

	rm := model.Room{
		HotelID:       hotel.ID,
		RoomNumber:    req.RoomNumber,
		Name:          strings.TrimSpace(req.Name),
		RoomType:      strings.TrimSpace(req.Type),
		PricePerNight: req.Price,
		Status:        req.Status,
	}
	if err := h.Rooms.Create(c.Request().Context(), &rm); err != nil {
		if errors.Is(err, repository.ErrDuplicateRoomNumber) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room number already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create room failed"})
	}
	return c.JSON(http.StatusCreated, newRoomView(&rm))
}

// Update applies a partial update to a room.  The room number cannot
// be changed; absent fields are left untouched.
func (h *RoomHandler) Update(c echo.Context) error {
	hotel, err := h.resolveHotel(c)
	if err != nil {
		return tenantError(c, err)
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req updateRoomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	patch := booking.RoomPatch{
		Name:          req.Name,
		RoomType:      req.Type,
		PricePerNight: req.Price,
		Status:        req.Status,
	}
	if err := patch.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx := c.Request().Context()
	if patch.Empty() {
		rm, err := h.Rooms.GetByIDAndHotel(ctx, id, hotel.ID)
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load room failed"})
		}
		return c.JSON(http.StatusOK, newRoomView(rm))
	}
	rm, err := h.Rooms.Update(ctx, id, hotel.ID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update room failed"})
	}
	return c.JSON(http.StatusOK, newRoomView(rm))
}

// Delete removes a room.  Rooms referenced by a pending or active
// reservation cannot be deleted; finished history goes with the room.
func (h *RoomHandler) Delete(c echo.Context) error {
	hotel, err := h.resolveHotel(c)
	if err != nil {
		return tenantError(c, err)
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	if err := h.Rooms.Delete(c.Request().Context(), id, hotel.ID); err != nil {
		switch {
		case errors.Is(err, repository.ErrRoomNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		case errors.Is(err, repository.ErrRoomInUse):
			return c.JSON(http.StatusConflict, echo.Map{"error": "room has open reservations"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete room failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
