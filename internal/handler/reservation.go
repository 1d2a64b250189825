package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/queue"
	"github.com/iliyamo/hotel-reservation/internal/repository"
	queue_publisher "github.com/iliyamo/hotel-reservation/internal/service"
)

// ReservationHandler implements the booking engine endpoints.  Every
// mutation that depends on the no-overlap invariant runs inside one
// transaction that locks the room row first, so two concurrent
// bookings of the same room serialize and the loser sees the winner's
// reservation in the conflict probe.
type ReservationHandler struct {
	tenantResolver
	Reservations *repository.ReservationRepo
	Rooms        *repository.RoomRepo

	// Now is the clock used for check-in/check-out stamps; tests
	// substitute a fixed time.
	Now func() time.Time
}

func NewReservationHandler(users *repository.UserRepo, hotels *repository.HotelRepo, rooms *repository.RoomRepo, reservations *repository.ReservationRepo) *ReservationHandler {
	return &ReservationHandler{
		tenantResolver: tenantResolver{Users: users, Hotels: hotels},
		Reservations:   reservations,
		Rooms:          rooms,
		Now:            func() time.Time { return time.Now().UTC() },
	}
}

type createReservationReq struct {
	RoomID        uint64  `json:"room_id"`
	GuestName     string  `json:"guest_name"`
	GuestEmail    string  `json:"guest_email"`
	GuestPhone    string  `json:"guest_phone"`
	CheckInDate   string  `json:"check_in_date"`
	CheckOutDate  string  `json:"check_out_date"`
	AmountPaid    float64 `json:"amount_paid"`
	PaymentStatus string  `json:"payment_status"`
	Notes         string  `json:"notes"`
}

type updateReservationReq struct {
	RoomID        *uint64  `json:"room_id"`
	GuestName     *string  `json:"guest_name"`
	GuestEmail    *string  `json:"guest_email"`
	GuestPhone    *string  `json:"guest_phone"`
	CheckInDate   *string  `json:"check_in_date"`
	CheckOutDate  *string  `json:"check_out_date"`
	AmountPaid    *float64 `json:"amount_paid"`
	PaymentStatus *string  `json:"payment_status"`
	Status        *string  `json:"status"`
	Notes         *string  `json:"notes"`
}

// List returns every reservation of the hotel, newest stay first, with
// room number and name denormalized in.
func (h *ReservationHandler) List(c echo.Context) error {
	hotel, err := h.resolveHotel(c)
	if err != nil {
		return tenantError(c, err)
	}
	ctx := c.Request().Context()
	items, err := h.Reservations.ListByHotel(ctx, hotel.ID)
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
	return c.JSON(http.StatusOK, echo.Map{"reservations": out})
}

// Get returns one reservation.
func (h *ReservationHandler) Get(c echo.Context) error {
	hotel, err := h.resolveHotel(c)
	if err != nil {
		return tenantError(c, err)
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	ctx := c.Request().Context()
	v, err := h.Reservations.GetByIDAndHotel(ctx, id, hotel.ID)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
	}
	rm, err := h.Rooms.GetByIDAndHotel(ctx, v.RoomID, hotel.ID)
	if err != nil {
		// Only a genuinely absent room degrades to blank fields; a
		// storage failure is a 500, never silently empty output.
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusOK, newReservationView(v, "", ""))
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load room failed"})
	}
	return c.JSON(http.StatusOK, newReservationView(v, rm.RoomNumber, rm.Name))
}

// Create books a room for a guest.  The stay is a half-open interval
// [check_in, check_out): the check-out day itself is free, so a new
// stay may begin on the day another ends.  The room row is locked
// before the conflict probe so concurrent creates serialize.
func (h *ReservationHandler) Create(c echo.Context) error {
	hotel, err := h.resolveHotel(c)
	if err != nil {
		return tenantError(c, err)
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.GuestName = strings.TrimSpace(req.GuestName)
	if req.GuestName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": booking.ErrEmptyGuestName.Error()})
	}
	if req.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id required"})
	}
	if req.AmountPaid < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": booking.ErrNegativeAmount.Error()})
	}
	payStatus := req.PaymentStatus
	if payStatus == "" {
		payStatus = model.PaymentStatusPending
	}
	if !booking.ValidPaymentStatus(payStatus) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": booking.ErrUnknownPayStatus.Error()})
	}
	checkIn, err := booking.ParseDate(req.CheckInDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check_in_date"})
	}
	checkOut, err := booking.ParseDate(req.CheckOutDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check_out_date"})
	}
	if err := booking.ValidateRange(checkIn, checkOut); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx := c.Request().Context()
	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	rm, err := h.Rooms.GetForUpdateTx(ctx, tx, req.RoomID, hotel.ID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load room failed"})
	}
	conflict, err := h.Reservations.HasConflictTx(ctx, tx, rm.ID, checkIn, checkOut, 0)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "conflict check failed"})
	}
	if conflict {
		return c.JSON(http.StatusConflict, echo.Map{"error": booking.ErrBookingConflict.Error()})
	}

	nights := booking.Nights(checkIn, checkOut)
	v := model.Reservation{
		HotelID:       hotel.ID,
		RoomID:        rm.ID,
		GuestName:     req.GuestName,
		GuestEmail:    strings.TrimSpace(req.GuestEmail),
		GuestPhone:    strings.TrimSpace(req.GuestPhone),
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		Nights:        nights,
		TotalPrice:    booking.TotalPrice(rm.PricePerNight, nights),
		AmountPaid:    req.AmountPaid,
		PaymentStatus: payStatus,
		Status:        model.ReservationStatusPending,
		Notes:         req.Notes,
	}
	if err := h.Reservations.CreateTx(ctx, tx, &v); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create reservation failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	// Best effort: the booking is durable already, a broker outage
	// only delays channel sync.
	go func(ev queue.ReservationCreatedEvent) {
		pctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishReservationCreated(pctx, ev)
	}(queue.ReservationCreatedEvent{
		ReservationID: v.ID,
		HotelID:       hotel.ID,
		HotelName:     hotel.Name,
		RoomID:        rm.ID,
		RoomNumber:    rm.RoomNumber,
		GuestName:     v.GuestName,
		CheckInDate:   v.CheckInDate.Format(booking.DateLayout),
		CheckOutDate:  v.CheckOutDate.Format(booking.DateLayout),
		Nights:        v.Nights,
		TotalPrice:    v.TotalPrice,
		CreatedAt:     v.CreatedAt.UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, newReservationView(&v, rm.RoomNumber, rm.Name))
}

// Update applies a partial update.  The patch is validated as a whole
// before anything is written, so a rejected update leaves the stored
// reservation untouched.  Moving the stay (room or either date)
// re-checks conflicts and reprices against the target room's current
// rate; a notes-only or payment-only patch never touches the price.
func (h *ReservationHandler) Update(c echo.Context) error {
	hotel, err := h.resolveHotel(c)
	if err != nil {
		return tenantError(c, err)
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req updateReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	patch := booking.ReservationPatch{
		RoomID:        req.RoomID,
		GuestName:     req.GuestName,
		GuestEmail:    req.GuestEmail,
		GuestPhone:    req.GuestPhone,
		AmountPaid:    req.AmountPaid,
		PaymentStatus: req.PaymentStatus,
		Status:        req.Status,
		Notes:         req.Notes,
	}
	if req.CheckInDate != nil {
		t, err := booking.ParseDate(*req.CheckInDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check_in_date"})
		}
		patch.CheckInDate = &t
	}
	if req.CheckOutDate != nil {
		t, err := booking.ParseDate(*req.CheckOutDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check_out_date"})
		}
		patch.CheckOutDate = &t
	}
	if err := patch.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx := c.Request().Context()
	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	v, err := h.Reservations.GetForUpdateTx(ctx, tx, id, hotel.ID)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
	}

	if patch.Status != nil {
		if err := booking.ValidateTransition(v.Status, *patch.Status); err != nil {
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		}
	}

	roomNumber, roomName := "", ""
	if patch.TouchesSchedule() {
		roomID := v.RoomID
		if patch.RoomID != nil {
			roomID = *patch.RoomID
		}
		checkIn, checkOut := v.CheckInDate, v.CheckOutDate
		if patch.CheckInDate != nil {
			checkIn = *patch.CheckInDate
		}
		if patch.CheckOutDate != nil {
			checkOut = *patch.CheckOutDate
		}
		if err := booking.ValidateRange(checkIn, checkOut); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		rm, err := h.Rooms.GetForUpdateTx(ctx, tx, roomID, hotel.ID)
		if err != nil {
			if errors.Is(err, repository.ErrRoomNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load room failed"})
		}
		conflict, err := h.Reservations.HasConflictTx(ctx, tx, rm.ID, checkIn, checkOut, v.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "conflict check failed"})
		}
		if conflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": booking.ErrBookingConflict.Error()})
		}
		v.RoomID = rm.ID
		v.CheckInDate = checkIn
		v.CheckOutDate = checkOut
		v.Nights = booking.Nights(checkIn, checkOut)
		v.TotalPrice = booking.TotalPrice(rm.PricePerNight, v.Nights)
		roomNumber, roomName = rm.RoomNumber, rm.Name
	}

	if patch.GuestName != nil {
		v.GuestName = strings.TrimSpace(*patch.GuestName)
	}
	if patch.GuestEmail != nil {
		v.GuestEmail = strings.TrimSpace(*patch.GuestEmail)
	}
	if patch.GuestPhone != nil {
		v.GuestPhone = strings.TrimSpace(*patch.GuestPhone)
	}
	if patch.AmountPaid != nil {
		v.AmountPaid = *patch.AmountPaid
	}
	if patch.PaymentStatus != nil {
		v.PaymentStatus = *patch.PaymentStatus
	}
	if patch.Notes != nil {
		v.Notes = *patch.Notes
	}
	if patch.Status != nil && *patch.Status != v.Status {
		h.applyTransition(v, *patch.Status)
	}

	if err := h.Reservations.UpdateTx(ctx, tx, v); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update reservation failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	if roomNumber == "" {
		if rm, err := h.Rooms.GetByIDAndHotel(ctx, v.RoomID, hotel.ID); err == nil {
			roomNumber, roomName = rm.RoomNumber, rm.Name
		}
	}
	return c.JSON(http.StatusOK, newReservationView(v, roomNumber, roomName))
}

// Delete removes a reservation regardless of status.
func (h *ReservationHandler) Delete(c echo.Context) error {
	hotel, err := h.resolveHotel(c)
	if err != nil {
		return tenantError(c, err)
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	if err := h.Reservations.Delete(c.Request().Context(), id, hotel.ID); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete reservation failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// CheckIn moves a pending reservation to active and stamps the
// check-in time.  Checking in a reservation that is already active is
// a no-op; any other starting status is a 409.
func (h *ReservationHandler) CheckIn(c echo.Context) error {
	return h.transition(c, model.ReservationStatusActive)
}

// CheckOut moves an active reservation to completed and stamps the
// check-out time.  Checking out a completed reservation is a no-op;
// any other starting status is a 409.
func (h *ReservationHandler) CheckOut(c echo.Context) error {
	return h.transition(c, model.ReservationStatusCompleted)
}

// Cancel moves a pending or active reservation to cancelled, freeing
// its dates for new bookings.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	return h.transition(c, model.ReservationStatusCancelled)
}

func (h *ReservationHandler) transition(c echo.Context, to string) error {
	hotel, err := h.resolveHotel(c)
	if err != nil {
		return tenantError(c, err)
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	ctx := c.Request().Context()
	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	v, err := h.Reservations.GetForUpdateTx(ctx, tx, id, hotel.ID)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
	}
	if err := booking.ValidateTransition(v.Status, to); err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}
	if v.Status != to {
		h.applyTransition(v, to)
		if err := h.Reservations.UpdateTx(ctx, tx, v); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update reservation failed"})
		}
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	roomNumber, roomName := "", ""
	if rm, err := h.Rooms.GetByIDAndHotel(ctx, v.RoomID, hotel.ID); err == nil {
		roomNumber, roomName = rm.RoomNumber, rm.Name
	}
	return c.JSON(http.StatusOK, newReservationView(v, roomNumber, roomName))
}

// applyTransition sets the new status and stamps the corresponding
// timestamp once.  The transition has already been validated.
func (h *ReservationHandler) applyTransition(v *model.Reservation, to string) {
	v.Status = to
	now := h.Now()
	switch to {
	case model.ReservationStatusActive:
		if v.CheckedInAt == nil {
			v.CheckedInAt = &now
		}
	case model.ReservationStatusCompleted:
		if v.CheckedOutAt == nil {
			v.CheckedOutAt = &now
		}
	}
}
