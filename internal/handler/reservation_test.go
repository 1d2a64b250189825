package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

var fixedNow = time.Date(2026, time.March, 12, 15, 0, 0, 0, time.UTC)

// mockEnv wires a ReservationHandler over a sqlmock database with a
// fixed clock so check-in/check-out stamps are deterministic.
type mockEnv struct {
	mock sqlmock.Sqlmock
	h    *ReservationHandler
	e    *echo.Echo
}

func newMockEnv(t *testing.T) *mockEnv {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	users := repository.NewUserRepo(db)
	hotels := repository.NewHotelRepo(db)
	rooms := repository.NewRoomRepo(db)
	reservations := repository.NewReservationRepo(db)
	h := NewReservationHandler(users, hotels, rooms, reservations)
	h.Now = func() time.Time { return fixedNow }
	return &mockEnv{mock: mock, h: h, e: echo.New()}
}

// expectTenant queues the user and hotel lookups performed by
// resolveHotel for owner 1 / hotel 10.
func (m *mockEnv) expectTenant() {
	now := fixedNow
	m.mock.ExpectQuery("FROM users").WillReturnRows(sqlmock.NewRows(
		[]string{"id", "email", "password_hash", "role", "is_active", "created_at", "updated_at"}).
		AddRow(1, "ana@example.com", "x", "OWNER", true, now, now))
	m.mock.ExpectQuery("FROM hotels").WillReturnRows(sqlmock.NewRows(
		[]string{"id", "owner_id", "name", "address", "phone", "email", "created_at", "updated_at"}).
		AddRow(10, 1, "ana's Hotel", "", "", "", now, now))
}

func reservationRow(status string, checkedIn, checkedOut *time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "hotel_id", "room_id", "guest_name", "guest_email", "guest_phone",
		"check_in_date", "check_out_date", "nights", "total_price", "amount_paid",
		"payment_status", "status", "created_at", "checked_in_at", "checked_out_at", "notes",
	}).AddRow(5, 10, 7, "Ana Silva", "ana@example.com", "",
		booking.Date(2026, 3, 10), booking.Date(2026, 3, 13), 3, 150.0, 0.0,
		"pending", status, fixedNow, nullableTime(checkedIn), nullableTime(checkedOut), "")
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}

func (m *mockEnv) expectRoomLookup() {
	m.mock.ExpectQuery("FROM rooms").WillReturnRows(sqlmock.NewRows(
		[]string{"id", "hotel_id", "room_number", "name", "room_type", "price_per_night", "status", "created_at", "updated_at"}).
		AddRow(7, 10, "101", "Room 101", "Standard", 50.0, "available", fixedNow, fixedNow))
}

func (m *mockEnv) newRequest(method, path string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/", nil)
	rec := httptest.NewRecorder()
	c := m.e.NewContext(req, rec)
	c.SetPath(path)
	c.SetParamNames("id")
	c.SetParamValues("5")
	c.Set("user_id", float64(1))
	return c, rec
}

type stampedResp struct {
	Status       string  `json:"status"`
	CheckedInAt  *string `json:"checked_in_at"`
	CheckedOutAt *string `json:"checked_out_at"`
}

func decodeStamps(t *testing.T, rec *httptest.ResponseRecorder) stampedResp {
	t.Helper()
	var out stampedResp
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestCheckInStampsTimestamp(t *testing.T) {
	m := newMockEnv(t)
	m.expectTenant()
	m.mock.ExpectBegin()
	m.mock.ExpectQuery("FOR UPDATE").WillReturnRows(reservationRow(model.ReservationStatusPending, nil, nil))
	m.mock.ExpectExec("UPDATE reservations").WillReturnResult(sqlmock.NewResult(0, 1))
	m.mock.ExpectCommit()
	m.expectRoomLookup()

	c, rec := m.newRequest(http.MethodPost, "/v1/reservations/:id/checkin")
	if err := m.h.CheckIn(c); err != nil {
		t.Fatalf("CheckIn returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body=%s", rec.Code, rec.Body.String())
	}
	got := decodeStamps(t, rec)
	if got.Status != model.ReservationStatusActive {
		t.Errorf("status = %q, want active", got.Status)
	}
	if got.CheckedInAt == nil || *got.CheckedInAt != fixedNow.Format(time.RFC3339) {
		t.Errorf("checked_in_at = %v, want %s", got.CheckedInAt, fixedNow.Format(time.RFC3339))
	}
	if got.CheckedOutAt != nil {
		t.Errorf("checked_out_at stamped on check-in: %v", *got.CheckedOutAt)
	}
	if err := m.mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCheckInAlreadyActiveKeepsStamp(t *testing.T) {
	earlier := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

	m := newMockEnv(t)
	m.expectTenant()
	m.mock.ExpectBegin()
	m.mock.ExpectQuery("FOR UPDATE").WillReturnRows(reservationRow(model.ReservationStatusActive, &earlier, nil))
	// Restating the current status writes nothing.
	m.mock.ExpectCommit()
	m.expectRoomLookup()

	c, rec := m.newRequest(http.MethodPost, "/v1/reservations/:id/checkin")
	if err := m.h.CheckIn(c); err != nil {
		t.Fatalf("CheckIn returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body=%s", rec.Code, rec.Body.String())
	}
	got := decodeStamps(t, rec)
	if got.CheckedInAt == nil || *got.CheckedInAt != earlier.Format(time.RFC3339) {
		t.Errorf("checked_in_at = %v, want original stamp %s", got.CheckedInAt, earlier.Format(time.RFC3339))
	}
	if err := m.mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCheckOutStampsTimestamp(t *testing.T) {
	earlier := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

	m := newMockEnv(t)
	m.expectTenant()
	m.mock.ExpectBegin()
	m.mock.ExpectQuery("FOR UPDATE").WillReturnRows(reservationRow(model.ReservationStatusActive, &earlier, nil))
	m.mock.ExpectExec("UPDATE reservations").WillReturnResult(sqlmock.NewResult(0, 1))
	m.mock.ExpectCommit()
	m.expectRoomLookup()

	c, rec := m.newRequest(http.MethodPost, "/v1/reservations/:id/checkout")
	if err := m.h.CheckOut(c); err != nil {
		t.Fatalf("CheckOut returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body=%s", rec.Code, rec.Body.String())
	}
	got := decodeStamps(t, rec)
	if got.Status != model.ReservationStatusCompleted {
		t.Errorf("status = %q, want completed", got.Status)
	}
	if got.CheckedOutAt == nil || *got.CheckedOutAt != fixedNow.Format(time.RFC3339) {
		t.Errorf("checked_out_at = %v, want %s", got.CheckedOutAt, fixedNow.Format(time.RFC3339))
	}
	if got.CheckedInAt == nil || *got.CheckedInAt != earlier.Format(time.RFC3339) {
		t.Errorf("checked_in_at = %v, want untouched %s", got.CheckedInAt, earlier.Format(time.RFC3339))
	}
	if err := m.mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCheckInOnCompletedRejected(t *testing.T) {
	m := newMockEnv(t)
	m.expectTenant()
	m.mock.ExpectBegin()
	m.mock.ExpectQuery("FOR UPDATE").WillReturnRows(reservationRow(model.ReservationStatusCompleted, nil, nil))
	m.mock.ExpectRollback()

	c, rec := m.newRequest(http.MethodPost, "/v1/reservations/:id/checkin")
	if err := m.h.CheckIn(c); err != nil {
		t.Fatalf("CheckIn returned error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409; body=%s", rec.Code, rec.Body.String())
	}
	if err := m.mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetReservationRoomStoreFailure(t *testing.T) {
	m := newMockEnv(t)
	m.expectTenant()
	m.mock.ExpectQuery("FROM reservations").WillReturnRows(reservationRow(model.ReservationStatusPending, nil, nil))
	m.mock.ExpectQuery("FROM rooms").WillReturnError(errors.New("connection refused"))

	c, rec := m.newRequest(http.MethodGet, "/v1/reservations/:id")
	if err := m.h.Get(c); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500 on room store failure; body=%s", rec.Code, rec.Body.String())
	}
	if err := m.mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetReservationRoomGone(t *testing.T) {
	m := newMockEnv(t)
	m.expectTenant()
	m.mock.ExpectQuery("FROM reservations").WillReturnRows(reservationRow(model.ReservationStatusPending, nil, nil))
	m.mock.ExpectQuery("FROM rooms").WillReturnRows(sqlmock.NewRows(
		[]string{"id", "hotel_id", "room_number", "name", "room_type", "price_per_night", "status", "created_at", "updated_at"}))

	c, rec := m.newRequest(http.MethodGet, "/v1/reservations/:id")
	if err := m.h.Get(c); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for absent room; body=%s", rec.Code, rec.Body.String())
	}
	var out struct {
		RoomNumber string `json:"room_number"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.RoomNumber != "" {
		t.Errorf("room_number = %q, want blank for an absent room", out.RoomNumber)
	}
	if err := m.mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestApplyTransitionStampsOnce(t *testing.T) {
	h := &ReservationHandler{Now: func() time.Time { return fixedNow }}

	v := &model.Reservation{Status: model.ReservationStatusPending}
	h.applyTransition(v, model.ReservationStatusActive)
	if v.CheckedInAt == nil || !v.CheckedInAt.Equal(fixedNow) {
		t.Fatalf("CheckedInAt = %v, want %v", v.CheckedInAt, fixedNow)
	}

	// A second application must not move an existing stamp.
	earlier := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	v.CheckedInAt = &earlier
	h.applyTransition(v, model.ReservationStatusActive)
	if !v.CheckedInAt.Equal(earlier) {
		t.Errorf("CheckedInAt moved to %v, want %v", v.CheckedInAt, earlier)
	}

	h.applyTransition(v, model.ReservationStatusCompleted)
	if v.CheckedOutAt == nil || !v.CheckedOutAt.Equal(fixedNow) {
		t.Errorf("CheckedOutAt = %v, want %v", v.CheckedOutAt, fixedNow)
	}
	if v.Status != model.ReservationStatusCompleted {
		t.Errorf("status = %q, want completed", v.Status)
	}

	// Cancelling never stamps anything.
	w := &model.Reservation{Status: model.ReservationStatusPending}
	h.applyTransition(w, model.ReservationStatusCancelled)
	if w.CheckedInAt != nil || w.CheckedOutAt != nil {
		t.Error("cancel stamped a check-in/check-out time")
	}
}
