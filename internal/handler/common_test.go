package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func testContext(t *testing.T) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestGetUserID(t *testing.T) {
	cases := []struct {
		name  string
		value interface{}
		want  uint64
		ok    bool
	}{
		{"float64 claim", float64(42), 42, true},
		{"uint64", uint64(7), 7, true},
		{"int", int(9), 9, true},
		{"numeric string", "12", 12, true},
		{"garbage string", "abc", 0, false},
		{"missing", nil, 0, false},
	}
	for _, tc := range cases {
		c := testContext(t)
		if tc.value != nil {
			c.Set("user_id", tc.value)
		}
		got, err := getUserID(c)
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("%s: got (%d, %v), want %d", tc.name, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Errorf("%s: expected an error", tc.name)
		}
	}
}

func TestDefaultHotelName(t *testing.T) {
	cases := []struct{ email, want string }{
		{"ana@example.com", "ana's Hotel"},
		{"bob.smith@hotel.io", "bob.smith's Hotel"},
		{"noatsign", "noatsign's Hotel"},
		{"", "My's Hotel"},
	}
	for _, tc := range cases {
		if got := defaultHotelName(tc.email); got != tc.want {
			t.Errorf("defaultHotelName(%q) = %q, want %q", tc.email, got, tc.want)
		}
	}
}

func TestParseID(t *testing.T) {
	e := echo.New()
	newCtx := func(value string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues(value)
		return c
	}

	if id, ok := parseID(newCtx("17"), "id"); !ok || id != 17 {
		t.Errorf("parseID(17) = (%d, %v)", id, ok)
	}
	if _, ok := parseID(newCtx("0"), "id"); ok {
		t.Error("parseID accepted zero")
	}
	if _, ok := parseID(newCtx("abc"), "id"); ok {
		t.Error("parseID accepted non-numeric input")
	}
	if _, ok := parseID(newCtx("-4"), "id"); ok {
		t.Error("parseID accepted a negative id")
	}
}
