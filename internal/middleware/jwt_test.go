package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/utils"
)

const testSecret = "test-secret"

func runJWT(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured echo.Context
	h := JWTAuth(testSecret)(func(c echo.Context) error {
		captured = c
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec, captured
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 42, "OWNER", 5)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	rec, c := runJWT(t, "Bearer "+tok.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if c == nil {
		t.Fatal("handler was not invoked")
	}
	// Numeric JWT claims decode as float64.
	if uid, ok := c.Get("user_id").(float64); !ok || uint64(uid) != 42 {
		t.Errorf("user_id = %#v, want 42", c.Get("user_id"))
	}
	if role, ok := c.Get("role").(string); !ok || role != "OWNER" {
		t.Errorf("role = %#v, want OWNER", c.Get("role"))
	}
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	rec, c := runJWT(t, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if c != nil {
		t.Error("handler was invoked without a token")
	}
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("other-secret", 42, "OWNER", 5)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	rec, c := runJWT(t, "Bearer "+tok.Token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if c != nil {
		t.Error("handler was invoked with a forged token")
	}
}

func TestJWTAuthRejectsGarbage(t *testing.T) {
	rec, _ := runJWT(t, "Bearer not.a.jwt")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	run := func(role interface{}) int {
		req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set("role", role)
		}
		h := RequireRole("OWNER")(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		if err := h(c); err != nil {
			t.Fatalf("middleware returned error: %v", err)
		}
		return rec.Code
	}

	if code := run("OWNER"); code != http.StatusOK {
		t.Errorf("OWNER: status = %d, want 200", code)
	}
	if code := run("CUSTOMER"); code != http.StatusForbidden {
		t.Errorf("CUSTOMER: status = %d, want 403", code)
	}
	if code := run(nil); code != http.StatusForbidden {
		t.Errorf("missing role: status = %d, want 403", code)
	}
}
