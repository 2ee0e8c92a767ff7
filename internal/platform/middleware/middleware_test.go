package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/medicare/hms/internal/platform/auth"
)

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func runMiddleware(mw echo.MiddlewareFunc, h echo.HandlerFunc, req *http.Request) (*httptest.ResponseRecorder, error) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	err := mw(h)(c)
	return rec, err
}

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	var captured string
	h := func(c echo.Context) error {
		captured, _ = c.Get("request_id").(string)
		return c.String(http.StatusOK, "ok")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec, err := runMiddleware(RequestID(), h, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured == "" {
		t.Error("expected a generated request id on the context")
	}
	if rec.Header().Get(RequestIDHeader) != captured {
		t.Errorf("response header %q does not match context id %q",
			rec.Header().Get(RequestIDHeader), captured)
	}
}

func TestRequestID_KeepsCallerID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "trace-42")

	rec, err := runMiddleware(RequestID(), okHandler, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rec.Header().Get(RequestIDHeader); got != "trace-42" {
		t.Errorf("request id = %q, want trace-42", got)
	}
}

func TestLogger_IncludesIdentityFromAuthContext(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	// Simulates the auth middleware running downstream of the logger.
	h := func(c echo.Context) error {
		ctx := context.WithValue(c.Request().Context(), auth.UserIDKey, "admin")
		ctx = context.WithValue(ctx, auth.DepartmentKey, "pharma")
		c.SetRequest(c.Request().WithContext(ctx))
		return c.String(http.StatusOK, "ok")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/billing/sessions", nil)
	if _, err := runMiddleware(Logger(logger), h, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	line := buf.String()
	for _, want := range []string{
		`"user":"admin"`,
		`"department":"pharma"`,
		`"path":"/api/v1/billing/sessions"`,
		`"status":200`,
	} {
		if !strings.Contains(line, want) {
			t.Errorf("log line missing %s: %s", want, line)
		}
	}
}

func TestLogger_WarnsOnClientError(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	h := func(c echo.Context) error {
		return c.NoContent(http.StatusNotFound)
	}
	req := httptest.NewRequest(http.MethodGet, "/bills/nope", nil)
	if _, err := runMiddleware(Logger(logger), h, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	line := buf.String()
	if !strings.Contains(line, `"level":"warn"`) {
		t.Errorf("expected warn level for 404: %s", line)
	}
	if strings.Contains(line, `"user"`) {
		t.Errorf("unauthenticated request must not carry identity fields: %s", line)
	}
}

func TestRecovery_ConvertsPanicTo500(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	h := func(c echo.Context) error {
		panic("dispense counter wedged")
	}
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	_, err := runMiddleware(Recovery(logger), h, req)
	if err == nil {
		t.Fatal("expected an error from the recovered panic")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 HTTPError, got %v", err)
	}
	if !strings.Contains(buf.String(), "dispense counter wedged") {
		t.Errorf("panic value missing from log: %s", buf.String())
	}
}

func TestRecovery_LeavesNormalRequestsAlone(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	rec, err := runMiddleware(Recovery(zerolog.Nop()), okHandler, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRateLimit_AllowsBurstThenRejects(t *testing.T) {
	mw := RateLimit(RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 2})
	h := mw(okHandler)
	e := echo.New()

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c := e.NewContext(req, httptest.NewRecorder())
		if err := h(c); err != nil {
			t.Fatalf("request %d unexpectedly limited: %v", i, err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := h(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %v", err)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected a Retry-After hint")
	}
}

func TestRateLimit_KeysByClientIP(t *testing.T) {
	mw := RateLimit(RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 1})
	h := mw(okHandler)
	e := echo.New()

	send := func(ip string) error {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Real-Ip", ip)
		c := e.NewContext(req, httptest.NewRecorder())
		return h(c)
	}

	if err := send("10.0.0.1"); err != nil {
		t.Fatalf("first client unexpectedly limited: %v", err)
	}
	if err := send("10.0.0.1"); err == nil {
		t.Fatal("exhausted client must be limited")
	}
	if err := send("10.0.0.2"); err != nil {
		t.Errorf("second client must have its own bucket: %v", err)
	}
}
