package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func doLogin(t *testing.T, body string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/auth/login")

	h := NewHandler(testTokenConfig)
	return rec, h.Login(c)
}

func TestLogin_IssuesToken(t *testing.T) {
	rec, err := doLogin(t, `{"username":"admin","password":"password123","department":"pharma"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}
	if resp.Department != "pharma" {
		t.Errorf("expected department pharma, got %s", resp.Department)
	}
}

func TestLogin_RejectsBadPassword(t *testing.T) {
	_, err := doLogin(t, `{"username":"admin","password":"wrong","department":"pharma"}`)
	if err == nil {
		t.Fatal("expected error for bad password")
	}
}

func TestLogin_RejectsUnknownDepartment(t *testing.T) {
	_, err := doLogin(t, `{"username":"admin","password":"password123","department":"cardiology"}`)
	if err == nil {
		t.Fatal("expected error for unknown department")
	}
}
