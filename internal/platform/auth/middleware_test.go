package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

var testTokenConfig = TokenConfig{
	Secret: []byte("0123456789abcdef0123456789abcdef"),
	TTL:    time.Hour,
}

func TestJWTMiddleware_AcceptsIssuedToken(t *testing.T) {
	token, err := IssueToken(testTokenConfig, "admin", "pharma", []string{"pharma"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		ctx := c.Request().Context()
		if UserIDFromContext(ctx) != "admin" {
			t.Errorf("expected user admin, got %q", UserIDFromContext(ctx))
		}
		if DepartmentFromContext(ctx) != "pharma" {
			t.Errorf("expected department pharma, got %q", DepartmentFromContext(ctx))
		}
		roles := RolesFromContext(ctx)
		if len(roles) != 1 || roles[0] != "pharma" {
			t.Errorf("unexpected roles: %v", roles)
		}
		return c.String(http.StatusOK, "ok")
	}

	if err := JWTMiddleware(testTokenConfig)(handler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestJWTMiddleware_RejectsMissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	err := JWTMiddleware(testTokenConfig)(func(c echo.Context) error {
		t.Fatal("handler should not run")
		return nil
	})(c)

	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestJWTMiddleware_RejectsForgedToken(t *testing.T) {
	otherCfg := TokenConfig{Secret: []byte("another-secret-another-secret-00"), TTL: time.Hour}
	token, err := IssueToken(otherCfg, "admin", "pharma", []string{"pharma"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	c := e.NewContext(req, httptest.NewRecorder())

	err = JWTMiddleware(testTokenConfig)(func(c echo.Context) error {
		t.Fatal("handler should not run")
		return nil
	})(c)

	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestJWTMiddleware_RejectsExpiredToken(t *testing.T) {
	expiredCfg := TokenConfig{Secret: testTokenConfig.Secret, TTL: -time.Minute}
	token, err := IssueToken(expiredCfg, "admin", "lab", []string{"lab"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	c := e.NewContext(req, httptest.NewRecorder())

	err = JWTMiddleware(testTokenConfig)(func(c echo.Context) error {
		t.Fatal("handler should not run")
		return nil
	})(c)

	if err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestRequireRole_AllowsMatchingRole(t *testing.T) {
	token, _ := IssueToken(testTokenConfig, "admin", "lab", []string{"lab"})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	c := e.NewContext(req, httptest.NewRecorder())

	called := false
	handler := func(c echo.Context) error {
		called = true
		return c.String(http.StatusOK, "ok")
	}

	err := JWTMiddleware(testTokenConfig)(RequireRole("lab")(handler))(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("expected handler to run")
	}
}

func TestRequireRole_RejectsOtherDepartment(t *testing.T) {
	token, _ := IssueToken(testTokenConfig, "admin", "lab", []string{"lab"})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	c := e.NewContext(req, httptest.NewRecorder())

	err := JWTMiddleware(testTokenConfig)(RequireRole("pharma")(func(c echo.Context) error {
		t.Fatal("handler should not run")
		return nil
	}))(c)

	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %v", err)
	}
}

func TestRequireRole_AdminBypasses(t *testing.T) {
	token, _ := IssueToken(testTokenConfig, "root", "pharma", []string{"admin"})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	c := e.NewContext(req, httptest.NewRecorder())

	err := JWTMiddleware(testTokenConfig)(RequireRole("radiology")(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}))(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
