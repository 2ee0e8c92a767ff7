package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Departments a user can sign in to. Each maps to the role gating its routes.
var validDepartments = map[string]bool{
	"pharma":    true,
	"lab":       true,
	"radiology": true,
}

// demoCredentials is the built-in account set. This is a deliberate stub:
// there is no user store and no real credential management in this system.
var demoCredentials = map[string]string{
	"admin": "password123",
}

// Handler serves the login endpoint that issues department session tokens.
type Handler struct {
	cfg TokenConfig
}

func NewHandler(cfg TokenConfig) *Handler {
	return &Handler{cfg: cfg}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/auth/login", h.Login)
}

type loginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	Department string `json:"department"`
}

type loginResponse struct {
	Token      string `json:"token"`
	Username   string `json:"username"`
	Department string `json:"department"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !validDepartments[req.Department] {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown department")
	}
	if pw, ok := demoCredentials[req.Username]; !ok || pw != req.Password {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	token, err := IssueToken(h.cfg, req.Username, req.Department, []string{req.Department})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to issue token")
	}
	return c.JSON(http.StatusOK, loginResponse{
		Token:      token,
		Username:   req.Username,
		Department: req.Department,
	})
}
