package pharmacy

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medicare/hms/internal/platform/export"
	"github.com/medicare/hms/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/pharmacy")
	g.GET("/prescriptions", h.List)
	g.GET("/prescriptions/export", h.Export)
	g.GET("/prescriptions/:id", h.Get)
	g.PATCH("/prescriptions/:id/status", h.UpdateStatus)
	g.GET("/stats", h.GetStats)
	g.GET("/inventory", h.ListInventory)
	g.POST("/inventory", h.AddInventoryItem)
	g.PATCH("/inventory/:id", h.UpdateInventoryItem)
	g.DELETE("/inventory/:id", h.DeleteInventoryItem)
}

func (h *Handler) List(c echo.Context) error {
	p := pagination.FromContext(c)
	items, total := h.svc.List(p)
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, p.Limit, p.Offset))
}

func (h *Handler) Get(c echo.Context) error {
	rx, err := h.svc.Get(c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rx)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rx, err := h.svc.SetStatus(c.Param("id"), req.Status)
	switch {
	case errors.Is(err, ErrUnknownStatus):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rx)
}

func (h *Handler) GetStats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Stats())
}

func (h *Handler) ListInventory(c echo.Context) error {
	p := pagination.FromContext(c)
	items, total := h.svc.ListInventory(p)
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, p.Limit, p.Offset))
}

func (h *Handler) AddInventoryItem(c echo.Context) error {
	var item InventoryItem
	if err := c.Bind(&item); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	created, err := h.svc.AddInventoryItem(item)
	if errors.Is(err, ErrBadItem) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, created)
}

type updateInventoryRequest struct {
	UnitPrice float64 `json:"unit_price"`
	Stock     int     `json:"stock"`
}

func (h *Handler) UpdateInventoryItem(c echo.Context) error {
	var req updateInventoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	item, err := h.svc.UpdateInventoryItem(c.Param("id"), req.UnitPrice, req.Stock)
	switch {
	case errors.Is(err, ErrBadItem):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrItemNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, item)
}

func (h *Handler) DeleteInventoryItem(c echo.Context) error {
	err := h.svc.DeleteInventoryItem(c.Param("id"))
	if errors.Is(err, ErrItemNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Export(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="prescriptions.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	items := h.svc.All()
	rows := make([][]string, 0, len(items))
	for _, rx := range items {
		rows = append(rows, []string{rx.ID, rx.Patient, rx.Medication, rx.Status, rx.Priority, rx.Time})
	}
	return export.WriteCSV(c.Response(),
		[]string{"id", "patient", "medication", "status", "priority", "time"}, rows)
}
