package billing

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/medicare/hms/internal/platform/export"
	"github.com/medicare/hms/pkg/pagination"
)

// Handler exposes the billing workflow over HTTP.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	sessions := api.Group("/billing/sessions")
	sessions.POST("", h.StartSession)
	sessions.GET("/:id", h.GetSession)
	sessions.POST("/:id/items", h.AddItem)
	sessions.PATCH("/:id/items/:itemID", h.UpdateItemQuantity)
	sessions.DELETE("/:id/items/:itemID", h.RemoveItem)
	sessions.PUT("/:id/customer", h.SetCustomer)
	sessions.POST("/:id/select-method", h.SelectMethod)
	sessions.POST("/:id/pay/cash", h.PayCash)
	sessions.POST("/:id/pay/gateway", h.PayGateway)
	sessions.POST("/:id/cancel", h.Cancel)

	api.GET("/bills", h.ListBills)
	api.GET("/bills/export", h.ExportBills)
	api.GET("/bills/:id", h.GetBill)
}

func (h *Handler) StartSession(c echo.Context) error {
	return c.JSON(http.StatusCreated, h.svc.StartSession())
}

func (h *Handler) GetSession(c echo.Context) error {
	view, err := h.svc.Session(c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, view)
}

type addItemRequest struct {
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

func (h *Handler) AddItem(c echo.Context) error {
	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	item, err := h.svc.AddItem(c.Param("id"), req.Name, req.UnitPrice, req.Quantity)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, item)
}

type updateQuantityRequest struct {
	Delta int `json:"delta"`
}

func (h *Handler) UpdateItemQuantity(c echo.Context) error {
	var req updateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	view, err := h.svc.UpdateItemQuantity(c.Param("id"), c.Param("itemID"), req.Delta)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *Handler) RemoveItem(c echo.Context) error {
	view, err := h.svc.RemoveItem(c.Param("id"), c.Param("itemID"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *Handler) SetCustomer(c echo.Context) error {
	var cust Customer
	if err := c.Bind(&cust); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	view, err := h.svc.SetCustomer(c.Param("id"), cust)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, view)
}

type selectMethodRequest struct {
	Method PaymentMethod `json:"method"`
}

func (h *Handler) SelectMethod(c echo.Context) error {
	var req selectMethodRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	view, err := h.svc.SelectMethod(c.Param("id"), req.Method)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, view)
}

type payCashRequest struct {
	AmountReceived float64 `json:"amount_received"`
	Notes          string  `json:"notes"`
}

func (h *Handler) PayCash(c echo.Context) error {
	var req payCashRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	bill, err := h.svc.PayCash(c.Param("id"), req.AmountReceived, req.Notes)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, bill)
}

func (h *Handler) PayGateway(c echo.Context) error {
	sessionID := c.Param("id")
	bill, err := h.svc.PayGateway(c.Request().Context(), sessionID)
	if errors.Is(err, ErrPaymentCancelled) {
		view, verr := h.svc.Session(sessionID)
		if verr != nil {
			return httpError(verr)
		}
		return c.JSON(http.StatusOK, view)
	}
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, bill)
}

func (h *Handler) Cancel(c echo.Context) error {
	view, err := h.svc.Cancel(c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *Handler) ListBills(c echo.Context) error {
	p := pagination.FromContext(c)
	bills, total := h.svc.ListBills(p)
	return c.JSON(http.StatusOK, pagination.NewResponse(bills, total, p.Limit, p.Offset))
}

func (h *Handler) GetBill(c echo.Context) error {
	bill, err := h.svc.Bill(c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, bill)
}

// ExportBills streams the full ledger as CSV, one row per bill.
func (h *Handler) ExportBills(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="bills.csv"`)
	c.Response().WriteHeader(http.StatusOK)
	return export.WriteCSV(c.Response(), billCSVHeader, BillCSVRows(h.svc.AllBills()))
}

var billCSVHeader = []string{"bill_id", "created_at", "customer", "phone", "items", "total", "method", "reference"}

// BillCSVRows flattens bills into export rows. The reference column
// carries the gateway payment id for gateway bills and the change
// given for cash bills.
func BillCSVRows(bills []Bill) [][]string {
	rows := make([][]string, 0, len(bills))
	for _, b := range bills {
		ref := b.Payment.PaymentID
		if b.Payment.Method == MethodCash {
			ref = "change " + strconv.FormatFloat(b.Payment.Change, 'f', 2, 64)
		}
		rows = append(rows, []string{
			b.ID,
			b.CreatedAt.Format("2006-01-02 15:04:05"),
			b.Customer.Name,
			b.Customer.Phone,
			strconv.Itoa(len(b.Items)),
			strconv.FormatFloat(b.Total, 'f', 2, 64),
			string(b.Payment.Method),
			ref,
		})
	}
	return rows
}

// BillCSVHeader is the column set used by bill exports.
func BillCSVHeader() []string {
	out := make([]string, len(billCSVHeader))
	copy(out, billCSVHeader)
	return out
}

func httpError(err error) error {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return echo.NewHTTPError(http.StatusBadRequest, verr.Error())
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrBillNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrEmptyCart), errors.Is(err, ErrMissingCustomer), errors.Is(err, ErrInvalidAmount):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidState):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrGatewayLoad):
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	case errors.Is(err, ErrGatewayTimeout):
		return echo.NewHTTPError(http.StatusGatewayTimeout, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("billing: %v", err))
	}
}
