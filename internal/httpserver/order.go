package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dkirsanov/inventorypro/internal/logging"
	authmw "github.com/dkirsanov/inventorypro/internal/middleware/auth"
	"github.com/dkirsanov/inventorypro/internal/service"
	"github.com/dkirsanov/inventorypro/internal/transport"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	userID, ok := authmw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
	}

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	summary, err := h.Svc.CreateOrder(ctx, userID, req.ProductIDs)
	if err != nil {
		if errors.Is(err, service.ErrNoValidProducts) {
			l.Warn("create_order_error", "status", 400, "reason", "no valid products")
			return echo.NewHTTPError(http.StatusBadRequest, "no valid products in order")
		}
		l.Error("create_order_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create order")
	}

	return c.JSON(http.StatusCreated, summary)
}

func (h *OrderHTTP) CancelOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.cancel")

	userID, ok := authmw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
	}

	orderID, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.CancelOrder(ctx, orderID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("cancel_order_error", "status", 404, "order_id", orderID)
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		case errors.Is(err, service.ErrAlreadyFinalized):
			l.Warn("cancel_order_error", "status", 400, "order_id", orderID)
			return echo.NewHTTPError(http.StatusBadRequest, "cannot cancel order that is already shipped or cancelled")
		default:
			l.Error("cancel_order_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot cancel order")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "order cancelled"})
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	userID, ok := authmw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
	}

	orders, err := h.Svc.ListOrders(ctx, userID)
	if err != nil {
		l.Error("list_orders_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list orders")
	}

	return c.JSON(http.StatusOK, orders)
}
