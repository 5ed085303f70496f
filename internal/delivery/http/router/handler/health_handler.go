package handler

import (
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"
	"storefront/internal/usecase/slice"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// HealthCheck handles GET /health
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}

// StatusHandlerParams holds dependencies for StatusHandler, injected by Fx.
type StatusHandlerParams struct {
	fx.In

	ProductUC  usecase.ProductUsecase
	OrderUC    usecase.OrderUsecase
	ReviewUC   usecase.ReviewUsecase
	DiscountUC usecase.DiscountUsecase
}

// StatusHandler reports the loading and error state of every slice.
type StatusHandler struct {
	statuses map[string]func() slice.Status
}

// NewStatusHandler is the constructor for StatusHandler
func NewStatusHandler(params StatusHandlerParams) *StatusHandler {
	return &StatusHandler{
		statuses: map[string]func() slice.Status{
			"products":  params.ProductUC.Status,
			"orders":    params.OrderUC.Status,
			"reviews":   params.ReviewUC.Status,
			"discounts": params.DiscountUC.Status,
		},
	}
}

// Status handles GET /status
func (h *StatusHandler) Status(c echo.Context) error {
	out := make(map[string]slice.Status, len(h.statuses))
	for name, status := range h.statuses {
		out[name] = status()
	}

	return response.Success(c, http.StatusOK, out, "")
}
