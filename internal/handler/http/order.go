package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/service"
	apperrors "github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/errors"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/httputil"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/validator"
)

// OrderHandler creates payment orders for checkout.
type OrderHandler struct {
	service *service.OrderService
	logger  *slog.Logger
}

// NewOrderHandler creates an order HTTP handler.
func NewOrderHandler(svc *service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{service: svc, logger: logger}
}

// orderError is the body the checkout widget expects on failure.
type orderError struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// Create handles POST /api/create-order. On success the provider's order
// object is returned unwrapped.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateOrderInput
	if err := validator.DecodeAndValidate(w, r, &input); err != nil {
		var details any = err.Error()
		var valErr *validator.ValidationError
		if errors.As(err, &valErr) {
			details = valErr.Fields()
		}
		httputil.WriteJSON(w, http.StatusBadRequest, orderError{Error: "Invalid order request", Details: details})
		return
	}

	order, err := h.service.CreateOrder(r.Context(), input)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Status < http.StatusInternalServerError {
			httputil.WriteJSON(w, appErr.Status, orderError{Error: "Invalid order request", Details: appErr.Message})
			return
		}
		details := err.Error()
		if errors.As(err, &appErr) {
			details = appErr.Message
		}
		httputil.WriteJSON(w, http.StatusInternalServerError, orderError{Error: "Failed to create order", Details: details})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(order.Raw)
}
