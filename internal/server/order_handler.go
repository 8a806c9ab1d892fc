package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/ecarthub/marketcore/internal/domain"
	"github.com/ecarthub/marketcore/internal/port"
	"github.com/ecarthub/marketcore/internal/service"
)

type OrderHandler struct {
	checkout *service.CheckoutService
	status   *service.StatusService
	orders   port.OrderRepository
	logger   *slog.Logger
}

func NewOrderHandler(checkout *service.CheckoutService, status *service.StatusService, orders port.OrderRepository, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{checkout: checkout, status: status, orders: orders, logger: logger}
}

type checkoutRequest struct {
	Quantity        int32  `json:"quantity"`
	ShippingAddress string `json:"shipping_address"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	PaymentMethod   string `json:"payment_method"`
}

func (req checkoutRequest) details() domain.CheckoutDetails {
	return domain.CheckoutDetails{
		ShippingAddress: req.ShippingAddress,
		Phone:           req.Phone,
		Email:           req.Email,
		PaymentMethod:   req.PaymentMethod,
	}
}

// HandleBuyNow is the single-product checkout path.
func (h *OrderHandler) HandleBuyNow(w http.ResponseWriter, r *http.Request) {
	shopper := shopperID(r)
	if shopper == "" {
		writeError(w, http.StatusUnauthorized, "missing shopper identity")
		return
	}

	productID, err := uuid.Parse(r.PathValue("productID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, notice, err := h.checkout.FromSingleSelection(r.Context(), shopper, productID, req.Quantity, req.details())
	if err != nil {
		h.logger.Error("buy-now checkout failed", "error", err, "shopper_id", shopper, "product_id", productID)
		writeJSON(w, errStatus(err), map[string]any{"notification": toNotificationView(notice)})
		return
	}

	h.logger.Info("order placed", "order_id", order.ID, "shopper_id", shopper, "total", order.Total.Amount)
	writeJSON(w, http.StatusCreated, map[string]any{
		"order":        toOrderView(order),
		"notification": toNotificationView(notice),
	})
}

// HandleCheckoutCart converts the whole cart into an order.
func (h *OrderHandler) HandleCheckoutCart(w http.ResponseWriter, r *http.Request) {
	shopper := shopperID(r)
	if shopper == "" {
		writeError(w, http.StatusUnauthorized, "missing shopper identity")
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, notice, err := h.checkout.FromCart(r.Context(), shopper, req.details())
	if err != nil {
		h.logger.Error("cart checkout failed", "error", err, "shopper_id", shopper)
		writeJSON(w, errStatus(err), map[string]any{"notification": toNotificationView(notice)})
		return
	}

	h.logger.Info("order placed", "order_id", order.ID, "shopper_id", shopper, "total", order.Total.Amount)
	writeJSON(w, http.StatusCreated, map[string]any{
		"order":        toOrderView(order),
		"notification": toNotificationView(notice),
	})
}

func (h *OrderHandler) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	shopper := shopperID(r)
	if shopper == "" {
		writeError(w, http.StatusUnauthorized, "missing shopper identity")
		return
	}

	orders, err := h.orders.SearchOrders(r.Context(), domain.OrderFilter{
		OwnerIDs: []string{shopper},
	})
	if err != nil {
		h.logger.Error("failed to list orders", "error", err, "shopper_id", shopper)
		writeError(w, errStatus(err), "failed to load orders")
		return
	}

	writeJSON(w, http.StatusOK, toOrderViews(orders))
}

func (h *OrderHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	shopper := shopperID(r)
	if shopper == "" {
		writeError(w, http.StatusUnauthorized, "missing shopper identity")
		return
	}

	orderID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	actor := service.Actor{ID: shopper, Role: service.RoleShopper}

	order, notice, err := h.status.Advance(r.Context(), actor, orderID, domain.OrderStatusCancelled)
	if err != nil {
		h.logger.Error("failed to cancel order", "error", err, "order_id", orderID, "shopper_id", shopper)
		writeJSON(w, errStatus(err), map[string]any{"notification": toNotificationView(notice)})
		return
	}

	h.logger.Info("order cancelled", "order_id", orderID, "shopper_id", shopper)
	writeJSON(w, http.StatusOK, map[string]any{
		"order":        toOrderView(order),
		"notification": toNotificationView(notice),
	})
}
