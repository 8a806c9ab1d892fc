package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/ecarthub/marketcore/internal/service"
)

type CartHandler struct {
	carts  *service.CartService
	logger *slog.Logger
}

func NewCartHandler(carts *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{carts: carts, logger: logger}
}

type addLineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
}

func (h *CartHandler) HandleAddLine(w http.ResponseWriter, r *http.Request) {
	shopper := shopperID(r)
	if shopper == "" {
		writeError(w, http.StatusUnauthorized, "missing shopper identity")
		return
	}

	var req addLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	line, err := h.carts.AddLine(r.Context(), shopper, productID, req.Quantity)
	if err != nil {
		h.logger.Error("failed to add cart line", "error", err, "shopper_id", shopper)
		writeError(w, errStatus(err), "failed to add product to cart")
		return
	}

	h.logger.Info("cart line added", "shopper_id", shopper, "product_id", productID, "quantity", line.Quantity)
	writeJSON(w, http.StatusOK, toCartLineView(line))
}

func (h *CartHandler) HandleGetCart(w http.ResponseWriter, r *http.Request) {
	shopper := shopperID(r)
	if shopper == "" {
		writeError(w, http.StatusUnauthorized, "missing shopper identity")
		return
	}

	totals, err := h.carts.Totals(r.Context(), shopper)
	if err != nil {
		h.logger.Error("failed to load cart", "error", err, "shopper_id", shopper)
		writeError(w, errStatus(err), "failed to load cart")
		return
	}

	writeJSON(w, http.StatusOK, toCartView(totals))
}

type adjustLineRequest struct {
	Action string `json:"action"`
}

func (h *CartHandler) HandleAdjustLine(w http.ResponseWriter, r *http.Request) {
	shopper := shopperID(r)
	if shopper == "" {
		writeError(w, http.StatusUnauthorized, "missing shopper identity")
		return
	}

	lineID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid cart line id")
		return
	}

	var req adjustLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	adj, err := service.ParseAdjustment(req.Action)
	if err != nil {
		writeError(w, errStatus(err), "unknown action")
		return
	}

	line, err := h.carts.AdjustLine(r.Context(), shopper, lineID, adj)
	if err != nil {
		h.logger.Error("failed to adjust cart line", "error", err, "shopper_id", shopper, "line_id", lineID)
		writeError(w, errStatus(err), "failed to update cart")
		return
	}

	// Return the refreshed running total alongside the line, mirrors the
	// in-page cart update.
	totals, err := h.carts.Totals(r.Context(), shopper)
	if err != nil {
		h.logger.Error("failed to recompute totals", "error", err, "shopper_id", shopper)
		writeError(w, errStatus(err), "failed to update cart")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"line":  toCartLineView(line),
		"total": toMoneyView(totals.Total),
	})
}

func (h *CartHandler) HandleRemoveLine(w http.ResponseWriter, r *http.Request) {
	shopper := shopperID(r)
	if shopper == "" {
		writeError(w, http.StatusUnauthorized, "missing shopper identity")
		return
	}

	lineID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid cart line id")
		return
	}

	if err := h.carts.RemoveLine(r.Context(), shopper, lineID); err != nil {
		h.logger.Error("failed to remove cart line", "error", err, "shopper_id", shopper, "line_id", lineID)
		writeError(w, errStatus(err), "failed to remove item from cart")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
