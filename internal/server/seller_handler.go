package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/ecarthub/marketcore/internal/domain"
	"github.com/ecarthub/marketcore/internal/port"
	"github.com/ecarthub/marketcore/internal/service"
)

type SellerHandler struct {
	seller   *service.SellerService
	status   *service.StatusService
	products port.ProductRepository
	logger   *slog.Logger
}

func NewSellerHandler(seller *service.SellerService, status *service.StatusService, products port.ProductRepository, logger *slog.Logger) *SellerHandler {
	return &SellerHandler{seller: seller, status: status, products: products, logger: logger}
}

func (h *SellerHandler) HandleOrders(w http.ResponseWriter, r *http.Request) {
	seller := sellerID(r)
	if seller == "" {
		writeError(w, http.StatusUnauthorized, "missing seller identity")
		return
	}

	orders, err := h.seller.Orders(r.Context(), seller)
	if err != nil {
		h.logger.Error("failed to list seller orders", "error", err, "seller_id", seller)
		writeError(w, errStatus(err), "failed to load orders")
		return
	}

	writeJSON(w, http.StatusOK, toOrderViews(orders))
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *SellerHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	seller := sellerID(r)
	if seller == "" {
		writeError(w, http.StatusUnauthorized, "missing seller identity")
		return
	}

	orderID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	target, err := domain.ToOrderStatus(req.Status)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown order status")
		return
	}

	actor := service.Actor{ID: seller, Role: service.RoleSeller}

	order, notice, err := h.status.Advance(r.Context(), actor, orderID, target)
	if err != nil {
		h.logger.Error("failed to update order status", "error", err, "order_id", orderID, "seller_id", seller)
		writeJSON(w, errStatus(err), map[string]any{"notification": toNotificationView(notice)})
		return
	}

	h.logger.Info("order status updated", "order_id", orderID, "seller_id", seller, "status", target)
	writeJSON(w, http.StatusOK, map[string]any{
		"order":        toOrderView(order),
		"notification": toNotificationView(notice),
	})
}

func (h *SellerHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	seller := sellerID(r)
	if seller == "" {
		writeError(w, http.StatusUnauthorized, "missing seller identity")
		return
	}

	stats, err := h.seller.Dashboard(r.Context(), seller)
	if err != nil {
		h.logger.Error("failed to load dashboard", "error", err, "seller_id", seller)
		writeError(w, errStatus(err), "failed to load dashboard")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total_products": stats.TotalProducts,
		"total_orders":   stats.TotalOrders,
		"pending_orders": stats.PendingOrders,
		"revenue":        stats.Revenue,
	})
}

type addProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Stock       int32           `json:"stock"`
}

func (h *SellerHandler) HandleAddProduct(w http.ResponseWriter, r *http.Request) {
	seller := sellerID(r)
	if seller == "" {
		writeError(w, http.StatusUnauthorized, "missing seller identity")
		return
	}

	var req addProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	unit, err := currency.ParseISO(req.Currency)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid currency")
		return
	}

	productID, err := h.products.InsertProduct(r.Context(), domain.Product{
		SellerID:    seller,
		Name:        req.Name,
		Description: req.Description,
		Price:       domain.Money{Amount: req.Price, Currency: unit},
		Stock:       req.Stock,
	})
	if err != nil {
		h.logger.Error("failed to add product", "error", err, "seller_id", seller)
		writeError(w, errStatus(err), "failed to add product")
		return
	}

	h.logger.Info("product added", "product_id", productID, "seller_id", seller)
	writeJSON(w, http.StatusCreated, map[string]string{"id": productID.String()})
}

func (h *SellerHandler) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	seller := sellerID(r)
	if seller == "" {
		writeError(w, http.StatusUnauthorized, "missing seller identity")
		return
	}

	products, err := h.products.ListProductsBySeller(r.Context(), seller)
	if err != nil {
		h.logger.Error("failed to list products", "error", err, "seller_id", seller)
		writeError(w, errStatus(err), "failed to load products")
		return
	}

	views := make([]map[string]any, 0, len(products))
	for _, p := range products {
		views = append(views, map[string]any{
			"id":          p.ID.String(),
			"name":        p.Name,
			"description": p.Description,
			"price":       toMoneyView(p.Price),
			"stock":       p.Stock,
			"created_at":  p.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, views)
}

func (h *SellerHandler) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	seller := sellerID(r)
	if seller == "" {
		writeError(w, http.StatusUnauthorized, "missing seller identity")
		return
	}

	productID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	found, err := h.products.DeleteProduct(r.Context(), seller, productID)
	if err != nil {
		h.logger.Error("failed to delete product", "error", err, "product_id", productID, "seller_id", seller)
		writeError(w, errStatus(err), "failed to delete product")
		return
	}

	if !found {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
