package server

import (
	"net/http"
)

// NewMux wires every route through the metrics middleware. Shopper and seller
// identity arrive in trusted headers, authentication happens upstream.
func NewMux(cart *CartHandler, order *OrderHandler, seller *SellerHandler, metrics *Metrics) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /cart", metrics.instrument("cart_get", cart.HandleGetCart))
	mux.HandleFunc("POST /cart/lines", metrics.instrument("cart_add_line", cart.HandleAddLine))
	mux.HandleFunc("PATCH /cart/lines/{id}", metrics.instrument("cart_adjust_line", cart.HandleAdjustLine))
	mux.HandleFunc("DELETE /cart/lines/{id}", metrics.instrument("cart_remove_line", cart.HandleRemoveLine))

	mux.HandleFunc("POST /checkout/buy-now/{productID}", metrics.instrument("checkout_buy_now", order.HandleBuyNow))
	mux.HandleFunc("POST /checkout/cart", metrics.instrument("checkout_cart", order.HandleCheckoutCart))

	mux.HandleFunc("GET /orders", metrics.instrument("orders_list", order.HandleListOrders))
	mux.HandleFunc("POST /orders/{id}/cancel", metrics.instrument("orders_cancel", order.HandleCancel))

	mux.HandleFunc("GET /seller/orders", metrics.instrument("seller_orders", seller.HandleOrders))
	mux.HandleFunc("POST /seller/orders/{id}/status", metrics.instrument("seller_update_status", seller.HandleUpdateStatus))
	mux.HandleFunc("GET /seller/dashboard", metrics.instrument("seller_dashboard", seller.HandleDashboard))
	mux.HandleFunc("POST /seller/products", metrics.instrument("seller_add_product", seller.HandleAddProduct))
	mux.HandleFunc("GET /seller/products", metrics.instrument("seller_list_products", seller.HandleListProducts))
	mux.HandleFunc("DELETE /seller/products/{id}", metrics.instrument("seller_delete_product", seller.HandleDeleteProduct))

	mux.Handle("GET /metrics", MetricsHandler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return mux
}
