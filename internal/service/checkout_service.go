package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ecarthub/marketcore/internal/domain"
	"github.com/ecarthub/marketcore/internal/port"
)

// CheckoutService materializes a cart or a single buy-now selection into an
// immutable order. Unit prices and seller ids are snapshotted per line at
// creation, later catalog changes never touch an existing order.
type CheckoutService struct {
	products port.ProductRepository
	carts    port.CartRepository
	orders   port.OrderRepository
}

func NewCheckout(products port.ProductRepository, carts port.CartRepository, orders port.OrderRepository) *CheckoutService {
	return &CheckoutService{products: products, carts: carts, orders: orders}
}

// FromSingleSelection is the buy-now checkout path.
func (s *CheckoutService) FromSingleSelection(ctx context.Context, shopperID string, productID uuid.UUID, quantity int32, details domain.CheckoutDetails) (domain.Order, domain.Notification, error) {
	var o domain.Order

	if err := details.Validate(); err != nil {
		return o, failureNotice(shopperID), fmt.Errorf("details.Validate: %w", err)
	}
	if quantity < 1 {
		return o, failureNotice(shopperID), fmt.Errorf("quantity must be at least 1: %w", domain.ErrValidation)
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return o, failureNotice(shopperID), fmt.Errorf("products.GetProduct: %w", err)
	}

	order := domain.Order{
		OwnerID: shopperID,
		Lines: []domain.OrderLine{{
			ProductID: product.ID,
			SellerID:  product.SellerID,
			Quantity:  quantity,
			UnitPrice: product.Price,
		}},
		Total:           product.Price.Mul(quantity),
		Status:          domain.OrderStatusOrdered,
		ShippingAddress: details.ShippingAddress,
		Phone:           details.Phone,
		Email:           details.Email,
		PaymentMethod:   details.PaymentMethod,
	}

	return s.persist(ctx, shopperID, order)
}

// FromCart snapshots every current cart line into an order. The cart is left
// untouched, it persists independently of the orders it produced.
func (s *CheckoutService) FromCart(ctx context.Context, shopperID string, details domain.CheckoutDetails) (domain.Order, domain.Notification, error) {
	var o domain.Order

	if err := details.Validate(); err != nil {
		return o, failureNotice(shopperID), fmt.Errorf("details.Validate: %w", err)
	}

	lines, err := s.carts.GetCart(ctx, shopperID)
	if err != nil {
		return o, failureNotice(shopperID), fmt.Errorf("carts.GetCart: %w", err)
	}

	if len(lines) == 0 {
		return o, failureNotice(shopperID), fmt.Errorf("cart is empty: %w", domain.ErrValidation)
	}

	order := domain.Order{
		OwnerID: shopperID,
		Status:  domain.OrderStatusOrdered,

		ShippingAddress: details.ShippingAddress,
		Phone:           details.Phone,
		Email:           details.Email,
		PaymentMethod:   details.PaymentMethod,
	}

	for i, line := range lines {
		order.Lines = append(order.Lines, domain.OrderLine{
			ProductID: line.ProductID,
			SellerID:  line.SellerID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})

		if i == 0 {
			order.Total = line.LineTotal
			continue
		}

		order.Total, err = order.Total.Add(line.LineTotal)
		if err != nil {
			return o, failureNotice(shopperID), fmt.Errorf("total.Add: %w", err)
		}
	}

	return s.persist(ctx, shopperID, order)
}

func (s *CheckoutService) persist(ctx context.Context, shopperID string, order domain.Order) (domain.Order, domain.Notification, error) {
	var o domain.Order

	orderID, err := s.orders.InsertOrder(ctx, order)
	if err != nil {
		return o, failureNotice(shopperID), fmt.Errorf("orders.InsertOrder: %w", err)
	}

	created, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return o, failureNotice(shopperID), fmt.Errorf("orders.GetOrder: %w", err)
	}

	return created, domain.Notification{
		ForActor: shopperID,
		Kind:     domain.NotificationSuccess,
		Message:  "Order placed successfully!",
	}, nil
}

func failureNotice(shopperID string) domain.Notification {
	return domain.Notification{
		ForActor: shopperID,
		Kind:     domain.NotificationDanger,
		Message:  "Failed to place order. Try again!",
	}
}
