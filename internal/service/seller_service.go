package service

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/ecarthub/marketcore/internal/domain"
	"github.com/ecarthub/marketcore/internal/port"
)

// SellerService provides the seller-facing read views: the orders a seller
// participates in and aggregate dashboard figures.
type SellerService struct {
	products port.ProductRepository
	orders   port.OrderRepository
}

func NewSeller(products port.ProductRepository, orders port.OrderRepository) *SellerService {
	return &SellerService{products: products, orders: orders}
}

// Orders returns every order containing at least one of the seller's lines.
func (s *SellerService) Orders(ctx context.Context, sellerID string) ([]domain.Order, error) {
	orders, err := s.orders.SearchOrders(ctx, domain.OrderFilter{
		SellerIDs: []string{sellerID},
	})
	if err != nil {
		return nil, fmt.Errorf("orders.SearchOrders: %w", err)
	}

	return orders, nil
}

type DashboardStats struct {
	TotalProducts int64
	TotalOrders   int
	PendingOrders int
	Revenue       decimal.Decimal
}

func (s *SellerService) Dashboard(ctx context.Context, sellerID string) (DashboardStats, error) {
	var stats DashboardStats

	totalProducts, err := s.products.CountProductsBySeller(ctx, sellerID)
	if err != nil {
		return stats, fmt.Errorf("products.CountProductsBySeller: %w", err)
	}

	orders, err := s.Orders(ctx, sellerID)
	if err != nil {
		return stats, fmt.Errorf("s.Orders: %w", err)
	}

	return DashboardStats{
		TotalProducts: totalProducts,
		TotalOrders:   len(orders),
		PendingOrders: lo.CountBy(orders, func(o domain.Order) bool {
			return o.Status == domain.OrderStatusOrdered
		}),
		Revenue: lo.Reduce(orders, func(sum decimal.Decimal, o domain.Order, _ int) decimal.Decimal {
			return sum.Add(o.Total.Amount)
		}, decimal.Zero),
	}, nil
}
