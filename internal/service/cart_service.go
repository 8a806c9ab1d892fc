package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ecarthub/marketcore/internal/domain"
	"github.com/ecarthub/marketcore/internal/port"
)

// Adjustment is the direction of a single-step quantity change.
type Adjustment string

const (
	AdjustIncrease Adjustment = "increase"
	AdjustDecrease Adjustment = "decrease"
)

func ParseAdjustment(s string) (Adjustment, error) {
	switch Adjustment(s) {
	case AdjustIncrease, AdjustDecrease:
		return Adjustment(s), nil
	}
	return "", fmt.Errorf("unknown adjustment %q: %w", s, domain.ErrValidation)
}

// CartService maintains one mutable line collection per shopper and computes
// running totals against current catalog prices.
type CartService struct {
	carts    port.CartRepository
	products port.ProductRepository
}

func NewCart(carts port.CartRepository, products port.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

// AddLine creates a line for (shopper, product) or increments the quantity of
// an existing one. No upper bound is enforced, stock is not checked.
func (s *CartService) AddLine(ctx context.Context, shopperID string, productID uuid.UUID, quantity int32) (domain.CartLine, error) {
	var line domain.CartLine

	if quantity < 1 {
		quantity = 1
	}

	if _, err := s.products.GetProduct(ctx, productID); err != nil {
		return line, fmt.Errorf("products.GetProduct: %w", err)
	}

	line, err := s.carts.UpsertLine(ctx, shopperID, productID, quantity)
	if err != nil {
		return line, fmt.Errorf("carts.UpsertLine: %w", err)
	}

	return line, nil
}

// AdjustLine moves a line quantity by one step. Decrease floors at 1: reaching
// zero requires an explicit RemoveLine.
func (s *CartService) AdjustLine(ctx context.Context, shopperID string, lineID uuid.UUID, adj Adjustment) (domain.CartLine, error) {
	line, err := s.carts.GetLine(ctx, shopperID, lineID)
	if err != nil {
		return line, fmt.Errorf("carts.GetLine: %w", err)
	}

	switch adj {
	case AdjustIncrease:
		line.Quantity++
	case AdjustDecrease:
		if line.Quantity <= 1 {
			return line, nil
		}
		line.Quantity--
	default:
		return line, fmt.Errorf("unknown adjustment %q: %w", adj, domain.ErrValidation)
	}

	if err := s.carts.SetQuantity(ctx, shopperID, lineID, line.Quantity); err != nil {
		return line, fmt.Errorf("carts.SetQuantity: %w", err)
	}

	return line, nil
}

func (s *CartService) RemoveLine(ctx context.Context, shopperID string, lineID uuid.UUID) error {
	found, err := s.carts.DeleteLine(ctx, shopperID, lineID)
	if err != nil {
		return fmt.Errorf("carts.DeleteLine: %w", err)
	}

	if !found {
		return fmt.Errorf("cart line[%s]: %w", lineID, domain.ErrNotFound)
	}

	return nil
}

// Totals recomputes the cart sum on every read so catalog price changes show
// up immediately. Nothing here is ever persisted.
func (s *CartService) Totals(ctx context.Context, shopperID string) (domain.CartTotals, error) {
	totals := domain.CartTotals{OwnerID: shopperID}

	lines, err := s.carts.GetCart(ctx, shopperID)
	if err != nil {
		return totals, fmt.Errorf("carts.GetCart: %w", err)
	}

	totals.Lines = lines

	for i, line := range lines {
		if i == 0 {
			totals.Total = line.LineTotal
			continue
		}

		totals.Total, err = totals.Total.Add(line.LineTotal)
		if err != nil {
			return totals, fmt.Errorf("total.Add: %w", err)
		}
	}

	return totals, nil
}
