package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Order is an immutable purchase snapshot. Monetary fields and line data are
// frozen at creation time; only Status and UpdatedAt change afterwards.
type Order struct {
	ID      uuid.UUID
	OwnerID string
	Lines   []OrderLine
	Total   Money
	Status  OrderStatus

	ShippingAddress string
	Phone           string
	Email           string
	PaymentMethod   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderLine carries a denormalized SellerID and UnitPrice captured at
// checkout, so authorization and totals stay resolvable even if the product
// is later repriced or deleted.
type OrderLine struct {
	ProductID uuid.UUID
	SellerID  string
	Quantity  int32
	UnitPrice Money

	CreatedAt time.Time
}

// SellerIDs returns the distinct owners of the order's lines.
func (o Order) SellerIDs() []string {
	seen := make(map[string]struct{}, len(o.Lines))
	var ids []string
	for _, line := range o.Lines {
		if _, ok := seen[line.SellerID]; ok {
			continue
		}
		seen[line.SellerID] = struct{}{}
		ids = append(ids, line.SellerID)
	}
	return ids
}

// OwnedBySeller reports whether the seller owns at least one line.
// Recomputed per call, never cached on the order.
func (o Order) OwnedBySeller(sellerID string) bool {
	for _, line := range o.Lines {
		if line.SellerID == sellerID {
			return true
		}
	}
	return false
}

// CheckoutDetails are the shipping and payment fields supplied at checkout.
// Validation is presence-only, malformed values are accepted verbatim.
type CheckoutDetails struct {
	ShippingAddress string
	Phone           string
	Email           string
	PaymentMethod   string
}

func (c CheckoutDetails) Validate() error {
	if c.ShippingAddress == "" {
		return fmt.Errorf("shipping address is required: %w", ErrValidation)
	}
	if c.Phone == "" {
		return fmt.Errorf("phone is required: %w", ErrValidation)
	}
	if c.Email == "" {
		return fmt.Errorf("email is required: %w", ErrValidation)
	}
	if c.PaymentMethod == "" {
		return fmt.Errorf("payment method is required: %w", ErrValidation)
	}
	return nil
}
