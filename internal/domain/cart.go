package domain

import (
	"time"

	"github.com/google/uuid"
)

// CartLine is one (shopper, product) row. Unique per pair: adding the same
// product again increments Quantity in place.
type CartLine struct {
	ID        uuid.UUID
	OwnerID   string
	ProductID uuid.UUID
	Quantity  int32

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PricedCartLine joins a cart line with the product's current catalog price.
// Prices here track the catalog, unlike order lines which are frozen.
type PricedCartLine struct {
	CartLine

	ProductName string
	SellerID    string
	UnitPrice   Money
	LineTotal   Money
}

type CartTotals struct {
	OwnerID string
	Lines   []PricedCartLine
	Total   Money
}
