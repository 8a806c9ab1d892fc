package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/ecarthub/marketcore/internal/domain"
)

type CartRepository interface {
	// GetCart joins cart lines with current catalog prices.
	GetCart(ctx context.Context, ownerID string) ([]domain.PricedCartLine, error)

	GetLine(ctx context.Context, ownerID string, lineID uuid.UUID) (domain.CartLine, error)

	// UpsertLine creates a line for (owner, product) or increments its
	// quantity when one already exists.
	UpsertLine(ctx context.Context, ownerID string, productID uuid.UUID, quantity int32) (domain.CartLine, error)

	SetQuantity(ctx context.Context, ownerID string, lineID uuid.UUID, quantity int32) error

	DeleteLine(ctx context.Context, ownerID string, lineID uuid.UUID) (bool, error)
	DeleteCart(ctx context.Context, ownerID string) error
}
