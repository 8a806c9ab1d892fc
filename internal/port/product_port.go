package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/ecarthub/marketcore/internal/domain"
)

type ProductRepository interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error)
	ListProductsBySeller(ctx context.Context, sellerID string) ([]domain.Product, error)
	CountProductsBySeller(ctx context.Context, sellerID string) (int64, error)

	InsertProduct(ctx context.Context, product domain.Product) (uuid.UUID, error)
	UpdateProductPrice(ctx context.Context, productID uuid.UUID, price domain.Money) error

	DeleteProduct(ctx context.Context, sellerID string, productID uuid.UUID) (bool, error)
}
