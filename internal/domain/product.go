package domain

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID
	SellerID    string
	Name        string
	Description string
	Price       Money
	Stock       int32

	CreatedAt time.Time
	UpdatedAt time.Time
}
