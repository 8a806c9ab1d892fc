package service_test

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ecarthub/marketcore/internal/domain"
)

// memStore is an in-memory stand-in for the three repositories, enough to
// exercise the aggregation, checkout and status rules without a database.
type memStore struct {
	products  map[uuid.UUID]domain.Product
	lines     map[uuid.UUID]domain.CartLine
	lineOrder []uuid.UUID
	orders    map[uuid.UUID]domain.Order
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[uuid.UUID]domain.Product),
		lines:    make(map[uuid.UUID]domain.CartLine),
		orders:   make(map[uuid.UUID]domain.Order),
	}
}

func (m *memStore) GetProduct(_ context.Context, productID uuid.UUID) (domain.Product, error) {
	p, ok := m.products[productID]
	if !ok {
		return domain.Product{}, fmt.Errorf("product[%s]: %w", productID, domain.ErrNotFound)
	}
	return p, nil
}

func (m *memStore) ListProductsBySeller(_ context.Context, sellerID string) ([]domain.Product, error) {
	var products []domain.Product
	for _, p := range m.products {
		if p.SellerID == sellerID {
			products = append(products, p)
		}
	}
	return products, nil
}

func (m *memStore) CountProductsBySeller(ctx context.Context, sellerID string) (int64, error) {
	products, _ := m.ListProductsBySeller(ctx, sellerID)
	return int64(len(products)), nil
}

func (m *memStore) InsertProduct(_ context.Context, product domain.Product) (uuid.UUID, error) {
	product.ID = uuid.New()
	product.CreatedAt = time.Now().UTC()
	product.UpdatedAt = product.CreatedAt
	m.products[product.ID] = product
	return product.ID, nil
}

func (m *memStore) UpdateProductPrice(_ context.Context, productID uuid.UUID, price domain.Money) error {
	p, ok := m.products[productID]
	if !ok {
		return fmt.Errorf("product[%s]: %w", productID, domain.ErrNotFound)
	}
	p.Price = price
	p.UpdatedAt = time.Now().UTC()
	m.products[productID] = p
	return nil
}

func (m *memStore) DeleteProduct(_ context.Context, sellerID string, productID uuid.UUID) (bool, error) {
	p, ok := m.products[productID]
	if !ok || p.SellerID != sellerID {
		return false, nil
	}
	delete(m.products, productID)
	return true, nil
}

func (m *memStore) GetCart(_ context.Context, ownerID string) ([]domain.PricedCartLine, error) {
	var priced []domain.PricedCartLine
	for _, lineID := range m.lineOrder {
		line, ok := m.lines[lineID]
		if !ok || line.OwnerID != ownerID {
			continue
		}

		product, ok := m.products[line.ProductID]
		if !ok {
			continue // deleted products drop out of the join
		}

		priced = append(priced, domain.PricedCartLine{
			CartLine:    line,
			ProductName: product.Name,
			SellerID:    product.SellerID,
			UnitPrice:   product.Price,
			LineTotal:   product.Price.Mul(line.Quantity),
		})
	}
	return priced, nil
}

func (m *memStore) GetLine(_ context.Context, ownerID string, lineID uuid.UUID) (domain.CartLine, error) {
	line, ok := m.lines[lineID]
	if !ok || line.OwnerID != ownerID {
		return domain.CartLine{}, fmt.Errorf("cart line[%s]: %w", lineID, domain.ErrNotFound)
	}
	return line, nil
}

func (m *memStore) UpsertLine(_ context.Context, ownerID string, productID uuid.UUID, quantity int32) (domain.CartLine, error) {
	for id, line := range m.lines {
		if line.OwnerID == ownerID && line.ProductID == productID {
			line.Quantity += quantity
			line.UpdatedAt = time.Now().UTC()
			m.lines[id] = line
			return line, nil
		}
	}

	line := domain.CartLine{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	m.lines[line.ID] = line
	m.lineOrder = append(m.lineOrder, line.ID)
	return line, nil
}

func (m *memStore) SetQuantity(_ context.Context, ownerID string, lineID uuid.UUID, quantity int32) error {
	line, ok := m.lines[lineID]
	if !ok || line.OwnerID != ownerID {
		return fmt.Errorf("cart line[%s]: %w", lineID, domain.ErrNotFound)
	}
	line.Quantity = quantity
	line.UpdatedAt = time.Now().UTC()
	m.lines[lineID] = line
	return nil
}

func (m *memStore) DeleteLine(_ context.Context, ownerID string, lineID uuid.UUID) (bool, error) {
	line, ok := m.lines[lineID]
	if !ok || line.OwnerID != ownerID {
		return false, nil
	}
	delete(m.lines, lineID)
	return true, nil
}

func (m *memStore) DeleteCart(_ context.Context, ownerID string) error {
	for id, line := range m.lines {
		if line.OwnerID == ownerID {
			delete(m.lines, id)
		}
	}
	return nil
}

func (m *memStore) GetOrder(_ context.Context, orderID uuid.UUID) (domain.Order, error) {
	o, ok := m.orders[orderID]
	if !ok {
		return domain.Order{}, fmt.Errorf("order[%s]: %w", orderID, domain.ErrNotFound)
	}
	return o, nil
}

func (m *memStore) SearchOrders(_ context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("filter.Validate: %w", err)
	}

	var orders []domain.Order
	for _, o := range m.orders {
		if len(filter.IDs) > 0 && !containsUUID(filter.IDs, o.ID) {
			continue
		}
		if len(filter.OwnerIDs) > 0 && !containsString(filter.OwnerIDs, o.OwnerID) {
			continue
		}
		if len(filter.SellerIDs) > 0 && !anySellerOwns(o, filter.SellerIDs) {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, o.Status) {
			continue
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (m *memStore) InsertOrder(_ context.Context, order domain.Order) (uuid.UUID, error) {
	if len(order.Lines) == 0 {
		return uuid.Nil, fmt.Errorf("no lines in order")
	}
	order.ID = uuid.New()
	order.CreatedAt = time.Now().UTC()
	order.UpdatedAt = order.CreatedAt
	m.orders[order.ID] = order
	return order.ID, nil
}

func (m *memStore) UpdateOrderStatus(_ context.Context, orderID uuid.UUID, status domain.OrderStatus) error {
	o, ok := m.orders[orderID]
	if !ok {
		return fmt.Errorf("order[%s]: %w", orderID, domain.ErrNotFound)
	}
	o.Status = status
	o.UpdatedAt = time.Now().UTC()
	m.orders[orderID] = o
	return nil
}

func containsUUID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func containsString(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}

func containsStatus(statuses []domain.OrderStatus, status domain.OrderStatus) bool {
	for _, candidate := range statuses {
		if candidate == status {
			return true
		}
	}
	return false
}

func anySellerOwns(o domain.Order, sellerIDs []string) bool {
	for _, sellerID := range sellerIDs {
		if o.OwnedBySeller(sellerID) {
			return true
		}
	}
	return false
}
