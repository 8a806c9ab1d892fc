package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"
	"golang.org/x/text/currency"

	"github.com/ecarthub/marketcore/internal/domain"
	"github.com/ecarthub/marketcore/internal/port"
)

type orderRepository struct {
	db DBTX
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{db: pool}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{db: tx}
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	var o domain.Order

	order, err := withTx(ctx, r.db, func(q DBTX) (domain.Order, error) {
		order, err := scanOrder(q.QueryRow(ctx, `
			SELECT id, owner_id, total_amount, total_currency, status,
			       shipping_address, phone, email, payment_method, created_at, updated_at
			FROM orders
			WHERE id = $1`, orderID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return o, fmt.Errorf("order[%s]: %w", orderID, domain.ErrNotFound)
			}
			return o, fmt.Errorf("scanOrder: %w", err)
		}

		order.Lines, err = getOrderLines(ctx, q, orderID)
		if err != nil {
			return o, fmt.Errorf("getOrderLines: %w", err)
		}

		return order, nil
	})
	if err != nil {
		return o, fmt.Errorf("withTx: %w", err)
	}

	return order, nil
}

func (r *orderRepository) InsertOrder(ctx context.Context, order domain.Order) (uuid.UUID, error) {
	if len(order.Lines) == 0 {
		return uuid.Nil, errors.New("no lines in order")
	}
	if order.OwnerID == "" {
		return uuid.Nil, errors.New("ownerID is empty")
	}

	orderID, err := withTx(ctx, r.db, func(q DBTX) (uuid.UUID, error) {
		var orderID uuid.UUID

		err := q.QueryRow(ctx, `
			INSERT INTO orders (owner_id, total_amount, total_currency, status,
			                    shipping_address, phone, email, payment_method)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id`,
			order.OwnerID, order.Total.Amount, order.Total.Currency.String(), string(order.Status),
			order.ShippingAddress, order.Phone, order.Email, order.PaymentMethod).Scan(&orderID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("insert order: %w", err)
		}

		for _, line := range order.Lines {
			_, err := q.Exec(ctx, `
				INSERT INTO order_lines (order_id, product_id, seller_id, quantity, price_amount, price_currency)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				orderID, line.ProductID, line.SellerID, line.Quantity,
				line.UnitPrice.Amount, line.UnitPrice.Currency.String())
			if err != nil {
				return uuid.Nil, fmt.Errorf("insert order line: %w", err)
			}
		}

		return orderID, nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("withTx: %w", err)
	}

	return orderID, nil
}

func (r *orderRepository) SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("filter.Validate: %w", err)
	}

	query, args := buildSearchQuery(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db.Query: %w", err)
	}
	defer rows.Close()

	// Group joined rows into orders and their lines
	orderMap := make(map[uuid.UUID]domain.Order)

	for rows.Next() {
		var (
			o             domain.Order
			line          domain.OrderLine
			status        string
			totalCurrency string
			lineCurrency  string
		)

		if err := rows.Scan(&o.ID, &o.OwnerID, &o.Total.Amount, &totalCurrency, &status,
			&o.ShippingAddress, &o.Phone, &o.Email, &o.PaymentMethod, &o.CreatedAt, &o.UpdatedAt,
			&line.ProductID, &line.SellerID, &line.Quantity, &line.UnitPrice.Amount, &lineCurrency,
			&line.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		if _, exists := orderMap[o.ID]; !exists {
			o.Status, err = domain.ToOrderStatus(status)
			if err != nil {
				return nil, fmt.Errorf("domain.ToOrderStatus[%s]: %w", status, err)
			}

			o.Total.Currency, err = currency.ParseISO(totalCurrency)
			if err != nil {
				return nil, fmt.Errorf("currency[%s] is not valid: %w", totalCurrency, err)
			}

			orderMap[o.ID] = o
		}

		line.UnitPrice.Currency, err = currency.ParseISO(lineCurrency)
		if err != nil {
			return nil, fmt.Errorf("currency[%s] is not valid: %w", lineCurrency, err)
		}

		order := orderMap[o.ID]
		order.Lines = append(order.Lines, line)
		orderMap[o.ID] = order
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return lo.Values(orderMap), nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) error {
	if orderID == uuid.Nil {
		return errors.New("orderID is empty")
	}
	if status == "" {
		return errors.New("status is empty")
	}

	cmdTag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET status = $1, updated_at = now()
		WHERE id = $2`,
		string(status), orderID)
	if err != nil {
		return fmt.Errorf("db.Exec: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("order[%s]: %w", orderID, domain.ErrNotFound)
	}

	return nil
}

func buildSearchQuery(filter domain.OrderFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(filter.IDs) > 0 {
		conditions = append(conditions, "o.id = ANY("+arg(filter.IDs)+")")
	}
	if len(filter.OwnerIDs) > 0 {
		conditions = append(conditions, "o.owner_id = ANY("+arg(filter.OwnerIDs)+")")
	}
	if len(filter.SellerIDs) > 0 {
		conditions = append(conditions,
			"EXISTS (SELECT 1 FROM order_lines sl WHERE sl.order_id = o.id AND sl.seller_id = ANY("+arg(filter.SellerIDs)+"))")
	}
	if len(filter.Statuses) > 0 {
		statuses := lo.Map(filter.Statuses, func(s domain.OrderStatus, _ int) string { return string(s) })
		conditions = append(conditions, "o.status = ANY("+arg(statuses)+")")
	}
	if filter.CreatedAt != nil {
		if filter.CreatedAt.After != nil {
			conditions = append(conditions, "o.created_at > "+arg(*filter.CreatedAt.After))
		}
		if filter.CreatedAt.Before != nil {
			conditions = append(conditions, "o.created_at < "+arg(*filter.CreatedAt.Before))
		}
	}

	query := `
		SELECT o.id, o.owner_id, o.total_amount, o.total_currency, o.status,
		       o.shipping_address, o.phone, o.email, o.payment_method, o.created_at, o.updated_at,
		       ol.product_id, ol.seller_id, ol.quantity, ol.price_amount, ol.price_currency, ol.created_at
		FROM orders o
		JOIN order_lines ol ON ol.order_id = o.id
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY o.created_at DESC`

	return query, args
}

func getOrderLines(ctx context.Context, q DBTX, orderID uuid.UUID) ([]domain.OrderLine, error) {
	rows, err := q.Query(ctx, `
		SELECT product_id, seller_id, quantity, price_amount, price_currency, created_at
		FROM order_lines
		WHERE order_id = $1
		ORDER BY created_at`, orderID)
	if err != nil {
		return nil, fmt.Errorf("q.Query: %w", err)
	}
	defer rows.Close()

	var lines []domain.OrderLine

	for rows.Next() {
		var (
			line         domain.OrderLine
			currencyCode string
		)

		if err := rows.Scan(&line.ProductID, &line.SellerID, &line.Quantity,
			&line.UnitPrice.Amount, &currencyCode, &line.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		line.UnitPrice.Currency, err = currency.ParseISO(currencyCode)
		if err != nil {
			return nil, fmt.Errorf("currency[%s] is not valid: %w", currencyCode, err)
		}

		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return lines, nil
}

func scanOrder(row pgx.Row) (domain.Order, error) {
	var (
		o             domain.Order
		status        string
		totalCurrency string
	)

	err := row.Scan(&o.ID, &o.OwnerID, &o.Total.Amount, &totalCurrency, &status,
		&o.ShippingAddress, &o.Phone, &o.Email, &o.PaymentMethod, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return o, err
	}

	o.Status, err = domain.ToOrderStatus(status)
	if err != nil {
		return o, fmt.Errorf("domain.ToOrderStatus[%s]: %w", status, err)
	}

	o.Total.Currency, err = currency.ParseISO(totalCurrency)
	if err != nil {
		return o, fmt.Errorf("currency[%s] is not valid: %w", totalCurrency, err)
	}

	return o, nil
}
