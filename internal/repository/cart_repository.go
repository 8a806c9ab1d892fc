package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/text/currency"

	"github.com/ecarthub/marketcore/internal/domain"
	"github.com/ecarthub/marketcore/internal/port"
)

type cartRepository struct {
	db DBTX
}

func NewCart(pool *pgxpool.Pool) port.CartRepository {
	return &cartRepository{db: pool}
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{db: tx}
}

// GetCart joins lines with the products table so prices always reflect the
// current catalog. Lines whose product was deleted drop out of the join.
func (r *cartRepository) GetCart(ctx context.Context, ownerID string) ([]domain.PricedCartLine, error) {
	rows, err := r.db.Query(ctx, `
		SELECT cl.id, cl.owner_id, cl.product_id, cl.quantity, cl.created_at, cl.updated_at,
		       p.name, p.seller_id, p.price_amount, p.price_currency
		FROM cart_lines cl
		JOIN products p ON p.id = cl.product_id
		WHERE cl.owner_id = $1
		ORDER BY cl.created_at`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db.Query: %w", err)
	}
	defer rows.Close()

	var lines []domain.PricedCartLine

	for rows.Next() {
		var (
			line         domain.PricedCartLine
			currencyCode string
		)

		if err := rows.Scan(&line.ID, &line.OwnerID, &line.ProductID, &line.Quantity,
			&line.CreatedAt, &line.UpdatedAt,
			&line.ProductName, &line.SellerID, &line.UnitPrice.Amount, &currencyCode); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		line.UnitPrice.Currency, err = currency.ParseISO(currencyCode)
		if err != nil {
			return nil, fmt.Errorf("currency[%s] is not valid: %w", currencyCode, err)
		}

		line.LineTotal = line.UnitPrice.Mul(line.Quantity)

		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return lines, nil
}

func (r *cartRepository) GetLine(ctx context.Context, ownerID string, lineID uuid.UUID) (domain.CartLine, error) {
	var line domain.CartLine

	row := r.db.QueryRow(ctx, `
		SELECT id, owner_id, product_id, quantity, created_at, updated_at
		FROM cart_lines
		WHERE id = $1 AND owner_id = $2`, lineID, ownerID)

	err := row.Scan(&line.ID, &line.OwnerID, &line.ProductID, &line.Quantity,
		&line.CreatedAt, &line.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return line, fmt.Errorf("cart line[%s]: %w", lineID, domain.ErrNotFound)
		}
		return line, fmt.Errorf("row.Scan: %w", err)
	}

	return line, nil
}

func (r *cartRepository) UpsertLine(ctx context.Context, ownerID string, productID uuid.UUID, quantity int32) (domain.CartLine, error) {
	var line domain.CartLine

	if quantity < 1 {
		return line, errors.New("quantity must be at least 1")
	}

	// Read-modify-write is folded into a single upsert. Concurrent adds for
	// the same (owner, product) still race on last-write-wins semantics.
	row := r.db.QueryRow(ctx, `
		INSERT INTO cart_lines (owner_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (owner_id, product_id)
		DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity, updated_at = now()
		RETURNING id, owner_id, product_id, quantity, created_at, updated_at`,
		ownerID, productID, quantity)

	err := row.Scan(&line.ID, &line.OwnerID, &line.ProductID, &line.Quantity,
		&line.CreatedAt, &line.UpdatedAt)
	if err != nil {
		return line, fmt.Errorf("row.Scan: %w", err)
	}

	return line, nil
}

func (r *cartRepository) SetQuantity(ctx context.Context, ownerID string, lineID uuid.UUID, quantity int32) error {
	if quantity < 1 {
		return errors.New("quantity must be at least 1")
	}

	cmdTag, err := r.db.Exec(ctx, `
		UPDATE cart_lines
		SET quantity = $1, updated_at = now()
		WHERE id = $2 AND owner_id = $3`,
		quantity, lineID, ownerID)
	if err != nil {
		return fmt.Errorf("db.Exec: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("cart line[%s]: %w", lineID, domain.ErrNotFound)
	}

	return nil
}

func (r *cartRepository) DeleteLine(ctx context.Context, ownerID string, lineID uuid.UUID) (bool, error) {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM cart_lines WHERE id = $1 AND owner_id = $2`, lineID, ownerID)
	if err != nil {
		return false, fmt.Errorf("db.Exec: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

func (r *cartRepository) DeleteCart(ctx context.Context, ownerID string) error {
	if _, err := r.db.Exec(ctx,
		`DELETE FROM cart_lines WHERE owner_id = $1`, ownerID); err != nil {
		return fmt.Errorf("db.Exec: %w", err)
	}

	return nil
}
