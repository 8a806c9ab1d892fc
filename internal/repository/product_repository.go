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

type productRepository struct {
	db DBTX
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{db: pool}
}

func NewProductWithTx(tx pgx.Tx) port.ProductRepository {
	return &productRepository{db: tx}
}

func (r *productRepository) GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	var (
		p            domain.Product
		currencyCode string
	)

	row := r.db.QueryRow(ctx, `
		SELECT id, seller_id, name, description, price_amount, price_currency, stock, created_at, updated_at
		FROM products
		WHERE id = $1`, productID)

	err := row.Scan(&p.ID, &p.SellerID, &p.Name, &p.Description,
		&p.Price.Amount, &currencyCode, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return p, fmt.Errorf("product[%s]: %w", productID, domain.ErrNotFound)
		}
		return p, fmt.Errorf("row.Scan: %w", err)
	}

	p.Price.Currency, err = currency.ParseISO(currencyCode)
	if err != nil {
		return p, fmt.Errorf("currency[%s] is not valid: %w", currencyCode, err)
	}

	return p, nil
}

func (r *productRepository) ListProductsBySeller(ctx context.Context, sellerID string) ([]domain.Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, seller_id, name, description, price_amount, price_currency, stock, created_at, updated_at
		FROM products
		WHERE seller_id = $1
		ORDER BY created_at DESC`, sellerID)
	if err != nil {
		return nil, fmt.Errorf("db.Query: %w", err)
	}
	defer rows.Close()

	var products []domain.Product

	for rows.Next() {
		var (
			p            domain.Product
			currencyCode string
		)

		if err := rows.Scan(&p.ID, &p.SellerID, &p.Name, &p.Description,
			&p.Price.Amount, &currencyCode, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		p.Price.Currency, err = currency.ParseISO(currencyCode)
		if err != nil {
			return nil, fmt.Errorf("currency[%s] is not valid: %w", currencyCode, err)
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return products, nil
}

func (r *productRepository) CountProductsBySeller(ctx context.Context, sellerID string) (int64, error) {
	var count int64

	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE seller_id = $1`, sellerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("row.Scan: %w", err)
	}

	return count, nil
}

func (r *productRepository) InsertProduct(ctx context.Context, product domain.Product) (uuid.UUID, error) {
	if product.SellerID == "" {
		return uuid.Nil, errors.New("sellerID is empty")
	}

	var productID uuid.UUID

	err := r.db.QueryRow(ctx, `
		INSERT INTO products (seller_id, name, description, price_amount, price_currency, stock)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		product.SellerID, product.Name, product.Description,
		product.Price.Amount, product.Price.Currency.String(), product.Stock).Scan(&productID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("row.Scan: %w", err)
	}

	return productID, nil
}

func (r *productRepository) UpdateProductPrice(ctx context.Context, productID uuid.UUID, price domain.Money) error {
	if productID == uuid.Nil {
		return errors.New("productID is empty")
	}

	cmdTag, err := r.db.Exec(ctx, `
		UPDATE products
		SET price_amount = $1, price_currency = $2, updated_at = now()
		WHERE id = $3`,
		price.Amount, price.Currency.String(), productID)
	if err != nil {
		return fmt.Errorf("db.Exec: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("product[%s]: %w", productID, domain.ErrNotFound)
	}

	return nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, sellerID string, productID uuid.UUID) (bool, error) {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM products WHERE id = $1 AND seller_id = $2`, productID, sellerID)
	if err != nil {
		return false, fmt.Errorf("db.Exec: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}
