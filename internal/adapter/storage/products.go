package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/niksmo/swimstore/internal/core/domain"
	"github.com/niksmo/swimstore/internal/core/port"
)

var _ port.ProductsStorage = (*ProductsRepository)(nil)

type ProductsRepository struct {
	sqldb sqldb
}

func NewProductsRepository(sqldb sqldb) ProductsRepository {
	return ProductsRepository{sqldb}
}

func (r ProductsRepository) ReadProducts(
	ctx context.Context,
) ([]domain.Product, error) {
	const op = "ProductsRepository.ReadProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT
			product_id, name, category, description,
			price_amount, price_currency, images
		FROM products
		ORDER BY name ASC;`

	rows, err := r.sqldb.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var ps []domain.Product
	for rows.Next() {
		p, err := r.scanProduct(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ps = append(ps, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (r ProductsRepository) ReadProduct(
	ctx context.Context, productID string,
) (domain.Product, error) {
	const op = "ProductsRepository.ReadProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT
			product_id, name, category, description,
			price_amount, price_currency, images
		FROM products
		WHERE product_id = $1;`

	row := r.sqldb.QueryRowContext(ctx, query, productID)
	p, err := r.scanProduct(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, fmt.Errorf(
				"%s: %w", op, domain.ErrNotFound,
			)
		}
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (r ProductsRepository) scanProduct(
	scan func(dest ...any) error,
) (domain.Product, error) {
	var p domain.Product
	var imagesS string
	err := scan(
		&p.ProductID, &p.Name, &p.Category, &p.Description,
		&p.Price.Amount, &p.Price.Currency, &imagesS,
	)
	if err != nil {
		return domain.Product{}, err
	}

	if err := json.Unmarshal([]byte(imagesS), &p.Images); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}
