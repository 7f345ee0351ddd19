package storage

import (
	"context"
	"fmt"

	"github.com/niksmo/swimstore/internal/core/domain"
	"github.com/niksmo/swimstore/internal/core/port"
)

var _ port.CartStorage = (*CartRepository)(nil)

type CartRepository struct {
	sqldb sqldb
}

func NewCartRepository(sqldb sqldb) CartRepository {
	return CartRepository{sqldb}
}

// StoreCartItem persists the item with its locked-in price; stored
// rows are never recalculated on later weeks.
func (r CartRepository) StoreCartItem(
	ctx context.Context, item domain.CartItem,
) error {
	const op = "CartRepository.StoreCartItem"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO cart_items (
			id, username, product_id, product_name,
			price, original_price, discount_percent, currency, added_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`

	_, err := r.sqldb.ExecContext(ctx, query,
		item.ID, item.Username, item.ProductID, item.ProductName,
		item.Price, item.OriginalPrice, item.DiscountPercent,
		item.Currency, item.AddedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to exec: %w", op, err)
	}
	return nil
}

func (r CartRepository) ReadCartItems(
	ctx context.Context, username string,
) ([]domain.CartItem, error) {
	const op = "CartRepository.ReadCartItems"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT
			id, username, product_id, product_name,
			price, original_price, discount_percent, currency, added_at
		FROM cart_items
		WHERE username = $1
		ORDER BY added_at ASC;`

	rows, err := r.sqldb.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var v domain.CartItem
		err := rows.Scan(
			&v.ID, &v.Username, &v.ProductID, &v.ProductName,
			&v.Price, &v.OriginalPrice, &v.DiscountPercent,
			&v.Currency, &v.AddedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}
