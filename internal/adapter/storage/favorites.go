package storage

import (
	"context"
	"fmt"

	"github.com/niksmo/swimstore/internal/core/domain"
	"github.com/niksmo/swimstore/internal/core/port"
)

var _ port.FavoritesStorage = (*FavoritesRepository)(nil)

type FavoritesRepository struct {
	sqldb sqldb
}

func NewFavoritesRepository(sqldb sqldb) FavoritesRepository {
	return FavoritesRepository{sqldb}
}

func (r FavoritesRepository) StoreFavorite(
	ctx context.Context, item domain.FavoriteItem,
) error {
	const op = "FavoritesRepository.StoreFavorite"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO favorites (
			id, username, product_id, product_name,
			price, original_price, discount_percent, currency, added_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (username, product_id) DO NOTHING;`

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

func (r FavoritesRepository) ReadFavoriteItems(
	ctx context.Context, username string,
) ([]domain.FavoriteItem, error) {
	const op = "FavoritesRepository.ReadFavoriteItems"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT
			id, username, product_id, product_name,
			price, original_price, discount_percent, currency, added_at
		FROM favorites
		WHERE username = $1
		ORDER BY added_at ASC;`

	rows, err := r.sqldb.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []domain.FavoriteItem
	for rows.Next() {
		var v domain.FavoriteItem
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
