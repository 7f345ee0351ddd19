package storage_test

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/niksmo/swimstore/internal/adapter/storage"
	"github.com/niksmo/swimstore/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*storage.SQLDB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &storage.SQLDB{DB: db}, mock
}

func lockedItem() domain.CartItem {
	return domain.CartItem{
		ID:              "e0f0a9c2-4d0f-4e14-9c59-0a3a1c2d3e4f",
		Username:        "marina",
		ProductID:       "sw-2",
		ProductName:     "Riviera one-piece",
		Price:           85,
		OriginalPrice:   100,
		DiscountPercent: 15,
		Currency:        "EUR",
		AddedAt:         time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC),
	}
}

func TestCartRepository(t *testing.T) {
	t.Run("StoreLockedPrice", func(t *testing.T) {
		db, mock := newMockDB(t)
		r := storage.NewCartRepository(db)
		item := lockedItem()

		mock.ExpectExec("INSERT INTO cart_items").
			WithArgs(
				item.ID, item.Username, item.ProductID, item.ProductName,
				item.Price, item.OriginalPrice, item.DiscountPercent,
				item.Currency, item.AddedAt,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, r.StoreCartItem(t.Context(), item))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ReadKeepsStoredValues", func(t *testing.T) {
		db, mock := newMockDB(t)
		r := storage.NewCartRepository(db)
		item := lockedItem()

		rows := sqlmock.NewRows([]string{
			"id", "username", "product_id", "product_name",
			"price", "original_price", "discount_percent",
			"currency", "added_at",
		}).AddRow(
			item.ID, item.Username, item.ProductID, item.ProductName,
			item.Price, item.OriginalPrice, item.DiscountPercent,
			item.Currency, item.AddedAt,
		)

		mock.ExpectQuery("SELECT (.+) FROM cart_items").
			WithArgs("marina").
			WillReturnRows(rows)

		got, err := r.ReadCartItems(t.Context(), "marina")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, item, got[0])
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductsRepository(t *testing.T) {
	t.Run("ReadProductNotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		r := storage.NewProductsRepository(db)

		mock.ExpectQuery("SELECT (.+) FROM products").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"product_id"}))

		_, err := r.ReadProduct(t.Context(), "missing")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("ReadProduct", func(t *testing.T) {
		db, mock := newMockDB(t)
		r := storage.NewProductsRepository(db)

		rows := sqlmock.NewRows([]string{
			"product_id", "name", "category", "description",
			"price_amount", "price_currency", "images",
		}).AddRow(
			"sw-2", "Riviera one-piece", "one-piece", "classic cut",
			100.0, "EUR", `[{"url":"/img/sw-2.jpg","alt":"front"}]`,
		)

		mock.ExpectQuery("SELECT (.+) FROM products").
			WithArgs("sw-2").
			WillReturnRows(rows)

		p, err := r.ReadProduct(t.Context(), "sw-2")
		require.NoError(t, err)
		assert.Equal(t, "sw-2", p.ProductID)
		assert.Equal(t, 100.0, p.Price.Amount)
		require.Len(t, p.Images, 1)
		assert.Equal(t, "/img/sw-2.jpg", p.Images[0].URL)
	})
}
