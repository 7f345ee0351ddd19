package httphandler

import (
	"time"

	"github.com/niksmo/swimstore/internal/core/domain"
)

type (
	PricedProduct struct {
		ProductID       string         `json:"product_id"`
		Name            string         `json:"name"`
		Category        string         `json:"category"`
		Description     string         `json:"description"`
		Price           float64        `json:"price"`
		Currency        string         `json:"currency"`
		DiscountPercent int            `json:"discount_percent"`
		DiscountedPrice float64        `json:"discounted_price"`
		Images          []ProductImage `json:"images"`
	}

	ProductImage struct {
		URL string `json:"url"`
		Alt string `json:"alt"`
	}
)

type StoredItem struct {
	ID              string    `json:"id"`
	ProductID       string    `json:"product_id"`
	ProductName     string    `json:"product_name"`
	Price           float64   `json:"price"`
	OriginalPrice   float64   `json:"original_price"`
	DiscountPercent int       `json:"discount_percent"`
	Currency        string    `json:"currency"`
	AddedAt         time.Time `json:"added_at"`
}

type AddItem struct {
	ProductID string `json:"product_id"`
}

type Subscription struct {
	Username string `json:"username"`
	Active   bool   `json:"active"`
}

func toPricedProduct(v domain.PricedProduct) PricedProduct {
	p := PricedProduct{
		ProductID:       v.ProductID,
		Name:            v.Name,
		Category:        v.Category,
		Description:     v.Description,
		Price:           v.Price.Amount,
		Currency:        v.Price.Currency,
		DiscountPercent: v.DiscountPercent,
		DiscountedPrice: v.DiscountedPrice,
	}

	p.Images = make([]ProductImage, len(v.Images))
	for i := range v.Images {
		p.Images[i].URL = v.Images[i].URL
		p.Images[i].Alt = v.Images[i].Alt
	}
	return p
}

func toStoredCartItem(v domain.CartItem) StoredItem {
	return StoredItem{
		ID:              v.ID,
		ProductID:       v.ProductID,
		ProductName:     v.ProductName,
		Price:           v.Price,
		OriginalPrice:   v.OriginalPrice,
		DiscountPercent: v.DiscountPercent,
		Currency:        v.Currency,
		AddedAt:         v.AddedAt,
	}
}

func toStoredFavorite(v domain.FavoriteItem) StoredItem {
	return StoredItem{
		ID:              v.ID,
		ProductID:       v.ProductID,
		ProductName:     v.ProductName,
		Price:           v.Price,
		OriginalPrice:   v.OriginalPrice,
		DiscountPercent: v.DiscountPercent,
		Currency:        v.Currency,
		AddedAt:         v.AddedAt,
	}
}
