package domain

import "time"

// A CartItem keeps the price locked in at the moment of adding.
// Price is the discounted value, OriginalPrice the base one;
// later week rollovers never touch a stored item.
type CartItem struct {
	ID              string
	Username        string
	ProductID       string
	ProductName     string
	Price           float64
	OriginalPrice   float64
	DiscountPercent int
	Currency        string
	AddedAt         time.Time
}

// A FavoriteItem locks the price in the same way a cart item does.
type FavoriteItem struct {
	ID              string
	Username        string
	ProductID       string
	ProductName     string
	Price           float64
	OriginalPrice   float64
	DiscountPercent int
	Currency        string
	AddedAt         time.Time
}
