package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/swimstore/internal/core/discount"
	"github.com/niksmo/swimstore/internal/core/domain"
	"github.com/niksmo/swimstore/internal/core/port"
)

var _ port.CatalogBrowser = (*Service)(nil)
var _ port.ProductResolver = (*Service)(nil)
var _ port.CartAdder = (*Service)(nil)
var _ port.CartReader = (*Service)(nil)
var _ port.FavoriteAdder = (*Service)(nil)
var _ port.FavoritesReader = (*Service)(nil)
var _ port.SubscriptionSetter = (*Service)(nil)

type Service struct {
	engine        discount.Engine
	clock         discount.Clock
	products      port.ProductsStorage
	cart          port.CartStorage
	favorites     port.FavoritesStorage
	subscriptions port.SubscriptionChecker
	cartEvents    port.CartEventsProducer
	subProducer   port.SubscriptionProducer
	subProc       port.SubscriptionProcessor
}

func New(
	engine discount.Engine,
	clock discount.Clock,
	products port.ProductsStorage,
	cart port.CartStorage,
	favorites port.FavoritesStorage,
	subscriptions port.SubscriptionChecker,
	cartEvents port.CartEventsProducer,
	subProducer port.SubscriptionProducer,
	subProc port.SubscriptionProcessor,
) Service {
	if clock == nil {
		clock = time.Now
	}
	return Service{
		engine,
		clock,
		products,
		cart,
		favorites,
		subscriptions,
		cartEvents,
		subProducer,
		subProc,
	}
}

// Run runs the service components in separate goroutines.
//
// Blocks current goroutine while components is preparing to ready state.
func (s Service) Run(ctx context.Context, stopFn context.CancelFunc) {
	var wg sync.WaitGroup
	wg.Add(1)
	go s.subProc.Run(ctx, stopFn, &wg)
	wg.Wait()
}

func (s Service) Close() {
	s.subProc.Close()
}

// BrowseCatalog returns the catalog priced for the given user.
// The weekly assignment is computed once for the whole listing.
func (s Service) BrowseCatalog(
	ctx context.Context, username string,
) ([]domain.PricedProduct, error) {
	const op = "Service.BrowseCatalog"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps, err := s.products.ReadProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	assignment := s.engine.ComputeWeeklyDiscounts(
		ps, s.subscriptionActive(ctx, username),
	)

	priced := make([]domain.PricedProduct, 0, len(ps))
	for _, p := range ps {
		pp, err := s.applyDiscount(p, assignment)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		priced = append(priced, pp)
	}
	return priced, nil
}

// ResolveProduct prices a single product, equivalent to browsing a
// one-element catalog.
func (s Service) ResolveProduct(
	ctx context.Context, username, productID string,
) (domain.PricedProduct, error) {
	const op = "Service.ResolveProduct"

	if err := ctx.Err(); err != nil {
		return domain.PricedProduct{}, fmt.Errorf("%s: %w", op, err)
	}

	p, err := s.products.ReadProduct(ctx, productID)
	if err != nil {
		return domain.PricedProduct{}, fmt.Errorf("%s: %w", op, err)
	}

	assignment := s.engine.ComputeWeeklyDiscounts(
		[]domain.Product{p}, s.subscriptionActive(ctx, username),
	)

	pp, err := s.applyDiscount(p, assignment)
	if err != nil {
		return domain.PricedProduct{}, fmt.Errorf("%s: %w", op, err)
	}
	return pp, nil
}

// AddToCart locks the current discounted price into the stored entry.
// Week rollovers never change an already stored item.
func (s Service) AddToCart(
	ctx context.Context, username, productID string,
) (domain.CartItem, error) {
	const op = "Service.AddToCart"

	pp, err := s.ResolveProduct(ctx, username, productID)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("%s: %w", op, err)
	}

	item := domain.CartItem{
		ID:              uuid.NewString(),
		Username:        username,
		ProductID:       pp.ProductID,
		ProductName:     pp.Name,
		Price:           pp.DiscountedPrice,
		OriginalPrice:   pp.Price.Amount,
		DiscountPercent: pp.DiscountPercent,
		Currency:        pp.Price.Currency,
		AddedAt:         s.clock(),
	}

	if err := s.cart.StoreCartItem(ctx, item); err != nil {
		return domain.CartItem{}, fmt.Errorf("%s: %w", op, err)
	}

	s.emitCartEvent(ctx, item)

	return item, nil
}

func (s Service) ReadCart(
	ctx context.Context, username string,
) ([]domain.CartItem, error) {
	const op = "Service.ReadCart"

	items, err := s.cart.ReadCartItems(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

func (s Service) AddToFavorites(
	ctx context.Context, username, productID string,
) (domain.FavoriteItem, error) {
	const op = "Service.AddToFavorites"

	pp, err := s.ResolveProduct(ctx, username, productID)
	if err != nil {
		return domain.FavoriteItem{}, fmt.Errorf("%s: %w", op, err)
	}

	item := domain.FavoriteItem{
		ID:              uuid.NewString(),
		Username:        username,
		ProductID:       pp.ProductID,
		ProductName:     pp.Name,
		Price:           pp.DiscountedPrice,
		OriginalPrice:   pp.Price.Amount,
		DiscountPercent: pp.DiscountPercent,
		Currency:        pp.Price.Currency,
		AddedAt:         s.clock(),
	}

	if err := s.favorites.StoreFavorite(ctx, item); err != nil {
		return domain.FavoriteItem{}, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

func (s Service) ReadFavorites(
	ctx context.Context, username string,
) ([]domain.FavoriteItem, error) {
	const op = "Service.ReadFavorites"

	items, err := s.favorites.ReadFavoriteItems(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

func (s Service) SetSubscription(
	ctx context.Context, sub domain.Subscription,
) error {
	const op = "Service.SetSubscription"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.subProducer.ProduceSubscription(ctx, sub); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// subscriptionActive degrades to false on lookup failures:
// "no discounts" is always a safe fallback.
func (s Service) subscriptionActive(
	ctx context.Context, username string,
) bool {
	const op = "Service.subscriptionActive"

	if username == "" {
		return false
	}

	active, err := s.subscriptions.Active(ctx, username)
	if err != nil {
		slog.Warn(
			"failed to check subscription",
			"op", op, "username", username, "err", err,
		)
		return false
	}
	return active
}

func (s Service) applyDiscount(
	p domain.Product, assignment domain.DiscountAssignment,
) (domain.PricedProduct, error) {
	percent := assignment.Percent(p.ProductID)
	price, err := discount.DiscountedPrice(p.Price.Amount, percent)
	if err != nil {
		return domain.PricedProduct{}, err
	}
	return domain.PricedProduct{
		Product:         p,
		DiscountPercent: percent,
		DiscountedPrice: price,
	}, nil
}

// emitCartEvent is best effort: the analytics stream must not block
// a customer's cart add.
func (s Service) emitCartEvent(ctx context.Context, item domain.CartItem) {
	const op = "Service.emitCartEvent"

	if err := s.cartEvents.ProduceCartEvent(ctx, item); err != nil {
		slog.Error("failed to produce cart event",
			"op", op, "productID", item.ProductID, "err", err,
		)
	}
}
