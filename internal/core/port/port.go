package port

import (
	"context"
	"sync"

	"github.com/niksmo/swimstore/internal/core/domain"
)

type (
	runnerContextWg interface {
		Run(context.Context, context.CancelFunc, *sync.WaitGroup)
	}

	closer interface {
		Close()
	}
)

// Inbound ports served by the core service.

type CatalogBrowser interface {
	BrowseCatalog(ctx context.Context, username string) ([]domain.PricedProduct, error)
}

type ProductResolver interface {
	ResolveProduct(ctx context.Context, username, productID string) (domain.PricedProduct, error)
}

type CartAdder interface {
	AddToCart(ctx context.Context, username, productID string) (domain.CartItem, error)
}

type CartReader interface {
	ReadCart(ctx context.Context, username string) ([]domain.CartItem, error)
}

type FavoriteAdder interface {
	AddToFavorites(ctx context.Context, username, productID string) (domain.FavoriteItem, error)
}

type FavoritesReader interface {
	ReadFavorites(ctx context.Context, username string) ([]domain.FavoriteItem, error)
}

type SubscriptionSetter interface {
	SetSubscription(context.Context, domain.Subscription) error
}

// Outbound ports implemented by adapters.

type ProductsStorage interface {
	ReadProducts(ctx context.Context) ([]domain.Product, error)
	ReadProduct(ctx context.Context, productID string) (domain.Product, error)
}

type CartStorage interface {
	StoreCartItem(context.Context, domain.CartItem) error
	ReadCartItems(ctx context.Context, username string) ([]domain.CartItem, error)
}

type FavoritesStorage interface {
	StoreFavorite(context.Context, domain.FavoriteItem) error
	ReadFavoriteItems(ctx context.Context, username string) ([]domain.FavoriteItem, error)
}

type SubscriptionChecker interface {
	Active(ctx context.Context, username string) (bool, error)
}

type CartEventsProducer interface {
	ProduceCartEvent(context.Context, domain.CartItem) error
}

type SubscriptionProducer interface {
	ProduceSubscription(context.Context, domain.Subscription) error
}

type SubscriptionProcessor interface {
	runnerContextWg
	closer
}
