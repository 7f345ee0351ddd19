package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/swimstore/internal/core/domain"
	"github.com/niksmo/swimstore/internal/core/port"
)

// The storefront identity arrives pre-resolved in the X-User header;
// session handling is owned by the gateway in front of this service.
const userHeader = "X-User"

func username(r *http.Request) string {
	return r.Header.Get(userHeader)
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// GET v1/catalog Headers X-User is opt (200 OK)
// GET v1/products/{id} Headers X-User is opt (200 OK, 404 Not found)

type CatalogHandler struct {
	browser  port.CatalogBrowser
	resolver port.ProductResolver
}

func RegisterCatalog(
	mux *http.ServeMux,
	browser port.CatalogBrowser,
	resolver port.ProductResolver,
) {
	h := CatalogHandler{browser, resolver}
	mux.HandleFunc("GET /v1/catalog", h.GetCatalog)
	mux.HandleFunc("GET /v1/products/{id}", h.GetProduct)
}

func (h CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetCatalog"
	log := slog.With("op", op)

	ps, err := h.browser.BrowseCatalog(r.Context(), username(r))
	if err != nil {
		http.Error(w, "failed to load catalog", http.StatusInternalServerError)
		log.Error("failed to browse catalog", "err", err)
		return
	}

	resp := make([]PricedProduct, 0, len(ps))
	for _, p := range ps {
		resp = append(resp, toPricedProduct(p))
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}

func (h CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProduct"
	log := slog.With("op", op)

	p, err := h.resolver.ResolveProduct(
		r.Context(), username(r), r.PathValue("id"),
	)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load product", http.StatusInternalServerError)
		log.Error("failed to resolve product", "err", err)
		return
	}

	if err := writeJSON(w, http.StatusOK, toPricedProduct(p)); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}

// POST v1/cart JSON {"product_id" string} Headers X-User (201 Created, 400 Bad request)
// GET v1/cart Headers X-User (200 OK)

type CartHandler struct {
	adder  port.CartAdder
	reader port.CartReader
}

func RegisterCart(
	mux *http.ServeMux, adder port.CartAdder, reader port.CartReader,
) {
	h := CartHandler{adder, reader}
	mux.HandleFunc("POST /v1/cart", h.PostItem)
	mux.HandleFunc("GET /v1/cart", h.GetItems)
}

func (h CartHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostItem"
	log := slog.With("op", op)

	user := username(r)
	if user == "" {
		http.Error(w, "missing X-User header", http.StatusBadRequest)
		return
	}

	var req AddItem
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}
	if req.ProductID == "" {
		http.Error(w, "product_id is required", http.StatusBadRequest)
		return
	}

	item, err := h.adder.AddToCart(r.Context(), user, req.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to add to cart", http.StatusServiceUnavailable)
		log.Error("failed to add to cart", "err", err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, toStoredCartItem(item)); err != nil {
		log.Error("failed to write response body", "err", err)
		return
	}

	log.Info("added to cart", "username", user, "productID", req.ProductID)
}

func (h CartHandler) GetItems(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetItems"
	log := slog.With("op", op)

	user := username(r)
	if user == "" {
		http.Error(w, "missing X-User header", http.StatusBadRequest)
		return
	}

	items, err := h.reader.ReadCart(r.Context(), user)
	if err != nil {
		http.Error(w, "failed to load cart", http.StatusInternalServerError)
		log.Error("failed to read cart", "err", err)
		return
	}

	resp := make([]StoredItem, 0, len(items))
	for _, v := range items {
		resp = append(resp, toStoredCartItem(v))
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}

// POST v1/favorites JSON {"product_id" string} Headers X-User (201 Created, 400 Bad request)
// GET v1/favorites Headers X-User (200 OK)

type FavoritesHandler struct {
	adder  port.FavoriteAdder
	reader port.FavoritesReader
}

func RegisterFavorites(
	mux *http.ServeMux, adder port.FavoriteAdder, reader port.FavoritesReader,
) {
	h := FavoritesHandler{adder, reader}
	mux.HandleFunc("POST /v1/favorites", h.PostItem)
	mux.HandleFunc("GET /v1/favorites", h.GetItems)
}

func (h FavoritesHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "FavoritesHandler.PostItem"
	log := slog.With("op", op)

	user := username(r)
	if user == "" {
		http.Error(w, "missing X-User header", http.StatusBadRequest)
		return
	}

	var req AddItem
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}
	if req.ProductID == "" {
		http.Error(w, "product_id is required", http.StatusBadRequest)
		return
	}

	item, err := h.adder.AddToFavorites(r.Context(), user, req.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(
			w, "failed to add to favorites", http.StatusServiceUnavailable,
		)
		log.Error("failed to add to favorites", "err", err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, toStoredFavorite(item)); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}

func (h FavoritesHandler) GetItems(w http.ResponseWriter, r *http.Request) {
	const op = "FavoritesHandler.GetItems"
	log := slog.With("op", op)

	user := username(r)
	if user == "" {
		http.Error(w, "missing X-User header", http.StatusBadRequest)
		return
	}

	items, err := h.reader.ReadFavorites(r.Context(), user)
	if err != nil {
		http.Error(w, "failed to load favorites", http.StatusInternalServerError)
		log.Error("failed to read favorites", "err", err)
		return
	}

	resp := make([]StoredItem, 0, len(items))
	for _, v := range items {
		resp = append(resp, toStoredFavorite(v))
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}

// POST v1/subscriptions JSON {"username" string, "active" bool} (202 Accepted, 400 Bad request)

type SubscriptionsHandler struct {
	setter port.SubscriptionSetter
}

func RegisterSubscriptions(
	mux *http.ServeMux, setter port.SubscriptionSetter,
) {
	h := SubscriptionsHandler{setter}
	mux.HandleFunc("POST /v1/subscriptions", h.PostSubscription)
}

func (h SubscriptionsHandler) PostSubscription(
	w http.ResponseWriter, r *http.Request,
) {
	const op = "SubscriptionsHandler.PostSubscription"
	log := slog.With("op", op)

	var req Subscription
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}
	if req.Username == "" {
		http.Error(w, "username is required", http.StatusBadRequest)
		return
	}

	err := h.setter.SetSubscription(r.Context(), domain.Subscription{
		Username: req.Username,
		Active:   req.Active,
	})
	if err != nil {
		http.Error(
			w, "failed to accept subscription", http.StatusServiceUnavailable,
		)
		log.Error("failed to set subscription", "err", err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
	if _, err = w.Write([]byte("Accepted")); err != nil {
		log.Error("failed to write response body", "err", err)
		return
	}

	log.Info("accepted", "username", req.Username, "active", req.Active)
}
