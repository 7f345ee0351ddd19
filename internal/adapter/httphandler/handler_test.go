package httphandler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/niksmo/swimstore/internal/adapter/httphandler"
	"github.com/niksmo/swimstore/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCatalogBrowser struct {
	mock.Mock
}

func (m *MockCatalogBrowser) BrowseCatalog(
	ctx context.Context, username string,
) ([]domain.PricedProduct, error) {
	args := m.Called(ctx, username)
	return args.Get(0).([]domain.PricedProduct), args.Error(1)
}

type MockProductResolver struct {
	mock.Mock
}

func (m *MockProductResolver) ResolveProduct(
	ctx context.Context, username, productID string,
) (domain.PricedProduct, error) {
	args := m.Called(ctx, username, productID)
	return args.Get(0).(domain.PricedProduct), args.Error(1)
}

type MockCartAdder struct {
	mock.Mock
}

func (m *MockCartAdder) AddToCart(
	ctx context.Context, username, productID string,
) (domain.CartItem, error) {
	args := m.Called(ctx, username, productID)
	return args.Get(0).(domain.CartItem), args.Error(1)
}

type MockCartReader struct {
	mock.Mock
}

func (m *MockCartReader) ReadCart(
	ctx context.Context, username string,
) ([]domain.CartItem, error) {
	args := m.Called(ctx, username)
	return args.Get(0).([]domain.CartItem), args.Error(1)
}

type MockSubscriptionSetter struct {
	mock.Mock
}

func (m *MockSubscriptionSetter) SetSubscription(
	ctx context.Context, sub domain.Subscription,
) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func pricedSwimsuit() domain.PricedProduct {
	return domain.PricedProduct{
		Product: domain.Product{
			ProductID: "sw-2",
			Name:      "Riviera one-piece",
			Category:  "one-piece",
			Price:     domain.ProductPrice{Amount: 100, Currency: "EUR"},
		},
		DiscountPercent: 15,
		DiscountedPrice: 85,
	}
}

func TestGetCatalog(t *testing.T) {
	t.Run("PricedForUser", func(t *testing.T) {
		browser := new(MockCatalogBrowser)
		browser.On("BrowseCatalog", mock.Anything, "marina").
			Return([]domain.PricedProduct{pricedSwimsuit()}, nil)

		mux := http.NewServeMux()
		httphandler.RegisterCatalog(mux, browser, new(MockProductResolver))

		r := httptest.NewRequest(http.MethodGet, "/v1/catalog", nil)
		r.Header.Set("X-User", "marina")
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)

		var resp []httphandler.PricedProduct
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, "sw-2", resp[0].ProductID)
		assert.Equal(t, 100.0, resp[0].Price)
		assert.Equal(t, 15, resp[0].DiscountPercent)
		assert.Equal(t, 85.0, resp[0].DiscountedPrice)
	})

	t.Run("EmptyCatalog", func(t *testing.T) {
		browser := new(MockCatalogBrowser)
		browser.On("BrowseCatalog", mock.Anything, "").
			Return([]domain.PricedProduct{}, nil)

		mux := http.NewServeMux()
		httphandler.RegisterCatalog(mux, browser, new(MockProductResolver))

		r := httptest.NewRequest(http.MethodGet, "/v1/catalog", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})
}

func TestGetProduct(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		resolver := new(MockProductResolver)
		resolver.On("ResolveProduct", mock.Anything, "marina", "sw-2").
			Return(pricedSwimsuit(), nil)

		mux := http.NewServeMux()
		httphandler.RegisterCatalog(mux, new(MockCatalogBrowser), resolver)

		r := httptest.NewRequest(http.MethodGet, "/v1/products/sw-2", nil)
		r.Header.Set("X-User", "marina")
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)

		var resp httphandler.PricedProduct
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 85.0, resp.DiscountedPrice)
	})

	t.Run("NotFound", func(t *testing.T) {
		resolver := new(MockProductResolver)
		resolver.On("ResolveProduct", mock.Anything, "", "missing").
			Return(domain.PricedProduct{}, domain.ErrNotFound)

		mux := http.NewServeMux()
		httphandler.RegisterCatalog(mux, new(MockCatalogBrowser), resolver)

		r := httptest.NewRequest(http.MethodGet, "/v1/products/missing", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPostCart(t *testing.T) {
	newMux := func(adder *MockCartAdder) *http.ServeMux {
		mux := http.NewServeMux()
		httphandler.RegisterCart(mux, adder, new(MockCartReader))
		return mux
	}

	t.Run("Created", func(t *testing.T) {
		item := domain.CartItem{
			ID:              "id-1",
			Username:        "marina",
			ProductID:       "sw-2",
			Price:           85,
			OriginalPrice:   100,
			DiscountPercent: 15,
			AddedAt:         time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC),
		}
		adder := new(MockCartAdder)
		adder.On("AddToCart", mock.Anything, "marina", "sw-2").
			Return(item, nil)

		r := httptest.NewRequest(
			http.MethodPost, "/v1/cart",
			strings.NewReader(`{"product_id":"sw-2"}`),
		)
		r.Header.Set("X-User", "marina")
		w := httptest.NewRecorder()
		newMux(adder).ServeHTTP(w, r)

		require.Equal(t, http.StatusCreated, w.Code)

		var resp httphandler.StoredItem
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 85.0, resp.Price)
		assert.Equal(t, 100.0, resp.OriginalPrice)
	})

	t.Run("MissingUser", func(t *testing.T) {
		r := httptest.NewRequest(
			http.MethodPost, "/v1/cart",
			strings.NewReader(`{"product_id":"sw-2"}`),
		)
		w := httptest.NewRecorder()
		newMux(new(MockCartAdder)).ServeHTTP(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		r := httptest.NewRequest(
			http.MethodPost, "/v1/cart", strings.NewReader(`{`),
		)
		r.Header.Set("X-User", "marina")
		w := httptest.NewRecorder()
		newMux(new(MockCartAdder)).ServeHTTP(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("MissingProductID", func(t *testing.T) {
		r := httptest.NewRequest(
			http.MethodPost, "/v1/cart", strings.NewReader(`{}`),
		)
		r.Header.Set("X-User", "marina")
		w := httptest.NewRecorder()
		newMux(new(MockCartAdder)).ServeHTTP(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		adder := new(MockCartAdder)
		adder.On("AddToCart", mock.Anything, "marina", "missing").
			Return(domain.CartItem{}, domain.ErrNotFound)

		r := httptest.NewRequest(
			http.MethodPost, "/v1/cart",
			strings.NewReader(`{"product_id":"missing"}`),
		)
		r.Header.Set("X-User", "marina")
		w := httptest.NewRecorder()
		newMux(adder).ServeHTTP(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPostSubscription(t *testing.T) {
	t.Run("Accepted", func(t *testing.T) {
		setter := new(MockSubscriptionSetter)
		setter.On(
			"SetSubscription", mock.Anything,
			domain.Subscription{Username: "marina", Active: true},
		).Return(nil)

		mux := http.NewServeMux()
		httphandler.RegisterSubscriptions(mux, setter)

		r := httptest.NewRequest(
			http.MethodPost, "/v1/subscriptions",
			strings.NewReader(`{"username":"marina","active":true}`),
		)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, r)

		require.Equal(t, http.StatusAccepted, w.Code)
		setter.AssertExpectations(t)
	})

	t.Run("MissingUsername", func(t *testing.T) {
		mux := http.NewServeMux()
		httphandler.RegisterSubscriptions(mux, new(MockSubscriptionSetter))

		r := httptest.NewRequest(
			http.MethodPost, "/v1/subscriptions",
			strings.NewReader(`{"active":true}`),
		)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAllowJSON(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := httphandler.AllowJSON(next)

	t.Run("JSONBody", func(t *testing.T) {
		r := httptest.NewRequest(
			http.MethodPost, "/v1/cart", strings.NewReader(`{}`),
		)
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("EmptyBody", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/v1/catalog", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("InvalidMediaType", func(t *testing.T) {
		r := httptest.NewRequest(
			http.MethodPost, "/v1/cart", strings.NewReader("product"),
		)
		r.Header.Set("Content-Type", "text/plain")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	})
}
