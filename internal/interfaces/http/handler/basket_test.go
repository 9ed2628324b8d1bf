package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	basketapp "github.com/lewisgroup/storefront/internal/application/basket"
	"github.com/lewisgroup/storefront/internal/domain/basket"
	"github.com/lewisgroup/storefront/internal/domain/catalog"
	"github.com/lewisgroup/storefront/internal/domain/shared"
	"github.com/lewisgroup/storefront/internal/infrastructure/config"
	"github.com/lewisgroup/storefront/internal/interfaces/http/dto"
	"github.com/lewisgroup/storefront/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockBasketRepository is a mock implementation of basket.Repository
type MockBasketRepository struct {
	mock.Mock
}

func (m *MockBasketRepository) FindByBuyerID(ctx context.Context, buyerID string) (*basket.Basket, error) {
	args := m.Called(ctx, buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*basket.Basket), args.Error(1)
}

func (m *MockBasketRepository) Save(ctx context.Context, b *basket.Basket) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBasketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBestSellers(ctx context.Context, limit int) ([]catalog.BestSeller, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.BestSeller), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) SaveBatch(ctx context.Context, products []*catalog.Product) error {
	args := m.Called(ctx, products)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func newBasketTestServer(t *testing.T) (*gin.Engine, *MockBasketRepository, *MockProductRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

	baskets := new(MockBasketRepository)
	products := new(MockProductRepository)
	svc := basketapp.NewBasketService(baskets, products, zap.NewNop())

	jwtService := newHandlerTestJWTService()
	authMw := middleware.NewAuthMiddleware(jwtService, nil, zap.NewNop())
	h := NewBasketHandler(svc, authMw, config.CookieConfig{Path: "/", SameSite: "lax"})

	r := gin.New()
	api := r.Group("/api/v1")
	h.RegisterRoutes(api)
	return r, baskets, products
}

func TestBasketHandler_AddItem(t *testing.T) {
	t.Run("clamps to available stock and warns", func(t *testing.T) {
		r, baskets, products := newBasketTestServer(t)

		product, err := catalog.NewProduct("Pedal", "Overdrive pedal", 120088, "Audio", "Pedals", 3)
		require.NoError(t, err)

		products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		products.On("FindByIDs", mock.Anything, []uuid.UUID{product.ID}).
			Return([]catalog.Product{*product}, nil)
		baskets.On("FindByBuyerID", mock.Anything, mock.AnythingOfType("string")).
			Return(nil, shared.ErrNotFound)
		baskets.On("Save", mock.Anything, mock.AnythingOfType("*basket.Basket")).Return(nil)

		body, _ := json.Marshal(basketapp.AddItemRequest{ProductID: product.ID, Quantity: 5})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/basket/items", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool                    `json:"success"`
			Data    basketapp.AddItemResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, int64(5), resp.Data.Requested)
		assert.Equal(t, int64(3), resp.Data.Applied)
		assert.NotEmpty(t, resp.Data.Warning)

		// Anonymous buyer gets a basket cookie
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, middleware.BuyerCookieName, cookies[0].Name)
	})

	t.Run("rejects zero quantity before touching the service", func(t *testing.T) {
		r, baskets, _ := newBasketTestServer(t)

		body, _ := json.Marshal(map[string]any{"product_id": uuid.NewString(), "quantity": 0})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/basket/items", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		baskets.AssertNotCalled(t, "FindByBuyerID", mock.Anything, mock.Anything)
	})

	t.Run("out of stock maps to 422", func(t *testing.T) {
		r, baskets, products := newBasketTestServer(t)

		product, err := catalog.NewProduct("Pedal", "Overdrive pedal", 120088, "Audio", "Pedals", 0)
		require.NoError(t, err)

		products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		baskets.On("FindByBuyerID", mock.Anything, mock.AnythingOfType("string")).
			Return(nil, shared.ErrNotFound)

		body, _ := json.Marshal(basketapp.AddItemRequest{ProductID: product.ID, Quantity: 1})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/basket/items", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var resp struct {
			Error *dto.ErrorInfo `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeInsufficientStock, resp.Error.Code)
	})
}

func TestBasketHandler_Get(t *testing.T) {
	t.Run("missing basket maps to 404", func(t *testing.T) {
		r, baskets, _ := newBasketTestServer(t)

		baskets.On("FindByBuyerID", mock.Anything, mock.AnythingOfType("string")).
			Return(nil, shared.ErrNotFound)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/basket", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("existing cookie keeps the same basket", func(t *testing.T) {
		r, baskets, products := newBasketTestServer(t)

		buyerID := uuid.NewString()
		b, err := basket.NewBasket(buyerID)
		require.NoError(t, err)
		baskets.On("FindByBuyerID", mock.Anything, buyerID).Return(b, nil)
		products.On("FindByIDs", mock.Anything, []uuid.UUID{}).Return([]catalog.Product{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/basket", nil)
		req.AddCookie(&http.Cookie{Name: middleware.BuyerCookieName, Value: buyerID})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		baskets.AssertCalled(t, "FindByBuyerID", mock.Anything, buyerID)
	})
}
