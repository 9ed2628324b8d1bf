package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lewisgroup/storefront/internal/domain/catalog"
	"github.com/lewisgroup/storefront/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockProductRepository is a mock implementation of ProductRepository
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
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBestSellers(ctx context.Context, limit int) ([]catalog.BestSeller, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]catalog.BestSeller), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
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

// MockImageStore is a mock implementation of ImageStore
type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockImageStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockImageStore) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func newProductService(repo *MockProductRepository, images *MockImageStore) *ProductService {
	return NewProductService(repo, images, 4, zap.NewNop())
}

func testProduct(t *testing.T) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct("Guitar", "Play some tunes!", 89900, "Audio", "Guitars", 15)
	require.NoError(t, err)
	return p
}

func TestProductService_Create(t *testing.T) {
	t.Run("creates product without image", func(t *testing.T) {
		repo := new(MockProductRepository)
		images := new(MockImageStore)
		svc := newProductService(repo, images)

		repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := svc.Create(context.Background(), CreateProductRequest{
			Name:            "Guitar",
			Description:     "Play some tunes!",
			Price:           89900,
			Category:        "Audio",
			Type:            "Guitars",
			QuantityInStock: 15,
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, "Guitar", resp.Name)
		assert.Equal(t, int64(89900), resp.Price)
		repo.AssertExpectations(t)
		images.AssertNotCalled(t, "Upload")
	})

	t.Run("uploads image and records key", func(t *testing.T) {
		repo := new(MockProductRepository)
		images := new(MockImageStore)
		svc := newProductService(repo, images)

		images.On("Upload", mock.Anything, mock.AnythingOfType("string"), []byte("png"), "image/png").
			Return("https://cdn.example.com/products/p.png", nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := svc.Create(context.Background(), CreateProductRequest{
			Name:     "Pedal",
			Price:    120088,
			Category: "Audio",
			Type:     "Pedals",
		}, &ImageUpload{Data: []byte("png"), ContentType: "image/png", Filename: "pedal.png"})

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/products/p.png", resp.PictureURL)
		repo.AssertExpectations(t)
		images.AssertExpectations(t)
	})

	t.Run("rejects invalid taxonomy", func(t *testing.T) {
		repo := new(MockProductRepository)
		images := new(MockImageStore)
		svc := newProductService(repo, images)

		_, err := svc.Create(context.Background(), CreateProductRequest{
			Name:     "Guitar",
			Price:    89900,
			Category: "Audio",
			Type:     "Sofas",
		}, nil)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TYPE", domainErr.Code)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestProductService_Delete(t *testing.T) {
	t.Run("deletes product and its image", func(t *testing.T) {
		repo := new(MockProductRepository)
		images := new(MockImageStore)
		svc := newProductService(repo, images)

		product := testProduct(t)
		product.SetPicture("https://cdn.example.com/products/g.png", "products/g.png")

		repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		repo.On("Delete", mock.Anything, product.ID).Return(nil)
		images.On("Delete", mock.Anything, "products/g.png").Return(nil)

		err := svc.Delete(context.Background(), product.ID)

		require.NoError(t, err)
		repo.AssertExpectations(t)
		images.AssertExpectations(t)
	})

	t.Run("missing product yields not found", func(t *testing.T) {
		repo := new(MockProductRepository)
		images := new(MockImageStore)
		svc := newProductService(repo, images)

		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		err := svc.Delete(context.Background(), id)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		repo.AssertNotCalled(t, "Delete")
	})
}

func TestProductService_List(t *testing.T) {
	repo := new(MockProductRepository)
	images := new(MockImageStore)
	svc := newProductService(repo, images)

	products := []catalog.Product{*testProduct(t)}
	repo.On("FindAll", mock.Anything, mock.AnythingOfType("shared.Filter")).Return(products, nil)
	repo.On("Count", mock.Anything, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)

	page, err := svc.List(context.Background(), ProductListFilter{Category: "Audio", Page: 1, PageSize: 20})

	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Guitar", page.Items[0].Name)
}

func TestProductService_BestSellers(t *testing.T) {
	repo := new(MockProductRepository)
	images := new(MockImageStore)
	svc := newProductService(repo, images)

	sellers := []catalog.BestSeller{{Product: *testProduct(t), UnitsSold: 7}}
	repo.On("FindBestSellers", mock.Anything, 4).Return(sellers, nil)

	resp, err := svc.BestSellers(context.Background())

	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, int64(7), resp[0].UnitsSold)
	assert.Equal(t, "Guitar", resp[0].Product.Name)
}

func TestProductService_Taxonomy(t *testing.T) {
	svc := newProductService(new(MockProductRepository), new(MockImageStore))

	taxonomy := svc.Taxonomy()

	assert.Equal(t, []string{"Appliances", "Audio", "Bedroom", "Furniture"}, taxonomy.Categories)
	assert.Contains(t, taxonomy.Types["Audio"], "Guitars")
	assert.Contains(t, taxonomy.Types["Furniture"], "Sofas")
}
