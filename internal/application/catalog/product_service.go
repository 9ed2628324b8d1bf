package catalog

import (
	"context"
	"fmt"
	"path"
	"sort"

	"github.com/google/uuid"
	"github.com/lewisgroup/storefront/internal/domain/catalog"
	"github.com/lewisgroup/storefront/internal/domain/shared"
	"go.uber.org/zap"
)

// ImageStore abstracts the object storage that holds product images
type ImageStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ProductService handles catalog business operations
type ProductService struct {
	productRepo      catalog.ProductRepository
	images           ImageStore
	bestSellersLimit int
	logger           *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, images ImageStore, bestSellersLimit int, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo:      productRepo,
		images:           images,
		bestSellersLimit: bestSellersLimit,
		logger:           logger.Named("catalog"),
	}
}

// List returns a page of products matching the filter
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	domainFilter := s.toDomainFilter(filter)

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	page := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// Get returns a single product by ID
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Create creates a new product with an optional image (admin operation)
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest, image *ImageUpload) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Name, req.Description, req.Price, req.Category, req.Type, req.QuantityInStock)
	if err != nil {
		return nil, err
	}

	if image != nil {
		url, key, err := s.storeImage(ctx, product.ID, image)
		if err != nil {
			return nil, err
		}
		product.SetPicture(url, key)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name))
	resp := ToProductResponse(product)
	return &resp, nil
}

// Update replaces a product's fields, optionally swapping its image (admin operation)
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest, image *ImageUpload) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, req.Description, req.Price, req.Category, req.Type, req.QuantityInStock); err != nil {
		return nil, err
	}

	if image != nil {
		oldKey := product.PictureKey
		url, key, err := s.storeImage(ctx, product.ID, image)
		if err != nil {
			return nil, err
		}
		product.SetPicture(url, key)
		if oldKey != "" && oldKey != key {
			if err := s.images.Delete(ctx, oldKey); err != nil {
				s.logger.Warn("Failed to delete replaced product image",
					zap.String("key", oldKey), zap.Error(err))
			}
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product updated", zap.String("product_id", product.ID.String()))
	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete removes a product and its stored image (admin operation)
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	if product.PictureKey != "" {
		if err := s.images.Delete(ctx, product.PictureKey); err != nil {
			s.logger.Warn("Failed to delete product image",
				zap.String("key", product.PictureKey), zap.Error(err))
		}
	}

	s.logger.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}

// BestSellers returns the store's top products by units sold
func (s *ProductService) BestSellers(ctx context.Context) ([]BestSellerResponse, error) {
	sellers, err := s.productRepo.FindBestSellers(ctx, s.bestSellersLimit)
	if err != nil {
		return nil, err
	}

	responses := make([]BestSellerResponse, len(sellers))
	for i := range sellers {
		responses[i] = BestSellerResponse{
			Product:   ToProductResponse(&sellers[i].Product),
			UnitsSold: sellers[i].UnitsSold,
		}
	}
	return responses, nil
}

// Taxonomy returns the fixed category/type taxonomy for storefront filters
func (s *ProductService) Taxonomy() TaxonomyResponse {
	categories := catalog.Categories()
	sort.Strings(categories)

	types := make(map[string][]string, len(categories))
	for _, category := range categories {
		types[category] = catalog.TypesForCategory(category)
	}
	return TaxonomyResponse{Categories: categories, Types: types}
}

func (s *ProductService) storeImage(ctx context.Context, productID uuid.UUID, image *ImageUpload) (url, key string, err error) {
	ext := path.Ext(image.Filename)
	key = fmt.Sprintf("products/%s%s", productID, ext)
	url, err = s.images.Upload(ctx, key, image.Data, image.ContentType)
	if err != nil {
		return "", "", fmt.Errorf("failed to store product image: %w", err)
	}
	return url, key, nil
}

func (s *ProductService) toDomainFilter(filter ProductListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	domainFilter.OrderBy = "name"
	domainFilter.OrderDir = "asc"

	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}
	if filter.MinPrice != nil {
		domainFilter.Filters["min_price"] = *filter.MinPrice
	}
	if filter.MaxPrice != nil {
		domainFilter.Filters["max_price"] = *filter.MaxPrice
	}
	return domainFilter
}
