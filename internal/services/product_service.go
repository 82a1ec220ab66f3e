package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"infocomm/internal/apperr"
	"infocomm/internal/caching"
	"infocomm/internal/models"
	"infocomm/internal/repositories"
)

const productCacheTTL = 10 * time.Minute

// ProductInput carries the writable product fields.
type ProductInput struct {
	Reference string  `json:"reference" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	Price     float64 `json:"price" validate:"gte=0"`
	Category  string  `json:"category" validate:"required"`
	Quantity  int     `json:"quantity" validate:"gte=0"`
	Supplier  string  `json:"supplier"`
	Model     string  `json:"model"`
	Notes     *string `json:"notes,omitempty"`
}

// ProductService owns product writes: validation, reference uniqueness,
// soft deletion, cache invalidation and stock alert transitions.
type ProductService interface {
	Create(ctx context.Context, input ProductInput) (*models.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, input ProductInput) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AttachImage(ctx context.Context, productID uuid.UUID, filename string, reader io.Reader, size int64) (*models.ProductImage, error)
	ListImages(ctx context.Context, productID uuid.UUID) ([]models.ProductImage, error)
}

type productService struct {
	productRepo repositories.ProductRepository
	imageRepo   repositories.ProductImageRepository
	alertSvc    AlertService
	minioSvc    MinioService
	cacheSvc    caching.CacheService
	bucket      string
}

func NewProductService(
	productRepo repositories.ProductRepository,
	imageRepo repositories.ProductImageRepository,
	alertSvc AlertService,
	minioSvc MinioService,
	cacheSvc caching.CacheService,
	bucket string,
) ProductService {
	return &productService{
		productRepo: productRepo,
		imageRepo:   imageRepo,
		alertSvc:    alertSvc,
		minioSvc:    minioSvc,
		cacheSvc:    cacheSvc,
		bucket:      bucket,
	}
}

func (s *productService) validate(input ProductInput) error {
	if input.Reference == "" {
		return apperr.Validationf("reference is required")
	}
	if input.Name == "" {
		return apperr.Validationf("name is required")
	}
	if input.Price < 0 {
		return apperr.Validationf("price cannot be negative")
	}
	if input.Quantity < 0 {
		return apperr.Validationf("quantity cannot be negative")
	}
	if !models.IsValidCategory(input.Category) {
		return apperr.Validationf("unknown category: %s", input.Category)
	}
	return nil
}

func (s *productService) Create(ctx context.Context, input ProductInput) (*models.Product, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	if existing, err := s.productRepo.GetByReference(ctx, input.Reference); err == nil && existing != nil {
		return nil, apperr.New(apperr.KindConflict, fmt.Sprintf("reference already in use: %s", input.Reference))
	}

	product := &models.Product{
		ID:        uuid.New(),
		Reference: input.Reference,
		Name:      input.Name,
		Price:     input.Price,
		Category:  input.Category,
		Quantity:  input.Quantity,
		Supplier:  input.Supplier,
		Model:     input.Model,
		Notes:     input.Notes,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, apperr.Wrap(apperr.KindRetrieval, "create product", err)
	}

	s.invalidate(ctx, product.ID)
	s.recordTransition(ctx, nil, product)
	return product, nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if cached, err := s.cacheSvc.GetProduct(ctx, id); err == nil && cached != nil {
		return cached, nil
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.NotFoundf("product not found: %s", id)
	}

	if err := s.cacheSvc.SetProduct(ctx, product, productCacheTTL); err != nil {
		slog.Debug("product cache write failed", "id", id, "error", err)
	}
	return product, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, input ProductInput) (*models.Product, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	before, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.NotFoundf("product not found: %s", id)
	}

	if input.Reference != before.Reference {
		if existing, err := s.productRepo.GetByReference(ctx, input.Reference); err == nil && existing != nil {
			return nil, apperr.New(apperr.KindConflict, fmt.Sprintf("reference already in use: %s", input.Reference))
		}
	}

	product := *before
	product.Reference = input.Reference
	product.Name = input.Name
	product.Price = input.Price
	product.Category = input.Category
	product.Quantity = input.Quantity
	product.Supplier = input.Supplier
	product.Model = input.Model
	product.Notes = input.Notes

	if err := s.productRepo.Update(ctx, &product); err != nil {
		return nil, apperr.Wrap(apperr.KindRetrieval, "update product", err)
	}

	s.invalidate(ctx, product.ID)
	s.recordTransition(ctx, before, &product)
	return &product, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.GetByID(ctx, id); err != nil {
		return apperr.NotFoundf("product not found: %s", id)
	}

	if err := s.productRepo.SoftDelete(ctx, id); err != nil {
		return apperr.Wrap(apperr.KindRetrieval, "delete product", err)
	}

	s.invalidate(ctx, id)
	return nil
}

func (s *productService) AttachImage(ctx context.Context, productID uuid.UUID, filename string, reader io.Reader, size int64) (*models.ProductImage, error) {
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return nil, apperr.NotFoundf("product not found: %s", productID)
	}

	image := &models.ProductImage{
		ID:        uuid.New(),
		ProductID: productID,
		ObjectKey: fmt.Sprintf("products/%s/%s-%s", productID, uuid.NewString(), filename),
	}

	if err := s.minioSvc.UploadImage(ctx, s.bucket, image.ObjectKey, reader, size); err != nil {
		return nil, apperr.Wrap(apperr.KindRetrieval, "upload image", err)
	}

	if err := s.imageRepo.Create(ctx, image); err != nil {
		// Roll back the object so storage does not accumulate orphans.
		if delErr := s.minioSvc.DeleteImage(ctx, s.bucket, image.ObjectKey); delErr != nil {
			slog.Warn("failed to remove orphaned image object", "key", image.ObjectKey, "error", delErr)
		}
		return nil, apperr.Wrap(apperr.KindRetrieval, "record image", err)
	}

	return image, nil
}

func (s *productService) ListImages(ctx context.Context, productID uuid.UUID) ([]models.ProductImage, error) {
	images, err := s.imageRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindRetrieval, "list images", err)
	}
	return images, nil
}

// invalidate drops the product entry and every cached query result; any
// mutation can change what a listing returns.
func (s *productService) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.cacheSvc.DeleteProduct(ctx, id); err != nil {
		slog.Debug("product cache invalidation failed", "id", id, "error", err)
	}
	if err := s.cacheSvc.InvalidateQueryResults(ctx); err != nil {
		slog.Debug("query cache invalidation failed", "error", err)
	}
}

func (s *productService) recordTransition(ctx context.Context, before, after *models.Product) {
	if s.alertSvc == nil {
		return
	}
	if err := s.alertSvc.RecordTransition(ctx, before, after); err != nil {
		slog.Warn("failed to record stock transition", "product", after.Name, "error", err)
	}
}
