package services

import (
	"fmt"
	"os"
	"path/filepath"
	"restaurant_backend/internal/models"
	"restaurant_backend/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ImageUpload carries an uploaded file read into memory by the handler.
type ImageUpload struct {
	Filename string
	Data     []byte
}

// Uploader pushes an image to the remote asset host and returns its URL.
type Uploader interface {
	Upload(filename string, data []byte) (string, error)
}

type CreateProductInput struct {
	Title    string
	Category string
	Price    float64
	Status   bool
	Image    *ImageUpload
}

// UpdateProductInput carries partial updates: nil fields are left untouched.
type UpdateProductInput struct {
	Title    *string
	Category *string
	Price    *float64
	Status   *bool
	Image    *ImageUpload
}

type ProductService interface {
	List() ([]models.Product, error)
	Create(input CreateProductInput) (*models.Product, error)
	Update(id uint, input UpdateProductInput) (*models.Product, error)
	Delete(id uint) error
}

type productService struct {
	productRepo repository.ProductRepository
	uploader    Uploader
	uploadDir   string
	logger      *logrus.Logger
}

// NewProductService builds the catalog service. uploader may be nil, in
// which case images are written to uploadDir and referenced as
// /uploads/<file>.
func NewProductService(productRepo repository.ProductRepository, uploader Uploader, uploadDir string, logger *logrus.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		uploader:    uploader,
		uploadDir:   uploadDir,
		logger:      logger,
	}
}

func (s *productService) List() ([]models.Product, error) {
	return s.productRepo.GetAll()
}

func (s *productService) Create(input CreateProductInput) (*models.Product, error) {
	product := &models.Product{
		Title:    input.Title,
		Category: input.Category,
		Price:    input.Price,
		Status:   input.Status,
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}

	if input.Image != nil {
		imagePath, err := s.storeImage(input.Image)
		if err != nil {
			return nil, err
		}
		product.Image = imagePath
	}

	// Image storage and the DB write are two separate fallible steps. A
	// failed insert after a successful upload orphans the stored asset.
	if err := s.productRepo.Create(product); err != nil {
		if product.Image != "" {
			s.logger.WithFields(logrus.Fields{
				"image": product.Image,
			}).Warn("Product insert failed after image upload, asset orphaned")
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *productService) Update(id uint, input UpdateProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	if input.Title != nil {
		product.Title = *input.Title
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Status != nil {
		product.Status = *input.Status
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}

	// An absent image leaves the existing reference untouched
	if input.Image != nil {
		imagePath, err := s.storeImage(input.Image)
		if err != nil {
			return nil, err
		}
		product.Image = imagePath
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

// Delete removes the catalog row only. Order item snapshots keep their
// copied title/price/image.
func (s *productService) Delete(id uint) error {
	return s.productRepo.Delete(id)
}

func (s *productService) storeImage(image *ImageUpload) (string, error) {
	if s.uploader != nil {
		url, err := s.uploader.Upload(image.Filename, image.Data)
		if err != nil {
			return "", fmt.Errorf("failed to upload image: %w", err)
		}
		return url, nil
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}
	name := uuid.New().String() + filepath.Ext(image.Filename)
	if err := os.WriteFile(filepath.Join(s.uploadDir, name), image.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return "/uploads/" + name, nil
}
