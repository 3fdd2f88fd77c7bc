package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"greenfields/internal/model"
	"greenfields/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrMissingFields     = errors.New("all required fields must be filled")
	ErrNegativeValues    = errors.New("price and quantity must not be negative")
	ErrForbidden         = errors.New("forbidden: user does not have permission for this action")
	ErrInvalidFileFormat = errors.New("invalid file format. only .jpg, .jpeg, .png are allowed")
	ErrFileSizeExceeded  = errors.New("file size exceeds limit")
)

const MaxImageSize = 5 * 1024 * 1024 // 5MB

// ProductService defines operations for the product catalog
type ProductService interface {
	AddProduct(ctx context.Context, sellerID int, form model.AddProductForm, image *multipart.FileHeader) (*model.Product, error)
	ListProducts(ctx context.Context) ([]model.ProductListing, error)
	MyProducts(ctx context.Context, sellerID int) ([]model.Product, error)
	DeleteProduct(ctx context.Context, productID int64, callerID int) error
}

type productService struct {
	repo       repository.ProductRepository
	uploadsDir string
}

// NewProductService creates a new ProductService
func NewProductService(repo repository.ProductRepository, uploadsDir string) ProductService {
	return &productService{repo: repo, uploadsDir: uploadsDir}
}

// AddProduct validates a listing, stores its image and persists it owned by
// the calling seller.
func (s *productService) AddProduct(ctx context.Context, sellerID int, form model.AddProductForm, image *multipart.FileHeader) (*model.Product, error) {
	if form.Name == "" || form.Phone == "" || form.ContactEmail == "" || form.Price == 0 || form.Quantity == 0 {
		return nil, ErrMissingFields
	}
	if form.Price < 0 || form.Quantity < 0 {
		return nil, ErrNegativeValues
	}

	product := &model.Product{
		SellerID:     sellerID,
		Name:         form.Name,
		Price:        form.Price,
		Quantity:     form.Quantity,
		Category:     model.NormalizeCategory(form.Category),
		Phone:        form.Phone,
		ContactEmail: form.ContactEmail,
		CreatedAt:    time.Now(),
	}
	if form.Description != "" {
		product.Description = &form.Description
	}

	if image != nil {
		imagePath, err := s.saveImage(image)
		if err != nil {
			return nil, err
		}
		product.ImagePath = &imagePath
	}

	if err := s.repo.Create(ctx, product); err != nil {
		if product.ImagePath != nil {
			os.Remove(filepath.Join(s.uploadsDir, filepath.Base(*product.ImagePath))) // Attempt to clean up
		}
		return nil, fmt.Errorf("failed to create product in repo: %w", err)
	}
	return product, nil
}

func (s *productService) saveImage(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > MaxImageSize {
		return "", ErrFileSizeExceeded
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	allowedExts := map[string]bool{".jpg": true, ".jpeg": true, ".png": true}
	if !allowedExts[ext] {
		return "", ErrInvalidFileFormat
	}

	if err := os.MkdirAll(s.uploadsDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	fileName := uuid.NewString() + ext
	filePath := filepath.Join(s.uploadsDir, fileName)

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file on server: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	// Stored with a URL-style path; the server mounts uploadsDir at /uploads
	return "/uploads/" + fileName, nil
}

// ListProducts returns the public catalog. Seller display names come from the
// owning account when it still exists, contact details from the listing's own
// fields, with placeholder fallbacks.
func (s *productService) ListProducts(ctx context.Context) ([]model.ProductListing, error) {
	products, err := s.repo.FindAllWithSellers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	listings := make([]model.ProductListing, 0, len(products))
	for _, p := range products {
		listing := model.ProductListing{
			ID:          p.ID,
			Name:        p.Name,
			Price:       p.Price,
			Quantity:    p.Quantity,
			Category:    p.Category,
			SellerName:  "Unknown",
			SellerEmail: "Not Provided",
			SellerPhone: "Not Provided",
		}
		if p.Description != nil {
			listing.Description = *p.Description
		}
		if p.ImagePath != nil {
			listing.Image = *p.ImagePath
		}
		if p.SellerUsername != nil && *p.SellerUsername != "" {
			listing.SellerName = *p.SellerUsername
		}
		if p.ContactEmail != "" {
			listing.SellerEmail = p.ContactEmail
		}
		if p.Phone != "" {
			listing.SellerPhone = p.Phone
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

// MyProducts returns the calling seller's own listings, newest first
func (s *productService) MyProducts(ctx context.Context, sellerID int) ([]model.Product, error) {
	products, err := s.repo.FindBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get seller products: %w", err)
	}
	return products, nil
}

// DeleteProduct removes a listing. Only the owning seller may delete it.
func (s *productService) DeleteProduct(ctx context.Context, productID int64, callerID int) error {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to find product for deletion: %w", err)
	}
	if product == nil {
		return ErrProductNotFound
	}
	if product.SellerID != callerID {
		return ErrForbidden
	}

	deleted, err := s.repo.Delete(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product in repo: %w", err)
	}
	if !deleted {
		return ErrProductNotFound
	}
	if product.ImagePath != nil {
		os.Remove(filepath.Join(s.uploadsDir, filepath.Base(*product.ImagePath)))
	}
	return nil
}
