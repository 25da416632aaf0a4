package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nourzaidi/nourfashion-backend/pkg/db/models"
	pkgerrors "github.com/nourzaidi/nourfashion-backend/pkg/errors"
)

// Service exposes admin catalog management operations.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context) ([]ProductDTO, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal
	Quantity    int
	Size        string
	Image       string
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Category    *string
	Price       *decimal.Decimal
	Quantity    *int
	Size        *string
	Image       *string
}

// service implements the product service.
type service struct {
	repo ProductRepository
}

// NewService constructs a product service instance.
func NewService(repo ProductRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

// CreateProduct validates and persists a new catalog entry.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}

	row := &models.Product{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Category:    strings.TrimSpace(input.Category),
		Price:       input.Price,
		Quantity:    input.Quantity,
		Size:        strings.TrimSpace(input.Size),
		Image:       strings.TrimSpace(input.Image),
	}
	created, err := s.repo.CreateProduct(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert product")
	}
	return ToDTO(created), nil
}

// UpdateProduct applies the provided fields to an existing product.
func (s *service) UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	row, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, mapLookupError(err, productID)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		row.Name = name
	}
	if input.Description != nil {
		row.Description = strings.TrimSpace(*input.Description)
	}
	if input.Category != nil {
		row.Category = strings.TrimSpace(*input.Category)
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		row.Price = *input.Price
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
		}
		row.Quantity = *input.Quantity
	}
	if input.Size != nil {
		row.Size = strings.TrimSpace(*input.Size)
	}
	if input.Image != nil {
		row.Image = strings.TrimSpace(*input.Image)
	}

	updated, err := s.repo.UpdateProduct(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return ToDTO(updated), nil
}

// DeleteProduct removes the product when it exists.
func (s *service) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if _, err := s.repo.FindByID(ctx, productID); err != nil {
		return mapLookupError(err, productID)
	}
	if err := s.repo.DeleteProduct(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

// GetProduct returns a single catalog entry.
func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	row, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, mapLookupError(err, productID)
	}
	return ToDTO(row), nil
}

// ListProducts returns the full catalog, newest first.
func (s *service) ListProducts(ctx context.Context) ([]ProductDTO, error) {
	rows, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return ToDTOs(rows), nil
}

func mapLookupError(err error, productID uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %s not found", productID))
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
}
