package product

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nourzaidi/nourfashion-backend/pkg/db/models"
)

func mustCreateTestProduct(t *testing.T, tx *gorm.DB) *models.Product {
	t.Helper()
	row := &models.Product{
		ID:          uuid.New(),
		Name:        fmt.Sprintf("Test Product %s", uuid.NewString()[:8]),
		Description: "A cotton staple",
		Category:    "Shirts",
		Price:       decimal.NewFromFloat(49.90),
		Quantity:    5,
		Size:        "M",
		Image:       "https://cdn.example.com/shirt.jpg",
	}
	if err := tx.Create(row).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return row
}
