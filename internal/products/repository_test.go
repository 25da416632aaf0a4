package product

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nourzaidi/nourfashion-backend/pkg/db/models"
)

func TestRepositoryCreateAndFind(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	created := mustCreateTestProduct(t, conn)

	found, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if found.Name != created.Name {
		t.Fatalf("expected name %q, got %q", created.Name, found.Name)
	}
	if !found.Price.Equal(created.Price) {
		t.Fatalf("expected price %s, got %s", created.Price, found.Price)
	}
}

func TestRepositoryFindMissingReturnsRecordNotFound(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)

	_, err := repo.FindByID(context.Background(), uuid.New())
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected gorm.ErrRecordNotFound, got %v", err)
	}
}

func TestRepositoryUpdateAndDelete(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	row := mustCreateTestProduct(t, conn)
	row.Quantity = 2
	row.Price = decimal.NewFromFloat(59.90)

	updated, err := repo.UpdateProduct(ctx, row)
	if err != nil {
		t.Fatalf("update product: %v", err)
	}
	if updated.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", updated.Quantity)
	}

	if err := repo.DeleteProduct(ctx, row.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}
	if _, err := repo.FindByID(ctx, row.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record gone, got %v", err)
	}
}

func TestRepositoryListOrdersNewestFirst(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	older := &models.Product{
		ID:        uuid.New(),
		Name:      "Older",
		Price:     decimal.NewFromInt(10),
		CreatedAt: time.Now().Add(-time.Hour),
	}
	newer := &models.Product{
		ID:        uuid.New(),
		Name:      "Newer",
		Price:     decimal.NewFromInt(20),
		CreatedAt: time.Now(),
	}
	for _, row := range []*models.Product{older, newer} {
		if err := conn.Create(row).Error; err != nil {
			t.Fatalf("seed product: %v", err)
		}
	}

	rows, err := repo.ListProducts(ctx)
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Name != "Newer" {
		t.Fatalf("expected newest first, got %q", rows[0].Name)
	}
}
