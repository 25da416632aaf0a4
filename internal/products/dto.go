package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nourzaidi/nourfashion-backend/pkg/db/models"
)

// ProductDTO is the catalog entry shape returned to API consumers.
type ProductDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Size        string          `json:"size"`
	Image       string          `json:"image"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToDTO maps a persistence row to the API shape.
func ToDTO(row *models.Product) *ProductDTO {
	if row == nil {
		return nil
	}
	return &ProductDTO{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Category:    row.Category,
		Price:       row.Price,
		Quantity:    row.Quantity,
		Size:        row.Size,
		Image:       row.Image,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

// ToDTOs maps a slice of rows preserving order.
func ToDTOs(rows []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *ToDTO(&rows[i]))
	}
	return out
}
