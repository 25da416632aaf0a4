// Package settings stores the storefront configuration values, today a
// single WhatsApp number used for order hand-off.
package settings

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nourzaidi/nourfashion-backend/pkg/db/models"
)

// KeyWhatsAppNumber is the settings row holding the order hand-off number.
const KeyWhatsAppNumber = "whatsapp_number"

// SettingRepository defines key-value persistence for settings rows.
type SettingRepository interface {
	GetSetting(ctx context.Context, key string) (*models.Setting, error)
	UpsertSetting(ctx context.Context, row *models.Setting) error
}

// Repository wires settings persistence to GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// GetSetting loads one settings row by key.
func (r *Repository) GetSetting(ctx context.Context, key string) (*models.Setting, error) {
	var row models.Setting
	if err := r.db.WithContext(ctx).First(&row, "key = ?", key).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// UpsertSetting writes the value for a key, inserting the row when absent.
func (r *Repository) UpsertSetting(ctx context.Context, row *models.Setting) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(row).
		Error
}
