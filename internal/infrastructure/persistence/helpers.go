package persistence

import (
	"context"

	"github.com/audiozoom/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// updateExisting writes every column of model to its existing row.
// Unlike Save it never falls back to an insert, so a missing row surfaces as ErrNotFound.
func updateExisting(ctx context.Context, db *gorm.DB, model any) error {
	result := db.WithContext(ctx).Select("*").Omit("id", "created_at").Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
