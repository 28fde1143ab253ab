package implementation

import (
	"context"

	"rental-marketplace-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// transitionRow performs a compare-and-set on the given status column: the row
// is updated only while its current value is one of sources.
func transitionRow(ctx context.Context, db *gorm.DB, table interface{}, id uuid.UUID, column string, to string, sources []string, fields map[string]interface{}) (bool, error) {
	if len(sources) == 0 {
		return false, nil
	}
	updates := map[string]interface{}{column: to}
	for k, v := range fields {
		updates[k] = v
	}
	result := db.WithContext(ctx).Model(table).
		Where("id = ?", id).
		Where(column+" IN ?", sources).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
