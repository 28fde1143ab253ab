package scope

import "gorm.io/gorm"

// OrderByCreatedDesc lists the latest rows first. id breaks ties between rows
// written in the same instant.
func OrderByCreatedDesc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}
