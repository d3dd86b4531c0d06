package models

import "gorm.io/gorm"

// AllModels lists every persistent model in migration order: Clinic first,
// since the tenant-scoped tables reference it.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Profile{},
		&Clinic{},
		&ClinicMember{},
		&Category{},
		&Item{},
		&StockTransaction{},
		&ClinicInvite{},
	}
}

// AutoMigrate runs GORM auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
