package models

// Category groups items for display and dashboard rollups. Archiving is a
// soft delete: the row stays so historical transactions keep their context,
// but archived categories disappear from active listings.
type Category struct {
	BaseModel

	ClinicID   string `gorm:"type:uuid;not null;index;uniqueIndex:idx_clinic_category_name" json:"clinic_id"`
	Name       string `gorm:"not null;uniqueIndex:idx_clinic_category_name" json:"name"`
	SortOrder  int    `gorm:"not null;default:0" json:"sort_order"`
	IsArchived bool   `gorm:"not null;default:false" json:"is_archived"`

	Clinic Clinic `gorm:"foreignKey:ClinicID" json:"-"`
	Items  []Item `gorm:"foreignKey:CategoryID" json:"items,omitempty"`
}
