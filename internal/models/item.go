package models

// Item is a stocked product. ReorderThreshold of zero disables the low-stock
// alert for the item.
type Item struct {
	BaseModel

	ClinicID         string `gorm:"type:uuid;not null;index;uniqueIndex:idx_clinic_item_name" json:"clinic_id"`
	CategoryID       string `gorm:"type:uuid;not null;index" json:"category_id"`
	Name             string `gorm:"not null;uniqueIndex:idx_clinic_item_name" json:"name"`
	Unit             string `gorm:"not null;default:'개'" json:"unit"`
	ReorderThreshold int    `gorm:"not null;default:0" json:"reorder_threshold"`
	IsArchived       bool   `gorm:"not null;default:false" json:"is_archived"`

	Clinic   Clinic   `gorm:"foreignKey:ClinicID" json:"-"`
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
