package models

import "gorm.io/datatypes"

// Clinic is the tenant root. Every inventory row hangs off a clinic and is
// removed when the clinic is deleted.
type Clinic struct {
	BaseModel

	Name      string         `gorm:"not null" json:"name"`
	CreatedBy string         `gorm:"type:uuid;not null" json:"created_by"`
	Settings  datatypes.JSON `json:"settings,omitempty"`

	Members    []ClinicMember `gorm:"foreignKey:ClinicID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
	Categories []Category     `gorm:"foreignKey:ClinicID;constraint:OnDelete:CASCADE" json:"categories,omitempty"`
	Items      []Item         `gorm:"foreignKey:ClinicID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}
