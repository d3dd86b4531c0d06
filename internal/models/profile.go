package models

// Profile caches the active clinic per user. CurrentClinicID is lazily
// populated the first time a membership is resolved and cleared when the
// clinic is deleted.
type Profile struct {
	BaseModel

	UserID          string  `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	CurrentClinicID *string `gorm:"type:uuid" json:"current_clinic_id,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
