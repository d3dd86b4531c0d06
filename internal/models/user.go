package models

// User is a local account identity. Clinic membership is modelled separately
// so a user row carries no tenant state of its own.
type User struct {
	BaseModel

	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Name         string `json:"name"`

	Memberships []ClinicMember `gorm:"foreignKey:UserID" json:"memberships,omitempty"`
}
