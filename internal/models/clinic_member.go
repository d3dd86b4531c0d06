package models

// ClinicRole represents a user's role within a clinic.
type ClinicRole string

const (
	ClinicRoleOwner ClinicRole = "owner"
	ClinicRoleStaff ClinicRole = "staff"
)

// ClinicMember links a user to a clinic with a role. The (clinic, user) pair
// is unique. A clinic has exactly one owner by workflow convention: setup is
// the only path that creates an owner row, and invites always grant staff.
// The schema intentionally does not enforce single ownership.
type ClinicMember struct {
	BaseModel

	ClinicID string     `gorm:"type:uuid;not null;uniqueIndex:idx_clinic_user" json:"clinic_id"`
	UserID   string     `gorm:"type:uuid;not null;uniqueIndex:idx_clinic_user" json:"user_id"`
	Role     ClinicRole `gorm:"type:varchar(20);not null;default:'staff'" json:"role"`

	Clinic Clinic `gorm:"foreignKey:ClinicID" json:"-"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
