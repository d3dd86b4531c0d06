package models

import "time"

// ClinicInvite is a single-use membership invitation. UsedAt is set exactly
// once, by the atomic claim inside InviteService.Accept; expiry is only
// enforced at acceptance time, never swept in the background.
type ClinicInvite struct {
	BaseModel

	Token     string     `gorm:"uniqueIndex;not null" json:"token"`
	ClinicID  string     `gorm:"type:uuid;not null;index" json:"clinic_id"`
	Role      ClinicRole `gorm:"type:varchar(20);not null;default:'staff'" json:"role"`
	CreatedBy string     `gorm:"type:uuid;not null" json:"created_by"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	UsedBy    *string    `gorm:"type:uuid" json:"used_by,omitempty"`

	Clinic Clinic `gorm:"foreignKey:ClinicID;constraint:OnDelete:CASCADE" json:"-"`
}

// Status derives the display state from UsedAt. Expired-but-unused invites
// still report "unused"; expiry is shown alongside, not folded in here.
func (i *ClinicInvite) Status() string {
	if i.UsedAt != nil {
		return "used"
	}
	return "unused"
}
