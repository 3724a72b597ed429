package invite

import (
	"time"

	"church-hub-go/internal/domain/church"
)

type Invite struct {
	ID        string     `gorm:"type:uuid;primaryKey"`
	ChurchID  string     `gorm:"type:uuid;not null;index"`
	CampusID  *string    `gorm:"type:uuid"`
	Code      string     `gorm:"size:16;not null;uniqueIndex"`
	CreatedBy string     `gorm:"type:uuid;not null"`
	MaxUses   *int       `gorm:""`
	UsedCount int        `gorm:"not null;default:0"`
	ExpiresAt *time.Time `gorm:""`
	Active    bool       `gorm:"not null;default:true"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`

	Church church.Church `gorm:"foreignKey:ChurchID;references:ID;constraint:OnDelete:CASCADE"`
}

// InviteLink pairs an invite with the shareable join URL built from it.
type InviteLink struct {
	Invite  Invite
	JoinURL string
}
