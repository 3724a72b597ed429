package roster

import (
	"time"

	"church-hub-go/internal/domain/church"
)

// Kind names the sub-roster an entry belongs to. All kinds share one storage
// shape: a church-scoped row with an optional target user, a role field, an
// active flag and audit timestamps.
type Kind string

const (
	KindMinistry     Kind = "ministry"
	KindAgeGroup     Kind = "age_group"
	KindMinistryRole Kind = "ministry_role"
	KindVolunteer    Kind = "volunteer"
	KindSafetyTeam   Kind = "safety_team"
	KindWorshipTeam  Kind = "worship_team"
)

var validKinds = map[Kind]bool{
	KindMinistry:     true,
	KindAgeGroup:     true,
	KindMinistryRole: true,
	KindVolunteer:    true,
	KindSafetyTeam:   true,
	KindWorshipTeam:  true,
}

func (k Kind) Valid() bool {
	return validKinds[k]
}

// userScoped kinds reference a member and reject duplicate (church, kind,
// user) rows.
func (k Kind) UserScoped() bool {
	switch k {
	case KindVolunteer, KindSafetyTeam, KindWorshipTeam:
		return true
	default:
		return false
	}
}

type Entry struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	ChurchID  string    `gorm:"type:uuid;not null;index:idx_roster_church_kind"`
	Kind      Kind      `gorm:"type:varchar(32);not null;index:idx_roster_church_kind"`
	UserID    *string   `gorm:"type:uuid"`
	Name      string    `gorm:"not null"`
	Role      string    `gorm:"type:text"`
	Notes     string    `gorm:"type:text"`
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Church church.Church `gorm:"foreignKey:ChurchID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Entry) TableName() string { return "roster_entries" }
