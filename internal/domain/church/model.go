package church

import (
	"time"

	"church-hub-go/internal/domain/authz"
)

type Church struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null"`
	Description string    `gorm:"type:text"`
	OwnerID     string    `gorm:"type:uuid;not null;index"`
	Public      bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

type Campus struct {
	ID        string   `gorm:"type:uuid;primaryKey"`
	ChurchID  string   `gorm:"type:uuid;not null;index"`
	Name      string   `gorm:"not null"`
	Location  string   `gorm:"type:text"`
	Address   string   `gorm:"type:text"`
	ZipCode   string   `gorm:"size:16;index"`
	Latitude  *float64 `gorm:"type:decimal(9,6)"`
	Longitude *float64 `gorm:"type:decimal(9,6)"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Church Church `gorm:"foreignKey:ChurchID;references:ID;constraint:OnDelete:CASCADE"`
}

// Membership joins a user to a church. The unique index on UserID enforces
// the one-church-per-user rule system-wide; application checks are a fast
// path on top of it.
type Membership struct {
	ID          string     `gorm:"type:uuid;primaryKey"`
	UserID      string     `gorm:"type:uuid;not null;uniqueIndex"`
	ChurchID    string     `gorm:"type:uuid;not null;index"`
	CampusID    *string    `gorm:"type:uuid"`
	Role        authz.Role `gorm:"type:varchar(16);not null"`
	DisplayName string     `gorm:"type:text"`
	Email       string     `gorm:"type:text"`
	JoinedAt    time.Time  `gorm:"autoCreateTime"`

	Church Church `gorm:"foreignKey:ChurchID;references:ID;constraint:OnDelete:CASCADE"`
}

const (
	EventJoined               = "joined"
	EventLeft                 = "left"
	EventRemoved              = "removed"
	EventRoleChanged          = "role_changed"
	EventCampusAssigned       = "campus_assigned"
	EventOwnershipTransferred = "ownership_transferred"
)

// MembershipEvent is the durable audit trail for membership lifecycle
// changes, including leave reasons.
type MembershipEvent struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	ChurchID  string    `gorm:"type:uuid;not null;index"`
	UserID    string    `gorm:"type:uuid;not null;index"`
	ActorID   string    `gorm:"type:uuid;not null"`
	Action    string    `gorm:"type:varchar(32);not null"`
	Detail    string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

type ChurchWithCampuses struct {
	Church   Church
	Campuses []Campus
}

type SearchResult struct {
	Church        Church
	Campuses      []Campus
	DistanceMiles *float64
}

type CampusCount struct {
	CampusID   *string
	CampusName string
	Count      int64
}

type Analytics struct {
	TotalMembers     int64
	MembersByRole    map[string]int64
	MembersByCampus  []CampusCount
	JoinedLast30Days int64
	PendingRequests  int64
	ApprovedRequests int64
	DeniedRequests   int64
}
