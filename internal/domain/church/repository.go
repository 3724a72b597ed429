package church

import (
	"context"
	"time"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	CreateChurch(ctx context.Context, c *Church) error
	GetChurch(ctx context.Context, churchID string) (*Church, error)
	UpdateChurch(ctx context.Context, churchID, name, description string) error
	SetVisibility(ctx context.Context, churchID string, public bool) error
	UpdateChurchOwner(ctx context.Context, churchID, ownerID string) error
	DeleteChurch(ctx context.Context, churchID string) error
	SearchPublic(ctx context.Context, query, zipCode string) ([]ChurchWithCampuses, error)

	CreateCampus(ctx context.Context, campus *Campus) error
	GetCampus(ctx context.Context, campusID string) (*Campus, error)
	ListCampuses(ctx context.Context, churchID string) ([]Campus, error)
	UpdateCampus(ctx context.Context, campus *Campus) error
	DeleteCampus(ctx context.Context, campusID string) error

	CreateMembership(ctx context.Context, m *Membership) error
	GetMembership(ctx context.Context, membershipID string) (*Membership, error)
	GetMembershipByUser(ctx context.Context, userID string) (*Membership, error)
	ListMembers(ctx context.Context, churchID string) ([]Membership, error)
	UpdateMembershipRole(ctx context.Context, membershipID string, role string) error
	UpdateMembershipCampus(ctx context.Context, membershipID string, campusID *string) error
	DeleteMembership(ctx context.Context, membershipID string) error
	// CountOwners must take row locks on the church's memberships when called
	// inside a transaction, so that count-then-update is serialized per church.
	CountOwners(ctx context.Context, churchID string) (int64, error)
	IsUserInAnyChurch(ctx context.Context, userID string) (bool, error)

	RecordEvent(ctx context.Context, event *MembershipEvent) error

	Analytics(ctx context.Context, churchID string, joinedSince time.Time) (*Analytics, error)
}
