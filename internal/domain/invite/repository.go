package invite

import (
	"context"
	"time"

	"church-hub-go/internal/domain/church"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	CreateInvite(ctx context.Context, inv *Invite) error
	GetByID(ctx context.Context, inviteID string) (*Invite, error)
	GetActiveByCode(ctx context.Context, code string) (*Invite, error)
	ListByChurch(ctx context.Context, churchID string) ([]Invite, error)
	Deactivate(ctx context.Context, inviteID string) error
	IsCodeTaken(ctx context.Context, code string) (bool, error)
	// ConsumeUse increments used_count in a single conditional update that
	// re-checks active, expiry and the max-uses cap. Returns false when the
	// guard fails, so concurrent redemptions cannot over-issue.
	ConsumeUse(ctx context.Context, inviteID string, now time.Time) (bool, error)

	CampusBelongsToChurch(ctx context.Context, campusID, churchID string) (bool, error)
	IsUserInAnyChurch(ctx context.Context, userID string) (bool, error)
	CreateMembership(ctx context.Context, m *church.Membership) error
	RecordEvent(ctx context.Context, event *church.MembershipEvent) error
}
