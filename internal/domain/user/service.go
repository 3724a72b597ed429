package user

import (
	"context"
	"fmt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// UpsertProfile refreshes the cached identity fields for a user. The auth
// middleware calls this on every authenticated request, which keeps the
// denormalized name/email snapshots on new memberships and requests current.
func (s *Service) UpsertProfile(ctx context.Context, userID, email, displayName, avatarURL string) error {
	if userID == "" {
		return fmt.Errorf("user id is required")
	}

	profile := Profile{UserID: userID}
	if email != "" {
		profile.Email = &email
	}
	if displayName != "" {
		profile.DisplayName = &displayName
	}
	if avatarURL != "" {
		profile.AvatarURL = &avatarURL
	}

	return s.repo.UpsertProfile(ctx, &profile)
}
