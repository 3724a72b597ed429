package invite

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"church-hub-go/internal/domain/authz"
	"church-hub-go/internal/domain/church"
	"github.com/google/uuid"
)

const (
	codeLength   = 8
	codeAttempts = 10
)

type GenerateInput struct {
	ChurchID      string
	CampusID      *string
	MaxUses       *int
	ExpiresInDays *int
}

type Service struct {
	repo    Repository
	checker *authz.Checker
	baseURL string
}

func NewService(repo Repository, checker *authz.Checker, baseURL string) *Service {
	return &Service{repo: repo, checker: checker, baseURL: strings.TrimRight(baseURL, "/")}
}

// Generate creates a shareable invite for the church. Owner or overseer only.
// Codes are retried on collision; the unique index on code is the backstop.
func (s *Service) Generate(ctx context.Context, userID string, input GenerateInput) (*InviteLink, error) {
	actor, err := s.checker.Require(ctx, userID, input.ChurchID, authz.RoleOverseer)
	if err != nil {
		return nil, err
	}

	if input.MaxUses != nil && *input.MaxUses < 1 {
		return nil, fmt.Errorf("%w: max uses must be at least 1", ErrInvalidInput)
	}
	if input.ExpiresInDays != nil && *input.ExpiresInDays < 1 {
		return nil, fmt.Errorf("%w: expires_in_days must be at least 1", ErrInvalidInput)
	}
	if input.CampusID != nil {
		ok, err := s.repo.CampusBelongsToChurch(ctx, *input.CampusID, input.ChurchID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, church.ErrCampusMismatch
		}
	}

	code, err := s.generateUniqueCode(ctx)
	if err != nil {
		return nil, err
	}

	var expiresAt *time.Time
	if input.ExpiresInDays != nil {
		expiry := time.Now().UTC().AddDate(0, 0, *input.ExpiresInDays)
		expiresAt = &expiry
	}

	inv := Invite{
		ID:        uuid.NewString(),
		ChurchID:  input.ChurchID,
		CampusID:  input.CampusID,
		Code:      code,
		CreatedBy: actor.UserID,
		MaxUses:   input.MaxUses,
		ExpiresAt: expiresAt,
		Active:    true,
	}
	if err := s.repo.CreateInvite(ctx, &inv); err != nil {
		return nil, err
	}

	return &InviteLink{Invite: inv, JoinURL: s.joinURL(inv.Code)}, nil
}

// Redeem turns a valid invite code into a member-role membership. The whole
// redemption is one transaction: the conditional use-count increment and the
// membership insert commit together or not at all.
func (s *Service) Redeem(ctx context.Context, caller church.Identity, code string) (*church.Membership, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}

	var member church.Membership
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		inChurch, err := tx.IsUserInAnyChurch(ctx, caller.UserID)
		if err != nil {
			return err
		}
		if inChurch {
			return church.ErrAlreadyInChurch
		}

		inv, err := tx.GetActiveByCode(ctx, code)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if inv.ExpiresAt != nil && now.After(*inv.ExpiresAt) {
			return ErrInviteInvalid
		}
		if inv.MaxUses != nil && inv.UsedCount >= *inv.MaxUses {
			return ErrInviteExhausted
		}

		consumed, err := tx.ConsumeUse(ctx, inv.ID, now)
		if err != nil {
			return err
		}
		if !consumed {
			if inv.MaxUses != nil {
				return ErrInviteExhausted
			}
			return ErrInviteInvalid
		}

		member = church.Membership{
			ID:          uuid.NewString(),
			UserID:      caller.UserID,
			ChurchID:    inv.ChurchID,
			CampusID:    inv.CampusID,
			Role:        authz.RoleMember,
			DisplayName: caller.DisplayName,
			Email:       caller.Email,
		}
		if err := tx.CreateMembership(ctx, &member); err != nil {
			return err
		}

		return tx.RecordEvent(ctx, &church.MembershipEvent{
			ID:       uuid.NewString(),
			ChurchID: inv.ChurchID,
			UserID:   caller.UserID,
			ActorID:  caller.UserID,
			Action:   church.EventJoined,
			Detail:   "invite " + code,
		})
	})
	if err != nil {
		return nil, err
	}

	return &member, nil
}

// Deactivate flips the invite inactive. Idempotent.
func (s *Service) Deactivate(ctx context.Context, userID, inviteID string) error {
	inv, err := s.repo.GetByID(ctx, inviteID)
	if err != nil {
		return err
	}
	if _, err := s.checker.Require(ctx, userID, inv.ChurchID, authz.RoleOverseer); err != nil {
		return err
	}
	return s.repo.Deactivate(ctx, inviteID)
}

func (s *Service) List(ctx context.Context, userID, churchID string) ([]InviteLink, error) {
	if _, err := s.checker.Require(ctx, userID, churchID, authz.RoleOverseer); err != nil {
		return nil, err
	}

	invites, err := s.repo.ListByChurch(ctx, churchID)
	if err != nil {
		return nil, err
	}

	links := make([]InviteLink, 0, len(invites))
	for _, inv := range invites {
		links = append(links, InviteLink{Invite: inv, JoinURL: s.joinURL(inv.Code)})
	}
	return links, nil
}

func (s *Service) joinURL(code string) string {
	return s.baseURL + "/join?code=" + code
}

func (s *Service) generateUniqueCode(ctx context.Context) (string, error) {
	for i := 0; i < codeAttempts; i++ {
		code, err := generateCode(codeLength)
		if err != nil {
			return "", err
		}
		taken, err := s.repo.IsCodeTaken(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrCodeGenerationFailed
}

func generateCode(length int) (string, error) {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	max := big.NewInt(int64(len(alphabet)))

	var builder strings.Builder
	builder.Grow(length)

	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		builder.WriteByte(alphabet[n.Int64()])
	}

	return builder.String(), nil
}
