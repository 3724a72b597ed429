package church

import (
	"context"
	"fmt"
	"strings"
	"time"

	"church-hub-go/internal/domain/authz"
	"github.com/google/uuid"
)

const analyticsWindow = 30 * 24 * time.Hour

// Identity is the authenticated caller as supplied by the identity provider.
// Display name and email are snapshotted onto membership rows at creation.
type Identity struct {
	UserID      string
	DisplayName string
	Email       string
}

type CampusInput struct {
	Name      string
	Location  string
	Address   string
	ZipCode   string
	Latitude  *float64
	Longitude *float64
}

type CreateChurchInput struct {
	Name        string
	Description string
	Campus      CampusInput
}

type Service struct {
	repo    Repository
	checker *authz.Checker
}

func NewService(repo Repository, checker *authz.Checker) *Service {
	return &Service{repo: repo, checker: checker}
}

// CreateChurch creates the church, its first campus and the caller's owner
// membership in one transaction. A caller already in a church is rejected.
func (s *Service) CreateChurch(ctx context.Context, caller Identity, input CreateChurchInput) (*Church, *Campus, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, nil, fmt.Errorf("%w: church name is required", ErrInvalidInput)
	}
	input.Campus.Name = strings.TrimSpace(input.Campus.Name)
	if input.Campus.Name == "" {
		return nil, nil, fmt.Errorf("%w: campus name is required", ErrInvalidInput)
	}

	var (
		created Church
		campus  Campus
	)
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		inChurch, err := tx.IsUserInAnyChurch(ctx, caller.UserID)
		if err != nil {
			return err
		}
		if inChurch {
			return ErrAlreadyInChurch
		}

		created = Church{
			ID:          uuid.NewString(),
			Name:        input.Name,
			Description: input.Description,
			OwnerID:     caller.UserID,
		}
		if err := tx.CreateChurch(ctx, &created); err != nil {
			return err
		}

		campus = newCampus(created.ID, input.Campus)
		if err := tx.CreateCampus(ctx, &campus); err != nil {
			return err
		}

		member := Membership{
			ID:          uuid.NewString(),
			UserID:      caller.UserID,
			ChurchID:    created.ID,
			Role:        authz.RoleOwner,
			DisplayName: caller.DisplayName,
			Email:       caller.Email,
		}
		if err := tx.CreateMembership(ctx, &member); err != nil {
			return err
		}

		return tx.RecordEvent(ctx, newEvent(created.ID, caller.UserID, caller.UserID, EventJoined, "church created"))
	})
	if err != nil {
		return nil, nil, err
	}

	return &created, &campus, nil
}

// MyMembership returns the caller's membership, wherever it is.
func (s *Service) MyMembership(ctx context.Context, userID string) (*Membership, error) {
	return s.repo.GetMembershipByUser(ctx, userID)
}

func (s *Service) GetChurch(ctx context.Context, userID, churchID string) (*ChurchWithCampuses, error) {
	if _, err := s.checker.Require(ctx, userID, churchID, authz.RoleMember); err != nil {
		return nil, err
	}

	result, err := s.repo.GetChurch(ctx, churchID)
	if err != nil {
		return nil, err
	}
	campuses, err := s.repo.ListCampuses(ctx, churchID)
	if err != nil {
		return nil, err
	}
	return &ChurchWithCampuses{Church: *result, Campuses: campuses}, nil
}

func (s *Service) UpdateChurch(ctx context.Context, userID, churchID, name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: church name is required", ErrInvalidInput)
	}
	if _, err := s.checker.Require(ctx, userID, churchID, authz.RoleOwner); err != nil {
		return err
	}
	return s.repo.UpdateChurch(ctx, churchID, name, description)
}

func (s *Service) SetVisibility(ctx context.Context, userID, churchID string, public bool) error {
	if _, err := s.checker.Require(ctx, userID, churchID, authz.RoleOwner); err != nil {
		return err
	}
	return s.repo.SetVisibility(ctx, churchID, public)
}

// DeleteChurch removes the church and, through cascade, its campuses,
// memberships, invites, requests and rosters.
func (s *Service) DeleteChurch(ctx context.Context, userID, churchID string) error {
	if _, err := s.checker.Require(ctx, userID, churchID, authz.RoleOwner); err != nil {
		return err
	}
	return s.repo.DeleteChurch(ctx, churchID)
}

func (s *Service) ListCampuses(ctx context.Context, userID, churchID string) ([]Campus, error) {
	if _, err := s.checker.Require(ctx, userID, churchID, authz.RoleMember); err != nil {
		return nil, err
	}
	return s.repo.ListCampuses(ctx, churchID)
}

func (s *Service) CreateCampus(ctx context.Context, userID, churchID string, input CampusInput) (*Campus, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, fmt.Errorf("%w: campus name is required", ErrInvalidInput)
	}
	if _, err := s.checker.Require(ctx, userID, churchID, authz.RoleOwner); err != nil {
		return nil, err
	}

	campus := newCampus(churchID, input)
	if err := s.repo.CreateCampus(ctx, &campus); err != nil {
		return nil, err
	}
	return &campus, nil
}

func (s *Service) UpdateCampus(ctx context.Context, userID, campusID string, input CampusInput) (*Campus, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, fmt.Errorf("%w: campus name is required", ErrInvalidInput)
	}

	campus, err := s.repo.GetCampus(ctx, campusID)
	if err != nil {
		return nil, err
	}
	if _, err := s.checker.Require(ctx, userID, campus.ChurchID, authz.RoleOwner); err != nil {
		return nil, err
	}

	campus.Name = input.Name
	campus.Location = input.Location
	campus.Address = input.Address
	campus.ZipCode = input.ZipCode
	campus.Latitude = input.Latitude
	campus.Longitude = input.Longitude
	if err := s.repo.UpdateCampus(ctx, campus); err != nil {
		return nil, err
	}
	return campus, nil
}

// DeleteCampus unassigns any memberships pointing at the campus before
// deleting it.
func (s *Service) DeleteCampus(ctx context.Context, userID, campusID string) error {
	campus, err := s.repo.GetCampus(ctx, campusID)
	if err != nil {
		return err
	}
	if _, err := s.checker.Require(ctx, userID, campus.ChurchID, authz.RoleOwner); err != nil {
		return err
	}
	return s.repo.DeleteCampus(ctx, campusID)
}

func (s *Service) ListMembers(ctx context.Context, userID, churchID string) ([]Membership, error) {
	if _, err := s.checker.Require(ctx, userID, churchID, authz.RoleMember); err != nil {
		return nil, err
	}
	return s.repo.ListMembers(ctx, churchID)
}

// ChangeRole requires the caller to be an owner of the target's church.
// Demoting the last remaining owner is rejected; the owner count is taken
// under row locks so concurrent demotions cannot both pass it. Assigning
// the role the member already holds is a no-op and records no event.
func (s *Service) ChangeRole(ctx context.Context, userID, membershipID string, newRole authz.Role) error {
	if !newRole.Valid() {
		return ErrInvalidRole
	}

	target, err := s.repo.GetMembership(ctx, membershipID)
	if err != nil {
		return err
	}
	if _, err := s.checker.Require(ctx, userID, target.ChurchID, authz.RoleOwner); err != nil {
		return err
	}
	if target.Role == newRole {
		return nil
	}

	return s.repo.Transaction(ctx, func(tx Repository) error {
		if target.Role == authz.RoleOwner && newRole != authz.RoleOwner {
			owners, err := tx.CountOwners(ctx, target.ChurchID)
			if err != nil {
				return err
			}
			if owners <= 1 {
				return ErrLastOwner
			}
		}
		if err := tx.UpdateMembershipRole(ctx, membershipID, string(newRole)); err != nil {
			return err
		}
		detail := fmt.Sprintf("%s -> %s", target.Role, newRole)
		return tx.RecordEvent(ctx, newEvent(target.ChurchID, target.UserID, userID, EventRoleChanged, detail))
	})
}

// AssignCampus requires owner or overseer and verifies the campus belongs to
// the target's church. A nil campusID clears the assignment.
func (s *Service) AssignCampus(ctx context.Context, userID, membershipID string, campusID *string) error {
	target, err := s.repo.GetMembership(ctx, membershipID)
	if err != nil {
		return err
	}
	if _, err := s.checker.Require(ctx, userID, target.ChurchID, authz.RoleOverseer); err != nil {
		return err
	}

	detail := "unassigned"
	if campusID != nil {
		campus, err := s.repo.GetCampus(ctx, *campusID)
		if err != nil {
			return err
		}
		if campus.ChurchID != target.ChurchID {
			return ErrCampusMismatch
		}
		detail = campus.Name
	}

	return s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.UpdateMembershipCampus(ctx, membershipID, campusID); err != nil {
			return err
		}
		return tx.RecordEvent(ctx, newEvent(target.ChurchID, target.UserID, userID, EventCampusAssigned, detail))
	})
}

// RemoveMember is owner-only; owners cannot be removed and callers cannot
// remove themselves.
func (s *Service) RemoveMember(ctx context.Context, userID, membershipID string) error {
	target, err := s.repo.GetMembership(ctx, membershipID)
	if err != nil {
		return err
	}
	if _, err := s.checker.Require(ctx, userID, target.ChurchID, authz.RoleOwner); err != nil {
		return err
	}
	if target.UserID == userID {
		return ErrCannotRemoveSelf
	}
	if target.Role == authz.RoleOwner {
		return ErrCannotRemoveOwner
	}

	return s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.DeleteMembership(ctx, membershipID); err != nil {
			return err
		}
		return tx.RecordEvent(ctx, newEvent(target.ChurchID, target.UserID, userID, EventRemoved, ""))
	})
}

// LeaveChurch deletes the caller's own membership. Owners cannot leave; they
// transfer ownership or delete the church instead. The reason lands on the
// audit event.
func (s *Service) LeaveChurch(ctx context.Context, userID, reason string) error {
	member, err := s.repo.GetMembershipByUser(ctx, userID)
	if err != nil {
		return err
	}
	if member.Role == authz.RoleOwner {
		return ErrOwnerCannotLeave
	}

	return s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.DeleteMembership(ctx, member.ID); err != nil {
			return err
		}
		return tx.RecordEvent(ctx, newEvent(member.ChurchID, userID, userID, EventLeft, strings.TrimSpace(reason)))
	})
}

// TransferOwnership promotes the target to owner and steps the caller down to
// overseer in one transaction.
func (s *Service) TransferOwnership(ctx context.Context, userID, churchID, membershipID string) error {
	actor, err := s.checker.Require(ctx, userID, churchID, authz.RoleOwner)
	if err != nil {
		return err
	}

	target, err := s.repo.GetMembership(ctx, membershipID)
	if err != nil {
		return err
	}
	if target.ChurchID != churchID {
		return ErrMembershipNotFound
	}
	if target.UserID == userID {
		return nil
	}

	return s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.UpdateMembershipRole(ctx, target.ID, string(authz.RoleOwner)); err != nil {
			return err
		}
		if err := tx.UpdateMembershipRole(ctx, actor.MembershipID, string(authz.RoleOverseer)); err != nil {
			return err
		}
		if err := tx.UpdateChurchOwner(ctx, churchID, target.UserID); err != nil {
			return err
		}
		return tx.RecordEvent(ctx, newEvent(churchID, target.UserID, userID, EventOwnershipTransferred, ""))
	})
}

func (s *Service) Analytics(ctx context.Context, userID, churchID string) (*Analytics, error) {
	if _, err := s.checker.Require(ctx, userID, churchID, authz.RoleOwner); err != nil {
		return nil, err
	}
	return s.repo.Analytics(ctx, churchID, time.Now().UTC().Add(-analyticsWindow))
}

func newCampus(churchID string, input CampusInput) Campus {
	return Campus{
		ID:        uuid.NewString(),
		ChurchID:  churchID,
		Name:      input.Name,
		Location:  input.Location,
		Address:   input.Address,
		ZipCode:   input.ZipCode,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
	}
}

func newEvent(churchID, userID, actorID, action, detail string) *MembershipEvent {
	return &MembershipEvent{
		ID:       uuid.NewString(),
		ChurchID: churchID,
		UserID:   userID,
		ActorID:  actorID,
		Action:   action,
		Detail:   detail,
	}
}
