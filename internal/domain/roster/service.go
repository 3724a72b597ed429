package roster

import (
	"context"
	"fmt"
	"strings"

	"church-hub-go/internal/domain/authz"
	"github.com/google/uuid"
)

type EntryInput struct {
	UserID *string
	Name   string
	Role   string
	Notes  string
}

type Service struct {
	repo    Repository
	checker *authz.Checker
}

func NewService(repo Repository, checker *authz.Checker) *Service {
	return &Service{repo: repo, checker: checker}
}

func (s *Service) List(ctx context.Context, userID, churchID string, kind Kind) ([]Entry, error) {
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}
	if _, err := s.checker.Require(ctx, userID, churchID, authz.RoleMember); err != nil {
		return nil, err
	}
	return s.repo.ListEntries(ctx, churchID, kind)
}

// Create adds a roster entry. Owner or overseer only; user-scoped kinds
// reject a second entry for the same user.
func (s *Service) Create(ctx context.Context, userID, churchID string, kind Kind, input EntryInput) (*Entry, error) {
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if _, err := s.checker.Require(ctx, userID, churchID, authz.RoleOverseer); err != nil {
		return nil, err
	}

	if kind.UserScoped() && input.UserID != nil {
		taken, err := s.repo.HasUserEntry(ctx, churchID, kind, *input.UserID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrDuplicateEntry
		}
	}

	entry := Entry{
		ID:       uuid.NewString(),
		ChurchID: churchID,
		Kind:     kind,
		UserID:   input.UserID,
		Name:     input.Name,
		Role:     input.Role,
		Notes:    input.Notes,
		Active:   true,
	}
	if err := s.repo.CreateEntry(ctx, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *Service) Update(ctx context.Context, userID, entryID string, input EntryInput) (*Entry, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	entry, err := s.repo.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if _, err := s.checker.Require(ctx, userID, entry.ChurchID, authz.RoleOverseer); err != nil {
		return nil, err
	}

	entry.Name = input.Name
	entry.Role = input.Role
	entry.Notes = input.Notes
	if err := s.repo.UpdateEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) Toggle(ctx context.Context, userID, entryID string) (*Entry, error) {
	entry, err := s.repo.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if _, err := s.checker.Require(ctx, userID, entry.ChurchID, authz.RoleOverseer); err != nil {
		return nil, err
	}

	if err := s.repo.SetEntryActive(ctx, entryID, !entry.Active); err != nil {
		return nil, err
	}
	entry.Active = !entry.Active
	return entry, nil
}

func (s *Service) Delete(ctx context.Context, userID, entryID string) error {
	entry, err := s.repo.GetEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if _, err := s.checker.Require(ctx, userID, entry.ChurchID, authz.RoleOverseer); err != nil {
		return err
	}
	return s.repo.DeleteEntry(ctx, entryID)
}
