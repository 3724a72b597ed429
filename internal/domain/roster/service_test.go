package roster

import (
	"context"
	"errors"
	"testing"

	"church-hub-go/internal/domain/authz"
)

type fakeRosterRepo struct {
	entries map[string]*Entry
	actors  map[string]*authz.Actor
}

func newFakeRosterRepo() *fakeRosterRepo {
	return &fakeRosterRepo{
		entries: make(map[string]*Entry),
		actors:  make(map[string]*authz.Actor),
	}
}

func (r *fakeRosterRepo) CreateEntry(ctx context.Context, entry *Entry) error {
	if entry.Kind.UserScoped() && entry.UserID != nil {
		for _, existing := range r.entries {
			if existing.ChurchID == entry.ChurchID && existing.Kind == entry.Kind &&
				existing.UserID != nil && *existing.UserID == *entry.UserID {
				return ErrDuplicateEntry
			}
		}
	}
	r.entries[entry.ID] = entry
	return nil
}

func (r *fakeRosterRepo) GetEntry(ctx context.Context, entryID string) (*Entry, error) {
	entry, ok := r.entries[entryID]
	if !ok {
		return nil, ErrEntryNotFound
	}
	copied := *entry
	return &copied, nil
}

func (r *fakeRosterRepo) ListEntries(ctx context.Context, churchID string, kind Kind) ([]Entry, error) {
	result := make([]Entry, 0)
	for _, entry := range r.entries {
		if entry.ChurchID == churchID && entry.Kind == kind {
			result = append(result, *entry)
		}
	}
	return result, nil
}

func (r *fakeRosterRepo) UpdateEntry(ctx context.Context, entry *Entry) error {
	r.entries[entry.ID] = entry
	return nil
}

func (r *fakeRosterRepo) SetEntryActive(ctx context.Context, entryID string, active bool) error {
	entry, ok := r.entries[entryID]
	if !ok {
		return ErrEntryNotFound
	}
	entry.Active = active
	return nil
}

func (r *fakeRosterRepo) DeleteEntry(ctx context.Context, entryID string) error {
	delete(r.entries, entryID)
	return nil
}

func (r *fakeRosterRepo) HasUserEntry(ctx context.Context, churchID string, kind Kind, userID string) (bool, error) {
	for _, entry := range r.entries {
		if entry.ChurchID == churchID && entry.Kind == kind && entry.UserID != nil && *entry.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRosterRepo) ResolveActor(ctx context.Context, userID, churchID string) (*authz.Actor, error) {
	actor, ok := r.actors[userID]
	if !ok || actor.ChurchID != churchID {
		return nil, nil
	}
	return actor, nil
}

func (r *fakeRosterRepo) grantRole(userID, churchID string, role authz.Role) {
	r.actors[userID] = &authz.Actor{MembershipID: "m-" + userID, UserID: userID, ChurchID: churchID, Role: role}
}

func newRosterService(repo *fakeRosterRepo) *Service {
	return NewService(repo, authz.NewChecker(repo))
}

func TestCreateEntrySuccess(t *testing.T) {
	repo := newFakeRosterRepo()
	repo.grantRole("overseer", "church-1", authz.RoleOverseer)

	svc := newRosterService(repo)
	entry, err := svc.Create(context.Background(), "overseer", "church-1", KindMinistry, EntryInput{
		Name: "  Youth Ministry  ",
		Role: "lead",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if entry.Name != "Youth Ministry" {
		t.Fatalf("expected trimmed name, got %q", entry.Name)
	}
	if !entry.Active {
		t.Fatalf("expected entry active")
	}
}

func TestCreateEntryInvalidKind(t *testing.T) {
	repo := newFakeRosterRepo()
	repo.grantRole("overseer", "church-1", authz.RoleOverseer)

	svc := newRosterService(repo)
	if _, err := svc.Create(context.Background(), "overseer", "church-1", "choir", EntryInput{Name: "X"}); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
}

func TestCreateEntryRequiresName(t *testing.T) {
	repo := newFakeRosterRepo()
	repo.grantRole("overseer", "church-1", authz.RoleOverseer)

	svc := newRosterService(repo)
	if _, err := svc.Create(context.Background(), "overseer", "church-1", KindMinistry, EntryInput{Name: "  "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
}

func TestCreateEntryRequiresOverseer(t *testing.T) {
	repo := newFakeRosterRepo()
	repo.grantRole("member", "church-1", authz.RoleMember)

	svc := newRosterService(repo)
	if _, err := svc.Create(context.Background(), "member", "church-1", KindMinistry, EntryInput{Name: "X"}); !errors.Is(err, authz.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCreateUserScopedEntryRejectsDuplicate(t *testing.T) {
	repo := newFakeRosterRepo()
	repo.grantRole("overseer", "church-1", authz.RoleOverseer)
	userID := "user-1"

	svc := newRosterService(repo)
	if _, err := svc.Create(context.Background(), "overseer", "church-1", KindSafetyTeam, EntryInput{UserID: &userID, Name: "Pat"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "overseer", "church-1", KindSafetyTeam, EntryInput{UserID: &userID, Name: "Pat"}); !errors.Is(err, ErrDuplicateEntry) {
		t.Fatalf("expected ErrDuplicateEntry, got %v", err)
	}
	// The same user can appear on a different user-scoped roster.
	if _, err := svc.Create(context.Background(), "overseer", "church-1", KindWorshipTeam, EntryInput{UserID: &userID, Name: "Pat"}); err != nil {
		t.Fatalf("expected no error on other kind, got %v", err)
	}
}

func TestListEntriesMemberAllowed(t *testing.T) {
	repo := newFakeRosterRepo()
	repo.grantRole("member", "church-1", authz.RoleMember)
	repo.entries["e-1"] = &Entry{ID: "e-1", ChurchID: "church-1", Kind: KindMinistry, Name: "Youth"}
	repo.entries["e-2"] = &Entry{ID: "e-2", ChurchID: "church-1", Kind: KindAgeGroup, Name: "Kids"}
	repo.entries["e-3"] = &Entry{ID: "e-3", ChurchID: "church-2", Kind: KindMinistry, Name: "Other"}

	svc := newRosterService(repo)
	entries, err := svc.List(context.Background(), "member", "church-1", KindMinistry)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "e-1" {
		t.Fatalf("expected only the church's ministry entries, got %+v", entries)
	}

	if _, err := svc.List(context.Background(), "outsider", "church-1", KindMinistry); !errors.Is(err, authz.ErrNotAMember) {
		t.Fatalf("expected ErrNotAMember, got %v", err)
	}
}

func TestUpdateEntry(t *testing.T) {
	repo := newFakeRosterRepo()
	repo.grantRole("overseer", "church-1", authz.RoleOverseer)
	repo.entries["e-1"] = &Entry{ID: "e-1", ChurchID: "church-1", Kind: KindMinistry, Name: "Youth", Active: true}

	svc := newRosterService(repo)
	entry, err := svc.Update(context.Background(), "overseer", "e-1", EntryInput{Name: "Young Adults", Role: "lead"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if entry.Name != "Young Adults" || entry.Role != "lead" {
		t.Fatalf("unexpected entry %+v", entry)
	}
}

func TestToggleEntry(t *testing.T) {
	repo := newFakeRosterRepo()
	repo.grantRole("overseer", "church-1", authz.RoleOverseer)
	repo.entries["e-1"] = &Entry{ID: "e-1", ChurchID: "church-1", Kind: KindMinistry, Name: "Youth", Active: true}

	svc := newRosterService(repo)
	entry, err := svc.Toggle(context.Background(), "overseer", "e-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if entry.Active {
		t.Fatalf("expected entry deactivated")
	}
	entry, err = svc.Toggle(context.Background(), "overseer", "e-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !entry.Active {
		t.Fatalf("expected entry reactivated")
	}
}

func TestDeleteEntry(t *testing.T) {
	repo := newFakeRosterRepo()
	repo.grantRole("overseer", "church-1", authz.RoleOverseer)
	repo.entries["e-1"] = &Entry{ID: "e-1", ChurchID: "church-1", Kind: KindMinistry, Name: "Youth"}

	svc := newRosterService(repo)
	if err := svc.Delete(context.Background(), "overseer", "e-1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := repo.entries["e-1"]; ok {
		t.Fatalf("expected entry deleted")
	}

	if err := svc.Delete(context.Background(), "overseer", "e-1"); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}
