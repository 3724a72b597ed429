package authz

import (
	"context"
	"errors"
	"testing"
)

type fakeResolver struct {
	actors map[string]*Actor
}

func (r *fakeResolver) ResolveActor(ctx context.Context, userID, churchID string) (*Actor, error) {
	actor, ok := r.actors[userID+"/"+churchID]
	if !ok {
		return nil, nil
	}
	return actor, nil
}

func TestRoleOrdering(t *testing.T) {
	ordered := []Role{RoleMember, RoleModerator, RoleOverseer, RoleOwner}
	for i, lower := range ordered {
		for j, higher := range ordered {
			got := higher.AtLeast(lower)
			want := j >= i
			if got != want {
				t.Errorf("%s.AtLeast(%s) = %v, want %v", higher, lower, got, want)
			}
		}
	}
}

func TestRoleValid(t *testing.T) {
	if !RoleOwner.Valid() {
		t.Fatalf("expected owner to be valid")
	}
	if Role("bishop").Valid() {
		t.Fatalf("expected unknown role to be invalid")
	}
	if Role("bishop").AtLeast(RoleMember) {
		t.Fatalf("unknown role should never pass a check")
	}
}

func TestRequireNotAMember(t *testing.T) {
	checker := NewChecker(&fakeResolver{actors: map[string]*Actor{}})
	_, err := checker.Require(context.Background(), "user-1", "church-1", RoleMember)
	if !errors.Is(err, ErrNotAMember) {
		t.Fatalf("expected ErrNotAMember, got %v", err)
	}
}

func TestRequireInsufficientRole(t *testing.T) {
	checker := NewChecker(&fakeResolver{actors: map[string]*Actor{
		"user-1/church-1": {MembershipID: "m-1", UserID: "user-1", ChurchID: "church-1", Role: RoleModerator},
	}})

	_, err := checker.Require(context.Background(), "user-1", "church-1", RoleOwner)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	var forbidden *ForbiddenError
	if !errors.As(err, &forbidden) {
		t.Fatalf("expected ForbiddenError, got %T", err)
	}
	if forbidden.Required != RoleOwner {
		t.Fatalf("expected required role owner, got %s", forbidden.Required)
	}
}

func TestRequireSufficientRole(t *testing.T) {
	checker := NewChecker(&fakeResolver{actors: map[string]*Actor{
		"user-1/church-1": {MembershipID: "m-1", UserID: "user-1", ChurchID: "church-1", Role: RoleOverseer},
	}})

	actor, err := checker.Require(context.Background(), "user-1", "church-1", RoleModerator)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if actor.MembershipID != "m-1" {
		t.Fatalf("expected membership m-1, got %s", actor.MembershipID)
	}
}
