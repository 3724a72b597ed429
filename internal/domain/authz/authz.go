// Package authz holds the church role hierarchy and the single capability
// check every mutating operation goes through.
//
// Roles order as member < moderator < overseer < owner. An operation declares
// the minimum role it needs; the check resolves the caller's membership in the
// target church and compares ranks.
package authz

import (
	"context"
	"errors"
	"fmt"
)

type Role string

const (
	RoleMember    Role = "member"
	RoleModerator Role = "moderator"
	RoleOverseer  Role = "overseer"
	RoleOwner     Role = "owner"
)

var roleRanks = map[Role]int{
	RoleMember:    0,
	RoleModerator: 1,
	RoleOverseer:  2,
	RoleOwner:     3,
}

func (r Role) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

func (r Role) Rank() int {
	return roleRanks[r]
}

func (r Role) AtLeast(min Role) bool {
	return r.Valid() && min.Valid() && r.Rank() >= min.Rank()
}

var (
	ErrNotAMember = errors.New("not a member of this church")
	ErrForbidden  = errors.New("forbidden")
)

// ForbiddenError names the minimum role the rejected operation needed.
type ForbiddenError struct {
	Required Role
	Actual   Role
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("forbidden: requires role %s or above", e.Required)
}

func (e *ForbiddenError) Is(target error) bool {
	return target == ErrForbidden
}

// Actor is the caller's resolved membership in the target church.
type Actor struct {
	MembershipID string
	UserID       string
	ChurchID     string
	CampusID     *string
	Role         Role
}

// Resolver looks up the caller's membership for a church. A nil Actor with a
// nil error means the user holds no membership there.
type Resolver interface {
	ResolveActor(ctx context.Context, userID, churchID string) (*Actor, error)
}

type Checker struct {
	resolver Resolver
}

func NewChecker(resolver Resolver) *Checker {
	return &Checker{resolver: resolver}
}

// Require resolves the caller's membership in churchID and permits the
// operation iff the caller's role ranks at or above min.
func (c *Checker) Require(ctx context.Context, userID, churchID string, min Role) (*Actor, error) {
	actor, err := c.resolver.ResolveActor(ctx, userID, churchID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, ErrNotAMember
	}
	if !actor.Role.AtLeast(min) {
		return nil, &ForbiddenError{Required: min, Actual: actor.Role}
	}
	return actor, nil
}
