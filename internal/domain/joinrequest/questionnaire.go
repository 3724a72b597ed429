package joinrequest

import (
	"context"
	"fmt"
	"strings"

	"church-hub-go/internal/domain/authz"
	"github.com/google/uuid"
)

// ListQuestions shows every question to owners and only active ones to
// everyone else in the church.
func (s *Service) ListQuestions(ctx context.Context, userID, churchID string) ([]Question, error) {
	actor, err := s.checker.Require(ctx, userID, churchID, authz.RoleMember)
	if err != nil {
		return nil, err
	}
	activeOnly := !actor.Role.AtLeast(authz.RoleOwner)
	return s.repo.ListQuestions(ctx, churchID, activeOnly)
}

// PublicQuestions lists the active questions shown to applicants filing a
// join request, without requiring membership.
func (s *Service) PublicQuestions(ctx context.Context, churchID string) ([]Question, error) {
	return s.repo.ListQuestions(ctx, churchID, true)
}

func (s *Service) CreateQuestion(ctx context.Context, userID, churchID, text string, required bool) (*Question, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: question text is required", ErrInvalidInput)
	}
	if _, err := s.checker.Require(ctx, userID, churchID, authz.RoleOwner); err != nil {
		return nil, err
	}

	position, err := s.repo.NextQuestionPosition(ctx, churchID)
	if err != nil {
		return nil, err
	}

	question := Question{
		ID:       uuid.NewString(),
		ChurchID: churchID,
		Text:     text,
		Required: required,
		Position: position,
		Active:   true,
	}
	if err := s.repo.CreateQuestion(ctx, &question); err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *Service) UpdateQuestion(ctx context.Context, userID, questionID, text string, required bool) (*Question, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: question text is required", ErrInvalidInput)
	}

	question, err := s.repo.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.checker.Require(ctx, userID, question.ChurchID, authz.RoleOwner); err != nil {
		return nil, err
	}

	question.Text = text
	question.Required = required
	if err := s.repo.UpdateQuestion(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *Service) ToggleQuestion(ctx context.Context, userID, questionID string) (*Question, error) {
	question, err := s.repo.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.checker.Require(ctx, userID, question.ChurchID, authz.RoleOwner); err != nil {
		return nil, err
	}

	if err := s.repo.SetQuestionActive(ctx, questionID, !question.Active); err != nil {
		return nil, err
	}
	question.Active = !question.Active
	return question, nil
}

func (s *Service) DeleteQuestion(ctx context.Context, userID, questionID string) error {
	question, err := s.repo.GetQuestion(ctx, questionID)
	if err != nil {
		return err
	}
	if _, err := s.checker.Require(ctx, userID, question.ChurchID, authz.RoleOwner); err != nil {
		return err
	}
	return s.repo.DeleteQuestion(ctx, questionID)
}
