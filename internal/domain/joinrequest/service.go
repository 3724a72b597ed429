package joinrequest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"church-hub-go/internal/domain/authz"
	"church-hub-go/internal/domain/church"
	"church-hub-go/pkg/logger"
	"github.com/google/uuid"
)

// Limits are the anti-abuse thresholds for filing requests.
type Limits struct {
	DenialLimit   int
	DenialWindow  time.Duration
	RequestLimit  int
	RequestWindow time.Duration
}

func DefaultLimits() Limits {
	return Limits{
		DenialLimit:   3,
		DenialWindow:  90 * 24 * time.Hour,
		RequestLimit:  3,
		RequestWindow: 7 * 24 * time.Hour,
	}
}

type CreateInput struct {
	ChurchID string
	CampusID *string
	Note     string
	// Answers maps question id to the applicant's answer text.
	Answers map[string]string
}

type Service struct {
	repo    Repository
	checker *authz.Checker
	limits  Limits
	log     logger.Logger
}

func NewService(repo Repository, checker *authz.Checker, limits Limits, log logger.Logger) *Service {
	if limits.DenialLimit == 0 {
		limits = DefaultLimits()
	}
	return &Service{repo: repo, checker: checker, limits: limits, log: log}
}

// Create files a pending join request. Guards run in order: membership,
// pending duplicate, per-church denial cooldown, global weekly rate limit.
// Answers to questionnaire questions are saved best-effort; required active
// questions must be answered.
func (s *Service) Create(ctx context.Context, caller church.Identity, input CreateInput) (*JoinRequest, error) {
	now := time.Now().UTC()

	isMember, err := s.repo.IsUserMemberOf(ctx, caller.UserID, input.ChurchID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, ErrAlreadyMember
	}

	pending, err := s.repo.HasPendingRequest(ctx, caller.UserID, input.ChurchID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrAlreadyPending
	}

	denials, err := s.repo.CountDenialsSince(ctx, caller.UserID, input.ChurchID, now.Add(-s.limits.DenialWindow))
	if err != nil {
		return nil, err
	}
	if denials >= int64(s.limits.DenialLimit) {
		return nil, ErrDenialCooldown
	}

	requests, err := s.repo.CountRequestsSince(ctx, caller.UserID, now.Add(-s.limits.RequestWindow))
	if err != nil {
		return nil, err
	}
	if requests >= int64(s.limits.RequestLimit) {
		return nil, ErrRateLimited
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

	questions, err := s.repo.ListQuestions(ctx, input.ChurchID, true)
	if err != nil {
		return nil, err
	}
	for _, question := range questions {
		if question.Required && strings.TrimSpace(input.Answers[question.ID]) == "" {
			return nil, fmt.Errorf("%w: %s", ErrAnswerRequired, question.Text)
		}
	}

	request := JoinRequest{
		ID:          uuid.NewString(),
		ChurchID:    input.ChurchID,
		CampusID:    input.CampusID,
		UserID:      caller.UserID,
		DisplayName: caller.DisplayName,
		Email:       caller.Email,
		Note:        strings.TrimSpace(input.Note),
		Status:      StatusPending,
	}
	if err := s.repo.CreateRequest(ctx, &request); err != nil {
		return nil, err
	}

	answers := make([]Answer, 0, len(questions))
	for _, question := range questions {
		text := strings.TrimSpace(input.Answers[question.ID])
		if text == "" {
			continue
		}
		answers = append(answers, Answer{
			ID:         uuid.NewString(),
			RequestID:  request.ID,
			QuestionID: question.ID,
			Text:       text,
		})
	}
	if len(answers) > 0 {
		if err := s.repo.CreateAnswers(ctx, answers); err != nil {
			// The request stands even if answers fail to save.
			s.log.InternalError("join_requests: saving answers failed", err, "request_id", request.ID)
		}
	}

	return &request, nil
}

// Approve creates the membership and marks the request in one transaction.
// A user who became a member through another path in the meantime fails the
// already-member re-check; the unique user index is the final backstop.
func (s *Service) Approve(ctx context.Context, userID, requestID, note string) (*church.Membership, error) {
	request, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if _, err := s.checker.Require(ctx, userID, request.ChurchID, authz.RoleModerator); err != nil {
		return nil, err
	}
	if request.Status != StatusPending {
		return nil, ErrRequestClosed
	}

	var member church.Membership
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		inChurch, err := tx.IsUserInAnyChurch(ctx, request.UserID)
		if err != nil {
			return err
		}
		if inChurch {
			return ErrAlreadyMember
		}

		member = church.Membership{
			ID:          uuid.NewString(),
			UserID:      request.UserID,
			ChurchID:    request.ChurchID,
			CampusID:    request.CampusID,
			Role:        authz.RoleMember,
			DisplayName: request.DisplayName,
			Email:       request.Email,
		}
		if err := tx.CreateMembership(ctx, &member); err != nil {
			return err
		}

		if err := tx.MarkReviewed(ctx, requestID, StatusApproved, userID, strings.TrimSpace(note), time.Now().UTC()); err != nil {
			return err
		}

		return tx.RecordEvent(ctx, &church.MembershipEvent{
			ID:       uuid.NewString(),
			ChurchID: request.ChurchID,
			UserID:   request.UserID,
			ActorID:  userID,
			Action:   church.EventJoined,
			Detail:   "join request approved",
		})
	})
	if err != nil {
		return nil, err
	}

	return &member, nil
}

// Deny requires a non-blank reason and writes exactly one denial row per
// successful denial, in the same transaction as the request update.
func (s *Service) Deny(ctx context.Context, userID, requestID, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrReasonRequired
	}

	request, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if _, err := s.checker.Require(ctx, userID, request.ChurchID, authz.RoleModerator); err != nil {
		return err
	}
	if request.Status != StatusPending {
		return ErrRequestClosed
	}

	return s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.MarkReviewed(ctx, requestID, StatusDenied, userID, reason, time.Now().UTC()); err != nil {
			return err
		}
		return tx.CreateDenial(ctx, &Denial{
			ID:       uuid.NewString(),
			ChurchID: request.ChurchID,
			UserID:   request.UserID,
			DeniedBy: userID,
			Reason:   reason,
		})
	})
}

// Cancel lets the requester withdraw their own pending request.
func (s *Service) Cancel(ctx context.Context, userID, requestID string) error {
	request, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if request.UserID != userID {
		return ErrRequestNotFound
	}
	if request.Status != StatusPending {
		return ErrRequestClosed
	}
	return s.repo.DeleteRequest(ctx, requestID)
}

// List returns requests for a church, optionally filtered by status, each
// enriched with its questionnaire answers.
func (s *Service) List(ctx context.Context, userID, churchID, status string) ([]RequestWithAnswers, error) {
	switch status {
	case "", StatusPending, StatusApproved, StatusDenied:
	default:
		return nil, ErrInvalidStatus
	}
	if _, err := s.checker.Require(ctx, userID, churchID, authz.RoleModerator); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListRequests(ctx, churchID, status)
	if err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return []RequestWithAnswers{}, nil
	}

	ids := make([]string, 0, len(requests))
	for _, request := range requests {
		ids = append(ids, request.ID)
	}
	answers, err := s.repo.ListAnswers(ctx, ids)
	if err != nil {
		return nil, err
	}

	byRequest := make(map[string][]AnsweredQuestion, len(requests))
	for _, answer := range answers {
		byRequest[answer.RequestID] = append(byRequest[answer.RequestID], answer)
	}

	result := make([]RequestWithAnswers, 0, len(requests))
	for _, request := range requests {
		result = append(result, RequestWithAnswers{Request: request, Answers: byRequest[request.ID]})
	}
	return result, nil
}
