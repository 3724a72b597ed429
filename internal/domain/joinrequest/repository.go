package joinrequest

import (
	"context"
	"time"

	"church-hub-go/internal/domain/church"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	CreateRequest(ctx context.Context, req *JoinRequest) error
	GetRequest(ctx context.Context, requestID string) (*JoinRequest, error)
	ListRequests(ctx context.Context, churchID, status string) ([]JoinRequest, error)
	MarkReviewed(ctx context.Context, requestID, status, reviewerID, note string, at time.Time) error
	DeleteRequest(ctx context.Context, requestID string) error
	HasPendingRequest(ctx context.Context, userID, churchID string) (bool, error)
	CountRequestsSince(ctx context.Context, userID string, since time.Time) (int64, error)

	CreateDenial(ctx context.Context, denial *Denial) error
	CountDenialsSince(ctx context.Context, userID, churchID string, since time.Time) (int64, error)

	CreateAnswers(ctx context.Context, answers []Answer) error
	ListAnswers(ctx context.Context, requestIDs []string) ([]AnsweredQuestion, error)

	CreateQuestion(ctx context.Context, question *Question) error
	GetQuestion(ctx context.Context, questionID string) (*Question, error)
	ListQuestions(ctx context.Context, churchID string, activeOnly bool) ([]Question, error)
	UpdateQuestion(ctx context.Context, question *Question) error
	SetQuestionActive(ctx context.Context, questionID string, active bool) error
	DeleteQuestion(ctx context.Context, questionID string) error
	NextQuestionPosition(ctx context.Context, churchID string) (int, error)

	CampusBelongsToChurch(ctx context.Context, campusID, churchID string) (bool, error)
	IsUserMemberOf(ctx context.Context, userID, churchID string) (bool, error)
	IsUserInAnyChurch(ctx context.Context, userID string) (bool, error)
	CreateMembership(ctx context.Context, m *church.Membership) error
	RecordEvent(ctx context.Context, event *church.MembershipEvent) error
}
