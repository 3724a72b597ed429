package joinrequest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"church-hub-go/internal/domain/authz"
	"church-hub-go/internal/domain/church"
	"church-hub-go/pkg/logger"
)

type fakeJoinRequestRepo struct {
	requests    map[string]*JoinRequest
	denials     []Denial
	questions   map[string]*Question
	answers     []Answer
	memberships map[string]*church.Membership
	campuses    map[string]string
	events      []church.MembershipEvent
	actors      map[string]*authz.Actor

	answersErr error
}

func newFakeJoinRequestRepo() *fakeJoinRequestRepo {
	return &fakeJoinRequestRepo{
		requests:    make(map[string]*JoinRequest),
		questions:   make(map[string]*Question),
		memberships: make(map[string]*church.Membership),
		campuses:    make(map[string]string),
		actors:      make(map[string]*authz.Actor),
	}
}

func (r *fakeJoinRequestRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeJoinRequestRepo) CreateRequest(ctx context.Context, req *JoinRequest) error {
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}
	r.requests[req.ID] = req
	return nil
}

func (r *fakeJoinRequestRepo) GetRequest(ctx context.Context, requestID string) (*JoinRequest, error) {
	req, ok := r.requests[requestID]
	if !ok {
		return nil, ErrRequestNotFound
	}
	return req, nil
}

func (r *fakeJoinRequestRepo) ListRequests(ctx context.Context, churchID, status string) ([]JoinRequest, error) {
	result := make([]JoinRequest, 0)
	for _, req := range r.requests {
		if req.ChurchID != churchID {
			continue
		}
		if status != "" && req.Status != status {
			continue
		}
		result = append(result, *req)
	}
	return result, nil
}

func (r *fakeJoinRequestRepo) MarkReviewed(ctx context.Context, requestID, status, reviewerID, note string, at time.Time) error {
	req, ok := r.requests[requestID]
	if !ok {
		return ErrRequestNotFound
	}
	req.Status = status
	req.ReviewedBy = &reviewerID
	req.ReviewedAt = &at
	if note != "" {
		req.ReviewNote = &note
	}
	return nil
}

func (r *fakeJoinRequestRepo) DeleteRequest(ctx context.Context, requestID string) error {
	delete(r.requests, requestID)
	return nil
}

func (r *fakeJoinRequestRepo) HasPendingRequest(ctx context.Context, userID, churchID string) (bool, error) {
	for _, req := range r.requests {
		if req.UserID == userID && req.ChurchID == churchID && req.Status == StatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeJoinRequestRepo) CountRequestsSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	var count int64
	for _, req := range r.requests {
		if req.UserID == userID && req.CreatedAt.After(since) {
			count++
		}
	}
	return count, nil
}

func (r *fakeJoinRequestRepo) CreateDenial(ctx context.Context, denial *Denial) error {
	if denial.CreatedAt.IsZero() {
		denial.CreatedAt = time.Now().UTC()
	}
	r.denials = append(r.denials, *denial)
	return nil
}

func (r *fakeJoinRequestRepo) CountDenialsSince(ctx context.Context, userID, churchID string, since time.Time) (int64, error) {
	var count int64
	for _, denial := range r.denials {
		if denial.UserID == userID && denial.ChurchID == churchID && denial.CreatedAt.After(since) {
			count++
		}
	}
	return count, nil
}

func (r *fakeJoinRequestRepo) CreateAnswers(ctx context.Context, answers []Answer) error {
	if r.answersErr != nil {
		return r.answersErr
	}
	r.answers = append(r.answers, answers...)
	return nil
}

func (r *fakeJoinRequestRepo) ListAnswers(ctx context.Context, requestIDs []string) ([]AnsweredQuestion, error) {
	wanted := make(map[string]bool, len(requestIDs))
	for _, id := range requestIDs {
		wanted[id] = true
	}
	result := make([]AnsweredQuestion, 0)
	for _, answer := range r.answers {
		if !wanted[answer.RequestID] {
			continue
		}
		question := r.questions[answer.QuestionID]
		item := AnsweredQuestion{RequestID: answer.RequestID, QuestionID: answer.QuestionID, Answer: answer.Text}
		if question != nil {
			item.QuestionText = question.Text
			item.Required = question.Required
		}
		result = append(result, item)
	}
	return result, nil
}

func (r *fakeJoinRequestRepo) CreateQuestion(ctx context.Context, question *Question) error {
	r.questions[question.ID] = question
	return nil
}

func (r *fakeJoinRequestRepo) GetQuestion(ctx context.Context, questionID string) (*Question, error) {
	question, ok := r.questions[questionID]
	if !ok {
		return nil, ErrQuestionNotFound
	}
	copied := *question
	return &copied, nil
}

func (r *fakeJoinRequestRepo) ListQuestions(ctx context.Context, churchID string, activeOnly bool) ([]Question, error) {
	result := make([]Question, 0)
	for _, question := range r.questions {
		if question.ChurchID != churchID {
			continue
		}
		if activeOnly && !question.Active {
			continue
		}
		result = append(result, *question)
	}
	return result, nil
}

func (r *fakeJoinRequestRepo) UpdateQuestion(ctx context.Context, question *Question) error {
	r.questions[question.ID] = question
	return nil
}

func (r *fakeJoinRequestRepo) SetQuestionActive(ctx context.Context, questionID string, active bool) error {
	question, ok := r.questions[questionID]
	if !ok {
		return ErrQuestionNotFound
	}
	question.Active = active
	return nil
}

func (r *fakeJoinRequestRepo) DeleteQuestion(ctx context.Context, questionID string) error {
	delete(r.questions, questionID)
	return nil
}

func (r *fakeJoinRequestRepo) NextQuestionPosition(ctx context.Context, churchID string) (int, error) {
	max := 0
	for _, question := range r.questions {
		if question.ChurchID == churchID && question.Position > max {
			max = question.Position
		}
	}
	return max + 1, nil
}

func (r *fakeJoinRequestRepo) CampusBelongsToChurch(ctx context.Context, campusID, churchID string) (bool, error) {
	return r.campuses[campusID] == churchID, nil
}

func (r *fakeJoinRequestRepo) IsUserMemberOf(ctx context.Context, userID, churchID string) (bool, error) {
	m, ok := r.memberships[userID]
	return ok && m.ChurchID == churchID, nil
}

func (r *fakeJoinRequestRepo) IsUserInAnyChurch(ctx context.Context, userID string) (bool, error) {
	_, ok := r.memberships[userID]
	return ok, nil
}

func (r *fakeJoinRequestRepo) CreateMembership(ctx context.Context, m *church.Membership) error {
	if _, ok := r.memberships[m.UserID]; ok {
		return ErrAlreadyMember
	}
	r.memberships[m.UserID] = m
	return nil
}

func (r *fakeJoinRequestRepo) RecordEvent(ctx context.Context, event *church.MembershipEvent) error {
	r.events = append(r.events, *event)
	return nil
}

func (r *fakeJoinRequestRepo) ResolveActor(ctx context.Context, userID, churchID string) (*authz.Actor, error) {
	actor, ok := r.actors[userID]
	if !ok || actor.ChurchID != churchID {
		return nil, nil
	}
	return actor, nil
}

func (r *fakeJoinRequestRepo) grantRole(userID, churchID string, role authz.Role) {
	r.actors[userID] = &authz.Actor{MembershipID: "m-" + userID, UserID: userID, ChurchID: churchID, Role: role}
}

func (r *fakeJoinRequestRepo) seedPending(id, userID, churchID string) *JoinRequest {
	req := &JoinRequest{ID: id, ChurchID: churchID, UserID: userID, Status: StatusPending, CreatedAt: time.Now().UTC()}
	r.requests[id] = req
	return req
}

func newJoinRequestService(repo *fakeJoinRequestRepo) *Service {
	log := logger.New(io.Discard, slog.LevelError, "json")
	return NewService(repo, authz.NewChecker(repo), DefaultLimits(), log)
}

func TestCreateRequestSuccess(t *testing.T) {
	repo := newFakeJoinRequestRepo()
	svc := newJoinRequestService(repo)

	caller := church.Identity{UserID: "user-1", DisplayName: "Pat", Email: "pat@example.com"}
	request, err := svc.Create(context.Background(), caller, CreateInput{ChurchID: "church-1", Note: "  hello  "})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if request.Status != StatusPending {
		t.Fatalf("expected pending, got %q", request.Status)
	}
	if request.Note != "hello" {
		t.Fatalf("expected trimmed note, got %q", request.Note)
	}
	if request.DisplayName != "Pat" || request.Email != "pat@example.com" {
		t.Fatalf("expected identity snapshot, got %+v", request)
	}
}

func TestCreateRequestAlreadyMember(t *testing.T) {
	repo := newFakeJoinRequestRepo()
	repo.memberships["user-1"] = &church.Membership{UserID: "user-1", ChurchID: "church-1"}

	svc := newJoinRequestService(repo)
	_, err := svc.Create(context.Background(), church.Identity{UserID: "user-1"}, CreateInput{ChurchID: "church-1"})
	if !errors.Is(err, ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}
}

func TestCreateRequestDuplicatePending(t *testing.T) {
	repo := newFakeJoinRequestRepo()
	repo.seedPending("req-1", "user-1", "church-1")

	svc := newJoinRequestService(repo)
	_, err := svc.Create(context.Background(), church.Identity{UserID: "user-1"}, CreateInput{ChurchID: "church-1"})
	if !errors.Is(err, ErrAlreadyPending) {
		t.Fatalf("expected ErrAlreadyPending, got %v", err)
	}
}

func TestCreateRequestDenialCooldown(t *testing.T) {
	repo := newFakeJoinRequestRepo()
	for i := 0; i < 3; i++ {
		repo.denials = append(repo.denials, Denial{
			ChurchID:  "church-1",
			UserID:    "user-1",
			CreatedAt: time.Now().UTC().Add(-time.Duration(i+1) * 24 * time.Hour),
		})
	}

	svc := newJoinRequestService(repo)
	_, err := svc.Create(context.Background(), church.Identity{UserID: "user-1"}, CreateInput{ChurchID: "church-1"})
	if !errors.Is(err, ErrDenialCooldown) {
		t.Fatalf("expected ErrDenialCooldown, got %v", err)
	}
}

func TestCreateRequestOldDenialsIgnored(t *testing.T) {
	repo := newFakeJoinRequestRepo()
	for i := 0; i < 3; i++ {
		repo.denials = append(repo.denials, Denial{
			ChurchID:  "church-1",
			UserID:    "user-1",
			CreatedAt: time.Now().UTC().Add(-91 * 24 * time.Hour),
		})
	}

	svc := newJoinRequestService(repo)
	if _, err := svc.Create(context.Background(), church.Identity{UserID: "user-1"}, CreateInput{ChurchID: "church-1"}); err != nil {
		t.Fatalf("expected old denials outside the window to be ignored, got %v", err)
	}
}

func TestCreateRequestWeeklyRateLimit(t *testing.T) {
	repo := newFakeJoinRequestRepo()
	svc := newJoinRequestService(repo)

	// Denied requests to three other churches inside the past week.
	for i, churchID := range []string{"church-a", "church-b", "church-c"} {
		req := repo.seedPending("req-"+churchID, "user-1", churchID)
		req.Status = StatusDenied
		req.CreatedAt = time.Now().UTC().Add(-time.Duration(i+1) * 24 * time.Hour)
	}

	_, err := svc.Create(context.Background(), church.Identity{UserID: "user-1"}, CreateInput{ChurchID: "church-d"})
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestCreateRequestCampusMismatch(t *testing.T) {
	repo := newFakeJoinRequestRepo()
	foreign := "campus-x"
	repo.campuses[foreign] = "church-2"

	svc := newJoinRequestService(repo)
	_, err := svc.Create(context.Background(), church.Identity{UserID: "user-1"}, CreateInput{ChurchID: "church-1", CampusID: &foreign})
	if !errors.Is(err, church.ErrCampusMismatch) {
		t.Fatalf("expected ErrCampusMismatch, got %v", err)
	}
}

func TestCreateRequestRequiredAnswerMissing(t *testing.T) {
	repo := newFakeJoinRequestRepo()
	repo.questions["q-1"] = &Question{ID: "q-1", ChurchID: "church-1", Text: "Why join?", Required: true, Active: true}

	svc := newJoinRequestService(repo)
	_, err := svc.Create(context.Background(), church.Identity{UserID: "user-1"}, CreateInput{ChurchID: "church-1"})
	if !errors.Is(err, ErrAnswerRequired) {
		t.Fatalf("expected ErrAnswerRequired, got %v", err)
	}

	_, err = svc.Create(context.Background(), church.Identity{UserID: "user-1"}, CreateInput{
		ChurchID: "church-1",
		Answers:  map[string]string{"q-1": "   "},
	})
	if !errors.Is(err, ErrAnswerRequired) {
		t.Fatalf("expected ErrAnswerRequired for blank answer, got %v", err)
	}
}

func TestCreateRequestInactiveRequiredQuestionIgnored(t *testing.T) {
	repo := newFakeJoinRequestRepo()
	repo.questions["q-1"] = &Question{ID: "q-1", ChurchID: "church-1", Text: "Why join?", Required: true, Active: false}

	svc := newJoinRequestService(repo)
	if _, err := svc.Create(context.Background(), church.Identity{UserID: "user-1"}, CreateInput{ChurchID: "church-1"}); err != nil {
		t.Fatalf("expected inactive question not to block, got %v", err)
	}
}

func TestCreateRequestSavesAnswers(t *testing.T) {
	repo := newFakeJoinRequestRepo()
	repo.questions["q-1"] = &Question{ID: "q-1", ChurchID: "church-1", Text: "Why join?", Required: true, Active: true}
	repo.questions["q-2"] = &Question{ID: "q-2", ChurchID: "church-1", Text: "Anything else?", Active: true}

	svc := newJoinRequestService(repo)
	request, err := svc.Create(context.Background(), church.Identity{UserID: "user-1"}, CreateInput{
		ChurchID: "church-1",
		Answers:  map[string]string{"q-1": "community", "q-2": ""},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(repo.answers) != 1 {
		t.Fatalf("expected 1 answer saved, got %d", len(repo.answers))
	}
	if repo.answers[0].RequestID != request.ID || repo.answers[0].Text != "community" {
		t.Fatalf("unexpected answer %+v", repo.answers[0])
	}
}

func TestCreateRequestStandsWhenAnswersFail(t *testing.T) {
	repo := newFakeJoinRequestRepo()
	repo.questions["q-1"] = &Question{ID: "q-1", ChurchID: "church-1", Text: "Why join?", Required: true, Active: true}
	repo.answersErr = errors.New("answers table unavailable")

	svc := newJoinRequestService(repo)
	request, err := svc.Create(context.Background(), church.Identity{UserID: "user-1"}, CreateInput{
		ChurchID: "church-1",
		Answers:  map[string]string{"q-1": "community"},
	})
	if err != nil {
		t.Fatalf("expected request to stand, got %v", err)
	}
	if _, ok := repo.requests[request.ID]; !ok {
		t.Fatalf("expected request persisted")
	}
}

func TestApproveRequestSuccess(t *testing.T) {
	repo := newFakeJoinRequestRepo()
	repo.grantRole("mod", "church-1", authz.RoleModerator)
	repo.seedPending("req-1", "user-1", "church-1")

	svc := newJoinRequestService(repo)
	member, err := svc.Approve(context.Background(), "mod", "req-1", "welcome")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if member.Role != authz.RoleMember {
		t.Fatalf("expected member role, got %q", member.Role)
	}
	if repo.requests["req-1"].Status != StatusApproved {
		t.Fatalf("expected approved status, got %q", repo.requests["req-1"].Status)
	}
	if repo.requests["req-1"].ReviewedBy == nil || *repo.requests["req-1"].ReviewedBy != "mod" {
		t.Fatalf("expected reviewer recorded")
	}
	if len(repo.events) != 1 || repo.events[0].Action != church.EventJoined {
		t.Fatalf("expected joined event")
	}
}

func TestApproveRequestRequiresModerator(t *testing.T) {
	repo := newFakeJoinRequestRepo()
	repo.grantRole("member", "church-1", authz.RoleMember)
	repo.seedPending("req-1", "user-1", "church-1")

	svc := newJoinRequestService(repo)
	if _, err := svc.Approve(context.Background(), "member", "req-1", ""); !errors.Is(err, authz.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestApproveRequestUserJoinedElsewhere(t *testing.T) {
	repo := newFakeJoinRequestRepo()
	repo.grantRole("mod", "church-1", authz.RoleModerator)
	repo.seedPending("req-1", "user-1", "church-1")
	repo.memberships["user-1"] = &church.Membership{UserID: "user-1", ChurchID: "church-2"}

	svc := newJoinRequestService(repo)
	if _, err := svc.Approve(context.Background(), "mod", "req-1", ""); !errors.Is(err, ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}
	if repo.requests["req-1"].Status != StatusPending {
		t.Fatalf("expected request left pending, got %q", repo.requests["req-1"].Status)
	}
}

func TestApproveRequestAlreadyClosed(t *testing.T) {
	repo := newFakeJoinRequestRepo()
	repo.grantRole("mod", "church-1", authz.RoleModerator)
	req := repo.seedPending("req-1", "user-1", "church-1")
	req.Status = StatusDenied

	svc := newJoinRequestService(repo)
	if _, err := svc.Approve(context.Background(), "mod", "req-1", ""); !errors.Is(err, ErrRequestClosed) {
		t.Fatalf("expected ErrRequestClosed, got %v", err)
	}
}

func TestDenyRequestRequiresReason(t *testing.T) {
	repo := newFakeJoinRequestRepo()
	repo.grantRole("mod", "church-1", authz.RoleModerator)
	repo.seedPending("req-1", "user-1", "church-1")

	svc := newJoinRequestService(repo)
	if err := svc.Deny(context.Background(), "mod", "req-1", "   "); !errors.Is(err, ErrReasonRequired) {
		t.Fatalf("expected ErrReasonRequired, got %v", err)
	}
}

func TestDenyRequestWritesOneDenial(t *testing.T) {
	repo := newFakeJoinRequestRepo()
	repo.grantRole("mod", "church-1", authz.RoleModerator)
	repo.seedPending("req-1", "user-1", "church-1")

	svc := newJoinRequestService(repo)
	if err := svc.Deny(context.Background(), "mod", "req-1", "not a fit"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.requests["req-1"].Status != StatusDenied {
		t.Fatalf("expected denied status, got %q", repo.requests["req-1"].Status)
	}
	if len(repo.denials) != 1 {
		t.Fatalf("expected exactly one denial row, got %d", len(repo.denials))
	}
	if repo.denials[0].Reason != "not a fit" || repo.denials[0].DeniedBy != "mod" {
		t.Fatalf("unexpected denial %+v", repo.denials[0])
	}

	// A second denial of the now-closed request must not add another row.
	if err := svc.Deny(context.Background(), "mod", "req-1", "again"); !errors.Is(err, ErrRequestClosed) {
		t.Fatalf("expected ErrRequestClosed, got %v", err)
	}
	if len(repo.denials) != 1 {
		t.Fatalf("expected denial count unchanged, got %d", len(repo.denials))
	}
}

func TestCancelRequestRequesterOnly(t *testing.T) {
	repo := newFakeJoinRequestRepo()
	repo.seedPending("req-1", "user-1", "church-1")

	svc := newJoinRequestService(repo)
	if err := svc.Cancel(context.Background(), "user-2", "req-1"); !errors.Is(err, ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound for other user, got %v", err)
	}
	if err := svc.Cancel(context.Background(), "user-1", "req-1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := repo.requests["req-1"]; ok {
		t.Fatalf("expected request deleted")
	}
}

func TestCancelClosedRequestRejected(t *testing.T) {
	repo := newFakeJoinRequestRepo()
	req := repo.seedPending("req-1", "user-1", "church-1")
	req.Status = StatusApproved

	svc := newJoinRequestService(repo)
	if err := svc.Cancel(context.Background(), "user-1", "req-1"); !errors.Is(err, ErrRequestClosed) {
		t.Fatalf("expected ErrRequestClosed, got %v", err)
	}
}

func TestListRequestsStatusFilterAndAnswers(t *testing.T) {
	repo := newFakeJoinRequestRepo()
	repo.grantRole("mod", "church-1", authz.RoleModerator)
	repo.seedPending("req-1", "user-1", "church-1")
	denied := repo.seedPending("req-2", "user-2", "church-1")
	denied.Status = StatusDenied
	repo.questions["q-1"] = &Question{ID: "q-1", ChurchID: "church-1", Text: "Why join?", Required: true, Active: true}
	repo.answers = append(repo.answers, Answer{ID: "a-1", RequestID: "req-1", QuestionID: "q-1", Text: "community"})

	svc := newJoinRequestService(repo)
	if _, err := svc.List(context.Background(), "mod", "church-1", "bogus"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}

	pending, err := svc.List(context.Background(), "mod", "church-1", StatusPending)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(pending) != 1 || pending[0].Request.ID != "req-1" {
		t.Fatalf("expected only req-1 pending, got %+v", pending)
	}
	if len(pending[0].Answers) != 1 || pending[0].Answers[0].QuestionText != "Why join?" {
		t.Fatalf("expected answer joined with question text, got %+v", pending[0].Answers)
	}

	all, err := svc.List(context.Background(), "mod", "church-1", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected both requests, got %d", len(all))
	}
}

func TestQuestionnaireLifecycle(t *testing.T) {
	repo := newFakeJoinRequestRepo()
	repo.grantRole("owner", "church-1", authz.RoleOwner)
	repo.grantRole("member", "church-1", authz.RoleMember)

	svc := newJoinRequestService(repo)

	question, err := svc.CreateQuestion(context.Background(), "owner", "church-1", "  Why join?  ", true)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if question.Text != "Why join?" || !question.Required || !question.Active {
		t.Fatalf("unexpected question %+v", question)
	}
	if question.Position != 1 {
		t.Fatalf("expected position 1, got %d", question.Position)
	}

	second, err := svc.CreateQuestion(context.Background(), "owner", "church-1", "Anything else?", false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if second.Position != 2 {
		t.Fatalf("expected position 2, got %d", second.Position)
	}

	if _, err := svc.CreateQuestion(context.Background(), "owner", "church-1", "   ", false); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank question text, got %v", err)
	}
	if _, err := svc.CreateQuestion(context.Background(), "member", "church-1", "Nope", false); !errors.Is(err, authz.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	toggled, err := svc.ToggleQuestion(context.Background(), "owner", question.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if toggled.Active {
		t.Fatalf("expected question deactivated")
	}

	// Members see only active questions; owners see everything.
	memberView, err := svc.ListQuestions(context.Background(), "member", "church-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(memberView) != 1 {
		t.Fatalf("expected 1 active question for member, got %d", len(memberView))
	}
	ownerView, err := svc.ListQuestions(context.Background(), "owner", "church-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(ownerView) != 2 {
		t.Fatalf("expected 2 questions for owner, got %d", len(ownerView))
	}

	if err := svc.DeleteQuestion(context.Background(), "owner", question.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := repo.questions[question.ID]; ok {
		t.Fatalf("expected question deleted")
	}
}

func TestPublicQuestionsActiveOnly(t *testing.T) {
	repo := newFakeJoinRequestRepo()
	repo.questions["q-1"] = &Question{ID: "q-1", ChurchID: "church-1", Text: "Why join?", Active: true}
	repo.questions["q-2"] = &Question{ID: "q-2", ChurchID: "church-1", Text: "Old", Active: false}

	svc := newJoinRequestService(repo)
	questions, err := svc.PublicQuestions(context.Background(), "church-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(questions) != 1 || questions[0].ID != "q-1" {
		t.Fatalf("expected only the active question, got %+v", questions)
	}
}
