package joinrequest

import (
	"context"
	"errors"
	"time"

	churchdomain "church-hub-go/internal/domain/church"
	requestdomain "church-hub-go/internal/domain/joinrequest"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(requestdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CreateRequest(ctx context.Context, req *requestdomain.JoinRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *PostgresRepository) GetRequest(ctx context.Context, requestID string) (*requestdomain.JoinRequest, error) {
	var req requestdomain.JoinRequest
	if err := r.db.WithContext(ctx).Where("id = ?", requestID).First(&req).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, requestdomain.ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *PostgresRepository) ListRequests(ctx context.Context, churchID, status string) ([]requestdomain.JoinRequest, error) {
	q := r.db.WithContext(ctx).Where("church_id = ?", churchID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var requests []requestdomain.JoinRequest
	if err := q.Order("created_at desc").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *PostgresRepository) MarkReviewed(ctx context.Context, requestID, status, reviewerID, note string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&requestdomain.JoinRequest{}).Where("id = ?", requestID).
		Updates(map[string]interface{}{
			"status":      status,
			"reviewed_by": reviewerID,
			"reviewed_at": at,
			"review_note": note,
		}).Error
}

func (r *PostgresRepository) DeleteRequest(ctx context.Context, requestID string) error {
	return r.db.WithContext(ctx).Delete(&requestdomain.JoinRequest{}, "id = ?", requestID).Error
}

func (r *PostgresRepository) HasPendingRequest(ctx context.Context, userID, churchID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&requestdomain.JoinRequest{}).
		Where("user_id = ? AND church_id = ? AND status = ?", userID, churchID, requestdomain.StatusPending).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) CountRequestsSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&requestdomain.JoinRequest{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) CreateDenial(ctx context.Context, denial *requestdomain.Denial) error {
	return r.db.WithContext(ctx).Create(denial).Error
}

func (r *PostgresRepository) CountDenialsSince(ctx context.Context, userID, churchID string, since time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&requestdomain.Denial{}).
		Where("user_id = ? AND church_id = ? AND created_at >= ?", userID, churchID, since).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) CreateAnswers(ctx context.Context, answers []requestdomain.Answer) error {
	if len(answers) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&answers).Error
}

func (r *PostgresRepository) ListAnswers(ctx context.Context, requestIDs []string) ([]requestdomain.AnsweredQuestion, error) {
	var rows []struct {
		RequestID    string `gorm:"column:request_id"`
		QuestionID   string `gorm:"column:question_id"`
		QuestionText string `gorm:"column:question_text"`
		Required     bool   `gorm:"column:required"`
		Answer       string `gorm:"column:answer"`
	}
	if err := r.db.WithContext(ctx).Raw(
		"SELECT a.request_id, a.question_id, q.text AS question_text, q.required, a.text AS answer "+
			"FROM questionnaire_answers a "+
			"JOIN questionnaire_questions q ON q.id = a.question_id "+
			"WHERE a.request_id IN (?) ORDER BY q.position ASC",
		requestIDs).Scan(&rows).Error; err != nil {
		return nil, err
	}

	answers := make([]requestdomain.AnsweredQuestion, 0, len(rows))
	for _, row := range rows {
		answers = append(answers, requestdomain.AnsweredQuestion{
			RequestID:    row.RequestID,
			QuestionID:   row.QuestionID,
			QuestionText: row.QuestionText,
			Required:     row.Required,
			Answer:       row.Answer,
		})
	}
	return answers, nil
}

func (r *PostgresRepository) CreateQuestion(ctx context.Context, question *requestdomain.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

func (r *PostgresRepository) GetQuestion(ctx context.Context, questionID string) (*requestdomain.Question, error) {
	var question requestdomain.Question
	if err := r.db.WithContext(ctx).Where("id = ?", questionID).First(&question).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, requestdomain.ErrQuestionNotFound
		}
		return nil, err
	}
	return &question, nil
}

func (r *PostgresRepository) ListQuestions(ctx context.Context, churchID string, activeOnly bool) ([]requestdomain.Question, error) {
	q := r.db.WithContext(ctx).Where("church_id = ?", churchID)
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var questions []requestdomain.Question
	if err := q.Order("position asc").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *PostgresRepository) UpdateQuestion(ctx context.Context, question *requestdomain.Question) error {
	return r.db.WithContext(ctx).Model(&requestdomain.Question{}).Where("id = ?", question.ID).
		Updates(map[string]interface{}{
			"text":     question.Text,
			"required": question.Required,
		}).Error
}

func (r *PostgresRepository) SetQuestionActive(ctx context.Context, questionID string, active bool) error {
	return r.db.WithContext(ctx).Model(&requestdomain.Question{}).Where("id = ?", questionID).
		Update("active", active).Error
}

func (r *PostgresRepository) DeleteQuestion(ctx context.Context, questionID string) error {
	return r.db.WithContext(ctx).Delete(&requestdomain.Question{}, "id = ?", questionID).Error
}

func (r *PostgresRepository) NextQuestionPosition(ctx context.Context, churchID string) (int, error) {
	var max struct {
		Position int `gorm:"column:position"`
	}
	if err := r.db.WithContext(ctx).Raw(
		"SELECT COALESCE(MAX(position), 0) AS position FROM questionnaire_questions WHERE church_id = ?",
		churchID).Scan(&max).Error; err != nil {
		return 0, err
	}
	return max.Position + 1, nil
}

func (r *PostgresRepository) CampusBelongsToChurch(ctx context.Context, campusID, churchID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&churchdomain.Campus{}).
		Where("id = ? AND church_id = ?", campusID, churchID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) IsUserMemberOf(ctx context.Context, userID, churchID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&churchdomain.Membership{}).
		Where("user_id = ? AND church_id = ?", userID, churchID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) IsUserInAnyChurch(ctx context.Context, userID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&churchdomain.Membership{}).
		Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) CreateMembership(ctx context.Context, m *churchdomain.Membership) error {
	err := r.db.WithContext(ctx).Create(m).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return requestdomain.ErrAlreadyMember
	}
	return err
}

func (r *PostgresRepository) RecordEvent(ctx context.Context, event *churchdomain.MembershipEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}
