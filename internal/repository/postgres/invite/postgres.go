package invite

import (
	"context"
	"errors"
	"time"

	churchdomain "church-hub-go/internal/domain/church"
	invitedomain "church-hub-go/internal/domain/invite"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(invitedomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CreateInvite(ctx context.Context, inv *invitedomain.Invite) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, inviteID string) (*invitedomain.Invite, error) {
	var inv invitedomain.Invite
	if err := r.db.WithContext(ctx).Where("id = ?", inviteID).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invitedomain.ErrInviteNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (r *PostgresRepository) GetActiveByCode(ctx context.Context, code string) (*invitedomain.Invite, error) {
	var inv invitedomain.Invite
	if err := r.db.WithContext(ctx).Where("code = ? AND active = ?", code, true).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invitedomain.ErrInviteInvalid
		}
		return nil, err
	}
	return &inv, nil
}

func (r *PostgresRepository) ListByChurch(ctx context.Context, churchID string) ([]invitedomain.Invite, error) {
	var invites []invitedomain.Invite
	if err := r.db.WithContext(ctx).
		Where("church_id = ?", churchID).
		Order("created_at desc").
		Find(&invites).Error; err != nil {
		return nil, err
	}
	return invites, nil
}

func (r *PostgresRepository) Deactivate(ctx context.Context, inviteID string) error {
	return r.db.WithContext(ctx).Model(&invitedomain.Invite{}).Where("id = ?", inviteID).
		Update("active", false).Error
}

func (r *PostgresRepository) IsCodeTaken(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&invitedomain.Invite{}).
		Where("code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ConsumeUse is a single conditional update; zero affected rows means the
// invite was inactive, expired or exhausted by the time the write ran.
func (r *PostgresRepository) ConsumeUse(ctx context.Context, inviteID string, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		"UPDATE invites SET used_count = used_count + 1 "+
			"WHERE id = ? AND active = TRUE "+
			"AND (expires_at IS NULL OR expires_at > ?) "+
			"AND (max_uses IS NULL OR used_count < max_uses)",
		inviteID, now)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) CampusBelongsToChurch(ctx context.Context, campusID, churchID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&churchdomain.Campus{}).
		Where("id = ? AND church_id = ?", campusID, churchID).Count(&count).Error; err != nil {
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
		return churchdomain.ErrAlreadyInChurch
	}
	return err
}

func (r *PostgresRepository) RecordEvent(ctx context.Context, event *churchdomain.MembershipEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}
