package roster

import (
	"context"
	"errors"

	rosterdomain "church-hub-go/internal/domain/roster"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateEntry(ctx context.Context, entry *rosterdomain.Entry) error {
	err := r.db.WithContext(ctx).Create(entry).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return rosterdomain.ErrDuplicateEntry
	}
	return err
}

func (r *PostgresRepository) GetEntry(ctx context.Context, entryID string) (*rosterdomain.Entry, error) {
	var entry rosterdomain.Entry
	if err := r.db.WithContext(ctx).Where("id = ?", entryID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rosterdomain.ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *PostgresRepository) ListEntries(ctx context.Context, churchID string, kind rosterdomain.Kind) ([]rosterdomain.Entry, error) {
	var entries []rosterdomain.Entry
	if err := r.db.WithContext(ctx).
		Where("church_id = ? AND kind = ?", churchID, kind).
		Order("created_at asc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *PostgresRepository) UpdateEntry(ctx context.Context, entry *rosterdomain.Entry) error {
	return r.db.WithContext(ctx).Model(&rosterdomain.Entry{}).Where("id = ?", entry.ID).
		Updates(map[string]interface{}{
			"name":  entry.Name,
			"role":  entry.Role,
			"notes": entry.Notes,
		}).Error
}

func (r *PostgresRepository) SetEntryActive(ctx context.Context, entryID string, active bool) error {
	return r.db.WithContext(ctx).Model(&rosterdomain.Entry{}).Where("id = ?", entryID).
		Update("active", active).Error
}

func (r *PostgresRepository) DeleteEntry(ctx context.Context, entryID string) error {
	return r.db.WithContext(ctx).Delete(&rosterdomain.Entry{}, "id = ?", entryID).Error
}

func (r *PostgresRepository) HasUserEntry(ctx context.Context, churchID string, kind rosterdomain.Kind, userID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&rosterdomain.Entry{}).
		Where("church_id = ? AND kind = ? AND user_id = ?", churchID, kind, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
