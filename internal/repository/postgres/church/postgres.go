package church

import (
	"context"
	"errors"
	"time"

	"church-hub-go/internal/domain/authz"
	churchdomain "church-hub-go/internal/domain/church"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(churchdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

// ResolveActor implements authz.Resolver for the capability checker.
func (r *PostgresRepository) ResolveActor(ctx context.Context, userID, churchID string) (*authz.Actor, error) {
	var member churchdomain.Membership
	err := r.db.WithContext(ctx).Where("user_id = ? AND church_id = ?", userID, churchID).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &authz.Actor{
		MembershipID: member.ID,
		UserID:       member.UserID,
		ChurchID:     member.ChurchID,
		CampusID:     member.CampusID,
		Role:         member.Role,
	}, nil
}

func (r *PostgresRepository) CreateChurch(ctx context.Context, c *churchdomain.Church) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *PostgresRepository) GetChurch(ctx context.Context, churchID string) (*churchdomain.Church, error) {
	var result churchdomain.Church
	if err := r.db.WithContext(ctx).Where("id = ?", churchID).First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, churchdomain.ErrChurchNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (r *PostgresRepository) UpdateChurch(ctx context.Context, churchID, name, description string) error {
	return r.db.WithContext(ctx).Model(&churchdomain.Church{}).Where("id = ?", churchID).
		Updates(map[string]interface{}{"name": name, "description": description}).Error
}

func (r *PostgresRepository) SetVisibility(ctx context.Context, churchID string, public bool) error {
	return r.db.WithContext(ctx).Model(&churchdomain.Church{}).Where("id = ?", churchID).
		Update("public", public).Error
}

func (r *PostgresRepository) UpdateChurchOwner(ctx context.Context, churchID, ownerID string) error {
	return r.db.WithContext(ctx).Model(&churchdomain.Church{}).Where("id = ?", churchID).
		Update("owner_id", ownerID).Error
}

func (r *PostgresRepository) DeleteChurch(ctx context.Context, churchID string) error {
	return r.db.WithContext(ctx).Delete(&churchdomain.Church{}, "id = ?", churchID).Error
}

func (r *PostgresRepository) SearchPublic(ctx context.Context, query, zipCode string) ([]churchdomain.ChurchWithCampuses, error) {
	q := r.db.WithContext(ctx).Model(&churchdomain.Church{}).Where("churches.public = ?", true)
	if query != "" {
		pattern := "%" + query + "%"
		q = q.Where("churches.name ILIKE ? OR churches.description ILIKE ?", pattern, pattern)
	}
	if zipCode != "" {
		q = q.Distinct("churches.*").
			Joins("join campuses on campuses.church_id = churches.id").
			Where("campuses.zip_code = ?", zipCode)
	}

	var churches []churchdomain.Church
	if err := q.Find(&churches).Error; err != nil {
		return nil, err
	}
	if len(churches) == 0 {
		return []churchdomain.ChurchWithCampuses{}, nil
	}

	ids := make([]string, 0, len(churches))
	for _, c := range churches {
		ids = append(ids, c.ID)
	}

	var campuses []churchdomain.Campus
	if err := r.db.WithContext(ctx).Where("church_id IN (?)", ids).Find(&campuses).Error; err != nil {
		return nil, err
	}
	byChurch := make(map[string][]churchdomain.Campus, len(churches))
	for _, campus := range campuses {
		byChurch[campus.ChurchID] = append(byChurch[campus.ChurchID], campus)
	}

	result := make([]churchdomain.ChurchWithCampuses, 0, len(churches))
	for _, c := range churches {
		result = append(result, churchdomain.ChurchWithCampuses{Church: c, Campuses: byChurch[c.ID]})
	}
	return result, nil
}

func (r *PostgresRepository) CreateCampus(ctx context.Context, campus *churchdomain.Campus) error {
	return r.db.WithContext(ctx).Create(campus).Error
}

func (r *PostgresRepository) GetCampus(ctx context.Context, campusID string) (*churchdomain.Campus, error) {
	var campus churchdomain.Campus
	if err := r.db.WithContext(ctx).Where("id = ?", campusID).First(&campus).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, churchdomain.ErrCampusNotFound
		}
		return nil, err
	}
	return &campus, nil
}

func (r *PostgresRepository) ListCampuses(ctx context.Context, churchID string) ([]churchdomain.Campus, error) {
	var campuses []churchdomain.Campus
	if err := r.db.WithContext(ctx).
		Where("church_id = ?", churchID).
		Order("created_at asc").
		Find(&campuses).Error; err != nil {
		return nil, err
	}
	return campuses, nil
}

func (r *PostgresRepository) UpdateCampus(ctx context.Context, campus *churchdomain.Campus) error {
	return r.db.WithContext(ctx).Model(&churchdomain.Campus{}).Where("id = ?", campus.ID).
		Updates(map[string]interface{}{
			"name":      campus.Name,
			"location":  campus.Location,
			"address":   campus.Address,
			"zip_code":  campus.ZipCode,
			"latitude":  campus.Latitude,
			"longitude": campus.Longitude,
		}).Error
}

// DeleteCampus first unassigns memberships referencing the campus.
func (r *PostgresRepository) DeleteCampus(ctx context.Context, campusID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&churchdomain.Membership{}).Where("campus_id = ?", campusID).
			Update("campus_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&churchdomain.Campus{}, "id = ?", campusID).Error
	})
}

func (r *PostgresRepository) CreateMembership(ctx context.Context, m *churchdomain.Membership) error {
	err := r.db.WithContext(ctx).Create(m).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return churchdomain.ErrAlreadyInChurch
	}
	return err
}

func (r *PostgresRepository) GetMembership(ctx context.Context, membershipID string) (*churchdomain.Membership, error) {
	var member churchdomain.Membership
	if err := r.db.WithContext(ctx).Where("id = ?", membershipID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, churchdomain.ErrMembershipNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *PostgresRepository) GetMembershipByUser(ctx context.Context, userID string) (*churchdomain.Membership, error) {
	var member churchdomain.Membership
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, churchdomain.ErrMembershipNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *PostgresRepository) ListMembers(ctx context.Context, churchID string) ([]churchdomain.Membership, error) {
	var members []churchdomain.Membership
	if err := r.db.WithContext(ctx).
		Where("church_id = ?", churchID).
		Order("joined_at asc").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *PostgresRepository) UpdateMembershipRole(ctx context.Context, membershipID string, role string) error {
	return r.db.WithContext(ctx).Model(&churchdomain.Membership{}).Where("id = ?", membershipID).
		Update("role", role).Error
}

func (r *PostgresRepository) UpdateMembershipCampus(ctx context.Context, membershipID string, campusID *string) error {
	return r.db.WithContext(ctx).Model(&churchdomain.Membership{}).Where("id = ?", membershipID).
		Update("campus_id", campusID).Error
}

func (r *PostgresRepository) DeleteMembership(ctx context.Context, membershipID string) error {
	return r.db.WithContext(ctx).Delete(&churchdomain.Membership{}, "id = ?", membershipID).Error
}

// CountOwners locks the church's owner rows so a concurrent demotion cannot
// pass the same count.
func (r *PostgresRepository) CountOwners(ctx context.Context, churchID string) (int64, error) {
	var ids []string
	if err := r.db.WithContext(ctx).Model(&churchdomain.Membership{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("church_id = ? AND role = ?", churchID, string(authz.RoleOwner)).
		Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}

func (r *PostgresRepository) IsUserInAnyChurch(ctx context.Context, userID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&churchdomain.Membership{}).
		Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) RecordEvent(ctx context.Context, event *churchdomain.MembershipEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *PostgresRepository) Analytics(ctx context.Context, churchID string, joinedSince time.Time) (*churchdomain.Analytics, error) {
	result := churchdomain.Analytics{MembersByRole: map[string]int64{}}

	if err := r.db.WithContext(ctx).Model(&churchdomain.Membership{}).
		Where("church_id = ?", churchID).Count(&result.TotalMembers).Error; err != nil {
		return nil, err
	}

	var roleRows []struct {
		Role  string `gorm:"column:role"`
		Count int64  `gorm:"column:count"`
	}
	if err := r.db.WithContext(ctx).Raw(
		"SELECT role, COUNT(*) AS count FROM memberships WHERE church_id = ? GROUP BY role",
		churchID).Scan(&roleRows).Error; err != nil {
		return nil, err
	}
	for _, row := range roleRows {
		result.MembersByRole[row.Role] = row.Count
	}

	var campusRows []struct {
		CampusID   *string `gorm:"column:campus_id"`
		CampusName string  `gorm:"column:campus_name"`
		Count      int64   `gorm:"column:count"`
	}
	if err := r.db.WithContext(ctx).Raw(
		"SELECT m.campus_id, COALESCE(c.name, '') AS campus_name, COUNT(*) AS count "+
			"FROM memberships m LEFT JOIN campuses c ON c.id = m.campus_id "+
			"WHERE m.church_id = ? GROUP BY m.campus_id, c.name ORDER BY count DESC",
		churchID).Scan(&campusRows).Error; err != nil {
		return nil, err
	}
	for _, row := range campusRows {
		result.MembersByCampus = append(result.MembersByCampus, churchdomain.CampusCount{
			CampusID:   row.CampusID,
			CampusName: row.CampusName,
			Count:      row.Count,
		})
	}

	if err := r.db.WithContext(ctx).Model(&churchdomain.Membership{}).
		Where("church_id = ? AND joined_at >= ?", churchID, joinedSince).
		Count(&result.JoinedLast30Days).Error; err != nil {
		return nil, err
	}

	var requestRows []struct {
		Status string `gorm:"column:status"`
		Count  int64  `gorm:"column:count"`
	}
	if err := r.db.WithContext(ctx).Raw(
		"SELECT status, COUNT(*) AS count FROM join_requests WHERE church_id = ? GROUP BY status",
		churchID).Scan(&requestRows).Error; err != nil {
		return nil, err
	}
	for _, row := range requestRows {
		switch row.Status {
		case "pending":
			result.PendingRequests = row.Count
		case "approved":
			result.ApprovedRequests = row.Count
		case "denied":
			result.DeniedRequests = row.Count
		}
	}

	return &result, nil
}
