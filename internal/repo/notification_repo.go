package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"nemukerja/internal/domain"
)

type NotificationRepo struct{ db *gorm.DB }

func (r *NotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NotificationRepo) FindByID(ctx context.Context, id string) (*domain.Notification, error) {
	var n domain.Notification
	err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &n, err
}

func (r *NotificationRepo) Latest(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	var ns []domain.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").Limit(limit).Find(&ns).Error
	return ns, err
}

func (r *NotificationRepo) MarkRead(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&domain.Notification{}).
		Where("id = ?", id).Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Model(&domain.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

func (r *NotificationRepo) DeleteAll(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Delete(&domain.Notification{}, "user_id = ?", userID).Error
}
