package users

import (
	"context"
	"time"

	"github.com/khanghh/signup/model"
	"gorm.io/gorm"
)

type PendingUserRepository interface {
	FirstActive(ctx context.Context, email string, createdAfter time.Time) (*model.PendingUser, error)
	Create(ctx context.Context, user *model.PendingUser) error
	Approve(ctx context.Context, id uint) (int64, error)
	DeleteByEmail(ctx context.Context, email string) error
}

type pendingUserRepository struct {
	db *gorm.DB
}

func (r *pendingUserRepository) FirstActive(ctx context.Context, email string, createdAfter time.Time) (*model.PendingUser, error) {
	var pending model.PendingUser
	err := r.db.WithContext(ctx).
		Where("email = ? AND approved = ? AND created_at > ?", email, false, createdAfter).
		Order("created_at DESC").
		First(&pending).Error
	if err != nil {
		return nil, err
	}
	return &pending, nil
}

func (r *pendingUserRepository) Create(ctx context.Context, user *model.PendingUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Approve marks the pending user approved and soft deletes it.
func (r *pendingUserRepository) Approve(ctx context.Context, id uint) (int64, error) {
	ret := r.db.WithContext(ctx).Model(&model.PendingUser{}).
		Where("id = ? AND approved = ?", id, false).
		Updates(map[string]interface{}{
			"approved":   true,
			"deleted_at": time.Now(),
		})
	return ret.RowsAffected, ret.Error
}

func (r *pendingUserRepository) DeleteByEmail(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Where("email = ?", email).Delete(&model.PendingUser{}).Error
}

func NewPendingUserRepository(db *gorm.DB) PendingUserRepository {
	return &pendingUserRepository{db}
}
