package users

import (
	"context"
	"time"

	"github.com/khanghh/signup/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	First(ctx context.Context, conds ...any) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	UpdateLastLogin(ctx context.Context, userID uint, loginTime time.Time) error
}

type userRepository struct {
	db *gorm.DB
}

func (r *userRepository) First(ctx context.Context, conds ...any) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, conds...).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, userID uint, loginTime time.Time) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Update("last_login_at", loginTime).Error
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db}
}
