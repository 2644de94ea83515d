package repository

import (
	"context"

	apperrors "travel-app/errors"
	"travel-app/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, mapDBError(err, apperrors.ErrUserNotFound)
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, mapDBError(err, apperrors.ErrUserNotFound)
	}
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return mapDBError(err, nil)
	}
	return nil
}

// FirstOrCreate tìm user theo email, tạo mới nếu chưa có
func (r *UserRepository) FirstOrCreate(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).
		Where(models.User{Email: user.Email}).
		Attrs(models.User{Name: user.Name, Password: user.Password}).
		FirstOrCreate(user).Error
	return mapDBError(err, nil)
}
