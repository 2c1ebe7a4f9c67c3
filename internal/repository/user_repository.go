package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "userapi/internal/errors"
	"userapi/internal/model"
)

// UserRepository defines persistence operations.
type UserRepository interface {
	List(ctx context.Context) ([]model.User, error)
	Create(ctx context.Context, name, email string) (*model.User, error)
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// List returns every row in storage order. The slice is never nil.
func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	users := make([]model.User, 0)
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *userRepository) Create(ctx context.Context, name, email string) (*model.User, error) {
	user := &model.User{Name: name, Email: email}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

// Delete removes the user with id. A missing row is not an error.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&model.User{}, id).Error; err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}

func (r *userRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	return nil
}
