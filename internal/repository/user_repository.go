package repository

import (
	"context"

	"gorm.io/gorm"

	"hsavault/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	CreateTx(ctx context.Context, tx interface{}, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateTx creates a user within a database transaction. Users are only ever
// created together with their account, so there is no standalone Create.
func (r *userRepository) CreateTx(ctx context.Context, tx interface{}, user *model.User) error {
	txDB := tx.(*gorm.DB)
	return txDB.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
