package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/talenthub/talent-hub/internal"
	"github.com/talenthub/talent-hub/internal/user"
)

// UserRepository implements user.Repository using GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(id int64) (*user.User, error) {
	var u user.User
	if err := r.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, internal.NewStorageError("failed to get user", err)
	}
	return &u, nil
}

func (r *UserRepository) Update(u *user.User) error {
	if err := r.db.Save(u).Error; err != nil {
		return internal.NewStorageError("failed to update user", err)
	}
	return nil
}

func (r *UserRepository) ListAll() ([]user.User, error) {
	var users []user.User
	if err := r.db.Order("name ASC").Find(&users).Error; err != nil {
		return nil, internal.NewStorageError("failed to list users", err)
	}
	return users, nil
}
