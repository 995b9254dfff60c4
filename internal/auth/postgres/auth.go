package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/talenthub/talent-hub/internal"
	"github.com/talenthub/talent-hub/internal/auth"
	userModel "github.com/talenthub/talent-hub/internal/core/datamodel/user"
)

// AuthRepository implements auth.Repository using GORM.
type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) auth.Repository {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) GetByEmail(email string) (string, *auth.User, error) {
	var m userModel.User
	err := r.db.Where("email = ?", email).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, internal.ErrUserNotFound
		}
		return "", nil, internal.NewStorageError("failed to load user", err)
	}
	return m.PasswordHash, auth.FromDataModel(&m), nil
}

func (r *AuthRepository) GetByID(userID int64) (*auth.User, error) {
	var m userModel.User
	err := r.db.Where("id = ?", userID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, internal.NewStorageError("failed to load user", err)
	}
	return auth.FromDataModel(&m), nil
}
