// Package user serves employee profiles: self-service profile edits, profile
// photos and the admin-side role and department assignments.
package user

import (
	userModel "github.com/talenthub/talent-hub/internal/core/datamodel/user"
)

type User = userModel.User

// Repository is the persistence contract for user profiles.
type Repository interface {
	GetByID(id int64) (*User, error)
	Update(user *User) error
	ListAll() ([]User, error)
}
