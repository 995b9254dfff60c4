package user

import (
	"time"

	"github.com/talenthub/talent-hub/internal/competency"
)

// Role values. Every stored user has exactly one.
const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

type User struct {
	ID           int64          `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"not null"`
	Email        string         `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string         `json:"-" gorm:"column:password_hash;not null"`
	Role         string         `json:"role" gorm:"not null;default:employee"`
	Department   string         `json:"department"`
	Position     string         `json:"position"`
	Photo        *string        `json:"photo,omitempty"`
	Competencies competency.Set `json:"competencies" gorm:"type:text;not null;default:'[]'"`
	Birthdate    *time.Time     `json:"birthdate,omitempty" gorm:"type:date"`
	Gender       *string        `json:"gender,omitempty"`
	Experience   *int           `json:"experience,omitempty"`
	CreatedAt    time.Time      `json:"created_at" gorm:"default:now()"`
	UpdatedAt    time.Time      `json:"updated_at" gorm:"default:now()"`
}

func (User) TableName() string {
	return "users"
}
