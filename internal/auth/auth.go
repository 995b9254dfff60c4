package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/talenthub/talent-hub/internal/competency"
	userModel "github.com/talenthub/talent-hub/internal/core/datamodel/user"
)

// User is the fully resolved identity attached to every authenticated
// request: role, department, position and competency set. Downstream
// services receive this and never re-resolve.
type User struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Role         string         `json:"role"`
	Department   string         `json:"department"`
	Position     string         `json:"position"`
	Competencies competency.Set `json:"competencies"`
}

func (u *User) IsAdmin() bool {
	return u.Role == userModel.RoleAdmin
}

func (u *User) IsManager() bool {
	return u.Role == userModel.RoleManager
}

// IsApprover reports whether the user may review requests at all.
func (u *User) IsApprover() bool {
	return u.IsManager() || u.IsAdmin()
}

// ManagesDepartment reports whether the user is a manager of the given
// department, or an admin.
func (u *User) ManagesDepartment(department string) bool {
	if u.IsAdmin() {
		return true
	}
	return u.IsManager() && u.Department == department
}

func FromDataModel(m *userModel.User) *User {
	return &User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		Role:         m.Role,
		Department:   m.Department,
		Position:     m.Position,
		Competencies: m.Competencies,
	}
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Claims represents JWT token claims
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	Secret          []byte
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}
