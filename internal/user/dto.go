package user

import (
	"strings"
	"time"

	"github.com/talenthub/talent-hub/internal"
	userModel "github.com/talenthub/talent-hub/internal/core/datamodel/user"
)

const dateLayout = "2006-01-02"

// UpdateProfileDTO carries a self-service profile update. Nil fields are
// left untouched. Role, department and competencies are not editable here.
type UpdateProfileDTO struct {
	Name       *string `json:"name"`
	Position   *string `json:"position"`
	Birthdate  *string `json:"birthdate"`
	Gender     *string `json:"gender"`
	Experience *int    `json:"experience"`
}

func (d UpdateProfileDTO) Validate() error {
	if d.Name != nil && strings.TrimSpace(*d.Name) == "" {
		return internal.NewValidationFieldError("name", "name cannot be empty", internal.ErrCodeValidationFailed)
	}
	if d.Birthdate != nil && *d.Birthdate != "" {
		if _, err := time.Parse(dateLayout, *d.Birthdate); err != nil {
			return internal.NewValidationFieldError("birthdate", "birthdate must be YYYY-MM-DD", internal.ErrCodeInvalidDate)
		}
	}
	if d.Experience != nil && *d.Experience < 0 {
		return internal.NewValidationFieldError("experience", "experience cannot be negative", internal.ErrCodeValidationFailed)
	}
	return nil
}

func (d UpdateProfileDTO) Apply(u *User) {
	if d.Name != nil {
		u.Name = *d.Name
	}
	if d.Position != nil {
		u.Position = *d.Position
	}
	if d.Birthdate != nil {
		if *d.Birthdate == "" {
			u.Birthdate = nil
		} else {
			t, _ := time.Parse(dateLayout, *d.Birthdate)
			u.Birthdate = &t
		}
	}
	if d.Gender != nil {
		u.Gender = d.Gender
	}
	if d.Experience != nil {
		u.Experience = d.Experience
	}
}

// AssignRoleDTO is the admin-side role and department change.
type AssignRoleDTO struct {
	Role       *string `json:"role"`
	Department *string `json:"department"`
}

func (d AssignRoleDTO) Validate() error {
	if d.Role == nil && d.Department == nil {
		return internal.NewValidationError("nothing to update", internal.ErrCodeValidationFailed)
	}
	if d.Role != nil {
		switch *d.Role {
		case userModel.RoleEmployee, userModel.RoleManager, userModel.RoleAdmin:
		default:
			return internal.NewValidationFieldError("role", "unknown role "+*d.Role, internal.ErrCodeValidationFailed)
		}
	}
	return nil
}
