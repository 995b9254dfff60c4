package request

import "time"

// Status domain shared by course and project requests: pending is the only
// non-terminal state.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// CourseRequest is an enrollment request edge between a user and a course.
// (user_id, course_id) carries a unique index; the storage conflict is the
// duplicate guard.
type CourseRequest struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"column:user_id;not null;uniqueIndex:idx_course_requests_user_course"`
	CourseID  int64     `json:"course_id" gorm:"column:course_id;not null;uniqueIndex:idx_course_requests_user_course"`
	Status    string    `json:"status" gorm:"not null;default:pending"`
	CreatedAt time.Time `json:"created_at" gorm:"default:now()"`
	UpdatedAt time.Time `json:"updated_at" gorm:"default:now()"`
}

func (CourseRequest) TableName() string {
	return "course_requests"
}

// ProjectRequest is a staffing request edge between a user and a project.
type ProjectRequest struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"column:user_id;not null;uniqueIndex:idx_project_requests_user_project"`
	ProjectID int64     `json:"project_id" gorm:"column:project_id;not null;uniqueIndex:idx_project_requests_user_project"`
	Status    string    `json:"status" gorm:"not null;default:pending"`
	CreatedAt time.Time `json:"created_at" gorm:"default:now()"`
	UpdatedAt time.Time `json:"updated_at" gorm:"default:now()"`
}

func (ProjectRequest) TableName() string {
	return "project_requests"
}

func IsTerminal(status string) bool {
	return status == StatusApproved || status == StatusRejected
}
