package request

import (
	"context"
	"time"

	courseModel "github.com/talenthub/talent-hub/internal/core/datamodel/course"
	projectModel "github.com/talenthub/talent-hub/internal/core/datamodel/project"
	requestModel "github.com/talenthub/talent-hub/internal/core/datamodel/request"
	"github.com/talenthub/talent-hub/internal/notification"
)

type (
	CourseRequest  = requestModel.CourseRequest
	ProjectRequest = requestModel.ProjectRequest
)

// CourseRequestDetail joins a course request with the requester and course
// attributes approvers need to render and authorize it.
type CourseRequestDetail struct {
	CourseRequest
	UserName       string  `json:"user_name"`
	UserDepartment string  `json:"user_department"`
	CourseTitle    string  `json:"course_title"`
	CourseLink     *string `json:"course_link,omitempty"`
}

// ProjectRequestDetail joins a project request with requester and project
// attributes.
type ProjectRequestDetail struct {
	ProjectRequest
	UserName       string `json:"user_name"`
	UserDepartment string `json:"user_department"`
	ProjectTitle   string `json:"project_title"`
	ManagerID      int64  `json:"manager_id"`
}

// CourseRequestRepository persists course enrollment requests. Create must
// translate the storage-level uniqueness conflict on (user_id, course_id)
// into internal.ErrDuplicateRequest; that constraint, not a read-then-write
// check, is the duplicate guard.
type CourseRequestRepository interface {
	Create(req *CourseRequest) error
	GetDetail(id int64) (*CourseRequestDetail, error)
	ListByDepartment(department string) ([]*CourseRequestDetail, error)
	UpdateStatus(id int64, status string, updatedAt time.Time) error
}

// ProjectRequestRepository persists project staffing requests under the same
// uniqueness contract on (user_id, project_id).
type ProjectRequestRepository interface {
	Create(req *ProjectRequest) error
	GetDetail(id int64) (*ProjectRequestDetail, error)
	ListByDepartment(department string) ([]*ProjectRequestDetail, error)
	UpdateStatus(id int64, status string, updatedAt time.Time) error
}

// CourseFinder resolves the target course.
type CourseFinder interface {
	GetCourse(id int64) (*courseModel.Course, error)
}

// ProjectFinder resolves the target project.
type ProjectFinder interface {
	GetProject(id int64) (*projectModel.Project, error)
}

// Notifier is the dispatch side effect; the notification dispatcher
// satisfies it.
type Notifier interface {
	NotifyUser(ctx context.Context, userID int64, msg notification.Message) error
	NotifyRole(ctx context.Context, role, department string, msg notification.Message) error
}
