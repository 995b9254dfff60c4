package postgres

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/talenthub/talent-hub/internal"
	"github.com/talenthub/talent-hub/internal/request"
)

const uniqueViolation = "23505"

// isDuplicate recognizes a unique-index conflict regardless of whether the
// dialect translated it.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// CourseRequestRepository implements request.CourseRequestRepository using GORM.
type CourseRequestRepository struct {
	db *gorm.DB
}

func NewCourseRequestRepository(db *gorm.DB) request.CourseRequestRepository {
	return &CourseRequestRepository{db: db}
}

func (r *CourseRequestRepository) Create(req *request.CourseRequest) error {
	if err := r.db.Create(req).Error; err != nil {
		if isDuplicate(err) {
			return internal.ErrDuplicateRequest
		}
		return internal.NewStorageError("failed to create course request", err)
	}
	return nil
}

func (r *CourseRequestRepository) GetDetail(id int64) (*request.CourseRequestDetail, error) {
	var detail request.CourseRequestDetail
	err := r.db.Table("course_requests").
		Select(`course_requests.*,
			users.name AS user_name,
			users.department AS user_department,
			courses.title AS course_title,
			courses.link AS course_link`).
		Joins("JOIN users ON users.id = course_requests.user_id").
		Joins("JOIN courses ON courses.id = course_requests.course_id").
		Where("course_requests.id = ?", id).
		Take(&detail).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrRequestNotFound
		}
		return nil, internal.NewStorageError("failed to load course request", err)
	}
	return &detail, nil
}

func (r *CourseRequestRepository) ListByDepartment(department string) ([]*request.CourseRequestDetail, error) {
	var details []*request.CourseRequestDetail
	err := r.db.Table("course_requests").
		Select(`course_requests.*,
			users.name AS user_name,
			users.department AS user_department,
			courses.title AS course_title,
			courses.link AS course_link`).
		Joins("JOIN users ON users.id = course_requests.user_id").
		Joins("JOIN courses ON courses.id = course_requests.course_id").
		Where("users.department = ?", department).
		Order("course_requests.created_at DESC").
		Find(&details).Error
	return details, err
}

func (r *CourseRequestRepository) UpdateStatus(id int64, status string, updatedAt time.Time) error {
	return r.db.Model(&request.CourseRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": updatedAt,
		}).Error
}

// ProjectRequestRepository implements request.ProjectRequestRepository using GORM.
type ProjectRequestRepository struct {
	db *gorm.DB
}

func NewProjectRequestRepository(db *gorm.DB) request.ProjectRequestRepository {
	return &ProjectRequestRepository{db: db}
}

func (r *ProjectRequestRepository) Create(req *request.ProjectRequest) error {
	if err := r.db.Create(req).Error; err != nil {
		if isDuplicate(err) {
			return internal.ErrDuplicateRequest
		}
		return internal.NewStorageError("failed to create project request", err)
	}
	return nil
}

func (r *ProjectRequestRepository) GetDetail(id int64) (*request.ProjectRequestDetail, error) {
	var detail request.ProjectRequestDetail
	err := r.db.Table("project_requests").
		Select(`project_requests.*,
			users.name AS user_name,
			users.department AS user_department,
			projects.title AS project_title,
			projects.manager_id AS manager_id`).
		Joins("JOIN users ON users.id = project_requests.user_id").
		Joins("JOIN projects ON projects.id = project_requests.project_id").
		Where("project_requests.id = ?", id).
		Take(&detail).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrRequestNotFound
		}
		return nil, internal.NewStorageError("failed to load project request", err)
	}
	return &detail, nil
}

func (r *ProjectRequestRepository) ListByDepartment(department string) ([]*request.ProjectRequestDetail, error) {
	var details []*request.ProjectRequestDetail
	err := r.db.Table("project_requests").
		Select(`project_requests.*,
			users.name AS user_name,
			users.department AS user_department,
			projects.title AS project_title,
			projects.manager_id AS manager_id`).
		Joins("JOIN users ON users.id = project_requests.user_id").
		Joins("JOIN projects ON projects.id = project_requests.project_id").
		Where("users.department = ?", department).
		Order("project_requests.created_at DESC").
		Find(&details).Error
	return details, err
}

func (r *ProjectRequestRepository) UpdateStatus(id int64, status string, updatedAt time.Time) error {
	return r.db.Model(&request.ProjectRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": updatedAt,
		}).Error
}
