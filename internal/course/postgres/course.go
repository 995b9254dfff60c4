package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/talenthub/talent-hub/internal"
	"github.com/talenthub/talent-hub/internal/course"
)

// CourseRepository implements course.Repository using GORM.
type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) course.Repository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) Create(c *course.Course) error {
	if err := r.db.Create(c).Error; err != nil {
		return internal.NewStorageError("failed to create course", err)
	}
	return nil
}

func (r *CourseRepository) GetByID(id int64) (*course.Course, error) {
	var c course.Course
	if err := r.db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrCourseNotFound
		}
		return nil, internal.NewStorageError("failed to get course", err)
	}
	return &c, nil
}

func (r *CourseRepository) Update(c *course.Course) error {
	if err := r.db.Save(c).Error; err != nil {
		return internal.NewStorageError("failed to update course", err)
	}
	return nil
}

func (r *CourseRepository) Delete(id int64) error {
	if err := r.db.Delete(&course.Course{}, id).Error; err != nil {
		return internal.NewStorageError("failed to delete course", err)
	}
	return nil
}

func (r *CourseRepository) ListAll() ([]course.Course, error) {
	var courses []course.Course
	if err := r.db.Order("start_date ASC").Find(&courses).Error; err != nil {
		return nil, internal.NewStorageError("failed to list courses", err)
	}
	return courses, nil
}

func (r *CourseRepository) ListForDepartment(department string, after time.Time) ([]course.Course, error) {
	var courses []course.Course
	// departments is a JSON array stored as text, so membership is a
	// substring match on the quoted value.
	err := r.db.
		Where(`departments LIKE ?`, `%"`+department+`"%`).
		Where("start_date > ?", after).
		Order("start_date ASC").
		Find(&courses).Error
	if err != nil {
		return nil, internal.NewStorageError("failed to list courses", err)
	}
	return courses, nil
}
