package course

import (
	"context"
	"log/slog"
	"time"

	"github.com/talenthub/talent-hub/internal"
	"github.com/talenthub/talent-hub/internal/auth"
	courseModel "github.com/talenthub/talent-hub/internal/core/datamodel/course"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// List returns the catalog scoped to the viewer: admins see everything,
// everyone else sees upcoming courses targeted at their department.
func (s *Service) List(ctx context.Context, viewer *auth.User) ([]Course, error) {
	if viewer.IsAdmin() {
		return s.repo.ListAll()
	}
	return s.repo.ListForDepartment(viewer.Department, s.now())
}

func (s *Service) Get(ctx context.Context, id int64) (*Course, error) {
	return s.repo.GetByID(id)
}

// GetCourse satisfies the finder contract of the request workflow.
func (s *Service) GetCourse(id int64) (*courseModel.Course, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(ctx context.Context, actor *auth.User, dto CreateCourseDTO) (*Course, error) {
	if !actor.IsAdmin() {
		return nil, internal.ErrForbidden
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	course := dto.ToModel()
	if err := s.repo.Create(course); err != nil {
		return nil, err
	}

	s.logger.Info("course created", "course_id", course.ID, "title", course.Title)
	return course, nil
}

func (s *Service) Update(ctx context.Context, actor *auth.User, id int64, dto UpdateCourseDTO) (*Course, error) {
	if !actor.IsAdmin() {
		return nil, internal.ErrForbidden
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	course, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	dto.Apply(course)
	if err := s.repo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *Service) Delete(ctx context.Context, actor *auth.User, id int64) error {
	if !actor.IsAdmin() {
		return internal.ErrForbidden
	}
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.logger.Info("course deleted", "course_id", id)
	return nil
}
