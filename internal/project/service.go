package project

import (
	"context"
	"log/slog"
	"time"

	"github.com/talenthub/talent-hub/internal"
	"github.com/talenthub/talent-hub/internal/auth"
	projectModel "github.com/talenthub/talent-hub/internal/core/datamodel/project"
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

// List returns projects scoped to the viewer: admins see everything,
// everyone else sees not-yet-started projects drawing from their department.
func (s *Service) List(ctx context.Context, viewer *auth.User) ([]Project, error) {
	if viewer.IsAdmin() {
		return s.repo.ListAll()
	}
	return s.repo.ListForDepartment(viewer.Department, s.now())
}

func (s *Service) Get(ctx context.Context, id int64) (*Project, error) {
	return s.repo.GetByID(id)
}

// GetProject satisfies the finder contract of the request workflow.
func (s *Service) GetProject(id int64) (*projectModel.Project, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(ctx context.Context, actor *auth.User, dto CreateProjectDTO) (*Project, error) {
	if !actor.IsAdmin() {
		return nil, internal.ErrForbidden
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	project := dto.ToModel()
	if err := s.repo.Create(project); err != nil {
		return nil, err
	}

	s.logger.Info("project created",
		"project_id", project.ID,
		"title", project.Title,
		"manager_id", project.ManagerID,
	)
	return project, nil
}

func (s *Service) Update(ctx context.Context, actor *auth.User, id int64, dto UpdateProjectDTO) (*Project, error) {
	if !actor.IsAdmin() {
		return nil, internal.ErrForbidden
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	project, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := dto.Apply(project); err != nil {
		return nil, err
	}
	if err := s.repo.Update(project); err != nil {
		return nil, err
	}
	return project, nil
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
	s.logger.Info("project deleted", "project_id", id)
	return nil
}
