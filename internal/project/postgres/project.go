package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/talenthub/talent-hub/internal"
	"github.com/talenthub/talent-hub/internal/project"
)

// ProjectRepository implements project.Repository using GORM.
type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) project.Repository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(p *project.Project) error {
	if err := r.db.Create(p).Error; err != nil {
		return internal.NewStorageError("failed to create project", err)
	}
	return nil
}

func (r *ProjectRepository) GetByID(id int64) (*project.Project, error) {
	var p project.Project
	if err := r.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrProjectNotFound
		}
		return nil, internal.NewStorageError("failed to get project", err)
	}
	return &p, nil
}

func (r *ProjectRepository) Update(p *project.Project) error {
	if err := r.db.Save(p).Error; err != nil {
		return internal.NewStorageError("failed to update project", err)
	}
	return nil
}

func (r *ProjectRepository) Delete(id int64) error {
	if err := r.db.Delete(&project.Project{}, id).Error; err != nil {
		return internal.NewStorageError("failed to delete project", err)
	}
	return nil
}

func (r *ProjectRepository) ListAll() ([]project.Project, error) {
	var projects []project.Project
	if err := r.db.Order("start_date ASC").Find(&projects).Error; err != nil {
		return nil, internal.NewStorageError("failed to list projects", err)
	}
	return projects, nil
}

func (r *ProjectRepository) ListForDepartment(department string, after time.Time) ([]project.Project, error) {
	var projects []project.Project
	// departments is a JSON array stored as text, so membership is a
	// substring match on the quoted value.
	err := r.db.
		Where(`departments LIKE ?`, `%"`+department+`"%`).
		Where("start_date > ?", after).
		Order("start_date ASC").
		Find(&projects).Error
	if err != nil {
		return nil, internal.NewStorageError("failed to list projects", err)
	}
	return projects, nil
}
