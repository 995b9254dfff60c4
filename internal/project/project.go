// Package project manages staffed internal projects: which departments they
// draw from, how many people each position needs, and the competencies each
// position demands.
package project

import (
	"time"

	projectModel "github.com/talenthub/talent-hub/internal/core/datamodel/project"
)

type Project = projectModel.Project

// Repository is the persistence contract for projects.
type Repository interface {
	Create(project *Project) error
	GetByID(id int64) (*Project, error)
	Update(project *Project) error
	Delete(id int64) error
	// ListAll returns every project ordered by start date.
	ListAll() ([]Project, error)
	// ListForDepartment returns projects drawing from the given department
	// whose start date is strictly after the cutoff, ordered by start date.
	ListForDepartment(department string, after time.Time) ([]Project, error)
}
